package metadata

import (
	"context"

	"github.com/schemaforge/schemaforge/internal/model"
)

// FetchTableColumns pairs table discovery with per-table column discovery.
// It lists the tables of schema on the connection's current database, then
// fetches columns for each name in tableNames — or for every discovered
// table when tableNames is empty — concatenating the per-table column lists
// in discovery order.
//
// Any single per-table failure aborts the whole call: a generator acting on
// a partial schema silently produces wrong code, so partial results are
// never returned.
func FetchTableColumns(ctx context.Context, p Provider, schema string, tableNames []string) ([]model.Table, []model.Column, error) {
	tables, err := p.Tables(ctx, "", schema)
	if err != nil {
		return nil, nil, err
	}

	names := tableNames
	if len(names) == 0 {
		names = make([]string, 0, len(tables))
		for _, t := range tables {
			names = append(names, t.Name)
		}
	}

	var columns []model.Column
	for _, name := range names {
		cols, err := p.Columns(ctx, "", schema, name)
		if err != nil {
			return nil, nil, err
		}
		columns = append(columns, cols...)
	}

	return tables, columns, nil
}
