// Package sqlite implements the metadata provider against SQLite's pragma
// table-valued functions and sqlite_master.
//
// SQLite declared types are affinity hints, not storage guarantees; the
// canonical annotation here is best effort over the declaration. Attached
// databases stand in for catalogs, and there is no schema namespace at all —
// Schemas fails closed as unsupported rather than returning a misleading
// empty list.
package sqlite

import (
	"context"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/schemaforge/schemaforge/internal/errs"
	"github.com/schemaforge/schemaforge/internal/metadata"
	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// Metadata is the SQLite dialect adapter.
type Metadata struct {
	db   *sqlx.DB
	lang typemap.Language
}

// Open connects a pool to the database file at dsn and returns the adapter.
func Open(ctx context.Context, dsn string, cfg metadata.Config) (*Metadata, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnection, "sqlite connect", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	return New(db, cfg), nil
}

// New wraps an existing pool.
func New(db *sqlx.DB, cfg metadata.Config) *Metadata {
	return &Metadata{db: db, lang: cfg.TargetLanguage()}
}

// Driver reports the dialect tag.
func (m *Metadata) Driver() metadata.Driver { return metadata.DriverSQLite }

// Close releases the connection pool.
func (m *Metadata) Close() error { return m.db.Close() }

type tableInfoRow struct {
	CID     int     `db:"cid"`
	Name    string  `db:"name"`
	Type    string  `db:"type"`
	NotNull int     `db:"notnull"`
	Default *string `db:"dflt_value"`
	PK      int     `db:"pk"`
}

type indexColumnRow struct {
	KeyName    string  `db:"key_name"`
	Unique     int     `db:"uniq"`
	Origin     string  `db:"origin"`
	SeqNo      int     `db:"seqno"`
	ColumnName *string `db:"column_name"`
}

// Databases lists the attached databases (main, temp, and any ATTACHed
// files), in attachment order.
func (m *Metadata) Databases(ctx context.Context) ([]model.Database, error) {
	const query = `SELECT name FROM pragma_database_list ORDER BY seq`

	var names []string
	if err := m.db.SelectContext(ctx, &names, query); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "sqlite: list databases", err)
	}

	out := make([]model.Database, 0, len(names))
	for _, n := range names {
		out = append(out, model.Database{Name: n})
	}
	return out, nil
}

// Schemas fails closed: SQLite has no schema namespace distinct from its
// attached databases, and an empty list would be indistinguishable from a
// database with nothing in it.
func (m *Metadata) Schemas(_ context.Context) ([]model.Schema, error) {
	return nil, errs.New(errs.KindUnsupportedOperation,
		"sqlite has no schema namespace; Databases lists attached databases")
}

// Tables lists the tables in declaration order from sqlite_master. SQLite
// has no table comments, so the comment falls back to the table name. Both
// filter arguments are accepted for interface symmetry; empty means the
// main database.
func (m *Metadata) Tables(ctx context.Context, database, schema string) ([]model.Table, error) {
	const query = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`

	var names []string
	if err := m.db.SelectContext(ctx, &names, query); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "sqlite: list tables", err)
	}

	out := make([]model.Table, 0, len(names))
	for _, n := range names {
		out = append(out, model.Table{Schema: m.schemaName(database, schema), Name: n, Comment: n})
	}
	return out, nil
}

// Columns lists all columns of table in declaration (= ordinal) order. The
// declared type string is sub-parsed for length/scale before the canonical
// lookup; uniqueness and autoincrement come from two bounded secondary
// catalog lookups (unique single-column indexes, and the stored CREATE
// TABLE text).
func (m *Metadata) Columns(ctx context.Context, database, schema, table string) ([]model.Column, error) {
	const query = `SELECT cid, name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?)`

	var rows []tableInfoRow
	if err := m.db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "sqlite: table_info", err)
	}
	if len(rows) == 0 {
		return nil, errs.Newf(errs.KindQuery, "sqlite: no such table %q", table)
	}

	uniqueCols, err := m.uniqueColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	autoIncr, err := m.autoIncrementColumn(ctx, table, rows)
	if err != nil {
		return nil, err
	}

	dbName := m.schemaName(database, schema)
	out := make([]model.Column, 0, len(rows))
	for _, r := range rows {
		base, length, scale := parseDeclaredType(r.Type)
		ct, err := typemap.Lookup("sqlite", base)
		if err != nil {
			return nil, err
		}
		targetType, err := typemap.TargetType(ct, m.lang)
		if err != nil {
			return nil, err
		}

		out = append(out, model.Column{
			Database:     dbName,
			Schema:       dbName,
			TableName:    table,
			Name:         r.Name,
			Type:         &ct,
			Length:       length,
			Scale:        scale,
			Default:      r.Default,
			Comment:      r.Name, // sqlite has no column comments
			IsNull:       r.NotNull == 0 && r.PK == 0,
			IsAutoIncr:   r.Name == autoIncr,
			IsUnique:     uniqueCols[r.Name],
			IsPrimaryKey: r.PK > 0,
			TargetType:   targetType,
		})
	}
	return out, nil
}

// Indexes lists raw index rows by joining pragma_index_list with
// pragma_index_info, one row per indexed column. SQLite indexes are always
// B-tree; there are no prefix lengths or index comments.
func (m *Metadata) Indexes(ctx context.Context, database, schema, table string) ([]model.Index, error) {
	const query = `SELECT
			il.name AS key_name,
			il."unique" AS uniq,
			il.origin AS origin,
			ii.seqno AS seqno,
			ii.name AS column_name
		FROM pragma_index_list(?) AS il, pragma_index_info(il.name) AS ii
		ORDER BY il.name, ii.seqno`

	var rows []indexColumnRow
	if err := m.db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "sqlite: list indexes", err)
	}

	out := make([]model.Index, 0, len(rows))
	for _, r := range rows {
		column := ""
		if r.ColumnName != nil {
			column = *r.ColumnName
		}
		out = append(out, model.Index{
			TableName:  table,
			NonUnique:  1 - r.Unique,
			KeyName:    r.KeyName,
			SeqInIndex: r.SeqNo + 1, // pragma seqno is 0-based
			ColumnName: column,
			IndexType:  "BTREE",
		})
	}
	return out, nil
}

// CreateTableSQL synthesizes SQLite DDL from the canonical column and index
// model rather than echoing the text stored in sqlite_master.
func (m *Metadata) CreateTableSQL(ctx context.Context, database, schema, table string) (string, error) {
	cols, err := m.Columns(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	idxs, err := m.Indexes(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	return buildCreateTable(table, cols, idxs), nil
}

// schemaName resolves the effective namespace: explicit schema, then
// explicit database, then the main database.
func (m *Metadata) schemaName(database, schema string) string {
	if schema != "" {
		return schema
	}
	if database != "" {
		return database
	}
	return "main"
}

// uniqueColumns returns the set of columns covered by a single-column
// unique index created by a UNIQUE constraint or CREATE UNIQUE INDEX.
func (m *Metadata) uniqueColumns(ctx context.Context, table string) (map[string]bool, error) {
	const query = `SELECT
			il.name AS key_name,
			il."unique" AS uniq,
			il.origin AS origin,
			ii.seqno AS seqno,
			ii.name AS column_name
		FROM pragma_index_list(?) AS il, pragma_index_info(il.name) AS ii
		WHERE il."unique" = 1
		ORDER BY il.name, ii.seqno`

	var rows []indexColumnRow
	if err := m.db.SelectContext(ctx, &rows, query, table); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "sqlite: unique indexes", err)
	}

	memberCount := make(map[string]int)
	for _, r := range rows {
		memberCount[r.KeyName]++
	}

	unique := make(map[string]bool)
	for _, r := range rows {
		if memberCount[r.KeyName] == 1 && r.ColumnName != nil {
			unique[*r.ColumnName] = true
		}
	}
	return unique, nil
}

// autoIncrementColumn inspects the stored CREATE TABLE text for the rowid
// alias: a single INTEGER PRIMARY KEY column auto-assigns, with or without
// the AUTOINCREMENT keyword.
func (m *Metadata) autoIncrementColumn(ctx context.Context, table string, cols []tableInfoRow) (string, error) {
	var pk []string
	for _, c := range cols {
		if c.PK > 0 {
			pk = append(pk, c.Name)
		}
	}
	if len(pk) != 1 {
		return "", nil
	}

	var createSQL string
	const query = `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`
	if err := m.db.GetContext(ctx, &createSQL, query, table); err != nil {
		return "", errs.Wrap(errs.KindQuery, "sqlite: read table definition", err)
	}

	if strings.Contains(strings.ToUpper(createSQL), "INTEGER PRIMARY KEY") {
		return pk[0], nil
	}
	return "", nil
}

// parseDeclaredType splits a declared type such as "VARCHAR(255)" or
// "DECIMAL(10,2)" into its base name and optional length/scale.
func parseDeclaredType(declared string) (base string, length, scale *int64) {
	s := strings.TrimSpace(declared)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return s, nil, nil
	}
	base = strings.TrimSpace(s[:open])
	end := strings.LastIndexByte(s, ')')
	if end < open {
		return base, nil, nil
	}
	parts := strings.SplitN(s[open+1:end], ",", 2)
	if n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64); err == nil {
		length = &n
	}
	if len(parts) == 2 {
		if n, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64); err == nil {
			scale = &n
		}
	}
	return base, length, scale
}
