// Package postgres implements the metadata provider against PostgreSQL's
// information_schema views and pg_catalog.
//
// Every operation issues one parameterized query with $n placeholders. The
// "empty string means current database/schema" convention is pushed into the
// SQL itself via COALESCE(NULLIF($n,''), current_database()/current_schema()),
// which keeps the statements static and the binding purely positional.
package postgres

import (
	"context"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/schemaforge/schemaforge/internal/errs"
	"github.com/schemaforge/schemaforge/internal/metadata"
	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// Metadata is the PostgreSQL dialect adapter.
type Metadata struct {
	db   *sqlx.DB
	lang typemap.Language
}

// Open connects a pool to dsn (postgres:// URL) and returns the adapter.
func Open(ctx context.Context, dsn string, cfg metadata.Config) (*Metadata, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnection, "postgres connect", err)
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
func (m *Metadata) Driver() metadata.Driver { return metadata.DriverPostgres }

// Close releases the connection pool.
func (m *Metadata) Close() error { return m.db.Close() }

type nameRow struct {
	Name string `db:"name"`
}

type tableRow struct {
	Catalog     string `db:"table_catalog"`
	Schema      string `db:"table_schema"`
	Name        string `db:"table_name"`
	Description string `db:"description"`
}

type columnRow struct {
	Catalog      string  `db:"table_catalog"`
	Schema       string  `db:"table_schema"`
	TableName    string  `db:"table_name"`
	ColumnName   string  `db:"column_name"`
	Position     int     `db:"ordinal_position"`
	Default      *string `db:"column_default"`
	IsNullable   string  `db:"is_nullable"`
	UDTName      string  `db:"udt_name"`
	MaxLength    *int64  `db:"character_maximum_length"`
	Precision    *int64  `db:"numeric_precision"`
	Scale        *int64  `db:"numeric_scale"`
	Description  string  `db:"description"`
	IsPrimaryKey bool    `db:"is_primary_key"`
	IsUnique     bool    `db:"is_unique"`
}

type indexRow struct {
	TableName  string `db:"table_name"`
	NonUnique  int    `db:"non_unique"`
	KeyName    string `db:"key_name"`
	SeqInIndex int    `db:"seq_in_index"`
	ColumnName string `db:"column_name"`
	IndexType  string `db:"index_type"`
	Comment    string `db:"index_comment"`
}

// Databases lists all non-template catalogs.
func (m *Metadata) Databases(ctx context.Context) ([]model.Database, error) {
	const query = `SELECT datname AS name FROM pg_database
		WHERE datistemplate = false ORDER BY datname`

	var rows []nameRow
	if err := m.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "postgres: list databases", err)
	}

	out := make([]model.Database, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Database{Name: r.Name})
	}
	return out, nil
}

// Schemas lists all schema namespaces visible to the connection.
func (m *Metadata) Schemas(ctx context.Context) ([]model.Schema, error) {
	const query = `SELECT schema_name AS name FROM information_schema.schemata
		ORDER BY schema_name`

	var rows []nameRow
	if err := m.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "postgres: list schemas", err)
	}

	out := make([]model.Schema, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Schema{Name: r.Name})
	}
	return out, nil
}

// Tables lists the tables of schema, joined to pg_description for table
// comments. Empty database/schema fall back to the connection's current
// database and schema inside the query.
func (m *Metadata) Tables(ctx context.Context, database, schema string) ([]model.Table, error) {
	const query = `SELECT
			tb.table_catalog,
			tb.table_schema,
			tb.table_name,
			COALESCE(d.description, '') AS description
		FROM information_schema.tables tb
		JOIN pg_class c ON c.relname = tb.table_name
		JOIN pg_namespace ns ON ns.oid = c.relnamespace AND ns.nspname = tb.table_schema
		LEFT JOIN pg_description d ON d.objoid = c.oid AND d.objsubid = 0
		WHERE tb.table_type = 'BASE TABLE'
			AND tb.table_catalog = COALESCE(NULLIF($1, ''), current_database())
			AND tb.table_schema = COALESCE(NULLIF($2, ''), current_schema())`

	var rows []tableRow
	if err := m.db.SelectContext(ctx, &rows, query, database, schema); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "postgres: list tables", err)
	}

	out := make([]model.Table, 0, len(rows))
	for _, r := range rows {
		comment := r.Description
		if comment == "" {
			comment = r.Name
		}
		out = append(out, model.Table{Schema: r.Schema, Name: r.Name, Comment: comment})
	}
	return out, nil
}

// columnsQuery feeds Columns. The constraint subqueries deduplicate and are
// scoped to the table: constraint names are only unique per table, and a
// column covered by several UNIQUE constraints must still yield one row.
const columnsQuery = `SELECT
			col.table_catalog,
			col.table_schema,
			col.table_name,
			col.column_name,
			col.ordinal_position,
			col.column_default,
			col.is_nullable,
			col.udt_name,
			col.character_maximum_length,
			col.numeric_precision,
			col.numeric_scale,
			COALESCE(d.description, '') AS description,
			(pk.column_name IS NOT NULL) AS is_primary_key,
			(uq.column_name IS NOT NULL) AS is_unique
		FROM information_schema.columns col
		JOIN pg_class c ON c.relname = col.table_name
		JOIN pg_namespace ns ON ns.oid = c.relnamespace AND ns.nspname = col.table_schema
		LEFT JOIN pg_description d ON d.objoid = c.oid AND d.objsubid = col.ordinal_position
		LEFT JOIN (
			SELECT DISTINCT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name
				AND kcu.table_schema = tc.table_schema
				AND kcu.table_name = tc.table_name
			WHERE tc.constraint_type = 'PRIMARY KEY'
				AND tc.table_schema = COALESCE(NULLIF($2, ''), current_schema())
				AND tc.table_name = $3
		) pk ON pk.column_name = col.column_name
		LEFT JOIN (
			SELECT DISTINCT kcu.column_name
			FROM information_schema.table_constraints tc
			JOIN information_schema.key_column_usage kcu
				ON kcu.constraint_name = tc.constraint_name
				AND kcu.table_schema = tc.table_schema
				AND kcu.table_name = tc.table_name
			WHERE tc.constraint_type = 'UNIQUE'
				AND tc.table_schema = COALESCE(NULLIF($2, ''), current_schema())
				AND tc.table_name = $3
		) uq ON uq.column_name = col.column_name
		WHERE col.table_catalog = COALESCE(NULLIF($1, ''), current_database())
			AND col.table_schema = COALESCE(NULLIF($2, ''), current_schema())
			AND col.table_name = $3
		ORDER BY col.ordinal_position`

// Columns lists all columns of table, ascending by ordinal position, with
// comments from pg_description and key flags from the constraint catalog —
// all in one query.
func (m *Metadata) Columns(ctx context.Context, database, schema, table string) ([]model.Column, error) {
	var rows []columnRow
	if err := m.db.SelectContext(ctx, &rows, columnsQuery, database, schema, table); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "postgres: list columns", err)
	}

	out := make([]model.Column, 0, len(rows))
	for _, r := range rows {
		ct, err := typemap.Lookup("postgres", r.UDTName)
		if err != nil {
			return nil, err
		}
		targetType, err := typemap.TargetType(ct, m.lang)
		if err != nil {
			return nil, err
		}

		length := r.MaxLength
		if length == nil {
			length = r.Precision
		}

		out = append(out, model.Column{
			Database:     r.Catalog,
			Schema:       r.Schema,
			TableName:    r.TableName,
			Name:         r.ColumnName,
			Type:         &ct,
			Length:       length,
			Scale:        r.Scale,
			Default:      r.Default,
			Comment:      r.Description,
			IsNull:       strings.EqualFold(r.IsNullable, "YES"),
			IsAutoIncr:   r.Default != nil && strings.Contains(*r.Default, "nextval("),
			IsUnique:     r.IsUnique,
			IsPrimaryKey: r.IsPrimaryKey,
			TargetType:   targetType,
		})
	}
	return out, nil
}

// Indexes lists raw index rows from pg_index, one row per indexed column,
// ordered by key name and position. PostgreSQL has no prefix indexes, so
// SubPart is always nil.
func (m *Metadata) Indexes(ctx context.Context, database, schema, table string) ([]model.Index, error) {
	const query = `SELECT
			t.relname AS table_name,
			CASE WHEN ix.indisunique THEN 0 ELSE 1 END AS non_unique,
			i.relname AS key_name,
			k.ord AS seq_in_index,
			a.attname AS column_name,
			am.amname AS index_type,
			COALESCE(obj_description(i.oid, 'pg_class'), '') AS index_comment
		FROM pg_index ix
		JOIN pg_class t ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_namespace ns ON ns.oid = t.relnamespace
		JOIN pg_am am ON am.oid = i.relam
		CROSS JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord)
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
		WHERE ns.nspname = COALESCE(NULLIF($1, ''), current_schema())
			AND t.relname = $2
		ORDER BY i.relname, k.ord`

	var rows []indexRow
	if err := m.db.SelectContext(ctx, &rows, query, schema, table); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "postgres: list indexes", err)
	}

	out := make([]model.Index, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Index{
			TableName:    r.TableName,
			NonUnique:    r.NonUnique,
			KeyName:      r.KeyName,
			SeqInIndex:   r.SeqInIndex,
			ColumnName:   r.ColumnName,
			IndexType:    strings.ToUpper(r.IndexType),
			IndexComment: r.Comment,
		})
	}
	return out, nil
}

// CreateTableSQL synthesizes PostgreSQL DDL from the canonical column and
// index model: one CREATE TABLE statement, followed by CREATE INDEX
// statements for the secondary indexes (PostgreSQL cannot declare those
// inline).
func (m *Metadata) CreateTableSQL(ctx context.Context, database, schema, table string) (string, error) {
	cols, err := m.Columns(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", errs.Newf(errs.KindQuery, "postgres: table %q has no columns", table)
	}
	idxs, err := m.Indexes(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	return buildCreateTable(table, cols, idxs), nil
}
