// Package mysql implements the metadata provider against MySQL's
// information_schema views.
package mysql

import (
	"context"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/schemaforge/schemaforge/internal/errs"
	"github.com/schemaforge/schemaforge/internal/metadata"
	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// Metadata is the MySQL dialect adapter. It holds a reference to the pool
// and nothing else; it is safe for unbounded concurrent use.
type Metadata struct {
	db   *sqlx.DB
	lang typemap.Language
}

// Open connects a pool to dsn (go-sql-driver form) and returns the adapter.
func Open(ctx context.Context, dsn string, cfg metadata.Config) (*Metadata, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnection, "mysql connect", err)
	}
	applyPool(db, cfg)
	return New(db, cfg), nil
}

// New wraps an existing pool.
func New(db *sqlx.DB, cfg metadata.Config) *Metadata {
	return &Metadata{db: db, lang: cfg.TargetLanguage()}
}

func applyPool(db *sqlx.DB, cfg metadata.Config) {
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
}

// Driver reports the dialect tag.
func (m *Metadata) Driver() metadata.Driver { return metadata.DriverMySQL }

// Close releases the connection pool.
func (m *Metadata) Close() error { return m.db.Close() }

type databaseRow struct {
	Name string `db:"SCHEMA_NAME"`
}

type tableRow struct {
	Schema  string `db:"TABLE_SCHEMA"`
	Name    string `db:"TABLE_NAME"`
	Comment string `db:"TABLE_COMMENT"`
}

type columnRow struct {
	Database   string  `db:"TABLE_SCHEMA"`
	TableName  string  `db:"TABLE_NAME"`
	ColumnName string  `db:"COLUMN_NAME"`
	Position   int     `db:"ORDINAL_POSITION"`
	Default    *string `db:"COLUMN_DEFAULT"`
	IsNullable string  `db:"IS_NULLABLE"`
	DataType   string  `db:"DATA_TYPE"`
	ColumnType string  `db:"COLUMN_TYPE"`
	MaxLength  *int64  `db:"CHARACTER_MAXIMUM_LENGTH"`
	Precision  *int64  `db:"NUMERIC_PRECISION"`
	Scale      *int64  `db:"NUMERIC_SCALE"`
	ColumnKey  string  `db:"COLUMN_KEY"`
	Extra      string  `db:"EXTRA"`
	Comment    string  `db:"COLUMN_COMMENT"`
}

type indexRow struct {
	TableName  string  `db:"TABLE_NAME"`
	NonUnique  int     `db:"NON_UNIQUE"`
	KeyName    string  `db:"INDEX_NAME"`
	SeqInIndex int     `db:"SEQ_IN_INDEX"`
	ColumnName string  `db:"COLUMN_NAME"`
	SubPart    *int64  `db:"SUB_PART"`
	IndexType  string  `db:"INDEX_TYPE"`
	Comment    string  `db:"INDEX_COMMENT"`
}

// Databases lists all catalogs visible to the connection's credentials.
func (m *Metadata) Databases(ctx context.Context) ([]model.Database, error) {
	const query = `SELECT SCHEMA_NAME FROM information_schema.SCHEMATA ORDER BY SCHEMA_NAME`

	var rows []databaseRow
	if err := m.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "mysql: list databases", err)
	}

	out := make([]model.Database, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Database{Name: r.Name})
	}
	return out, nil
}

// Schemas lists schema namespaces. MySQL does not distinguish schemas from
// databases, so this mirrors Databases.
func (m *Metadata) Schemas(ctx context.Context) ([]model.Schema, error) {
	dbs, err := m.Databases(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Schema, 0, len(dbs))
	for _, d := range dbs {
		out = append(out, model.Schema{Name: d.Name})
	}
	return out, nil
}

// schemaFilter renders the schema predicate for expr. MySQL treats database
// and schema as one namespace: whichever of schema/database is non-empty
// becomes a positional bind, and when both are empty the predicate falls
// back to the connection's current database via DATABASE().
func schemaFilter(expr, database, schema string) (string, []any) {
	target := schema
	if target == "" {
		target = database
	}
	if target == "" {
		return expr + " = DATABASE()", nil
	}
	return expr + " = ?", []any{target}
}

// Tables lists the tables of schema.
func (m *Metadata) Tables(ctx context.Context, database, schema string) ([]model.Table, error) {
	clause, args := schemaFilter("TABLE_SCHEMA", database, schema)
	query := `SELECT TABLE_SCHEMA, TABLE_NAME, TABLE_COMMENT
		FROM information_schema.TABLES
		WHERE TABLE_TYPE = 'BASE TABLE' AND ` + clause

	var rows []tableRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "mysql: list tables", err)
	}

	out := make([]model.Table, 0, len(rows))
	for _, r := range rows {
		comment := r.Comment
		if comment == "" {
			comment = r.Name
		}
		out = append(out, model.Table{Schema: r.Schema, Name: r.Name, Comment: comment})
	}
	return out, nil
}

// Columns lists all columns of table, ascending by ordinal position. The
// COLUMN_TYPE spelling is sub-parsed for the unsigned flag and enum/set
// literal lists before the canonical type lookup on DATA_TYPE.
func (m *Metadata) Columns(ctx context.Context, database, schema, table string) ([]model.Column, error) {
	clause, args := schemaFilter("c.TABLE_SCHEMA", database, schema)
	query := `SELECT
			c.TABLE_SCHEMA,
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.ORDINAL_POSITION,
			c.COLUMN_DEFAULT,
			c.IS_NULLABLE,
			c.DATA_TYPE,
			c.COLUMN_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.NUMERIC_PRECISION,
			c.NUMERIC_SCALE,
			c.COLUMN_KEY,
			c.EXTRA,
			c.COLUMN_COMMENT
		FROM information_schema.COLUMNS c
		WHERE ` + clause + ` AND c.TABLE_NAME = ? ORDER BY c.ORDINAL_POSITION`
	args = append(args, table)

	var rows []columnRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "mysql: list columns", err)
	}

	out := make([]model.Column, 0, len(rows))
	for _, r := range rows {
		ct, err := typemap.Lookup("mysql", r.DataType)
		if err != nil {
			return nil, err
		}
		targetType, err := typemap.TargetType(ct, m.lang)
		if err != nil {
			return nil, err
		}

		parsed := parseColumnType(r.ColumnType)
		length, scale := resolveLengthScale(r.MaxLength, r.Precision, r.Scale, parsed)

		col := model.Column{
			Database:     r.Database,
			Schema:       r.Database,
			TableName:    r.TableName,
			Name:         r.ColumnName,
			Type:         &ct,
			Length:       length,
			Scale:        scale,
			Default:      r.Default,
			EnumValues:   parsed.enumValues,
			Comment:      r.Comment,
			IsNull:       strings.EqualFold(r.IsNullable, "YES"),
			IsAutoIncr:   strings.Contains(r.Extra, "auto_increment"),
			IsUnique:     r.ColumnKey == "UNI",
			IsPrimaryKey: r.ColumnKey == "PRI",
			IsUnsigned:   parsed.unsigned,
			TargetType:   targetType,
		}
		out = append(out, col)
	}
	return out, nil
}

// Indexes lists raw index rows from information_schema.STATISTICS, ordered
// by key name and sequence so composite indexes group naturally.
func (m *Metadata) Indexes(ctx context.Context, database, schema, table string) ([]model.Index, error) {
	clause, args := schemaFilter("TABLE_SCHEMA", database, schema)
	query := `SELECT
			TABLE_NAME,
			NON_UNIQUE,
			INDEX_NAME,
			SEQ_IN_INDEX,
			COLUMN_NAME,
			SUB_PART,
			INDEX_TYPE,
			INDEX_COMMENT
		FROM information_schema.STATISTICS
		WHERE ` + clause + ` AND TABLE_NAME = ? ORDER BY INDEX_NAME, SEQ_IN_INDEX`
	args = append(args, table)

	var rows []indexRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errs.Wrap(errs.KindQuery, "mysql: list indexes", err)
	}

	out := make([]model.Index, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Index{
			TableName:    r.TableName,
			NonUnique:    r.NonUnique,
			KeyName:      r.KeyName,
			SeqInIndex:   r.SeqInIndex,
			ColumnName:   r.ColumnName,
			SubPart:      r.SubPart,
			IndexType:    r.IndexType,
			IndexComment: r.Comment,
		})
	}
	return out, nil
}

// CreateTableSQL synthesizes a CREATE TABLE statement from the canonical
// column and index model.
func (m *Metadata) CreateTableSQL(ctx context.Context, database, schema, table string) (string, error) {
	cols, err := m.Columns(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		return "", errs.Newf(errs.KindQuery, "mysql: table %q has no columns", table)
	}
	idxs, err := m.Indexes(ctx, database, schema, table)
	if err != nil {
		return "", err
	}
	return buildCreateTable(table, cols, idxs), nil
}

// parsedColumnType holds what COLUMN_TYPE carries beyond DATA_TYPE.
type parsedColumnType struct {
	base       string
	length     *int64
	scale      *int64
	unsigned   bool
	enumValues []string
}

// parseColumnType sub-parses a MySQL COLUMN_TYPE spelling such as
// "int(10) unsigned", "decimal(10,2)" or "enum('a','b')".
func parseColumnType(columnType string) parsedColumnType {
	var p parsedColumnType

	s := strings.TrimSpace(columnType)
	lower := strings.ToLower(s)
	p.unsigned = strings.Contains(lower, " unsigned") || strings.HasSuffix(lower, "unsigned")

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if fields := strings.Fields(lower); len(fields) > 0 {
			p.base = fields[0]
		}
		return p
	}
	p.base = strings.TrimSpace(lower[:open])

	end := strings.LastIndexByte(s, ')')
	if end < open {
		return p
	}
	inner := s[open+1 : end]

	if p.base == "enum" || p.base == "set" {
		p.enumValues = parseQuotedList(inner)
		return p
	}

	parts := strings.SplitN(inner, ",", 2)
	if n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64); err == nil {
		p.length = &n
	}
	if len(parts) == 2 {
		if n, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64); err == nil {
			p.scale = &n
		}
	}
	return p
}

// resolveLengthScale picks the column's length and scale: character length,
// then numeric precision, then the display width parsed out of COLUMN_TYPE
// when the catalog reports neither; the parsed scale backs a NULL
// NUMERIC_SCALE the same way.
func resolveLengthScale(maxLength, precision, scale *int64, parsed parsedColumnType) (*int64, *int64) {
	length := maxLength
	if length == nil {
		length = precision
	}
	if length == nil {
		length = parsed.length
	}
	if scale == nil {
		scale = parsed.scale
	}
	return length, scale
}

// parseQuotedList splits "'a','b','it''s'" into its literal members,
// unescaping doubled quotes.
func parseQuotedList(s string) []string {
	var values []string
	var cur strings.Builder
	inQuote := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\'' && !inQuote:
			inQuote = true
		case ch == '\'' && inQuote:
			if i+1 < len(s) && s[i+1] == '\'' {
				cur.WriteByte('\'')
				i++
				continue
			}
			inQuote = false
			values = append(values, cur.String())
			cur.Reset()
		case inQuote:
			cur.WriteByte(ch)
		}
	}
	return values
}
