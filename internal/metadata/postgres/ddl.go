package postgres

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// buildCreateTable synthesizes PostgreSQL DDL from the canonical model.
// Auto-increment integers become SERIAL columns, the primary key and unique
// constraints go inline, and remaining secondary indexes are emitted as
// trailing CREATE INDEX statements.
func buildCreateTable(table string, cols []model.Column, idxs []model.Index) string {
	var b strings.Builder

	b.WriteString("CREATE TABLE ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (\n")

	var pkCols []string
	for i, col := range cols {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  ")
		b.WriteString(quoteIdent(col.Name))
		b.WriteString(" ")
		b.WriteString(columnTypeSQL(col))
		if !col.IsNull && !col.IsPrimaryKey {
			b.WriteString(" NOT NULL")
		}
		// Serial columns own their nextval default already.
		if col.Default != nil && !col.IsAutoIncr {
			b.WriteString(" DEFAULT ")
			b.WriteString(defaultLiteral(col, *col.Default))
		}
		if col.IsPrimaryKey {
			pkCols = append(pkCols, col.Name)
		}
	}

	if len(pkCols) > 0 {
		quoted := make([]string, len(pkCols))
		for i, c := range pkCols {
			quoted[i] = quoteIdent(c)
		}
		b.WriteString(",\n  PRIMARY KEY (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(")")
	}

	var secondary []string
	for _, group := range groupIndexes(idxs) {
		// The primary key's backing index duplicates the inline constraint.
		if strings.HasSuffix(group.keyName, "_pkey") {
			continue
		}
		columns := make([]string, len(group.parts))
		for i, part := range group.parts {
			columns[i] = quoteIdent(part.ColumnName)
		}
		if group.nonUnique == 0 {
			b.WriteString(",\n  UNIQUE (")
			b.WriteString(strings.Join(columns, ", "))
			b.WriteString(")")
			continue
		}
		secondary = append(secondary, fmt.Sprintf(
			"CREATE INDEX %s ON %s (%s)",
			quoteIdent(group.keyName), quoteIdent(table), strings.Join(columns, ", ")))
	}

	b.WriteString("\n)")
	for _, stmt := range secondary {
		b.WriteString(";\n")
		b.WriteString(stmt)
	}
	return b.String()
}

// columnTypeSQL renders a canonical type as a PostgreSQL type, substituting
// SERIAL spellings for auto-increment integers.
func columnTypeSQL(col model.Column) string {
	if col.Type == nil {
		return "TEXT"
	}
	ct := *col.Type

	if col.IsAutoIncr {
		switch ct {
		case typemap.SmallInt, typemap.TinyInt:
			return "SMALLSERIAL"
		case typemap.BigInt:
			return "BIGSERIAL"
		case typemap.MediumInt, typemap.Int, typemap.Integer:
			return "SERIAL"
		}
	}

	switch ct {
	case typemap.TinyInt, typemap.SmallInt:
		return "SMALLINT"
	case typemap.MediumInt, typemap.Int, typemap.Integer, typemap.Year:
		return "INTEGER"
	case typemap.BigInt:
		return "BIGINT"
	case typemap.Bool:
		return "BOOLEAN"
	case typemap.Decimal, typemap.Numeric:
		if col.Length != nil && col.Scale != nil {
			return fmt.Sprintf("NUMERIC(%d,%d)", *col.Length, *col.Scale)
		}
		if col.Length != nil {
			return fmt.Sprintf("NUMERIC(%d)", *col.Length)
		}
		return "NUMERIC"
	case typemap.Float, typemap.Real:
		return "REAL"
	case typemap.Double:
		return "DOUBLE PRECISION"
	case typemap.Bit:
		if col.Length != nil {
			return fmt.Sprintf("BIT(%d)", *col.Length)
		}
		return "BIT"
	case typemap.Char:
		if col.Length != nil {
			return fmt.Sprintf("CHAR(%d)", *col.Length)
		}
		return "CHAR"
	case typemap.VarChar:
		if col.Length != nil {
			return fmt.Sprintf("VARCHAR(%d)", *col.Length)
		}
		return "VARCHAR"
	case typemap.TinyText, typemap.Text, typemap.MediumText, typemap.LongText,
		typemap.Enum, typemap.Set:
		return "TEXT"
	case typemap.Binary, typemap.VarBinary, typemap.TinyBlob, typemap.Blob,
		typemap.MediumBlob, typemap.LongBlob:
		return "BYTEA"
	case typemap.Date:
		return "DATE"
	case typemap.Time:
		return "TIME"
	case typemap.DateTime:
		return "TIMESTAMP"
	case typemap.Timestamp:
		return "TIMESTAMPTZ"
	case typemap.JSON:
		return "JSONB"
	case typemap.UUID:
		return "UUID"
	case typemap.Point:
		return "POINT"
	case typemap.Polygon:
		return "POLYGON"
	case typemap.LineString:
		return "PATH"
	default:
		// Remaining spatial variants have no native PostgreSQL type.
		return "TEXT"
	}
}

// defaultLiteral quotes a default value per literal class. Expression and
// keyword defaults (function calls, CURRENT_TIMESTAMP, NULL) stay bare;
// PostgreSQL defaults read from the catalog are already valid expressions.
func defaultLiteral(col model.Column, def string) string {
	trimmed := strings.TrimSpace(def)
	upper := strings.ToUpper(trimmed)
	if upper == "NULL" || strings.HasPrefix(upper, "CURRENT_") || strings.Contains(trimmed, "(") {
		return trimmed
	}
	if col.Type != nil && isNumericType(*col.Type) {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "'") {
		return trimmed
	}
	return "'" + strings.ReplaceAll(trimmed, "'", "''") + "'"
}

func isNumericType(ct typemap.ColumnType) bool {
	switch ct {
	case typemap.TinyInt, typemap.SmallInt, typemap.MediumInt, typemap.Int,
		typemap.Integer, typemap.BigInt, typemap.Bool, typemap.Decimal,
		typemap.Numeric, typemap.Float, typemap.Double, typemap.Real,
		typemap.Year:
		return true
	default:
		return false
	}
}

// indexGroup is one logical index reconstructed from its raw rows.
type indexGroup struct {
	keyName   string
	nonUnique int
	parts     []model.Index
}

// groupIndexes folds raw index rows into logical indexes in first-seen
// key-name order.
func groupIndexes(idxs []model.Index) []indexGroup {
	var groups []indexGroup
	byName := make(map[string]int)
	for _, idx := range idxs {
		pos, ok := byName[idx.KeyName]
		if !ok {
			pos = len(groups)
			byName[idx.KeyName] = pos
			groups = append(groups, indexGroup{keyName: idx.KeyName, nonUnique: idx.NonUnique})
		}
		groups[pos].parts = append(groups[pos].parts, idx)
	}
	return groups
}

// quoteIdent wraps a SQL identifier in double quotes, escaping embedded ones.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
