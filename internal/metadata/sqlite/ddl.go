package sqlite

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// buildCreateTable synthesizes SQLite DDL from the canonical model. A
// single auto-assigning primary key renders as INTEGER PRIMARY KEY
// AUTOINCREMENT; secondary indexes become trailing CREATE INDEX statements.
// SQLite has no unsigned or comment clauses.
func buildCreateTable(table string, cols []model.Column, idxs []model.Index) string {
	var b strings.Builder

	b.WriteString("CREATE TABLE ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (\n")

	var pkCols []string
	inlinePK := false
	for i, col := range cols {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  ")
		b.WriteString(quoteIdent(col.Name))
		b.WriteString(" ")

		if col.IsAutoIncr && col.IsPrimaryKey {
			b.WriteString("INTEGER PRIMARY KEY AUTOINCREMENT")
			inlinePK = true
			continue
		}

		b.WriteString(columnTypeSQL(col))
		if !col.IsNull && !col.IsPrimaryKey {
			b.WriteString(" NOT NULL")
		}
		if col.Default != nil {
			b.WriteString(" DEFAULT ")
			b.WriteString(defaultLiteral(col, *col.Default))
		}
		if col.IsPrimaryKey {
			pkCols = append(pkCols, col.Name)
		}
	}

	if len(pkCols) > 0 && !inlinePK {
		quoted := make([]string, len(pkCols))
		for i, c := range pkCols {
			quoted[i] = quoteIdent(c)
		}
		b.WriteString(",\n  PRIMARY KEY (")
		b.WriteString(strings.Join(quoted, ", "))
		b.WriteString(")")
	}

	b.WriteString("\n)")

	for _, group := range groupIndexes(idxs) {
		// Implicit indexes backing PRIMARY KEY / UNIQUE constraints cannot
		// be recreated by name.
		if strings.HasPrefix(group.keyName, "sqlite_autoindex") {
			continue
		}
		columns := make([]string, len(group.parts))
		for i, part := range group.parts {
			columns[i] = quoteIdent(part.ColumnName)
		}
		uniq := ""
		if group.nonUnique == 0 {
			uniq = "UNIQUE "
		}
		fmt.Fprintf(&b, ";\nCREATE %sINDEX %s ON %s (%s)",
			uniq, quoteIdent(group.keyName), quoteIdent(table), strings.Join(columns, ", "))
	}

	return b.String()
}

// columnTypeSQL renders a canonical type as a SQLite declared type with its
// length/scale parenthesization.
func columnTypeSQL(col model.Column) string {
	if col.Type == nil {
		return "TEXT"
	}
	ct := *col.Type

	switch ct {
	case typemap.Decimal, typemap.Numeric:
		if col.Length != nil && col.Scale != nil {
			return fmt.Sprintf("%s(%d,%d)", ct, *col.Length, *col.Scale)
		}
		return ct.String()
	case typemap.Char, typemap.VarChar:
		if col.Length != nil {
			return fmt.Sprintf("%s(%d)", ct, *col.Length)
		}
		return ct.String()
	case typemap.Enum, typemap.Set, typemap.JSON, typemap.UUID:
		return "TEXT"
	case typemap.Binary, typemap.VarBinary, typemap.TinyBlob, typemap.MediumBlob, typemap.LongBlob:
		return "BLOB"
	case typemap.Geometry, typemap.GeometryCollection, typemap.Point,
		typemap.LineString, typemap.Polygon, typemap.MultiPoint,
		typemap.MultiLineString, typemap.MultiPolygon:
		return "TEXT"
	default:
		return ct.String()
	}
}

// defaultLiteral quotes a default value per literal class; numeric and
// keyword defaults stay bare.
func defaultLiteral(col model.Column, def string) string {
	trimmed := strings.TrimSpace(def)
	upper := strings.ToUpper(trimmed)
	if upper == "NULL" || strings.HasPrefix(upper, "CURRENT_") {
		return upper
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
