package mysql

import (
	"fmt"
	"strings"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// buildCreateTable synthesizes a MySQL CREATE TABLE statement from the
// canonical column and index model. The statement is reconstructed, not
// captured from the engine: types carry their length/scale
// parenthesization, unsigned and auto-increment flags become their MySQL
// equivalents, and defaults are quoted per literal class.
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
		if col.IsUnsigned {
			b.WriteString(" UNSIGNED")
		}
		if !col.IsNull {
			b.WriteString(" NOT NULL")
		}
		if col.IsAutoIncr {
			b.WriteString(" AUTO_INCREMENT")
		}
		if col.Default != nil && !col.IsAutoIncr {
			b.WriteString(" DEFAULT ")
			b.WriteString(defaultLiteral(col, *col.Default))
		}
		if col.Comment != "" {
			b.WriteString(" COMMENT ")
			b.WriteString(quoteString(col.Comment))
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

	for _, group := range groupIndexes(idxs) {
		if group.keyName == "PRIMARY" {
			continue
		}
		if group.nonUnique == 0 {
			b.WriteString(",\n  UNIQUE KEY ")
		} else {
			b.WriteString(",\n  KEY ")
		}
		b.WriteString(quoteIdent(group.keyName))
		b.WriteString(" (")
		for i, part := range group.parts {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quoteIdent(part.ColumnName))
			if part.SubPart != nil {
				fmt.Fprintf(&b, "(%d)", *part.SubPart)
			}
		}
		b.WriteString(")")
	}

	b.WriteString("\n)")
	return b.String()
}

// columnTypeSQL renders the canonical type back into MySQL spelling with
// its length/scale or enum-literal parenthesization.
func columnTypeSQL(col model.Column) string {
	if col.Type == nil {
		return "TEXT"
	}
	ct := *col.Type

	switch ct {
	case typemap.Enum, typemap.Set:
		quoted := make([]string, len(col.EnumValues))
		for i, v := range col.EnumValues {
			quoted[i] = quoteString(v)
		}
		return fmt.Sprintf("%s(%s)", ct, strings.Join(quoted, ","))
	case typemap.Decimal, typemap.Numeric:
		if col.Length != nil && col.Scale != nil {
			return fmt.Sprintf("%s(%d,%d)", ct, *col.Length, *col.Scale)
		}
		if col.Length != nil {
			return fmt.Sprintf("%s(%d)", ct, *col.Length)
		}
		return ct.String()
	case typemap.Char, typemap.VarChar, typemap.Binary, typemap.VarBinary, typemap.Bit:
		if col.Length != nil {
			return fmt.Sprintf("%s(%d)", ct, *col.Length)
		}
		return ct.String()
	default:
		return ct.String()
	}
}

// defaultLiteral quotes a default value per its literal class: numeric and
// keyword defaults (current-timestamp sentinel, NULL, expressions) stay
// bare, everything else becomes a string literal.
func defaultLiteral(col model.Column, def string) string {
	upper := strings.ToUpper(strings.TrimSpace(def))
	if upper == "NULL" || strings.HasPrefix(upper, "CURRENT_TIMESTAMP") {
		return upper
	}
	if col.Type != nil && isNumericType(*col.Type) {
		return def
	}
	return quoteString(def)
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

// groupIndexes folds raw index rows into logical indexes, keyed by key name
// in first-seen order. Rows are expected pre-sorted by key name and
// sequence, as every adapter returns them.
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

// quoteIdent wraps a SQL identifier in backticks, escaping embedded ones.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// quoteString renders a single-quoted MySQL string literal.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
