// Package typemap normalizes native column type spellings into a closed
// canonical type system and projects canonical types onto target-language
// type names. Both directions are pure lookups: no I/O, no state, and no
// silent fallback — an unrecognized native spelling is a hard failure, since
// a guessed type would corrupt the generated code downstream.
package typemap

import (
	"fmt"

	"github.com/schemaforge/schemaforge/internal/errs"
)

// ColumnType is the canonical, engine-independent column type tag. The
// enumeration is closed: there is no "unknown" variant.
type ColumnType int

const (
	TinyInt ColumnType = iota
	SmallInt
	MediumInt
	Int
	Integer
	BigInt
	Bool

	Decimal
	Numeric
	Float
	Double
	Real
	Bit

	Char
	VarChar
	TinyText
	Text
	MediumText
	LongText

	Binary
	VarBinary
	TinyBlob
	Blob
	MediumBlob
	LongBlob

	Date
	Time
	DateTime
	Timestamp
	Year

	JSON
	UUID
	Enum
	Set

	Geometry
	GeometryCollection
	Point
	LineString
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
)

// columnTypeNames maps each variant to its canonical SQL spelling. The order
// must match the constant declarations above.
var columnTypeNames = [...]string{
	"TINYINT",
	"SMALLINT",
	"MEDIUMINT",
	"INT",
	"INTEGER",
	"BIGINT",
	"BOOLEAN",
	"DECIMAL",
	"NUMERIC",
	"FLOAT",
	"DOUBLE",
	"REAL",
	"BIT",
	"CHAR",
	"VARCHAR",
	"TINYTEXT",
	"TEXT",
	"MEDIUMTEXT",
	"LONGTEXT",
	"BINARY",
	"VARBINARY",
	"TINYBLOB",
	"BLOB",
	"MEDIUMBLOB",
	"LONGBLOB",
	"DATE",
	"TIME",
	"DATETIME",
	"TIMESTAMP",
	"YEAR",
	"JSON",
	"UUID",
	"ENUM",
	"SET",
	"GEOMETRY",
	"GEOMETRYCOLLECTION",
	"POINT",
	"LINESTRING",
	"POLYGON",
	"MULTIPOINT",
	"MULTILINESTRING",
	"MULTIPOLYGON",
}

// String returns the canonical SQL spelling of the type.
func (c ColumnType) String() string {
	if int(c) < 0 || int(c) >= len(columnTypeNames) {
		return fmt.Sprintf("ColumnType(%d)", int(c))
	}
	return columnTypeNames[c]
}

// MarshalText encodes the canonical spelling, for JSON and YAML output.
func (c ColumnType) MarshalText() ([]byte, error) {
	if int(c) < 0 || int(c) >= len(columnTypeNames) {
		return nil, errs.Newf(errs.KindTypeMapping, "invalid column type %d", int(c))
	}
	return []byte(columnTypeNames[c]), nil
}

// UnmarshalText decodes a canonical spelling produced by MarshalText.
func (c *ColumnType) UnmarshalText(text []byte) error {
	s := string(text)
	for i, name := range columnTypeNames {
		if name == s {
			*c = ColumnType(i)
			return nil
		}
	}
	return errs.Newf(errs.KindTypeMapping, "unknown canonical type %q", s)
}
