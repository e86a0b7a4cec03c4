package typemap

import "github.com/schemaforge/schemaforge/internal/errs"

// Language selects the output language of the downstream code generator.
type Language string

const (
	LangGo   Language = "go"
	LangRust Language = "rust"
	LangJava Language = "java"
)

// ParseLanguage matches a config/CLI spelling against the supported target
// languages.
func ParseLanguage(s string) (Language, error) {
	switch Language(s) {
	case LangGo, LangRust, LangJava:
		return Language(s), nil
	default:
		return "", errs.Newf(errs.KindTypeMapping, "unsupported target language %q", s)
	}
}

// TargetType projects a canonical type onto a type name in the generator's
// output language. The projection is a pure lookup: the same canonical type
// and language always yield byte-identical output.
func TargetType(ct ColumnType, lang Language) (string, error) {
	var table map[ColumnType]string
	switch lang {
	case LangGo:
		table = goTypes
	case LangRust:
		table = rustTypes
	case LangJava:
		table = javaTypes
	default:
		return "", errs.Newf(errs.KindTypeMapping, "unsupported target language %q", string(lang))
	}
	name, ok := table[ct]
	if !ok {
		return "", errs.Newf(errs.KindTypeMapping, "no %s projection for canonical type %s", string(lang), ct)
	}
	return name, nil
}

var goTypes = map[ColumnType]string{
	TinyInt:   "int8",
	SmallInt:  "int16",
	MediumInt: "int32",
	Int:       "int32",
	Integer:   "int32",
	BigInt:    "int64",
	Bool:      "bool",

	Decimal: "float64",
	Numeric: "float64",
	Float:   "float32",
	Double:  "float64",
	Real:    "float64",
	Bit:     "[]byte",

	Char:       "string",
	VarChar:    "string",
	TinyText:   "string",
	Text:       "string",
	MediumText: "string",
	LongText:   "string",

	Binary:     "[]byte",
	VarBinary:  "[]byte",
	TinyBlob:   "[]byte",
	Blob:       "[]byte",
	MediumBlob: "[]byte",
	LongBlob:   "[]byte",

	Date:      "time.Time",
	Time:      "string",
	DateTime:  "time.Time",
	Timestamp: "time.Time",
	Year:      "int32",

	JSON: "interface{}",
	UUID: "string",
	Enum: "string",
	Set:  "string",

	Geometry:           "string",
	GeometryCollection: "string",
	Point:              "string",
	LineString:         "string",
	Polygon:            "string",
	MultiPoint:         "string",
	MultiLineString:    "string",
	MultiPolygon:       "string",
}

var rustTypes = map[ColumnType]string{
	TinyInt:   "i8",
	SmallInt:  "i16",
	MediumInt: "i32",
	Int:       "i32",
	Integer:   "i32",
	BigInt:    "i64",
	Bool:      "bool",

	Decimal: "bigdecimal::BigDecimal",
	Numeric: "bigdecimal::BigDecimal",
	Float:   "f32",
	Double:  "f64",
	Real:    "f64",
	Bit:     "bit_vec::BitVec",

	Char:       "String",
	VarChar:    "String",
	TinyText:   "String",
	Text:       "String",
	MediumText: "String",
	LongText:   "String",

	Binary:     "Vec<u8>",
	VarBinary:  "Vec<u8>",
	TinyBlob:   "Vec<u8>",
	Blob:       "Vec<u8>",
	MediumBlob: "Vec<u8>",
	LongBlob:   "Vec<u8>",

	Date:      "time::Date",
	Time:      "time::Time",
	DateTime:  "time::PrimitiveDateTime",
	Timestamp: "time::OffsetDateTime",
	Year:      "time::Date",

	JSON: "serde_json::Value",
	UUID: "uuid::Uuid",
	Enum: "String",
	Set:  "String",

	Geometry:           "String",
	GeometryCollection: "String",
	Point:              "String",
	LineString:         "String",
	Polygon:            "String",
	MultiPoint:         "String",
	MultiLineString:    "String",
	MultiPolygon:       "String",
}

var javaTypes = map[ColumnType]string{
	TinyInt:   "Integer",
	SmallInt:  "Integer",
	MediumInt: "Integer",
	Int:       "Integer",
	Integer:   "Integer",
	BigInt:    "Long",
	Bool:      "Boolean",

	Decimal: "java.math.BigDecimal",
	Numeric: "java.math.BigDecimal",
	Float:   "Float",
	Double:  "Double",
	Real:    "Double",
	Bit:     "byte[]",

	Char:       "String",
	VarChar:    "String",
	TinyText:   "String",
	Text:       "String",
	MediumText: "String",
	LongText:   "String",

	Binary:     "byte[]",
	VarBinary:  "byte[]",
	TinyBlob:   "byte[]",
	Blob:       "byte[]",
	MediumBlob: "byte[]",
	LongBlob:   "byte[]",

	Date:      "java.time.LocalDate",
	Time:      "java.time.LocalTime",
	DateTime:  "java.time.LocalDateTime",
	Timestamp: "java.time.OffsetDateTime",
	Year:      "java.time.Year",

	JSON: "String",
	UUID: "java.util.UUID",
	Enum: "String",
	Set:  "String",

	Geometry:           "String",
	GeometryCollection: "String",
	Point:              "String",
	LineString:         "String",
	Polygon:            "String",
	MultiPoint:         "String",
	MultiLineString:    "String",
	MultiPolygon:       "String",
}
