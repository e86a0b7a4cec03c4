package typemap

import (
	"strings"

	"github.com/schemaforge/schemaforge/internal/errs"
)

// Lookup resolves a native column type spelling for the given dialect
// ("mysql", "postgres", "sqlite") into its canonical type. The spelling is
// trimmed and matched case-insensitively; length/precision parenthesization
// must already be stripped by the adapter. Unrecognized input fails with a
// type-mapping error rather than degrading to a generic text type.
func Lookup(dialect, nativeType string) (ColumnType, error) {
	table, ok := dialectTables[dialect]
	if !ok {
		return 0, errs.Newf(errs.KindUnsupportedDriver, "no type table for dialect %q", dialect)
	}
	ct, ok := table[strings.ToLower(strings.TrimSpace(nativeType))]
	if !ok {
		return 0, errs.Newf(errs.KindTypeMapping, "%s type %q has no canonical mapping", dialect, nativeType)
	}
	return ct, nil
}

var dialectTables = map[string]map[string]ColumnType{
	"mysql":    mysqlTypes,
	"postgres": postgresTypes,
	"sqlite":   sqliteTypes,
}

// mysqlTypes keys are information_schema DATA_TYPE spellings plus the
// synonyms MySQL accepts in DDL.
var mysqlTypes = map[string]ColumnType{
	"tinyint":   TinyInt,
	"smallint":  SmallInt,
	"mediumint": MediumInt,
	"int":       Int,
	"integer":   Integer,
	"bigint":    BigInt,
	"serial":    BigInt, // alias for BIGINT UNSIGNED AUTO_INCREMENT
	"bool":      Bool,
	"boolean":   Bool,

	"decimal":          Decimal,
	"dec":              Decimal,
	"fixed":            Decimal,
	"numeric":          Numeric,
	"float":            Float,
	"double":           Double,
	"double precision": Double,
	"real":             Real,
	"bit":              Bit,

	"char":       Char,
	"varchar":    VarChar,
	"tinytext":   TinyText,
	"text":       Text,
	"mediumtext": MediumText,
	"longtext":   LongText,

	"binary":     Binary,
	"varbinary":  VarBinary,
	"tinyblob":   TinyBlob,
	"blob":       Blob,
	"mediumblob": MediumBlob,
	"longblob":   LongBlob,

	"date":      Date,
	"time":      Time,
	"datetime":  DateTime,
	"timestamp": Timestamp,
	"year":      Year,

	"json": JSON,
	"enum": Enum,
	"set":  Set,

	"geometry":           Geometry,
	"geometrycollection": GeometryCollection,
	"geomcollection":     GeometryCollection,
	"point":              Point,
	"linestring":         LineString,
	"polygon":            Polygon,
	"multipoint":         MultiPoint,
	"multilinestring":    MultiLineString,
	"multipolygon":       MultiPolygon,
}

// postgresTypes keys are udt_name spellings plus the standard SQL names the
// information_schema data_type column reports.
var postgresTypes = map[string]ColumnType{
	"bool":    Bool,
	"boolean": Bool,

	"int2":        SmallInt,
	"smallint":    SmallInt,
	"smallserial": SmallInt,
	"serial2":     SmallInt,
	"int4":        Integer,
	"int":         Integer,
	"integer":     Integer,
	"serial":      Integer,
	"serial4":     Integer,
	"int8":        BigInt,
	"bigint":      BigInt,
	"bigserial":   BigInt,
	"serial8":     BigInt,

	"float4":           Real,
	"real":             Real,
	"float8":           Double,
	"double precision": Double,
	"numeric":          Numeric,
	"decimal":          Decimal,
	"money":            Decimal,

	"bpchar":            Char,
	"char":              Char,
	"character":         Char,
	"varchar":           VarChar,
	"character varying": VarChar,
	"text":              Text,
	"name":              Text,
	"citext":            Text,
	"xml":               Text,

	// Network and interval types carry no canonical width; they round-trip
	// through their text representation.
	"inet":     VarChar,
	"cidr":     VarChar,
	"macaddr":  VarChar,
	"macaddr8": VarChar,
	"interval": VarChar,

	"bytea": Blob,

	"date":                        Date,
	"time":                        Time,
	"timetz":                      Time,
	"time without time zone":      Time,
	"time with time zone":         Time,
	"timestamp":                   Timestamp,
	"timestamptz":                 Timestamp,
	"timestamp without time zone": Timestamp,
	"timestamp with time zone":    Timestamp,

	"json":  JSON,
	"jsonb": JSON,
	"uuid":  UUID,

	"bit":         Bit,
	"varbit":      Bit,
	"bit varying": Bit,

	"point":   Point,
	"polygon": Polygon,
	"line":    LineString,
	"lseg":    LineString,
	"path":    LineString,
	"box":     Geometry,
	"circle":  Geometry,
}

// sqliteTypes keys are the declared-type names SQLite documents for its
// affinity rules. SQLite enforces none of them at storage level; the mapping
// is best effort over the declaration.
var sqliteTypes = map[string]ColumnType{
	"int":              Int,
	"integer":          Integer,
	"tinyint":          TinyInt,
	"smallint":         SmallInt,
	"int2":             SmallInt,
	"mediumint":        MediumInt,
	"bigint":           BigInt,
	"int8":             BigInt,
	"unsigned big int": BigInt,
	"bool":             Bool,
	"boolean":          Bool,

	"real":             Real,
	"double":           Double,
	"double precision": Double,
	"float":            Float,
	"numeric":          Numeric,
	"decimal":          Decimal,

	"character":         Char,
	"nchar":             Char,
	"native character":  Char,
	"varchar":           VarChar,
	"varying character": VarChar,
	"nvarchar":          VarChar,
	"text":              Text,
	"clob":              Text,

	"blob": Blob,
	// Columns declared with no type at all get BLOB affinity.
	"": Blob,

	"date":      Date,
	"time":      Time,
	"datetime":  DateTime,
	"timestamp": Timestamp,

	"json": JSON,
}
