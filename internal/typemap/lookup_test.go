package typemap

import (
	"testing"

	"github.com/schemaforge/schemaforge/internal/errs"
)

func TestLookupMySQL(t *testing.T) {
	tests := []struct {
		native string
		want   ColumnType
	}{
		{"tinyint", TinyInt},
		{"smallint", SmallInt},
		{"mediumint", MediumInt},
		{"int", Int},
		{"bigint", BigInt},
		{"serial", BigInt},
		{"dec", Decimal},
		{"fixed", Decimal},
		{"decimal", Decimal},
		{"double", Double},
		{"varchar", VarChar},
		{"longtext", LongText},
		{"varbinary", VarBinary},
		{"mediumblob", MediumBlob},
		{"datetime", DateTime},
		{"timestamp", Timestamp},
		{"year", Year},
		{"json", JSON},
		{"enum", Enum},
		{"set", Set},
		{"geomcollection", GeometryCollection},
		{"multipolygon", MultiPolygon},
	}

	for _, tt := range tests {
		got, err := Lookup("mysql", tt.native)
		if err != nil {
			t.Errorf("Lookup(mysql, %q): unexpected error %v", tt.native, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(mysql, %q) = %v, want %v", tt.native, got, tt.want)
		}
	}
}

func TestLookupPostgres(t *testing.T) {
	tests := []struct {
		native string
		want   ColumnType
	}{
		{"int2", SmallInt},
		{"int4", Integer},
		{"int8", BigInt},
		{"bool", Bool},
		{"numeric", Numeric},
		{"money", Decimal},
		{"float4", Real},
		{"float8", Double},
		{"bpchar", Char},
		{"varchar", VarChar},
		{"text", Text},
		{"citext", Text},
		{"bytea", Blob},
		{"timestamptz", Timestamp},
		{"inet", VarChar},
		{"interval", VarChar},
		{"uuid", UUID},
		{"jsonb", JSON},
		{"point", Point},
		{"box", Geometry},
		{"lseg", LineString},
	}

	for _, tt := range tests {
		got, err := Lookup("postgres", tt.native)
		if err != nil {
			t.Errorf("Lookup(postgres, %q): unexpected error %v", tt.native, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(postgres, %q) = %v, want %v", tt.native, got, tt.want)
		}
	}
}

func TestLookupSQLite(t *testing.T) {
	tests := []struct {
		native string
		want   ColumnType
	}{
		{"integer", Integer},
		{"int", Int},
		{"unsigned big int", BigInt},
		{"real", Real},
		{"text", Text},
		{"clob", Text},
		{"blob", Blob},
		{"", Blob},
		{"varchar", VarChar},
		{"numeric", Numeric},
		{"boolean", Bool},
		{"datetime", DateTime},
	}

	for _, tt := range tests {
		got, err := Lookup("sqlite", tt.native)
		if err != nil {
			t.Errorf("Lookup(sqlite, %q): unexpected error %v", tt.native, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(sqlite, %q) = %v, want %v", tt.native, got, tt.want)
		}
	}
}

func TestLookupNormalizesCaseAndSpace(t *testing.T) {
	tests := []struct {
		dialect string
		native  string
		want    ColumnType
	}{
		{"mysql", "VARCHAR", VarChar},
		{"mysql", "  BigInt  ", BigInt},
		{"postgres", "TIMESTAMPTZ", Timestamp},
		{"sqlite", "Integer", Integer},
	}

	for _, tt := range tests {
		got, err := Lookup(tt.dialect, tt.native)
		if err != nil {
			t.Errorf("Lookup(%s, %q): unexpected error %v", tt.dialect, tt.native, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%s, %q) = %v, want %v", tt.dialect, tt.native, got, tt.want)
		}
	}
}

func TestLookupUnknownType(t *testing.T) {
	_, err := Lookup("mysql", "hyperloglog")
	if err == nil {
		t.Fatal("expected error for unknown native type")
	}
	if !errs.IsTypeMapping(err) {
		t.Errorf("expected a type-mapping error, got %v", err)
	}
}

func TestLookupUnknownDialect(t *testing.T) {
	_, err := Lookup("oracle", "varchar2")
	if err == nil {
		t.Fatal("expected error for unknown dialect")
	}
	if !errs.IsUnsupportedDriver(err) {
		t.Errorf("expected an unsupported-driver error, got %v", err)
	}
}

func TestLookupIsDeterministic(t *testing.T) {
	first, err := Lookup("postgres", "int8")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		got, err := Lookup("postgres", "int8")
		if err != nil {
			t.Fatal(err)
		}
		if got != first {
			t.Fatalf("run %d: Lookup returned %v, first run returned %v", i, got, first)
		}
	}
}
