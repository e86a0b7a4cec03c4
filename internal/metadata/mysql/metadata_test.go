package mysql

import (
	"reflect"
	"testing"
)

func TestParseColumnType(t *testing.T) {
	i := func(n int64) *int64 { return &n }

	tests := []struct {
		in   string
		want parsedColumnType
	}{
		{"int", parsedColumnType{base: "int"}},
		{"int(10)", parsedColumnType{base: "int", length: i(10)}},
		{"int(10) unsigned", parsedColumnType{base: "int", length: i(10), unsigned: true}},
		{"bigint unsigned", parsedColumnType{base: "bigint", unsigned: true}},
		{"decimal(10,2)", parsedColumnType{base: "decimal", length: i(10), scale: i(2)}},
		{"varchar(255)", parsedColumnType{base: "varchar", length: i(255)}},
		{"enum('a','b')", parsedColumnType{base: "enum", enumValues: []string{"a", "b"}}},
		{"set('x','y','z')", parsedColumnType{base: "set", enumValues: []string{"x", "y", "z"}}},
		{"ENUM('A')", parsedColumnType{base: "enum", enumValues: []string{"A"}}},
		{"", parsedColumnType{}},
	}

	for _, tt := range tests {
		got := parseColumnType(tt.in)
		if got.base != tt.want.base {
			t.Errorf("parseColumnType(%q).base = %q, want %q", tt.in, got.base, tt.want.base)
		}
		if got.unsigned != tt.want.unsigned {
			t.Errorf("parseColumnType(%q).unsigned = %v", tt.in, got.unsigned)
		}
		if !int64PtrEq(got.length, tt.want.length) {
			t.Errorf("parseColumnType(%q).length mismatch", tt.in)
		}
		if !int64PtrEq(got.scale, tt.want.scale) {
			t.Errorf("parseColumnType(%q).scale mismatch", tt.in)
		}
		if !reflect.DeepEqual(got.enumValues, tt.want.enumValues) {
			t.Errorf("parseColumnType(%q).enumValues = %v, want %v", tt.in, got.enumValues, tt.want.enumValues)
		}
	}
}

func TestParseQuotedList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"'a','b'", []string{"a", "b"}},
		{"'single'", []string{"single"}},
		{"'it''s','fine'", []string{"it's", "fine"}},
		{"'with,comma','plain'", []string{"with,comma", "plain"}},
		{"''", []string{""}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := parseQuotedList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseQuotedList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSchemaFilter(t *testing.T) {
	tests := []struct {
		name       string
		expr       string
		database   string
		schema     string
		wantClause string
		wantArgs   []any
	}{
		{"both empty falls back to current database", "TABLE_SCHEMA", "", "", "TABLE_SCHEMA = DATABASE()", nil},
		{"database binds", "TABLE_SCHEMA", "appdb", "", "TABLE_SCHEMA = ?", []any{"appdb"}},
		{"schema binds", "TABLE_SCHEMA", "", "billing", "TABLE_SCHEMA = ?", []any{"billing"}},
		{"schema wins over database", "TABLE_SCHEMA", "appdb", "billing", "TABLE_SCHEMA = ?", []any{"billing"}},
		{"qualified expr", "c.TABLE_SCHEMA", "", "", "c.TABLE_SCHEMA = DATABASE()", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, args := schemaFilter(tt.expr, tt.database, tt.schema)
			if clause != tt.wantClause {
				t.Errorf("clause = %q, want %q", clause, tt.wantClause)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestResolveLengthScale(t *testing.T) {
	i := func(n int64) *int64 { return &n }

	tests := []struct {
		name       string
		maxLength  *int64
		precision  *int64
		scale      *int64
		parsed     parsedColumnType
		wantLength *int64
		wantScale  *int64
	}{
		{"character length wins", i(255), i(10), nil, parsedColumnType{length: i(11)}, i(255), nil},
		{"precision backs missing character length", nil, i(10), i(2), parsedColumnType{length: i(12)}, i(10), i(2)},
		{"display width backs missing catalog values", nil, nil, nil, parsedColumnType{length: i(4)}, i(4), nil},
		{"parsed scale backs null numeric scale", nil, i(10), nil, parsedColumnType{scale: i(2)}, i(10), i(2)},
		{"nothing known", nil, nil, nil, parsedColumnType{}, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			length, scale := resolveLengthScale(tt.maxLength, tt.precision, tt.scale, tt.parsed)
			if !int64PtrEq(length, tt.wantLength) {
				t.Errorf("length mismatch")
			}
			if !int64PtrEq(scale, tt.wantScale) {
				t.Errorf("scale mismatch")
			}
		})
	}
}

func int64PtrEq(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
