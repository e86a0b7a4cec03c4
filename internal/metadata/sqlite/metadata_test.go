package sqlite

import "testing"

func TestParseDeclaredType(t *testing.T) {
	tests := []struct {
		in         string
		wantBase   string
		wantLength *int64
		wantScale  *int64
	}{
		{"INTEGER", "INTEGER", nil, nil},
		{"VARCHAR(255)", "VARCHAR", i64p(255), nil},
		{"DECIMAL(10,2)", "DECIMAL", i64p(10), i64p(2)},
		{"varchar (80)", "varchar", i64p(80), nil},
		{"TEXT", "TEXT", nil, nil},
		{"", "", nil, nil},
		{"NUMERIC(6)", "NUMERIC", i64p(6), nil},
	}

	for _, tt := range tests {
		base, length, scale := parseDeclaredType(tt.in)
		if base != tt.wantBase {
			t.Errorf("parseDeclaredType(%q) base = %q, want %q", tt.in, base, tt.wantBase)
		}
		if !ptrEq(length, tt.wantLength) {
			t.Errorf("parseDeclaredType(%q) length mismatch", tt.in)
		}
		if !ptrEq(scale, tt.wantScale) {
			t.Errorf("parseDeclaredType(%q) scale mismatch", tt.in)
		}
	}
}

func TestSchemaName(t *testing.T) {
	m := &Metadata{}
	tests := []struct {
		database, schema, want string
	}{
		{"", "", "main"},
		{"attached", "", "attached"},
		{"", "explicit", "explicit"},
		{"attached", "explicit", "explicit"},
	}
	for _, tt := range tests {
		if got := m.schemaName(tt.database, tt.schema); got != tt.want {
			t.Errorf("schemaName(%q, %q) = %q, want %q", tt.database, tt.schema, got, tt.want)
		}
	}
}

func i64p(n int64) *int64 { return &n }

func ptrEq(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
