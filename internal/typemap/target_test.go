package typemap

import "testing"

func TestParseLanguage(t *testing.T) {
	for _, s := range []string{"go", "rust", "java"} {
		lang, err := ParseLanguage(s)
		if err != nil {
			t.Errorf("ParseLanguage(%q): unexpected error %v", s, err)
		}
		if string(lang) != s {
			t.Errorf("ParseLanguage(%q) = %q", s, lang)
		}
	}

	if _, err := ParseLanguage("cobol"); err == nil {
		t.Error("expected error for unsupported language")
	}
	if _, err := ParseLanguage(""); err == nil {
		t.Error("expected error for empty language")
	}
}

func TestTargetType(t *testing.T) {
	tests := []struct {
		ct   ColumnType
		lang Language
		want string
	}{
		{TinyInt, LangGo, "int8"},
		{BigInt, LangGo, "int64"},
		{VarChar, LangGo, "string"},
		{Blob, LangGo, "[]byte"},
		{Timestamp, LangGo, "time.Time"},
		{JSON, LangGo, "interface{}"},

		{TinyInt, LangRust, "i8"},
		{Decimal, LangRust, "bigdecimal::BigDecimal"},
		{Bit, LangRust, "bit_vec::BitVec"},
		{Timestamp, LangRust, "time::OffsetDateTime"},
		{JSON, LangRust, "serde_json::Value"},
		{UUID, LangRust, "uuid::Uuid"},

		{SmallInt, LangJava, "Integer"},
		{BigInt, LangJava, "Long"},
		{Decimal, LangJava, "java.math.BigDecimal"},
		{Date, LangJava, "java.time.LocalDate"},
		{UUID, LangJava, "java.util.UUID"},
	}

	for _, tt := range tests {
		got, err := TargetType(tt.ct, tt.lang)
		if err != nil {
			t.Errorf("TargetType(%v, %s): unexpected error %v", tt.ct, tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("TargetType(%v, %s) = %q, want %q", tt.ct, tt.lang, got, tt.want)
		}
	}
}

func TestTargetTypeUnknownLanguage(t *testing.T) {
	if _, err := TargetType(Int, Language("fortran")); err == nil {
		t.Error("expected error for unknown language")
	}
}

// Every canonical type must project in every supported language; a partial
// table would make introspection fail on valid schemas.
func TestTargetTypeCoversAllCanonicalTypes(t *testing.T) {
	for _, lang := range []Language{LangGo, LangRust, LangJava} {
		for ct := TinyInt; ct <= MultiPolygon; ct++ {
			if _, err := TargetType(ct, lang); err != nil {
				t.Errorf("no %s projection for %s: %v", lang, ct, err)
			}
		}
	}
}
