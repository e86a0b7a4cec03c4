package config

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	v.Set("database_url", "sqlite://app.db")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Language != "go" {
		t.Errorf("default language = %q, want go", cfg.Language)
	}
	if cfg.Path != "." {
		t.Errorf("default path = %q, want .", cfg.Path)
	}
	if cfg.Pool.MaxOpenConns != 4 {
		t.Errorf("default max open conns = %d, want 4", cfg.Pool.MaxOpenConns)
	}
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	v.Set("database_url", "postgres://localhost/app")
	v.Set("language", "rust")
	v.Set("schema", "billing")
	v.Set("table_names", []string{"invoices", "payments"})
	v.Set("ignore_table_prefix", "tmp_")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TargetLanguage() != typemap.LangRust {
		t.Errorf("language = %q, want rust", cfg.Language)
	}
	if cfg.Schema != "billing" {
		t.Errorf("schema = %q", cfg.Schema)
	}
	if len(cfg.TableNames) != 2 {
		t.Errorf("table names = %v", cfg.TableNames)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GeneratorConfig)
		wantErr bool
	}{
		{"valid", func(c *GeneratorConfig) {}, false},
		{"missing url", func(c *GeneratorConfig) { c.DatabaseURL = "" }, true},
		{"blank url", func(c *GeneratorConfig) { c.DatabaseURL = "   " }, true},
		{"bad language", func(c *GeneratorConfig) { c.Language = "cobol" }, true},
		{"negative pool", func(c *GeneratorConfig) { c.Pool.MaxOpenConns = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DatabaseURL = "mysql://localhost/app"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFilterTables(t *testing.T) {
	cfg := Default()
	cfg.IgnoreTables = []string{"schema_migrations"}
	cfg.IgnoreTablePrefix = "tmp_"

	in := []model.Table{
		{Name: "users"},
		{Name: "schema_migrations"},
		{Name: "tmp_import"},
		{Name: "orders"},
	}

	got := cfg.FilterTables(in)
	if len(got) != 2 {
		t.Fatalf("got %d tables, want 2", len(got))
	}
	if got[0].Name != "users" || got[1].Name != "orders" {
		t.Errorf("filtered order wrong: %v", got)
	}
}

func TestFilterTablesNoRules(t *testing.T) {
	cfg := Default()
	in := []model.Table{{Name: "a"}, {Name: "b"}}
	if got := cfg.FilterTables(in); len(got) != 2 {
		t.Errorf("no rules should keep everything, got %v", got)
	}
}
