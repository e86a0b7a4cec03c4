// Package config loads and validates the generator configuration from a
// YAML file, environment variables, or flags, merged through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// GeneratorConfig drives a full introspection-and-generation run.
type GeneratorConfig struct {
	// DatabaseURL is the connection URL; its prefix selects the driver.
	DatabaseURL string `mapstructure:"database_url" yaml:"database_url"`
	// Schema narrows introspection to one namespace. Empty means the
	// connection's current schema (or database, dialect depending).
	Schema string `mapstructure:"schema" yaml:"schema"`
	// Language selects the target-type projection (go, rust, java).
	Language string `mapstructure:"language" yaml:"language"`
	// TableNames is the explicit allowlist; empty means every table.
	TableNames []string `mapstructure:"table_names" yaml:"table_names"`
	// IgnoreTables drops exact table names after discovery.
	IgnoreTables []string `mapstructure:"ignore_tables" yaml:"ignore_tables"`
	// IgnoreTablePrefix drops tables whose name starts with the prefix.
	IgnoreTablePrefix string `mapstructure:"ignore_table_prefix" yaml:"ignore_table_prefix"`
	// Path is where generated output is written.
	Path string `mapstructure:"path" yaml:"path"`
	// Override allows overwriting existing files under Path.
	Override bool `mapstructure:"override" yaml:"override"`

	Pool    PoolConfig    `mapstructure:"pool" yaml:"pool"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// PoolConfig bounds the introspection connection pool.
type PoolConfig struct {
	MaxOpenConns int `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns the configuration used when no file or flags are given.
func Default() *GeneratorConfig {
	return &GeneratorConfig{
		Language: string(typemap.LangGo),
		Path:     ".",
		Pool:     PoolConfig{MaxOpenConns: 4, MaxIdleConns: 2},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the configuration from the viper instance already primed by
// the CLI (config file, SCHEMAFORGE_* env vars, bound flags) on top of the
// defaults.
func Load(v *viper.Viper) (*GeneratorConfig, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot drive a run.
func (c *GeneratorConfig) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("database_url is required")
	}
	if _, err := typemap.ParseLanguage(c.Language); err != nil {
		return err
	}
	if c.Pool.MaxOpenConns < 0 || c.Pool.MaxIdleConns < 0 {
		return fmt.Errorf("pool limits must not be negative")
	}
	return nil
}

// TargetLanguage returns the parsed language; Validate has already checked it.
func (c *GeneratorConfig) TargetLanguage() typemap.Language {
	lang, err := typemap.ParseLanguage(c.Language)
	if err != nil {
		return typemap.LangGo
	}
	return lang
}

// FilterTables applies the ignore list and prefix to discovered tables,
// preserving discovery order. The allowlist is handled earlier, at fetch
// time; this trims what discovery returned.
func (c *GeneratorConfig) FilterTables(tables []model.Table) []model.Table {
	ignored := make(map[string]bool, len(c.IgnoreTables))
	for _, name := range c.IgnoreTables {
		ignored[name] = true
	}

	out := make([]model.Table, 0, len(tables))
	for _, t := range tables {
		if ignored[t.Name] {
			continue
		}
		if c.IgnoreTablePrefix != "" && strings.HasPrefix(t.Name, c.IgnoreTablePrefix) {
			continue
		}
		out = append(out, t)
	}
	return out
}
