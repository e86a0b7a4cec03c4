// Package schemaforge exposes relational-database structure — catalogs,
// schemas, tables, columns, indexes, synthesized DDL — through one uniform
// provider interface over MySQL, PostgreSQL, and SQLite, normalized into a
// canonical data model for code generation.
package schemaforge

import (
	"context"

	"github.com/schemaforge/schemaforge/internal/metadata"
	"github.com/schemaforge/schemaforge/internal/metadata/mysql"
	"github.com/schemaforge/schemaforge/internal/metadata/postgres"
	"github.com/schemaforge/schemaforge/internal/metadata/sqlite"
	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// Provider is the shared introspection contract; see metadata.Provider.
type Provider = metadata.Provider

// Config carries pool sizing and the target language; see metadata.Config.
type Config = metadata.Config

// ParseDriver selects a dialect from a connection URL without any I/O.
var ParseDriver = metadata.ParseDriver

// Option adjusts the provider configuration.
type Option func(*metadata.Config)

// WithLanguage sets the code generator's output language for the
// target-type annotation on columns.
func WithLanguage(lang typemap.Language) Option {
	return func(c *metadata.Config) { c.Language = lang }
}

// WithPoolLimits bounds the underlying connection pool.
func WithPoolLimits(maxOpen, maxIdle int) Option {
	return func(c *metadata.Config) {
		c.MaxOpenConns = maxOpen
		c.MaxIdleConns = maxIdle
	}
}

// Open resolves the dialect from url, connects a pool, and returns the
// matching adapter. The dialect is decided exactly once; the returned
// provider is a shared, read-only handle safe for arbitrarily many
// concurrent in-flight operations.
func Open(ctx context.Context, url string, opts ...Option) (Provider, error) {
	driver, err := metadata.ParseDriver(url)
	if err != nil {
		return nil, err
	}

	var cfg metadata.Config
	for _, opt := range opts {
		opt(&cfg)
	}

	dsn := metadata.NormalizeDSN(driver, url)
	switch driver {
	case metadata.DriverMySQL:
		return mysql.Open(ctx, dsn, cfg)
	case metadata.DriverPostgres:
		return postgres.Open(ctx, dsn, cfg)
	default:
		return sqlite.Open(ctx, dsn, cfg)
	}
}

// Fetch opens a provider for url and pairs table discovery with per-table
// column discovery: columns for the explicit tableNames allowlist, or for
// every discovered table when the allowlist is empty. A single per-table
// failure aborts the whole call — partial schemas are never returned.
func Fetch(ctx context.Context, url, schema string, tableNames []string, opts ...Option) ([]model.Table, []model.Column, error) {
	p, err := Open(ctx, url, opts...)
	if err != nil {
		return nil, nil, err
	}
	defer p.Close()

	return metadata.FetchTableColumns(ctx, p, schema, tableNames)
}
