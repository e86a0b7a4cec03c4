// Package metadata defines the polymorphic introspection contract the
// dialect adapters satisfy, the driver resolver that selects a dialect from
// a connection URL, and the schema aggregation built on top of the contract.
//
// A Provider is a shared, read-mostly handle over one connection pool: any
// number of operations may be in flight against it concurrently, completion
// order is unspecified, and every call re-queries the engine — nothing is
// cached. Cancellation and timeouts are the caller's business, carried
// through the context and the pool.
package metadata

import (
	"context"
	"strings"
	"time"

	"github.com/schemaforge/schemaforge/internal/errs"
	"github.com/schemaforge/schemaforge/internal/model"
	"github.com/schemaforge/schemaforge/internal/typemap"
)

// Driver identifies one supported dialect. The values are the three fixed
// lowercase literals used in external encodings.
type Driver string

const (
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string { return string(d) }

// ParseDriver selects a dialect from a connection URL. The match is purely
// lexical — trim, lower-case, prefix-compare — so configuration can be
// validated without opening a connection.
func ParseDriver(url string) (Driver, error) {
	s := strings.ToLower(strings.TrimSpace(url))
	switch {
	case strings.HasPrefix(s, "mysql"):
		return DriverMySQL, nil
	case strings.HasPrefix(s, "postgres"):
		return DriverPostgres, nil
	case strings.HasPrefix(s, "sqlite"):
		return DriverSQLite, nil
	default:
		return "", errs.Newf(errs.KindUnsupportedDriver, "driver not supported: %q", url)
	}
}

// Config carries pool sizing and the generator's target language into an
// adapter. The zero value is usable: pool limits stay at driver defaults and
// the target language is Go.
type Config struct {
	Language        typemap.Language
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// TargetLanguage returns the configured language, defaulting to Go.
func (c Config) TargetLanguage() typemap.Language {
	if c.Language == "" {
		return typemap.LangGo
	}
	return c.Language
}

// Provider is the shared introspection contract all dialect adapters
// satisfy. Callers program against this interface, never against a concrete
// adapter.
//
// The operations have no required call ordering and each issues at most one
// join-bearing query against the engine. An empty database argument means
// "the connection's current database", not a literal empty-string filter;
// adapters special-case it in their SQL. An adapter that has no
// implementation of an operation for its dialect fails with an
// unsupported-operation error — never with a misleading empty result.
type Provider interface {
	// Databases lists the catalogs visible to the connection's credentials.
	Databases(ctx context.Context) ([]model.Database, error)

	// Schemas lists the schema namespaces visible to the connection.
	Schemas(ctx context.Context) ([]model.Schema, error)

	// Tables lists the tables of schema, in engine discovery order.
	Tables(ctx context.Context, database, schema string) ([]model.Table, error)

	// Columns lists all columns of table, strictly ascending by ordinal
	// position, each fully annotated via the type mapper.
	Columns(ctx context.Context, database, schema, table string) ([]model.Column, error)

	// Indexes lists raw index rows for table. Composite indexes appear as
	// multiple rows sharing a key name; grouping them back into logical
	// indexes is the caller's responsibility.
	Indexes(ctx context.Context, database, schema, table string) ([]model.Index, error)

	// CreateTableSQL synthesizes dialect-native DDL for table from the
	// canonical column and index model; it is not captured verbatim from
	// the engine.
	CreateTableSQL(ctx context.Context, database, schema, table string) (string, error)

	// Driver reports the adapter's dialect.
	Driver() Driver

	// Close releases the underlying connection pool.
	Close() error
}
