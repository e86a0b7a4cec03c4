package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/schemaforge/schemaforge"
	"github.com/schemaforge/schemaforge/internal/config"
	"github.com/schemaforge/schemaforge/internal/logger"
	"github.com/schemaforge/schemaforge/internal/metadata"
)

// loadConfig resolves the effective generator configuration from the viper
// state primed in initConfig (config file, env, bound flags).
func loadConfig() (*config.GeneratorConfig, error) {
	return config.Load(viper.GetViper())
}

// newLogger builds the CLI logger from the loaded configuration.
func newLogger(cfg *config.GeneratorConfig) zerolog.Logger {
	return logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
}

// openProvider connects the dialect adapter selected by the configured URL.
func openProvider(ctx context.Context, cfg *config.GeneratorConfig) (metadata.Provider, error) {
	return schemaforge.Open(ctx, cfg.DatabaseURL,
		schemaforge.WithLanguage(cfg.TargetLanguage()),
		schemaforge.WithPoolLimits(cfg.Pool.MaxOpenConns, cfg.Pool.MaxIdleConns),
	)
}

// encode writes v to w in the requested output format.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format %q; use json or yaml", format)
	}
}
