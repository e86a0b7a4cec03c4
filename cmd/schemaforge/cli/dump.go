package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schemaforge/schemaforge/internal/model"
)

// schemaDump is the combined document emitted by the dump command.
type schemaDump struct {
	Driver  string         `json:"driver" yaml:"driver"`
	Schema  string         `json:"schema,omitempty" yaml:"schema,omitempty"`
	Tables  []model.Table  `json:"tables" yaml:"tables"`
	Columns []model.Column `json:"columns" yaml:"columns"`
}

func newDumpCmd() *cobra.Command {
	var (
		output string
		toFile bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the full schema: tables plus per-table columns",
		Long: `Discover the tables of the configured schema, honoring the allowlist and
ignore rules from the configuration, and pair them with their columns in
one document. A single failing table aborts the whole dump.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			tables, err := p.Tables(ctx, "", cfg.Schema)
			if err != nil {
				return err
			}
			tables = cfg.FilterTables(tables)

			allow := cfg.TableNames
			if len(allow) == 0 {
				allow = make([]string, len(tables))
				for i, t := range tables {
					allow[i] = t.Name
				}
			}

			var columns []model.Column
			for _, name := range allow {
				cols, err := p.Columns(ctx, "", cfg.Schema, name)
				if err != nil {
					return fmt.Errorf("columns of %q: %w", name, err)
				}
				columns = append(columns, cols...)
			}

			log.Info().
				Str("driver", string(p.Driver())).
				Int("tables", len(tables)).
				Int("columns", len(columns)).
				Msg("schema dumped")

			dump := schemaDump{
				Driver:  string(p.Driver()),
				Schema:  cfg.Schema,
				Tables:  tables,
				Columns: columns,
			}

			if !toFile {
				return encode(cmd.OutOrStdout(), output, dump)
			}
			return writeDump(cfg.Path, cfg.Override, output, dump)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().BoolVar(&toFile, "write", false, "Write to the configured path instead of stdout")

	return cmd
}

// writeDump writes the document under dir as schema.json or schema.yaml,
// refusing to overwrite unless override is set.
func writeDump(dir string, override bool, format string, dump schemaDump) error {
	if format == "" {
		format = "json"
	}
	path := filepath.Join(dir, "schema."+format)

	if !override {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s exists; set override to replace it", path)
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return encode(f, format, dump)
}
