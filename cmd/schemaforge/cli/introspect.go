package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newDatabasesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "databases",
		Short: "List the databases visible to the connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			dbs, err := p.Databases(ctx)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, dbs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")

	return cmd
}

func newSchemasCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List the schema namespaces",
		Long: `List the schema namespaces visible to the connection. On MySQL schemas
and databases are the same namespace; on SQLite this operation is
unsupported and fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			schemas, err := p.Schemas(ctx)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, schemas)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")

	return cmd
}

func newTablesCmd() *cobra.Command {
	var (
		output   string
		database string
		schema   string
	)

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List the tables of a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.Schema
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			tables, err := p.Tables(ctx, database, schema)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, cfg.FilterTables(tables))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().StringVar(&database, "database", "", "Database to inspect (default: current)")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema to inspect (default: current)")

	return cmd
}

func newColumnsCmd() *cobra.Command {
	var (
		output   string
		database string
		schema   string
	)

	cmd := &cobra.Command{
		Use:   "columns <table>",
		Short: "List the columns of a table with canonical and target types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.Schema
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			cols, err := p.Columns(ctx, database, schema, args[0])
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, cols)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().StringVar(&database, "database", "", "Database to inspect (default: current)")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema to inspect (default: current)")

	return cmd
}

func newIndexesCmd() *cobra.Command {
	var (
		output   string
		database string
		schema   string
	)

	cmd := &cobra.Command{
		Use:   "indexes <table>",
		Short: "List the index rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.Schema
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			idxs, err := p.Indexes(ctx, database, schema, args[0])
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, idxs)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().StringVar(&database, "database", "", "Database to inspect (default: current)")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema to inspect (default: current)")

	return cmd
}

func newDDLCmd() *cobra.Command {
	var (
		database string
		schema   string
	)

	cmd := &cobra.Command{
		Use:   "ddl <table>",
		Short: "Print synthesized CREATE TABLE DDL for a table",
		Long: `Print CREATE TABLE DDL synthesized from the canonical column and index
model in the connected dialect's syntax, rather than echoing what the
server has stored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if schema == "" {
				schema = cfg.Schema
			}
			ctx := context.Background()
			p, err := openProvider(ctx, cfg)
			if err != nil {
				return err
			}
			defer p.Close()

			ddl, err := p.CreateTableSQL(ctx, database, schema, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ddl)
			return nil
		},
	}

	cmd.Flags().StringVar(&database, "database", "", "Database to inspect (default: current)")
	cmd.Flags().StringVar(&schema, "schema", "", "Schema to inspect (default: current)")

	return cmd
}
