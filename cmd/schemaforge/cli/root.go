package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemaforge",
		Short: "Inspect relational database structure and map it to code types",
		Long: `Schemaforge connects to MySQL, PostgreSQL, or SQLite databases, reads
their catalogs through one uniform interface, and normalizes tables,
columns, and indexes into a canonical model annotated with target-language
types for code generation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schemaforge.yaml)")
	cmd.PersistentFlags().String("url", "", "database connection URL (mysql://, postgres://, sqlite://)")
	cmd.PersistentFlags().String("language", "", "target language for type annotations (go, rust, java)")
	viper.BindPFlag("database_url", cmd.PersistentFlags().Lookup("url"))
	viper.BindPFlag("language", cmd.PersistentFlags().Lookup("language"))

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newDatabasesCmd())
	cmd.AddCommand(newSchemasCmd())
	cmd.AddCommand(newTablesCmd())
	cmd.AddCommand(newColumnsCmd())
	cmd.AddCommand(newIndexesCmd())
	cmd.AddCommand(newDDLCmd())
	cmd.AddCommand(newDumpCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("schemaforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.schemaforge")
	}

	viper.SetEnvPrefix("SCHEMAFORGE")
	viper.AutomaticEnv()
	viper.ReadInConfig() // config file is optional
}
