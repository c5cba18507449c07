package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/boynton/tableql"
	"github.com/boynton/tableql/sqlgen"
)

var (
	format     string
	outputFile string
	outputDir  string
	dialect    string
	dbURL      string
	sqlitePath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "tableql [files]",
	Short: "Analyze table schemas written in GraphQL syntax",
	Long: `TableQL reads schema files that declare tables and enumerations in GraphQL
syntax, checks them, and prints the resolved schema model. Subcommands export
the model to JSON or YAML, split it into one file per declaration, or turn it
into SQL tables.`,
	Args:          cobra.MinimumNArgs(1),
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		tableql.Verbose = verbose
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [files]",
	Short: "Write the schema model to a file or stdout",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExport,
}

var splitCmd = &cobra.Command{
	Use:   "split [files]",
	Short: "Write the schema model as one file per declaration",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSplit,
}

var ddlCmd = &cobra.Command{
	Use:   "ddl [files]",
	Short: "Print CREATE TABLE statements for the schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDDL,
}

var createCmd = &cobra.Command{
	Use:   "create [files]",
	Short: "Create the schema's tables in a database",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	splitCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	splitCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "schema", "output directory")
	ddlCmd.Flags().StringVar(&dialect, "dialect", "sqlite", "SQL dialect: sqlite or postgres")
	ddlCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	createCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string (defaults to DATABASE_URL)")
	createCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.AddCommand(exportCmd, splitCmd, ddlCmd, createCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	schema, err := tableql.ParseFiles(args...)
	if err != nil {
		return err
	}
	fmt.Println(tableql.Pretty(schema))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	schema, err := tableql.ParseFiles(args...)
	if err != nil {
		return err
	}
	writer := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}
	return tableql.WriteSchemaFile(writer, schema, format)
}

func runSplit(cmd *cobra.Command, args []string) error {
	schema, err := tableql.ParseFiles(args...)
	if err != nil {
		return err
	}
	return tableql.NewSplitter(outputDir, format).Split(schema)
}

func runDDL(cmd *cobra.Command, args []string) error {
	schema, err := tableql.ParseFiles(args...)
	if err != nil {
		return err
	}
	script, err := sqlgen.DDL(schema, sqlgen.Dialect(dialect))
	if err != nil {
		return err
	}
	if outputFile != "" {
		return os.WriteFile(outputFile, []byte(script), 0660)
	}
	fmt.Print(script)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	if dbURL != "" && sqlitePath != "" {
		return fmt.Errorf("only one of --db-url or --sqlite can be specified")
	}
	schema, err := tableql.ParseFiles(args...)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if sqlitePath != "" {
		return sqlgen.ApplySQLite(ctx, schema, sqlitePath)
	}
	if dbURL == "" {
		// fall back to the environment, including a .env file if present
		_ = godotenv.Load()
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return fmt.Errorf("one of --db-url or --sqlite must be specified, or DATABASE_URL set")
	}
	return sqlgen.ApplyPostgres(ctx, schema, dbURL)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tableql.Annotate(err, 2))
		os.Exit(1)
	}
}
