package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/cte-checker/internal/config"
	"github.com/rezonia/cte-checker/internal/report"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	configPath   string
	envFile      string

	settings = config.Default()
	logger   = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "cte-checker",
	Short: "Check NF-e invoices against the CT-e that carries them",
	Long: `CT-e Checker cross-checks Brazilian electronic fiscal documents.

For every NF-e it verifies that:
  - the invoice access key is listed in the CT-e document references
  - recipient, sender and carrier data match the CT-e after normalization
    (case, accents, punctuation and street-type words are ignored)

Examples:
  # Compare two invoices against a manifest
  cte-checker compare --cte cte.xml nfe1.xml nfe2.xml

  # Compare a whole directory, JSON output
  cte-checker compare --cte cte.xml ./notas -f json

  # Show what a file is
  cte-checker info documento.xml`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format (text, json, yaml) (env: CTE_CHECKER_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (env: CTE_CHECKER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading CTE_CHECKER_* variables")
}

// initConfig resolves settings: flags over environment over config file over defaults
func initConfig(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	settings = config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		settings = loaded
	}

	if err := settings.ApplyEnv(); err != nil {
		return err
	}

	if outputFormat != "" {
		settings.Output.Format = outputFormat
	}
	if verbose {
		settings.Log.Level = "debug"
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	level, _ := settings.SlogLevel()
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func selectedFormat() report.Format {
	f, _ := report.ParseFormat(settings.Output.Format)
	return f
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
