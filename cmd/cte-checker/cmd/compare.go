package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/report"
)

var (
	manifestFile string
	outputFile   string
	cargoCheck   bool
)

// errInconsistent is returned when the batch has findings, so the process exits non-zero
var errInconsistent = errors.New("NF-e and CT-e are not consistent")

var compareCmd = &cobra.Command{
	Use:   "compare --cte FILE [nfe files...]",
	Short: "Compare NF-e files against a CT-e",
	Long: `Compare one or more NF-e XML files against a CT-e XML file.

Each NF-e must be referenced by the CT-e (infDoc/infNFe/chave) and its
recipient, sender and carrier data must match the CT-e. Arguments may be
files, glob patterns or directories (only .xml files are taken from
directories).

The command exits with a non-zero status when any NF-e diverges.

Examples:
  cte-checker compare --cte cte.xml nfe.xml
  cte-checker compare --cte cte.xml "notas/*.xml" --cargo
  cte-checker compare --cte cte.xml ./notas -f yaml -o report.yaml`,
	Args: cobra.ArbitraryArgs,
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&manifestFile, "cte", "", "CT-e XML file (required)")
	compareCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	compareCmd.Flags().BoolVar(&cargoCheck, "cargo", false, "Reconcile the CT-e cargo value with the NF-e totals (env: CTE_CHECKER_CARGO_CHECK)")
	_ = compareCmd.MarkFlagRequired("cte")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("cargo") {
		settings.Checks.CargoValue = cargoCheck
	}

	manifest, err := os.ReadFile(manifestFile)
	if err != nil {
		return fmt.Errorf("failed to read CT-e: %w", err)
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	texts := make([]string, 0, len(files))
	for _, file := range files {
		printVerbose("Reading %s\n", file)
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read NF-e %s: %w", file, err)
		}
		texts = append(texts, string(data))
	}

	engine := divergence.NewEngine(
		divergence.WithLogger(logger),
		divergence.WithCargoCheck(settings.Checks.CargoValue),
	)
	result := engine.CompareBatch(texts, string(manifest))
	for i := range result.Invoices {
		result.Invoices[i].Source = files[i]
	}

	if err := writeReport(result); err != nil {
		return err
	}

	if !result.AllConsistent {
		return errInconsistent
	}
	return nil
}

func writeReport(result *model.BatchReport) error {
	var out io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := report.Write(out, result, selectedFormat()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if outputFile != "" {
		printVerbose("Report written to %s\n", outputFile)
	}
	return nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		// Check if it's a glob pattern
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			// Check if it's a directory
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				// Walk directory
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isXMLFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				if info.IsDir() {
					continue
				}
				if match == arg || isXMLFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func isXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
