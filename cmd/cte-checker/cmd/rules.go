package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/report"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the field comparison rules",
	Long: `List the fields compared between each NF-e and the CT-e, in the order
findings are reported.

Carrier data in the NF-e (transp/transporta) is compared with the CT-e
issuer (emit), since the carrier is who issues the CT-e.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	rules := divergence.Rules()

	switch selectedFormat() {
	case report.FormatJSON:
		return report.WriteJSON(os.Stdout, rules)
	case report.FormatYAML:
		return report.WriteYAML(os.Stdout, rules)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tLABEL\tNF-E PATH\tCT-E PATH")
	for i, r := range rules {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, r.Label, r.InvoicePath, r.ManifestPath)
	}
	return w.Flush()
}
