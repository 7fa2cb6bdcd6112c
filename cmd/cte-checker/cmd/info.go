package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/cte-checker/internal/identity"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

var infoCmd = &cobra.Command{
	Use:   "info [files...]",
	Short: "Show information about fiscal XML files",
	Long: `Display information about NF-e and CT-e files without comparing them.

Shows:
  - Detected document kind (NF-e, CT-e)
  - Access key
  - For a CT-e, the NF-e keys it references

Examples:
  cte-checker info nfe.xml
  cte-checker info ./notas`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	for _, file := range files {
		printFileInfo(file)
		fmt.Println()
	}

	return nil
}

func printFileInfo(filePath string) {
	fmt.Printf("File: %s\n", filePath)

	info, err := os.Stat(filePath)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	fmt.Printf("  Size: %d bytes\n", info.Size())
	fmt.Printf("  Modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))

	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("  Error reading file: %v\n", err)
		return
	}

	doc, err := xml.Parse(string(data))
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return
	}

	kind := xml.DetectKind(doc)
	fmt.Printf("  Kind: %s\n", kind.Label())

	switch kind {
	case model.DocumentNFe:
		printKey(identity.InvoiceKey(doc))
	case model.DocumentCTe:
		printKey(identity.ManifestKey(doc))
		refs, unkeyed := identity.Keys(identity.ManifestReferences(doc))
		fmt.Printf("  References: %d\n", len(refs))
		for _, ref := range refs {
			fmt.Printf("    - %s\n", ref)
		}
		if unkeyed > 0 {
			fmt.Printf("  References without key: %d\n", unkeyed)
		}
	}

	if preview := getPreview(string(data), 200); preview != "" {
		fmt.Printf("  Preview: %s\n", preview)
	}
}

func printKey(key string, ok bool) {
	if !ok {
		fmt.Println("  Key: (not found)")
		return
	}
	fmt.Printf("  Key: %s\n", key)
}

func getPreview(content string, maxLen int) string {
	// Remove XML declaration
	if idx := strings.Index(content, "?>"); idx >= 0 {
		content = content[idx+2:]
	}

	content = strings.Join(strings.Fields(content), " ")

	if len(content) > maxLen {
		content = content[:maxLen] + "..."
	}

	return content
}
