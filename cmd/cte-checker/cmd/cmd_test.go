package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cte-checker/internal/fixture"
	"github.com/rezonia/cte-checker/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "notas/a.xml", "<a/>")
	b := writeFile(t, dir, "notas/sub/b.XML", "<b/>")
	writeFile(t, dir, "notas/readme.txt", "ignored")
	plain := writeFile(t, dir, "nota.txt", "<c/>")

	files, err := collectFiles([]string{filepath.Join(dir, "notas")})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)

	files, err = collectFiles([]string{filepath.Join(dir, "notas", "*")})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files, "globs skip directories and non-XML files")

	files, err = collectFiles([]string{plain})
	require.NoError(t, err)
	assert.Equal(t, []string{plain}, files, "explicit files are taken as given")

	_, err = collectFiles([]string{filepath.Join(dir, "missing.xml")})
	assert.Error(t, err)
}

func TestGetPreview(t *testing.T) {
	assert.Equal(t, "<a> <b>x</b> </a>", getPreview("<?xml version=\"1.0\"?>\n<a>\n\t<b>x</b>\n</a>", 200))
	assert.Equal(t, "<abc...", getPreview("<abcdef/>", 4))
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	outputFile, manifestFile, outputFormat, cargoCheck, verbose = "", "", "", false, false
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "cte.xml", fixture.DefaultManifest().XML())
	nfe := writeFile(t, dir, "nfe.xml", fixture.DefaultInvoice().XML())
	out := filepath.Join(dir, "report.json")

	require.NoError(t, runRoot(t, "compare", "--cte", manifest, nfe, "-f", "json", "-o", out, "--cargo"))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var result model.BatchReport
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.AllConsistent)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, nfe, result.Invoices[0].Source)
	require.NotNil(t, result.Cargo)
	assert.True(t, result.Cargo.Match)
}

func TestCompareCommand_Inconsistent(t *testing.T) {
	dir := t.TempDir()
	manifest := writeFile(t, dir, "cte.xml", fixture.DefaultManifest().XML())

	stray := fixture.DefaultInvoice()
	stray.ID = "NFe" + fixture.OtherKey
	nfe := writeFile(t, dir, "nfe.xml", stray.XML())
	out := filepath.Join(dir, "report.txt")

	err := runRoot(t, "compare", "--cte", manifest, nfe, "-f", "text", "-o", out)
	assert.ErrorIs(t, err, errInconsistent)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "NF-e #1 divergente:\n - NF-e "+fixture.OtherKey+" não pertence ao CT-e.\n", string(data))
}

func TestCompareCommand_MissingManifest(t *testing.T) {
	err := runRoot(t, "compare", "--cte", filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read CT-e")
}
