package divergence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/field"
	"github.com/rezonia/cte-checker/internal/fixture"
	"github.com/rezonia/cte-checker/internal/model"
)

func TestRules_Table(t *testing.T) {
	expected := []struct {
		label    string
		invoice  string
		manifest string
	}{
		{"CNPJ do Destinatário", "dest/CNPJ", "dest/CNPJ"},
		{"Nome do Destinatário", "dest/xNome", "dest/xNome"},
		{"Endereço do Destinatário", "dest/enderDest/xLgr", "dest/enderDest/xLgr"},
		{"CEP do Destinatário", "dest/enderDest/CEP", "dest/enderDest/CEP"},
		{"Município do Destinatário", "dest/enderDest/xMun", "dest/enderDest/xMun"},
		{"CNPJ do Remetente", "emit/CNPJ", "rem/CNPJ"},
		{"Nome do Remetente", "emit/xNome", "rem/xNome"},
		{"Endereço do Remetente", "emit/enderEmit/xLgr", "rem/enderReme/xLgr"},
		{"CEP do Remetente", "emit/enderEmit/CEP", "rem/enderReme/CEP"},
		{"Município do Remetente", "emit/enderEmit/xMun", "rem/enderReme/xMun"},
		{"CNPJ da Transportadora", "transp/transporta/CNPJ", "emit/CNPJ"},
		{"Endereço da Transportadora", "transp/transporta/xEnder", "emit/enderEmit/xLgr"},
		{"CEP da Transportadora", "transp/transporta/CEP", "emit/enderEmit/CEP"},
	}

	rules := divergence.Rules()
	require.Len(t, rules, len(expected))
	for i, e := range expected {
		assert.Equal(t, e.label, rules[i].Label)
		assert.Equal(t, e.invoice, rules[i].InvoicePath.String(), e.label)
		assert.Equal(t, e.manifest, rules[i].ManifestPath.String(), e.label)
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	rules := divergence.Rules()
	rules[0].Label = "changed"
	rules[0].InvoicePath[0] = "changed"

	fresh := divergence.Rules()
	assert.Equal(t, "CNPJ do Destinatário", fresh[0].Label)
	assert.Equal(t, field.Path{"dest", "CNPJ"}, fresh[0].InvoicePath)
}

func TestRule_Apply(t *testing.T) {
	invoice := mustParse(t, fixture.DefaultInvoice().XML())
	manifest := mustParse(t, fixture.DefaultManifest().XML())

	r := divergence.Rule{
		Label:        "Nome do Destinatário",
		InvoicePath:  field.ParsePath("dest/xNome"),
		ManifestPath: field.ParsePath("dest/xNome"),
	}
	_, ok := r.Apply(invoice, manifest)
	assert.False(t, ok)

	r.InvoicePath = field.ParsePath("dest/xFant")
	f, ok := r.Apply(invoice, manifest)
	require.True(t, ok)
	assert.Equal(t, model.NewFieldMissingInInvoice("Nome do Destinatário"), f)

	r.InvoicePath = field.ParsePath("dest/xNome")
	r.ManifestPath = field.ParsePath("dest/xFant")
	f, ok = r.Apply(invoice, manifest)
	require.True(t, ok)
	assert.Equal(t, model.NewFieldMissingInManifest("Nome do Destinatário"), f)

	r.ManifestPath = field.ParsePath("emit/xNome")
	f, ok = r.Apply(invoice, manifest)
	require.True(t, ok)
	assert.Equal(t, model.FindingFieldMismatch, f.Kind)
	assert.Equal(t, "Comercial Paulista Ltda", f.InvoiceValue)
	assert.Equal(t, "Transportes Rápidos Ltda", f.ManifestValue)
}

func TestEvaluate_NoRules(t *testing.T) {
	findings := divergence.Evaluate(nil, mustParse(t, fixture.DefaultInvoice().XML()), mustParse(t, fixture.DefaultManifest().XML()))
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}
