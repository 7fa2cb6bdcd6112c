package divergence

import (
	"github.com/rezonia/cte-checker/internal/field"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/normalize"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

// Rule compares one business field between an NF-e and a CT-e
type Rule struct {
	Label        string     `json:"label" yaml:"label"`
	InvoicePath  field.Path `json:"invoice_path" yaml:"invoice_path"`
	ManifestPath field.Path `json:"manifest_path" yaml:"manifest_path"`
}

func rule(label, invoicePath, manifestPath string) Rule {
	return Rule{
		Label:        label,
		InvoicePath:  field.ParsePath(invoicePath),
		ManifestPath: field.ParsePath(manifestPath),
	}
}

// Order is part of the output contract.
// The CT-e emitter is the carrier, hence the emit paths on the carrier rules.
var defaultRules = []Rule{
	// Recipient
	rule("CNPJ do Destinatário", "dest/CNPJ", "dest/CNPJ"),
	rule("Nome do Destinatário", "dest/xNome", "dest/xNome"),
	rule("Endereço do Destinatário", "dest/enderDest/xLgr", "dest/enderDest/xLgr"),
	rule("CEP do Destinatário", "dest/enderDest/CEP", "dest/enderDest/CEP"),
	rule("Município do Destinatário", "dest/enderDest/xMun", "dest/enderDest/xMun"),

	// Sender
	rule("CNPJ do Remetente", "emit/CNPJ", "rem/CNPJ"),
	rule("Nome do Remetente", "emit/xNome", "rem/xNome"),
	rule("Endereço do Remetente", "emit/enderEmit/xLgr", "rem/enderReme/xLgr"),
	rule("CEP do Remetente", "emit/enderEmit/CEP", "rem/enderReme/CEP"),
	rule("Município do Remetente", "emit/enderEmit/xMun", "rem/enderReme/xMun"),

	// Carrier
	rule("CNPJ da Transportadora", "transp/transporta/CNPJ", "emit/CNPJ"),
	rule("Endereço da Transportadora", "transp/transporta/xEnder", "emit/enderEmit/xLgr"),
	rule("CEP da Transportadora", "transp/transporta/CEP", "emit/enderEmit/CEP"),
}

// Rules returns a copy of the fixed field-comparison table in evaluation order
func Rules() []Rule {
	return cloneRules(defaultRules)
}

func cloneRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{
			Label:        r.Label,
			InvoicePath:  append(field.Path(nil), r.InvoicePath...),
			ManifestPath: append(field.Path(nil), r.ManifestPath...),
		}
	}
	return out
}

// Apply evaluates the rule. It returns the finding and true when the field is
// absent on either side or the normalized values differ.
func (r Rule) Apply(invoice, manifest *xml.Document) (model.Finding, bool) {
	invoiceValue, ok := field.Resolve(invoice, r.InvoicePath)
	if !ok {
		return model.NewFieldMissingInInvoice(r.Label), true
	}

	manifestValue, ok := field.Resolve(manifest, r.ManifestPath)
	if !ok {
		return model.NewFieldMissingInManifest(r.Label), true
	}

	if !normalize.Equivalent(invoiceValue, manifestValue) {
		return model.NewFieldMismatch(r.Label, invoiceValue, manifestValue), true
	}
	return model.Finding{}, false
}

// Evaluate applies every rule in order and returns all findings; a finding on
// one rule never stops the next
func Evaluate(rules []Rule, invoice, manifest *xml.Document) []model.Finding {
	findings := make([]model.Finding, 0)
	for _, r := range rules {
		if f, ok := r.Apply(invoice, manifest); ok {
			findings = append(findings, f)
		}
	}
	return findings
}
