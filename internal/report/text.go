// Package report renders batch reports for people and machines.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rezonia/cte-checker/internal/model"
)

// Messages shown to the user, in the wording fiscal clerks already know
const (
	MsgAllConsistent    = "Todas as NF-e estão consistentes com o CT-e."
	MsgNoInvoices       = "Nenhuma NF-e adicionada para comparar."
	MsgManifestEmpty    = "XML do CT-e está vazio."
	MsgManifestNoMarkup = "Não foi possível encontrar o conteúdo XML no CT-e."
	MsgManifestInvalid  = "Erro ao analisar XML do CT-e."
)

// Message renders a single finding
func Message(f model.Finding) string {
	switch f.Kind {
	case model.FindingKeyMissing:
		return "Chave da NF-e não encontrada."
	case model.FindingNotLinked:
		return fmt.Sprintf("NF-e %s não pertence ao CT-e.", f.Key)
	case model.FindingFieldMissingInInvoice:
		return fmt.Sprintf("%s ausente na NF-e.", f.Label)
	case model.FindingFieldMissingInManifest:
		return fmt.Sprintf("%s ausente no CT-e.", f.Label)
	case model.FindingFieldMismatch:
		return fmt.Sprintf(`%s divergente: NF-e="%s", CT-e="%s"`, f.Label, f.InvoiceValue, f.ManifestValue)
	default:
		return string(f.Kind)
	}
}

// ManifestMessage renders a manifest parse failure
func ManifestMessage(m model.ManifestOutcome) string {
	switch {
	case m.ErrorCode == model.ErrCodeNoContent && m.ErrorReason == model.ReasonEmpty:
		return MsgManifestEmpty
	case m.ErrorCode == model.ErrCodeNoContent:
		return MsgManifestNoMarkup
	default:
		return MsgManifestInvalid
	}
}

// Text renders the report as the plain-text summary
func Text(r *model.BatchReport) string {
	if !r.Manifest.Parsed() {
		return ManifestMessage(r.Manifest)
	}
	if r.Empty() {
		return MsgNoInvoices
	}

	var b strings.Builder
	failed := false
	for _, o := range r.Invoices {
		switch {
		case o.Status == model.StatusParseFailed:
			failed = true
			fmt.Fprintf(&b, "NF-e #%d com erro de XML: %s\n", o.Index, o.Error)
		case len(o.Findings) > 0:
			failed = true
			lines := make([]string, len(o.Findings))
			for i, f := range o.Findings {
				lines[i] = " - " + Message(f)
			}
			fmt.Fprintf(&b, "NF-e #%d divergente:\n%s\n\n", o.Index, strings.Join(lines, "\n"))
		}
	}

	out := MsgAllConsistent
	if failed {
		out = strings.TrimSpace(b.String())
	}
	if r.Cargo != nil {
		out += "\n\n" + cargoLine(r.Cargo)
	}
	return out
}

func cargoLine(c *model.CargoCheck) string {
	switch {
	case c.ManifestMissing:
		return fmt.Sprintf("Valor da carga ausente no CT-e (soma das NF-e: %s).", c.InvoiceTotal)
	case len(c.MissingTotals) > 0:
		return fmt.Sprintf("Valor total ausente em %d NF-e; valor da carga não conferido.", len(c.MissingTotals))
	case c.Match:
		return fmt.Sprintf("Valor da carga confere: %s.", c.ManifestValue)
	default:
		return fmt.Sprintf(`Valor da carga divergente: NF-e="%s", CT-e="%s"`, c.InvoiceTotal, c.ManifestValue)
	}
}

// WriteText writes the plain-text summary followed by a newline
func WriteText(w io.Writer, r *model.BatchReport) error {
	_, err := fmt.Fprintln(w, Text(r))
	return err
}
