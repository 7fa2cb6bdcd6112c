package divergence

import (
	"github.com/shopspring/decimal"

	money "github.com/rezonia/cte-checker/internal/decimal"
	"github.com/rezonia/cte-checker/internal/field"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

var (
	invoiceTotalPath = field.ParsePath("total/ICMSTot/vNF")
	cargoValuePath   = field.ParsePath("infCarga/vCarga")
)

type linkedInvoice struct {
	index int
	doc   *xml.Document
}

// reconcileCargo sums vNF over the linked invoices and compares it, to the
// cent, with the manifest vCarga
func reconcileCargo(manifest *xml.Document, invoices []linkedInvoice) *model.CargoCheck {
	check := &model.CargoCheck{}

	totals := make([]decimal.Decimal, 0, len(invoices))
	for _, inv := range invoices {
		total, ok := amountAt(inv.doc, invoiceTotalPath)
		if !ok {
			check.MissingTotals = append(check.MissingTotals, inv.index)
			continue
		}
		totals = append(totals, total)
	}
	sum := money.Sum(totals)
	check.InvoiceTotal = money.FormatCents(sum)

	cargo, ok := amountAt(manifest, cargoValuePath)
	if !ok {
		check.ManifestMissing = true
		return check
	}
	check.ManifestValue = money.FormatCents(cargo)
	check.Match = len(check.MissingTotals) == 0 && money.EqualCents(sum, cargo)

	return check
}

func amountAt(doc *xml.Document, path field.Path) (decimal.Decimal, bool) {
	raw, ok := field.Resolve(doc, path)
	if !ok {
		return money.Zero, false
	}
	d, err := money.FromString(raw)
	if err != nil || !money.IsNonNegative(d) {
		return money.Zero, false
	}
	return d, true
}
