// Package divergence checks NF-e invoices against the CT-e that carries them.
package divergence

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rezonia/cte-checker/internal/identity"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

// Engine compares invoices against a manifest using a fixed rule table.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	rules      []Rule
	logger     *slog.Logger
	cargoCheck bool
	newID      func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithRules replaces the field-comparison table
func WithRules(rules []Rule) Option {
	return func(e *Engine) {
		e.rules = cloneRules(rules)
	}
}

// WithLogger sets the logger used for batch diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCargoCheck enables reconciliation of the CT-e cargo value against the
// sum of the linked NF-e totals
func WithCargoCheck(enabled bool) Option {
	return func(e *Engine) {
		e.cargoCheck = enabled
	}
}

// WithIDGenerator sets the function that assigns batch report IDs
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// NewEngine creates an engine with the default rule table
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rules:  Rules(),
		logger: slog.New(slog.DiscardHandler),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns a copy of the engine's rule table
func (e *Engine) Rules() []Rule {
	return cloneRules(e.rules)
}

// CompareOne checks one parsed invoice against a parsed manifest. A missing
// key or an unreferenced invoice yields that single finding; otherwise every
// rule is evaluated in order.
func (e *Engine) CompareOne(invoice, manifest *xml.Document) []model.Finding {
	_, findings := e.compare(invoice, manifest)
	return findings
}

func (e *Engine) compare(invoice, manifest *xml.Document) (string, []model.Finding) {
	key, finding := identity.Check(invoice, manifest)
	if finding != nil {
		return key, []model.Finding{*finding}
	}
	return key, Evaluate(e.rules, invoice, manifest)
}

// CompareBatch parses the manifest once and checks every invoice text against
// it. Parse failures are reported per document and never abort the batch.
func (e *Engine) CompareBatch(invoiceTexts []string, manifestText string) *model.BatchReport {
	report := &model.BatchReport{
		ID:       e.newID(),
		Invoices: make([]model.InvoiceOutcome, 0, len(invoiceTexts)),
	}
	logger := e.logger.With("batch_id", report.ID)

	manifest, err := xml.ParseKind(manifestText, model.DocumentCTe)
	if err != nil {
		report.Manifest = manifestFailure(err)
		logger.Warn("manifest parse failed", "error", err)
		report.Summarize()
		return report
	}
	report.Manifest = describeManifest(manifest)

	var linked []linkedInvoice
	for i, text := range invoiceTexts {
		outcome, doc := e.compareText(i+1, text, manifest)
		report.Invoices = append(report.Invoices, outcome)

		switch outcome.Status {
		case model.StatusParseFailed:
			logger.Warn("invoice parse failed", "index", outcome.Index, "error", outcome.Error)
		case model.StatusConsistent, model.StatusFindings:
			linked = append(linked, linkedInvoice{index: outcome.Index, doc: doc})
		}
		logger.Debug("invoice compared",
			"index", outcome.Index,
			"key", outcome.Key,
			"status", outcome.Status,
			"findings", len(outcome.Findings),
		)
	}

	if e.cargoCheck {
		report.Cargo = reconcileCargo(manifest, linked)
	}

	report.Summarize()
	logger.Info("batch compared",
		"manifest_key", report.Manifest.Key,
		"invoices", len(report.Invoices),
		"all_consistent", report.AllConsistent,
	)
	return report
}

func (e *Engine) compareText(index int, text string, manifest *xml.Document) (model.InvoiceOutcome, *xml.Document) {
	outcome := model.InvoiceOutcome{Index: index}

	invoice, err := xml.ParseKind(text, model.DocumentNFe)
	if err != nil {
		outcome.Status = model.StatusParseFailed
		outcome.Error = err.Error()
		return outcome, nil
	}

	outcome.Key, outcome.Findings = e.compare(invoice, manifest)
	outcome.Status = model.StatusOf(outcome.Findings)
	return outcome, invoice
}

func describeManifest(manifest *xml.Document) model.ManifestOutcome {
	key, _ := identity.ManifestKey(manifest)
	refs, unkeyed := identity.Keys(identity.ManifestReferences(manifest))
	return model.ManifestOutcome{
		Key:               key,
		References:        refs,
		UnkeyedReferences: unkeyed,
	}
}

func manifestFailure(err error) model.ManifestOutcome {
	out := model.ManifestOutcome{Error: err.Error()}
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		out.ErrorCode = parseErr.Code
		out.ErrorReason = parseErr.Reason
	}
	return out
}

var defaultEngine = NewEngine()

// CompareOne checks one invoice against a manifest with the default engine
func CompareOne(invoice, manifest *xml.Document) []model.Finding {
	return defaultEngine.CompareOne(invoice, manifest)
}

// CompareBatch checks invoice texts against a manifest text with the default engine
func CompareBatch(invoiceTexts []string, manifestText string) *model.BatchReport {
	return defaultEngine.CompareBatch(invoiceTexts, manifestText)
}
