package ctecheck

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
	"github.com/rezonia/cte-checker/internal/report"
)

// Checker compares NF-e texts against CT-e texts. It is safe for concurrent use.
type Checker struct {
	engine *divergence.Engine
}

// Option configures a Checker
type Option = divergence.Option

// WithLogger sets the logger used for batch diagnostics
func WithLogger(logger *slog.Logger) Option {
	return divergence.WithLogger(logger)
}

// WithCargoCheck enables reconciliation of the CT-e cargo value against the
// NF-e totals
func WithCargoCheck(enabled bool) Option {
	return divergence.WithCargoCheck(enabled)
}

// WithRules replaces the default field comparison table
func WithRules(rules []Rule) Option {
	return divergence.WithRules(rules)
}

// WithIDGenerator sets the function that assigns report IDs
func WithIDGenerator(fn func() string) Option {
	return divergence.WithIDGenerator(fn)
}

// NewChecker creates a checker with the given options
func NewChecker(opts ...Option) *Checker {
	return &Checker{engine: divergence.NewEngine(opts...)}
}

// Compare checks every invoice text against the manifest text
func (c *Checker) Compare(invoiceTexts []string, manifestText string) *BatchReport {
	return c.engine.CompareBatch(invoiceTexts, manifestText)
}

// CompareOne checks a single invoice against a manifest. Unlike Compare, a
// document that cannot be parsed is returned as an error.
func (c *Checker) CompareOne(invoiceText, manifestText string) ([]Finding, error) {
	manifest, err := xml.ParseKind(manifestText, model.DocumentCTe)
	if err != nil {
		return nil, err
	}
	invoice, err := xml.ParseKind(invoiceText, model.DocumentNFe)
	if err != nil {
		return nil, err
	}
	return c.engine.CompareOne(invoice, manifest), nil
}

// CompareReaders reads the manifest and invoices and compares them
func (c *Checker) CompareReaders(ctx context.Context, manifest io.Reader, invoices ...io.Reader) (*BatchReport, error) {
	manifestText, err := readAll(ctx, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to read CT-e: %w", err)
	}

	texts := make([]string, 0, len(invoices))
	for i, r := range invoices {
		text, err := readAll(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("failed to read NF-e #%d: %w", i+1, err)
		}
		texts = append(texts, text)
	}

	return c.Compare(texts, manifestText), nil
}

// Batch is one manifest with the invoices to check against it
type Batch struct {
	Manifest string
	Invoices []string
}

// CompareMany checks independent batches concurrently. Reports are returned
// in batch order; batches not started before ctx ends are left nil and the
// context error is returned.
func (c *Checker) CompareMany(ctx context.Context, batches []Batch) ([]*BatchReport, error) {
	results := make([]*BatchReport, len(batches))
	errCh := make(chan error, len(batches))

	for i, batch := range batches {
		go func(idx int, b Batch) {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}
			results[idx] = c.Compare(b.Invoices, b.Manifest)
			errCh <- nil
		}(i, batch)
	}

	// Wait for all goroutines
	var firstErr error
	for range batches {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// Render writes the report to w in the named format (text, json or yaml)
func Render(w io.Writer, r *BatchReport, format string) error {
	f, err := report.ParseFormat(format)
	if err != nil {
		return err
	}
	return report.Write(w, r, f)
}

func readAll(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
