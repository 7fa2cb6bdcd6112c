// Package ctecheck provides a public API for checking Brazilian NF-e
// invoices against the CT-e transport manifest that carries them.
//
// Example usage:
//
//	checker := ctecheck.NewChecker()
//	report := checker.Compare([]string{nfeXML}, cteXML)
//	if !report.AllConsistent {
//	    fmt.Println(ctecheck.Text(report))
//	}
package ctecheck

import (
	"github.com/rezonia/cte-checker/internal/divergence"
	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/normalize"
	"github.com/rezonia/cte-checker/internal/report"
)

// Re-export core types for public API
type (
	Finding         = model.Finding
	FindingKind     = model.FindingKind
	Status          = model.Status
	InvoiceOutcome  = model.InvoiceOutcome
	ManifestOutcome = model.ManifestOutcome
	CargoCheck      = model.CargoCheck
	BatchReport     = model.BatchReport
	DocumentKind    = model.DocumentKind
	Rule            = divergence.Rule
	Format          = report.Format
)

// Re-export finding kinds
const (
	FindingKeyMissing             = model.FindingKeyMissing
	FindingNotLinked              = model.FindingNotLinked
	FindingFieldMissingInInvoice  = model.FindingFieldMissingInInvoice
	FindingFieldMissingInManifest = model.FindingFieldMissingInManifest
	FindingFieldMismatch          = model.FindingFieldMismatch
)

// Re-export invoice statuses
const (
	StatusConsistent  = model.StatusConsistent
	StatusFindings    = model.StatusFindings
	StatusNotLinked   = model.StatusNotLinked
	StatusKeyMissing  = model.StatusKeyMissing
	StatusParseFailed = model.StatusParseFailed
)

// Re-export output formats
const (
	FormatText = report.FormatText
	FormatJSON = report.FormatJSON
	FormatYAML = report.FormatYAML
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
)

// Re-export error codes
const (
	ErrCodeNoContent = model.ErrCodeNoContent
	ErrCodeMalformed = model.ErrCodeMalformed
)

// Rules returns the default field comparison table
func Rules() []Rule {
	return divergence.Rules()
}

// Normalize applies the comparison normalization to a field value
func Normalize(s string) string {
	return normalize.Normalize(s)
}

// Equivalent reports whether two field values are equal after normalization
func Equivalent(a, b string) bool {
	return normalize.Equivalent(a, b)
}

// Text renders a report as the plain-text summary
func Text(r *BatchReport) string {
	return report.Text(r)
}

// Message renders a single finding
func Message(f Finding) string {
	return report.Message(f)
}
