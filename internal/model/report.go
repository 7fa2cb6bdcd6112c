package model

// FindingKind classifies a divergence between an invoice and a manifest
type FindingKind string

const (
	FindingKeyMissing             FindingKind = "KEY_MISSING"
	FindingNotLinked              FindingKind = "NOT_LINKED"
	FindingFieldMissingInInvoice  FindingKind = "FIELD_MISSING_IN_INVOICE"
	FindingFieldMissingInManifest FindingKind = "FIELD_MISSING_IN_MANIFEST"
	FindingFieldMismatch          FindingKind = "FIELD_MISMATCH"
)

// Finding is a single divergence produced while checking one invoice
type Finding struct {
	Kind FindingKind `json:"kind" yaml:"kind"`

	// Label of the field rule that produced the finding (empty for linkage findings)
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	// Key is the invoice key for NOT_LINKED findings
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Original, non-normalized values for FIELD_MISMATCH findings
	InvoiceValue  string `json:"invoice_value,omitempty" yaml:"invoice_value,omitempty"`
	ManifestValue string `json:"manifest_value,omitempty" yaml:"manifest_value,omitempty"`
}

// NewKeyMissing creates the finding for an invoice without a usable key
func NewKeyMissing() Finding {
	return Finding{Kind: FindingKeyMissing}
}

// NewNotLinked creates the finding for an invoice the manifest does not reference
func NewNotLinked(key string) Finding {
	return Finding{Kind: FindingNotLinked, Key: key}
}

// NewFieldMissingInInvoice creates the finding for a rule whose invoice side is absent
func NewFieldMissingInInvoice(label string) Finding {
	return Finding{Kind: FindingFieldMissingInInvoice, Label: label}
}

// NewFieldMissingInManifest creates the finding for a rule whose manifest side is absent
func NewFieldMissingInManifest(label string) Finding {
	return Finding{Kind: FindingFieldMissingInManifest, Label: label}
}

// NewFieldMismatch creates the finding for a rule whose values differ after normalization
func NewFieldMismatch(label, invoiceValue, manifestValue string) Finding {
	return Finding{
		Kind:          FindingFieldMismatch,
		Label:         label,
		InvoiceValue:  invoiceValue,
		ManifestValue: manifestValue,
	}
}

// Status is the overall result for one invoice of a batch
type Status string

const (
	StatusConsistent  Status = "CONSISTENT"
	StatusFindings    Status = "FINDINGS"
	StatusNotLinked   Status = "NOT_LINKED"
	StatusKeyMissing  Status = "KEY_MISSING"
	StatusParseFailed Status = "PARSE_FAILED"
)

// StatusOf derives the invoice status from the findings of a parsed invoice
func StatusOf(findings []Finding) Status {
	if len(findings) == 0 {
		return StatusConsistent
	}
	if len(findings) == 1 {
		switch findings[0].Kind {
		case FindingKeyMissing:
			return StatusKeyMissing
		case FindingNotLinked:
			return StatusNotLinked
		}
	}
	return StatusFindings
}

// InvoiceOutcome is the result for one invoice text of a batch
type InvoiceOutcome struct {
	// Index is the 1-based position of the invoice in the batch
	Index int `json:"index" yaml:"index"`

	// Source names where the invoice text came from (file path), when known
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Key      string    `json:"key,omitempty" yaml:"key,omitempty"`
	Status   Status    `json:"status" yaml:"status"`
	Findings []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`

	// Error holds the parse failure detail for PARSE_FAILED outcomes
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Consistent returns true if the invoice parsed, is linked and has no findings
func (o InvoiceOutcome) Consistent() bool {
	return o.Status == StatusConsistent
}

// ManifestOutcome describes the manifest a batch was checked against
type ManifestOutcome struct {
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// References holds the invoice keys declared by the manifest, in document order
	References []string `json:"references,omitempty" yaml:"references,omitempty"`

	// UnkeyedReferences counts reference nodes that carry no key
	UnkeyedReferences int `json:"unkeyed_references,omitempty" yaml:"unkeyed_references,omitempty"`

	ErrorCode   string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	ErrorReason string `json:"error_reason,omitempty" yaml:"error_reason,omitempty"`
	Error       string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Parsed returns true if the manifest text produced a document tree
func (m ManifestOutcome) Parsed() bool {
	return m.Error == ""
}

// CargoCheck holds the optional reconciliation of the manifest cargo value
// against the sum of the linked invoice totals
type CargoCheck struct {
	ManifestValue string `json:"manifest_value,omitempty" yaml:"manifest_value,omitempty"`
	InvoiceTotal  string `json:"invoice_total" yaml:"invoice_total"`
	Match         bool   `json:"match" yaml:"match"`

	// ManifestMissing is set when the manifest declares no cargo value
	ManifestMissing bool `json:"manifest_missing,omitempty" yaml:"manifest_missing,omitempty"`

	// MissingTotals lists 1-based indexes of linked invoices without a total
	MissingTotals []int `json:"missing_totals,omitempty" yaml:"missing_totals,omitempty"`
}

// BatchReport is the result of checking N invoices against one manifest
type BatchReport struct {
	ID            string           `json:"id" yaml:"id"`
	Manifest      ManifestOutcome  `json:"manifest" yaml:"manifest"`
	Invoices      []InvoiceOutcome `json:"invoices" yaml:"invoices"`
	AllConsistent bool             `json:"all_consistent" yaml:"all_consistent"`
	Cargo         *CargoCheck      `json:"cargo,omitempty" yaml:"cargo,omitempty"`
}

// Empty returns true if the batch held no invoices
func (r *BatchReport) Empty() bool {
	return len(r.Invoices) == 0
}

// Summarize sets AllConsistent from the manifest and invoice outcomes.
// An empty batch against a parsed manifest is consistent.
func (r *BatchReport) Summarize() {
	if !r.Manifest.Parsed() {
		r.AllConsistent = false
		return
	}
	for _, o := range r.Invoices {
		if !o.Consistent() {
			r.AllConsistent = false
			return
		}
	}
	r.AllConsistent = true
}

// Counts returns the number of invoices per status
func (r *BatchReport) Counts() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Invoices {
		counts[o.Status]++
	}
	return counts
}
