// Package identity extracts NF-e access keys and decides whether an invoice
// belongs to a CT-e.
package identity

import (
	"strings"

	"github.com/rezonia/cte-checker/internal/model"
	"github.com/rezonia/cte-checker/internal/parser/xml"
)

// Literal prefixes of the Id attributes
const (
	InvoiceKeyPrefix  = "NFe"
	ManifestKeyPrefix = "CTe"
)

// InvoiceKey returns the access key of an NF-e: the Id attribute of the first
// infNFe element with its "NFe" prefix removed. It returns false when the
// element or attribute is absent or the key is empty.
func InvoiceKey(doc *xml.Document) (string, bool) {
	return keyOf(doc, model.NamespaceNFe, "infNFe", InvoiceKeyPrefix)
}

// ManifestKey returns the access key of a CT-e from its infCte Id attribute
func ManifestKey(doc *xml.Document) (string, bool) {
	return keyOf(doc, model.NamespaceCTe, "infCte", ManifestKeyPrefix)
}

func keyOf(doc *xml.Document, space, tag, prefix string) (string, bool) {
	if doc == nil {
		return "", false
	}
	inf := doc.Find(space, tag)
	if inf == nil {
		return "", false
	}
	id, ok := inf.Attr("Id")
	if !ok {
		return "", false
	}
	key := strings.TrimPrefix(id, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

// ManifestReferences returns the invoice keys declared in the first infDoc of
// a CT-e, in document order. A reference node without a key yields nil at its
// position. A manifest without infDoc yields an empty slice.
func ManifestReferences(doc *xml.Document) []*string {
	refs := []*string{}
	if doc == nil {
		return refs
	}

	infDoc := doc.Find(model.NamespaceCTe, "infDoc")
	if infDoc == nil {
		return refs
	}

	for _, node := range infDoc.FindAll(model.NamespaceCTe, "infNFe") {
		var ref *string
		if chave := node.Find(model.NamespaceCTe, "chave"); chave != nil {
			if key := strings.TrimSpace(chave.Text()); key != "" {
				ref = &key
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

// Keys splits references into the declared keys and the count of unkeyed nodes
func Keys(refs []*string) ([]string, int) {
	keys := make([]string, 0, len(refs))
	missing := 0
	for _, ref := range refs {
		if ref == nil {
			missing++
			continue
		}
		keys = append(keys, *ref)
	}
	return keys, missing
}

// Linked returns true if key is non-empty and matches a declared reference exactly
func Linked(key string, refs []*string) bool {
	if key == "" {
		return false
	}
	for _, ref := range refs {
		if ref != nil && *ref == key {
			return true
		}
	}
	return false
}

// Check resolves the invoice key and its linkage to the manifest. It returns
// the key (possibly empty) and a KeyMissing or NotLinked finding, or nil when
// the invoice is linked.
func Check(invoice, manifest *xml.Document) (string, *model.Finding) {
	key, ok := InvoiceKey(invoice)
	if !ok {
		f := model.NewKeyMissing()
		return "", &f
	}
	if !Linked(key, ManifestReferences(manifest)) {
		f := model.NewNotLinked(key)
		return key, &f
	}
	return key, nil
}
