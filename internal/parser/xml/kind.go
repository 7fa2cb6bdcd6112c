package xml

import "github.com/rezonia/cte-checker/internal/model"

// signature marks the info element that identifies a document kind
type signature struct {
	kind model.DocumentKind
	tag  string
}

// Order matters: the first signature found wins
var signatures = []signature{
	{kind: model.DocumentCTe, tag: "infCte"},
	{kind: model.DocumentNFe, tag: "infNFe"},
}

// DetectKind identifies a document as NF-e or CT-e from its root namespace,
// falling back to the presence of the kind's info element
func DetectKind(doc *Document) model.DocumentKind {
	if doc == nil {
		return model.DocumentUnknown
	}

	switch doc.Root().Space() {
	case model.NamespaceNFe:
		return model.DocumentNFe
	case model.NamespaceCTe:
		return model.DocumentCTe
	}

	for _, s := range signatures {
		if doc.Find(s.kind.Namespace(), s.tag) != nil {
			return s.kind
		}
	}
	return model.DocumentUnknown
}
