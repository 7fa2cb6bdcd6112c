package model

// XML namespaces of the two fiscal document families
const (
	NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"
	NamespaceCTe = "http://www.portalfiscal.inf.br/cte"
)

// DocumentKind identifies which fiscal document a tree holds
type DocumentKind string

const (
	DocumentNFe     DocumentKind = "NFe"
	DocumentCTe     DocumentKind = "CTe"
	DocumentUnknown DocumentKind = "UNKNOWN"
)

// Namespace returns the XML namespace of the document kind, or "" when unknown
func (k DocumentKind) Namespace() string {
	switch k {
	case DocumentNFe:
		return NamespaceNFe
	case DocumentCTe:
		return NamespaceCTe
	default:
		return ""
	}
}

// Label returns the display name used in Brazilian fiscal documentation
func (k DocumentKind) Label() string {
	switch k {
	case DocumentNFe:
		return "NF-e"
	case DocumentCTe:
		return "CT-e"
	default:
		return "Unknown"
	}
}
