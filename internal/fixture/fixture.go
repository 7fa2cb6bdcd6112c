// Package fixture builds NF-e and CT-e documents for tests.
package fixture

import (
	"github.com/beevik/etree"

	"github.com/rezonia/cte-checker/internal/model"
)

// Key is a well-formed 44-digit NF-e access key
const Key = "35200714200166000187550010000000046550010466"

// OtherKey is a second access key not referenced by the default manifest
const OtherKey = "35200714200166000187550010000000051550010512"

// Party holds the identification and address of a document role.
// Empty fields are left out of the generated document.
type Party struct {
	CNPJ         string
	Name         string
	Street       string
	PostalCode   string
	Municipality string
}

// Carrier holds the NF-e transporter block
type Carrier struct {
	CNPJ       string
	Name       string
	Address    string
	PostalCode string
}

// Invoice describes an NF-e document
type Invoice struct {
	// ID is the raw Id attribute of infNFe; NoID omits the attribute
	ID        string
	NoID      bool
	Issuer    Party
	Recipient Party
	Carrier   Carrier
	Total     string
}

// Manifest describes a CT-e document
type Manifest struct {
	ID         string
	Issuer     Party
	Sender     Party
	Recipient  Party
	CargoValue string

	// References are the keys listed under infDoc; "" emits an infNFe without chave
	References []string
	NoInfDoc   bool
}

// Recipient is the default recipient shared by both documents
var Recipient = Party{
	CNPJ:         "11.222.333/0001-44",
	Name:         "Comercial Paulista Ltda",
	Street:       "Rua das Flores",
	PostalCode:   "01310-100",
	Municipality: "São Paulo",
}

// Sender is the default NF-e issuer / CT-e sender
var Sender = Party{
	CNPJ:         "14.200.166/0001-87",
	Name:         "Indústria Mineira S.A.",
	Street:       "Avenida Afonso Pena",
	PostalCode:   "30130-005",
	Municipality: "Belo Horizonte",
}

// Transporter is the default carrier: NF-e transporta / CT-e emit
var Transporter = Party{
	CNPJ:         "22.333.444/0001-55",
	Name:         "Transportes Rápidos Ltda",
	Street:       "Rodovia Anhanguera",
	PostalCode:   "13000-000",
	Municipality: "Campinas",
}

// DefaultInvoice returns an NF-e consistent with DefaultManifest
func DefaultInvoice() Invoice {
	return Invoice{
		ID:        "NFe" + Key,
		Issuer:    Sender,
		Recipient: Recipient,
		Carrier: Carrier{
			CNPJ:       Transporter.CNPJ,
			Name:       Transporter.Name,
			Address:    Transporter.Street,
			PostalCode: Transporter.PostalCode,
		},
		Total: "1500.00",
	}
}

// DefaultManifest returns a CT-e referencing Key
func DefaultManifest() Manifest {
	return Manifest{
		ID:         "CTe35200722333444000155570010000001231000001237",
		Issuer:     Transporter,
		Sender:     plain(Sender),
		Recipient:  plain(Recipient),
		CargoValue: "1500.00",
		References: []string{Key},
	}
}

// plain strips the punctuation and accents a CT-e emitter commonly drops
func plain(p Party) Party {
	switch p {
	case Recipient:
		return Party{
			CNPJ:         "11222333000144",
			Name:         "COMERCIAL PAULISTA LTDA",
			Street:       "das Flores",
			PostalCode:   "01310100",
			Municipality: "SAO PAULO",
		}
	case Sender:
		return Party{
			CNPJ:         "14200166000187",
			Name:         "INDUSTRIA MINEIRA SA",
			Street:       "Av. Afonso Pena",
			PostalCode:   "30130005",
			Municipality: "BELO HORIZONTE",
		}
	}
	return p
}

// XML renders the invoice as an nfeProc document
func (inv Invoice) XML() string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	proc := doc.CreateElement("nfeProc")
	proc.CreateAttr("xmlns", model.NamespaceNFe)
	proc.CreateAttr("versao", "4.00")

	inf := proc.CreateElement("NFe").CreateElement("infNFe")
	if !inv.NoID {
		inf.CreateAttr("Id", inv.ID)
	}
	inf.CreateAttr("versao", "4.00")

	addParty(inf, "emit", "enderEmit", inv.Issuer)
	addParty(inf, "dest", "enderDest", inv.Recipient)

	if inv.Total != "" {
		addText(inf.CreateElement("total").CreateElement("ICMSTot"), "vNF", inv.Total)
	}

	transp := inf.CreateElement("transp")
	addText(transp, "modFrete", "0")
	if inv.Carrier != (Carrier{}) {
		t := transp.CreateElement("transporta")
		addText(t, "CNPJ", inv.Carrier.CNPJ)
		addText(t, "xNome", inv.Carrier.Name)
		addText(t, "xEnder", inv.Carrier.Address)
		addText(t, "CEP", inv.Carrier.PostalCode)
	}

	return render(doc)
}

// XML renders the manifest as a cteProc document
func (m Manifest) XML() string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	proc := doc.CreateElement("cteProc")
	proc.CreateAttr("xmlns", model.NamespaceCTe)
	proc.CreateAttr("versao", "4.00")

	inf := proc.CreateElement("CTe").CreateElement("infCte")
	inf.CreateAttr("Id", m.ID)
	inf.CreateAttr("versao", "4.00")

	addParty(inf, "emit", "enderEmit", m.Issuer)
	addParty(inf, "rem", "enderReme", m.Sender)
	addParty(inf, "dest", "enderDest", m.Recipient)

	norm := inf.CreateElement("infCTeNorm")
	if m.CargoValue != "" {
		addText(norm.CreateElement("infCarga"), "vCarga", m.CargoValue)
	}
	if !m.NoInfDoc {
		infDoc := norm.CreateElement("infDoc")
		for _, key := range m.References {
			ref := infDoc.CreateElement("infNFe")
			addText(ref, "chave", key)
		}
	}

	return render(doc)
}

func addParty(parent *etree.Element, tag, addressTag string, p Party) {
	if p == (Party{}) {
		return
	}
	el := parent.CreateElement(tag)
	addText(el, "CNPJ", p.CNPJ)
	addText(el, "xNome", p.Name)
	if p.Street == "" && p.PostalCode == "" && p.Municipality == "" {
		return
	}
	addr := el.CreateElement(addressTag)
	addText(addr, "xLgr", p.Street)
	addText(addr, "xMun", p.Municipality)
	addText(addr, "CEP", p.PostalCode)
}

func addText(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}

func render(doc *etree.Document) string {
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		panic(err)
	}
	return out
}
