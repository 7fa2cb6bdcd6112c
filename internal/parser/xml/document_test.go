package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cte-checker/internal/fixture"
	"github.com/rezonia/cte-checker/internal/model"
	xmlparser "github.com/rezonia/cte-checker/internal/parser/xml"
)

func TestTrimToMarkup(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "plain XML", raw: "<a/>", expected: "<a/>", ok: true},
		{name: "pasted prefix", raw: "Segue o XML:\n  <a>1</a>  \n", expected: "<a>1</a>", ok: true},
		{name: "no markup", raw: "just some text", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := xmlparser.TrimToMarkup(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParse_NoContent(t *testing.T) {
	for _, raw := range []string{"", "   \n\t", "sem xml aqui"} {
		_, err := xmlparser.Parse(raw)
		require.Error(t, err)

		var parseErr *model.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, model.ErrCodeNoContent, parseErr.Code, "input %q", raw)
	}
}

func TestParse_Malformed(t *testing.T) {
	inputs := map[string]string{
		"mismatched end tag":   `<a><b></a>`,
		"unclosed element":     `<a><b>text</b>`,
		"bad attribute":        `<a x=1/>`,
		"multiple roots":       `<a/><b/>`,
		"text after the root":  `<a/>trailing`,
		"declaration only":     `<?xml version="1.0"?>`,
		"unterminated comment": `<a><!-- open`,
		"duplicate attribute":  `<a x='1' x='2'/>`,
		"duplicate expanded":   `<a xmlns:p="urn:x" xmlns:q="urn:x" p:k="1" q:k="2"/>`,
		"unbound element":      `<nfe:NFe><nfe:infNFe Id="NFe1"/></nfe:NFe>`,
		"unbound nested":       `<a xmlns:p="urn:p"><b><q:c/></b></a>`,
		"unbound attribute":    `<a p:k="1"/>`,
		"empty prefix binding": `<p:a xmlns:p=""/>`,
		"xmlns as prefix":      `<xmlns:a/>`,
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			doc, err := xmlparser.Parse(raw)
			require.Error(t, err)
			assert.Nil(t, doc, "no partial tree on failure")

			var parseErr *model.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, model.ErrCodeMalformed, parseErr.Code)
		})
	}
}

func TestParse_NamespaceNames(t *testing.T) {
	raw := `<r xmlns:p="urn:p" xml:lang="pt-BR" k="1" p:k="2">
		<a><p:b p:id="x" id="y"/></a>
	</r>`

	doc, err := xmlparser.Parse(raw)
	require.NoError(t, err, "prefixes bound on an ancestor and the xml prefix are accepted")

	b := doc.Find("urn:p", "b")
	require.NotNil(t, b)
	assert.Equal(t, "p", b.Prefix())
}

func TestParse_PastedPrefix(t *testing.T) {
	doc, err := xmlparser.Parse("XML da nota:\n" + fixture.DefaultInvoice().XML())
	require.NoError(t, err)
	assert.Equal(t, "nfeProc", doc.Root().Tag())
	assert.Equal(t, model.NamespaceNFe, doc.Root().Space())
}

func TestParse_DeclaredEncoding(t *testing.T) {
	doc, err := xmlparser.Parse(`<?xml version="1.0" encoding="ISO-8859-1"?><a>São Paulo</a>`)
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", doc.Root().Text())
}

func TestParse_Namespaces(t *testing.T) {
	raw := `<root xmlns="urn:default" xmlns:c="urn:other">
		<child id="1">one</child>
		<c:child c:id="x" id="2">two</c:child>
	</root>`

	doc, err := xmlparser.Parse(raw)
	require.NoError(t, err)

	root := doc.Root()
	assert.Equal(t, "urn:default", root.Space())

	children := root.Children()
	require.Len(t, children, 2)

	assert.Equal(t, "child", children[0].Tag())
	assert.Equal(t, "urn:default", children[0].Space())
	assert.Equal(t, "", children[0].Prefix())

	assert.Equal(t, "child", children[1].Tag())
	assert.Equal(t, "urn:other", children[1].Space())
	assert.Equal(t, "c", children[1].Prefix())

	id, ok := children[1].Attr("id")
	require.True(t, ok)
	assert.Equal(t, "2", id, "prefixed attributes are not matched by Attr")

	_, ok = children[1].Attr("missing")
	assert.False(t, ok)

	assert.Len(t, children[1].Attrs(), 2)
}

func TestElement_Text(t *testing.T) {
	doc, err := xmlparser.Parse(`<a>x<b>y<![CDATA[<z>]]></b> w</a>`)
	require.NoError(t, err)
	assert.Equal(t, "xy<z> w", doc.Root().Text())
}

func TestElement_Find(t *testing.T) {
	raw := `<r xmlns="urn:a" xmlns:b="urn:b">
		<x><k>first</k></x>
		<b:k>other-ns</b:k>
		<k>second</k>
	</r>`

	doc, err := xmlparser.Parse(raw)
	require.NoError(t, err)

	first := doc.Find("urn:a", "k")
	require.NotNil(t, first)
	assert.Equal(t, "first", first.Text(), "document order, depth first")

	assert.Len(t, doc.FindAll("urn:a", "k"), 2)
	assert.Len(t, doc.FindAll("urn:b", "k"), 1)
	assert.Nil(t, doc.Find("urn:c", "k"))

	assert.Equal(t, doc.Root(), doc.Find("urn:a", "r"), "document search includes the root")
	assert.Nil(t, doc.Root().Find("urn:a", "r"), "element search excludes itself")
}

func TestElement_ReadOnlyAccessors(t *testing.T) {
	doc, err := xmlparser.Parse(`<a k="v"><b/><c/></a>`)
	require.NoError(t, err)

	children := doc.Root().Children()
	children[0] = nil
	assert.NotNil(t, doc.Root().Children()[0], "Children returns a copy")

	attrs := doc.Root().Attrs()
	attrs[0].Value = "changed"
	v, _ := doc.Root().Attr("k")
	assert.Equal(t, "v", v, "Attrs returns a copy")
}

func TestParseKind(t *testing.T) {
	_, err := xmlparser.ParseKind(`<a>`, model.DocumentCTe)
	require.Error(t, err)

	var parseErr *model.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, model.DocumentCTe, parseErr.Kind)
	assert.Equal(t, model.ErrCodeMalformed, parseErr.Code)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected model.DocumentKind
	}{
		{name: "NF-e", raw: fixture.DefaultInvoice().XML(), expected: model.DocumentNFe},
		{name: "CT-e", raw: fixture.DefaultManifest().XML(), expected: model.DocumentCTe},
		{
			name:     "CT-e inside a foreign envelope",
			raw:      `<envelope><cte:infCte xmlns:cte="http://www.portalfiscal.inf.br/cte"/></envelope>`,
			expected: model.DocumentCTe,
		},
		{name: "unknown", raw: `<Invoice><TaxID>1</TaxID></Invoice>`, expected: model.DocumentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := xmlparser.Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, xmlparser.DetectKind(doc))
		})
	}

	assert.Equal(t, model.DocumentUnknown, xmlparser.DetectKind(nil))
}
