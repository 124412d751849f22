package xot_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/lestrrat-go/xot"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func parseDoc(t *testing.T, a *xot.Arena, src string) xot.Node {
	t.Helper()
	doc, err := a.Parse(src)
	require.NoError(t, err, "Parse should succeed for '%s'", src)
	return doc
}

func serialize(t *testing.T, a *xot.Arena, n xot.Node, options ...xot.SerializeOption) string {
	t.Helper()
	s, err := a.SerializeString(n, options...)
	require.NoError(t, err, "serialization should succeed")
	return s
}

func TestSerializeRoundTrips(t *testing.T) {
	inputs := []string{
		`<p>Example</p>`,
		`<a xmlns:x="u"><x:b k="1"/></a>`,
		`<doc><a/><b>text</b><!--c--><?pi data?></doc>`,
		`<doc xmlns="http://example.com"><a/></doc>`,
		`<a>x<b/>y</a>`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			a := xot.New()
			doc := parseDoc(t, a, input)
			require.Equal(t, input, serialize(t, a, doc))
		})
	}
}

func TestSerializeEscaping(t *testing.T) {
	a := xot.New()

	t.Run("text", func(t *testing.T) {
		doc := parseDoc(t, a, `<r>&lt;a &amp; b&gt;</r>`)
		require.Equal(t, `<r>&lt;a &amp; b&gt;</r>`, serialize(t, a, doc))
	})

	t.Run("unescape gt", func(t *testing.T) {
		doc := parseDoc(t, a, `<r>a &gt; b</r>`)
		require.Equal(t, `<r>a &gt; b</r>`, serialize(t, a, doc))
		require.Equal(t, `<r>a > b</r>`, serialize(t, a, doc, xot.WithUnescapeGT(true)))
	})

	t.Run("cdata end always escaped", func(t *testing.T) {
		// even with unescape_gt, the ]]> sequence keeps its escaped >
		doc := parseDoc(t, a, `<a>]]></a>`)
		require.Equal(t, `<a>]]&gt;</a>`, serialize(t, a, doc, xot.WithUnescapeGT(true)))
		require.Equal(t, `<a>]]&gt;</a>`, serialize(t, a, doc))
	})

	t.Run("attribute", func(t *testing.T) {
		doc := parseDoc(t, a, `<r k="&quot;&apos;&lt;&amp;"/>`)
		require.Equal(t, `<r k="&quot;&apos;&lt;&amp;"/>`, serialize(t, a, doc))
	})
}

func TestSerializeCDATASections(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<r><![CDATA[a & b > c]]></r>`)
	r := a.AddName("r")

	require.Equal(t, `<r><![CDATA[a & b > c]]></r>`,
		serialize(t, a, doc, xot.WithCDATASectionElements(r)),
		"configured elements use CDATA")
	require.Equal(t, `<r>a &amp; b &gt; c</r>`, serialize(t, a, doc),
		"without configuration text is escaped")

	t.Run("cdata end is split", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<r>x]]&gt;y</r>`)
		r := a.AddName("r")
		require.Equal(t, `<r><![CDATA[x]]]]><![CDATA[>y]]></r>`,
			serialize(t, a, doc, xot.WithCDATASectionElements(r)))
	})
}

func TestSerializeMissingPrefix(t *testing.T) {
	a := xot.New()
	u := a.AddNamespace("u")
	root := a.NewElement(a.AddNameNS("root", u))

	_, err := a.SerializeString(root)
	require.Error(t, err, "no in-scope prefix for u")
	var missing xot.ErrMissingPrefix
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "u", missing.Namespace)

	// no implicit fixup: the caller creates prefixes explicitly
	require.NoError(t, a.CreateMissingPrefixes(root))
	require.Equal(t, `<n0:root xmlns:n0="u"/>`, serialize(t, a, root))
}

func TestCreateMissingPrefixesScenario(t *testing.T) {
	a := xot.New()
	u := a.AddNamespace("u")
	root := a.NewElement(a.AddNameNS("root", u))
	doc, err := a.NewDocumentWithElement(root)
	require.NoError(t, err)
	_, err = a.AppendElement(root, a.AddNameNS("c", u))
	require.NoError(t, err)

	require.NoError(t, a.CreateMissingPrefixes(doc))
	require.Equal(t, `<n0:root xmlns:n0="u"><n0:c/></n0:root>`, serialize(t, a, doc))
}

func TestSerializeFragmentRedeclaresPrefixes(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc xmlns:x="u"><x:b><x:c/></x:b></doc>`)
	docEl, err := a.DocumentElement(doc)
	require.NoError(t, err)
	b := a.FirstChild(docEl)

	require.Equal(t, `<x:b xmlns:x="u"><x:c/></x:b>`, serialize(t, a, b),
		"a fragment inherits the prefixes it needs")
}

func TestSerializeDeclarationAndDoctype(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<p>x</p>`)

	require.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><p>x</p>`,
		serialize(t, a, doc, xot.WithXMLDeclaration(true)))

	require.Equal(t, `<!DOCTYPE p SYSTEM "p.dtd"><p>x</p>`,
		serialize(t, a, doc, xot.WithDoctype(xot.Doctype{System: "p.dtd"})))

	require.Equal(t, `<!DOCTYPE p PUBLIC "-//X//DTD p//EN" "p.dtd"><p>x</p>`,
		serialize(t, a, doc, xot.WithDoctype(xot.Doctype{Public: "-//X//DTD p//EN", System: "p.dtd"})))
}

func TestSerializeNormalizer(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<p k="abc">def</p>`)

	upper := xot.NormalizerFunc(strings.ToUpper)
	require.Equal(t, `<p k="ABC">DEF</p>`,
		serialize(t, a, doc, xot.WithNormalizer(upper)),
		"normalizer applies to text and attribute values")

	t.Run("unicode form", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, "<p>é</p>")
		require.Equal(t, "<p>é</p>",
			serialize(t, a, doc, xot.WithNormalizer(xot.FormNormalizer(norm.NFC))))
	})
}

func TestSerializePretty(t *testing.T) {
	a := xot.New()

	t.Run("elements", func(t *testing.T) {
		doc := parseDoc(t, a, `<doc><a><b/></a></doc>`)
		require.Equal(t, "<doc>\n  <a>\n    <b/>\n  </a>\n</doc>\n",
			serialize(t, a, doc, xot.WithPretty(true)))
	})

	t.Run("mixed content keeps whitespace", func(t *testing.T) {
		doc := parseDoc(t, a, `<doc><p>Hello <em>world</em>!</p></doc>`)
		require.Equal(t, "<doc>\n  <p>Hello <em>world</em>!</p>\n</doc>\n",
			serialize(t, a, doc, xot.WithPretty(true)))
	})

	t.Run("xml space preserve", func(t *testing.T) {
		doc := parseDoc(t, a, `<doc xml:space="preserve"><p>Hello</p></doc>`)
		require.Equal(t, `<doc xml:space="preserve"><p>Hello</p></doc>`+"\n",
			serialize(t, a, doc, xot.WithPretty(true)))
	})

	t.Run("suppressed elements", func(t *testing.T) {
		doc := parseDoc(t, a, `<doc><a><b/></a><a><b/></a></doc>`)
		aName := a.AddName("a")
		require.Equal(t, "<doc>\n  <a><b/></a>\n  <a><b/></a>\n</doc>\n",
			serialize(t, a, doc, xot.WithPretty(true), xot.WithSuppressIndentation(aName)))
	})

	t.Run("declaration gets its own line", func(t *testing.T) {
		doc := parseDoc(t, a, `<doc><a/></doc>`)
		require.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<doc>\n  <a/>\n</doc>\n",
			serialize(t, a, doc, xot.WithPretty(true), xot.WithXMLDeclaration(true)))
	})
}

func TestOutputs(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc a="A" xmlns:x="u">Text</doc>`)
	docEl, err := a.DocumentElement(doc)
	require.NoError(t, err)

	var kinds []xot.OutputKind
	for _, out := range a.Outputs(doc) {
		kinds = append(kinds, out.Kind)
	}
	require.Equal(t, []xot.OutputKind{
		xot.OutputDocumentStart,
		xot.OutputStartTagOpen,
		xot.OutputNamespace,
		xot.OutputAttribute,
		xot.OutputStartTagClose,
		xot.OutputText,
		xot.OutputEndTag,
		xot.OutputDocumentEnd,
	}, kinds, "token stream in order")

	t.Run("lazy", func(t *testing.T) {
		// pulling only the first token must not walk the whole tree
		for _, out := range a.Outputs(docEl) {
			require.Equal(t, xot.OutputStartTagOpen, out.Kind)
			break
		}
	})
}
