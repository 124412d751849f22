package xot_test

import (
	"testing"

	"github.com/lestrrat-go/xot"
	"github.com/stretchr/testify/require"
)

func documentElement(t *testing.T, a *xot.Arena, doc xot.Node) xot.Node {
	t.Helper()
	docEl, err := a.DocumentElement(doc)
	require.NoError(t, err)
	return docEl
}

func children(a *xot.Arena, n xot.Node) []xot.Node {
	var nodes []xot.Node
	for c := range a.Children(n) {
		nodes = append(nodes, c)
	}
	return nodes
}

func TestAppend(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><p>Example</p></doc>`)
	docEl := documentElement(t, a, doc)

	p := a.AddName("p")
	el := a.NewElement(p)
	require.NoError(t, a.Append(docEl, el))
	require.Equal(t, `<doc><p>Example</p><p/></doc>`, serialize(t, a, doc))

	t.Run("text consolidation", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc>Hello</doc>`)
		docEl := documentElement(t, a, doc)

		require.NoError(t, a.AppendText(docEl, " World"))
		require.Len(t, children(a, docEl), 1, "adjacent text merged into one node")
		text, err := a.TextContent(docEl)
		require.NoError(t, err)
		require.Equal(t, "Hello World", text)
	})

	t.Run("consolidation disabled", func(t *testing.T) {
		a := xot.New()
		a.SetTextConsolidation(false)
		doc := parseDoc(t, a, `<doc>Hello</doc>`)
		docEl := documentElement(t, a, doc)

		require.NoError(t, a.AppendText(docEl, " World"))
		require.Len(t, children(a, docEl), 2, "text nodes are kept apart")
	})

	t.Run("second document element", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		el := a.NewElement(a.AddName("extra"))
		require.ErrorIs(t, a.Append(doc, el), xot.ErrInvalidOperation)
	})

	t.Run("text under document", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		require.ErrorIs(t, a.AppendText(doc, "x"), xot.ErrInvalidOperation)
	})

	t.Run("cycle", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc><a><b/></a></doc>`)
		docEl := documentElement(t, a, doc)
		aEl := a.FirstChild(docEl)
		b := a.FirstChild(aEl)
		el := a.NewElement(a.AddName("x"))
		require.NoError(t, a.Append(b, el))
		require.ErrorIs(t, a.Append(el, b), xot.ErrWouldCycle)
		require.ErrorIs(t, a.Append(b, b), xot.ErrWouldCycle)
	})

	t.Run("move between trees", func(t *testing.T) {
		a := xot.New()
		doc1 := parseDoc(t, a, `<doc><a/></doc>`)
		doc2 := parseDoc(t, a, `<other><b/></other>`)
		el1 := documentElement(t, a, doc1)
		el2 := documentElement(t, a, doc2)
		b := a.FirstChild(el2)

		require.NoError(t, a.Append(a.FirstChild(el1), b), "append detaches from the other tree")
		require.Equal(t, `<doc><a><b/></a></doc>`, serialize(t, a, doc1))
		require.Equal(t, `<other/>`, serialize(t, a, doc2))
	})
}

func TestPrependAndInsert(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><a/><c/></doc>`)
	docEl := documentElement(t, a, doc)
	aEl := a.FirstChild(docEl)

	b := a.NewElement(a.AddName("b"))
	require.NoError(t, a.InsertAfter(aEl, b))
	require.Equal(t, `<doc><a/><b/><c/></doc>`, serialize(t, a, doc))

	z := a.NewElement(a.AddName("z"))
	require.NoError(t, a.Prepend(docEl, z))
	require.Equal(t, `<doc><z/><a/><b/><c/></doc>`, serialize(t, a, doc))

	y := a.NewElement(a.AddName("y"))
	require.NoError(t, a.InsertBefore(z, y))
	require.Equal(t, `<doc><y/><z/><a/><b/><c/></doc>`, serialize(t, a, doc))

	t.Run("prepend goes after attributes", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc k="1"><a/></doc>`)
		docEl := documentElement(t, a, doc)
		require.NoError(t, a.Prepend(docEl, a.NewText("x")))
		require.Equal(t, `<doc k="1">x<a/></doc>`, serialize(t, a, doc))
	})

	t.Run("insert text consolidates both ways", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc>ab</doc>`)
		docEl := documentElement(t, a, doc)
		textNode := a.FirstChild(docEl)

		require.NoError(t, a.InsertBefore(textNode, a.NewText(">>")))
		text, err := a.TextContent(docEl)
		require.NoError(t, err)
		require.Equal(t, ">>ab", text)
		require.Len(t, children(a, docEl), 1)

		require.NoError(t, a.InsertAfter(textNode, a.NewText("<<")))
		text, err = a.TextContent(docEl)
		require.NoError(t, err)
		require.Equal(t, ">>ab<<", text)
		require.Len(t, children(a, docEl), 1)
	})
}

func TestDetachAndRemove(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><a><b><c/></b></a></doc>`)
	docEl := documentElement(t, a, doc)
	aEl := a.FirstChild(docEl)

	t.Run("detach keeps the fragment alive", func(t *testing.T) {
		b := a.FirstChild(aEl)
		require.NoError(t, a.Detach(b))
		require.Equal(t, `<doc><a/></doc>`, serialize(t, a, doc))
		require.False(t, a.IsRemoved(b))
	})

	t.Run("remove frees the subtree", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc><a><b/></a></doc>`)
		docEl := documentElement(t, a, doc)
		aEl := a.FirstChild(docEl)
		b := a.FirstChild(aEl)

		require.NoError(t, a.Remove(aEl))
		require.True(t, a.IsRemoved(aEl))
		require.True(t, a.IsRemoved(b), "descendants are freed too")
		require.Equal(t, `<doc/>`, serialize(t, a, doc))

		_, err := a.Value(aEl)
		require.ErrorIs(t, err, xot.ErrStaleHandle)
		require.ErrorIs(t, a.Remove(aEl), xot.ErrStaleHandle)
		require.True(t, a.Parent(aEl).IsZero(), "navigation on a stale handle yields zero")
	})

	t.Run("document element cannot be removed", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		docEl := documentElement(t, a, doc)
		require.ErrorIs(t, a.Remove(docEl), xot.ErrInvalidOperation)
	})

	t.Run("handle reuse bumps generations", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc><a/></doc>`)
		docEl := documentElement(t, a, doc)
		aEl := a.FirstChild(docEl)
		require.NoError(t, a.Remove(aEl))

		// the freed slot is reused; the old handle must stay stale
		fresh, err := a.AppendElement(docEl, a.AddName("b"))
		require.NoError(t, err)
		require.False(t, a.IsRemoved(fresh))
		require.True(t, a.IsRemoved(aEl))
		require.NotEqual(t, aEl, fresh)
	})
}

func TestReplace(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><a><b/></a><c/></doc>`)
	docEl := documentElement(t, a, doc)
	aEl := a.FirstChild(docEl)

	d := a.NewElement(a.AddName("d"))
	require.NoError(t, a.Replace(aEl, d))
	require.Equal(t, `<doc><d/><c/></doc>`, serialize(t, a, doc))
	require.True(t, a.IsRemoved(aEl))

	t.Run("document element", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		docEl := documentElement(t, a, doc)

		require.ErrorIs(t, a.Replace(docEl, a.NewText("x")), xot.ErrInvalidOperation,
			"only an element may replace the document element")

		other := a.NewElement(a.AddName("other"))
		require.NoError(t, a.Replace(docEl, other))
		require.Equal(t, `<other/>`, serialize(t, a, doc))
	})
}

func TestElementWrapUnwrap(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><b><c/></b></doc>`)
	docEl := documentElement(t, a, doc)
	b := a.FirstChild(docEl)

	wrapper, err := a.ElementWrap(b, a.AddName("a"))
	require.NoError(t, err)
	require.Equal(t, `<doc><a><b><c/></b></a></doc>`, serialize(t, a, doc))
	require.Equal(t, `<a><b><c/></b></a>`, serialize(t, a, wrapper))

	t.Run("unwrap restores the position", func(t *testing.T) {
		require.NoError(t, a.ElementUnwrap(wrapper))
		require.Equal(t, `<doc><b><c/></b></doc>`, serialize(t, a, doc))
	})

	t.Run("unwrap splices several children", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc><x/><w><a/>text<b/></w><y/></doc>`)
		docEl := documentElement(t, a, doc)
		w := a.NextSibling(a.FirstChild(docEl))
		require.NoError(t, a.ElementUnwrap(w))
		require.Equal(t, `<doc><x/><a/>text<b/><y/></doc>`, serialize(t, a, doc))
	})

	t.Run("unwrap empty element", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<a><b/><b/></a>`)
		docEl := documentElement(t, a, doc)
		require.NoError(t, a.ElementUnwrap(a.FirstChild(docEl)))
		require.Equal(t, 1, len(children(a, docEl)), "document element a has children [b]")
		require.Equal(t, `<a><b/></a>`, serialize(t, a, doc))
	})

	t.Run("unwrap consolidates surrounding text", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc>pre<w>mid</w>post</doc>`)
		docEl := documentElement(t, a, doc)
		w := a.NextSibling(a.FirstChild(docEl))
		require.NoError(t, a.ElementUnwrap(w))
		text, err := a.TextContent(docEl)
		require.NoError(t, err)
		require.Equal(t, "premidpost", text)
	})

	t.Run("document element unwrap", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc><only/></doc>`)
		docEl := documentElement(t, a, doc)
		require.NoError(t, a.ElementUnwrap(docEl))
		require.Equal(t, `<only/>`, serialize(t, a, doc))

		t.Run("requires a single element child", func(t *testing.T) {
			a := xot.New()
			doc := parseDoc(t, a, `<doc><a/><b/></doc>`)
			docEl := documentElement(t, a, doc)
			require.ErrorIs(t, a.ElementUnwrap(docEl), xot.ErrInvalidOperation)
		})
	})

	t.Run("document element unwrap keeps prefixes resolvable", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<a xmlns:x="u"><x:b><x:c/></x:b></a>`)
		docEl := documentElement(t, a, doc)
		require.NoError(t, a.ElementUnwrap(docEl))
		require.Equal(t, `<n0:b xmlns:n0="u"><n0:c/></n0:b>`, serialize(t, a, doc),
			"missing prefixes are recreated on the new document element")
	})

	t.Run("wrap document element", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		docEl := documentElement(t, a, doc)
		_, err := a.ElementWrap(docEl, a.AddName("outer"))
		require.NoError(t, err)
		require.Equal(t, `<outer><doc/></outer>`, serialize(t, a, doc))
	})

	t.Run("cannot wrap document node", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc/>`)
		_, err := a.ElementWrap(doc, a.AddName("outer"))
		require.ErrorIs(t, err, xot.ErrInvalidOperation)
	})
}

func TestClone(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><a f="F"><b><c/></b></a></doc>`)
	docEl := documentElement(t, a, doc)
	aEl := a.FirstChild(docEl)

	cloned, err := a.Clone(aEl)
	require.NoError(t, err)
	require.True(t, a.Parent(cloned).IsZero(), "clone is unattached")
	require.NotEqual(t, aEl, cloned, "clone has fresh handles")
	require.True(t, a.DeepEqual(aEl, cloned), "clone is deep-equal to the original")
	require.Equal(t, `<a f="F"><b><c/></b></a>`, serialize(t, a, cloned))
	require.Equal(t, `<doc><a f="F"><b><c/></b></a></doc>`, serialize(t, a, doc),
		"original is untouched")

	t.Run("clone document", func(t *testing.T) {
		clonedDoc, err := a.Clone(doc)
		require.NoError(t, err)
		require.True(t, a.IsDocument(clonedDoc))
		require.True(t, a.DeepEqual(doc, clonedDoc))
	})

	t.Run("clone merges unconsolidated text", func(t *testing.T) {
		raw := xot.New()
		raw.SetTextConsolidation(false)
		doc := parseDoc(t, raw, `<doc>a</doc>`)
		docEl := documentElement(t, raw, doc)
		require.NoError(t, raw.AppendText(docEl, "b"))
		require.Len(t, children(raw, docEl), 2)

		raw.SetTextConsolidation(true)
		cloned, err := raw.Clone(docEl)
		require.NoError(t, err)
		require.Len(t, children(raw, cloned), 1, "clone consolidates adjacent text")
		text, err := raw.TextContent(cloned)
		require.NoError(t, err)
		require.Equal(t, "ab", text)
	})
}

func TestCloneWithPrefixes(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc xmlns:foo="http://example.com"><foo:a><foo:b><foo:c/></foo:b></foo:a></doc>`)
	docEl := documentElement(t, a, doc)
	aEl := a.FirstChild(docEl)

	cloned, err := a.CloneWithPrefixes(aEl)
	require.NoError(t, err)
	require.Equal(t,
		`<foo:a xmlns:foo="http://example.com"><foo:b><foo:c/></foo:b></foo:a>`,
		serialize(t, a, cloned))

	t.Run("plain clone needs generated prefixes", func(t *testing.T) {
		cloned, err := a.Clone(aEl)
		require.NoError(t, err)
		require.NoError(t, a.CreateMissingPrefixes(cloned))
		require.Equal(t,
			`<n0:a xmlns:n0="http://example.com"><n0:b><n0:c/></n0:b></n0:a>`,
			serialize(t, a, cloned))
	})

	t.Run("non-element clone", func(t *testing.T) {
		textNode := a.NewText("x")
		cloned, err := a.CloneWithPrefixes(textNode)
		require.NoError(t, err)
		require.True(t, a.IsText(cloned))
	})
}

func TestTextContent(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc><p>one</p><q/><r><s/></r></doc>`)
	docEl := documentElement(t, a, doc)
	p := a.FirstChild(docEl)
	q := a.NextSibling(p)
	r := a.NextSibling(q)

	text, err := a.TextContent(p)
	require.NoError(t, err)
	require.Equal(t, "one", text)

	text, err = a.TextContent(q)
	require.NoError(t, err)
	require.Equal(t, "", text, "empty element has empty text content")

	_, err = a.TextContent(r)
	require.ErrorIs(t, err, xot.ErrInvalidOperation, "element content is not text")

	require.NoError(t, a.SetTextContent(p, "two"))
	require.NoError(t, a.SetTextContent(q, "three"))
	require.Equal(t, `<doc><p>two</p><q>three</q><r><s/></r></doc>`, serialize(t, a, doc))
	require.ErrorIs(t, a.SetTextContent(r, "x"), xot.ErrInvalidOperation)
}

func TestRemoveInsignificantWhitespace(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, "<doc>  <p>hello <i>world</i>  </p>  </doc>")
	a.RemoveInsignificantWhitespace(doc)
	require.Equal(t, "<doc><p>hello <i>world</i>  </p></doc>", serialize(t, a, doc))

	t.Run("xml space preserve", func(t *testing.T) {
		a := xot.New()
		doc := parseDoc(t, a, `<doc xml:space="preserve">   </doc>`)
		a.RemoveInsignificantWhitespace(doc)
		require.Equal(t, `<doc xml:space="preserve">   </doc>`, serialize(t, a, doc))
	})
}
