package xot_test

import (
	"testing"

	"github.com/lestrrat-go/xot"
	"github.com/stretchr/testify/require"
)

func TestAttributes(t *testing.T) {
	a := xot.New()
	doc := parseDoc(t, a, `<doc a="1" b="2"/>`)
	docEl := documentElement(t, a, doc)

	aName, _ := a.Name("a")
	bName, _ := a.Name("b")

	t.Run("iteration order", func(t *testing.T) {
		var names []xot.NameID
		var values []string
		for name, value := range a.Attributes(docEl) {
			names = append(names, name)
			values = append(values, value)
		}
		require.Equal(t, []xot.NameID{aName, bName}, names)
		require.Equal(t, []string{"1", "2"}, values)
	})

	t.Run("get", func(t *testing.T) {
		v, ok := a.AttributeValue(docEl, aName)
		require.True(t, ok)
		require.Equal(t, "1", v)
		_, ok = a.AttributeValue(docEl, a.AddName("missing"))
		require.False(t, ok)
	})

	t.Run("set updates in place", func(t *testing.T) {
		require.NoError(t, a.SetAttribute(docEl, aName, "changed"))
		v, _ := a.AttributeValue(docEl, aName)
		require.Equal(t, "changed", v)

		var count int
		for range a.AttributeNodes(docEl) {
			count++
		}
		require.Equal(t, 2, count, "no duplicate attribute node was added")
	})

	t.Run("set adds new attributes at the end", func(t *testing.T) {
		cName := a.AddName("c")
		require.NoError(t, a.SetAttribute(docEl, cName, "3"))
		var names []xot.NameID
		for name := range a.Attributes(docEl) {
			names = append(names, name)
		}
		require.Equal(t, []xot.NameID{aName, bName, cName}, names)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, a.RemoveAttribute(docEl, bName))
		_, ok := a.AttributeValue(docEl, bName)
		require.False(t, ok)
		require.NoError(t, a.RemoveAttribute(docEl, bName), "removing twice is fine")
	})

	t.Run("attribute node payload", func(t *testing.T) {
		for node := range a.AttributeNodes(docEl) {
			attr := a.AttributeNode(node)
			require.NotNil(t, attr)
			require.Equal(t, docEl, a.Parent(node), "attribute nodes have their element as parent")
			break
		}
	})
}

func TestChildRegionOrder(t *testing.T) {
	a := xot.New()
	el := a.NewElement(a.AddName("el"))

	// build in the "wrong" order; the regions must still come out
	// namespace, attribute, content
	require.NoError(t, a.AppendText(el, "content"))
	require.NoError(t, a.SetAttribute(el, a.AddName("k"), "1"))
	_, err := a.AppendNamespace(el, a.AddPrefix("p"), a.AddNamespace("u"))
	require.NoError(t, err)

	var types []xot.NodeType
	for c := range a.AllChildren(el) {
		types = append(types, a.NodeTypeOf(c))
	}
	require.Equal(t, []xot.NodeType{
		xot.NamespaceNodeType,
		xot.AttributeNodeType,
		xot.TextNodeType,
	}, types)

	t.Run("namespace nodes keep declaration order", func(t *testing.T) {
		_, err := a.AppendNamespace(el, a.AddPrefix("q"), a.AddNamespace("v"))
		require.NoError(t, err)
		var prefixes []xot.PrefixID
		for p := range a.Namespaces(el) {
			prefixes = append(prefixes, p)
		}
		p, _ := a.Prefix("p")
		q, _ := a.Prefix("q")
		require.Equal(t, []xot.PrefixID{p, q}, prefixes)
	})

	t.Run("same prefix updates in place", func(t *testing.T) {
		v2 := a.AddNamespace("v2")
		node, err := a.AppendNamespace(el, a.AddPrefix("q"), v2)
		require.NoError(t, err)
		decl := a.NamespaceNode(node)
		require.Equal(t, v2, decl.Namespace())

		var count int
		for range a.NamespaceNodes(el) {
			count++
		}
		require.Equal(t, 2, count)
	})
}

func TestAnyAppend(t *testing.T) {
	a := xot.New()
	el := a.NewElement(a.AddName("el"))

	attr := a.NewAttributeNode(a.AddName("k"), "1")
	nsNode, err := a.NewNamespaceNode(a.AddPrefix("p"), a.AddNamespace("u"))
	require.NoError(t, err)
	child := a.NewElement(a.AddName("child"))

	for _, n := range []xot.Node{attr, nsNode, child} {
		_, err := a.AnyAppend(el, n)
		require.NoError(t, err)
	}

	var types []xot.NodeType
	for c := range a.AllChildren(el) {
		types = append(types, a.NodeTypeOf(c))
	}
	require.Equal(t, []xot.NodeType{
		xot.NamespaceNodeType,
		xot.AttributeNodeType,
		xot.ElementNodeType,
	}, types)

	t.Run("attributes are not content", func(t *testing.T) {
		attr := a.NewAttributeNode(a.AddName("x"), "1")
		require.ErrorIs(t, a.Append(el, attr), xot.ErrInvalidOperation,
			"Append takes content nodes only")
	})

	t.Run("attributes only on elements", func(t *testing.T) {
		text := a.NewText("x")
		_, err := a.AppendAttributeNode(text, a.NewAttributeNode(a.AddName("x"), "1"))
		require.ErrorIs(t, err, xot.ErrNotElement)
	})
}

func TestValuePayloads(t *testing.T) {
	a := xot.New()

	t.Run("comment validation", func(t *testing.T) {
		_, err := a.NewComment("a--b")
		require.ErrorIs(t, err, xot.ErrInvalidComment)
		_, err = a.NewComment("ends with dash-")
		require.ErrorIs(t, err, xot.ErrInvalidComment)
		n, err := a.NewComment("fine")
		require.NoError(t, err)
		require.ErrorIs(t, a.Comment(n).Set("also--bad"), xot.ErrInvalidComment)
		require.NoError(t, a.Comment(n).Set("still fine"))
	})

	t.Run("processing instruction validation", func(t *testing.T) {
		_, err := a.NewProcessingInstruction(a.AddName("xml"), "data")
		require.ErrorIs(t, err, xot.ErrInvalidProcessingInstruction)
		_, err = a.NewProcessingInstruction(a.AddName("XmL"), "data")
		require.ErrorIs(t, err, xot.ErrInvalidProcessingInstruction)
		_, err = a.NewProcessingInstruction(a.AddNameNS("t", a.AddNamespace("u")), "")
		require.ErrorIs(t, err, xot.ErrInvalidProcessingInstruction,
			"a target must not be namespaced")

		pi, err := a.NewProcessingInstruction(a.AddName("style"), "x")
		require.NoError(t, err)
		require.Equal(t, "x", a.ProcessingInstruction(pi).Data())
	})

	t.Run("typed accessors", func(t *testing.T) {
		text := a.NewText("x")
		require.NotNil(t, a.Text(text))
		require.Nil(t, a.Element(text))
		require.Nil(t, a.Comment(text))
		_, err := a.ElementName(text)
		require.ErrorIs(t, err, xot.ErrNotElement)

		v, err := a.Value(text)
		require.NoError(t, err)
		require.Equal(t, xot.TextNodeType, v.Type())

		s, err := a.TextValue(text)
		require.NoError(t, err)
		require.Equal(t, "x", s)
		el := a.NewElement(a.AddName("el"))
		_, err = a.TextValue(el)
		require.ErrorIs(t, err, xot.ErrNotText)

		_, err = a.ValueAs(el, xot.ElementNodeType)
		require.NoError(t, err)
		_, err = a.ValueAs(el, xot.TextNodeType)
		var wrong xot.ErrWrongNodeKind
		require.ErrorAs(t, err, &wrong)
		require.Equal(t, xot.TextNodeType, wrong.Expected)
		require.Equal(t, xot.ElementNodeType, wrong.Actual)
	})

	t.Run("element rename", func(t *testing.T) {
		doc := parseDoc(t, a, `<old/>`)
		docEl := documentElement(t, a, doc)
		a.Element(docEl).SetName(a.AddName("new"))
		require.Equal(t, `<new/>`, serialize(t, a, doc))
	})
}
