package xot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeText(t *testing.T) {
	require.Equal(t, "no change", escapeText("no change", false))
	require.Equal(t, "a &amp; b", escapeText("a & b", false))
	require.Equal(t, "&lt;tag&gt;", escapeText("<tag>", false))
	require.Equal(t, "a &gt; b", escapeText("a > b", false))

	t.Run("unescaped gt", func(t *testing.T) {
		require.Equal(t, "a > b", escapeText("a > b", true))
		require.Equal(t, "]]&gt;", escapeText("]]>", true),
			"the cdata-end sequence is always escaped")
		require.Equal(t, "a]]&gt;b > c", escapeText("a]]>b > c", true))
	})
}

func TestEscapeAttribute(t *testing.T) {
	require.Equal(t, "plain", escapeAttribute("plain"))
	require.Equal(t, "&quot;&apos;&lt;&amp;", escapeAttribute(`"'<&`))
	require.Equal(t, "a>b", escapeAttribute("a>b"), "gt needs no escaping in attributes")
}

func TestEscapeCDATA(t *testing.T) {
	require.Equal(t, "<![CDATA[plain]]>", escapeCDATA("plain"))
	require.Equal(t, "<![CDATA[a & b > c]]>", escapeCDATA("a & b > c"))
	require.Equal(t, "<![CDATA[a]]]]><![CDATA[>b]]>", escapeCDATA("a]]>b"),
		"a literal ]]> is split across two sections")
}

func TestParsePredefinedEntities(t *testing.T) {
	s, err := parseEntities("A &amp; B")
	require.NoError(t, err)
	require.Equal(t, "A & B", s)

	s, err = parseEntities("&amp;&apos;&gt;&lt;&quot;")
	require.NoError(t, err)
	require.Equal(t, `&'><"`, s)

	s, err = parseEntities("&#65;&#x41;")
	require.NoError(t, err)
	require.Equal(t, "AA", s)

	_, err = parseEntities("&unknown;")
	require.Error(t, err)
	_, err = parseEntities("&amp")
	require.Error(t, err)

	t.Run("no entities returns input", func(t *testing.T) {
		s, err := parseEntities("hello")
		require.NoError(t, err)
		require.Equal(t, "hello", s)
	})
}
