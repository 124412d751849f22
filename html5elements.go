package xot

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// HTML5 element classification. Element names are matched case
// insensitively, in the XHTML namespace or in no namespace.

const (
	xhtmlNamespaceURI  = "http://www.w3.org/1999/xhtml"
	mathmlNamespaceURI = "http://www.w3.org/1998/Math/MathML"
	svgNamespaceURI    = "http://www.w3.org/2000/svg"
)

// htmlNameSet matches a set of HTML element names. Known names use the
// interned atoms of x/net/html; names that have no atom are matched by
// string.
type htmlNameSet struct {
	atoms map[atom.Atom]bool
	extra map[string]bool
}

func newHTMLNameSet(atoms []atom.Atom, extra ...string) htmlNameSet {
	s := htmlNameSet{
		atoms: make(map[atom.Atom]bool, len(atoms)),
		extra: make(map[string]bool, len(extra)),
	}
	for _, a := range atoms {
		s.atoms[a] = true
	}
	for _, e := range extra {
		s.extra[e] = true
	}
	return s
}

func (s htmlNameSet) contains(local string) bool {
	lower := strings.ToLower(local)
	if a := atom.Lookup([]byte(lower)); a != 0 && s.atoms[a] {
		return true
	}
	return s.extra[lower]
}

var voidNames = newHTMLNameSet(
	[]atom.Atom{
		atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr,
		atom.Img, atom.Input, atom.Link, atom.Meta, atom.Param,
		atom.Source, atom.Track, atom.Wbr,
	},
	// void in HTML 4 but gone from the HTML5 tables
	"keygen", "basefont", "frame", "isindex",
)

var phrasingNames = newHTMLNameSet(
	[]atom.Atom{
		atom.A, atom.Abbr, atom.Area, atom.Audio, atom.B, atom.Bdo,
		atom.Br, atom.Button, atom.Canvas, atom.Cite, atom.Code,
		atom.Datalist, atom.Del, atom.Dfn, atom.Em, atom.Embed, atom.I,
		atom.Iframe, atom.Img, atom.Input, atom.Ins, atom.Kbd,
		atom.Label, atom.Map, atom.Mark, atom.Meter, atom.Noscript,
		atom.Object, atom.Output, atom.Progress, atom.Q, atom.Ruby,
		atom.S, atom.Samp, atom.Script, atom.Select, atom.Small,
		atom.Span, atom.Strong, atom.Sub, atom.Sup, atom.Textarea,
		atom.Time, atom.U, atom.Var, atom.Video, atom.Wbr,
	},
	"bdi", "command", "keygen", "math", "svg",
)

var formattedNames = newHTMLNameSet(
	[]atom.Atom{atom.Pre, atom.Script, atom.Style, atom.Title, atom.Textarea},
)

var noEscapeNames = newHTMLNameSet(
	[]atom.Atom{atom.Script, atom.Style},
)

type html5Elements struct {
	arena           *Arena
	xhtmlNamespace  NamespaceID
	mathmlNamespace NamespaceID
	svgNamespace    NamespaceID
}

func newHTML5Elements(a *Arena) *html5Elements {
	return &html5Elements{
		arena:           a,
		xhtmlNamespace:  a.AddNamespace(xhtmlNamespaceURI),
		mathmlNamespace: a.AddNamespace(mathmlNamespaceURI),
		svgNamespace:    a.AddNamespace(svgNamespaceURI),
	}
}

// isHTMLName reports whether a name can refer to an HTML element: it is
// in the XHTML namespace or in no namespace.
func (h *html5Elements) isHTMLName(name NameID) bool {
	ns := h.arena.NamespaceForName(name)
	return ns == h.xhtmlNamespace || ns == h.arena.noNamespace
}

func (h *html5Elements) matches(name NameID, set htmlNameSet) bool {
	if !h.isHTMLName(name) {
		return false
	}
	return set.contains(h.arena.LocalNameString(name))
}

func (h *html5Elements) isVoid(name NameID) bool {
	return h.matches(name, voidNames)
}

func (h *html5Elements) isPhrasing(name NameID) bool {
	return h.matches(name, phrasingNames)
}

func (h *html5Elements) isFormatted(name NameID) bool {
	return h.matches(name, formattedNames)
}

func (h *html5Elements) isNoEscape(name NameID) bool {
	return h.matches(name, noEscapeNames)
}

// mustBeUnprefixed reports whether the namespace is serialized with the
// default prefix in HTML5 output.
func (h *html5Elements) mustBeUnprefixed(ns NamespaceID) bool {
	return ns == h.xhtmlNamespace || ns == h.mathmlNamespace || ns == h.svgNamespace
}
