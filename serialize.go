package xot

import (
	"bytes"
	"io"

	"github.com/lestrrat-go/option"
)

type Option = option.Interface

// SerializeOption configures serialization.
type SerializeOption interface {
	Option
	serializeOption()
}

type serializeOption struct {
	Option
}

func (*serializeOption) serializeOption() {}

func newSerializeOption(ident, value interface{}) SerializeOption {
	return &serializeOption{option.New(ident, value)}
}

type identPretty struct{}
type identXMLDeclaration struct{}
type identDoctype struct{}
type identCDATAElements struct{}
type identSuppressElements struct{}
type identUnescapeGT struct{}
type identNormalizer struct{}
type identHTML5 struct{}

// WithPretty enables pretty printing: nesting is indented and newlines
// separate sibling nodes, except in mixed content, under
// xml:space="preserve", and below suppressed elements.
func WithPretty(v bool) SerializeOption {
	return newSerializeOption(identPretty{}, v)
}

// WithXMLDeclaration makes serialization start with an XML declaration.
func WithXMLDeclaration(v bool) SerializeOption {
	return newSerializeOption(identXMLDeclaration{}, v)
}

// WithDoctype makes serialization emit a document type declaration.
func WithDoctype(v Doctype) SerializeOption {
	return newSerializeOption(identDoctype{}, v)
}

// WithCDATASectionElements lists elements whose text content is
// serialized as CDATA sections instead of escaped text.
func WithCDATASectionElements(names ...NameID) SerializeOption {
	return newSerializeOption(identCDATAElements{}, names)
}

// WithSuppressIndentation lists elements below which pretty printing
// does not reformat whitespace.
func WithSuppressIndentation(names ...NameID) SerializeOption {
	return newSerializeOption(identSuppressElements{}, names)
}

// WithUnescapeGT stops '>' from being escaped in text content, except
// for the '>' terminating a "]]>" sequence, which is always escaped.
func WithUnescapeGT(v bool) SerializeOption {
	return newSerializeOption(identUnescapeGT{}, v)
}

// WithNormalizer applies a text normalizer to every text and attribute
// value token as it is serialized.
func WithNormalizer(v Normalizer) SerializeOption {
	return newSerializeOption(identNormalizer{}, v)
}

// WithHTML5 switches serialization to the HTML5 output method: void
// elements have no end tags, empty HTML elements are never self-closed,
// script and style content is not escaped, and indentation is aware of
// inline elements.
func WithHTML5(v bool) SerializeOption {
	return newSerializeOption(identHTML5{}, v)
}

// Doctype describes a document type declaration. Set System, or Public
// and System, for `SYSTEM`/`PUBLIC` doctypes; set HTML5 for the plain
// `<!DOCTYPE html>` form.
type Doctype struct {
	Public string
	System string
	HTML5  bool
}

type serializeParams struct {
	pretty        bool
	declaration   bool
	doctype       *Doctype
	cdataElements []NameID
	suppress      []NameID
	unescapeGT    bool
	normalizer    Normalizer
	html5         bool
}

func newSerializeParams(options []SerializeOption) *serializeParams {
	params := &serializeParams{
		normalizer: noopNormalizer{},
	}
	for _, o := range options {
		switch o.Ident().(type) {
		case identPretty:
			params.pretty = o.Value().(bool)
		case identXMLDeclaration:
			params.declaration = o.Value().(bool)
		case identDoctype:
			doctype := o.Value().(Doctype)
			params.doctype = &doctype
		case identCDATAElements:
			params.cdataElements = append(params.cdataElements, o.Value().([]NameID)...)
		case identSuppressElements:
			params.suppress = append(params.suppress, o.Value().([]NameID)...)
		case identUnescapeGT:
			params.unescapeGT = o.Value().(bool)
		case identNormalizer:
			params.normalizer = o.Value().(Normalizer)
		case identHTML5:
			params.html5 = o.Value().(bool)
		}
	}
	return params
}

func (p *serializeParams) isCDATAElement(name NameID) bool {
	for _, n := range p.cdataElements {
		if n == name {
			return true
		}
	}
	return false
}

// Serialize writes the node and its subtree to w as UTF-8 bytes. All
// namespaces used in the subtree must have an in-scope prefix;
// otherwise serialization fails with ErrMissingPrefix. Call
// CreateMissingPrefixes beforehand to guarantee this.
func (a *Arena) Serialize(w io.Writer, node Node, options ...SerializeOption) error {
	if a.lookup(node) == nil {
		return ErrStaleHandle
	}
	params := newSerializeParams(options)
	if params.html5 {
		return a.serializeHTML5(w, node, params)
	}
	return a.serializeXML(w, node, params)
}

// SerializeString serializes the node and its subtree to a string.
func (a *Arena) SerializeString(node Node, options ...SerializeOption) (string, error) {
	var buf bytes.Buffer
	if err := a.Serialize(&buf, node, options...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// doctypeRootName determines the name used in the doctype declaration.
func (a *Arena) doctypeRootName(node Node) string {
	el := node
	if a.IsDocument(node) {
		docEl, err := a.DocumentElement(node)
		if err != nil {
			return ""
		}
		el = docEl
	}
	if e := a.Element(el); e != nil {
		return a.LocalNameString(e.Name())
	}
	return ""
}

func writeDoctype(w io.Writer, name string, doctype *Doctype) error {
	var err error
	switch {
	case doctype.HTML5:
		_, err = io.WriteString(w, "<!DOCTYPE html>")
	case doctype.Public != "":
		_, err = io.WriteString(w, "<!DOCTYPE "+name+` PUBLIC "`+doctype.Public+`" "`+doctype.System+`">`)
	default:
		_, err = io.WriteString(w, "<!DOCTYPE "+name+` SYSTEM "`+doctype.System+`">`)
	}
	return err
}
