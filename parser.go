package xot

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/lestrrat-go/option"
	pdebug "github.com/lestrrat-go/pdebug/v3"
	"github.com/pkg/errors"
)

// ParseOption configures parsing.
type ParseOption interface {
	Option
	parseOption()
}

type parseOption struct {
	Option
}

func (*parseOption) parseOption() {}

type identSpanInfo struct{}

// WithSpanInfo records the byte span of each parsed node into the
// given map. Any mutation of the tree invalidates the entire map; spans
// are not tracked per node afterwards.
func WithSpanInfo(v SpanInfo) ParseOption {
	return &parseOption{option.New(identSpanInfo{}, v)}
}

// Span is a half-open byte range into the parsed input.
type Span struct {
	Start int
	End   int
}

// SpanInfo maps nodes to the byte span they were parsed from. For
// elements the span covers the start tag.
type SpanInfo map[Node]Span

// Parse parses a complete XML document into the arena and returns its
// document node. Only UTF-8 and US-ASCII input is accepted.
func (a *Arena) Parse(src string, options ...ParseOption) (Node, error) {
	return a.ParseBytes([]byte(src), options...)
}

// ParseBytes is Parse for a byte slice.
func (a *Arena) ParseBytes(data []byte, options ...ParseOption) (Node, error) {
	if pdebug.Enabled {
		g := pdebug.FuncMarker()
		defer g.End()
	}

	var spans SpanInfo
	for _, o := range options {
		switch o.Ident().(type) {
		case identSpanInfo:
			spans = o.Value().(SpanInfo)
		}
	}

	rest, err := checkEncoding(data)
	if err != nil {
		return Node{}, err
	}

	builder := &treeBuilder{arena: a, spans: spans}
	l := newLexer(rest, builder)
	if err := l.run(); err != nil {
		if !builder.doc.IsZero() {
			a.freeSubtree(builder.doc)
		}
		return Node{}, err
	}
	return builder.doc, nil
}

// ParseReader is Parse for a stream.
func (a *Arena) ParseReader(r io.Reader, options ...ParseOption) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Node{}, errors.Wrap(err, "failed to read input")
	}
	return a.ParseBytes(data, options...)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
	patUCS4BE  = []byte{0x00, 0x00, 0x00, 0x3C}
	patUCS4LE  = []byte{0x3C, 0x00, 0x00, 0x00}
	patUTF16LE = []byte{0x3C, 0x00, 0x3F, 0x00}
	patUTF16BE = []byte{0x00, 0x3C, 0x00, 0x3F}
	patEBCDIC  = []byte{0x4C, 0x6F, 0xA7, 0x94}
)

// checkEncoding detects unsupported encodings by their BOM or first
// bytes, strips a UTF-8 BOM, and validates that the input is UTF-8.
func checkEncoding(data []byte) ([]byte, error) {
	for _, pat := range [][]byte{patUCS4BE, patUCS4LE, patUTF16LE, patUTF16BE, patEBCDIC, bomUTF16LE, bomUTF16BE} {
		if bytes.HasPrefix(data, pat) {
			return nil, ErrUnsupportedEncoding
		}
	}
	data = bytes.TrimPrefix(data, bomUTF8)
	if !utf8.Valid(data) {
		return nil, ErrUnsupportedEncoding
	}
	return data, nil
}

// treeBuilder consumes lexer events and builds the tree, interning
// names and resolving prefixes against the declarations seen so far.
type treeBuilder struct {
	arena   *Arena
	doc     Node
	current Node
	spans   SpanInfo
}

var _ lexerHandler = (*treeBuilder)(nil)

func (t *treeBuilder) recordSpan(n Node, start, end int) {
	if t.spans == nil || n.IsZero() || t.arena.IsRemoved(n) {
		return
	}
	t.spans[n] = Span{Start: start, End: end}
}

func (t *treeBuilder) StartDocument() error {
	if pdebug.Enabled {
		pdebug.Printf("builder: start document")
	}
	t.doc = t.arena.NewDocument()
	t.current = t.doc
	return nil
}

func (t *treeBuilder) EndDocument() error {
	if pdebug.Enabled {
		pdebug.Printf("builder: end document")
	}
	t.current = Node{}
	return nil
}

func (t *treeBuilder) StartElement(el *parsedElement) error {
	if pdebug.Enabled {
		pdebug.Printf("builder: start element %s", el.name)
	}
	a := t.arena
	node := a.NewElement(0)
	if err := a.Append(t.current, node); err != nil {
		return err
	}

	// namespace declarations come first so that the element and
	// attribute names can resolve against them, including a default
	// namespace declared on this very element
	for _, decl := range el.namespaces {
		nsNode, err := a.NewNamespaceNode(a.AddPrefix(decl.prefix), a.AddNamespace(decl.uri))
		if err != nil {
			return err
		}
		if _, err := a.AppendNamespaceNode(node, nsNode); err != nil {
			return err
		}
	}

	name, err := t.resolveElementName(node, el.name)
	if err != nil {
		return err
	}
	a.Element(node).SetName(name)

	for _, attr := range el.attributes {
		name, err := t.resolveAttributeName(node, attr.name)
		if err != nil {
			return err
		}
		if _, ok := a.AttributeValue(node, name); ok {
			return ErrDuplicateAttribute{Name: attr.name.String()}
		}
		if _, err := a.AppendAttributeNode(node, a.NewAttributeNode(name, attr.value)); err != nil {
			return err
		}
	}

	t.recordSpan(node, el.start, el.end)
	t.current = node
	return nil
}

func (t *treeBuilder) EndElement(name rawName) error {
	if pdebug.Enabled {
		pdebug.Printf("builder: end element %s", name)
	}
	t.current = t.arena.Parent(t.current)
	return nil
}

func (t *treeBuilder) resolveElementName(node Node, name rawName) (NameID, error) {
	a := t.arena
	ns, ok := a.NamespaceForPrefix(node, a.AddPrefix(name.prefix))
	if !ok {
		return 0, ErrUnknownPrefix{Prefix: name.prefix}
	}
	return a.AddNameNS(name.local, ns), nil
}

func (t *treeBuilder) resolveAttributeName(node Node, name rawName) (NameID, error) {
	a := t.arena
	// an unprefixed attribute is in no namespace, regardless of any
	// default namespace
	if name.prefix == "" {
		return a.AddName(name.local), nil
	}
	ns, ok := a.NamespaceForPrefix(node, a.AddPrefix(name.prefix))
	if !ok {
		return 0, ErrUnknownPrefix{Prefix: name.prefix}
	}
	return a.AddNameNS(name.local, ns), nil
}

func (t *treeBuilder) Text(s string, start, end int) error {
	if t.current == t.doc {
		// whitespace between top-level constructs is insignificant
		if isWhitespace(s) {
			return nil
		}
		return ErrInvalidOperation
	}
	node := t.arena.NewText(s)
	if err := t.arena.Append(t.current, node); err != nil {
		return err
	}
	t.recordSpan(node, start, end)
	return nil
}

func (t *treeBuilder) CDATA(s string, start, end int) error {
	if t.current == t.doc {
		return ErrInvalidOperation
	}
	node := t.arena.NewText(s)
	if err := t.arena.Append(t.current, node); err != nil {
		return err
	}
	t.recordSpan(node, start, end)
	return nil
}

func (t *treeBuilder) Comment(s string, start, end int) error {
	node, err := t.arena.NewComment(s)
	if err != nil {
		return err
	}
	if err := t.arena.Append(t.current, node); err != nil {
		return err
	}
	t.recordSpan(node, start, end)
	return nil
}

func (t *treeBuilder) ProcessingInstruction(target, data string, start, end int) error {
	node, err := t.arena.NewProcessingInstruction(t.arena.AddName(target), data)
	if err != nil {
		return err
	}
	if err := t.arena.Append(t.current, node); err != nil {
		return err
	}
	t.recordSpan(node, start, end)
	return nil
}
