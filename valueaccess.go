package xot

import "strings"

// Value returns the payload of a node. It returns ErrStaleHandle for a
// handle whose node has been removed.
func (a *Arena) Value(n Node) (Value, error) {
	s := a.lookup(n)
	if s == nil {
		return nil, ErrStaleHandle
	}
	return s.value, nil
}

// NodeTypeOf returns the node type behind a handle, or zero for a stale
// handle.
func (a *Arena) NodeTypeOf(n Node) NodeType {
	s := a.lookup(n)
	if s == nil {
		return 0
	}
	return s.value.Type()
}

// Element returns the element payload of a node, or nil if the node is
// not an element or the handle is stale.
func (a *Arena) Element(n Node) *Element {
	if s := a.lookup(n); s != nil {
		if e, ok := s.value.(*Element); ok {
			return e
		}
	}
	return nil
}

// Text returns the text payload of a node, or nil.
func (a *Arena) Text(n Node) *Text {
	if s := a.lookup(n); s != nil {
		if t, ok := s.value.(*Text); ok {
			return t
		}
	}
	return nil
}

// TextString returns the string of a text node. The ok result is false
// if the node is not a text node.
func (a *Arena) TextString(n Node) (string, bool) {
	if t := a.Text(n); t != nil {
		return t.Get(), true
	}
	return "", false
}

// TextValue returns the string of a text node, failing with ErrNotText
// on other node kinds.
func (a *Arena) TextValue(n Node) (string, error) {
	s := a.lookup(n)
	if s == nil {
		return "", ErrStaleHandle
	}
	t, ok := s.value.(*Text)
	if !ok {
		return "", ErrNotText
	}
	return t.Get(), nil
}

// ValueAs returns the payload of a node after checking its type,
// failing with ErrWrongNodeKind on a mismatch.
func (a *Arena) ValueAs(n Node, typ NodeType) (Value, error) {
	v, err := a.Value(n)
	if err != nil {
		return nil, err
	}
	if v.Type() != typ {
		return nil, ErrWrongNodeKind{Expected: typ, Actual: v.Type()}
	}
	return v, nil
}

// Comment returns the comment payload of a node, or nil.
func (a *Arena) Comment(n Node) *Comment {
	if s := a.lookup(n); s != nil {
		if c, ok := s.value.(*Comment); ok {
			return c
		}
	}
	return nil
}

// ProcessingInstruction returns the processing instruction payload of a
// node, or nil.
func (a *Arena) ProcessingInstruction(n Node) *ProcessingInstruction {
	if s := a.lookup(n); s != nil {
		if pi, ok := s.value.(*ProcessingInstruction); ok {
			return pi
		}
	}
	return nil
}

// AttributeNode returns the attribute payload of a node, or nil.
func (a *Arena) AttributeNode(n Node) *Attribute {
	if s := a.lookup(n); s != nil {
		if attr, ok := s.value.(*Attribute); ok {
			return attr
		}
	}
	return nil
}

// NamespaceNode returns the namespace declaration payload of a node, or
// nil.
func (a *Arena) NamespaceNode(n Node) *Namespace {
	if s := a.lookup(n); s != nil {
		if ns, ok := s.value.(*Namespace); ok {
			return ns
		}
	}
	return nil
}

// IsDocument reports whether the node is a document node.
func (a *Arena) IsDocument(n Node) bool {
	return a.NodeTypeOf(n) == DocumentNodeType
}

// IsElement reports whether the node is an element node.
func (a *Arena) IsElement(n Node) bool {
	return a.NodeTypeOf(n) == ElementNodeType
}

// IsText reports whether the node is a text node.
func (a *Arena) IsText(n Node) bool {
	return a.NodeTypeOf(n) == TextNodeType
}

// IsComment reports whether the node is a comment node.
func (a *Arena) IsComment(n Node) bool {
	return a.NodeTypeOf(n) == CommentNodeType
}

// IsProcessingInstruction reports whether the node is a processing
// instruction node.
func (a *Arena) IsProcessingInstruction(n Node) bool {
	return a.NodeTypeOf(n) == ProcessingInstructionNodeType
}

// IsAttributeNode reports whether the node is an attribute node.
func (a *Arena) IsAttributeNode(n Node) bool {
	return a.NodeTypeOf(n) == AttributeNodeType
}

// IsNamespaceNode reports whether the node is a namespace declaration
// node.
func (a *Arena) IsNamespaceNode(n Node) bool {
	return a.NodeTypeOf(n) == NamespaceNodeType
}

// ElementName returns the name of an element node.
func (a *Arena) ElementName(n Node) (NameID, error) {
	e := a.Element(n)
	if e == nil {
		return 0, ErrNotElement
	}
	return e.Name(), nil
}

// HasDocumentParent reports whether the parent of the node is a
// document node.
func (a *Arena) HasDocumentParent(n Node) bool {
	return a.IsDocument(a.Parent(n))
}

// IsDocumentElement reports whether the node is the document element,
// the unique element child of a document node.
func (a *Arena) IsDocumentElement(n Node) bool {
	return a.IsElement(n) && a.HasDocumentParent(n)
}

// DocumentElement returns the document element of a document node. It
// is an error if the node is not a document, or the document is empty.
func (a *Arena) DocumentElement(doc Node) (Node, error) {
	if !a.IsDocument(doc) {
		return Node{}, ErrNotDocument
	}
	for c := range a.Children(doc) {
		if a.IsElement(c) {
			return c, nil
		}
	}
	return Node{}, ErrInvalidOperation
}

// TopElement returns the highest element ancestor of the node,
// including itself. For a document node, that is the document element.
// The zero handle is returned if there is no element anywhere above.
func (a *Arena) TopElement(n Node) Node {
	if a.IsDocument(n) {
		top, err := a.DocumentElement(n)
		if err != nil {
			return Node{}
		}
		return top
	}
	var top Node
	for cur := range a.Ancestors(n) {
		if a.IsElement(cur) {
			top = cur
		}
	}
	return top
}

// StringValue returns the XPath string-value of a node: concatenated
// text descendants for documents and elements, payload text for text,
// comment and processing instruction nodes, the value for attribute
// nodes, and the namespace URI for namespace nodes.
func (a *Arena) StringValue(n Node) string {
	s := a.lookup(n)
	if s == nil {
		return ""
	}
	switch v := s.value.(type) {
	case *Document, *Element:
		var sb strings.Builder
		for d := range a.Descendants(n) {
			if t := a.Text(d); t != nil {
				sb.WriteString(t.Get())
			}
		}
		return sb.String()
	case *Text:
		return v.Get()
	case *Comment:
		return v.Get()
	case *ProcessingInstruction:
		return v.Data()
	case *Attribute:
		return v.Value()
	case *Namespace:
		return a.NamespaceString(v.Namespace())
	default:
		return ""
	}
}

// TextContent returns the text of an element that has a single text
// child, or the empty string for an element without children. Any other
// content is an error.
func (a *Arena) TextContent(n Node) (string, error) {
	if !a.IsElement(n) {
		return "", ErrNotElement
	}
	first := a.FirstChild(n)
	if first.IsZero() {
		return "", nil
	}
	t := a.Text(first)
	if t == nil || !a.NextSibling(first).IsZero() {
		return "", ErrInvalidOperation
	}
	return t.Get(), nil
}

// SetTextContent sets the content of an element to a single text node,
// replacing a previous single text child if there is one. It is an
// error on elements with any other content.
func (a *Arena) SetTextContent(n Node, s string) error {
	if !a.IsElement(n) {
		return ErrNotElement
	}
	first := a.FirstChild(n)
	if first.IsZero() {
		return a.AppendText(n, s)
	}
	t := a.Text(first)
	if t == nil || !a.NextSibling(first).IsZero() {
		return ErrInvalidOperation
	}
	t.Set(s)
	return nil
}
