package xot

import "strings"

// Value is the payload of a node. Each node carries exactly one Value;
// the concrete type determines the node type. Values are accessed
// through Arena.Value and the typed accessors such as Arena.Element.
type Value interface {
	Type() NodeType
}

type valueCategory int

const (
	normalCategory valueCategory = iota
	attributeCategory
	namespaceCategory
)

func categoryOf(v Value) valueCategory {
	switch v.(type) {
	case *Attribute:
		return attributeCategory
	case *Namespace:
		return namespaceCategory
	default:
		return normalCategory
	}
}

// Document is the payload of the synthetic root node of a document tree.
// A document has at most one element child, the document element, plus
// any number of comments and processing instructions.
type Document struct{}

func (*Document) Type() NodeType {
	return DocumentNodeType
}

// Element carries only the element name; attributes and namespace
// declarations are not stored here but as child nodes of the element,
// preceding its content children.
type Element struct {
	name NameID
}

func (*Element) Type() NodeType {
	return ElementNodeType
}

// Name returns the name of the element.
func (e *Element) Name() NameID {
	return e.name
}

// SetName sets the name of the element.
func (e *Element) SetName(name NameID) {
	e.name = name
}

// Text is a text node payload.
type Text struct {
	content string
}

func (*Text) Type() NodeType {
	return TextNodeType
}

// Get returns the text value.
func (t *Text) Get() string {
	return t.content
}

// Set replaces the text value.
func (t *Text) Set(s string) {
	t.content = s
}

// Comment is a comment node payload.
type Comment struct {
	content string
}

func (*Comment) Type() NodeType {
	return CommentNodeType
}

// Get returns the comment text.
func (c *Comment) Get() string {
	return c.content
}

// Set replaces the comment text. Content that contains "--" or ends
// with "-" cannot appear in a well-formed comment and is rejected.
func (c *Comment) Set(s string) error {
	if err := validateComment(s); err != nil {
		return err
	}
	c.content = s
	return nil
}

func validateComment(s string) error {
	if strings.Contains(s, "--") || strings.HasSuffix(s, "-") {
		return ErrInvalidComment
	}
	return nil
}

// ProcessingInstruction is a processing instruction payload. The data
// string is optional; an empty string means no data.
type ProcessingInstruction struct {
	target NameID
	data   string
}

func (*ProcessingInstruction) Type() NodeType {
	return ProcessingInstructionNodeType
}

// Target returns the target name of the processing instruction.
func (pi *ProcessingInstruction) Target() NameID {
	return pi.target
}

// Data returns the data of the processing instruction, or the empty
// string if it has none.
func (pi *ProcessingInstruction) Data() string {
	return pi.data
}

// SetData replaces the data of the processing instruction. Setting it
// to the empty string removes the data.
func (pi *ProcessingInstruction) SetData(s string) {
	pi.data = s
}

func validatePITarget(target string) error {
	if target == "" {
		return ErrInvalidProcessingInstruction
	}
	if strings.EqualFold(target, "xml") {
		return ErrInvalidProcessingInstruction
	}
	return nil
}

// Attribute is an attribute node payload. Attribute nodes are children
// of their element, after any namespace nodes and before any content
// nodes.
type Attribute struct {
	name  NameID
	value string
}

func (*Attribute) Type() NodeType {
	return AttributeNodeType
}

// Name returns the attribute name.
func (a *Attribute) Name() NameID {
	return a.name
}

// Value returns the attribute value.
func (a *Attribute) Value() string {
	return a.value
}

// SetValue replaces the attribute value.
func (a *Attribute) SetValue(s string) {
	a.value = s
}

// Namespace is a namespace declaration payload. Namespace nodes are the
// first children of their element.
type Namespace struct {
	prefix    PrefixID
	namespace NamespaceID
}

func (*Namespace) Type() NodeType {
	return NamespaceNodeType
}

// Prefix returns the declared prefix.
func (ns *Namespace) Prefix() PrefixID {
	return ns.prefix
}

// Namespace returns the namespace the prefix is bound to.
func (ns *Namespace) Namespace() NamespaceID {
	return ns.namespace
}

// SetNamespace rebinds the declaration to another namespace.
func (ns *Namespace) SetNamespace(id NamespaceID) {
	ns.namespace = id
}
