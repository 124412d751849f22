package xot

import "iter"

// OutputKind is the kind of a serialization token.
type OutputKind int

const (
	// OutputDocumentStart marks the beginning of a document node.
	OutputDocumentStart OutputKind = iota + 1
	// OutputDocumentEnd marks the end of a document node.
	OutputDocumentEnd
	// OutputStartTagOpen opens a start tag: `<foo`.
	OutputStartTagOpen
	// OutputStartTagClose closes a start tag: `>` or `/>`.
	OutputStartTagClose
	// OutputEndTag is an end tag: `</foo>`. It is emitted for every
	// element; the XML serializer drops it for elements without content,
	// the HTML5 serializer for void elements and empty foreign elements.
	OutputEndTag
	// OutputNamespace is a namespace declaration: `xmlns:foo="..."`.
	OutputNamespace
	// OutputAttribute is an attribute: `foo="bar"`.
	OutputAttribute
	// OutputText is text content.
	OutputText
	// OutputComment is a comment: `<!--foo-->`.
	OutputComment
	// OutputProcessingInstruction is a processing instruction:
	// `<?foo bar?>`.
	OutputProcessingInstruction
)

// Output is one token of the lazy serialization stream produced by
// Arena.Outputs. Which fields are meaningful depends on Kind: Name for
// tags, attributes and processing instruction targets; Prefix and
// Namespace for namespace declarations; Value for text, attribute
// values, comments and processing instruction data.
type Output struct {
	Kind        OutputKind
	Name        NameID
	Prefix      PrefixID
	Namespace   NamespaceID
	Value       string
	SelfClosing bool
}

// Outputs produces the serialization token stream for a subtree,
// lazily, paired with the node each token belongs to. For each element
// the namespace declarations come first, then the attributes, then the
// content. When the subtree root is an element, prefix bindings
// inherited from its ancestors are included so the fragment remains
// self-contained.
func (a *Arena) Outputs(node Node) iter.Seq2[Node, Output] {
	return func(yield func(Node, Output) bool) {
		for edge := range a.Traverse(node) {
			cur := edge.Node
			s := a.lookup(cur)
			if s == nil {
				continue
			}
			switch edge.Kind {
			case EdgeStart:
				if !a.outputsStart(node, cur, s.value, yield) {
					return
				}
			case EdgeEnd:
				switch s.value.(type) {
				case *Document:
					if !yield(cur, Output{Kind: OutputDocumentEnd}) {
						return
					}
				case *Element:
					if !yield(cur, Output{Kind: OutputEndTag, Name: s.value.(*Element).Name()}) {
						return
					}
				}
			}
		}
	}
}

func (a *Arena) outputsStart(top, cur Node, v Value, yield func(Node, Output) bool) bool {
	switch v := v.(type) {
	case *Document:
		return yield(cur, Output{Kind: OutputDocumentStart})
	case *Element:
		if !yield(cur, Output{Kind: OutputStartTagOpen, Name: v.Name()}) {
			return false
		}
		local := a.NamespaceDeclarations(cur)
		if cur == top {
			// redeclare inherited prefixes on a fragment root
			for _, d := range a.InheritedPrefixes(cur) {
				if d.Prefix == a.xmlPrefix {
					continue
				}
				declared := false
				for _, ld := range local {
					if ld.Prefix == d.Prefix {
						declared = true
						break
					}
				}
				if declared {
					continue
				}
				if !yield(cur, Output{Kind: OutputNamespace, Prefix: d.Prefix, Namespace: d.Namespace}) {
					return false
				}
			}
		}
		for _, d := range local {
			if !yield(cur, Output{Kind: OutputNamespace, Prefix: d.Prefix, Namespace: d.Namespace}) {
				return false
			}
		}
		for name, value := range a.Attributes(cur) {
			if !yield(cur, Output{Kind: OutputAttribute, Name: name, Value: value}) {
				return false
			}
		}
		return yield(cur, Output{
			Kind:        OutputStartTagClose,
			Name:        v.Name(),
			SelfClosing: a.FirstChild(cur).IsZero(),
		})
	case *Text:
		return yield(cur, Output{Kind: OutputText, Value: v.Get()})
	case *Comment:
		return yield(cur, Output{Kind: OutputComment, Value: v.Get()})
	case *ProcessingInstruction:
		return yield(cur, Output{
			Kind:  OutputProcessingInstruction,
			Name:  v.Target(),
			Value: v.Data(),
		})
	default:
		// attribute and namespace nodes are emitted with their element
		return true
	}
}
