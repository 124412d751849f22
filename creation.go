package xot

// NewDocument creates a new empty document node. Build the tree under
// it with the editor operations.
func (a *Arena) NewDocument() Node {
	return a.alloc(&Document{})
}

// NewDocumentWithElement creates a document node with the given element
// as its document element.
func (a *Arena) NewDocumentWithElement(element Node) (Node, error) {
	doc := a.alloc(&Document{})
	if err := a.Append(doc, element); err != nil {
		a.freeSubtree(doc)
		return Node{}, err
	}
	return doc, nil
}

// NewElement creates a new unattached element node with the given name.
func (a *Arena) NewElement(name NameID) Node {
	return a.alloc(&Element{name: name})
}

// NewText creates a new unattached text node.
func (a *Arena) NewText(text string) Node {
	return a.alloc(&Text{content: text})
}

// NewComment creates a new unattached comment node. The content must be
// legal comment content.
func (a *Arena) NewComment(text string) (Node, error) {
	if err := validateComment(text); err != nil {
		return Node{}, err
	}
	return a.alloc(&Comment{content: text}), nil
}

// NewProcessingInstruction creates a new unattached processing
// instruction node. The target must not be namespaced and must not be
// "xml" in any case variation. An empty data string means no data.
func (a *Arena) NewProcessingInstruction(target NameID, data string) (Node, error) {
	if a.NamespaceForName(target) != a.noNamespace {
		return Node{}, ErrInvalidProcessingInstruction
	}
	if err := validatePITarget(a.LocalNameString(target)); err != nil {
		return Node{}, err
	}
	return a.alloc(&ProcessingInstruction{target: target, data: data}), nil
}

// NewAttributeNode creates a new unattached attribute node. Attach it
// to an element with AppendAttributeNode or AnyAppend.
func (a *Arena) NewAttributeNode(name NameID, value string) Node {
	return a.alloc(&Attribute{name: name, value: value})
}

// NewNamespaceNode creates a new unattached namespace declaration node.
// The reserved xml prefix cannot be bound to anything but the xml
// namespace.
func (a *Arena) NewNamespaceNode(prefix PrefixID, ns NamespaceID) (Node, error) {
	if prefix == a.xmlPrefix && ns != a.xmlNamespace {
		return Node{}, ErrInvalidOperation
	}
	return a.alloc(&Namespace{prefix: prefix, namespace: ns}), nil
}
