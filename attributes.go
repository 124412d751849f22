package xot

import "iter"

// NamespaceDeclaration is one prefix binding declared on an element.
type NamespaceDeclaration struct {
	Prefix    PrefixID
	Namespace NamespaceID
}

// regionRank orders the three regions of an element's child list:
// namespace nodes first, then attribute nodes, then content.
func regionRank(cat valueCategory) int {
	switch cat {
	case namespaceCategory:
		return 0
	case attributeCategory:
		return 1
	default:
		return 2
	}
}

// AttributeNodes iterates over the attribute nodes of an element.
func (a *Arena) AttributeNodes(n Node) iter.Seq[Node] {
	return a.categoryChildren(n, attributeCategory)
}

// NamespaceNodes iterates over the namespace declaration nodes of an
// element.
func (a *Arena) NamespaceNodes(n Node) iter.Seq[Node] {
	return a.categoryChildren(n, namespaceCategory)
}

func (a *Arena) categoryChildren(n Node, cat valueCategory) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		s := a.lookup(n)
		if s == nil {
			return
		}
		for c := s.firstChild; c != 0; c = a.slots[c].next {
			ccat := categoryOf(a.slots[c].value)
			if regionRank(ccat) > regionRank(cat) {
				return
			}
			if ccat == cat {
				if !yield(a.handle(c)) {
					return
				}
			}
		}
	}
}

// Attributes iterates over the attributes of an element as name/value
// pairs, in attribute node order.
func (a *Arena) Attributes(n Node) iter.Seq2[NameID, string] {
	return func(yield func(NameID, string) bool) {
		for node := range a.AttributeNodes(n) {
			attr := a.AttributeNode(node)
			if !yield(attr.Name(), attr.Value()) {
				return
			}
		}
	}
}

// Namespaces iterates over the namespace declarations of an element as
// prefix/namespace pairs, in declaration order.
func (a *Arena) Namespaces(n Node) iter.Seq2[PrefixID, NamespaceID] {
	return func(yield func(PrefixID, NamespaceID) bool) {
		for node := range a.NamespaceNodes(n) {
			ns := a.NamespaceNode(node)
			if !yield(ns.Prefix(), ns.Namespace()) {
				return
			}
		}
	}
}

// NamespaceDeclarations returns the namespace declarations of an
// element in declaration order. It returns nil for elements without
// declarations and for non-element nodes.
func (a *Arena) NamespaceDeclarations(n Node) []NamespaceDeclaration {
	var decls []NamespaceDeclaration
	for prefix, ns := range a.Namespaces(n) {
		decls = append(decls, NamespaceDeclaration{Prefix: prefix, Namespace: ns})
	}
	return decls
}

// HasNamespaceDeclarations reports whether the element declares any
// namespace prefixes of its own.
func (a *Arena) HasNamespaceDeclarations(n Node) bool {
	for range a.NamespaceNodes(n) {
		return true
	}
	return false
}

// AttributeValue returns the value of the named attribute of an
// element.
func (a *Arena) AttributeValue(n Node, name NameID) (string, bool) {
	for node := range a.AttributeNodes(n) {
		attr := a.AttributeNode(node)
		if attr.Name() == name {
			return attr.Value(), true
		}
	}
	return "", false
}

// SetAttribute sets the named attribute on an element, updating the
// existing attribute node in place if the name is already present.
func (a *Arena) SetAttribute(n Node, name NameID, value string) error {
	if !a.IsElement(n) {
		return ErrNotElement
	}
	_, err := a.AppendAttributeNode(n, a.NewAttributeNode(name, value))
	return err
}

// RemoveAttribute removes the named attribute from an element. Removing
// an absent attribute is not an error.
func (a *Arena) RemoveAttribute(n Node, name NameID) error {
	if !a.IsElement(n) {
		return ErrNotElement
	}
	for node := range a.AttributeNodes(n) {
		if a.AttributeNode(node).Name() == name {
			a.freeSubtree(node)
			return nil
		}
	}
	return nil
}

// AppendAttributeNode attaches an attribute node to an element, placing
// it at the end of the attribute region of the child list. If an
// attribute with the same name already exists, that node is updated in
// place instead, the new node is freed, and the existing node is
// returned.
func (a *Arena) AppendAttributeNode(parent, child Node) (Node, error) {
	if !a.IsElement(parent) {
		return Node{}, ErrNotElement
	}
	attr := a.AttributeNode(child)
	if attr == nil {
		return Node{}, ErrInvalidOperation
	}
	for node := range a.AttributeNodes(parent) {
		existing := a.AttributeNode(node)
		if existing.Name() == attr.Name() {
			existing.SetValue(attr.Value())
			a.freeSubtree(child)
			return node, nil
		}
	}
	a.insertInRegion(parent, child, attributeCategory)
	return child, nil
}

// AppendNamespaceNode attaches a namespace declaration node to an
// element, placing it at the end of the namespace region of the child
// list. If a declaration for the same prefix already exists, that node
// is updated in place instead, the new node is freed, and the existing
// node is returned. The xml prefix may not be bound to any namespace
// other than the xml namespace.
func (a *Arena) AppendNamespaceNode(parent, child Node) (Node, error) {
	if !a.IsElement(parent) {
		return Node{}, ErrNotElement
	}
	decl := a.NamespaceNode(child)
	if decl == nil {
		return Node{}, ErrInvalidOperation
	}
	if decl.Prefix() == a.xmlPrefix && decl.Namespace() != a.xmlNamespace {
		return Node{}, ErrInvalidOperation
	}
	for node := range a.NamespaceNodes(parent) {
		existing := a.NamespaceNode(node)
		if existing.Prefix() == decl.Prefix() {
			existing.SetNamespace(decl.Namespace())
			a.freeSubtree(child)
			return node, nil
		}
	}
	a.insertInRegion(parent, child, namespaceCategory)
	return child, nil
}

// AppendNamespace declares a prefix on an element, creating the
// namespace node for it.
func (a *Arena) AppendNamespace(parent Node, prefix PrefixID, ns NamespaceID) (Node, error) {
	child, err := a.NewNamespaceNode(prefix, ns)
	if err != nil {
		return Node{}, err
	}
	return a.AppendNamespaceNode(parent, child)
}

// AnyAppend appends any node: namespace and attribute nodes go to their
// respective regions, content nodes are appended at the end.
func (a *Arena) AnyAppend(parent, child Node) (Node, error) {
	switch a.NodeTypeOf(child) {
	case NamespaceNodeType:
		return a.AppendNamespaceNode(parent, child)
	case AttributeNodeType:
		return a.AppendAttributeNode(parent, child)
	default:
		if err := a.Append(parent, child); err != nil {
			return Node{}, err
		}
		return child, nil
	}
}

// insertInRegion places child at the end of its category region within
// parent's child list.
func (a *Arena) insertInRegion(parent, child Node, cat valueCategory) {
	s := &a.slots[parent.index]
	for c := s.firstChild; c != 0; c = a.slots[c].next {
		if regionRank(categoryOf(a.slots[c].value)) > regionRank(cat) {
			a.insertBeforeRaw(a.handle(c), child)
			return
		}
	}
	a.appendRaw(parent, child)
}
