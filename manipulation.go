package xot

import "unicode"

// Append adds child as the last content child of parent. A child that
// is attached elsewhere is detached first; moving nodes between trees
// is allowed. Appending a text node next to an existing text sibling
// merges the two when text consolidation is enabled.
func (a *Arena) Append(parent, child Node) error {
	if err := a.addStructureCheck(parent, child); err != nil {
		return err
	}
	a.removeConsolidateTextNodes(a.PreviousSibling(child), a.NextSibling(child))
	if a.addConsolidateTextNodes(child, a.LastChild(parent), Node{}) {
		return nil
	}
	a.appendRaw(parent, child)
	return nil
}

// AppendText appends a text node with the given text to parent.
func (a *Arena) AppendText(parent Node, text string) error {
	return a.Append(parent, a.NewText(text))
}

// AppendElement appends a new element with the given name to parent and
// returns it.
func (a *Arena) AppendElement(parent Node, name NameID) (Node, error) {
	el := a.NewElement(name)
	if err := a.Append(parent, el); err != nil {
		a.freeSubtree(el)
		return Node{}, err
	}
	return el, nil
}

// AppendComment appends a comment node with the given text to parent.
func (a *Arena) AppendComment(parent Node, text string) error {
	c, err := a.NewComment(text)
	if err != nil {
		return err
	}
	return a.Append(parent, c)
}

// AppendProcessingInstruction appends a processing instruction node to
// parent.
func (a *Arena) AppendProcessingInstruction(parent Node, target NameID, data string) error {
	pi, err := a.NewProcessingInstruction(target, data)
	if err != nil {
		return err
	}
	return a.Append(parent, pi)
}

// Prepend adds child as the first content child of parent, after any
// namespace and attribute nodes.
func (a *Arena) Prepend(parent, child Node) error {
	if err := a.addStructureCheck(parent, child); err != nil {
		return err
	}
	if a.FirstChild(parent) == child {
		return nil
	}
	a.removeConsolidateTextNodes(a.PreviousSibling(child), a.NextSibling(child))
	if a.addConsolidateTextNodes(child, Node{}, a.FirstChild(parent)) {
		return nil
	}
	if fc := a.FirstChild(parent); !fc.IsZero() {
		a.insertBeforeRaw(fc, child)
	} else {
		a.appendRaw(parent, child)
	}
	return nil
}

// InsertAfter places newSibling immediately after ref.
func (a *Arena) InsertAfter(ref, newSibling Node) error {
	if ref == newSibling {
		return ErrInvalidOperation
	}
	if err := a.siblingStructureCheck(ref, newSibling); err != nil {
		return err
	}
	a.removeConsolidateTextNodes(a.PreviousSibling(newSibling), a.NextSibling(newSibling))
	if a.addConsolidateTextNodes(newSibling, ref, a.NextSibling(ref)) {
		return nil
	}
	a.insertAfterRaw(ref, newSibling)
	return nil
}

// InsertBefore places newSibling immediately before ref.
func (a *Arena) InsertBefore(ref, newSibling Node) error {
	if ref == newSibling {
		return ErrInvalidOperation
	}
	if err := a.siblingStructureCheck(ref, newSibling); err != nil {
		return err
	}
	a.removeConsolidateTextNodes(a.PreviousSibling(newSibling), a.NextSibling(newSibling))
	if a.addConsolidateTextNodes(newSibling, a.PreviousSibling(ref), ref) {
		return nil
	}
	a.insertBeforeRaw(ref, newSibling)
	return nil
}

// Detach removes the node and its subtree from its tree, leaving it in
// the arena as a valid unattached fragment. Text siblings left adjacent
// by the detachment are merged when consolidation is enabled.
func (a *Arena) Detach(n Node) error {
	if err := a.removeStructureCheck(n); err != nil {
		return err
	}
	prev := a.PreviousSibling(n)
	next := a.NextSibling(n)
	a.detachRaw(n)
	a.removeConsolidateTextNodes(prev, next)
	return nil
}

// Remove detaches the node and frees its whole subtree. All handles
// into the subtree become stale. The document element cannot be removed;
// removing an entire document node is allowed.
func (a *Arena) Remove(n Node) error {
	if a.lookup(n) == nil {
		return ErrStaleHandle
	}
	if a.IsDocumentElement(n) {
		return ErrInvalidOperation
	}
	prev := a.PreviousSibling(n)
	next := a.NextSibling(n)
	a.freeSubtree(n)
	a.removeConsolidateTextNodes(prev, next)
	return nil
}

// Replace swaps old for replacement, preserving old's position; the old
// node and its subtree are freed. Replacing the document element is
// legal only if the replacement is itself an element.
func (a *Arena) Replace(old, replacement Node) error {
	if a.lookup(old) == nil || a.lookup(replacement) == nil {
		return ErrStaleHandle
	}
	if a.IsDocument(old) {
		return ErrInvalidOperation
	}
	if a.IsDocumentElement(old) && !a.IsElement(replacement) {
		return ErrInvalidOperation
	}
	parent := a.Parent(old)
	if parent.IsZero() {
		return ErrInvalidOperation
	}
	prev := a.PreviousSibling(old)
	a.freeSubtree(old)
	if !prev.IsZero() {
		return a.InsertAfter(prev, replacement)
	}
	return a.Prepend(parent, replacement)
}

// Clone deep-copies the node and its subtree into a new unattached
// fragment with fresh handles. Cloning a document node clones the whole
// document. Prefix declarations in ancestors of the original are not
// carried over; see CloneWithPrefixes.
func (a *Arena) Clone(n Node) (Node, error) {
	if a.lookup(n) == nil {
		return Node{}, ErrStaleHandle
	}
	edges := make([]NodeEdge, 0)
	for edge := range a.Traverse(n) {
		edges = append(edges, edge)
	}

	isDoc := a.IsDocument(n)
	var top Node
	if isDoc {
		top = a.alloc(&Document{})
	} else {
		top = a.NewElement(a.AddName("temporary_root"))
	}

	current := top
	for _, edge := range edges {
		switch edge.Kind {
		case EdgeStart:
			s := a.lookup(edge.Node)
			if s.value.Type() == DocumentNodeType {
				continue
			}
			copied := a.alloc(cloneValue(s.value))
			if _, err := a.AnyAppend(current, copied); err != nil {
				return Node{}, err
			}
			if s.value.Type() == ElementNodeType {
				current = copied
			}
		case EdgeEnd:
			if a.NodeTypeOf(edge.Node) == ElementNodeType {
				current = a.Parent(current)
			}
		}
	}
	if isDoc {
		return top, nil
	}
	var cloned Node
	for c := range a.AllChildren(top) {
		cloned = c
		break
	}
	a.detachRaw(cloned)
	a.freeSubtree(top)
	return cloned, nil
}

func cloneValue(v Value) Value {
	switch v := v.(type) {
	case *Document:
		return &Document{}
	case *Element:
		return &Element{name: v.name}
	case *Text:
		return &Text{content: v.content}
	case *Comment:
		return &Comment{content: v.content}
	case *ProcessingInstruction:
		return &ProcessingInstruction{target: v.target, data: v.data}
	case *Attribute:
		return &Attribute{name: v.name, value: v.value}
	case *Namespace:
		return &Namespace{prefix: v.prefix, namespace: v.namespace}
	default:
		return nil
	}
}

// CloneWithPrefixes clones the node, then declares on the clone root
// every namespace that is referenced within the subtree but not
// resolved by its own declarations, using the prefixes in scope at the
// original location. Cloning a non-element node behaves like Clone.
func (a *Arena) CloneWithPrefixes(n Node) (Node, error) {
	inherited := a.InheritedPrefixes(n)
	clone, err := a.Clone(n)
	if err != nil {
		return Node{}, err
	}
	if !a.IsElement(clone) {
		return clone, nil
	}
	for _, ns := range a.UnresolvedNamespaces(clone) {
		for _, decl := range inherited {
			if decl.Namespace == ns {
				if _, err := a.AppendNamespace(clone, decl.Prefix, ns); err != nil {
					return Node{}, err
				}
				break
			}
		}
	}
	return clone, nil
}

// ElementUnwrap removes an element, moving its content children into
// its place in the parent. Attribute and namespace nodes of the
// unwrapped element are removed with it. The document element can only
// be unwrapped if it has exactly one child which is itself an element;
// that child then becomes the new document element, and
// CreateMissingPrefixes declares synthetic prefixes (n0, n1, ...) on it
// for any namespaces left without an in-scope prefix.
func (a *Arena) ElementUnwrap(n Node) error {
	if !a.IsElement(n) {
		if a.lookup(n) == nil {
			return ErrStaleHandle
		}
		return ErrNotElement
	}

	wasDocumentElement := a.IsDocumentElement(n)
	if wasDocumentElement {
		first := a.FirstChild(n)
		if first.IsZero() || !a.NextSibling(first).IsZero() || !a.IsElement(first) {
			return ErrInvalidOperation
		}
	}

	parent := a.Parent(n)
	first := a.FirstChild(n)
	if first.IsZero() {
		return a.Remove(n)
	}
	if parent.IsZero() {
		// an unattached root has no parent for the children to move to
		return ErrInvalidOperation
	}
	last := a.LastChild(n)
	prev := a.PreviousSibling(n)

	for fc := a.FirstChild(n); !fc.IsZero(); fc = a.FirstChild(n) {
		a.insertBeforeRaw(n, fc)
	}
	a.freeSubtree(n)

	if a.removeConsolidateTextNodes(prev, first) {
		if first == last {
			a.removeConsolidateTextNodes(prev, a.NextSibling(prev))
		} else {
			a.removeConsolidateTextNodes(last, a.NextSibling(last))
		}
	} else {
		a.removeConsolidateTextNodes(last, a.NextSibling(last))
	}

	if wasDocumentElement {
		docEl, err := a.DocumentElement(parent)
		if err != nil {
			return err
		}
		return a.CreateMissingPrefixes(docEl)
	}
	return nil
}

// ElementWrap creates a new element with the given name that takes the
// node's position in the tree and adopts the node as its only child.
// The returned node is the wrapper. Wrapping the document element is
// allowed; wrapping the document node or comment and processing
// instruction nodes directly under it is not.
func (a *Arena) ElementWrap(n Node, name NameID) (Node, error) {
	if a.lookup(n) == nil {
		return Node{}, ErrStaleHandle
	}
	if a.IsDocument(n) {
		return Node{}, ErrInvalidOperation
	}
	if categoryOf(a.slots[n.index].value) != normalCategory {
		return Node{}, ErrInvalidOperation
	}
	if a.HasDocumentParent(n) && !a.IsDocumentElement(n) {
		return Node{}, ErrInvalidOperation
	}

	parent := a.Parent(n)
	if parent.IsZero() {
		wrapper := a.NewElement(name)
		if err := a.Append(wrapper, n); err != nil {
			a.freeSubtree(wrapper)
			return Node{}, err
		}
		return wrapper, nil
	}

	prev := a.PreviousSibling(n)
	wrapper := a.NewElement(name)
	// low-level detach: the position must not be healed, the wrapper
	// takes it over
	a.detachRaw(n)
	if err := a.Append(wrapper, n); err != nil {
		return Node{}, err
	}
	if !prev.IsZero() {
		if err := a.InsertAfter(prev, wrapper); err != nil {
			return Node{}, err
		}
	} else {
		if err := a.Prepend(parent, wrapper); err != nil {
			return Node{}, err
		}
	}
	return wrapper, nil
}

// RemoveInsignificantWhitespace removes text descendants that contain
// only whitespace and have no text sibling with non-whitespace content.
// Text inside an xml:space="preserve" scope is kept.
func (a *Arena) RemoveInsignificantWhitespace(n Node) {
	var toRemove []Node
	for d := range a.Descendants(n) {
		if a.isInsignificantWhitespace(d) {
			toRemove = append(toRemove, d)
		}
	}
	for _, node := range toRemove {
		_ = a.Remove(node)
	}
}

func isWhitespace(s string) bool {
	for _, c := range s {
		if !unicode.IsSpace(c) {
			return false
		}
	}
	return true
}

func (a *Arena) isSignificantTextNode(n Node) bool {
	t, ok := a.TextString(n)
	return ok && !isWhitespace(t)
}

func (a *Arena) inPreserveSpace(n Node) bool {
	for ancestor := range a.Ancestors(n) {
		if v, ok := a.AttributeValue(ancestor, a.xmlSpace); ok {
			return v == "preserve"
		}
	}
	return false
}

func (a *Arena) isInsignificantWhitespace(n Node) bool {
	t, ok := a.TextString(n)
	if !ok || !isWhitespace(t) {
		return false
	}
	if a.inPreserveSpace(n) {
		return false
	}
	for sib := a.PreviousSibling(n); !sib.IsZero(); sib = a.PreviousSibling(sib) {
		if a.isSignificantTextNode(sib) {
			return false
		}
	}
	for sib := a.NextSibling(n); !sib.IsZero(); sib = a.NextSibling(sib) {
		if a.isSignificantTextNode(sib) {
			return false
		}
	}
	return true
}

func (a *Arena) addStructureCheck(parent, child Node) error {
	if a.lookup(parent) == nil || a.lookup(child) == nil {
		return ErrStaleHandle
	}
	switch a.NodeTypeOf(parent) {
	case ElementNodeType, DocumentNodeType:
	default:
		return ErrInvalidOperation
	}
	if a.isAncestorOf(child, parent) {
		return ErrWouldCycle
	}
	switch a.NodeTypeOf(child) {
	case DocumentNodeType:
		return ErrInvalidOperation
	case ElementNodeType:
		if a.HasDocumentParent(child) {
			// the document element cannot be moved away
			return ErrInvalidOperation
		}
		if a.IsDocument(parent) {
			for c := range a.Children(parent) {
				if a.IsElement(c) {
					return ErrInvalidOperation
				}
			}
		}
	case TextNodeType:
		if a.IsDocument(parent) {
			return ErrInvalidOperation
		}
	case CommentNodeType, ProcessingInstructionNodeType:
		// legal everywhere
	default:
		// attribute and namespace nodes are not content
		return ErrInvalidOperation
	}
	return nil
}

func (a *Arena) siblingStructureCheck(ref, newSibling Node) error {
	if a.lookup(ref) == nil {
		return ErrStaleHandle
	}
	parent := a.Parent(ref)
	if parent.IsZero() {
		return ErrInvalidOperation
	}
	if categoryOf(a.slots[ref.index].value) != normalCategory {
		return ErrInvalidOperation
	}
	return a.addStructureCheck(parent, newSibling)
}

func (a *Arena) removeStructureCheck(n Node) error {
	if a.lookup(n) == nil {
		return ErrStaleHandle
	}
	switch a.NodeTypeOf(n) {
	case DocumentNodeType:
		return ErrInvalidOperation
	case ElementNodeType:
		if a.HasDocumentParent(n) {
			return ErrInvalidOperation
		}
	}
	return nil
}

// addConsolidateTextNodes merges a text node being inserted with an
// adjacent text sibling. It reports whether the node was consumed.
func (a *Arena) addConsolidateTextNodes(n, prev, next Node) bool {
	if !a.textConsolidation {
		return false
	}
	if prev == n || next == n {
		// re-inserting a node next to itself
		return false
	}
	added := a.Text(n)
	if added == nil {
		return false
	}
	if p := a.Text(prev); p != nil {
		p.Set(p.Get() + added.Get())
		a.freeSubtree(n)
		return true
	}
	if nx := a.Text(next); nx != nil {
		nx.Set(added.Get() + nx.Get())
		a.freeSubtree(n)
		return true
	}
	return false
}

// removeConsolidateTextNodes merges two text nodes that have become
// adjacent after a removal or detachment. The second node is freed.
func (a *Arena) removeConsolidateTextNodes(prev, next Node) bool {
	if !a.textConsolidation {
		return false
	}
	p := a.Text(prev)
	nx := a.Text(next)
	if p == nil || nx == nil {
		return false
	}
	p.Set(p.Get() + nx.Get())
	a.freeSubtree(next)
	return true
}
