package xot

import "iter"

// Parent returns the parent of a node, or the zero handle for
// unattached nodes and documents.
func (a *Arena) Parent(n Node) Node {
	s := a.lookup(n)
	if s == nil {
		return Node{}
	}
	return a.handle(s.parent)
}

// FirstChild returns the first content child of a node, skipping any
// namespace and attribute nodes.
func (a *Arena) FirstChild(n Node) Node {
	s := a.lookup(n)
	if s == nil {
		return Node{}
	}
	for c := s.firstChild; c != 0; c = a.slots[c].next {
		if categoryOf(a.slots[c].value) == normalCategory {
			return a.handle(c)
		}
	}
	return Node{}
}

// LastChild returns the last content child of a node. Since namespace
// and attribute children always precede content children, a last child
// of another category means there is no content.
func (a *Arena) LastChild(n Node) Node {
	s := a.lookup(n)
	if s == nil || s.lastChild == 0 {
		return Node{}
	}
	if categoryOf(a.slots[s.lastChild].value) != normalCategory {
		return Node{}
	}
	return a.handle(s.lastChild)
}

// NextSibling returns the next sibling within the same category: the
// next content node for content nodes, the next attribute node for
// attribute nodes, the next namespace node for namespace nodes.
func (a *Arena) NextSibling(n Node) Node {
	s := a.lookup(n)
	if s == nil || s.next == 0 {
		return Node{}
	}
	if categoryOf(a.slots[s.next].value) != categoryOf(s.value) {
		return Node{}
	}
	return a.handle(s.next)
}

// PreviousSibling returns the previous sibling within the same
// category.
func (a *Arena) PreviousSibling(n Node) Node {
	s := a.lookup(n)
	if s == nil || s.prev == 0 {
		return Node{}
	}
	if categoryOf(a.slots[s.prev].value) != categoryOf(s.value) {
		return Node{}
	}
	return a.handle(s.prev)
}

// DocumentOf walks up from the node and returns the document node it is
// attached to, or the zero handle for unattached trees.
func (a *Arena) DocumentOf(n Node) Node {
	s := a.lookup(n)
	if s == nil {
		return Node{}
	}
	idx := n.index
	for a.slots[idx].parent != 0 {
		idx = a.slots[idx].parent
	}
	if a.slots[idx].value.Type() != DocumentNodeType {
		return Node{}
	}
	return a.handle(idx)
}

// Children iterates over the content children of a node, in order.
func (a *Arena) Children(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := a.FirstChild(n); !c.IsZero(); c = a.NextSibling(c) {
			if !yield(c) {
				return
			}
		}
	}
}

// ReverseChildren iterates over the content children of a node in
// reverse order.
func (a *Arena) ReverseChildren(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for c := a.LastChild(n); !c.IsZero(); c = a.PreviousSibling(c) {
			if !yield(c) {
				return
			}
		}
	}
}

// AllChildren iterates over every child of a node: namespace nodes,
// then attribute nodes, then content.
func (a *Arena) AllChildren(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		s := a.lookup(n)
		if s == nil {
			return
		}
		for c := s.firstChild; c != 0; c = a.slots[c].next {
			if !yield(a.handle(c)) {
				return
			}
		}
	}
}

// ChildIndex returns the position of child among the content children
// of parent, or -1 if child is not a content child of parent.
func (a *Arena) ChildIndex(parent, child Node) int {
	i := 0
	for c := range a.Children(parent) {
		if c == child {
			return i
		}
		i++
	}
	return -1
}

// Ancestors iterates over the node itself and its ancestors, nearest
// first.
func (a *Arena) Ancestors(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for cur := n; !cur.IsZero(); cur = a.Parent(cur) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants iterates over the node and its content descendants, in
// document order. Namespace and attribute nodes are not included.
func (a *Arena) Descendants(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		a.descend(n, yield)
	}
}

func (a *Arena) descend(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := a.FirstChild(n); !c.IsZero(); c = a.NextSibling(c) {
		if !a.descend(c, yield) {
			return false
		}
	}
	return true
}

// AllDescendants iterates over the node and all of its descendants
// including namespace and attribute nodes, in document order with
// namespace and attribute nodes before the content of their element.
func (a *Arena) AllDescendants(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		a.descendAll(n, yield)
	}
}

func (a *Arena) descendAll(n Node, yield func(Node) bool) bool {
	if !yield(n) {
		return false
	}
	s := a.lookup(n)
	if s == nil {
		return true
	}
	for c := s.firstChild; c != 0; c = a.slots[c].next {
		if !a.descendAll(a.handle(c), yield) {
			return false
		}
	}
	return true
}

// FollowingSiblings iterates over the node and its following siblings
// within the same category.
func (a *Arena) FollowingSiblings(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for cur := n; !cur.IsZero(); cur = a.NextSibling(cur) {
			if !yield(cur) {
				return
			}
		}
	}
}

// PrecedingSiblings iterates over the node and its preceding siblings
// within the same category, nearest first.
func (a *Arena) PrecedingSiblings(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for cur := n; !cur.IsZero(); cur = a.PreviousSibling(cur) {
			if !yield(cur) {
				return
			}
		}
	}
}

// Following iterates over the nodes that come after this node in
// document order, excluding the node itself, its ancestors and its
// descendants. Namespace and attribute nodes are not included.
func (a *Arena) Following(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for anchor := n; !anchor.IsZero(); anchor = a.Parent(anchor) {
			for sib := a.NextSibling(anchor); !sib.IsZero(); sib = a.NextSibling(sib) {
				if !a.descend(sib, yield) {
					return
				}
			}
		}
	}
}

// Preceding iterates over the nodes that come before this node in
// document order, excluding the node itself, its ancestors and its
// descendants, in reverse document order. Namespace and attribute nodes
// are not included.
func (a *Arena) Preceding(n Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for anchor := n; !anchor.IsZero(); anchor = a.Parent(anchor) {
			for sib := a.PreviousSibling(anchor); !sib.IsZero(); sib = a.PreviousSibling(sib) {
				var nodes []Node
				for d := range a.Descendants(sib) {
					nodes = append(nodes, d)
				}
				for i := len(nodes) - 1; i >= 0; i-- {
					if !yield(nodes[i]) {
						return
					}
				}
			}
		}
	}
}

// Traverse walks the subtree as a sequence of edges in document order:
// an EdgeStart event when a node is entered, an EdgeEnd event when it
// is left. Namespace and attribute nodes produce their edge pairs
// before the content of their element.
func (a *Arena) Traverse(n Node) iter.Seq[NodeEdge] {
	return func(yield func(NodeEdge) bool) {
		a.traverseEdges(n, yield)
	}
}

func (a *Arena) traverseEdges(n Node, yield func(NodeEdge) bool) bool {
	if !yield(NodeEdge{Kind: EdgeStart, Node: n}) {
		return false
	}
	s := a.lookup(n)
	if s != nil {
		for c := s.firstChild; c != 0; c = a.slots[c].next {
			if !a.traverseEdges(a.handle(c), yield) {
				return false
			}
		}
	}
	return yield(NodeEdge{Kind: EdgeEnd, Node: n})
}

// ReverseTraverse walks the subtree edges in reverse document order.
func (a *Arena) ReverseTraverse(n Node) iter.Seq[NodeEdge] {
	return func(yield func(NodeEdge) bool) {
		a.reverseTraverseEdges(n, yield)
	}
}

func (a *Arena) reverseTraverseEdges(n Node, yield func(NodeEdge) bool) bool {
	if !yield(NodeEdge{Kind: EdgeEnd, Node: n}) {
		return false
	}
	s := a.lookup(n)
	if s != nil {
		for c := s.lastChild; c != 0; c = a.slots[c].prev {
			if !a.reverseTraverseEdges(a.handle(c), yield) {
				return false
			}
		}
	}
	return yield(NodeEdge{Kind: EdgeStart, Node: n})
}

// LevelOrder walks the subtree breadth first. After each run of nodes
// that share a parent an End item is emitted. Namespace and attribute
// nodes are not included.
func (a *Arena) LevelOrder(n Node) iter.Seq[LevelOrder] {
	return func(yield func(LevelOrder) bool) {
		queue := []Node{n}
		last := n
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if a.Parent(last) != a.Parent(cur) {
				if !yield(LevelOrder{End: true}) {
					return
				}
			}
			if !yield(LevelOrder{Node: cur}) {
				return
			}
			last = cur
			for c := range a.Children(cur) {
				queue = append(queue, c)
			}
		}
		yield(LevelOrder{End: true})
	}
}

// Axis iterates a node's XPath axis. The self, parent, child,
// descendant, ancestor, sibling, following and preceding axes follow
// XPath semantics: the node itself is only part of the self,
// descendant-or-self and ancestor-or-self axes. The attribute and
// namespace axes yield the attribute and namespace children of an
// element.
func (a *Arena) Axis(n Node, kind AxisKind) iter.Seq[Node] {
	switch kind {
	case AxisSelf:
		return func(yield func(Node) bool) {
			yield(n)
		}
	case AxisChild:
		return a.Children(n)
	case AxisParent:
		return func(yield func(Node) bool) {
			if p := a.Parent(n); !p.IsZero() {
				yield(p)
			}
		}
	case AxisDescendant:
		return skipFirst(a.Descendants(n))
	case AxisDescendantOrSelf:
		return a.Descendants(n)
	case AxisAncestor:
		return skipFirst(a.Ancestors(n))
	case AxisAncestorOrSelf:
		return a.Ancestors(n)
	case AxisFollowingSibling:
		return skipFirst(a.FollowingSiblings(n))
	case AxisPrecedingSibling:
		return skipFirst(a.PrecedingSiblings(n))
	case AxisFollowing:
		return a.Following(n)
	case AxisPreceding:
		return a.Preceding(n)
	case AxisAttribute:
		return a.AttributeNodes(n)
	case AxisNamespace:
		return a.NamespaceNodes(n)
	default:
		return func(yield func(Node) bool) {}
	}
}

func skipFirst(seq iter.Seq[Node]) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		first := true
		for n := range seq {
			if first {
				first = false
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}
