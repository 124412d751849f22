package xot

// slot is one entry in the arena. Link fields are slot indices; zero
// means absent. A freed slot keeps its bumped generation so stale
// handles can be detected, and carries a nil value.
type slot struct {
	parent     int32
	firstChild int32
	lastChild  int32
	prev       int32
	next       int32
	gen        uint32
	value      Value
}

func (a *Arena) alloc(v Value) Node {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = v
		return Node{index: idx, gen: s.gen}
	}
	idx := int32(len(a.slots))
	a.slots = append(a.slots, slot{value: v})
	return Node{index: idx, gen: 0}
}

// lookup resolves a handle to its slot. It returns nil for the zero
// handle, for out-of-range indices, and for stale handles whose slot
// has since been freed or reused.
func (a *Arena) lookup(n Node) *slot {
	if n.index <= 0 || int(n.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[n.index]
	if s.gen != n.gen || s.value == nil {
		return nil
	}
	return s
}

func (a *Arena) handle(idx int32) Node {
	if idx == 0 {
		return Node{}
	}
	return Node{index: idx, gen: a.slots[idx].gen}
}

// IsRemoved reports whether the node behind the handle has been removed
// from the arena.
func (a *Arena) IsRemoved(n Node) bool {
	return a.lookup(n) == nil
}

// detachRaw unlinks n from its parent and siblings without touching its
// subtree. No text consolidation happens at this level.
func (a *Arena) detachRaw(n Node) {
	s := &a.slots[n.index]
	if s.prev != 0 {
		a.slots[s.prev].next = s.next
	}
	if s.next != 0 {
		a.slots[s.next].prev = s.prev
	}
	if s.parent != 0 {
		p := &a.slots[s.parent]
		if p.firstChild == n.index {
			p.firstChild = s.next
		}
		if p.lastChild == n.index {
			p.lastChild = s.prev
		}
	}
	s.parent = 0
	s.prev = 0
	s.next = 0
}

// appendRaw makes child the last raw child of parent, detaching it
// from any previous location first.
func (a *Arena) appendRaw(parent, child Node) {
	a.detachRaw(child)
	p := &a.slots[parent.index]
	c := &a.slots[child.index]
	c.parent = parent.index
	c.prev = p.lastChild
	if p.lastChild != 0 {
		a.slots[p.lastChild].next = child.index
	} else {
		p.firstChild = child.index
	}
	p.lastChild = child.index
}

// prependRaw makes child the first raw child of parent.
func (a *Arena) prependRaw(parent, child Node) {
	a.detachRaw(child)
	p := &a.slots[parent.index]
	c := &a.slots[child.index]
	c.parent = parent.index
	c.next = p.firstChild
	if p.firstChild != 0 {
		a.slots[p.firstChild].prev = child.index
	} else {
		p.lastChild = child.index
	}
	p.firstChild = child.index
}

// insertBeforeRaw places n as the sibling immediately before ref.
func (a *Arena) insertBeforeRaw(ref, n Node) {
	a.detachRaw(n)
	r := &a.slots[ref.index]
	s := &a.slots[n.index]
	s.parent = r.parent
	s.prev = r.prev
	s.next = ref.index
	if r.prev != 0 {
		a.slots[r.prev].next = n.index
	} else if r.parent != 0 {
		a.slots[r.parent].firstChild = n.index
	}
	r.prev = n.index
}

// insertAfterRaw places n as the sibling immediately after ref.
func (a *Arena) insertAfterRaw(ref, n Node) {
	a.detachRaw(n)
	r := &a.slots[ref.index]
	s := &a.slots[n.index]
	s.parent = r.parent
	s.next = r.next
	s.prev = ref.index
	if r.next != 0 {
		a.slots[r.next].prev = n.index
	} else if r.parent != 0 {
		a.slots[r.parent].lastChild = n.index
	}
	r.next = n.index
}

// freeSubtree detaches n and frees every slot of its subtree. Handles
// into the subtree become stale.
func (a *Arena) freeSubtree(n Node) {
	a.detachRaw(n)
	stack := []int32{n.index}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for c := a.slots[idx].firstChild; c != 0; c = a.slots[c].next {
			stack = append(stack, c)
		}
		s := &a.slots[idx]
		*s = slot{gen: s.gen + 1}
		a.free = append(a.free, idx)
	}
}

// isAncestorOf reports whether anc is an ancestor of n, or n itself.
func (a *Arena) isAncestorOf(anc, n Node) bool {
	for idx := n.index; idx != 0; idx = a.slots[idx].parent {
		if idx == anc.index {
			return true
		}
	}
	return false
}
