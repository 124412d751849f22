package xot

import "strings"

// ShallowEqual compares the values of two nodes without recursing into
// content: node kind, payload, and for elements the name, the attribute
// set and the namespace declarations. Child content is not considered.
func (a *Arena) ShallowEqual(x, y Node) bool {
	return a.shallowEqual(x, y, false, stringEqual)
}

// ShallowEqualIgnoreAttributes is ShallowEqual, except that elements
// are compared by name only.
func (a *Arena) ShallowEqualIgnoreAttributes(x, y Node) bool {
	return a.shallowEqual(x, y, true, stringEqual)
}

func stringEqual(x, y string) bool {
	return x == y
}

func (a *Arena) shallowEqual(x, y Node, ignoreAttributes bool, textCmp func(string, string) bool) bool {
	xv, err := a.Value(x)
	if err != nil {
		return false
	}
	yv, err := a.Value(y)
	if err != nil {
		return false
	}
	if xv.Type() != yv.Type() {
		return false
	}
	switch xv := xv.(type) {
	case *Document:
		return true
	case *Element:
		if xv.Name() != yv.(*Element).Name() {
			return false
		}
		if ignoreAttributes {
			return true
		}
		return a.compareAttributes(x, y, textCmp) && a.compareNamespaces(x, y)
	case *Text:
		return textCmp(xv.Get(), yv.(*Text).Get())
	case *Comment:
		return xv.Get() == yv.(*Comment).Get()
	case *ProcessingInstruction:
		ypi := yv.(*ProcessingInstruction)
		return xv.Target() == ypi.Target() && textCmp(xv.Data(), ypi.Data())
	case *Attribute:
		yattr := yv.(*Attribute)
		return xv.Name() == yattr.Name() && textCmp(xv.Value(), yattr.Value())
	case *Namespace:
		yns := yv.(*Namespace)
		return xv.Prefix() == yns.Prefix() && xv.Namespace() == yns.Namespace()
	default:
		return false
	}
}

// compareAttributes compares the attribute sets of two elements as
// multisets keyed by name id, order-insensitive.
func (a *Arena) compareAttributes(x, y Node, textCmp func(string, string) bool) bool {
	xattrs := make(map[NameID]string)
	for name, value := range a.Attributes(x) {
		xattrs[name] = value
	}
	count := 0
	for name, value := range a.Attributes(y) {
		xvalue, ok := xattrs[name]
		if !ok || !textCmp(xvalue, value) {
			return false
		}
		count++
	}
	return count == len(xattrs)
}

func (a *Arena) compareNamespaces(x, y Node) bool {
	xdecls := make(map[PrefixID]NamespaceID)
	for prefix, ns := range a.Namespaces(x) {
		xdecls[prefix] = ns
	}
	count := 0
	for prefix, ns := range a.Namespaces(y) {
		xns, ok := xdecls[prefix]
		if !ok || xns != ns {
			return false
		}
		count++
	}
	return count == len(xdecls)
}

// DeepEqual compares two nodes and their subtrees structurally,
// including attributes and namespace declarations. Element and
// attribute names compare by namespace and local name, so the prefix a
// name is written with does not matter; namespace declarations compare
// by prefix and namespace.
func (a *Arena) DeepEqual(x, y Node) bool {
	return a.AdvancedDeepEqual(x, y, func(Node) bool { return true }, stringEqual)
}

// DeepEqualChildren compares the child content of two nodes, ignoring
// the identity of x and y themselves.
func (a *Arena) DeepEqualChildren(x, y Node) bool {
	return a.compareChildren(x, y, func(Node) bool { return true }, stringEqual)
}

// AdvancedDeepEqual is DeepEqual with a node filter and a custom text
// comparison. Content nodes rejected by the filter are skipped on both
// sides; text and attribute values are compared through textCmp.
func (a *Arena) AdvancedDeepEqual(x, y Node, filter func(Node) bool, textCmp func(string, string) bool) bool {
	if !a.shallowEqual(x, y, false, textCmp) {
		return false
	}
	return a.compareChildren(x, y, filter, textCmp)
}

func (a *Arena) compareChildren(x, y Node, filter func(Node) bool, textCmp func(string, string) bool) bool {
	xc := a.filteredChildren(x, filter)
	yc := a.filteredChildren(y, filter)
	if len(xc) != len(yc) {
		return false
	}
	for i := range xc {
		if !a.shallowEqual(xc[i], yc[i], false, textCmp) {
			return false
		}
		if !a.compareChildren(xc[i], yc[i], filter, textCmp) {
			return false
		}
	}
	return true
}

func (a *Arena) filteredChildren(n Node, filter func(Node) bool) []Node {
	var nodes []Node
	for c := range a.Children(n) {
		if filter(c) {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// DeepEqualXPath compares two nodes with the semantics of the XPath
// deep-equal function: element names and attribute values are compared
// (attribute order does not matter), text is compared as concatenated
// string values, and comments, processing instructions and namespace
// declarations inside element content are ignored.
func (a *Arena) DeepEqualXPath(x, y Node) bool {
	xv, err := a.Value(x)
	if err != nil {
		return false
	}
	yv, err := a.Value(y)
	if err != nil {
		return false
	}
	if xv.Type() != yv.Type() {
		return false
	}
	switch xv.Type() {
	case DocumentNodeType, ElementNodeType:
		return a.xpathEqual(x, y)
	default:
		return a.shallowEqual(x, y, false, stringEqual)
	}
}

func (a *Arena) xpathEqual(x, y Node) bool {
	if a.IsElement(x) {
		xe := a.Element(x)
		ye := a.Element(y)
		if ye == nil || xe.Name() != ye.Name() {
			return false
		}
		if !a.compareAttributes(x, y, stringEqual) {
			return false
		}
	}
	xitems := a.xpathChildItems(x)
	yitems := a.xpathChildItems(y)
	if len(xitems) != len(yitems) {
		return false
	}
	for i := range xitems {
		xi, yi := xitems[i], yitems[i]
		if xi.isText != yi.isText {
			return false
		}
		if xi.isText {
			if xi.text != yi.text {
				return false
			}
			continue
		}
		if !a.xpathEqual(xi.node, yi.node) {
			return false
		}
	}
	return true
}

type xpathItem struct {
	node   Node
	text   string
	isText bool
}

// xpathChildItems filters the content children down to elements and
// text, concatenating runs of text nodes into single items.
func (a *Arena) xpathChildItems(n Node) []xpathItem {
	var items []xpathItem
	var run strings.Builder
	inRun := false
	flush := func() {
		if inRun {
			items = append(items, xpathItem{text: run.String(), isText: true})
			run.Reset()
			inRun = false
		}
	}
	for c := range a.Children(n) {
		switch a.NodeTypeOf(c) {
		case TextNodeType:
			t, _ := a.TextString(c)
			run.WriteString(t)
			inRun = true
		case ElementNodeType:
			flush()
			items = append(items, xpathItem{node: c})
		default:
			// comments and processing instructions do not take part
		}
	}
	flush()
	return items
}
