package xot

import (
	"fmt"
	"iter"
)

// inScopeDeclarations returns the effective prefix bindings at a node,
// nearest declaration first. Shadowed bindings are filtered out, and
// the reserved xml prefix is always present.
func (a *Arena) inScopeDeclarations(n Node) []NamespaceDeclaration {
	var decls []NamespaceDeclaration
	seen := make(map[PrefixID]bool)
	for ancestor := range a.Ancestors(n) {
		if !a.IsElement(ancestor) {
			continue
		}
		for prefix, ns := range a.Namespaces(ancestor) {
			if seen[prefix] {
				continue
			}
			seen[prefix] = true
			decls = append(decls, NamespaceDeclaration{Prefix: prefix, Namespace: ns})
		}
	}
	if !seen[a.xmlPrefix] {
		decls = append(decls, NamespaceDeclaration{Prefix: a.xmlPrefix, Namespace: a.xmlNamespace})
	}
	return decls
}

// NamespacesInScope iterates the effective prefix bindings at a node,
// nearest declaration first, including the implicit xml prefix.
func (a *Arena) NamespacesInScope(n Node) iter.Seq2[PrefixID, NamespaceID] {
	return func(yield func(PrefixID, NamespaceID) bool) {
		for _, d := range a.inScopeDeclarations(n) {
			if !yield(d.Prefix, d.Namespace) {
				return
			}
		}
	}
}

// NamespaceForPrefix resolves a prefix at a node. The xml prefix always
// resolves to the xml namespace; the empty prefix resolves to no
// namespace when no default namespace declaration is in scope.
func (a *Arena) NamespaceForPrefix(n Node, prefix PrefixID) (NamespaceID, bool) {
	for _, d := range a.inScopeDeclarations(n) {
		if d.Prefix == prefix {
			return d.Namespace, true
		}
	}
	if prefix == a.emptyPrefix {
		return a.noNamespace, true
	}
	return 0, false
}

// PrefixForNamespace finds a prefix bound to the namespace at a node.
// When several bindings are in scope the nearest wins, with ties broken
// by declaration order.
func (a *Arena) PrefixForNamespace(n Node, ns NamespaceID) (PrefixID, bool) {
	for _, d := range a.inScopeDeclarations(n) {
		if d.Namespace == ns {
			return d.Prefix, true
		}
	}
	if ns == a.noNamespace {
		return a.emptyPrefix, true
	}
	return 0, false
}

// InheritedPrefixes returns the prefix bindings that are in scope at a
// node but not declared on the node itself, nearest first.
func (a *Arena) InheritedPrefixes(n Node) []NamespaceDeclaration {
	var inherited []NamespaceDeclaration
	for _, d := range a.inScopeDeclarations(a.Parent(n)) {
		declared := false
		for prefix := range a.Namespaces(n) {
			if prefix == d.Prefix {
				declared = true
				break
			}
		}
		if !declared {
			inherited = append(inherited, d)
		}
	}
	return inherited
}

// UnresolvedNamespaces returns the namespaces used by element and
// attribute names within the subtree that have no in-scope prefix, in
// the order they are first encountered.
func (a *Arena) UnresolvedNamespaces(root Node) []NamespaceID {
	stack := newFullnameStack(a, a.baseScope(a.Parent(root)))
	var missing []NamespaceID
	seen := make(map[NamespaceID]bool)
	record := func(ns NamespaceID) {
		if !seen[ns] {
			seen[ns] = true
			missing = append(missing, ns)
		}
	}
	for edge := range a.Traverse(root) {
		el := a.Element(edge.Node)
		if el == nil {
			continue
		}
		switch edge.Kind {
		case EdgeStart:
			stack.push(a.NamespaceDeclarations(edge.Node))
			if ns := a.NamespaceForName(el.Name()); ns != a.noNamespace {
				if _, ok := stack.elementPrefixForNamespace(ns); !ok {
					record(ns)
				}
			}
			for name := range a.Attributes(edge.Node) {
				if ns := a.NamespaceForName(name); ns != a.noNamespace {
					if _, ok := stack.attributePrefixForNamespace(ns); !ok {
						record(ns)
					}
				}
			}
		case EdgeEnd:
			stack.pop(a.HasNamespaceDeclarations(edge.Node))
		}
	}
	return missing
}

// CreateMissingPrefixes declares a synthetic prefix (n0, n1, ...) on
// the given element for every namespace used within its subtree that
// has no in-scope prefix, skipping prefixes that would collide with
// ones already in scope. A document node is accepted too; the
// declarations then go on its document element.
func (a *Arena) CreateMissingPrefixes(node Node) error {
	target := node
	if a.IsDocument(node) {
		docEl, err := a.DocumentElement(node)
		if err != nil {
			return err
		}
		target = docEl
	}
	if !a.IsElement(target) {
		return ErrNotElement
	}

	missing := a.UnresolvedNamespaces(target)
	if len(missing) == 0 {
		return nil
	}

	taken := make(map[string]bool)
	for _, d := range a.inScopeDeclarations(target) {
		taken[a.PrefixString(d.Prefix)] = true
	}
	i := 0
	for _, ns := range missing {
		var prefix string
		for {
			prefix = fmt.Sprintf("n%d", i)
			i++
			if !taken[prefix] {
				break
			}
		}
		taken[prefix] = true
		if _, err := a.AppendNamespace(target, a.AddPrefix(prefix), ns); err != nil {
			return err
		}
	}
	return nil
}

// DeduplicateNamespaces removes namespace declarations for namespaces
// that are already reachable through an in-scope binding of an
// ancestor. A declaration is kept when removing it would leave an
// attribute in its scope without a usable non-empty prefix.
func (a *Arena) DeduplicateNamespaces(root Node) {
	stack := newFullnameStack(a, a.baseScope(a.Parent(root)))
	var toRemove []Node
	for edge := range a.Traverse(root) {
		el := a.Element(edge.Node)
		if el == nil {
			continue
		}
		switch edge.Kind {
		case EdgeStart:
			for nsNode := range a.NamespaceNodes(edge.Node) {
				decl := a.NamespaceNode(nsNode)
				if !stack.isNamespaceKnown(decl.Namespace()) {
					continue
				}
				if a.declarationRemovable(edge.Node, decl, stack) {
					toRemove = append(toRemove, nsNode)
				}
			}
			// push before removal; as duplicates, the bindings exist
			// in the outer scope anyway
			stack.push(a.NamespaceDeclarations(edge.Node))
		case EdgeEnd:
			stack.pop(a.HasNamespaceDeclarations(edge.Node))
		}
	}
	for _, nsNode := range toRemove {
		a.freeSubtree(nsNode)
	}
}

// declarationRemovable checks that dropping the declaration leaves
// every attribute in its scope resolvable: attributes never use the
// default namespace, so a non-empty outer prefix must exist if any
// attribute in the subtree uses the namespace.
func (a *Arena) declarationRemovable(element Node, decl *Namespace, stack *fullnameStack) bool {
	if decl.Prefix() == a.emptyPrefix {
		return true
	}
	if _, ok := stack.attributePrefixForNamespace(decl.Namespace()); ok {
		return true
	}
	for d := range a.Descendants(element) {
		for name := range a.Attributes(d) {
			if a.NamespaceForName(name) == decl.Namespace() {
				return false
			}
		}
	}
	return true
}
