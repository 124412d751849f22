package xot

// fullnameStack tracks the effective prefix bindings while walking a
// tree in document order, so element and attribute names can be
// rendered with the right prefix without re-walking ancestors. Each
// entry holds the complete effective declaration list, outermost
// binding first, with shadowed prefixes already filtered out.
type fullnameStack struct {
	arena *Arena
	stack [][]NamespaceDeclaration
}

func newFullnameStack(a *Arena, base []NamespaceDeclaration) *fullnameStack {
	return &fullnameStack{
		arena: a,
		stack: [][]NamespaceDeclaration{base},
	}
}

// baseScope returns the bindings in scope at n ordered outermost first,
// suitable for seeding a fullnameStack.
func (a *Arena) baseScope(n Node) []NamespaceDeclaration {
	decls := a.inScopeDeclarations(n)
	for i, j := 0, len(decls)-1; i < j; i, j = i+1, j-1 {
		decls[i], decls[j] = decls[j], decls[i]
	}
	return decls
}

// push enters a scope with the given local declarations. Empty
// declaration lists push nothing; pop must be passed whether the node
// had declarations.
func (f *fullnameStack) push(decls []NamespaceDeclaration) {
	if len(decls) == 0 {
		return
	}
	current := f.top()
	merged := make([]NamespaceDeclaration, 0, len(current)+len(decls))
	for _, d := range current {
		overridden := false
		for _, nd := range decls {
			if nd.Prefix == d.Prefix {
				overridden = true
				break
			}
		}
		if !overridden {
			merged = append(merged, d)
		}
	}
	merged = append(merged, decls...)
	f.stack = append(f.stack, merged)
}

func (f *fullnameStack) pop(hadDeclarations bool) {
	if hadDeclarations {
		f.stack = f.stack[:len(f.stack)-1]
	}
}

func (f *fullnameStack) top() []NamespaceDeclaration {
	return f.stack[len(f.stack)-1]
}

// addEmptyPrefix forces the empty prefix to map to the given namespace
// in the current scope. The HTML5 serializer uses this for namespaces
// that must be serialized unprefixed.
func (f *fullnameStack) addEmptyPrefix(ns NamespaceID) {
	top := f.top()
	merged := make([]NamespaceDeclaration, 0, len(top)+1)
	for _, d := range top {
		if d.Prefix != f.arena.emptyPrefix {
			merged = append(merged, d)
		}
	}
	merged = append(merged, NamespaceDeclaration{Prefix: f.arena.emptyPrefix, Namespace: ns})
	f.stack[len(f.stack)-1] = merged
}

func (f *fullnameStack) namespaceForPrefix(prefix PrefixID) (NamespaceID, bool) {
	top := f.top()
	for i := len(top) - 1; i >= 0; i-- {
		if top[i].Prefix == prefix {
			return top[i].Namespace, true
		}
	}
	return 0, false
}

// elementPrefixForNamespace finds a prefix for an element name,
// preferring the default namespace, then the most recently declared
// prefix.
func (f *fullnameStack) elementPrefixForNamespace(ns NamespaceID) (PrefixID, bool) {
	top := f.top()
	for i := len(top) - 1; i >= 0; i-- {
		if top[i].Prefix == f.arena.emptyPrefix && top[i].Namespace == ns {
			return f.arena.emptyPrefix, true
		}
	}
	for i := len(top) - 1; i >= 0; i-- {
		if top[i].Namespace == ns {
			return top[i].Prefix, true
		}
	}
	return 0, false
}

// attributePrefixForNamespace finds a prefix for an attribute name.
// Unprefixed attributes are never in a namespace, so the empty prefix
// does not qualify.
func (f *fullnameStack) attributePrefixForNamespace(ns NamespaceID) (PrefixID, bool) {
	top := f.top()
	for i := len(top) - 1; i >= 0; i-- {
		if top[i].Namespace == ns && top[i].Prefix != f.arena.emptyPrefix {
			return top[i].Prefix, true
		}
	}
	return 0, false
}

func (f *fullnameStack) isNamespaceKnown(ns NamespaceID) bool {
	for _, d := range f.top() {
		if d.Namespace == ns {
			return true
		}
	}
	return false
}

func (f *fullnameStack) elementFullname(name NameID) (string, error) {
	a := f.arena
	ns := a.NamespaceForName(name)
	if ns == a.noNamespace {
		return a.LocalNameString(name), nil
	}
	prefix, ok := f.elementPrefixForNamespace(ns)
	if !ok {
		return "", ErrMissingPrefix{Namespace: a.NamespaceString(ns)}
	}
	if prefix == a.emptyPrefix {
		return a.LocalNameString(name), nil
	}
	return a.PrefixString(prefix) + ":" + a.LocalNameString(name), nil
}

func (f *fullnameStack) attributeFullname(name NameID) (string, error) {
	a := f.arena
	ns := a.NamespaceForName(name)
	if ns == a.noNamespace {
		return a.LocalNameString(name), nil
	}
	prefix, ok := f.attributePrefixForNamespace(ns)
	if !ok {
		return "", ErrMissingPrefix{Namespace: a.NamespaceString(ns)}
	}
	return a.PrefixString(prefix) + ":" + a.LocalNameString(name), nil
}
