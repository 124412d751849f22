package xot

// AddName interns a name without a namespace. If the name already
// exists its existing id is returned.
func (a *Arena) AddName(local string) NameID {
	return a.AddNameNS(local, a.noNamespace)
}

// AddNameNS interns a name in a namespace. If the name already exists
// its existing id is returned.
func (a *Arena) AddNameNS(local string, ns NamespaceID) NameID {
	return NameID(a.names.Intern(nameKey{local: local, namespace: ns}))
}

// Name looks up a name without a namespace, without interning it.
func (a *Arena) Name(local string) (NameID, bool) {
	return a.NameNS(local, a.noNamespace)
}

// NameNS looks up a name in a namespace, without interning it.
func (a *Arena) NameNS(local string, ns NamespaceID) (NameID, bool) {
	id, ok := a.names.Lookup(nameKey{local: local, namespace: ns})
	return NameID(id), ok
}

// AddNamespace interns a namespace URI. If the namespace already exists
// its existing id is returned.
func (a *Arena) AddNamespace(uri string) NamespaceID {
	return NamespaceID(a.namespaces.Intern(uri))
}

// Namespace looks up a namespace URI without interning it.
func (a *Arena) Namespace(uri string) (NamespaceID, bool) {
	id, ok := a.namespaces.Lookup(uri)
	return NamespaceID(id), ok
}

// AddPrefix interns a prefix. If the prefix already exists its existing
// id is returned; in particular "xml" always returns the reserved id.
func (a *Arena) AddPrefix(prefix string) PrefixID {
	return PrefixID(a.prefixes.Intern(prefix))
}

// Prefix looks up a prefix without interning it.
func (a *Arena) Prefix(prefix string) (PrefixID, bool) {
	id, ok := a.prefixes.Lookup(prefix)
	return PrefixID(id), ok
}

// NameStrings returns the local name and namespace URI for a name id.
// The namespace URI is the empty string for names without a namespace.
func (a *Arena) NameStrings(name NameID) (string, string) {
	key := a.names.Value(int32(name))
	return key.local, a.namespaces.Value(int32(key.namespace))
}

// LocalNameString returns the local part of a name id.
func (a *Arena) LocalNameString(name NameID) string {
	return a.names.Value(int32(name)).local
}

// NamespaceForName returns the namespace id a name id belongs to.
func (a *Arena) NamespaceForName(name NameID) NamespaceID {
	return a.names.Value(int32(name)).namespace
}

// NamespaceString returns the URI for a namespace id. The empty string
// indicates no namespace.
func (a *Arena) NamespaceString(ns NamespaceID) string {
	return a.namespaces.Value(int32(ns))
}

// PrefixString returns the string for a prefix id. The empty prefix
// yields the empty string.
func (a *Arena) PrefixString(prefix PrefixID) string {
	return a.prefixes.Value(int32(prefix))
}
