// Package xot provides an in-memory, mutable XML object tree: one arena
// owns any number of XML documents and fragments, which can be
// navigated, edited, compared, cloned, and serialized back to XML or
// HTML5. Names, prefixes and namespace URIs are interned into dense
// integer ids, and attributes and namespace declarations are first-class
// nodes with handles of their own.
package xot

import (
	"github.com/lestrrat-go/xot/internal/idmap"
)

type nameKey struct {
	local     string
	namespace NamespaceID
}

// Arena owns all nodes of all trees, along with the interning tables
// for names, prefixes and namespaces. All operations on nodes go
// through the arena. An Arena may be moved between goroutines but not
// shared without external synchronization.
type Arena struct {
	slots []slot
	free  []int32

	namespaces *idmap.Map[string]
	prefixes   *idmap.Map[string]
	names      *idmap.Map[nameKey]

	noNamespace  NamespaceID
	xmlNamespace NamespaceID
	emptyPrefix  PrefixID
	xmlPrefix    PrefixID
	xmlSpace     NameID
	xmlID        NameID

	textConsolidation bool
}

// New creates an empty Arena. The reserved ids (no namespace, the xml
// namespace, the empty prefix and the xml prefix) are interned up front
// so they are identical across arenas.
func New() *Arena {
	a := &Arena{
		// slot 0 is reserved so that the zero Node is never a valid handle
		slots:             make([]slot, 1),
		namespaces:        idmap.New[string](),
		prefixes:          idmap.New[string](),
		names:             idmap.New[nameKey](),
		textConsolidation: true,
	}
	a.noNamespace = NamespaceID(a.namespaces.Intern(""))
	a.xmlNamespace = NamespaceID(a.namespaces.Intern(XMLNamespaceURI))
	a.emptyPrefix = PrefixID(a.prefixes.Intern(""))
	a.xmlPrefix = PrefixID(a.prefixes.Intern("xml"))
	a.xmlSpace = a.AddNameNS("space", a.xmlNamespace)
	a.xmlID = a.AddNameNS("id", a.xmlNamespace)
	return a
}

// NoNamespace returns the reserved id for the absence of a namespace.
func (a *Arena) NoNamespace() NamespaceID {
	return a.noNamespace
}

// XMLNamespace returns the reserved id of the xml namespace.
func (a *Arena) XMLNamespace() NamespaceID {
	return a.xmlNamespace
}

// EmptyPrefix returns the reserved id of the empty prefix, used for
// default namespace declarations.
func (a *Arena) EmptyPrefix() PrefixID {
	return a.emptyPrefix
}

// XMLPrefix returns the reserved id of the "xml" prefix. It is always
// in scope, bound to the xml namespace, and may not be rebound.
func (a *Arena) XMLPrefix() PrefixID {
	return a.xmlPrefix
}

// XMLSpaceName returns the interned id of the xml:space attribute name.
func (a *Arena) XMLSpaceName() NameID {
	return a.xmlSpace
}

// XMLIDName returns the interned id of the xml:id attribute name.
func (a *Arena) XMLIDName() NameID {
	return a.xmlID
}

// SetTextConsolidation enables or disables automatic merging of
// adjacent text siblings. It is enabled by default. While disabled, the
// editor never merges text nodes and adjacent text siblings are
// permitted.
func (a *Arena) SetTextConsolidation(enabled bool) {
	a.textConsolidation = enabled
}

// TextConsolidation reports whether text consolidation is enabled.
func (a *Arena) TextConsolidation() bool {
	return a.textConsolidation
}
