package xot

// NamespaceID identifies an interned namespace URI within a single Arena.
// Ids from one arena must not be used with another.
type NamespaceID int32

// PrefixID identifies an interned namespace prefix within a single Arena.
type PrefixID int32

// NameID identifies an interned (local name, namespace) pair within a
// single Arena.
type NameID int32

// XMLNamespaceURI is the namespace the reserved "xml" prefix is
// permanently bound to.
const XMLNamespaceURI = "http://www.w3.org/XML/1998/namespace"

// NodeType represents the type of a node in the XML tree
type NodeType int

const (
	DocumentNodeType NodeType = iota + 1
	ElementNodeType
	TextNodeType
	CommentNodeType
	ProcessingInstructionNodeType
	AttributeNodeType
	NamespaceNodeType
)

func (t NodeType) String() string {
	switch t {
	case DocumentNodeType:
		return "document"
	case ElementNodeType:
		return "element"
	case TextNodeType:
		return "text"
	case CommentNodeType:
		return "comment"
	case ProcessingInstructionNodeType:
		return "processing instruction"
	case AttributeNodeType:
		return "attribute"
	case NamespaceNodeType:
		return "namespace"
	default:
		return "unknown"
	}
}

// Node is a handle to a node owned by an Arena. It is a small copyable
// value: an index into the arena plus a generation tag. A handle stays
// valid across mutations until the node is explicitly removed; using a
// removed handle afterwards is a defined error, detected through the
// generation tag.
//
// The zero Node is not a valid handle. Navigation methods return the
// zero handle where no node exists.
type Node struct {
	index int32
	gen   uint32
}

// IsZero reports whether n is the zero handle.
func (n Node) IsZero() bool {
	return n.index == 0
}

// EdgeKind distinguishes the two events of an edge walk.
type EdgeKind int

const (
	// EdgeStart is emitted when the walk enters a node.
	EdgeStart EdgeKind = iota + 1
	// EdgeEnd is emitted when the walk leaves a node.
	EdgeEnd
)

// NodeEdge is a single event of the edge walk produced by Arena.Traverse:
// each node of the subtree produces an EdgeStart event, then the events
// of its children, then an EdgeEnd event.
type NodeEdge struct {
	Kind EdgeKind
	Node Node
}

// LevelOrder is an item of the breadth-first traversal produced by
// Arena.LevelOrder. End is true for the separator emitted after each run
// of nodes sharing a parent.
type LevelOrder struct {
	Node Node
	End  bool
}

// AxisKind selects an XPath axis for Arena.Axis.
type AxisKind int

const (
	AxisChild AxisKind = iota + 1
	AxisDescendant
	AxisParent
	AxisAncestor
	AxisFollowingSibling
	AxisPrecedingSibling
	AxisFollowing
	AxisPreceding
	AxisAttribute
	AxisNamespace
	AxisSelf
	AxisDescendantOrSelf
	AxisAncestorOrSelf
)
