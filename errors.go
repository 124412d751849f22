package xot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOperation is returned when a structural edit would break
	// a tree invariant, such as adding a second document element or
	// rebinding the xml prefix.
	ErrInvalidOperation = errors.New("operation cannot be performed")

	// ErrStaleHandle is returned when a handle refers to a node that has
	// been removed from the arena.
	ErrStaleHandle = errors.New("stale node handle")

	// ErrWouldCycle is returned when an attach operation would make a
	// node its own ancestor.
	ErrWouldCycle = errors.New("operation would create a cycle")

	// ErrNotElement is returned by operations that require an element node.
	ErrNotElement = errors.New("not an element node")

	// ErrNotText is returned by operations that require a text node.
	ErrNotText = errors.New("not a text node")

	// ErrNotDocument is returned by operations that require a document node.
	ErrNotDocument = errors.New("not a document node")

	// ErrUnsupportedEncoding is returned by the parser for input that is
	// not UTF-8 or US-ASCII.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrInvalidComment is returned for comment content containing "--"
	// or ending with "-".
	ErrInvalidComment = errors.New("invalid comment content")

	// ErrInvalidProcessingInstruction is returned for a processing
	// instruction whose target is empty, namespaced, or "xml" in any case
	// variation.
	ErrInvalidProcessingInstruction = errors.New("invalid processing instruction")
)

// ErrWrongNodeKind is returned by typed accessors used on a node of a
// different kind.
type ErrWrongNodeKind struct {
	Expected NodeType
	Actual   NodeType
}

func (e ErrWrongNodeKind) Error() string {
	return fmt.Sprintf("expected %s node, got %s node", e.Expected, e.Actual)
}

// ErrUnknownPrefix is returned when a qualified name uses a prefix with
// no in-scope declaration.
type ErrUnknownPrefix struct {
	Prefix string
}

func (e ErrUnknownPrefix) Error() string {
	return "unknown prefix '" + e.Prefix + "'"
}

// ErrMissingPrefix is returned by the serializer when a name is in a
// namespace that has no in-scope prefix. Call CreateMissingPrefixes
// before serializing to avoid it.
type ErrMissingPrefix struct {
	Namespace string
}

func (e ErrMissingPrefix) Error() string {
	return "missing prefix for namespace '" + e.Namespace + "'"
}

// ErrDuplicateAttribute is returned when two attributes with the same
// name appear on one element.
type ErrDuplicateAttribute struct {
	Name string
}

func (e ErrDuplicateAttribute) Error() string {
	return "duplicate attribute '" + e.Name + "'"
}

// ErrParseError wraps an error from the lexer with positional
// information about where in the input it occurred.
type ErrParseError struct {
	Err        error
	Line       string
	LineNumber int
	Column     int
	Offset     int
}

func (e ErrParseError) Error() string {
	return fmt.Sprintf(
		"%s at line %d, column %d\n -> '%s' <-- around here",
		e.Err,
		e.LineNumber,
		e.Column,
		e.Line,
	)
}

func (e ErrParseError) Unwrap() error {
	return e.Err
}
