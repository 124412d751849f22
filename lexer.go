package xot

import (
	"strings"

	"github.com/lestrrat-go/strcursor"
	"github.com/pkg/errors"
)

// The lexer tokenizes one XML document and reports events to a handler.
// It accepts UTF-8 and US-ASCII input only. DTD internal subsets are
// not modeled; a DOCTYPE declaration is tolerated and skipped.

type rawName struct {
	prefix string
	local  string
}

func (n rawName) String() string {
	if n.prefix == "" {
		return n.local
	}
	return n.prefix + ":" + n.local
}

type parsedAttribute struct {
	name  rawName
	value string
}

type parsedNamespace struct {
	prefix string
	uri    string
}

type parsedElement struct {
	name        rawName
	attributes  []parsedAttribute
	namespaces  []parsedNamespace
	selfClosing bool
	start       int
	end         int
}

type lexerHandler interface {
	StartDocument() error
	EndDocument() error
	StartElement(el *parsedElement) error
	EndElement(name rawName) error
	Text(s string, start, end int) error
	CDATA(s string, start, end int) error
	Comment(s string, start, end int) error
	ProcessingInstruction(target, data string, start, end int) error
}

type lexer struct {
	cursor  *strcursor.Cursor
	handler lexerHandler
}

func newLexer(data []byte, handler lexerHandler) *lexer {
	return &lexer{
		cursor:  strcursor.New(data),
		handler: handler,
	}
}

func (l *lexer) error(err error) error {
	if _, ok := err.(ErrParseError); ok {
		return err
	}
	return ErrParseError{
		Err:        err,
		Line:       l.cursor.CurrentLine(),
		LineNumber: l.cursor.LineNumber(),
		Column:     l.cursor.Column(),
		Offset:     l.cursor.OffsetBytes(),
	}
}

func (l *lexer) done() bool {
	return l.cursor.Done()
}

func (l *lexer) peek() rune {
	return l.cursor.Peek(1)
}

func (l *lexer) advance(n int) {
	l.cursor.Advance(n)
}

func (l *lexer) hasPrefix(s string) bool {
	return l.cursor.HasPrefix(s)
}

func (l *lexer) consumePrefix(s string) bool {
	return l.cursor.ConsumePrefix(s)
}

func (l *lexer) offset() int {
	return l.cursor.OffsetBytes()
}

func isBlankCh(c rune) bool {
	return c == 0x20 || (0x9 <= c && c <= 0xa) || c == 0xd
}

func isNameStartChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case c >= 0xC0 && c != 0xD7 && c != 0xF7:
		return true
	}
	return false
}

func isNameChar(c rune) bool {
	if isNameStartChar(c) {
		return true
	}
	switch {
	case c >= '0' && c <= '9', c == '-', c == '.', c == 0xB7:
		return true
	}
	return false
}

func (l *lexer) skipBlanks() {
	for !l.done() && isBlankCh(l.peek()) {
		l.advance(1)
	}
}

// parseName consumes a single XML name.
func (l *lexer) parseName() (string, error) {
	if l.done() || !isNameStartChar(l.peek()) {
		return "", errors.New("expected name")
	}
	var b strings.Builder
	for !l.done() && isNameChar(l.peek()) {
		b.WriteRune(l.peek())
		l.advance(1)
	}
	return b.String(), nil
}

// parseQName consumes a possibly prefixed name. A single colon
// separates the prefix from the local name.
func (l *lexer) parseQName() (rawName, error) {
	first, err := l.parseName()
	if err != nil {
		return rawName{}, err
	}
	if l.done() || l.peek() != ':' {
		return rawName{local: first}, nil
	}
	l.advance(1)
	local, err := l.parseName()
	if err != nil {
		return rawName{}, err
	}
	return rawName{prefix: first, local: local}, nil
}

// consumeUntil consumes everything up to (but not including) the given
// marker and advances past the marker.
func (l *lexer) consumeUntil(marker string) (string, error) {
	var b strings.Builder
	for !l.done() {
		if l.hasPrefix(marker) {
			l.advance(len(marker))
			return b.String(), nil
		}
		b.WriteRune(l.peek())
		l.advance(1)
	}
	return "", errors.Errorf("unexpected end of input, looking for '%s'", marker)
}

func (l *lexer) run() error {
	if err := l.handler.StartDocument(); err != nil {
		return l.error(err)
	}
	// "<?xml" must be followed by whitespace to be the declaration;
	// "<?xml-stylesheet" is an ordinary processing instruction
	if l.hasPrefix("<?xml") && isBlankCh(l.cursor.Peek(6)) {
		if err := l.parseXMLDecl(); err != nil {
			return l.error(err)
		}
	}
	if err := l.parseMisc(); err != nil {
		return l.error(err)
	}
	if l.done() || l.peek() != '<' {
		return l.error(errors.New("no document element"))
	}
	if err := l.parseElement(); err != nil {
		return l.error(err)
	}
	if err := l.parseMisc(); err != nil {
		return l.error(err)
	}
	if !l.done() {
		return l.error(errors.New("content after document element"))
	}
	if err := l.handler.EndDocument(); err != nil {
		return l.error(err)
	}
	return nil
}

// parseXMLDecl consumes the XML declaration, verifying that the
// declared encoding is one we support.
func (l *lexer) parseXMLDecl() error {
	decl, err := l.consumeUntil("?>")
	if err != nil {
		return err
	}
	lower := strings.ToLower(decl)
	i := strings.Index(lower, "encoding")
	if i < 0 {
		return nil
	}
	rest := lower[i+len("encoding"):]
	rest = strings.TrimLeft(rest, " \t\r\n=")
	if len(rest) == 0 {
		return errors.New("malformed encoding declaration")
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return errors.New("malformed encoding declaration")
	}
	end := strings.IndexByte(rest[1:], quote)
	if end < 0 {
		return errors.New("malformed encoding declaration")
	}
	switch rest[1 : 1+end] {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return nil
	default:
		return ErrUnsupportedEncoding
	}
}

// parseMisc consumes whitespace, comments, processing instructions and
// a DOCTYPE declaration outside the document element.
func (l *lexer) parseMisc() error {
	for {
		l.skipBlanks()
		switch {
		case l.hasPrefix("<!--"):
			if err := l.parseComment(); err != nil {
				return err
			}
		case l.hasPrefix("<!DOCTYPE"):
			if err := l.skipDoctype(); err != nil {
				return err
			}
		case l.hasPrefix("<?"):
			if err := l.parsePI(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// skipDoctype discards a DOCTYPE declaration, including an internal
// subset. DTDs are not modeled.
func (l *lexer) skipDoctype() error {
	l.advance(len("<!DOCTYPE"))
	depth := 1
	for !l.done() {
		switch l.peek() {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				l.advance(1)
				return nil
			}
		}
		l.advance(1)
	}
	return errors.New("unterminated DOCTYPE declaration")
}

func (l *lexer) parseComment() error {
	start := l.offset()
	l.advance(len("<!--"))
	content, err := l.consumeUntil("-->")
	if err != nil {
		return err
	}
	if err := validateComment(content); err != nil {
		return err
	}
	return l.handler.Comment(content, start, l.offset())
}

func (l *lexer) parsePI() error {
	start := l.offset()
	l.advance(len("<?"))
	target, err := l.parseName()
	if err != nil {
		return err
	}
	if err := validatePITarget(target); err != nil {
		return err
	}
	l.skipBlanks()
	data, err := l.consumeUntil("?>")
	if err != nil {
		return err
	}
	return l.handler.ProcessingInstruction(target, data, start, l.offset())
}

func (l *lexer) parseCDATA() error {
	start := l.offset()
	l.advance(len("<![CDATA["))
	content, err := l.consumeUntil("]]>")
	if err != nil {
		return err
	}
	// CDATA content is taken verbatim, no entity interpretation
	return l.handler.CDATA(content, start, l.offset())
}

func (l *lexer) parseElement() error {
	start := l.offset()
	l.advance(1) // '<'
	name, err := l.parseQName()
	if err != nil {
		return err
	}
	el := &parsedElement{name: name, start: start}
	for {
		l.skipBlanks()
		if l.done() {
			return errors.New("unterminated start tag")
		}
		if l.consumePrefix("/>") {
			el.selfClosing = true
			break
		}
		if l.consumePrefix(">") {
			break
		}
		if err := l.parseAttribute(el); err != nil {
			return err
		}
	}
	el.end = l.offset()
	if err := l.handler.StartElement(el); err != nil {
		return err
	}
	if !el.selfClosing {
		if err := l.parseContent(); err != nil {
			return err
		}
		if !l.consumePrefix("</") {
			return errors.Errorf("unterminated element '%s'", name)
		}
		closing, err := l.parseQName()
		if err != nil {
			return err
		}
		if closing != name {
			return errors.Errorf("mismatched end tag: expected '%s', got '%s'", name, closing)
		}
		l.skipBlanks()
		if !l.consumePrefix(">") {
			return errors.New("malformed end tag")
		}
	}
	return l.handler.EndElement(name)
}

func (l *lexer) parseAttribute(el *parsedElement) error {
	name, err := l.parseQName()
	if err != nil {
		return err
	}
	l.skipBlanks()
	if !l.consumePrefix("=") {
		return errors.Errorf("expected '=' after attribute '%s'", name)
	}
	l.skipBlanks()
	if l.done() {
		return errors.New("unterminated attribute")
	}
	quote := l.peek()
	if quote != '"' && quote != '\'' {
		return errors.New("attribute value must be quoted")
	}
	l.advance(1)
	raw, err := l.consumeUntil(string(quote))
	if err != nil {
		return err
	}
	value, err := parseEntities(raw)
	if err != nil {
		return err
	}
	switch {
	case name.prefix == "xmlns":
		el.namespaces = append(el.namespaces, parsedNamespace{prefix: name.local, uri: value})
	case name.prefix == "" && name.local == "xmlns":
		el.namespaces = append(el.namespaces, parsedNamespace{prefix: "", uri: value})
	default:
		el.attributes = append(el.attributes, parsedAttribute{name: name, value: value})
	}
	return nil
}

func (l *lexer) parseContent() error {
	for !l.done() {
		switch {
		case l.hasPrefix("</"):
			return nil
		case l.hasPrefix("<!--"):
			if err := l.parseComment(); err != nil {
				return err
			}
		case l.hasPrefix("<![CDATA["):
			if err := l.parseCDATA(); err != nil {
				return err
			}
		case l.hasPrefix("<?"):
			if err := l.parsePI(); err != nil {
				return err
			}
		case l.peek() == '<':
			if err := l.parseElement(); err != nil {
				return err
			}
		default:
			if err := l.parseText(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *lexer) parseText() error {
	start := l.offset()
	var b strings.Builder
	for !l.done() && l.peek() != '<' {
		b.WriteRune(l.peek())
		l.advance(1)
	}
	text, err := parseEntities(b.String())
	if err != nil {
		return err
	}
	return l.handler.Text(text, start, l.offset())
}
