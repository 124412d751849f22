package xot

// The pretty printer tracks nesting while the token stream is rendered
// and decides, per token, the indentation level and whether a newline
// follows. Elements with inline or text children count as mixed
// content: nothing inside them is reformatted. xml:space="preserve"
// keeps whitespace for the elements it covers until a nested
// xml:space="default" switches it back.

type prettySpace int

const (
	spaceEmpty prettySpace = iota
	spaceDefault
	spacePreserve
)

type prettyEntry struct {
	mixed bool
	space prettySpace
}

type prettyPrinter struct {
	arena        *Arena
	isSuppressed func(NameID) bool
	isInline     func(NameID) bool
	stack        []prettyEntry
}

func newPrettyPrinter(a *Arena, isSuppressed, isInline func(NameID) bool) *prettyPrinter {
	return &prettyPrinter{
		arena:        a,
		isSuppressed: isSuppressed,
		isInline:     isInline,
	}
}

func (p *prettyPrinter) inMixed() bool {
	for _, e := range p.stack {
		if e.mixed {
			return true
		}
	}
	return false
}

func (p *prettyPrinter) inSpacePreserve() bool {
	for i := len(p.stack) - 1; i >= 0; i-- {
		e := p.stack[i]
		if e.mixed {
			return false
		}
		switch e.space {
		case spacePreserve:
			return true
		case spaceDefault:
			return false
		}
	}
	return false
}

func (p *prettyPrinter) indentation() int {
	if p.inMixed() {
		return 0
	}
	count := 0
	inPreserve := false
	for _, e := range p.stack {
		if e.mixed {
			continue
		}
		switch e.space {
		case spaceDefault:
			inPreserve = false
			count++
		case spacePreserve:
			inPreserve = true
		case spaceEmpty:
			if !inPreserve {
				count++
			}
		}
	}
	return count
}

func (p *prettyPrinter) newline() bool {
	return !p.inMixed() && !p.inSpacePreserve()
}

func (p *prettyPrinter) hasInlineChild(n Node) bool {
	a := p.arena
	for c := range a.Children(n) {
		if a.IsText(c) {
			return true
		}
		if el := a.Element(c); el != nil && p.isInline(el.Name()) {
			return true
		}
	}
	return false
}

func (p *prettyPrinter) elementSpace(n Node) prettySpace {
	v, ok := p.arena.AttributeValue(n, p.arena.xmlSpace)
	if !ok {
		return spaceEmpty
	}
	switch v {
	case "preserve":
		return spacePreserve
	case "default":
		return spaceDefault
	default:
		return spaceEmpty
	}
}

func (p *prettyPrinter) prettify(node Node, out Output) (int, bool) {
	a := p.arena
	switch out.Kind {
	case OutputStartTagOpen:
		return p.indentation(), false
	case OutputComment, OutputProcessingInstruction:
		return p.indentation(), p.newline()
	case OutputStartTagClose:
		if a.FirstChild(node).IsZero() {
			return 0, false
		}
		if p.hasInlineChild(node) {
			p.stack = append(p.stack, prettyEntry{mixed: true})
			return 0, false
		}
		suppressed := false
		if el := a.Element(node); el != nil {
			suppressed = p.isSuppressed(el.Name())
		}
		if suppressed {
			// suppressed content behaves like mixed content: nothing
			// below gets indented
			p.stack = append(p.stack, prettyEntry{mixed: true})
		} else {
			p.stack = append(p.stack, prettyEntry{space: p.elementSpace(node)})
		}
		return 0, p.newline()
	case OutputEndTag:
		indentation := 0
		if !a.FirstChild(node).IsZero() {
			noIndentation := p.inMixed()
			p.stack = p.stack[:len(p.stack)-1]
			if !noIndentation {
				indentation = p.indentation()
			}
		}
		return indentation, p.newline()
	default:
		return 0, false
	}
}
