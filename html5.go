package xot

import (
	"io"
	"strings"
)

type htmlSerializer struct {
	arena     *Arena
	fullnames *fullnameStack
	params    *serializeParams
	elements  *html5Elements
}

func (a *Arena) serializeHTML5(w io.Writer, node Node, params *serializeParams) error {
	s := &htmlSerializer{
		arena:     a,
		fullnames: newFullnameStack(a, a.baseScope(node)),
		params:    params,
		elements:  newHTML5Elements(a),
	}
	if params.doctype != nil {
		if err := writeDoctype(w, a.doctypeRootName(node), params.doctype); err != nil {
			return err
		}
		if params.pretty {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	if params.pretty {
		suppress := params.suppressFilter()
		isSuppressed := func(name NameID) bool {
			return suppress(name) || s.elements.isFormatted(name)
		}
		pretty := newPrettyPrinter(a, isSuppressed, s.elements.isPhrasing)
		for cur, out := range a.Outputs(node) {
			token, err := s.renderOutput(cur, out)
			if err != nil {
				return err
			}
			indentation, newline := pretty.prettify(cur, out)
			if indentation > 0 {
				if _, err := io.WriteString(w, strings.Repeat("  ", indentation)); err != nil {
					return err
				}
			}
			if err := writeToken(w, token); err != nil {
				return err
			}
			if newline {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for cur, out := range a.Outputs(node) {
		token, err := s.renderOutput(cur, out)
		if err != nil {
			return err
		}
		if err := writeToken(w, token); err != nil {
			return err
		}
	}
	return nil
}

func (s *htmlSerializer) renderOutput(node Node, out Output) (outputToken, error) {
	a := s.arena
	switch out.Kind {
	case OutputStartTagOpen:
		s.fullnames.push(a.NamespaceDeclarations(node))
		if ns := a.NamespaceForName(out.Name); s.elements.mustBeUnprefixed(ns) {
			s.fullnames.addEmptyPrefix(ns)
		}
		fullname, err := s.fullnames.elementFullname(out.Name)
		if err != nil {
			return outputToken{}, err
		}
		return outputToken{text: "<" + fullname}, nil
	case OutputStartTagClose:
		// HTML elements are never self-closed; only foreign content
		// may use the XML empty-element form
		if !s.elements.isHTMLName(out.Name) && out.SelfClosing {
			return outputToken{text: "/>"}, nil
		}
		return outputToken{text: ">"}, nil
	case OutputEndTag:
		token := outputToken{}
		switch {
		case s.elements.isVoid(out.Name):
			// void elements have no end tag
		case !s.elements.isHTMLName(out.Name) && a.FirstChild(node).IsZero():
			// already closed with />
		default:
			fullname, err := s.fullnames.elementFullname(out.Name)
			if err != nil {
				return outputToken{}, err
			}
			token.text = "</" + fullname + ">"
		}
		s.fullnames.pop(a.HasNamespaceDeclarations(node))
		return token, nil
	case OutputNamespace:
		if out.Namespace == a.xmlNamespace || s.elements.mustBeUnprefixed(out.Namespace) {
			return outputToken{}, nil
		}
		uri := escapeAttributeHTML(a.NamespaceString(out.Namespace))
		if out.Prefix == a.emptyPrefix {
			return outputToken{space: true, text: `xmlns="` + uri + `"`}, nil
		}
		return outputToken{space: true, text: "xmlns:" + a.PrefixString(out.Prefix) + `="` + uri + `"`}, nil
	case OutputAttribute:
		fullname, err := s.fullnames.attributeFullname(out.Name)
		if err != nil {
			return outputToken{}, err
		}
		value := s.params.normalizer.Normalize(out.Value)
		if value == "" {
			// boolean attributes are minimized
			return outputToken{space: true, text: fullname}, nil
		}
		return outputToken{space: true, text: fullname + `="` + escapeAttributeHTML(value) + `"`}, nil
	case OutputText:
		text := s.params.normalizer.Normalize(out.Value)
		parent := a.Parent(node)
		if el := a.Element(parent); el != nil {
			if s.elements.isNoEscape(el.Name()) {
				return outputToken{text: text}, nil
			}
			if s.params.isCDATAElement(el.Name()) {
				return outputToken{text: escapeCDATA(text)}, nil
			}
		}
		return outputToken{text: escapeTextHTML(text)}, nil
	case OutputComment:
		return outputToken{text: "<!--" + out.Value + "-->"}, nil
	case OutputProcessingInstruction:
		if a.NamespaceForName(out.Name) != a.noNamespace {
			return outputToken{}, ErrInvalidProcessingInstruction
		}
		target := a.LocalNameString(out.Name)
		if out.Value != "" {
			return outputToken{text: "<?" + target + " " + out.Value + "?>"}, nil
		}
		return outputToken{text: "<?" + target + "?>"}, nil
	default:
		return outputToken{}, nil
	}
}

func escapeTextHTML(s string) string {
	var b strings.Builder
	changed := false
	for _, c := range s {
		switch c {
		case '&':
			changed = true
			b.WriteString("&amp;")
		case '<':
			changed = true
			b.WriteString("&lt;")
		case '\u00a0':
			changed = true
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(c)
		}
	}
	if !changed {
		return s
	}
	return b.String()
}

func escapeAttributeHTML(s string) string {
	var b strings.Builder
	changed := false
	for _, c := range s {
		switch c {
		case '&':
			changed = true
			b.WriteString("&amp;")
		case '"':
			changed = true
			b.WriteString("&quot;")
		case '\'':
			changed = true
			b.WriteString("&apos;")
		case '\u00a0':
			changed = true
			b.WriteString("&nbsp;")
		default:
			b.WriteRune(c)
		}
	}
	if !changed {
		return s
	}
	return b.String()
}
