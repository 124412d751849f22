package xot

import (
	"io"
	"strings"
)

// outputToken is a rendered serialization token: the XML fragment text
// plus whether it needs a separating space before it.
type outputToken struct {
	space bool
	text  string
}

type xmlSerializer struct {
	arena     *Arena
	fullnames *fullnameStack
	params    *serializeParams
}

func (a *Arena) serializeXML(w io.Writer, node Node, params *serializeParams) error {
	s := &xmlSerializer{
		arena:     a,
		fullnames: newFullnameStack(a, a.baseScope(node)),
		params:    params,
	}
	if params.declaration {
		if _, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`); err != nil {
			return err
		}
		if params.pretty {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
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
		pretty := newPrettyPrinter(a, params.suppressFilter(), func(NameID) bool { return false })
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

func (p *serializeParams) suppressFilter() func(NameID) bool {
	suppress := p.suppress
	return func(name NameID) bool {
		for _, n := range suppress {
			if n == name {
				return true
			}
		}
		return false
	}
}

func writeToken(w io.Writer, token outputToken) error {
	if token.space {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, token.text)
	return err
}

func (s *xmlSerializer) renderOutput(node Node, out Output) (outputToken, error) {
	a := s.arena
	switch out.Kind {
	case OutputStartTagOpen:
		s.fullnames.push(a.NamespaceDeclarations(node))
		fullname, err := s.fullnames.elementFullname(out.Name)
		if err != nil {
			return outputToken{}, err
		}
		return outputToken{text: "<" + fullname}, nil
	case OutputStartTagClose:
		if out.SelfClosing {
			return outputToken{text: "/>"}, nil
		}
		return outputToken{text: ">"}, nil
	case OutputEndTag:
		token := outputToken{}
		if !a.FirstChild(node).IsZero() {
			fullname, err := s.fullnames.elementFullname(out.Name)
			if err != nil {
				return outputToken{}, err
			}
			token.text = "</" + fullname + ">"
		}
		s.fullnames.pop(a.HasNamespaceDeclarations(node))
		return token, nil
	case OutputNamespace:
		// the xml prefix is implicit and never written
		if out.Namespace == a.xmlNamespace {
			return outputToken{}, nil
		}
		uri := escapeAttribute(a.NamespaceString(out.Namespace))
		if out.Prefix == a.emptyPrefix {
			return outputToken{space: true, text: `xmlns="` + uri + `"`}, nil
		}
		return outputToken{space: true, text: "xmlns:" + a.PrefixString(out.Prefix) + `="` + uri + `"`}, nil
	case OutputAttribute:
		fullname, err := s.fullnames.attributeFullname(out.Name)
		if err != nil {
			return outputToken{}, err
		}
		value := escapeAttribute(s.params.normalizer.Normalize(out.Value))
		return outputToken{space: true, text: fullname + `="` + value + `"`}, nil
	case OutputText:
		text := s.params.normalizer.Normalize(out.Value)
		parent := a.Parent(node)
		if el := a.Element(parent); el != nil && s.params.isCDATAElement(el.Name()) {
			return outputToken{text: escapeCDATA(text)}, nil
		}
		return outputToken{text: escapeText(text, s.params.unescapeGT)}, nil
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
		// document start and end render nothing
		return outputToken{}, nil
	}
}
