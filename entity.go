package xot

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// escapeText escapes text content. The characters '<' and '&' are
// always escaped, and the sequence "]]>" is always rendered as
// "]]&gt;". By default '>' is escaped everywhere; with unescapeGT only
// the '>' closing a "]]>" sequence is escaped.
func escapeText(s string, unescapeGT bool) string {
	if !strings.ContainsAny(s, "<&>") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			b.WriteString("&lt;")
		case '&':
			b.WriteString("&amp;")
		case '>':
			if !unescapeGT || (i >= 2 && s[i-1] == ']' && s[i-2] == ']') {
				b.WriteString("&gt;")
			} else {
				b.WriteByte('>')
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// escapeAttribute escapes an attribute value for use inside a
// double-quoted attribute.
func escapeAttribute(s string) string {
	if !strings.ContainsAny(s, `<&"'`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			b.WriteString("&lt;")
		case '&':
			b.WriteString("&amp;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// escapeCDATA renders text as one or more CDATA sections. A literal
// "]]>" cannot appear inside a section, so it is split across two.
func escapeCDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// parseEntities expands the predefined entities and character
// references in raw text or attribute content.
func parseEntities(s string) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '&')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return "", errors.Errorf(`unclosed entity '&%s'`, s)
		}
		entity := s[:end]
		s = s[end+1:]
		switch entity {
		case "amp":
			b.WriteByte('&')
		case "apos":
			b.WriteByte('\'')
		case "gt":
			b.WriteByte('>')
		case "lt":
			b.WriteByte('<')
		case "quot":
			b.WriteByte('"')
		default:
			r, err := parseCharRef(entity)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		}
	}
}

func parseCharRef(entity string) (rune, error) {
	if !strings.HasPrefix(entity, "#") {
		return 0, errors.Errorf(`invalid entity '&%s;'`, entity)
	}
	digits := entity[1:]
	base := 10
	if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
		digits = digits[1:]
		base = 16
	}
	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, errors.Errorf(`invalid character reference '&%s;'`, entity)
	}
	return rune(v), nil
}
