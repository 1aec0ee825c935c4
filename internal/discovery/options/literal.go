package options

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseLiteral parses a JS-flavored literal into plain Go values without
// executing any code. The accepted grammar is a JSON-compatible subset
// extended with single-quoted strings, unquoted identifier keys and trailing
// commas, which covers what authors actually write in meta tags and option
// objects ("['firefox']", "{type: 'module'}").
//
// Objects decode to map[string]any, arrays to []any, numbers to float64.
func ParseLiteral(input string) (any, error) {
	p := &literalParser{src: input}
	p.skipSpace()
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected trailing input")
	}
	return v, nil
}

type literalParser struct {
	src string
	pos int
}

func (p *literalParser) errorf(format string, args ...any) error {
	return fmt.Errorf("invalid literal at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *literalParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *literalParser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *literalParser) value() (any, error) {
	c, ok := p.peek()
	if !ok {
		return nil, p.errorf("unexpected end of input")
	}
	switch {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"' || c == '\'':
		return p.quoted(c)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.number()
	default:
		return p.keyword()
	}
}

func (p *literalParser) object() (map[string]any, error) {
	p.pos++ // consume {
	obj := make(map[string]any)
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated object")
		}
		if c == '}' {
			p.pos++
			return obj, nil
		}

		key, err := p.objectKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return nil, p.errorf("expected ':' after object key %q", key)
		}
		p.pos++
		p.skipSpace()
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj[key] = v

		p.skipSpace()
		switch c, ok := p.peek(); {
		case !ok:
			return nil, p.errorf("unterminated object")
		case c == ',':
			p.pos++
		case c == '}':
		default:
			return nil, p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *literalParser) objectKey() (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", p.errorf("unexpected end of object")
	}
	if c == '"' || c == '\'' {
		return p.quoted(c)
	}
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", p.errorf("expected object key")
	}
	return p.src[start:p.pos], nil
}

func (p *literalParser) array() ([]any, error) {
	p.pos++ // consume [
	arr := []any{}
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return nil, p.errorf("unterminated array")
		}
		if c == ']' {
			p.pos++
			return arr, nil
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)

		p.skipSpace()
		switch c, ok := p.peek(); {
		case !ok:
			return nil, p.errorf("unterminated array")
		case c == ',':
			p.pos++
		case c == ']':
		default:
			return nil, p.errorf("expected ',' or ']' in array")
		}
	}
}

func (p *literalParser) quoted(quote byte) (string, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.pos >= len(p.src) {
				return "", p.errorf("unterminated escape")
			}
			esc := p.src[p.pos]
			switch esc {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\', '\'', '"', '/':
				b.WriteByte(esc)
			default:
				return "", p.errorf("unsupported escape \\%c", esc)
			}
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string")
}

func (p *literalParser) number() (float64, error) {
	start := p.pos
	if c, _ := p.peek(); c == '-' {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			p.pos++
			continue
		}
		break
	}
	n, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("malformed number %q", p.src[start:p.pos])
	}
	return n, nil
}

func (p *literalParser) keyword() (any, error) {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	switch word := p.src[start:p.pos]; word {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "undefined":
		return nil, nil
	default:
		return nil, p.errorf("unexpected token %q", word)
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
