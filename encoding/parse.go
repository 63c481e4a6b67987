package encoding

import (
	"fmt"
	"strings"
)

const qualifiers = "rnNoORVA"

// maxNumber bounds lengths, widths and offsets in an encoding.
const maxNumber = 1<<31 - 1

type parser struct {
	s   string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("encoding: %q at %d: %s", p.s, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) eof() bool { return p.pos >= len(p.s) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) number() (int, bool) {
	start := p.pos
	n := 0
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		d := int(p.s[p.pos] - '0')
		if n > (maxNumber-d)/10 {
			p.pos = start
			return 0, false
		}
		n = n*10 + d
		p.pos++
	}
	if p.pos == start || (p.pos == start+1 && p.s[start] == '-') {
		p.pos = start
		return 0, false
	}
	if p.s[start] == '-' {
		n = -n
	}
	return n, true
}

// skipBlockSignature skips a <...> block signature, which may itself
// contain block signatures.
func (p *parser) skipBlockSignature() error {
	depth := 0
	for ; !p.eof(); p.pos++ {
		switch p.s[p.pos] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
	}
	return p.errorf("unterminated block signature")
}

func (p *parser) quoted() (string, error) {
	// caller checked the opening quote
	p.pos++
	end := strings.IndexByte(p.s[p.pos:], '"')
	if end < 0 {
		return "", p.errorf("unterminated name")
	}
	name := p.s[p.pos : p.pos+end]
	p.pos += end + 1
	return name, nil
}

func (p *parser) typ() (Type, error) {
	var t Type
	for !p.eof() && strings.IndexByte(qualifiers, p.peek()) >= 0 {
		t.Qualifiers += string(p.peek())
		p.pos++
	}
	if p.eof() {
		return t, p.errorf("missing type")
	}
	t.Code = p.s[p.pos]
	p.pos++
	switch t.Code {
	case 'c', 'C', 's', 'S', 'i', 'I', 'l', 'L', 'q', 'Q', 'f', 'd', 'D', 'B', 'v',
		'*', '#', ':', '?', 't', 'T':
	case '@':
		switch p.peek() {
		case '?':
			p.pos++
			t.Name = "?"
			// block signatures may follow in angle brackets
			if p.peek() == '<' {
				if err := p.skipBlockSignature(); err != nil {
					return t, err
				}
			}
		case '"':
			name, err := p.quoted()
			if err != nil {
				return t, err
			}
			t.Name = name
		}
	case '^':
		elem, err := p.typ()
		if err != nil {
			return t, err
		}
		t.Elem = &elem
	case 'b':
		n, ok := p.number()
		if !ok || n < 0 {
			return t, p.errorf("invalid bitfield width")
		}
		t.Len = n
	case '[':
		n, ok := p.number()
		if !ok || n < 0 {
			return t, p.errorf("invalid array length")
		}
		t.Len = n
		elem, err := p.typ()
		if err != nil {
			return t, err
		}
		t.Elem = &elem
		if p.peek() != ']' {
			return t, p.errorf("expected ']'")
		}
		p.pos++
	case '{', '(':
		closer := byte('}')
		if t.Code == '(' {
			closer = ')'
		}
		start := p.pos
		for !p.eof() && p.peek() != '=' && p.peek() != closer {
			p.pos++
		}
		t.Name = p.s[start:p.pos]
		if p.eof() {
			return t, p.errorf("unterminated aggregate")
		}
		if p.peek() == '=' {
			p.pos++
			t.Fields = []Field{}
			for p.peek() != closer {
				if p.eof() {
					return t, p.errorf("unterminated aggregate")
				}
				var f Field
				if p.peek() == '"' {
					name, err := p.quoted()
					if err != nil {
						return t, err
					}
					f.Name = name
				}
				ft, err := p.typ()
				if err != nil {
					return t, err
				}
				f.Type = ft
				t.Fields = append(t.Fields, f)
			}
		}
		p.pos++
	default:
		p.pos--
		return t, p.errorf("unknown type code %q", t.Code)
	}
	return t, nil
}

// Parse reads every type in s. Stack offsets after each type, as found in
// method encodings, are skipped.
func Parse(s string) ([]Type, error) {
	p := &parser{s: s}
	var types []Type
	for !p.eof() {
		t, err := p.typ()
		if err != nil {
			return nil, err
		}
		p.number()
		types = append(types, t)
	}
	return types, nil
}

// ParseOne reads a single type and rejects trailing input.
func ParseOne(s string) (Type, error) {
	p := &parser{s: s}
	t, err := p.typ()
	if err != nil {
		return Type{}, err
	}
	if !p.eof() {
		return Type{}, p.errorf("trailing input")
	}
	return t, nil
}

// Signature is a parsed method type encoding.
type Signature struct {
	Return Type
	// Args includes the receiver and the selector.
	Args []Type
}

func ParseSignature(s string) (Signature, error) {
	types, err := Parse(s)
	if err != nil {
		return Signature{}, err
	}
	if len(types) < 3 {
		return Signature{}, fmt.Errorf("encoding: %q: method needs a receiver and a selector", s)
	}
	return Signature{Return: types[0], Args: types[1:]}, nil
}

func (s Signature) String() string {
	var b strings.Builder
	s.Return.encode(&b)
	for _, a := range s.Args {
		a.encode(&b)
	}
	return b.String()
}
