package rangetype

import (
	"fmt"
	"strings"
)

type parseState int

const (
	stateInit parseState = iota
	stateLower
	stateUpper
	stateDone
)

// endpoint is the raw text of one side of a range literal.
type endpoint struct {
	text   string
	quoted bool
}

// literal is the result of scanning a range literal before any value is
// parsed by the subtype.
type literal struct {
	empty    bool
	lowerInc bool
	upperInc bool
	lower    endpoint
	upper    endpoint
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func malformed(s, format string, args ...any) error {
	return fmt.Errorf("%w: %q: %s", ErrMalformed, s, fmt.Sprintf(format, args...))
}

// scan splits a range literal into its brackets and endpoint texts.
func scan(s string) (*literal, error) {
	lit := &literal{}
	state := stateInit

	var (
		buf     strings.Builder
		pending strings.Builder
		content bool
		quoted  bool
		inQuote bool
	)
	finish := func() endpoint {
		ep := endpoint{text: buf.String(), quoted: quoted}
		buf.Reset()
		pending.Reset()
		content, quoted = false, false
		return ep
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case stateInit:
			switch {
			case isSpace(c):
			case c == '-':
				if strings.TrimSpace(s[i+1:]) != "" {
					return nil, malformed(s, "junk after empty range marker")
				}
				lit.empty = true
				return lit, nil
			case c == '[' || c == '(':
				lit.lowerInc = c == '['
				state = stateLower
			default:
				return nil, malformed(s, "missing left parenthesis or bracket")
			}

		case stateLower, stateUpper:
			if inQuote {
				switch c {
				case '\\':
					if i+1 >= len(s) {
						return nil, malformed(s, "unexpected end of input after escape")
					}
					i++
					buf.WriteByte(s[i])
				case '"':
					inQuote = false
				default:
					buf.WriteByte(c)
				}
				continue
			}
			switch {
			case c == '"':
				buf.WriteString(pending.String())
				pending.Reset()
				inQuote, quoted, content = true, true, true
			case c == '\\':
				if i+1 >= len(s) {
					return nil, malformed(s, "unexpected end of input after escape")
				}
				buf.WriteString(pending.String())
				pending.Reset()
				i++
				buf.WriteByte(s[i])
				quoted, content = true, true
			case c == ',' && state == stateLower:
				lit.lower = finish()
				state = stateUpper
			case (c == ']' || c == ')') && state == stateUpper:
				lit.upperInc = c == ']'
				lit.upper = finish()
				state = stateDone
			case c == ',' || c == '[' || c == ']' || c == '(' || c == ')':
				return nil, malformed(s, "unexpected %q at offset %d", c, i)
			case isSpace(c):
				if content {
					pending.WriteByte(c)
				}
			default:
				buf.WriteString(pending.String())
				pending.Reset()
				buf.WriteByte(c)
				content = true
			}

		case stateDone:
			if !isSpace(c) {
				return nil, malformed(s, "junk after right parenthesis or bracket")
			}
		}
	}

	switch {
	case inQuote:
		return nil, malformed(s, "unterminated quoted string")
	case state == stateInit:
		return nil, malformed(s, "missing left parenthesis or bracket")
	case state == stateLower:
		return nil, malformed(s, "too few columns")
	case state == stateUpper:
		return nil, malformed(s, "missing right parenthesis or bracket")
	}
	return lit, nil
}

// Parse reads the text form of a range: "-" for the empty range, otherwise a
// bracketed pair such as "[1,5)" or "(-INF,\"a,b\"]".
func (t *Type[T]) Parse(s string) (Range[T], error) {
	lit, err := scan(s)
	if err != nil {
		return Range[T]{}, err
	}
	if lit.empty {
		return t.Empty(), nil
	}
	lower, err := t.parseBound(s, lit.lower, true, lit.lowerInc)
	if err != nil {
		return Range[T]{}, err
	}
	upper, err := t.parseBound(s, lit.upper, false, lit.upperInc)
	if err != nil {
		return Range[T]{}, err
	}
	return t.Make(lower, upper)
}

func (t *Type[T]) parseBound(s string, ep endpoint, lower, inclusive bool) (Bound[T], error) {
	if !ep.quoted {
		switch {
		case ep.text == "":
			return Bound[T]{}, malformed(s, "empty bound")
		case strings.EqualFold(ep.text, "NULL"):
			return Bound[T]{}, fmt.Errorf("%w: %q: %w", ErrMalformed, s, ErrNullBound)
		case lower && strings.EqualFold(ep.text, "-INF"):
			return NegInf[T](), nil
		case !lower && strings.EqualFold(ep.text, "INF"):
			return PosInf[T](), nil
		}
	}
	v, err := t.st.Parse(ep.text)
	if err != nil {
		return Bound[T]{}, fmt.Errorf("%w: %q: %w", ErrMalformed, s, err)
	}
	if lower {
		return LowerBound(v, inclusive), nil
	}
	return UpperBound(v, inclusive), nil
}

// Format renders r in the form read by Parse.
func (t *Type[T]) Format(r Range[T]) string {
	if r.empty {
		return "-"
	}
	var sb strings.Builder
	if r.lower.Inclusive {
		sb.WriteByte('[')
	} else {
		sb.WriteByte('(')
	}
	if r.lower.Infinite {
		sb.WriteString("-INF")
	} else {
		writeValue(&sb, t.st.Format(r.lower.Value))
	}
	sb.WriteByte(',')
	if r.upper.Infinite {
		sb.WriteString("INF")
	} else {
		writeValue(&sb, t.st.Format(r.upper.Value))
	}
	if r.upper.Inclusive {
		sb.WriteByte(']')
	} else {
		sb.WriteByte(')')
	}
	return sb.String()
}

func needsQuote(v string) bool {
	if v == "" ||
		strings.EqualFold(v, "INF") ||
		strings.EqualFold(v, "-INF") ||
		strings.EqualFold(v, "NULL") {
		return true
	}
	for i := 0; i < len(v); i++ {
		switch c := v[i]; c {
		case '"', '\\', ',', '(', ')', '[', ']':
			return true
		default:
			if isSpace(c) {
				return true
			}
		}
	}
	return false
}

func writeValue(sb *strings.Builder, v string) {
	if !needsQuote(v) {
		sb.WriteString(v)
		return
	}
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(v[i])
	}
	sb.WriteByte('"')
}
