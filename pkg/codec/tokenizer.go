package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// SyntaxError describes malformed document text. Line and Column locate
// the last character read, both counted from 1.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

type mark struct {
	pos  int
	line int
	col  int
}

// Tokenizer reads JSON text one character at a time.
type Tokenizer struct {
	src  string
	cur  mark
	prev mark
	back bool // MoveBack allowed
}

// NewTokenizer returns a tokenizer over s.
func NewTokenizer(s string) *Tokenizer {
	return &Tokenizer{src: s, cur: mark{line: 1}}
}

func (t *Tokenizer) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: t.cur.line, Column: max(t.cur.col, 1), Msg: fmt.Sprintf(format, args...)}
}

// Next returns the next character, or 0 at the end of the input.
func (t *Tokenizer) Next() rune {
	t.prev, t.back = t.cur, true
	if t.cur.pos >= len(t.src) {
		return 0
	}
	r, size := utf8.DecodeRuneInString(t.src[t.cur.pos:])
	t.cur.pos += size
	if r == '\n' {
		t.cur.line++
		t.cur.col = 0
	} else {
		t.cur.col++
	}
	return r
}

// MoveBack steps back one character so that the next call to Next
// returns it again. Only a single step back is supported.
func (t *Tokenizer) MoveBack() error {
	if !t.back {
		return t.errorf("cannot step back twice")
	}
	t.cur, t.back = t.prev, false
	return nil
}

// More reports whether any characters are left.
func (t *Tokenizer) More() bool {
	return t.cur.pos < len(t.src)
}

// NextNonSpace returns the next character that is not whitespace or a
// control character, or 0 at the end of the input.
func (t *Tokenizer) NextNonSpace() rune {
	for {
		if c := t.Next(); c == 0 || c > ' ' {
			return c
		}
	}
}

// NextString reads up to the closing quote and resolves escapes. The
// opening quote must already have been consumed.
func (t *Tokenizer) NextString(quote rune) (string, error) {
	var sb strings.Builder
	for {
		c := t.Next()
		switch c {
		case 0, '\n', '\r':
			return "", t.errorf("unterminated string")
		case quote:
			return sb.String(), nil
		case '\\':
			r, err := t.escape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		default:
			sb.WriteRune(c)
		}
	}
}

func (t *Tokenizer) escape() (rune, error) {
	switch c := t.Next(); c {
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case '"', '\'', '\\', '/':
		return c, nil
	case 'u':
		r, err := t.hex4()
		if err != nil || !utf16.IsSurrogate(r) {
			return r, err
		}
		// A high surrogate pairs with a following \uXXXX low surrogate.
		rest := t.src[t.cur.pos:]
		if !strings.HasPrefix(rest, `\u`) {
			return utf8.RuneError, nil
		}
		t.Next()
		t.Next()
		lo, err := t.hex4()
		if err != nil {
			return 0, err
		}
		return utf16.DecodeRune(r, lo), nil
	default:
		return 0, t.errorf("illegal escape %q", c)
	}
}

func (t *Tokenizer) hex4() (rune, error) {
	var buf [4]rune
	for i := range buf {
		if buf[i] = t.Next(); buf[i] == 0 {
			return 0, t.errorf("truncated unicode escape")
		}
	}
	v, err := strconv.ParseUint(string(buf[:]), 16, 16)
	if err != nil {
		return 0, t.errorf("invalid unicode escape %q", string(buf[:]))
	}
	return rune(v), nil
}

// NextValue reads the next value: a string, float64, bool, nil, []any or
// *Object.
func (t *Tokenizer) NextValue() (any, error) {
	c := t.NextNonSpace()
	switch c {
	case '"', '\'':
		return t.NextString(c)
	case '{':
		return t.object()
	case '[':
		return t.array()
	}

	var sb strings.Builder
	for c >= ' ' && !strings.ContainsRune(`,:]}/\"[{;=#`, c) {
		sb.WriteRune(c)
		c = t.Next()
	}
	if err := t.MoveBack(); err != nil {
		return nil, err
	}
	s := strings.TrimSpace(sb.String())
	if s == "" {
		return nil, t.errorf("missing value")
	}
	return t.scalar(s)
}

var numberRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\d*\.?\d+)([eE][+-]?\d+)?$`)

func (t *Tokenizer) scalar(s string) (any, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	case strings.EqualFold(s, "null"):
		return nil, nil
	case numberRe.MatchString(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, t.errorf("number %s out of range", s)
		}
		return f, nil
	default:
		return nil, t.errorf("illegal value %q", s)
	}
}

// object reads the members of an object whose '{' was consumed.
func (t *Tokenizer) object() (*Object, error) {
	obj := NewObject()
	for {
		switch c := t.NextNonSpace(); c {
		case 0:
			return nil, t.errorf("object must end with '}'")
		case '}':
			return obj, nil
		default:
			if err := t.MoveBack(); err != nil {
				return nil, err
			}
		}

		k, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			return nil, t.errorf("object key must be a string, got %v", k)
		}
		if c := t.NextNonSpace(); c != ':' {
			return nil, t.errorf("expected ':' after key %q", key)
		}
		v, err := t.NextValue()
		if err != nil {
			return nil, err
		}
		if obj.Has(key) {
			return nil, t.errorf("duplicate key %q", key)
		}
		obj.Set(key, v)

		switch t.NextNonSpace() {
		case ',', ';':
			if t.NextNonSpace() == '}' {
				return obj, nil
			}
			if err := t.MoveBack(); err != nil {
				return nil, err
			}
		case '}':
			return obj, nil
		default:
			return nil, t.errorf("expected ',' or '}'")
		}
	}
}

// array reads the items of an array whose '[' was consumed.
func (t *Tokenizer) array() ([]any, error) {
	items := []any{}
	if t.NextNonSpace() == ']' {
		return items, nil
	}
	if err := t.MoveBack(); err != nil {
		return nil, err
	}
	for {
		if t.NextNonSpace() == ',' {
			items = append(items, nil)
		} else {
			if err := t.MoveBack(); err != nil {
				return nil, err
			}
			v, err := t.NextValue()
			if err != nil {
				return nil, err
			}
			items = append(items, v)
			switch t.NextNonSpace() {
			case ',':
			case ']':
				return items, nil
			default:
				return nil, t.errorf("expected ',' or ']'")
			}
		}
		if t.NextNonSpace() == ']' {
			return items, nil
		}
		if err := t.MoveBack(); err != nil {
			return nil, err
		}
	}
}

// Parse reads a single value that must span all of s apart from
// surrounding whitespace.
func Parse(s string) (any, error) {
	t := NewTokenizer(s)
	v, err := t.NextValue()
	if err != nil {
		return nil, err
	}
	if c := t.NextNonSpace(); c != 0 {
		return nil, t.errorf("unexpected %q after value", c)
	}
	return v, nil
}

// ParseObject is like Parse for text that must hold an object.
func ParseObject(s string) (*Object, error) {
	v, err := Parse(s)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, &SyntaxError{Line: 1, Column: 1, Msg: "document must be an object"}
	}
	return obj, nil
}
