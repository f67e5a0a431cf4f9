package codec

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/visigraph/pkg/palette"
)

// Object is a JSON object that keeps its members in insertion order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores v under key. A new key is appended; an existing key keeps
// its position.
func (o *Object) Set(key string, v any) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the member names in order.
func (o *Object) Keys() []string { return slices.Clone(o.keys) }

// Len returns the number of members.
func (o *Object) Len() int { return len(o.keys) }

// String formats the object.
func (o *Object) String() string { return Format(o) }

// =============================================================================
// Formatting
// =============================================================================

// Format renders v as JSON text. Objects print as { "k" : v, ... } and
// arrays as [ a, b ]. Colors print as "#RRGGBBAA" strings. Non-finite
// numbers, which the model never holds, print as null.
func Format(v any) string {
	var sb strings.Builder
	appendValue(&sb, v)
	return sb.String()
}

func appendValue(sb *strings.Builder, v any) {
	switch v := v.(type) {
	case nil:
		sb.WriteString("null")
	case string:
		appendString(sb, v)
	case bool:
		sb.WriteString(strconv.FormatBool(v))
	case int:
		sb.WriteString(strconv.Itoa(v))
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			sb.WriteString("null")
			return
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case palette.Color:
		appendString(sb, v.Hex())
	case []any:
		if len(v) == 0 {
			sb.WriteString("[ ]")
			return
		}
		sb.WriteString("[ ")
		for i, item := range v {
			if i > 0 {
				sb.WriteString(", ")
			}
			appendValue(sb, item)
		}
		sb.WriteString(" ]")
	case *Object:
		if v.Len() == 0 {
			sb.WriteString("{ }")
			return
		}
		sb.WriteString("{ ")
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			appendString(sb, k)
			sb.WriteString(" : ")
			appendValue(sb, v.values[k])
		}
		sb.WriteString(" }")
	default:
		appendString(sb, "?")
	}
}

const hexDigits = "0123456789abcdef"

func appendString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '/':
			sb.WriteString(`\/`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c < ' ' || (c >= 0x80 && c < 0xa0) || (c >= 0x2000 && c < 0x2100) || c == utf8.RuneError {
				sb.WriteString(`\u`)
				for shift := 12; shift >= 0; shift -= 4 {
					sb.WriteByte(hexDigits[(c>>shift)&0xf])
				}
				continue
			}
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
}
