package script

import (
	"math"
	"strconv"
	"strings"
)

// Encode renders a document back into script source text. Each top-level
// pair goes on its own line in dictionary order; nested structure is
// indented with tabs. Re-parsing the output yields a structurally equal
// document.
func Encode(doc *Dict) string {
	var sb strings.Builder
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		sb.WriteString(key)
		sb.WriteString(" = ")
		encodeValue(&sb, v, 0)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func encodeValue(sb *strings.Builder, v Value, depth int) {
	indent := strings.Repeat("\t", depth)
	inner := indent + "\t"

	switch val := v.(type) {
	case String:
		sb.WriteByte('"')
		sb.WriteString(escapeString(string(val)))
		sb.WriteByte('"')
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		sb.WriteString(formatFloat(float64(val)))
	case Array:
		sb.WriteString("{\n")
		sb.WriteString(inner)
		for i, elem := range val {
			if i > 0 {
				sb.WriteString(",\n")
				sb.WriteString(inner)
			}
			encodeValue(sb, elem, depth+1)
		}
		sb.WriteByte('\n')
		sb.WriteString(indent)
		sb.WriteByte('}')
	case *Dict:
		sb.WriteByte('\n')
		sb.WriteString(inner)
		for i, key := range val.Keys() {
			if i > 0 {
				sb.WriteString(",\n")
				sb.WriteString(inner)
			}
			entry, _ := val.Get(key)
			sb.WriteString(key)
			sb.WriteByte('=')
			encodeValue(sb, entry, depth+1)
		}
		sb.WriteByte('\n')
		sb.WriteString(indent)
	}
}

// escapeString inverts the tokenizer's escape table so strings holding
// quotes, backslashes, tabs or newlines survive a round trip.
func escapeString(s string) string {
	var sb strings.Builder
	for _, ch := range s {
		switch ch {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// formatFloat keeps one decimal place for whole numbers so they stay
// recognizable as floats (2.0, not 2), and otherwise uses the shortest
// exact decimal form.
func formatFloat(f float64) string {
	if f == math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
