package savefile

import "strings"

// Field separator and escape table. "&" must be escaped first and
// unescaped last, otherwise "&#124;" in user text would not round trip.
const separator = "|"

var escapes = []struct{ raw, escaped string }{
	{"&", "&#38;"},
	{"|", "&#124;"},
}

// Escape makes a field value safe to join with "|".
func Escape(s string) string {
	for _, e := range escapes {
		s = strings.ReplaceAll(s, e.raw, e.escaped)
	}
	return s
}

// Unescape reverses Escape.
func Unescape(s string) string {
	for i := len(escapes) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, escapes[i].escaped, escapes[i].raw)
	}
	return s
}

func splitLine(line string) []string {
	fields := strings.Split(line, separator)
	for i := range fields {
		fields[i] = Unescape(fields[i])
	}
	return fields
}

func joinFields(fields []string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, separator)
}
