package pause

import (
	"strconv"
	"strings"
)

// FormatMessage substitutes layer into template.
//
// Recognised tokens:
//
//	{}  {0}   the layer number (every occurrence)
//	{{  }}    a literal brace
//
// Any other brace sequence is copied verbatim, so a template without a
// placeholder comes back unchanged. FormatMessage never fails.
func FormatMessage(template string, layer int) string {
	if !strings.ContainsAny(template, "{}") {
		return template
	}

	value := strconv.Itoa(layer)
	var sb strings.Builder
	sb.Grow(len(template) + len(value))

	for i := 0; i < len(template); {
		rest := template[i:]
		switch {
		case strings.HasPrefix(rest, "{{"):
			sb.WriteByte('{')
			i += 2
		case strings.HasPrefix(rest, "}}"):
			sb.WriteByte('}')
			i += 2
		case strings.HasPrefix(rest, "{}"):
			sb.WriteString(value)
			i += 2
		case strings.HasPrefix(rest, "{0}"):
			sb.WriteString(value)
			i += 3
		default:
			sb.WriteByte(template[i])
			i++
		}
	}
	return sb.String()
}
