package buffer

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// reprBytes quotes raw bytes as A'...'. Printable ASCII is kept, quote and
// backslash are backslash-escaped and every other byte becomes \xNN, so the
// original bytes can be recovered exactly.
func reprBytes(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) + 3)
	sb.WriteString("A'")
	for _, c := range data {
		writeEscaped(&sb, rune(c))
	}
	sb.WriteByte('\'')
	return sb.String()
}

// reprUnits quotes UTF-16 units as U'...'. Well-formed pairs are written as
// one \UXXXXXXXX escape, lone surrogates as \uXXXX.
func reprUnits(units []uint16) string {
	var sb strings.Builder
	sb.Grow(len(units) + 3)
	sb.WriteString("U'")
	for i := 0; i < len(units); i++ {
		u := units[i]
		if isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]) {
			writeEscaped(&sb, utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
			continue
		}
		writeEscaped(&sb, rune(u))
	}
	sb.WriteByte('\'')
	return sb.String()
}

func writeEscaped(sb *strings.Builder, r rune) {
	switch {
	case r == '\\' || r == '\'':
		sb.WriteByte('\\')
		sb.WriteRune(r)
	case r >= 0x20 && r < 0x7F:
		sb.WriteRune(r)
	case r < 0x100:
		fmt.Fprintf(sb, `\x%02x`, r)
	case r < 0x10000:
		fmt.Fprintf(sb, `\u%04x`, r)
	default:
		fmt.Fprintf(sb, `\U%08x`, r)
	}
}

// headSuffix marks a repr cut short by ReprHead.
func headSuffix(shown, total int) string {
	if shown >= total {
		return ""
	}
	return fmt.Sprintf("...(+%d)", total-shown)
}
