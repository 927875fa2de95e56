package buffer

import (
	"strings"
	"unicode/utf16"

	"github.com/Iron-Ham/condrv/internal/errors"
)

// EncodeUTF16 converts text to UTF-16 code units. Code points above U+FFFF
// become a high/low surrogate pair.
func EncodeUTF16(text string) []uint16 {
	return utf16.Encode([]rune(text))
}

// DecodeUTF16 strictly decodes UTF-16 code units. An unpaired surrogate fails
// with a *errors.DecodeError naming its offset.
func DecodeUTF16(units []uint16) (string, error) {
	var sb strings.Builder
	sb.Grow(len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case isHighSurrogate(u):
			if i+1 >= len(units) || !isLowSurrogate(units[i+1]) {
				return "", errors.NewDecodeError("unpaired high surrogate", i, u)
			}
			sb.WriteRune(utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
		case isLowSurrogate(u):
			return "", errors.NewDecodeError("unpaired low surrogate", i, u)
		default:
			sb.WriteRune(rune(u))
		}
	}
	return sb.String(), nil
}

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u <= 0xDBFF
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u <= 0xDFFF
}
