package utils

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuoteInput makes user input safe to show inside single line message. Non printable runes are
// escaped, invalid UTF-8 bytes are shown as \xNN and input longer than maxRunes is cut and ends
// with "...". maxRunes <= 0 means no limit.
func QuoteInput(s string, maxRunes int) string {
	buf := strings.Builder{}
	count := 0
	for i := 0; i < len(s); {
		if maxRunes > 0 && count == maxRunes {
			buf.WriteString("...")
			break
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&buf, `\x%02X`, s[i])
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\r':
			buf.WriteString(`\r`)
		case !unicode.IsPrint(r):
			fmt.Fprintf(&buf, `\u%04X`, r)
		default:
			buf.WriteRune(r)
		}
		i += size
		count++
	}
	return buf.String()
}
