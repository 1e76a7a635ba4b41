package j1939

import (
	"errors"
	"fmt"
	"github.com/aldas/go-j1939-id/internal/utils"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned when text can not be converted to number.
var ErrInvalidFormat = errors.New("invalid number format")

// inputQuoteLimit limits how much of invalid input is repeated in error message.
const inputQuoteLimit = 40

// ParseNumber converts decimal or 0x prefixed hexadecimal text to integer. Surrounding whitespace and
// sign are allowed. Other Go integer literal prefixes (0o, 0b) and `_` digit separators work too.
//
// Decimal numbers with leading zeros (`010`) are rejected instead of being read as octal. Zero
// written with multiple digits (`00`) is valid. Values that do not fit into int64 are rejected.
func ParseNumber(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidFormat)
	}
	if hasLeadingZero(s) {
		return 0, fmt.Errorf("%w: `%s` leading zeros are not allowed in decimal numbers", ErrInvalidFormat, utils.QuoteInput(raw, inputQuoteLimit))
	}
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		reason := "not a decimal or hex number"
		if errors.Is(err, strconv.ErrRange) {
			reason = "does not fit into 64 bits"
		}
		return 0, fmt.Errorf("%w: `%s` %s", ErrInvalidFormat, utils.QuoteInput(raw, inputQuoteLimit), reason)
	}
	return n, nil
}

// hasLeadingZero reports decimal literal that strconv would read as legacy octal (`010`, `0_7`).
func hasLeadingZero(s string) bool {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	if c := s[1]; c != '_' && (c < '0' || c > '9') {
		return false // 0x, 0o, 0b prefixes
	}
	return strings.Trim(s, "0_") != ""
}

// ParseCANIDText converts decimal or hex text to CAN ID. Negative numbers and bits above 28 are kept
// as two's complement bits and are ignored by ParseCANID.
//
// Text must fit into int64. Bigger values (`0x1FFFFFFFFFFFFFFFF`) are rejected with ErrInvalidFormat
// and not masked to their low bits.
func ParseCANIDText(raw string) (uint32, error) {
	n, err := ParseNumber(raw)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
