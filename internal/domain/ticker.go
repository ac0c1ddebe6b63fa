package domain

import (
	"fmt"
	"strings"
)

const MaxTickerLen = 8

// NormalizeTicker trims and upper-cases a ticker and rejects anything that is
// not a plausible exchange symbol (e.g. TSLA, BRK.B, ^GSPC).
func NormalizeTicker(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	t = strings.TrimPrefix(t, "$")
	if t == "" || len(t) > MaxTickerLen {
		return "", fmt.Errorf("%w: %q", ErrInvalidTicker, raw)
	}
	for _, r := range t {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '-', r == '^', r == '=':
		default:
			return "", fmt.Errorf("%w: %q", ErrInvalidTicker, raw)
		}
	}
	return t, nil
}
