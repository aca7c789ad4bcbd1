// Package money converts between the decimal-dollar amounts crossing the RPC
// boundary and the integer cents stored internally. Balances are never
// carried as floating dollars.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDollars converts a decimal dollar string such as "10.50" to integer
// cents. Fractions beyond two digits are rounded half-up, deterministically.
// Sign is preserved; callers decide whether non-positive amounts are legal.
func ParseDollars(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, fmt.Errorf("malformed amount")
	}

	wholePart, fracPart, hasFrac := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, fmt.Errorf("malformed amount %q", s)
	}
	if wholePart == "" {
		wholePart = "0"
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed amount %q: %w", s, err)
	}

	cents := whole * 100
	if hasFrac && fracPart != "" {
		if !digitsOnly(fracPart) {
			return 0, fmt.Errorf("malformed amount %q", s)
		}
		frac := fracPart
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		fracCents, _ := strconv.ParseInt(frac, 10, 64)
		cents += fracCents
		// half-up on the third fractional digit
		if len(fracPart) > 2 && fracPart[2] >= '5' {
			cents++
		}
	}

	if negative {
		cents = -cents
	}
	return cents, nil
}

// FormatCents renders integer cents as a decimal dollar string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
