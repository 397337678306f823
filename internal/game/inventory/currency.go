package inventory

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CentsPerUnit is the number of minor units in one major currency unit.
const CentsPerUnit = 100

// FormatMoney renders cents as a decimal amount with two fractional digits, e.g.
// FormatMoney("$", 1250) == "$12.50".
//
// Postcondition: negative amounts carry a leading "-" before the symbol.
func FormatMoney(symbol string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, cents/CentsPerUnit, cents%CentsPerUnit)
}

// ParseMoney parses a non-negative decimal amount with at most two fractional digits
// ("12", "12.5", "12.50", ".75") into cents. A leading currency symbol is not accepted.
//
// Postcondition: Returns cents >= 0, or an error wrapping ErrInvalidArgument.
func ParseMoney(s string) (int64, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, fmt.Errorf("inventory: empty amount: %w", ErrInvalidArgument)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("inventory: amount %q has more than two decimals: %w", s, ErrInvalidArgument)
	}

	var units int64
	if whole != "" {
		if !digits(whole) {
			return 0, fmt.Errorf("inventory: amount %q: %w", s, ErrInvalidArgument)
		}
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || n > math.MaxInt64/CentsPerUnit-1 {
			return 0, fmt.Errorf("inventory: amount %q: %w", s, ErrInvalidArgument)
		}
		units = n
	}

	var cents int64
	if frac != "" {
		if !digits(frac) {
			return 0, fmt.Errorf("inventory: amount %q: %w", s, ErrInvalidArgument)
		}
		n, _ := strconv.ParseInt(frac, 10, 64)
		if len(frac) == 1 {
			n *= 10
		}
		cents = n
	}
	return units*CentsPerUnit + cents, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
