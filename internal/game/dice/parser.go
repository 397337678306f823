package dice

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression represents a parsed dice expression ready to be rolled.
// Invariant: Count >= 1, Sides >= 2 after successful Parse.
type Expression struct {
	Raw      string // original input string
	Count    int    // number of dice
	Sides    int    // faces per die
	Modifier int    // flat modifier (may be negative)
}

// Parse parses a dice expression string into an Expression.
// Supported forms: "d20", "2d6", "2d6+3", "4d8-2".
//
// Postcondition: Returns a valid Expression or a descriptive error.
func Parse(expr string) (Expression, error) {
	if expr == "" {
		return Expression{}, fmt.Errorf("dice: empty expression")
	}
	s := strings.ToLower(strings.TrimSpace(expr))

	countStr, rest, found := strings.Cut(s, "d")
	if !found {
		return Expression{}, fmt.Errorf("dice: missing 'd' in expression %q", expr)
	}

	count := 1
	if countStr != "" {
		var err error
		count, err = strconv.Atoi(countStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: %w", expr, err)
		}
		if count <= 0 {
			return Expression{}, fmt.Errorf("dice: invalid die count in %q: must be >= 1", expr)
		}
	}

	// A sign at position 0 stays with sides and is rejected by the sides check below.
	sidesStr, modStr := rest, ""
	if i := strings.IndexAny(rest, "+-"); i > 0 {
		sidesStr, modStr = rest[:i], rest[i:]
	}

	sides, err := strconv.Atoi(sidesStr)
	if err != nil {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: %w", expr, err)
	}
	if sides < 2 {
		return Expression{}, fmt.Errorf("dice: invalid die sides in %q: must be >= 2", expr)
	}

	modifier := 0
	if modStr != "" {
		modifier, err = strconv.Atoi(modStr)
		if err != nil {
			return Expression{}, fmt.Errorf("dice: invalid modifier in %q: %w", expr, err)
		}
	}

	return Expression{Raw: expr, Count: count, Sides: sides, Modifier: modifier}, nil
}

// MustParse parses expr and panics on error. Useful for package-level constants.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
