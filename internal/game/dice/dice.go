// Package dice provides the randomness abstraction and roll-result types used for
// optional damage variance, initiative and script rolls.
package dice

import "fmt"

// RollResult records one evaluated expression.
//
// Invariant: Total() == Sum() + Modifier.
type RollResult struct {
	// Purpose names what the roll was for, e.g. "variance:fireball"; empty for bare rolls.
	Purpose    string
	Expression string
	Dice       []int
	Modifier   int
}

// Sum returns the dice alone, without the modifier.
func (r RollResult) Sum() int {
	sum := 0
	for _, d := range r.Dice {
		sum += d
	}
	return sum
}

// Total returns Sum plus the modifier.
func (r RollResult) Total() int { return r.Sum() + r.Modifier }

// String renders the roll as "1d4+2 [3] = 5", prefixed by the purpose when set.
func (r RollResult) String() string {
	s := fmt.Sprintf("%s %v = %d", r.Expression, r.Dice, r.Total())
	if r.Purpose != "" {
		return r.Purpose + ": " + s
	}
	return s
}

// Source is the randomness provider behind every roll.
type Source interface {
	// Intn returns a value in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
