package dice

// Roll evaluates an Expression using the given Source.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count; every die is in [1, Sides].
func Roll(expr Expression, src Source) RollResult {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       rolled,
		Modifier:   expr.Modifier,
	}
}

// RollExpr parses expr and rolls it using src in a single call.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src), nil
}
