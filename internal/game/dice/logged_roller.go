package dice

import "go.uber.org/zap"

// Roller rolls against a shared Source and leaves a debug trail of every result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger.Named("dice")}
}

// Source returns the Source the Roller draws from, so initiative and variance can
// share one seeded stream.
func (r *Roller) Source() Source { return r.src }

// Roll evaluates expr on behalf of purpose.
func (r *Roller) Roll(purpose string, expr Expression) RollResult {
	result := Roll(expr, r.src)
	result.Purpose = purpose
	r.logger.Debug("dice roll",
		zap.String("purpose", purpose),
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses and rolls expr on behalf of purpose.
func (r *Roller) RollExpr(purpose, expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(purpose, e), nil
}
