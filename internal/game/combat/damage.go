package combat

import (
	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// DamageRequest is the snapshot handed to a DamageHook.
type DamageRequest struct {
	Ability         string
	Kind            Kind
	Power           int
	CasterName      string
	CasterLevel     int
	TargetName      string
	TargetHealth    int
	TargetMaxHealth int
	// Raw is the damage computed before the hook ran.
	Raw int
}

// DamageHook adjusts the computed damage, e.g. from content scripts.
type DamageHook interface {
	AdjustDamage(req DamageRequest) int
}

// CalculatorOption configures a DamageCalculator.
type CalculatorOption func(*DamageCalculator)

// WithRoller adds ability variance dice to every calculation.
func WithRoller(r *dice.Roller) CalculatorOption {
	return func(d *DamageCalculator) { d.roller = r }
}

// WithHook routes every calculation through h.
func WithHook(h DamageHook) CalculatorOption {
	return func(d *DamageCalculator) { d.hook = h }
}

// DamageCalculator maps (ability, caster, target) to an integer damage amount:
//
//	raw = ability.Power()
//	    + levelScaling * (caster.Level - 1)
//	    + caster power modifiers
//	    + variance roll (only with WithRoller and an ability Variance)
//	    - target defense modifiers
//	raw = hook(raw)  (only with WithHook)
//	damage = max(0, raw)
//
// Buffs and debuffs have zero power and are never routed here by the ability pipeline.
// Without a roller the result depends only on its inputs.
type DamageCalculator struct {
	levelScaling int
	roller       *dice.Roller
	hook         DamageHook
}

// NewDamageCalculator creates a calculator.
//
// Precondition: levelScaling >= 0.
func NewDamageCalculator(levelScaling int, opts ...CalculatorOption) *DamageCalculator {
	d := &DamageCalculator{levelScaling: levelScaling}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Calculate returns the damage a deals from caster to target.
//
// Precondition: a, caster and target must be non-nil.
// Postcondition: Returns >= 0.
func (d *DamageCalculator) Calculate(a Ability, caster, target *Character) int {
	raw := a.Power() + d.levelScaling*(caster.Level-1)
	raw += caster.effects.Power()
	if expr, ok := a.Variance(); ok && d.roller != nil {
		raw += d.roller.Roll("variance:"+a.Name(), expr).Total()
	}
	raw -= target.effects.Defense()

	if d.hook != nil {
		raw = d.hook.AdjustDamage(DamageRequest{
			Ability:         a.Name(),
			Kind:            a.Kind(),
			Power:           a.Power(),
			CasterName:      caster.Name,
			CasterLevel:     caster.Level,
			TargetName:      target.Name,
			TargetHealth:    target.health.Current(),
			TargetMaxHealth: target.health.Max(),
			Raw:             raw,
		})
	}
	if raw < 0 {
		return 0
	}
	return raw
}
