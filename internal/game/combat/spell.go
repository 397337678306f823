package combat

// SpellCast channels the caster's resource into a magical effect that deals Power damage.
type SpellCast struct {
	base
	effect string
	power  int
	damage *DamageCalculator
}

// NewSpellCast builds a SpellCast. Mode defaults to ModeSingle.
//
// Precondition: power >= 0; calc must be non-nil; spec.Mode must not be ModeSelf.
func NewSpellCast(spec Spec, effectText string, power int, calc *DamageCalculator, targets *TargetSelection) (*SpellCast, error) {
	b, err := newDamageBase(spec, power, calc, targets)
	if err != nil {
		return nil, err
	}
	return &SpellCast{base: b, effect: effectText, power: power, damage: calc}, nil
}

// Kind returns KindSpell.
func (s *SpellCast) Kind() Kind { return KindSpell }

// Power returns the spell's base damage.
func (s *SpellCast) Power() int { return s.power }

// Effect returns the flavour text of the spell, e.g. "fire".
func (s *SpellCast) Effect() string { return s.effect }

// Activate pays the cost and blasts every selected target.
func (s *SpellCast) Activate(caster, target *Character) (Outcome, error) {
	return s.activate(s, caster, target, func(t *Character) (Hit, error) {
		return strike(s, s.damage, caster, t)
	})
}
