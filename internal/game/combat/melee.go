package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// MeleeAttack deals BaseDamage-scaled physical damage to its targets.
type MeleeAttack struct {
	base
	baseDamage int
	damage     *DamageCalculator
}

// NewMeleeAttack builds a MeleeAttack. Mode defaults to ModeSingle.
//
// Precondition: baseDamage >= 0; calc must be non-nil; spec.Mode must not be ModeSelf.
// Postcondition: Returns a ready MeleeAttack or an error wrapping ErrInvalidArgument.
func NewMeleeAttack(spec Spec, baseDamage int, calc *DamageCalculator, targets *TargetSelection) (*MeleeAttack, error) {
	b, err := newDamageBase(spec, baseDamage, calc, targets)
	if err != nil {
		return nil, err
	}
	return &MeleeAttack{base: b, baseDamage: baseDamage, damage: calc}, nil
}

// Kind returns KindMelee.
func (m *MeleeAttack) Kind() Kind { return KindMelee }

// Power returns the base damage.
func (m *MeleeAttack) Power() int { return m.baseDamage }

// BaseDamage returns the configured base damage.
func (m *MeleeAttack) BaseDamage() int { return m.baseDamage }

// Activate pays the cost and strikes every selected target.
func (m *MeleeAttack) Activate(caster, target *Character) (Outcome, error) {
	return m.activate(m, caster, target, func(t *Character) (Hit, error) {
		return strike(m, m.damage, caster, t)
	})
}

// newDamageBase validates the fields shared by the damage-dealing variants.
func newDamageBase(spec Spec, power int, calc *DamageCalculator, targets *TargetSelection) (base, error) {
	if calc == nil {
		return base{}, fmt.Errorf("ability %q: damage calculator must not be nil: %w", spec.Name, ErrInvalidArgument)
	}
	if power < 0 {
		return base{}, fmt.Errorf("ability %q: power %d: %w", spec.Name, power, ErrInvalidArgument)
	}
	if spec.Mode == ModeSelf || spec.Mode == ModeAlly {
		return base{}, fmt.Errorf("ability %q: damage cannot target %q: %w", spec.Name, spec.Mode, ErrInvalidArgument)
	}
	return newBase(spec, ModeSingle, targets)
}

// strike computes a's damage against t and applies it, feeding any combat-fueled pools.
func strike(a Ability, calc *DamageCalculator, caster, t *Character) (Hit, error) {
	dmg := calc.Calculate(a, caster, t)
	applied, err := t.health.TakeDamage(dmg)
	if err != nil {
		return Hit{}, err
	}
	if dmg > 0 {
		if f, ok := caster.mana.(resource.CombatFueled); ok {
			f.OnCombatHit()
		}
		if f, ok := t.mana.(resource.CombatFueled); ok {
			f.OnCombatHit()
		}
	}
	return Hit{
		TargetID:   t.ID,
		TargetName: t.Name,
		Damage:     applied,
		Defeated:   !t.IsAlive(),
	}, nil
}
