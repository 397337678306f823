package combat

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

// status is the temporary-effect lifecycle shared by Buff and Debuff.
// Apply records a modifier on the target keyed by (ability name, target ID);
// Remove reverses it. When Remove fires is decided by the caller, usually
// Encounter.EndTurn expiring the effect after Duration ticks.
type status struct {
	base
	description string
	duration    int
	modifier    effect.Modifier
}

func newStatus(spec Spec, defaultMode Mode, description string, duration int, mod effect.Modifier, targets *TargetSelection) (status, error) {
	if duration <= 0 && duration != effect.Permanent {
		return status{}, fmt.Errorf("ability %q: duration %d: %w", spec.Name, duration, ErrInvalidArgument)
	}
	if spec.Variance != "" {
		return status{}, fmt.Errorf("ability %q: variance only applies to damage: %w", spec.Name, ErrInvalidArgument)
	}
	b, err := newBase(spec, defaultMode, targets)
	if err != nil {
		return status{}, err
	}
	return status{base: b, description: description, duration: duration, modifier: mod}, nil
}

func (s *status) Power() int { return 0 }

func (s *status) Variance() (dice.Expression, bool) { return dice.Expression{}, false }

// Duration returns the number of target ticks the effect lasts, or effect.Permanent.
func (s *status) Duration() int { return s.duration }

// Description returns the effect's flavour text.
func (s *status) Description() string { return s.description }

// Modifier returns the stat delta applied to targets.
func (s *status) Modifier() effect.Modifier { return s.modifier }

// key identifies this ability's effect on target.
func (s *status) key(target *Character) effect.Key {
	return effect.Key{Ability: s.name, Target: target.ID}
}

// Apply records the effect on target. Re-applying refreshes the duration without stacking.
//
// Precondition: target must be non-nil.
// Postcondition: target.Effects().Has(key) is true.
func (s *status) Apply(target *Character) (effect.Active, error) {
	if target == nil {
		return effect.Active{}, fmt.Errorf("%s: target must not be nil: %w", s.name, ErrInvalidArgument)
	}
	a := effect.Active{
		Key:         s.key(target),
		Description: s.description,
		Modifier:    s.modifier,
		Remaining:   s.duration,
	}
	if err := target.effects.Apply(a); err != nil {
		return effect.Active{}, err
	}
	current, _ := target.effects.Get(a.Key)
	return current, nil
}

// Remove undoes the most recent Apply on target, restoring an effect it refreshed,
// and reports whether the effect was present.
//
// Postcondition: target's observable stats equal those before the matching Apply.
func (s *status) Remove(target *Character) bool {
	if target == nil {
		return false
	}
	return target.effects.Remove(s.key(target))
}

// applyHit applies the effect to t during caster's activation. An effect the caster
// puts on itself is held past the tick that ends this turn, so its duration counts the
// caster's following turns like any other holder's.
func (s *status) applyHit(caster, t *Character) (Hit, error) {
	a, err := s.Apply(t)
	if err != nil {
		return Hit{}, err
	}
	if t.ID == caster.ID {
		t.effects.Hold(a.Key)
	}
	return Hit{TargetID: t.ID, TargetName: t.Name, Effect: &a, Defeated: !t.IsAlive()}, nil
}

// Buff grants a beneficial modifier. Mode defaults to ModeSelf.
type Buff struct {
	status
}

// NewBuff builds a Buff.
//
// Precondition: duration > 0 or effect.Permanent.
func NewBuff(spec Spec, description string, duration int, mod effect.Modifier, targets *TargetSelection) (*Buff, error) {
	s, err := newStatus(spec, ModeSelf, description, duration, mod, targets)
	if err != nil {
		return nil, err
	}
	return &Buff{status: s}, nil
}

// Kind returns KindBuff.
func (b *Buff) Kind() Kind { return KindBuff }

// Activate pays the cost and applies the buff to every selected target.
func (b *Buff) Activate(caster, target *Character) (Outcome, error) {
	return b.activate(b, caster, target, func(t *Character) (Hit, error) {
		return b.applyHit(caster, t)
	})
}

// Debuff imposes a harmful modifier. Mode defaults to ModeSingle.
type Debuff struct {
	status
}

// NewDebuff builds a Debuff.
//
// Precondition: duration > 0 or effect.Permanent.
func NewDebuff(spec Spec, description string, duration int, mod effect.Modifier, targets *TargetSelection) (*Debuff, error) {
	s, err := newStatus(spec, ModeSingle, description, duration, mod, targets)
	if err != nil {
		return nil, err
	}
	return &Debuff{status: s}, nil
}

// Kind returns KindDebuff.
func (d *Debuff) Kind() Kind { return KindDebuff }

// Activate pays the cost and applies the debuff to every selected target.
func (d *Debuff) Activate(caster, target *Character) (Outcome, error) {
	return d.activate(d, caster, target, func(t *Character) (Hit, error) {
		return d.applyHit(caster, t)
	})
}
