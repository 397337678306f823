// Package catalog loads ability and archetype content from YAML and builds combat
// characters from it.
package catalog

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

// Lookup failures.
var (
	ErrUnknownAbility   = errors.New("unknown ability")
	ErrUnknownArchetype = errors.New("unknown archetype")
)

// AbilityDef is the static definition of an ability, loaded from YAML.
type AbilityDef struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"` // "melee" | "spell" | "buff" | "debuff"
	Description string `yaml:"description"`
	Cost        int    `yaml:"cost"`
	Cooldown    int    `yaml:"cooldown"`
	// Target is the targeting mode; empty uses the kind's default.
	Target string `yaml:"target"`
	// Power is melee base damage or spell power. Must be zero for buffs and debuffs.
	Power    int    `yaml:"power"`
	Variance string `yaml:"variance"`
	Effect   string `yaml:"effect"`
	// Duration is in holder turns; -1 is permanent. Buffs and debuffs only.
	Duration int             `yaml:"duration"`
	Modifier effect.Modifier `yaml:"modifier"`
}

// Validate checks that the definition can be built.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff Build would succeed with a non-nil calculator.
func (d *AbilityDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("ability: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("ability %q: name must not be empty", d.ID)
	}
	kind, err := combat.ParseKind(d.Kind)
	if err != nil {
		return fmt.Errorf("ability %q: %w", d.ID, err)
	}
	if d.Cost < 0 {
		return fmt.Errorf("ability %q: cost must be >= 0", d.ID)
	}
	if d.Cooldown < 0 {
		return fmt.Errorf("ability %q: cooldown must be >= 0", d.ID)
	}
	if d.Target != "" && !combat.Mode(d.Target).Valid() {
		return fmt.Errorf("ability %q: unknown target %q", d.ID, d.Target)
	}
	switch kind {
	case combat.KindMelee, combat.KindSpell:
		if d.Power < 0 {
			return fmt.Errorf("ability %q: power must be >= 0", d.ID)
		}
		if m := combat.Mode(d.Target); m == combat.ModeSelf || m == combat.ModeAlly {
			return fmt.Errorf("ability %q: %s abilities cannot target %q", d.ID, kind, m)
		}
		if d.Variance != "" {
			if _, err := dice.Parse(d.Variance); err != nil {
				return fmt.Errorf("ability %q: variance: %w", d.ID, err)
			}
		}
		if d.Duration != 0 || !d.Modifier.IsZero() {
			return fmt.Errorf("ability %q: duration and modifier only apply to buffs and debuffs", d.ID)
		}
	case combat.KindBuff, combat.KindDebuff:
		if d.Power != 0 || d.Variance != "" {
			return fmt.Errorf("ability %q: power and variance only apply to melee and spell", d.ID)
		}
		if d.Duration <= 0 && d.Duration != effect.Permanent {
			return fmt.Errorf("ability %q: duration must be > 0 or -1", d.ID)
		}
	}
	return nil
}

// Build creates the combat ability described by d.
//
// Precondition: d.Validate() == nil; calc must be non-nil.
func (d *AbilityDef) Build(calc *combat.DamageCalculator, targets *combat.TargetSelection) (combat.Ability, error) {
	kind, err := combat.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("ability %q: %w", d.ID, err)
	}
	spec := combat.Spec{
		Name:     d.Name,
		Cost:     d.Cost,
		Cooldown: d.Cooldown,
		Mode:     combat.Mode(d.Target),
		Variance: d.Variance,
	}
	switch kind {
	case combat.KindMelee:
		return combat.NewMeleeAttack(spec, d.Power, calc, targets)
	case combat.KindSpell:
		return combat.NewSpellCast(spec, d.Effect, d.Power, calc, targets)
	case combat.KindBuff:
		return combat.NewBuff(spec, d.Description, d.Duration, d.Modifier, targets)
	default:
		return combat.NewDebuff(spec, d.Description, d.Duration, d.Modifier, targets)
	}
}
