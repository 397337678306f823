package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

// Kind distinguishes the four ability variants.
type Kind int

const (
	KindUnknown Kind = iota // zero value; intentionally invalid
	KindMelee
	KindSpell
	KindBuff
	KindDebuff
)

// String returns the lowercase kind name used in content files.
func (k Kind) String() string {
	switch k {
	case KindMelee:
		return "melee"
	case KindSpell:
		return "spell"
	case KindBuff:
		return "buff"
	case KindDebuff:
		return "debuff"
	default:
		return "unknown"
	}
}

// ParseKind maps a content-file kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "melee":
		return KindMelee, nil
	case "spell":
		return KindSpell, nil
	case "buff":
		return KindBuff, nil
	case "debuff":
		return KindDebuff, nil
	default:
		return KindUnknown, fmt.Errorf("unknown ability kind %q: %w", s, ErrInvalidArgument)
	}
}

// Ability is a triggerable combat action that consumes the caster's resource and
// produces an effect on its targets.
type Ability interface {
	Name() string
	Kind() Kind
	// Cost is the resource deducted from the caster on activation.
	Cost() int
	// Cooldown is the number of caster ticks that must pass before the ability is
	// usable again. It only gates activation when the rules enforce cooldowns.
	Cooldown() int
	// Mode is the default targeting mode.
	Mode() Mode
	// Power is the base damage magnitude; zero for buffs and debuffs.
	Power() int
	// Variance is the optional dice expression added to damage.
	Variance() (dice.Expression, bool)
	// Activate runs the full activation sequence against target.
	Activate(caster, target *Character) (Outcome, error)
}

// Spec holds the fields common to every ability variant.
type Spec struct {
	Name     string
	Cost     int
	Cooldown int
	// Mode defaults per variant when empty.
	Mode Mode
	// Variance is an optional dice expression such as "1d4".
	Variance string
}

// Hit records what one activation did to one target.
type Hit struct {
	TargetID   string
	TargetName string
	// Damage is the hit points actually removed from the target.
	Damage int
	// Effect is set when a buff or debuff was applied.
	Effect *effect.Active
	// Defeated is true when this hit left the target at 0 health.
	Defeated bool
}

// Outcome is the result of one successful activation.
type Outcome struct {
	Ability    string
	Kind       Kind
	CasterID   string
	CasterName string
	Cost       int
	// Hits is empty when no legal target existed; the cost is still paid.
	Hits []Hit
}

// TotalDamage returns the damage dealt across all hits.
func (o Outcome) TotalDamage() int {
	total := 0
	for _, h := range o.Hits {
		total += h.Damage
	}
	return total
}

// String returns a one-line narrative of the outcome.
func (o Outcome) String() string {
	if len(o.Hits) == 0 {
		return fmt.Sprintf("%s uses %s, but there is nothing to affect.", o.CasterName, o.Ability)
	}
	parts := make([]string, 0, len(o.Hits))
	for _, h := range o.Hits {
		switch {
		case h.Effect != nil:
			parts = append(parts, fmt.Sprintf("%s is affected for %d turns", h.TargetName, h.Effect.Remaining))
		case h.Defeated:
			parts = append(parts, fmt.Sprintf("%s takes %d damage and falls", h.TargetName, h.Damage))
		default:
			parts = append(parts, fmt.Sprintf("%s takes %d damage", h.TargetName, h.Damage))
		}
	}
	return fmt.Sprintf("%s uses %s: %s.", o.CasterName, o.Ability, strings.Join(parts, ", "))
}

// base carries the shared fields and the activation pipeline for every variant.
type base struct {
	name     string
	cost     int
	cooldown int
	mode     Mode
	variance *dice.Expression
	targets  *TargetSelection
}

func newBase(spec Spec, defaultMode Mode, targets *TargetSelection) (base, error) {
	if spec.Name == "" {
		return base{}, fmt.Errorf("ability name must not be empty: %w", ErrInvalidArgument)
	}
	if spec.Cost < 0 {
		return base{}, fmt.Errorf("ability %q: cost %d: %w", spec.Name, spec.Cost, ErrInvalidArgument)
	}
	if spec.Cooldown < 0 {
		return base{}, fmt.Errorf("ability %q: cooldown %d: %w", spec.Name, spec.Cooldown, ErrInvalidArgument)
	}
	mode := spec.Mode
	if mode == "" {
		mode = defaultMode
	}
	if !mode.Valid() {
		return base{}, fmt.Errorf("ability %q: targeting mode %q: %w", spec.Name, mode, ErrInvalidArgument)
	}
	if targets == nil {
		targets = NewTargetSelection(nil)
	}
	b := base{
		name:     spec.Name,
		cost:     spec.Cost,
		cooldown: spec.Cooldown,
		mode:     mode,
		targets:  targets,
	}
	if spec.Variance != "" {
		expr, err := dice.Parse(spec.Variance)
		if err != nil {
			return base{}, fmt.Errorf("ability %q: variance: %w", spec.Name, err)
		}
		b.variance = &expr
	}
	return b, nil
}

func (b *base) Name() string  { return b.name }
func (b *base) Cost() int     { return b.cost }
func (b *base) Cooldown() int { return b.cooldown }
func (b *base) Mode() Mode    { return b.mode }

func (b *base) Variance() (dice.Expression, bool) {
	if b.variance == nil {
		return dice.Expression{}, false
	}
	return *b.variance, true
}

// activate runs the activation sequence shared by every variant:
//
//  1. validate the caster (alive, not on an enforced cooldown);
//  2. resolve targets, a pure query;
//  3. consume the cost, aborting with ErrInsufficientResource when unaffordable;
//  4. apply the variant's effect to each target.
//
// Postcondition: on error from steps 1-3, no state has changed. Resource consumption
// happens before any effect is applied.
func (b *base) activate(self Ability, caster, target *Character, apply func(t *Character) (Hit, error)) (Outcome, error) {
	if caster == nil {
		return Outcome{}, fmt.Errorf("%s: caster must not be nil: %w", b.name, ErrInvalidArgument)
	}
	if !caster.IsAlive() {
		return Outcome{}, fmt.Errorf("%s: %s cannot act: %w", b.name, caster.Name, ErrCasterDefeated)
	}
	if caster.rules.EnforceCooldowns {
		if rem := caster.CooldownRemaining(b.name); rem > 0 {
			return Outcome{}, fmt.Errorf("%s: %d ticks remaining: %w", b.name, rem, ErrOnCooldown)
		}
	}

	targets, err := b.targets.Select(caster, target, self)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", b.name, err)
	}

	ok, err := caster.mana.Consume(b.cost)
	if err != nil {
		return Outcome{}, fmt.Errorf("%s: %w", b.name, err)
	}
	if !ok {
		return Outcome{}, fmt.Errorf("%s: %s needs %d %s, has %d: %w",
			b.name, caster.Name, b.cost, caster.mana.Kind(), caster.mana.Current(), ErrInsufficientResource)
	}
	caster.startCooldown(b.name, b.cooldown)

	out := Outcome{
		Ability:    b.name,
		Kind:       self.Kind(),
		CasterID:   caster.ID,
		CasterName: caster.Name,
		Cost:       b.cost,
	}
	for _, t := range targets {
		// Only reachable on an invariant violation; constructors validate every input apply uses.
		hit, err := apply(t)
		if err != nil {
			return out, fmt.Errorf("%s on %s: %w", b.name, t.Name, err)
		}
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}
