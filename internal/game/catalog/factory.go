package catalog

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// Overrides adjusts a character built from an archetype. Zero values keep the archetype's.
type Overrides struct {
	Name  string
	Team  string
	Level int
}

// Factory builds characters from registered archetypes.
type Factory struct {
	reg   *Registry
	cfg   config.CombatConfig
	rules *combat.Rules
}

// NewFactory creates a Factory. cfg supplies the armor and rage defaults that archetypes
// may override; rules is shared by every character the Factory builds.
//
// Precondition: reg and rules must be non-nil.
func NewFactory(reg *Registry, cfg config.CombatConfig, rules *combat.Rules) *Factory {
	return &Factory{reg: reg, cfg: cfg, rules: rules}
}

// Build creates a fresh character from the archetype with the given ID, with its
// abilities added in the archetype's order.
//
// Postcondition: Returns a live character, or an error wrapping ErrUnknownArchetype,
// ErrUnknownAbility or combat.ErrInvalidArgument.
func (f *Factory) Build(archetypeID string, o Overrides) (*combat.Character, error) {
	arch, ok := f.reg.Archetype(archetypeID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownArchetype, archetypeID)
	}

	health, err := f.health(arch)
	if err != nil {
		return nil, fmt.Errorf("archetype %q: %w", arch.ID, err)
	}
	mana, err := f.mana(arch)
	if err != nil {
		return nil, fmt.Errorf("archetype %q: %w", arch.ID, err)
	}

	spec := combat.CharacterSpec{
		Name:   arch.Name,
		Level:  arch.Level,
		Team:   arch.Team,
		Health: health,
		Mana:   mana,
	}
	if o.Name != "" {
		spec.Name = o.Name
	}
	if o.Team != "" {
		spec.Team = o.Team
	}
	if o.Level != 0 {
		spec.Level = o.Level
	}
	c, err := combat.NewCharacter(spec, f.rules)
	if err != nil {
		return nil, fmt.Errorf("archetype %q: %w", arch.ID, err)
	}

	for _, id := range arch.Abilities {
		def, ok := f.reg.Ability(id)
		if !ok {
			return nil, fmt.Errorf("archetype %q: %w %q", arch.ID, ErrUnknownAbility, id)
		}
		a, err := def.Build(f.rules.Damage, f.rules.Targets)
		if err != nil {
			return nil, fmt.Errorf("archetype %q: %w", arch.ID, err)
		}
		if err := c.AddAbility(a); err != nil {
			return nil, fmt.Errorf("archetype %q: %w", arch.ID, err)
		}
	}
	return c, nil
}

func (f *Factory) health(arch *ArchetypeDef) (resource.Health, error) {
	if arch.Health.Kind == resource.KindArmored {
		pct := f.cfg.ArmorReductionPercent
		if arch.Health.ArmorPercent != nil {
			pct = *arch.Health.ArmorPercent
		}
		return resource.NewArmoredHealth(arch.Health.Max, pct)
	}
	return resource.NewStandardHealth(arch.Health.Max)
}

func (f *Factory) mana(arch *ArchetypeDef) (resource.Mana, error) {
	if arch.Resource.Kind == resource.KindRage {
		perHit := f.cfg.RagePerHit
		if arch.Resource.PerHit != nil {
			perHit = *arch.Resource.PerHit
		}
		return resource.NewRageEnergy(arch.Resource.Max, perHit)
	}
	if arch.Resource.Start != nil {
		return resource.NewArcaneManaAt(*arch.Resource.Start, arch.Resource.Max)
	}
	return resource.NewArcaneMana(arch.Resource.Max)
}
