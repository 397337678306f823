package catalog

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// HealthDef describes an archetype's health pool.
type HealthDef struct {
	Kind string `yaml:"kind"` // "standard" | "armored"
	Max  int    `yaml:"max"`
	// ArmorPercent overrides combat.armor_reduction_percent for armored health.
	ArmorPercent *int `yaml:"armor_percent"`
}

// ResourceDef describes an archetype's ability resource pool.
type ResourceDef struct {
	Kind string `yaml:"kind"` // "arcane" | "rage"
	Max  int    `yaml:"max"`
	// Start is the initial arcane mana; nil starts full. Rage always starts empty.
	Start *int `yaml:"start"`
	// PerHit overrides combat.rage_per_hit for rage pools.
	PerHit *int `yaml:"per_hit"`
}

// ArchetypeDef is a character template: pools, level, team and abilities in priority order.
type ArchetypeDef struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Level       int         `yaml:"level"`
	Team        string      `yaml:"team"`
	Health      HealthDef   `yaml:"health"`
	Resource    ResourceDef `yaml:"resource"`
	Abilities   []string    `yaml:"abilities"`
}

// Validate checks the archetype's own invariants. Ability references are checked by
// Registry.Check.
//
// Precondition: a must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 1, the pool
// definitions are well formed and ability IDs are unique.
func (a *ArchetypeDef) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("archetype: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("archetype %q: name must not be empty", a.ID)
	}
	if a.Level < 1 {
		return fmt.Errorf("archetype %q: level must be >= 1", a.ID)
	}
	switch a.Health.Kind {
	case resource.KindStandard:
		if a.Health.ArmorPercent != nil {
			return fmt.Errorf("archetype %q: armor_percent requires armored health", a.ID)
		}
	case resource.KindArmored:
		if p := a.Health.ArmorPercent; p != nil && (*p < 0 || *p > 100) {
			return fmt.Errorf("archetype %q: armor_percent must be 0-100", a.ID)
		}
	default:
		return fmt.Errorf("archetype %q: unknown health kind %q", a.ID, a.Health.Kind)
	}
	if a.Health.Max < 1 {
		return fmt.Errorf("archetype %q: health max must be >= 1", a.ID)
	}
	if a.Resource.Max < 0 {
		return fmt.Errorf("archetype %q: resource max must be >= 0", a.ID)
	}
	switch a.Resource.Kind {
	case resource.KindArcane:
		if a.Resource.PerHit != nil {
			return fmt.Errorf("archetype %q: per_hit requires a rage resource", a.ID)
		}
		if s := a.Resource.Start; s != nil && (*s < 0 || *s > a.Resource.Max) {
			return fmt.Errorf("archetype %q: resource start must be 0-%d", a.ID, a.Resource.Max)
		}
	case resource.KindRage:
		if a.Resource.Start != nil {
			return fmt.Errorf("archetype %q: rage always starts empty", a.ID)
		}
		if p := a.Resource.PerHit; p != nil && *p < 0 {
			return fmt.Errorf("archetype %q: per_hit must be >= 0", a.ID)
		}
	default:
		return fmt.Errorf("archetype %q: unknown resource kind %q", a.ID, a.Resource.Kind)
	}
	seen := make(map[string]bool, len(a.Abilities))
	for _, id := range a.Abilities {
		if seen[id] {
			return fmt.Errorf("archetype %q: ability %q listed twice", a.ID, id)
		}
		seen[id] = true
	}
	return nil
}
