package combat

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/effect"
	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// DefaultAttackName is the ability name reported for Character.Attack.
const DefaultAttackName = "Attack"

// Rules are the shared services and tunables every character fights under.
type Rules struct {
	Damage  *DamageCalculator
	Targets *TargetSelection
	// DefaultAttackDamage is the base damage of Character.Attack.
	DefaultAttackDamage int
	// EnforceCooldowns makes Ability.Cooldown gate activation; otherwise it is only tracked.
	EnforceCooldowns bool
	Logger           *zap.Logger
}

// CharacterSpec describes a character to build.
type CharacterSpec struct {
	Name  string
	Level int
	// Team groups allies; empty means the character fights alone.
	Team   string
	Health resource.Health
	Mana   resource.Mana
}

// Character aggregates one health pool, one resource pool and an ordered set of owned
// abilities. It is not safe for concurrent use.
//
// Invariant: health and mana are non-nil; Level >= 1; ability names are unique.
type Character struct {
	ID    string
	Name  string
	Level int
	Team  string

	health    resource.Health
	mana      resource.Mana
	effects   *effect.Set
	abilities []Ability
	cooldowns map[string]int
	// fresh holds cooldowns started since the last Tick.
	fresh     map[string]bool

	rules  *Rules
	attack *MeleeAttack
	logger *zap.Logger
}

// NewCharacter builds a character with no abilities.
//
// Precondition: spec.Name non-empty; spec.Level >= 1; spec.Health and spec.Mana non-nil;
// rules non-nil with a non-nil Damage calculator.
// Postcondition: Returns a live character with a fresh ID, or an error wrapping ErrInvalidArgument.
func NewCharacter(spec CharacterSpec, rules *Rules) (*Character, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("character name must not be empty: %w", ErrInvalidArgument)
	}
	if spec.Level < 1 {
		return nil, fmt.Errorf("character %q: level %d must be >= 1: %w", spec.Name, spec.Level, ErrInvalidArgument)
	}
	if spec.Health == nil || spec.Mana == nil {
		return nil, fmt.Errorf("character %q: health and mana must not be nil: %w", spec.Name, ErrInvalidArgument)
	}
	if rules == nil || rules.Damage == nil {
		return nil, fmt.Errorf("character %q: rules with a damage calculator are required: %w", spec.Name, ErrInvalidArgument)
	}
	if rules.Targets == nil {
		rules.Targets = NewTargetSelection(nil)
	}
	attack, err := NewMeleeAttack(Spec{Name: DefaultAttackName, Mode: ModeSingle}, rules.DefaultAttackDamage, rules.Damage, rules.Targets)
	if err != nil {
		return nil, fmt.Errorf("character %q: default attack: %w", spec.Name, err)
	}
	logger := rules.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	return &Character{
		ID:        id,
		Name:      spec.Name,
		Level:     spec.Level,
		Team:      spec.Team,
		health:    spec.Health,
		mana:      spec.Mana,
		effects:   effect.NewSet(),
		cooldowns: make(map[string]int),
		fresh:     make(map[string]bool),
		rules:     rules,
		attack:    attack,
		logger:    logger.With(zap.String("character", spec.Name), zap.String("character_id", id)),
	}, nil
}

// Health returns the character's hit point pool.
func (c *Character) Health() resource.Health { return c.health }

// Mana returns the character's ability resource pool.
func (c *Character) Mana() resource.Mana { return c.mana }

// Effects returns the buffs and debuffs currently applied to the character.
func (c *Character) Effects() *effect.Set { return c.effects }

// IsAlive reports whether the character's health is above zero.
func (c *Character) IsAlive() bool { return c.health.IsAlive() }

// AddAbility appends a to the character's abilities. Insertion order is priority order.
//
// Postcondition: FindAbility(a.Name()) returns a; duplicate names are rejected.
func (c *Character) AddAbility(a Ability) error {
	if a == nil {
		return fmt.Errorf("%s: ability must not be nil: %w", c.Name, ErrInvalidArgument)
	}
	if _, ok := c.FindAbility(a.Name()); ok {
		return fmt.Errorf("%s already knows %q: %w", c.Name, a.Name(), ErrInvalidArgument)
	}
	c.abilities = append(c.abilities, a)
	return nil
}

// Abilities returns a copy of the character's abilities in priority order.
func (c *Character) Abilities() []Ability {
	out := make([]Ability, len(c.abilities))
	copy(out, c.abilities)
	return out
}

// FindAbility returns the owned ability whose name matches exactly.
func (c *Character) FindAbility(name string) (Ability, bool) {
	for _, a := range c.abilities {
		if a.Name() == name {
			return a, true
		}
	}
	return nil, false
}

// CooldownRemaining returns the ticks left before name is usable again; 0 when ready.
func (c *Character) CooldownRemaining(name string) int {
	return c.cooldowns[name]
}

// Ready reports whether a could be activated right now: it is off cooldown (when
// cooldowns are enforced) and its cost is affordable.
func (c *Character) Ready(a Ability) bool {
	if c.rules.EnforceCooldowns && c.cooldowns[a.Name()] > 0 {
		return false
	}
	return a.Cost() <= c.mana.Current()
}

// Attack performs the implicit default strike: a free, cooldown-less single-target
// melee attack of Rules.DefaultAttackDamage routed through the damage calculator.
func (c *Character) Attack(target *Character) (Outcome, error) {
	out, err := c.attack.Activate(c, target)
	c.logActivation(DefaultAttackName, target, out, err)
	return out, err
}

// UseAbility activates the owned ability called name against target.
//
// Postcondition: on ErrAbilityNotFound, ErrInsufficientResource, ErrOnCooldown or
// ErrCasterDefeated no state has changed.
func (c *Character) UseAbility(name string, target *Character) (Outcome, error) {
	a, ok := c.FindAbility(name)
	if !ok {
		err := fmt.Errorf("%s has no ability %q: %w", c.Name, name, ErrAbilityNotFound)
		c.logActivation(name, target, Outcome{}, err)
		return Outcome{}, err
	}
	out, err := a.Activate(c, target)
	c.logActivation(name, target, out, err)
	return out, err
}

// startCooldown begins an ability's cooldown when its cost is paid. The tick that closes
// the current turn does not count, so a cooldown of n blocks the caster's next n turns.
func (c *Character) startCooldown(name string, n int) {
	if n <= 0 {
		return
	}
	c.cooldowns[name] = n
	c.fresh[name] = true
}

// Tick closes one of the character's turns: cooldowns count down and timed effects
// expire, except those started during the turn being closed. Expired effects are
// returned in key order.
func (c *Character) Tick() []effect.Active {
	for name, rem := range c.cooldowns {
		if c.fresh[name] {
			delete(c.fresh, name)
			continue
		}
		if rem <= 1 {
			delete(c.cooldowns, name)
			continue
		}
		c.cooldowns[name] = rem - 1
	}
	expired := c.effects.Tick()
	for _, e := range expired {
		c.logger.Debug("effect expired", zap.String("effect", e.Key.Ability))
	}
	return expired
}

func (c *Character) logActivation(ability string, target *Character, out Outcome, err error) {
	fields := []zap.Field{zap.String("ability", ability)}
	if target != nil {
		fields = append(fields, zap.String("target", target.Name))
	}
	if err != nil {
		c.logger.Debug("ability failed", append(fields, zap.Error(err))...)
		return
	}
	c.logger.Debug("ability used", append(fields,
		zap.Int("cost", out.Cost),
		zap.Int("targets", len(out.Hits)),
		zap.Int("damage", out.TotalDamage()),
		zap.Int("mana", c.mana.Current()),
	)...)
}
