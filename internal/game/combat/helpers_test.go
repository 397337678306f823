package combat_test

import (
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

// fixedSrc returns vals in sequence, wrapping, each reduced modulo n.
type fixedSrc struct {
	vals []int
	i    int
}

func (f *fixedSrc) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

func testRules() *combat.Rules {
	return &combat.Rules{
		Damage:              combat.NewDamageCalculator(1),
		Targets:             combat.NewTargetSelection(nil),
		DefaultAttackDamage: 5,
	}
}

// fighter builds a level 1 character with standard health and arcane mana.
func fighter(t require.TestingT, rules *combat.Rules, name string, hp, mana, maxMana int) *combat.Character {
	h, err := resource.NewStandardHealth(hp)
	require.NoError(t, err)
	m, err := resource.NewArcaneManaAt(mana, maxMana)
	require.NoError(t, err)
	c, err := combat.NewCharacter(combat.CharacterSpec{Name: name, Level: 1, Health: h, Mana: m}, rules)
	require.NoError(t, err)
	return c
}

// teamFighter is fighter with a team tag.
func teamFighter(t require.TestingT, rules *combat.Rules, name, team string) *combat.Character {
	h, err := resource.NewStandardHealth(50)
	require.NoError(t, err)
	m, err := resource.NewArcaneMana(50)
	require.NoError(t, err)
	c, err := combat.NewCharacter(combat.CharacterSpec{Name: name, Level: 1, Team: team, Health: h, Mana: m}, rules)
	require.NoError(t, err)
	return c
}

func melee(t require.TestingT, rules *combat.Rules, spec combat.Spec, power int) *combat.MeleeAttack {
	a, err := combat.NewMeleeAttack(spec, power, rules.Damage, rules.Targets)
	require.NoError(t, err)
	return a
}

// snapshot captures the observable state of a character.
type snapshot struct {
	Health   int
	Mana     int
	Effects  int
	Power    int
	Defense  int
	Cooldown map[string]int
}

func snap(c *combat.Character) snapshot {
	s := snapshot{
		Health:   c.Health().Current(),
		Mana:     c.Mana().Current(),
		Effects:  c.Effects().Len(),
		Power:    c.Effects().Power(),
		Defense:  c.Effects().Defense(),
		Cooldown: map[string]int{},
	}
	for _, a := range c.Abilities() {
		s.Cooldown[a.Name()] = c.CooldownRemaining(a.Name())
	}
	return s
}
