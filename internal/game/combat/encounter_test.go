package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
)

func TestNewEncounter_Validation(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)

	_, err := combat.NewEncounter([]*combat.Character{a}, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)
	_, err = combat.NewEncounter([]*combat.Character{a, nil}, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)
	_, err = combat.NewEncounter([]*combat.Character{a, a}, nil)
	assert.ErrorIs(t, err, combat.ErrInvalidArgument)

	enc, err := combat.NewEncounter([]*combat.Character{a, b}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, enc.Round())
	assert.Same(t, a, enc.CurrentTurn())
}

func TestEncounter_TurnsAndRounds(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	c := fighter(t, rules, "C", 10, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b, c}, rules.Targets)
	require.NoError(t, err)

	var order []string
	for i := 0; i < 4; i++ {
		order = append(order, enc.CurrentTurn().Name)
		enc.EndTurn()
	}
	assert.Equal(t, []string{"A", "B", "C", "A"}, order)
	assert.Equal(t, 2, enc.Round())
}

func TestEncounter_SkipsDefeated(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	c := fighter(t, rules, "C", 10, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b, c}, rules.Targets)
	require.NoError(t, err)

	_, err = b.Health().TakeDamage(10)
	require.NoError(t, err)
	enc.EndTurn()
	assert.Same(t, c, enc.CurrentTurn())
	assert.Equal(t, []string{"A", "C"}, names(enc.Living()))
	assert.Len(t, enc.Combatants(), 3)
}

func TestEncounter_StartsOnFirstLiving(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	c := fighter(t, rules, "C", 10, 0, 0)
	_, err := a.Health().TakeDamage(10)
	require.NoError(t, err)
	enc, err := combat.NewEncounter([]*combat.Character{a, b, c}, nil)
	require.NoError(t, err)
	assert.Same(t, b, enc.CurrentTurn())
}

func TestEncounter_WinnerSolo(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b}, rules.Targets)
	require.NoError(t, err)

	assert.False(t, enc.Over())
	_, ok := enc.Winner()
	assert.False(t, ok)

	_, err = b.Health().TakeDamage(10)
	require.NoError(t, err)
	assert.True(t, enc.Over())
	survivors, ok := enc.Winner()
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, names(survivors))
}

func TestEncounter_WinnerTeam(t *testing.T) {
	rules := testRules()
	mage := teamFighter(t, rules, "Mage", "red")
	knight := teamFighter(t, rules, "Knight", "red")
	orc := teamFighter(t, rules, "Orc", "blue")
	enc, err := combat.NewEncounter([]*combat.Character{mage, orc, knight}, rules.Targets)
	require.NoError(t, err)

	_, err = orc.Health().TakeDamage(1000)
	require.NoError(t, err)
	survivors, ok := enc.Winner()
	require.True(t, ok)
	assert.Equal(t, []string{"Mage", "Knight"}, names(survivors))
}

func TestEncounter_NoWinnerWhenAllDown(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b}, nil)
	require.NoError(t, err)
	_, _ = a.Health().TakeDamage(10)
	_, _ = b.Health().TakeDamage(10)

	assert.True(t, enc.Over())
	_, ok := enc.Winner()
	assert.False(t, ok)
	assert.Nil(t, enc.CurrentTurn())
	assert.Empty(t, enc.EndTurn())
}

func TestEncounter_RollInitiative(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 10, 0, 0)
	b := fighter(t, rules, "B", 10, 0, 0)
	c := fighter(t, rules, "C", 10, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b, c}, nil)
	require.NoError(t, err)

	enc.RollInitiative(&fixedSrc{vals: []int{4, 15, 4}})
	assert.Equal(t, []string{"B", "A", "C"}, names(enc.Combatants()))
	assert.Equal(t, 17, enc.Initiative(b))
	assert.Equal(t, 6, enc.Initiative(a))
	assert.Same(t, b, enc.CurrentTurn())
}

func TestEncounter_EffectsExpireOnHoldersTurns(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 30, 20, 20)
	b := fighter(t, rules, "B", 30, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b}, rules.Targets)
	require.NoError(t, err)
	hex, err := combat.NewDebuff(combat.Spec{Name: "Hex"}, "", 1, effect.Modifier{Defense: -2}, rules.Targets)
	require.NoError(t, err)
	require.NoError(t, a.AddAbility(hex))

	_, err = a.UseAbility("Hex", b)
	require.NoError(t, err)
	assert.Empty(t, enc.EndTurn(), "A's turn does not tick B's effects")
	assert.Equal(t, -2, b.Effects().Defense())

	expired := enc.EndTurn()
	require.Len(t, expired, 1)
	assert.Equal(t, effect.Key{Ability: "Hex", Target: b.ID}, expired[0].Key)
	assert.Equal(t, 0, b.Effects().Defense())
}

func TestPropertyEncounter_CurrentTurnAlwaysLiving(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rules := testRules()
		n := rapid.IntRange(2, 6).Draw(rt, "n")
		cs := make([]*combat.Character, 0, n)
		for i := 0; i < n; i++ {
			cs = append(cs, fighter(rt, rules, "c", 10, 0, 0))
		}
		enc, err := combat.NewEncounter(cs, rules.Targets)
		require.NoError(rt, err)

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "kill") {
				victim := cs[rapid.IntRange(0, n-1).Draw(rt, "victim")]
				_, _ = victim.Health().TakeDamage(10)
			}
			enc.EndTurn()
			cur := enc.CurrentTurn()
			if len(enc.Living()) > 0 && cur == nil {
				rt.Fatalf("living combatants remain but no current turn")
			}
		}
	})
}

func TestEncounter_CooldownBlocksCastersNextTurns(t *testing.T) {
	rules := testRules()
	rules.EnforceCooldowns = true
	a := fighter(t, rules, "A", 100, 0, 0)
	b := fighter(t, rules, "B", 100, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b}, rules.Targets)
	require.NoError(t, err)
	require.NoError(t, a.AddAbility(melee(t, rules, combat.Spec{Name: "Fireball", Cooldown: 1}, 4)))

	var results []error
	for turn := 0; turn < 4; turn++ {
		require.Same(t, a, enc.CurrentTurn())
		_, err := a.UseAbility("Fireball", b)
		results = append(results, err)
		enc.EndTurn()
		enc.EndTurn()
	}
	assert.NoError(t, results[0])
	assert.ErrorIs(t, results[1], combat.ErrOnCooldown)
	assert.NoError(t, results[2])
	assert.ErrorIs(t, results[3], combat.ErrOnCooldown)
}

func TestEncounter_SelfBuffLastsThroughOpponentsTurn(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 30, 0, 0)
	b := fighter(t, rules, "B", 30, 0, 0)
	enc, err := combat.NewEncounter([]*combat.Character{a, b}, rules.Targets)
	require.NoError(t, err)
	guard, err := combat.NewBuff(combat.Spec{Name: "Guard"}, "", 1, effect.Modifier{Defense: 5}, rules.Targets)
	require.NoError(t, err)
	require.NoError(t, a.AddAbility(guard))

	_, err = a.UseAbility("Guard", nil)
	require.NoError(t, err)
	assert.Empty(t, enc.EndTurn())

	require.Same(t, b, enc.CurrentTurn())
	assert.Equal(t, 5, a.Effects().Defense())
	out, err := b.Attack(a)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalDamage(), "5 damage against 5 defense")
	assert.Empty(t, enc.EndTurn())

	require.Same(t, a, enc.CurrentTurn())
	assert.Equal(t, 5, a.Effects().Defense(), "still covers A's own next turn")
	expired := enc.EndTurn()
	require.Len(t, expired, 1)
	assert.Equal(t, "Guard", expired[0].Key.Ability)
	assert.Equal(t, 0, a.Effects().Defense())
}
