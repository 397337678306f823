package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/effect"
	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

type recordingHook struct {
	reqs   []combat.DamageRequest
	adjust func(raw int) int
}

func (h *recordingHook) AdjustDamage(req combat.DamageRequest) int {
	h.reqs = append(h.reqs, req)
	return h.adjust(req.Raw)
}

func leveled(t require.TestingT, rules *combat.Rules, name string, level int) *combat.Character {
	h, err := resource.NewStandardHealth(60)
	require.NoError(t, err)
	m, err := resource.NewArcaneMana(0)
	require.NoError(t, err)
	c, err := combat.NewCharacter(combat.CharacterSpec{Name: name, Level: level, Health: h, Mana: m}, rules)
	require.NoError(t, err)
	return c
}

func TestDamageCalculator_LevelScaling(t *testing.T) {
	rules := testRules()
	rules.Damage = combat.NewDamageCalculator(2)
	a := leveled(t, rules, "A", 3)
	b := leveled(t, rules, "B", 1)
	slash := melee(t, rules, combat.Spec{Name: "Slash"}, 10)
	assert.Equal(t, 14, rules.Damage.Calculate(slash, a, b))
	assert.Equal(t, 10, rules.Damage.Calculate(slash, b, a))
}

func TestDamageCalculator_DefenseFloorsAtZero(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 30, 0, 0)
	b := fighter(t, rules, "B", 30, 0, 0)
	require.NoError(t, b.Effects().Apply(effect.Active{
		Key: effect.Key{Ability: "Stoneskin", Target: b.ID}, Modifier: effect.Modifier{Defense: 50}, Remaining: 2,
	}))
	slash := melee(t, rules, combat.Spec{Name: "Slash"}, 10)
	assert.Equal(t, 0, rules.Damage.Calculate(slash, a, b))

	out, err := slash.Activate(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, out.TotalDamage())
	assert.Equal(t, 30, b.Health().Current())
}

func TestDamageCalculator_Variance(t *testing.T) {
	src := &fixedSrc{vals: []int{2}}
	rules := testRules()
	rules.Damage = combat.NewDamageCalculator(0, combat.WithRoller(dice.NewLoggedRoller(src, zap.NewNop())))
	a := fighter(t, rules, "A", 30, 0, 0)
	b := fighter(t, rules, "B", 30, 0, 0)

	plain := melee(t, rules, combat.Spec{Name: "Slash"}, 5)
	varied := melee(t, rules, combat.Spec{Name: "Wild Swing", Variance: "1d4+1"}, 5)
	assert.Equal(t, 5, rules.Damage.Calculate(plain, a, b))
	assert.Equal(t, 9, rules.Damage.Calculate(varied, a, b))

	expr, ok := varied.Variance()
	require.True(t, ok)
	assert.Equal(t, 4, expr.Sides)
	_, ok = plain.Variance()
	assert.False(t, ok)
}

func TestDamageCalculator_VarianceIgnoredWithoutRoller(t *testing.T) {
	rules := testRules()
	a := fighter(t, rules, "A", 30, 0, 0)
	b := fighter(t, rules, "B", 30, 0, 0)
	varied := melee(t, rules, combat.Spec{Name: "Wild Swing", Variance: "2d6"}, 5)
	assert.Equal(t, 5, rules.Damage.Calculate(varied, a, b))
}

func TestDamageCalculator_Hook(t *testing.T) {
	hook := &recordingHook{adjust: func(raw int) int { return raw * 2 }}
	rules := testRules()
	rules.Damage = combat.NewDamageCalculator(1, combat.WithHook(hook))
	a := leveled(t, rules, "A", 2)
	b := fighter(t, rules, "B", 30, 0, 0)
	spell, err := combat.NewSpellCast(combat.Spec{Name: "Bolt"}, "lightning", 4, rules.Damage, rules.Targets)
	require.NoError(t, err)

	assert.Equal(t, 10, rules.Damage.Calculate(spell, a, b))
	require.Len(t, hook.reqs, 1)
	req := hook.reqs[0]
	assert.Equal(t, "Bolt", req.Ability)
	assert.Equal(t, combat.KindSpell, req.Kind)
	assert.Equal(t, 4, req.Power)
	assert.Equal(t, "A", req.CasterName)
	assert.Equal(t, 2, req.CasterLevel)
	assert.Equal(t, "B", req.TargetName)
	assert.Equal(t, 30, req.TargetHealth)
	assert.Equal(t, 30, req.TargetMaxHealth)
	assert.Equal(t, 5, req.Raw)
}

func TestDamageCalculator_NegativeHookClamped(t *testing.T) {
	rules := testRules()
	rules.Damage = combat.NewDamageCalculator(0, combat.WithHook(&recordingHook{adjust: func(int) int { return -7 }}))
	a := fighter(t, rules, "A", 30, 0, 0)
	b := fighter(t, rules, "B", 30, 0, 0)
	assert.Equal(t, 0, rules.Damage.Calculate(melee(t, rules, combat.Spec{Name: "Slash"}, 5), a, b))
}

func TestPropertyDamageCalculator_NeverNegativeAndDeterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		rules := testRules()
		rules.Damage = combat.NewDamageCalculator(rapid.IntRange(0, 5).Draw(rt, "scaling"))
		a := leveled(rt, rules, "A", rapid.IntRange(1, 20).Draw(rt, "level"))
		b := leveled(rt, rules, "B", 1)
		require.NoError(rt, a.Effects().Apply(effect.Active{
			Key:       effect.Key{Ability: "p", Target: a.ID},
			Modifier:  effect.Modifier{Power: rapid.IntRange(-30, 30).Draw(rt, "power_mod")},
			Remaining: effect.Permanent,
		}))
		require.NoError(rt, b.Effects().Apply(effect.Active{
			Key:       effect.Key{Ability: "d", Target: b.ID},
			Modifier:  effect.Modifier{Defense: rapid.IntRange(-30, 30).Draw(rt, "defense_mod")},
			Remaining: effect.Permanent,
		}))
		slash := melee(rt, rules, combat.Spec{Name: "Slash"}, rapid.IntRange(0, 50).Draw(rt, "base"))

		first := rules.Damage.Calculate(slash, a, b)
		if first < 0 {
			rt.Fatalf("negative damage %d", first)
		}
		if again := rules.Damage.Calculate(slash, a, b); again != first {
			rt.Fatalf("calculation not deterministic: %d then %d", first, again)
		}
	})
}
