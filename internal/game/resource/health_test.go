package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/resource"
)

func standard(t testing.TB, maxHP int) *resource.StandardHealth {
	t.Helper()
	h, err := resource.NewStandardHealth(maxHP)
	require.NoError(t, err)
	return h
}

func armored(t testing.TB, maxHP, pct int) *resource.ArmoredHealth {
	t.Helper()
	h, err := resource.NewArmoredHealth(maxHP, pct)
	require.NoError(t, err)
	return h
}

func TestStandardHealth_LethalDamage(t *testing.T) {
	h := standard(t, 100)
	applied, err := h.TakeDamage(150)
	require.NoError(t, err)
	assert.Equal(t, 100, applied)
	assert.Equal(t, 0, h.Current())
	assert.False(t, h.IsAlive())
}

func TestStandardHealth_PartialDamage(t *testing.T) {
	h := standard(t, 100)
	applied, err := h.TakeDamage(30)
	require.NoError(t, err)
	assert.Equal(t, 30, applied)
	assert.Equal(t, 70, h.Current())
	assert.True(t, h.IsAlive())
}

func TestStandardHealth_NegativeDamageRejected(t *testing.T) {
	h := standard(t, 50)
	_, err := h.TakeDamage(-5)
	assert.ErrorIs(t, err, resource.ErrInvalidArgument)
	assert.Equal(t, 50, h.Current())
}

func TestHealth_HealCapsAtMax(t *testing.T) {
	h := standard(t, 40)
	_, err := h.TakeDamage(10)
	require.NoError(t, err)
	restored, err := h.Heal(25)
	require.NoError(t, err)
	assert.Equal(t, 10, restored)
	assert.Equal(t, 40, h.Current())
}

func TestHealth_NegativeHealRejected(t *testing.T) {
	h := armored(t, 40, 50)
	_, err := h.TakeDamage(10)
	require.NoError(t, err)
	before := h.Current()
	_, err = h.Heal(-1)
	assert.ErrorIs(t, err, resource.ErrInvalidArgument)
	assert.Equal(t, before, h.Current())
}

func TestNewStandardHealth_NegativeMaxRejected(t *testing.T) {
	_, err := resource.NewStandardHealth(-1)
	assert.ErrorIs(t, err, resource.ErrInvalidArgument)
}

func TestArmoredHealth_ReducesDamage(t *testing.T) {
	h := armored(t, 100, 25)
	applied, err := h.TakeDamage(40)
	require.NoError(t, err)
	assert.Equal(t, 30, applied)
	assert.Equal(t, 70, h.Current())
}

func TestArmoredHealth_OverwhelmingBlowBypassesArmor(t *testing.T) {
	h := armored(t, 100, 90)
	_, err := h.TakeDamage(100)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Current())
	assert.False(t, h.IsAlive())
}

func TestArmoredHealth_FullReductionAbsorbsSmallHits(t *testing.T) {
	h := armored(t, 100, 100)
	applied, err := h.TakeDamage(99)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)
	assert.Equal(t, 100, h.Current())
}

func TestNewArmoredHealth_ReductionOutOfRange(t *testing.T) {
	_, err := resource.NewArmoredHealth(10, 101)
	assert.ErrorIs(t, err, resource.ErrInvalidArgument)
	_, err = resource.NewArmoredHealth(10, -1)
	assert.ErrorIs(t, err, resource.ErrInvalidArgument)
}

func TestHealth_Kinds(t *testing.T) {
	assert.Equal(t, resource.KindStandard, standard(t, 1).Kind())
	assert.Equal(t, resource.KindArmored, armored(t, 1, 0).Kind())
}

// drawHealth builds either Health variant from rapid input.
func drawHealth(t *rapid.T) resource.Health {
	maxHP := rapid.IntRange(1, 500).Draw(t, "max")
	if rapid.Bool().Draw(t, "armored") {
		pct := rapid.IntRange(0, 100).Draw(t, "pct")
		h, err := resource.NewArmoredHealth(maxHP, pct)
		if err != nil {
			t.Fatal(err)
		}
		return h
	}
	h, err := resource.NewStandardHealth(maxHP)
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestPropertyHealth_OverkillDrivesToExactlyZero(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := drawHealth(t)
		amount := rapid.IntRange(h.Max(), h.Max()*3).Draw(t, "amount")
		if _, err := h.TakeDamage(amount); err != nil {
			t.Fatal(err)
		}
		if h.Current() != 0 {
			t.Fatalf("damage %d >= max %d left %d hp", amount, h.Max(), h.Current())
		}
		if h.IsAlive() {
			t.Fatal("IsAlive must be false at 0 hp")
		}
	})
}

func TestPropertyHealth_NeverNegativeNeverRaisedByDamage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := drawHealth(t)
		hits := rapid.SliceOf(rapid.IntRange(0, 200)).Draw(t, "hits")
		for _, hit := range hits {
			before := h.Current()
			if _, err := h.TakeDamage(hit); err != nil {
				t.Fatal(err)
			}
			if h.Current() > before {
				t.Fatalf("TakeDamage(%d) raised hp %d -> %d", hit, before, h.Current())
			}
			if h.Current() < 0 {
				t.Fatalf("hp went negative: %d", h.Current())
			}
		}
	})
}

func TestPropertyHealth_HealNeverExceedsMax(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := drawHealth(t)
		dmg := rapid.IntRange(0, h.Max()).Draw(t, "dmg")
		heal := rapid.IntRange(0, 1000).Draw(t, "heal")
		if _, err := h.TakeDamage(dmg); err != nil {
			t.Fatal(err)
		}
		if _, err := h.Heal(heal); err != nil {
			t.Fatal(err)
		}
		if h.Current() > h.Max() {
			t.Fatalf("hp %d exceeds max %d", h.Current(), h.Max())
		}
	})
}

func TestPropertyHealth_IsAliveIffPositive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := drawHealth(t)
		dmg := rapid.IntRange(0, h.Max()*2).Draw(t, "dmg")
		if _, err := h.TakeDamage(dmg); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, h.Current() > 0, h.IsAlive())
	})
}
