package scripting

import (
	"math"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// DamageHookName is the Lua global consulted for every damage calculation:
//
//	function calculate_damage(ability, caster, target, raw) return raw end
//
// ability has name, kind and power; caster has name and level; target has name, hp and max_hp.
const DamageHookName = "calculate_damage"

// DamageHook routes combat damage through the loaded scripts.
// It implements combat.DamageHook.
type DamageHook struct {
	mgr    *Manager
	logger *zap.Logger
}

// NewDamageHook creates a DamageHook over mgr.
//
// Precondition: mgr and logger must be non-nil.
func NewDamageHook(mgr *Manager, logger *zap.Logger) *DamageHook {
	return &DamageHook{mgr: mgr, logger: logger}
}

// AdjustDamage calls calculate_damage and returns its result truncated to an integer.
// Results beyond the int range, including math.huge, saturate. The raw value is kept
// when no script defines the hook, the hook fails, or it returns NaN or a non-number.
func (h *DamageHook) AdjustDamage(req combat.DamageRequest) int {
	ability := h.mgr.NewTable()
	if ability == nil {
		return req.Raw
	}
	ability.RawSetString("name", lua.LString(req.Ability))
	ability.RawSetString("kind", lua.LString(req.Kind.String()))
	ability.RawSetString("power", lua.LNumber(req.Power))

	caster := h.mgr.NewTable()
	caster.RawSetString("name", lua.LString(req.CasterName))
	caster.RawSetString("level", lua.LNumber(req.CasterLevel))

	target := h.mgr.NewTable()
	target.RawSetString("name", lua.LString(req.TargetName))
	target.RawSetString("hp", lua.LNumber(req.TargetHealth))
	target.RawSetString("max_hp", lua.LNumber(req.TargetMaxHealth))

	ret, err := h.mgr.CallHook(DamageHookName, ability, caster, target, lua.LNumber(req.Raw))
	if err != nil {
		return req.Raw
	}
	switch v := ret.(type) {
	case lua.LNumber:
		f := float64(v)
		switch {
		case math.IsNaN(f):
			h.logger.Warn("scripting: damage hook returned NaN", zap.String("ability", req.Ability))
			return req.Raw
		case f >= math.MaxInt:
			return math.MaxInt
		case f <= math.MinInt:
			return math.MinInt
		}
		return int(f)
	case *lua.LNilType:
		return req.Raw
	default:
		h.logger.Warn("scripting: damage hook returned a non-number",
			zap.String("ability", req.Ability),
			zap.String("type", ret.Type().String()),
		)
		return req.Raw
	}
}
