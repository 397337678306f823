package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.debug/info/warn/error(msg)  write to the manager's logger
//	engine.dice.roll(expr)                 returns {total, dice, modifier}; dice is the sum of the dice
//
// Precondition: L must come from NewSandbox.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	logger := m.logger.Named("lua")
	mod := L.NewTable()
	levels := map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
	}
	for name, fn := range levels {
		L.SetField(mod, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}
	return mod
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "roll", L.NewFunction(func(L *lua.LState) int {
		result, err := m.roller.RollExpr("lua", L.CheckString(1))
		if err != nil {
			L.RaiseError("engine.dice.roll: %s", err.Error())
			return 0
		}
		t := L.NewTable()
		L.SetField(t, "total", lua.LNumber(result.Total()))
		L.SetField(t, "dice", lua.LNumber(result.Sum()))
		L.SetField(t, "modifier", lua.LNumber(result.Modifier))
		L.Push(t)
		return 1
	}))
	return mod
}
