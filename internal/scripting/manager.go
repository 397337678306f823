package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// Manager owns one sandboxed VM loaded from a script directory and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook; calls are serialized on one Lua state.
type Manager struct {
	mu      sync.Mutex
	sandbox *Sandbox
	files   []string
	roller  *dice.Roller
	logger  *zap.Logger
}

// NewManager creates a Manager with no VM loaded.
//
// Precondition: roller and logger must be non-nil.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	return &Manager{roller: roller, logger: logger}
}

// LoadDirectory creates a sandboxed VM, registers all engine.* modules, then executes
// every *.lua file in scriptDir in lexicographic order. A previously loaded VM is
// replaced only when every file loads.
//
// Precondition: scriptDir must be a readable directory; instLimit >= 0.
// Postcondition: Loaded() is true on success; on error the previous VM is untouched.
func (m *Manager) LoadDirectory(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	sb := NewSandbox(instLimit)
	m.RegisterModules(sb.L)
	for _, path := range luaFiles {
		if err := sb.DoFile(path); err != nil {
			sb.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.sandbox != nil {
		m.sandbox.Close()
	}
	m.sandbox = sb
	m.files = luaFiles
	m.mu.Unlock()

	m.logger.Info("scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
		zap.Int("instruction_limit", sb.Limit()),
	)
	return nil
}

// Loaded reports whether a VM is available.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sandbox != nil
}

// Files returns the script paths executed by the last successful LoadDirectory.
func (m *Manager) Files() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.files...)
}

// HasHook reports whether the loaded scripts define a global function named hook.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sandbox == nil {
		return false
	}
	_, ok := m.sandbox.L.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if no VM is loaded
// or the hook is not defined. Lua runtime errors, including exhausting the instruction
// limit, are logged at Warn level and returned wrapped.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sandbox == nil {
		m.logger.Debug("scripting: no VM loaded", zap.String("hook", hook))
		return lua.LNil, nil
	}
	fn := m.sandbox.L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}
	ret, err := m.sandbox.Call(fn, args...)
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, fmt.Errorf("scripting: hook %q: %w", hook, err)
	}
	return ret, nil
}

// NewTable creates a table owned by the loaded VM, or nil when none is loaded.
// Arguments passed to CallHook should be built with it.
func (m *Manager) NewTable() *lua.LTable {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sandbox == nil {
		return nil
	}
	return m.sandbox.L.NewTable()
}

// Close releases the VM. The Manager may be reloaded afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sandbox != nil {
		m.sandbox.Close()
		m.sandbox = nil
		m.files = nil
	}
}
