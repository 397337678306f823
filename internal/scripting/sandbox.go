// Package scripting provides a sandboxed GopherLua execution environment for content
// scripts. The sandbox and manager have no dependency on game packages; the combat
// damage hook lives in damage.go as a thin bridge.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per script
// execution when no override is configured.
const DefaultInstructionLimit = 100_000

// countingContext is a context.Context that cancels itself after Done() has been called
// limit times. GopherLua's mainLoopWithContext calls Done() once per opcode, making this
// an exact instruction-count limit.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

// Done returns the underlying cancellation channel. Each call decrements the remaining
// counter; when it reaches zero the cancel function fires, terminating the Lua VM on the
// next opcode boundary.
func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

// newCountingContext returns a context that cancels after limit calls to Done().
// Precondition: limit > 0.
func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{
		Context:   base,
		cancel:    cancel,
		remaining: rem,
	}, cancel
}

// Sandbox is a GopherLua state with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Every execution limited to at most limit Lua opcodes
//
// Sandbox is not safe for concurrent use.
type Sandbox struct {
	L     *lua.LState
	limit int
}

// NewSandbox creates a Sandbox.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: The caller owns the Sandbox and must call Close when done.
func NewSandbox(instLimit int) *Sandbox {
	limit := instLimit
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	return &Sandbox{L: L, limit: limit}
}

// Limit returns the per-execution opcode budget.
func (s *Sandbox) Limit() int { return s.limit }

// DoFile executes the Lua file at path under the instruction limit.
func (s *Sandbox) DoFile(path string) error {
	return s.limited(func() error { return s.L.DoFile(path) })
}

// DoString executes src under the instruction limit.
func (s *Sandbox) DoString(src string) error {
	return s.limited(func() error { return s.L.DoString(src) })
}

// Call invokes fn in protected mode under the instruction limit and returns its first
// result, or LNil when it returned nothing.
func (s *Sandbox) Call(fn lua.LValue, args ...lua.LValue) (lua.LValue, error) {
	var ret lua.LValue = lua.LNil
	err := s.limited(func() error {
		if err := s.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = s.L.Get(-1)
		s.L.Pop(1)
		return nil
	})
	return ret, err
}

// Close releases the Lua state.
func (s *Sandbox) Close() { s.L.Close() }

// limited runs fn with a fresh opcode budget so one runaway call cannot starve later ones.
func (s *Sandbox) limited(fn func() error) error {
	ctx, cancel := newCountingContext(s.limit)
	s.L.SetContext(ctx)
	defer func() {
		s.L.RemoveContext()
		cancel()
	}()
	return fn()
}
