package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := dice.NewLoggedRoller(dice.NewSeededSource(7), logger)
	mgr := scripting.NewManager(roller, logger)
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func TestManager_LoadDirectory_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir, 0))
	assert.True(t, mgr.Loaded())
	assert.True(t, mgr.HasHook("test_hook"))
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_LoadDirectory_LexicographicOrder(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	files := map[string]string{
		"b.lua":     `value = value .. "b"`,
		"a.lua":     `value = "a"`,
		"z.lua":     `function get() return value end`,
		"notes.txt": `not lua`,
	}
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}
	require.NoError(t, mgr.LoadDirectory(dir, 0))

	loaded := mgr.Files()
	require.Len(t, loaded, 3)
	assert.Equal(t, "a.lua", filepath.Base(loaded[0]))
	assert.Equal(t, "z.lua", filepath.Base(loaded[2]))

	ret, err := mgr.CallHook("get")
	require.NoError(t, err)
	assert.Equal(t, lua.LString("ab"), ret)
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.LoadDirectory(dir, 0))
	assert.False(t, mgr.HasHook("nonexistent_hook"))
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_NotLoaded_ReturnsNil(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.False(t, mgr.Loaded())
	assert.Nil(t, mgr.NewTable())
	ret, err := mgr.CallHook("some_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_RuntimeError_LogsWarn(t *testing.T) {
	mgr, logs := newTestManager(t)
	dir := writeTempLua(t, "bad.lua", `
		function bad_hook()
			error("intentional")
		end
	`)
	require.NoError(t, mgr.LoadDirectory(dir, 0))
	ret, err := mgr.CallHook("bad_hook")
	assert.Error(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestManager_LoadDirectory_SyntaxErrorKeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	good := writeTempLua(t, "good.lua", `function hook() return 1 end`)
	require.NoError(t, mgr.LoadDirectory(good, 0))

	bad := writeTempLua(t, "bad.lua", `function (`)
	assert.Error(t, mgr.LoadDirectory(bad, 0))

	ret, err := mgr.CallHook("hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(1), ret)
}

func TestManager_LoadDirectory_MissingDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDirectory(filepath.Join(t.TempDir(), "missing"), 0))
	assert.False(t, mgr.Loaded())
}

func TestManager_Close(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDirectory(writeTempLua(t, "x.lua", `function hook() return 1 end`), 0))
	mgr.Close()
	assert.False(t, mgr.Loaded())
	assert.Empty(t, mgr.Files())
	ret, err := mgr.CallHook("hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_ConcurrentCallHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDirectory(writeTempLua(t, "x.lua", `function double(n) return n * 2 end`), 0))

	var wg sync.WaitGroup
	results := make([]lua.LValue, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ret, err := mgr.CallHook("double", lua.LNumber(i))
			assert.NoError(t, err)
			results[i] = ret
		}(i)
	}
	wg.Wait()
	for i, ret := range results {
		assert.Equal(t, lua.LNumber(i*2), ret)
	}
}
