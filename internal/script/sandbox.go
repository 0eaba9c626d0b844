package script

import (
	"encoding/json"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/atomicstack/panelbar/internal/logging"
)

// newState opens an interpreter with the libraries scripts may use. Scripts
// can format dates and read clocks but cannot touch the filesystem, spawn
// processes or load other chunks.
func newState(name string) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
		{lua.OsLibName, lua.OpenOs},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	full, _ := L.GetGlobal("os").(*lua.LTable)
	reduced := L.NewTable()
	if full != nil {
		for _, fn := range []string{"date", "time", "clock", "difftime"} {
			reduced.RawSetString(fn, full.RawGetString(fn))
		}
	}
	L.SetGlobal("os", reduced)

	for _, global := range []string{"dofile", "loadfile", "require", "module"} {
		L.SetGlobal(global, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		logging.Trace("script.print", map[string]interface{}{"script": name, "message": strings.Join(parts, "\t")})
		return 0
	}))
	return L
}

// toLua converts a decoded option value into its Lua counterpart.
func toLua(L *lua.LState, v interface{}) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return lua.LString(val.String())
		}
		return lua.LNumber(f)
	case []interface{}:
		tbl := L.NewTable()
		for _, item := range val {
			tbl.Append(toLua(L, item))
		}
		return tbl
	case map[string]interface{}:
		tbl := L.NewTable()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.RawSetString(k, toLua(L, val[k]))
		}
		return tbl
	default:
		return lua.LNil
	}
}
