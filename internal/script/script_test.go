package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "panelbar-script")
	if err != nil {
		panic(err)
	}
	logging.Configure(filepath.Join(dir, "test.log"))
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "component.lua")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func create(t *testing.T, name, body string, opts bar.Options) *Component {
	t.Helper()
	reg := bar.NewRegistry()
	require.NoError(t, NewLoader().Load(reg, name, writeScript(t, body)))
	kind, ok := reg.Kind(name)
	require.True(t, ok)
	require.Equal(t, bar.KindScript, kind)

	c, ok, err := reg.TryCreate(name, opts)
	require.True(t, ok)
	require.NoError(t, err)
	sc := c.(*Component)
	t.Cleanup(func() { sc.Close() })
	return sc
}

const counterScript = `
local n = 0
function update()
  n = n + 1
end
function render(colorize)
  return "n=" .. n
end
`

func TestScriptUpdateAndRenderString(t *testing.T) {
	c := create(t, "counter", counterScript, nil)
	c.Update(context.Background())
	c.Update(context.Background())

	frags, areas := c.Render(true, 0, 0)
	assert.Equal(t, "n=2", bar.Text(frags))
	assert.Empty(t, areas)
}

func TestScriptRenderTableWithClicks(t *testing.T) {
	c := create(t, "ws", `
function update() end
function render(colorize)
  return {
    "[",
    {text = "1", fg = "red", bold = true, workspace = 1},
    {text = "web", window = "0xabc"},
    "]",
  }
end
`, nil)
	c.Update(context.Background())

	frags, areas := c.Render(true, 10, 2)
	assert.Equal(t, "[1web]", bar.Text(frags))
	require.Len(t, areas, 2)
	assert.Equal(t, bar.ClickArea{X: 11, Y: 2, Width: 1, Height: 1, Target: bar.Workspace("1")}, areas[0])
	assert.Equal(t, bar.ClickArea{X: 12, Y: 2, Width: 3, Height: 1, Target: bar.Window("0xabc")}, areas[1])
	assert.True(t, frags[1].Style.GetBold())

	plain, _ := c.Render(false, 10, 2)
	assert.False(t, plain[1].Style.GetBold())
}

func TestScriptSeesOptions(t *testing.T) {
	c := create(t, "greet", `
function update() end
function render(colorize)
  return options.greeting .. " " .. options.count .. " " .. tostring(options.nested.on)
end
`, bar.Options{"component": "greet", "greeting": "hi", "count": 3, "nested": map[string]interface{}{"on": true}})

	frags, _ := c.Render(false, 0, 0)
	assert.Equal(t, "hi 3 true", bar.Text(frags))
}

func TestScriptRuntimeErrorDegrades(t *testing.T) {
	c := create(t, "flaky", `
fail = true
function update()
  if fail then error("sensor gone") end
end
function render(colorize) return "fine" end
`, nil)

	c.Update(context.Background())
	frags, _ := c.Render(false, 0, 0)
	assert.Equal(t, "⚠ flaky", bar.Text(frags))
	require.Error(t, c.reporter.Err())

	require.NoError(t, c.L.DoString("fail = false"))
	c.Update(context.Background())
	frags, _ = c.Render(false, 0, 0)
	assert.Equal(t, "fine", bar.Text(frags))
}

func TestScriptRenderErrorDegrades(t *testing.T) {
	c := create(t, "bad", `
function update() end
function render(colorize) return nil .. "x" end
`, nil)
	frags, areas := c.Render(true, 0, 0)
	assert.Equal(t, "⚠ bad", bar.Text(frags))
	assert.Empty(t, areas)
}

func TestScriptUpdateHonoursDeadline(t *testing.T) {
	c := create(t, "spin", `
function update() while true do end end
function render(colorize) return "never" end
`, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Update(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("update did not stop at the deadline")
	}
	frags, _ := c.Render(false, 0, 0)
	assert.Equal(t, "⚠ spin", bar.Text(frags))
}

func TestScriptSandbox(t *testing.T) {
	c := create(t, "probe", `
function update() end
function render(colorize)
  return tostring(io) .. " " .. tostring(os.execute) .. " " .. tostring(require) .. " " .. type(os.date)
end
`, nil)
	frags, _ := c.Render(false, 0, 0)
	assert.Equal(t, "nil nil nil function", bar.Text(frags))
}

func TestLoadErrors(t *testing.T) {
	reg := bar.NewRegistry()
	loader := NewLoader()

	err := loader.Load(reg, "gone", filepath.Join(t.TempDir(), "missing.lua"))
	assert.True(t, errors.Is(err, ErrUnreadable))

	err = loader.Load(reg, "syntax", writeScript(t, "function update( end"))
	assert.True(t, errors.Is(err, ErrParse))

	err = loader.Load(reg, "half", writeScript(t, "function update() end\nrender = 5"))
	assert.True(t, errors.Is(err, ErrMissingEntryPoint))
	var lerr *LoadError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "half", lerr.Name)

	err = loader.Load(reg, "boom", writeScript(t, `error("at load")`))
	assert.True(t, errors.Is(err, ErrEvaluate))

	assert.Empty(t, reg.Names())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := create(t, "counter", counterScript, nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	c.Update(context.Background())
	frags, _ := c.Render(false, 0, 0)
	assert.Equal(t, "⚠ counter", bar.Text(frags))
}
