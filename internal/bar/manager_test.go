package bar

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, cat *testCatalog, path string) *Manager {
	t.Helper()
	return NewManager(ManagerOptions{
		Path:     path,
		Register: cat.register,
		Builtins: cat.builtins(),
	})
}

func TestManagerOmitsUnknownEntries(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json",
		`{"left": [{"component": "time"}, {"component": "unknown_widget"}, "space"]}`)
	m := newTestManager(t, cat, path)

	require.NoError(t, m.Load())
	left := m.BarComponents(Left)
	require.Len(t, left, 2)
	assert.Equal(t, "%H:%M", left[0].(*fakeComponent).text)
	assert.Equal(t, []string{"time", "space"}, m.ComponentNames(Left))
	assert.Empty(t, m.BarComponents(Middle))
	assert.Empty(t, m.BarComponents(Right))
}

func TestManagerMissingDocumentUsesDefaultLayout(t *testing.T) {
	cat := &testCatalog{}
	m := newTestManager(t, cat, filepath.Join(t.TempDir(), "bar.json"))

	require.NoError(t, m.Load())
	assert.True(t, m.Colorize())
	assert.Equal(t, []string{"time"}, m.ComponentNames(Middle))
	// only "space" of the default right bar is known to this catalog
	assert.Equal(t, []string{"space", "space"}, m.ComponentNames(Right))
}

func TestManagerLoadConstructionErrorIsFatal(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": ["time", "broken"]}`)
	m := newTestManager(t, cat, path)

	err := m.Load()
	require.Error(t, err)
	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "broken", cerr.Name)
	assert.Equal(t, 1, cerr.Index)
	require.Len(t, cat.created, 1)
	assert.True(t, cat.created[0].closed)
}

func TestManagerLoadSkipsInvalidOptions(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": [{"component": "wifi", "interface": 5}, "time"]}`)
	m := newTestManager(t, cat, path)

	require.NoError(t, m.Load())
	assert.Equal(t, []string{"time"}, m.ComponentNames(Left))
}

func TestManagerReloadRejectsInvalidOptions(t *testing.T) {
	cat := &testCatalog{}
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"right": [{"component": "wifi", "interface": "wlan0"}]}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())
	before := m.BarComponents(Right)[0]

	writeDocument(t, dir, "bar.json", `{"right": [{"component": "wifi", "interface": 5}]}`)
	err := m.Reload()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	require.Len(t, m.BarComponents(Right), 1)
	assert.Same(t, before, m.BarComponents(Right)[0])
}

func TestManagerReloadIsAtomic(t *testing.T) {
	cat := &testCatalog{}
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"left": ["time"], "colorize": true}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())
	original := m.BarComponents(Left)[0].(*fakeComponent)

	writeDocument(t, dir, "bar.json", `{"left": [{"component": "text", "text": "new"}, "broken"], "colorize": false}`)
	require.Error(t, m.Reload())

	assert.Same(t, original, m.BarComponents(Left)[0])
	assert.True(t, m.Colorize())
	assert.False(t, original.closed)
	partial := cat.created[len(cat.created)-1]
	assert.Equal(t, "new", partial.text)
	assert.True(t, partial.closed)
}

func TestManagerReloadMalformedDocumentKeepsSet(t *testing.T) {
	cat := &testCatalog{}
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"left": ["time"]}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())

	writeDocument(t, dir, "bar.json", `{"left": [`)
	require.Error(t, m.Reload())
	assert.Equal(t, []string{"time"}, m.ComponentNames(Left))
}

func TestManagerReloadSwapsAndClosesOldSet(t *testing.T) {
	cat := &testCatalog{}
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"left": ["time"]}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())
	old := m.BarComponents(Left)[0].(*fakeComponent)

	writeDocument(t, dir, "bar.json", `{"left": [{"component": "text", "text": "a"}], "right": ["space"], "colorize": false}`)
	require.NoError(t, m.Reload())

	assert.True(t, old.closed)
	assert.Equal(t, []string{"text"}, m.ComponentNames(Left))
	assert.Equal(t, []string{"space"}, m.ComponentNames(Right))
	assert.False(t, m.Colorize())
	assert.Equal(t, 2, m.Len())
}

func TestManagerUpdateSurvivesPanics(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": ["time", "space"]}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())
	left := m.BarComponents(Left)
	left[0].(*fakeComponent).panics = true

	m.Update(context.Background())

	first, second := left[0].(*fakeComponent), left[1].(*fakeComponent)
	assert.Equal(t, 1, first.updates)
	assert.Equal(t, 1, second.updates)
	assert.True(t, second.sawDone, "update context carries a deadline")
}

type stubScripts struct {
	loaded []string
	fail   map[string]error
}

func (s *stubScripts) Load(reg *Registry, name, path string) error {
	if err := s.fail[name]; err != nil {
		return err
	}
	s.loaded = append(s.loaded, name)
	reg.RegisterScript(name, func(Options) (Component, error) {
		return &fakeComponent{text: "script:" + name}, nil
	})
	return nil
}

func TestManagerScriptsOverrideBuiltins(t *testing.T) {
	cat := &testCatalog{}
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"left": ["time", "weather"], "scripts": {"time": "t.lua", "weather": "w.lua"}}`)
	scripts := &stubScripts{}
	m := NewManager(ManagerOptions{Path: path, Register: cat.register, Builtins: cat.builtins(), Scripts: scripts})

	require.NoError(t, m.Load())
	assert.Equal(t, []string{"time", "weather"}, scripts.loaded)
	left := m.BarComponents(Left)
	require.Len(t, left, 2)
	assert.Equal(t, "script:time", left[0].(*fakeComponent).text)
	assert.Equal(t, "script:weather", left[1].(*fakeComponent).text)
}

func TestManagerBrokenScriptAtStartupIsSkipped(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": ["weather", "time"], "scripts": {"weather": "w.lua"}}`)
	scripts := &stubScripts{fail: map[string]error{"weather": errors.New("parse error")}}
	m := NewManager(ManagerOptions{Path: path, Register: cat.register, Builtins: cat.builtins(), Scripts: scripts})

	require.NoError(t, m.Load())
	assert.Equal(t, []string{"time"}, m.ComponentNames(Left))
}

func TestManagerSuggestsCloseNames(t *testing.T) {
	cat := &testCatalog{}
	m := newTestManager(t, cat, "")
	reg := NewRegistry()
	cat.register(reg)

	assert.Contains(t, m.suggest(reg, "tim"), "time")
	assert.Contains(t, m.suggest(reg, "wifi0"), "wifi")
	assert.Empty(t, m.suggest(reg, UnknownComponent))
}

func TestManagerEmptyPathUsesDefaultDocument(t *testing.T) {
	cat := &testCatalog{}
	m := newTestManager(t, cat, "")
	require.NoError(t, m.Load())
	assert.Equal(t, []string{"time"}, m.ComponentNames(Middle))
	require.NoError(t, m.Reload())
}

func TestManagerCloseReleasesComponents(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": ["time"]}`)
	m := newTestManager(t, cat, path)
	require.NoError(t, m.Load())
	c := m.BarComponents(Left)[0].(*fakeComponent)

	m.Close()
	assert.True(t, c.closed)
	assert.Zero(t, m.Len())
}

func TestManagerNamesAndKinds(t *testing.T) {
	cat := &testCatalog{}
	path := writeDocument(t, t.TempDir(), "bar.json", `{"left": ["time"], "scripts": {"weather": "w.lua"}}`)
	m := NewManager(ManagerOptions{Path: path, Register: cat.register, Builtins: cat.builtins(), Scripts: &stubScripts{}})
	require.NoError(t, m.Load())

	assert.Equal(t, []string{"broken", "space", "text", "time", "weather", "wifi"}, m.Names(nil))
	kind, ok := m.Kind("weather")
	require.True(t, ok)
	assert.Equal(t, KindScript, kind)
	kind, ok = m.Kind("space")
	require.True(t, ok)
	assert.Equal(t, KindBuiltin, kind)
	_, ok = m.Kind("nope")
	assert.False(t, ok)
}
