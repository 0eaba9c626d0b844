package bar

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentJSON(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"left": ["workspaces", {"component": "time", "format": "%H"}],
		"right": [{"format": "x"}],
		"scripts": {"b": "b.lua", "a": "a.lua"}
	}`), FormatJSON)
	require.NoError(t, err)

	assert.True(t, doc.Colorize)
	require.Len(t, doc.Left, 2)
	assert.Equal(t, "workspaces", doc.Left[0].Name)
	assert.Equal(t, "time", doc.Left[1].Name)
	assert.Equal(t, 1, doc.Left[1].Index)
	assert.Equal(t, "%H", doc.Left[1].Options.String("format", ""))
	assert.Empty(t, doc.Middle)
	require.Len(t, doc.Right, 1)
	assert.Equal(t, UnknownComponent, doc.Right[0].Name)
	assert.Equal(t, []Script{{Name: "a", Path: "a.lua"}, {Name: "b", Path: "b.lua"}}, doc.Scripts)
}

func TestParseDocumentTOML(t *testing.T) {
	doc, err := ParseDocument([]byte(`
colorize = false
middle = ["time", { component = "cpu", sparkline = true }]
`), FormatTOML)
	require.NoError(t, err)

	assert.False(t, doc.Colorize)
	require.Len(t, doc.Middle, 2)
	assert.Equal(t, "cpu", doc.Middle[1].Name)
	assert.Equal(t, Middle, doc.Middle[1].Region)

	var opts struct {
		Sparkline bool `json:"sparkline"`
	}
	require.NoError(t, doc.Middle[1].Options.Decode(&opts))
	assert.True(t, opts.Sparkline)
}

func TestParseDocumentYAML(t *testing.T) {
	doc, err := ParseDocument([]byte(`
right:
  - ram
  - component: battery
    low: 15
`), FormatYAML)
	require.NoError(t, err)

	require.Len(t, doc.Right, 2)
	assert.Equal(t, "battery", doc.Right[1].Name)
	var opts struct {
		Low int `json:"low"`
	}
	require.NoError(t, doc.Right[1].Options.Decode(&opts))
	assert.Equal(t, 15, opts.Low)
}

func TestParseDocumentMalformed(t *testing.T) {
	_, err := ParseDocument([]byte(`{"left": [`), FormatJSON)
	assert.Error(t, err)
}

func TestLoadDocumentResolvesScripts(t *testing.T) {
	dir := t.TempDir()
	path := writeDocument(t, dir, "bar.json", `{"scripts": {"weather": "scripts/weather.lua", "abs": "/opt/x.lua"}}`)

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	require.Len(t, doc.Scripts, 2)
	assert.Equal(t, "/opt/x.lua", doc.Scripts[0].Path)
	assert.Equal(t, filepath.Join(dir, "scripts", "weather.lua"), doc.Scripts[1].Path)
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "bar.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{"a.json": FormatJSON, "a.TOML": FormatTOML, "a.yml": FormatYAML, "a.yaml": FormatYAML} {
		got, err := FormatFor(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := FormatFor("bar.ini")
	assert.Error(t, err)
}

func TestDefaultPathPrefersExisting(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "panelbar", "bar.json"), DefaultPath())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "panelbar"), 0o755))
	writeDocument(t, filepath.Join(dir, "panelbar"), "bar.yaml", "left: []\n")
	assert.Equal(t, filepath.Join(dir, "panelbar", "bar.yaml"), DefaultPath())
}
