package bar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the serialisation of a configuration document.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("unsupported configuration format %q", filepath.Ext(path))
}

// Options is the untyped option mapping attached to a document entry.
type Options map[string]interface{}

// Decode converts the options into the typed value pointed to by v. Keys v
// does not declare are ignored; values of the wrong type fail.
func (o Options) Decode(v interface{}) error {
	raw, err := json.Marshal(map[string]interface{}(o))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// String returns the string option key, or def when it is absent.
func (o Options) String(key, def string) string {
	if s, ok := o[key].(string); ok {
		return s
	}
	return def
}

// Entry is one element of a region list in the document.
type Entry struct {
	Region  Region
	Index   int
	Name    string
	Options Options
}

// Script binds a script component name to its source file.
type Script struct {
	Name string
	Path string
}

// Document is a parsed bar configuration.
type Document struct {
	Path     string
	Colorize bool
	Left     []Entry
	Middle   []Entry
	Right    []Entry
	// Scripts are sorted by name so later names override earlier ones
	// deterministically.
	Scripts []Script
}

// Entries returns the entries placed in region r.
func (d *Document) Entries(r Region) []Entry {
	switch r {
	case Left:
		return d.Left
	case Middle:
		return d.Middle
	case Right:
		return d.Right
	}
	return nil
}

// Len counts entries across every region.
func (d *Document) Len() int {
	return len(d.Left) + len(d.Middle) + len(d.Right)
}

type rawDocument struct {
	Colorize *bool             `json:"colorize" toml:"colorize" yaml:"colorize"`
	Left     []interface{}     `json:"left" toml:"left" yaml:"left"`
	Middle   []interface{}     `json:"middle" toml:"middle" yaml:"middle"`
	Right    []interface{}     `json:"right" toml:"right" yaml:"right"`
	Scripts  map[string]string `json:"scripts" toml:"scripts" yaml:"scripts"`
}

// DefaultDocument is the layout used when no document exists yet.
func DefaultDocument() *Document {
	entry := func(r Region, i int, name string) Entry {
		return Entry{Region: r, Index: i, Name: name, Options: Options{"component": name}}
	}
	return &Document{
		Colorize: true,
		Left:     []Entry{entry(Left, 0, "workspaces")},
		Middle:   []Entry{entry(Middle, 0, "time")},
		Right: []Entry{
			entry(Right, 0, "cpu"),
			entry(Right, 1, "space"),
			entry(Right, 2, "ram"),
			entry(Right, 3, "space"),
			entry(Right, 4, "battery"),
			entry(Right, 5, "error_icon"),
		},
	}
}

// LoadDocument reads and parses the document at path. A missing file yields
// an error matching fs.ErrNotExist.
func LoadDocument(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	doc.Path = path
	for i := range doc.Scripts {
		doc.Scripts[i].Path = resolveScriptPath(filepath.Dir(path), doc.Scripts[i].Path)
	}
	return doc, nil
}

// ParseDocument decodes a document from data.
func ParseDocument(data []byte, format Format) (*Document, error) {
	var raw rawDocument
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unknown document format")
	}

	doc := &Document{Colorize: true}
	if raw.Colorize != nil {
		doc.Colorize = *raw.Colorize
	}
	doc.Left = entries(Left, raw.Left)
	doc.Middle = entries(Middle, raw.Middle)
	doc.Right = entries(Right, raw.Right)

	names := make([]string, 0, len(raw.Scripts))
	for name := range raw.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.Scripts = append(doc.Scripts, Script{Name: name, Path: raw.Scripts[name]})
	}
	return doc, nil
}

func entries(region Region, raw []interface{}) []Entry {
	out := make([]Entry, 0, len(raw))
	for i, item := range raw {
		e := Entry{Region: region, Index: i, Name: ComponentName(item)}
		switch v := item.(type) {
		case map[string]interface{}:
			e.Options = Options(v)
		case string:
			e.Options = Options{"component": v}
		default:
			e.Options = Options{}
		}
		out = append(out, e)
	}
	return out
}

func resolveScriptPath(dir, path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return path
}

// DefaultPath returns the first existing document under the user config
// directory, or the JSON location when none exists.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	base := filepath.Join(dir, "panelbar")
	for _, name := range []string{"bar.json", "bar.toml", "bar.yaml", "bar.yml"} {
		candidate := filepath.Join(base, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return filepath.Join(base, "bar.json")
}
