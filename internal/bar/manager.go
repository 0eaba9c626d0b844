package bar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/panelbar/internal/logging"
	"github.com/atomicstack/panelbar/internal/logging/events"
)

// DefaultUpdateTimeout bounds a single component refresh.
const DefaultUpdateTimeout = 2 * time.Second

// ScriptLoader compiles a script file and registers it under name.
type ScriptLoader interface {
	Load(reg *Registry, name, path string) error
}

// ManagerOptions wires the manager to its component sources.
type ManagerOptions struct {
	// Path is the configuration document. Empty means DefaultDocument.
	Path string
	// Register populates a fresh registry with configurable built-ins.
	Register func(*Registry)
	// Builtins are components that take no options.
	Builtins map[string]func() Component
	// Scripts loads the document's script components. Nil disables scripts.
	Scripts       ScriptLoader
	UpdateTimeout time.Duration
}

type instance struct {
	region    Region
	name      string
	component Component
}

type componentSet struct {
	doc      *Document
	registry *Registry
	regions  [3][]instance
}

func (s *componentSet) len() int {
	n := 0
	for _, list := range s.regions {
		n += len(list)
	}
	return n
}

func (s *componentSet) close() {
	for _, list := range s.regions {
		for _, inst := range list {
			if closer, ok := inst.component.(io.Closer); ok {
				if err := closer.Close(); err != nil {
					events.Component.Error(inst.name, err)
				}
			}
		}
	}
}

// Manager owns the live component set. It is not safe for concurrent use;
// every method runs on the application loop.
type Manager struct {
	opts ManagerOptions
	live *componentSet
}

// NewManager returns a manager holding an empty component set.
func NewManager(opts ManagerOptions) *Manager {
	if opts.UpdateTimeout <= 0 {
		opts.UpdateTimeout = DefaultUpdateTimeout
	}
	return &Manager{opts: opts, live: &componentSet{doc: &Document{Colorize: true}, registry: NewRegistry()}}
}

// Load builds the initial component set. A missing or unreadable document
// falls back to the default layout; construction errors are returned.
func (m *Manager) Load() error {
	doc, err := m.readDocument()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			events.Config.Error(err)
		}
		events.Config.Fallback(m.opts.Path)
		doc = DefaultDocument()
	}
	set, err := m.build(doc, false)
	if err != nil {
		return err
	}
	m.live = set
	events.Config.Loaded(m.opts.Path, set.len(), doc.Colorize)
	return nil
}

// Reload rebuilds every component from the document and swaps the new set in
// only when the whole rebuild succeeds. On failure the live set is untouched.
func (m *Manager) Reload() error {
	events.Reload.Start(m.opts.Path)
	doc, err := m.readDocument()
	if err != nil {
		events.Reload.Failure(err)
		return err
	}
	set, err := m.build(doc, true)
	if err != nil {
		events.Reload.Failure(err)
		return err
	}
	old := m.live
	m.live = set
	old.close()
	events.Reload.Success(set.len())
	return nil
}

func (m *Manager) readDocument() (*Document, error) {
	if m.opts.Path == "" {
		return DefaultDocument(), nil
	}
	return LoadDocument(m.opts.Path)
}

// build constructs a full component set. In strict mode any rejected entry
// fails the build; otherwise entries with invalid options are skipped.
func (m *Manager) build(doc *Document, strict bool) (*componentSet, error) {
	reg := NewRegistry()
	if m.opts.Register != nil {
		m.opts.Register(reg)
	}
	if m.opts.Scripts != nil {
		for _, s := range doc.Scripts {
			if err := m.opts.Scripts.Load(reg, s.Name, s.Path); err != nil {
				if strict {
					return nil, err
				}
				events.Script.LoadError(s.Name, s.Path, err)
				continue
			}
			events.Script.Loaded(s.Name, s.Path)
		}
	}

	set := &componentSet{doc: doc, registry: reg}
	for _, region := range Regions {
		for _, entry := range doc.Entries(region) {
			component, kind, err := m.create(reg, entry)
			if err != nil {
				cerr := &ConfigError{Region: region, Index: entry.Index, Name: entry.Name, Err: err}
				if strict || !errors.Is(err, ErrInvalidOptions) {
					set.close()
					return nil, cerr
				}
				logging.Warn("skipping %v", cerr)
				continue
			}
			if component == nil {
				events.Component.Unknown(region.String(), entry.Name, m.suggest(reg, entry.Name))
				continue
			}
			events.Component.Created(region.String(), entry.Name, kind.String())
			set.regions[region] = append(set.regions[region], instance{region: region, name: entry.Name, component: component})
		}
	}
	return set, nil
}

func (m *Manager) create(reg *Registry, entry Entry) (Component, Kind, error) {
	component, ok, err := reg.TryCreate(entry.Name, entry.Options)
	if ok {
		kind, _ := reg.Kind(entry.Name)
		return component, kind, err
	}
	if ctor, found := m.opts.Builtins[entry.Name]; found {
		return ctor(), KindBuiltin, nil
	}
	return nil, KindBuiltin, nil
}

func (m *Manager) suggest(reg *Registry, name string) []string {
	if name == UnknownComponent {
		return nil
	}
	candidates := m.Names(reg)
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) == 0 {
		// try the other direction so truncated names still match
		for _, c := range candidates {
			if fuzzy.MatchNormalizedFold(c, name) {
				ranks = append(ranks, fuzzy.Rank{Target: c, Distance: len(name) - len(c)})
			}
		}
	}
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// Names lists every component name reachable through reg or the built-ins.
func (m *Manager) Names(reg *Registry) []string {
	if reg == nil {
		reg = m.live.registry
	}
	names := reg.Names()
	for name := range m.opts.Builtins {
		if _, ok := reg.Kind(name); !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Kind reports how name is provided by the live registry or the built-ins.
func (m *Manager) Kind(name string) (Kind, bool) {
	if kind, ok := m.live.registry.Kind(name); ok {
		return kind, true
	}
	if _, ok := m.opts.Builtins[name]; ok {
		return KindBuiltin, true
	}
	return 0, false
}

// Update refreshes every live component in region order. Each refresh gets
// its own deadline and a panicking component is logged and skipped.
func (m *Manager) Update(ctx context.Context) {
	for _, region := range Regions {
		for _, inst := range m.live.regions[region] {
			m.updateOne(ctx, inst)
		}
	}
}

func (m *Manager) updateOne(ctx context.Context, inst instance) {
	defer func() {
		if r := recover(); r != nil {
			events.Component.Panic(inst.name, r)
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, m.opts.UpdateTimeout)
	defer cancel()
	inst.component.Update(ctx)
}

// BarComponents returns the live components of region r in render order.
func (m *Manager) BarComponents(r Region) []Component {
	list := m.live.regions[r]
	out := make([]Component, len(list))
	for i, inst := range list {
		out[i] = inst.component
	}
	return out
}

// ComponentNames returns the entry names of region r in render order.
func (m *Manager) ComponentNames(r Region) []string {
	list := m.live.regions[r]
	out := make([]string, len(list))
	for i, inst := range list {
		out[i] = inst.name
	}
	return out
}

// Colorize reports the document's colour preference.
func (m *Manager) Colorize() bool {
	return m.live.doc.Colorize
}

// Path returns the configuration document location.
func (m *Manager) Path() string {
	return m.opts.Path
}

// Len counts live components.
func (m *Manager) Len() int {
	return m.live.len()
}

// Close releases every live component.
func (m *Manager) Close() {
	m.live.close()
	m.live = &componentSet{doc: m.live.doc, registry: m.live.registry}
}

func (m *Manager) String() string {
	return fmt.Sprintf("manager(%s, %d components)", m.opts.Path, m.Len())
}
