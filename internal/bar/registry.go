package bar

import (
	"errors"
	"fmt"
	"sort"
)

// UnknownComponent is the name given to entries without a component field.
const UnknownComponent = "unknown"

var (
	// ErrUnknownComponent marks an entry no registry or built-in can produce.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrInvalidOptions marks options whose shape does not match the component.
	ErrInvalidOptions = errors.New("invalid options")
)

// Factory builds a component from an entry's options.
type Factory func(opts Options) (Component, error)

// Kind distinguishes compiled components from script components.
type Kind int

const (
	KindNative Kind = iota
	KindScript
	KindBuiltin
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "configurable"
	case KindScript:
		return "script"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type registration struct {
	factory Factory
	kind    Kind
}

// Registry maps component names to factories. Registering a name again
// replaces the earlier factory.
type Registry struct {
	entries map[string]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registration)}
}

// Register adds a compiled component factory.
func (r *Registry) Register(name string, factory Factory) {
	r.entries[name] = registration{factory: factory, kind: KindNative}
}

// RegisterScript adds a script component factory.
func (r *Registry) RegisterScript(name string, factory Factory) {
	r.entries[name] = registration{factory: factory, kind: KindScript}
}

// TryCreate builds the component registered under name. ok is false when no
// factory exists. A non-nil error with ok set means the options were rejected
// or construction failed.
func (r *Registry) TryCreate(name string, opts Options) (Component, bool, error) {
	reg, found := r.entries[name]
	if !found {
		return nil, false, nil
	}
	if opts == nil {
		opts = Options{}
	}
	component, err := reg.factory(opts)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", name, err)
	}
	return component, true, nil
}

// Kind reports how name was registered.
func (r *Registry) Kind(name string) (Kind, bool) {
	reg, ok := r.entries[name]
	return reg.kind, ok
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ComponentName extracts the component field of a raw document entry. Bare
// strings name themselves; anything else without a string field is
// UnknownComponent.
func ComponentName(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		if v != "" {
			return v
		}
	case map[string]interface{}:
		if name, ok := v["component"].(string); ok && name != "" {
			return name
		}
	case Options:
		if name, ok := v["component"].(string); ok && name != "" {
			return name
		}
	}
	return UnknownComponent
}

// Configurable adapts a typed constructor into a Factory. Options are decoded
// over a copy of defaults so absent keys keep their default values.
func Configurable[T any](defaults T, build func(cfg T) (Component, error)) Factory {
	return func(opts Options) (Component, error) {
		cfg := defaults
		if err := opts.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		return build(cfg)
	}
}

// ConfigError describes a document entry that could not be built.
type ConfigError struct {
	Region Region
	Index  int
	Name   string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s bar entry %d (%s): %v", e.Region, e.Index, e.Name, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
