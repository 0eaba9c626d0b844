// Package script loads bar components written in Lua.
//
// A script defines two global functions. update() takes no arguments and
// refreshes whatever state the script keeps in globals. render(colorize)
// returns either a string or an array whose elements are strings or tables
// of the form {text=, fg=, bg=, bold=, italic=, workspace=, window=}. A
// workspace or window key makes that fragment clickable. The entry's options
// are visible to the script as the global table `options`.
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"

	"github.com/atomicstack/panelbar/internal/bar"
)

var (
	ErrUnreadable        = errors.New("script unreadable")
	ErrParse             = errors.New("script does not compile")
	ErrEvaluate          = errors.New("script failed to evaluate")
	ErrMissingEntryPoint = errors.New("script missing entry point")
)

// EntryPoints are the globals every script must define as functions.
var EntryPoints = []string{"update", "render"}

// LoadError describes a script that could not be registered.
type LoadError struct {
	Name string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("script %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// evalTimeout bounds top-level evaluation of a script chunk.
const evalTimeout = 2 * time.Second

// Loader compiles script files and registers them as components.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load compiles the script at path, checks that it defines every entry point
// and registers a factory for it under name.
func (l *Loader) Load(reg *bar.Registry, name, path string) error {
	proto, err := Compile(name, path)
	if err != nil {
		return err
	}
	reg.RegisterScript(name, func(opts bar.Options) (bar.Component, error) {
		return New(name, proto, opts)
	})
	return nil
}

// Compile reads and compiles a script and validates it in a throwaway
// interpreter.
func Compile(name, path string) (*lua.FunctionProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: fmt.Errorf("%w: %v", ErrUnreadable, err)}
	}
	chunk, err := parse.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: fmt.Errorf("%w: %v", ErrParse, err)}
	}
	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: fmt.Errorf("%w: %v", ErrParse, err)}
	}

	probe, err := instantiate(name, proto, nil)
	if err != nil {
		return nil, &LoadError{Name: name, Path: path, Err: err}
	}
	probe.Close()
	return proto, nil
}

// instantiate evaluates proto in a fresh sandbox and resolves its entry
// points.
func instantiate(name string, proto *lua.FunctionProto, opts bar.Options) (*Component, error) {
	L := newState(name)
	L.SetGlobal("options", toLua(L, map[string]interface{}(opts)))

	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()

	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
	}
	L.SetTop(0)

	fns := make([]*lua.LFunction, len(EntryPoints))
	for i, entry := range EntryPoints {
		fn, ok := L.GetGlobal(entry).(*lua.LFunction)
		if !ok {
			L.Close()
			return nil, fmt.Errorf("%w: %s is not a function", ErrMissingEntryPoint, entry)
		}
		fns[i] = fn
	}
	return &Component{
		name:     name,
		L:        L,
		update:   fns[0],
		render:   fns[1],
		reporter: bar.NewReporter(name),
	}, nil
}
