// Package shell runs the external commands components source their metrics
// from. Every call honours its context so a stalled command is killed when
// the component's update deadline passes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// Runner executes name with args and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

var (
	mu  sync.RWMutex
	run Runner = execOutput
)

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", name, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// Output runs a command and returns its standard output.
func Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	mu.RLock()
	r := run
	mu.RUnlock()
	return r(ctx, name, args...)
}

// Run runs a command, discarding its output.
func Run(ctx context.Context, name string, args ...string) error {
	_, err := Output(ctx, name, args...)
	return err
}

// Swap replaces the runner and returns a function restoring the previous one.
func Swap(r Runner) (restore func()) {
	mu.Lock()
	prev := run
	run = r
	mu.Unlock()
	return func() {
		mu.Lock()
		run = prev
		mu.Unlock()
	}
}

// ErrNoCommand is returned by Table runners for command lines they do not know.
var ErrNoCommand = errors.New("command not found")

// Table builds a Runner answering from outputs keyed by the space-joined
// command line. Values of type error fail the call.
func Table(outputs map[string]interface{}) Runner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		line := strings.Join(append([]string{name}, args...), " ")
		switch v := outputs[line].(type) {
		case string:
			return []byte(v), nil
		case error:
			return nil, v
		}
		return nil, fmt.Errorf("%s: %w", line, ErrNoCommand)
	}
}
