// Package panel relaunches the bar inside a kitty panel window.
package panel

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ErrNoKitten reports that kitty's kitten helper is not installed.
var ErrNoKitten = errors.New("kitten not found in PATH")

var (
	lookPath   = exec.LookPath
	executable = os.Executable

	// start launches a detached process; the panel outlives this one.
	start = func(name string, args ...string) error {
		cmd := exec.Command(name, args...)
		if err := cmd.Start(); err != nil {
			return err
		}
		return cmd.Process.Release()
	}
)

// Command builds the kitten invocation that hosts exe as a panel. The child
// is started with --no-panel so it runs the bar instead of spawning again.
func Command(kitten, exe string, args []string) []string {
	cmd := []string{kitten, "panel", "--single-instance", "--edge=top", exe, "--no-panel"}
	return append(cmd, args...)
}

// FindExecutable resolves the running binary and the kitten helper.
func FindExecutable() (kitten, exe string, err error) {
	kitten, err = lookPath("kitten")
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrNoKitten, err)
	}
	exe, err = executable()
	if err != nil {
		return "", "", fmt.Errorf("resolve executable: %w", err)
	}
	return kitten, exe, nil
}

// Spawn launches the bar in a kitty panel, forwarding args to the child, and
// returns without waiting for it.
func Spawn(args []string) error {
	kitten, exe, err := FindExecutable()
	if err != nil {
		return err
	}
	cmd := Command(kitten, exe, args)
	if err := start(cmd[0], cmd[1:]...); err != nil {
		return fmt.Errorf("start panel: %w", err)
	}
	return nil
}
