// Package pidfile keeps a single bar instance per user.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// ErrAlreadyRunning reports a live process holding the pid file.
var ErrAlreadyRunning = errors.New("another instance is already running")

// File is an acquired pid file.
type File struct {
	path string
}

// DefaultPath places the pid file in the runtime directory, falling back to
// the temporary directory.
func DefaultPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "panelbar.pid")
}

// Acquire creates path holding the current pid. A file left behind by a dead
// process is replaced; one held by a live process yields ErrAlreadyRunning.
func Acquire(path string) (*File, error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("write pid file: %w", errors.Join(werr, cerr))
			}
			return &File{path: path}, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create pid file: %w", err)
		}

		pid, rerr := read(path)
		if rerr == nil && alive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("remove stale pid file: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: pid file %s keeps reappearing", ErrAlreadyRunning, path)
}

// Check reports ErrAlreadyRunning when a live process holds path, without
// taking the file. A missing, unreadable or stale file is not an error.
func Check(path string) error {
	pid, err := read(path)
	if err != nil || !alive(pid) {
		return nil
	}
	return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
}

// Release removes the pid file if it still belongs to this process.
func (f *File) Release() error {
	if f == nil {
		return nil
	}
	pid, err := read(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if pid != os.Getpid() {
		return nil
	}
	return os.Remove(f.path)
}

// Path returns the pid file location.
func (f *File) Path() string {
	return f.path
}

func read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file: %w", err)
	}
	return pid, nil
}

// alive probes pid with signal 0. EPERM means the process exists but belongs
// to someone else.
func alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
