package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// SessionName is the session every test server starts with.
const SessionName = "panelbar-test"

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// Server is a throwaway tmux server bound to a private socket.
type Server struct {
	Socket string
	LogDir string
	t      *testing.T
}

// StartServer boots a tmux server for the duration of the test. The server is
// killed and its directory removed during test cleanup, after checking the
// server log for crashes.
func StartServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	dir, err := os.MkdirTemp("/tmp", "panelbar-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	s := &Server{Socket: filepath.Join(dir, "tmux.sock"), LogDir: dir, t: t}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	if err := s.Command("-f", "/dev/null", "-vv", "new-session", "-d", "-s", SessionName, "sleep", "600").Run(); err != nil {
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		s.kill()
		s.assertNoCrash()
	})
	return s
}

// Command builds a tmux invocation against the server with TMUX cleared so
// the test never talks to the developer's own server.
func (s *Server) Command(args ...string) *exec.Cmd {
	full := append([]string{"-S", s.Socket}, args...)
	cmd := exec.Command("tmux", full...)
	cmd.Dir = s.LogDir
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if !strings.HasPrefix(entry, "TMUX=") {
			env = append(env, entry)
		}
	}
	cmd.Env = append(env, "TMUX=", "TMUX_TMPDIR="+filepath.Dir(s.Socket))
	return cmd
}

// Capture returns the rendered contents of a pane.
func (s *Server) Capture(target string) (string, error) {
	args := []string{"capture-pane", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	out, err := s.Command(args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane failed: %w", err)
	}
	return string(out), nil
}

// WaitForText polls target until it shows every want string or ctx expires.
func (s *Server) WaitForText(ctx context.Context, target string, want ...string) string {
	s.t.Helper()
	last := ""
	for {
		select {
		case <-ctx.Done():
			s.t.Fatalf("timeout waiting for %q in pane %s; last capture:\n%s", want, target, last)
		case <-time.After(50 * time.Millisecond):
			out, err := s.Capture(target)
			if errors.Is(err, ErrPaneUnavailable) {
				continue
			}
			if err != nil {
				s.t.Fatalf("capture-pane error: %v", err)
			}
			last = out
			if containsAll(out, want) {
				return out
			}
		}
	}
}

func containsAll(s string, want []string) bool {
	for _, w := range want {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// kill stops the server over a control-mode connection, falling back to
// kill-server when that fails.
func (s *Server) kill() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := gotmux.NewTmuxWithOptions(s.Socket, gotmux.WithContext(ctx))
	if err == nil {
		err = client.KillServer()
		client.Close()
	}
	if err != nil {
		s.t.Logf("control-mode kill failed for %s: %v", s.Socket, err)
		_ = s.Command("kill-server").Run()
	}
}

func (s *Server) assertNoCrash() {
	files, err := filepath.Glob(filepath.Join(s.LogDir, "tmux-server-*.log"))
	if err != nil {
		s.t.Errorf("failed to glob tmux logs: %v", err)
		return
	}
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if bytes.Contains(content, []byte("server exited unexpectedly")) {
			s.t.Errorf("tmux server reported unexpected exit; see %s", path)
		}
	}
}
