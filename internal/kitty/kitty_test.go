package kitty

import (
	"context"
	"testing"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/shell"
)

func stubCommands(t *testing.T, outputs map[string]interface{}) {
	t.Helper()
	t.Cleanup(shell.Swap(shell.Table(outputs)))
}

type exitError int

func (e exitError) Error() string { return "exit status" }
func (e exitError) ExitCode() int { return int(e) }

func TestFocusedTabsPicksFocusedWindow(t *testing.T) {
	stubCommands(t, map[string]interface{}{
		"kitty @ --to unix:/tmp/kitty-1 ls": `[
			{"id":1,"tabs":[{"id":10,"title":"stale"}]},
			{"id":2,"last_focused":true,"tabs":[{"id":20,"title":"htop","is_active":true},{"id":21,"title":" "}]}
		]`,
	})

	tabs, err := FocusedTabs(context.Background(), Endpoint(DefaultSocket(1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tabs) != 2 || tabs[0].ID != 20 || !tabs[0].IsActive {
		t.Fatalf("unexpected tabs %+v", tabs)
	}
	if tabs[1].Title != "Tab 2" {
		t.Fatalf("expected positional title, got %q", tabs[1].Title)
	}
}

func TestFocusedTabsWithoutFocus(t *testing.T) {
	stubCommands(t, map[string]interface{}{
		"kitty @ --to unix:/s ls": `[{"id":1,"tabs":[{"id":10,"title":"x"}]}]`,
	})
	tabs, err := FocusedTabs(context.Background(), "unix:/s")
	if err != nil || tabs != nil {
		t.Fatalf("expected no tabs, got %+v (%v)", tabs, err)
	}
}

func TestListRejectsGarbage(t *testing.T) {
	stubCommands(t, map[string]interface{}{"kitty @ --to unix:/s ls": "not json"})
	if _, err := List(context.Background(), "unix:/s"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEndpoint(t *testing.T) {
	if got := Endpoint("/tmp/kitty-5"); got != "unix:/tmp/kitty-5" {
		t.Fatalf("unexpected endpoint %q", got)
	}
	if got := Endpoint("tcp:localhost:1234"); got != "tcp:localhost:1234" {
		t.Fatalf("scheme must be kept, got %q", got)
	}
}

func TestSingleInstance(t *testing.T) {
	stubCommands(t, map[string]interface{}{"pgrep -f kitty.*--single-instance": "12\n345\n"})
	if ok, err := SingleInstance(context.Background(), 345); err != nil || !ok {
		t.Fatalf("expected match, got %v (%v)", ok, err)
	}
	if ok, _ := SingleInstance(context.Background(), 34); ok {
		t.Fatalf("pid prefixes must not match")
	}

	stubCommands(t, map[string]interface{}{"pgrep -f kitty.*--single-instance": exitError(1)})
	if ok, err := SingleInstance(context.Background(), 1); err != nil || ok {
		t.Fatalf("no match must not be an error, got %v (%v)", ok, err)
	}

	stubCommands(t, map[string]interface{}{"pgrep -f kitty.*--single-instance": exitError(2)})
	if _, err := SingleInstance(context.Background(), 1); err == nil {
		t.Fatalf("expected pgrep failure to surface")
	}
}

type recordingDispatcher struct {
	got []bar.Target
}

func (r *recordingDispatcher) Dispatch(_ context.Context, target bar.Target) error {
	r.got = append(r.got, target)
	return nil
}

func (r *recordingDispatcher) Name() string { return "hyprland" }

func TestDispatcherRoutesTabs(t *testing.T) {
	var ran []string
	restore := shell.Swap(func(_ context.Context, name string, args ...string) ([]byte, error) {
		ran = append(ran, name)
		ran = append(ran, args...)
		return nil, nil
	})
	t.Cleanup(restore)

	next := &recordingDispatcher{}
	d := Dispatcher{Next: next}
	if err := d.Dispatch(context.Background(), bar.Tab("unix:/tmp/kitty-9", "4")); err != nil {
		t.Fatalf("dispatch tab: %v", err)
	}
	want := []string{"kitty", "@", "--to", "unix:/tmp/kitty-9", "focus-tab", "--match", "id:4"}
	if len(ran) != len(want) {
		t.Fatalf("unexpected command %v", ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Fatalf("unexpected command %v", ran)
		}
	}
	if len(next.got) != 0 {
		t.Fatalf("tab must not reach the next dispatcher")
	}

	if err := d.Dispatch(context.Background(), bar.Workspace("3")); err != nil {
		t.Fatalf("dispatch workspace: %v", err)
	}
	if len(next.got) != 1 || next.got[0] != bar.Workspace("3") {
		t.Fatalf("workspace must be forwarded, got %v", next.got)
	}
	if d.Name() != "hyprland" {
		t.Fatalf("name must come from the next dispatcher, got %q", d.Name())
	}
}

func TestDispatcherErrors(t *testing.T) {
	d := Dispatcher{}
	if err := d.Dispatch(context.Background(), bar.Tab("", "1")); err == nil {
		t.Fatalf("expected missing endpoint error")
	}
	if err := d.Dispatch(context.Background(), bar.Window("0x1")); err == nil {
		t.Fatalf("expected unsupported target error")
	}
	if d.Name() != "kitty" {
		t.Fatalf("unexpected name %q", d.Name())
	}
}
