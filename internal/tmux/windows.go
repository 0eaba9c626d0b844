package tmux

import (
	"fmt"
	"os"
	"sort"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// FetchWindows lists the windows of session, or of every session when session
// is empty, ordered by session then index.
func FetchWindows(socketPath, session string) ([]Window, error) {
	client, err := connect(socketPath)
	if err != nil {
		return nil, err
	}
	windows, err := client.ListAllWindows()
	if err != nil {
		drop(client)
		return nil, err
	}

	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		if w == nil {
			continue
		}
		name := firstSession(w)
		if session != "" && name != session {
			continue
		}
		out = append(out, Window{
			ID:      w.Id,
			Session: name,
			Index:   w.Index,
			Name:    w.Name,
			Active:  w.Active,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Session != out[j].Session {
			return out[i].Session < out[j].Session
		}
		return out[i].Index < out[j].Index
	})
	return out, nil
}

// CurrentSession reports the session of the pane this process runs in.
func CurrentSession(socketPath string) (string, error) {
	client, err := connect(socketPath)
	if err != nil {
		return "", err
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := client.DisplayMessage(target, "#{session_name}")
	if err != nil {
		drop(client)
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// CurrentClientID attempts to detect the client that launched the bar so
// SwitchClient commands target the visible tmux client instead of the
// control-mode connection.
func CurrentClientID(socketPath string) string {
	client, err := connect(socketPath)
	if err != nil {
		return ""
	}
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

func SelectWindow(socketPath, target string) error {
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	if err := client.SelectWindow(strings.TrimSpace(target)); err != nil {
		return fmt.Errorf("failed to select window %s: %w", target, err)
	}
	return nil
}

func SwitchClient(socketPath, clientID, target string) error {
	client, err := connect(socketPath)
	if err != nil {
		return err
	}
	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if strings.TrimSpace(clientID) != "" {
		opts.TargetClient = clientID
	}
	if err := client.SwitchClient(opts); err != nil {
		return fmt.Errorf("failed to switch to session %s: %w", target, err)
	}
	return nil
}

func firstSession(w *gotmux.Window) string {
	if len(w.ActiveSessionsList) > 0 {
		return w.ActiveSessionsList[0]
	}
	if len(w.LinkedSessionsList) > 0 {
		return w.LinkedSessionsList[0]
	}
	return strings.TrimSpace(w.Session)
}
