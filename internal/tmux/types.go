package tmux

import (
	"strconv"
	"strings"
	"sync"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Window is a tmux window as shown by the window list component.
type Window struct {
	ID      string
	Session string
	Index   int
	Name    string
	Active  bool
}

// Target is the tmux target string addressing the window.
func (w Window) Target() string {
	if w.Session == "" {
		return w.ID
	}
	return w.Session + ":" + strconv.Itoa(w.Index)
}

type tmuxClient interface {
	ListAllWindows() ([]*gotmux.Window, error)
	DisplayMessage(target, format string) (string, error)
	SelectWindow(target string) error
	SwitchClient(*gotmux.SwitchClientOptions) error
	Close() error
}

var (
	newTmux = func(socketPath string) (tmuxClient, error) {
		if strings.TrimSpace(socketPath) != "" {
			return gotmux.NewTmux(socketPath)
		}
		return gotmux.DefaultTmux()
	}

	clientMu     sync.Mutex
	cachedClient tmuxClient
	cachedSocket string
)

// connect returns the shared control-mode client for socketPath, dialling a
// new one when the socket changes.
func connect(socketPath string) (tmuxClient, error) {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil && cachedSocket == socketPath {
		return cachedClient, nil
	}
	if cachedClient != nil {
		cachedClient.Close()
		cachedClient = nil
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return nil, err
	}
	cachedClient = client
	cachedSocket = socketPath
	return client, nil
}

// drop discards the shared client after a failure so the next call redials.
func drop(client tmuxClient) {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient == client {
		cachedClient.Close()
		cachedClient = nil
		cachedSocket = ""
	}
}

// Shutdown closes the shared client.
func Shutdown() {
	clientMu.Lock()
	defer clientMu.Unlock()
	if cachedClient != nil {
		cachedClient.Close()
		cachedClient = nil
		cachedSocket = ""
	}
}
