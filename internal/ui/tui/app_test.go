package tui

import (
	"testing"

	"github.com/lumipallolabs/corpusmap/internal/core"
)

func TestWatchChannelLandsOnModel(t *testing.T) {
	app := NewApp(core.NewController(core.DefaultOptions(), core.Events{}), Config{Watch: true})

	ch := make(chan struct{}, 1)
	m, cmd := app.Update(watchReadyMsg{ch: ch})
	app = m.(App)

	if app.watchCh == nil {
		t.Fatal("watch channel not stored on the returned model")
	}
	if cmd == nil {
		t.Fatal("expected a listen command after the watcher is ready")
	}

	// The listen command delivers the next change event
	ch <- struct{}{}
	if _, ok := cmd().(watchChangedMsg); !ok {
		t.Fatal("listen command did not deliver watchChangedMsg")
	}
}

func TestWatchResubscribesAfterChange(t *testing.T) {
	app := NewApp(core.NewController(core.DefaultOptions(), core.Events{}), Config{Watch: true})

	ch := make(chan struct{}, 1)
	m, _ := app.Update(watchReadyMsg{ch: ch})
	app = m.(App)

	// Handling a change must reload and keep listening; a model without the
	// channel would go deaf after the first event.
	m, cmd := app.Update(watchChangedMsg{})
	app = m.(App)
	if cmd == nil {
		t.Fatal("change handler returned no command")
	}
	if app.listenForWatch() == nil {
		t.Fatal("model lost the watch channel after handling a change")
	}
}
