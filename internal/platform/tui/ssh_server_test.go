package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/registry"
)

func init() {
	registry.Register("test", func() registry.Scene { return testScene{} })
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func newTestSession() SessionModel {
	rc := core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 20}
	return NewSessionModel(nil, rc, PlayOptions{
		KeyRelease: 150 * time.Millisecond,
		Clock:      core.NewManualClock(time.Unix(0, 0)),
	})
}

func TestSessionMenuPlayBack(t *testing.T) {
	m := newTestSession()

	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.play == nil {
		t.Fatal("enter should start the selected scene")
	}
	if cmd == nil {
		t.Error("starting a scene should return its init command")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	stats := m.play.loop.Run()
	m, cmd = updateSession(t, m, LoopDoneMsg{Stats: stats})

	if m.play != nil {
		t.Error("back should return to the menu")
	}
	if m.quitting {
		t.Error("back must not end the session")
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("back must not quit the program")
		}
	}
}

func TestSessionQuitFromPlay(t *testing.T) {
	m := newTestSession()

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	stats := m.play.loop.Run()
	m, cmd := updateSession(t, m, LoopDoneMsg{Stats: stats})

	if !m.quitting {
		t.Error("q during play should end the session")
	}
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, isQuit := cmd().(tea.QuitMsg); !isQuit {
		t.Error("expected tea.Quit")
	}
	if m.View() != "" {
		t.Errorf("View() = %q after quitting, expected empty", m.View())
	}
}

func TestSessionDisconnectStopsLoop(t *testing.T) {
	m := newTestSession()

	m.active.stop() // nothing running, must not panic

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.active.stop()

	found := false
	for _, ev := range m.play.queue.Drain() {
		if ev.Kind == core.InputQuit {
			found = true
		}
	}
	if !found {
		t.Error("disconnect should queue a quit for the running loop")
	}
}

func TestSessionRunsBoard(t *testing.T) {
	m := newTestSession()

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.runs == nil {
		t.Fatal("tab should open the run board")
	}
	if m.View() == "" {
		t.Error("run board view is empty")
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.runs != nil {
		t.Error("esc should return from the run board to the menu")
	}
}
