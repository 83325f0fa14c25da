package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dotsim/internal/core"
	"github.com/vovakirdan/dotsim/internal/registry"
	"github.com/vovakirdan/dotsim/internal/sim"
	"github.com/vovakirdan/dotsim/internal/storage"
)

// PlayOptions configure an interactive run.
type PlayOptions struct {
	KeyRelease time.Duration // synthesized key-up delay
	Fresh      bool          // ignore the saved position
	Logger     *log.Logger   // nil discards log output
	Clock      core.Clock    // nil means core.SystemClock
	embedded   bool          // hosted by a session model, do not quit the program
}

// Model is the Bubble Tea model for playing one scene.
type Model struct {
	scene    registry.Scene
	world    *sim.World
	loop     *sim.Loop
	queue    *InputQueue
	sink     *frameSink
	renderer *frameRenderer
	store    *storage.Store
	logger   *log.Logger
	keys     *KeyMapper
	embedded bool

	view     string
	stats    sim.RunStats
	done     bool // loop has stopped
	back     bool // user asked for the menu
	quitting bool
	restored bool // saved position was applied
}

// NewModel builds the scene's world and prepares a loop for it.
func NewModel(scene registry.Scene, store *storage.Store, rc core.RuntimeConfig, opts PlayOptions) (Model, error) {
	world, err := scene.Build(rc)
	if err != nil {
		return Model{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}

	m := Model{
		scene:    scene,
		world:    world,
		store:    store,
		logger:   logger,
		keys:     NewKeyMapper(),
		embedded: opts.embedded,
		sink:     newFrameSink(),
	}
	if !opts.Fresh {
		m.restored = m.restorePosition()
	}

	m.queue = NewInputQueue(opts.KeyRelease, opts.Clock)
	m.renderer = newFrameRenderer(m.sink, rc.ScreenW, rc.ScreenH)
	m.loop = sim.NewLoop(world, m.queue, m.renderer, sim.Options{
		FPS:      rc.TickRate,
		Uncapped: rc.Uncapped,
		Clock:    opts.Clock,
		Logger:   logger,
	})
	return m, nil
}

// restorePosition moves the player to the saved position when it still fits.
func (m *Model) restorePosition() bool {
	p := m.world.PlayerBody()
	if m.store == nil || p == nil {
		return false
	}
	pos, found, err := m.store.LoadPosition(m.scene.ID())
	if err != nil {
		m.logger.Warn("could not load saved position", "scene", m.scene.ID(), "error", err)
		return false
	}
	if !found || pos.Body != p.Name() {
		return false
	}
	if !m.world.Place(m.world.Player, pos.X, pos.Y) {
		m.logger.Info("saved position no longer fits, starting fresh", "scene", m.scene.ID(), "x", pos.X, "y", pos.Y)
		return false
	}
	return true
}

// Init starts the loop goroutine and waits for its first frame.
func (m Model) Init() tea.Cmd {
	loop, sink := m.loop, m.sink
	run := func() tea.Msg {
		stats := loop.Run()
		sink.close()
		return LoopDoneMsg{Stats: stats}
	}
	return tea.Batch(run, sink.wait())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.renderer.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		m.view = string(msg)
		return m, m.sink.wait()

	case LoopDoneMsg:
		m.done = true
		m.stats = msg.Stats
		m.persist()
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	return m, nil
}

// handleKey forwards keys to the loop.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, dir := m.keys.MapKey(msg)

	switch action {
	case KeyMove:
		m.queue.Press(dir)
	case KeyPause:
		m.queue.Push(core.InputEvent{Kind: core.InputPause})
	case KeyToggleCap:
		m.queue.Push(core.InputEvent{Kind: core.InputToggleCap})
	case KeyScreenshot:
		m.saveScreenshot()
	case KeyBack, KeyQuit:
		m.back = action == KeyBack
		m.quitting = action == KeyQuit
		if m.done && !m.embedded {
			return m, tea.Quit
		}
		m.queue.Push(core.InputEvent{Kind: core.InputQuit})
	}

	return m, nil
}

// persist stores the player position and the run. The loop has stopped, so
// the world is no longer shared.
func (m *Model) persist() {
	if m.store == nil {
		return
	}
	if p := m.world.PlayerBody(); p != nil {
		x, y := p.Position()
		if err := m.store.SavePosition(m.scene.ID(), p.Name(), x, y); err != nil {
			m.logger.Warn("could not save position", "scene", m.scene.ID(), "error", err)
		}
	}
	if m.stats.Frames == 0 {
		return
	}
	if _, err := m.store.RecordRun(storage.Run{
		SceneID:   m.scene.ID(),
		Frames:    int64(m.stats.Frames),
		Overruns:  int64(m.stats.Overruns),
		Duration:  m.stats.Elapsed,
		TargetFPS: m.stats.TargetFPS,
	}); err != nil {
		m.logger.Warn("could not record run", "scene", m.scene.ID(), "error", err)
	}
}

// saveScreenshot saves the last frame as text under ~/.dotsim/screenshots.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dotsim", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.renderer.Snapshot()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the latest frame.
func (m Model) View() string {
	if m.done && m.quitting {
		return ""
	}
	if m.view == "" {
		return "starting " + m.scene.Title() + "..."
	}
	return m.view
}

// Stats returns the statistics of the finished run.
func (m Model) Stats() sim.RunStats { return m.stats }

// World returns the simulated world. Only safe to inspect once Done.
func (m Model) World() *sim.World { return m.world }

// Done reports whether the loop has stopped.
func (m Model) Done() bool { return m.done }

// BackToMenu reports whether the run ended with the back key.
func (m Model) BackToMenu() bool { return m.back }

// IsQuitting reports whether the run ended with the quit key.
func (m Model) IsQuitting() bool { return m.quitting }

// Restored reports whether the saved position was applied.
func (m Model) Restored() bool { return m.restored }

// PlayResult summarizes a finished interactive run.
type PlayResult struct {
	Stats      sim.RunStats
	X, Y       int
	Restored   bool
	BackToMenu bool
}

// Run plays a scene in the terminal until the user quits.
func Run(scene registry.Scene, store *storage.Store, rc core.RuntimeConfig, opts PlayOptions) (PlayResult, error) {
	model, err := NewModel(scene, store, rc, opts)
	if err != nil {
		return PlayResult{}, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()

	m, ok := final.(Model)
	if !ok {
		m = model
	}
	if !m.done {
		// Program ended without the loop; stop it so its goroutine exits.
		m.queue.Push(core.InputEvent{Kind: core.InputQuit})
	}
	if err != nil {
		return PlayResult{}, err
	}

	result := PlayResult{Stats: m.stats, Restored: m.restored, BackToMenu: m.back}
	if pl := m.world.PlayerBody(); pl != nil && m.done {
		result.X, result.Y = pl.Position()
	}
	return result, nil
}
