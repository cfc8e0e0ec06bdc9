package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// ScoreSaver persists the final score of a finished episode.
type ScoreSaver interface {
	SaveScore(mode string, score int) (int64, error)
}

// ContestantSource builds the contestants of a new episode. It is called on
// every restart so stateful controllers start fresh.
type ContestantSource func() ([]flappy.Contestant, error)

// Options configures a live episode view.
type Options struct {
	Sim     config.SimConfig
	Runtime core.RuntimeConfig
	Theme   Theme

	// Mode labels the HUD and the saved scores, e.g. "human" or "policy:gap".
	Mode string

	// Source supplies the contestants. Nil means a single keyboard-driven agent.
	Source ContestantSource

	Scores ScoreSaver
	Logger *log.Logger
}

// Model is the Bubble Tea model that paces an episode from tick messages.
type Model struct {
	ctx      context.Context
	opts     Options
	screen   *core.Screen
	renderer *Renderer
	keys     *KeyMapper
	keyboard *KeyboardController
	logger   *log.Logger

	// frame buffers the jumps pressed since the last tick.
	frame core.InputFrame

	episode    *flappy.Episode
	total      int
	seed       int64
	paused     bool
	quitting   bool
	scoreSaved bool
	err        error
}

// NewModel creates a model and starts the first episode. Stepping stops when
// ctx is done.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = opts.Sim.Episode.TickRate
	}
	if opts.Mode == "" {
		opts.Mode = "human"
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Model{
		ctx:      ctx,
		opts:     opts,
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		renderer: NewRenderer(opts.Theme, opts.Sim),
		keys:     NewKeyMapper(),
		logger:   logger,
		frame:    core.NewInputFrame(),
		seed:     opts.Runtime.Seed,
	}
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

// reset starts a new episode with the current seed.
func (m *Model) reset() error {
	var contestants []flappy.Contestant
	if m.opts.Source == nil {
		m.keyboard = &KeyboardController{}
		contestants = []flappy.Contestant{{ID: 0, Controller: m.keyboard, Genome: &flappy.Tally{}}}
	} else {
		var err error
		contestants, err = m.opts.Source()
		if err != nil {
			return fmt.Errorf("tui: cannot build contestants: %w", err)
		}
	}

	m.episode = flappy.NewEpisode(m.opts.Sim, rand.New(rand.NewSource(m.seed)), contestants)
	m.total = len(contestants)
	m.paused = false
	m.scoreSaved = false
	m.logger.Debug("episode started", "mode", m.opts.Mode, "seed", m.seed, "agents", m.total)
	return nil
}

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Jumps are buffered in the input frame
// until the next tick so a press between ticks is never lost.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, quit := m.keys.MapKey(msg)
	if quit || action == core.ActionBack {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionJump:
		if m.keyboard != nil && !m.paused {
			m.frame.Set(core.ActionJump)
		}
	case core.ActionPause:
		if !m.episode.State().Terminal() {
			m.paused = !m.paused
		}
	case core.ActionRestart:
		if m.episode.State().Terminal() {
			m.seed++
			if err := m.reset(); err != nil {
				m.err = err
				m.quitting = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// handleTick advances the episode by one tick unless paused or finished.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	jump := m.frame.Has(core.ActionJump)
	m.frame.Clear()

	if m.paused || m.episode.State().Terminal() {
		return m, tickCmd(m.opts.Runtime.TickRate)
	}
	if jump && m.keyboard != nil {
		m.keyboard.Press()
	}

	res, err := m.episode.Step(m.ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			m.err = err
		}
		m.quitting = true
		return m, tea.Quit
	}

	if res.State.Terminal() {
		m.finish(res)
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// finish saves the score once per episode.
func (m *Model) finish(res flappy.StepResult) {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	m.logger.Info("episode finished", "mode", m.opts.Mode, "state", res.State, "score", res.Score, "ticks", m.episode.Tick())

	if m.opts.Scores == nil || res.Score == 0 {
		return
	}
	if _, err := m.opts.Scores.SaveScore(m.opts.Mode, res.Score); err != nil {
		m.logger.Error("could not save score", "error", err)
	}
}

// Episode returns the episode being shown.
func (m *Model) Episode() *flappy.Episode { return m.episode }

// Paused reports whether stepping is suspended.
func (m *Model) Paused() bool { return m.paused }

// Err returns the error that stopped the model, if any.
func (m *Model) Err() error { return m.err }

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".neuroflap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", sanitizeMode(m.opts.Mode), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
	}
}

func (m *Model) draw() {
	f := FrameOf(m.episode, m.total, m.opts.Mode)
	f.Paused = m.paused
	m.renderer.Draw(m.screen, f)
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

func sanitizeMode(mode string) string {
	out := []rune(mode)
	for i, r := range out {
		if r == ':' || r == '/' || r == ' ' {
			out[i] = '_'
		}
	}
	return string(out)
}

// Run shows a paced episode in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return model.Err()
}
