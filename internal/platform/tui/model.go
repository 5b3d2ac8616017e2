package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/leaderboard"
	"github.com/vovakirdan/stacks-roll/internal/storage"
)

// boardRows is how many leaderboard rows the panels show.
const boardRows = 5

// Options configures a Model.
type Options struct {
	Game     *game.Game
	Store    *storage.Store // May be nil: runs are not persisted
	Logger   *log.Logger    // May be nil
	Player   string
	Advisor  string // Backend name recorded with each run
	TickRate int
	Width    int
	Height   int
}

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game     *game.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	pointer  *core.Pointer
	keys     KeyMap
	help     help.Model
	layout   Layout
	tickRate int
	player   string
	advisor  string
	width    int
	height   int

	quitting  bool
	runSaved  bool   // Whether the finished run has been stored
	runID     string // Id of the stored run, if any
	converted bool   // STX conversion shown on the game over screen
	topRuns   []storage.Run
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}
	if opts.Player == "" {
		opts.Player = "anonymous"
	}

	h := help.New()
	h.Width = opts.Width

	m := Model{
		game:     opts.Game,
		screen:   core.NewScreen(opts.Width, opts.Height),
		store:    opts.Store,
		logger:   logger,
		pointer:  core.NewPointer(),
		keys:     DefaultKeyMap(),
		help:     h,
		layout:   NewLayout(opts.Width, opts.Height),
		tickRate: opts.TickRate,
		player:   opts.Player,
		advisor:  opts.Advisor,
		width:    opts.Width,
		height:   opts.Height,
	}
	m.loadTopRuns()
	return m
}

// Init waits on the title screen; nothing runs until the player starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.pointer.SetFromColumn(msg.X, m.layout.Inner.X, m.layout.Inner.W)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)

	case CountdownMsg:
		return m.handleCountdown(msg)

	case AdviceMsg:
		return m.handleAdvice(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.game.Close()
		return m, tea.Quit
	}

	phase := m.game.Phase()
	switch action {
	case core.ActionStart, core.ActionRestart:
		if phase == game.PhaseIdle || phase == game.PhaseGameOver {
			return m.start()
		}
	case core.ActionLeft:
		m.pointer.Nudge(-nudgeStep)
	case core.ActionRight:
		m.pointer.Nudge(nudgeStep)
	case core.ActionConvert:
		if phase == game.PhaseGameOver && !m.converted {
			m.converted = true
			m.logger.Info("score converted", "stx", fmt.Sprintf("%.4f", m.game.Snapshot().STX()))
		}
	}

	return m, nil
}

// start begins a new session and arms its first timer.
func (m Model) start() (tea.Model, tea.Cmd) {
	if !m.game.Start() {
		return m, nil
	}

	m.pointer.Reset()
	m.runSaved = false
	m.runID = ""
	m.converted = false
	m.logger.Debug("run starting", "generation", m.game.Generation())

	return m, m.armPhase()
}

// armPhase returns the timer for the current phase.
func (m Model) armPhase() tea.Cmd {
	switch m.game.Phase() {
	case game.PhaseCountdown:
		return countdownCmd(m.game.Generation())
	case game.PhasePlaying:
		return tickCmd(m.tickRate, m.game.Generation())
	default:
		return nil
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.layout = NewLayout(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// handleCountdown advances the countdown; stale ticks are dropped by the game.
func (m Model) handleCountdown(msg CountdownMsg) (tea.Model, tea.Cmd) {
	if !m.game.CountdownTick(msg.Gen) {
		return m, nil
	}
	return m, m.armPhase()
}

// handleTick processes simulation ticks. A tick from an earlier session
// ends that session's loop by not re-arming.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.game.Generation() || m.game.Phase() != game.PhasePlaying {
		return m, nil
	}

	res := m.game.Tick(m.pointer.Sample())

	var cmds []tea.Cmd
	if res.Advice != nil {
		m.logger.Debug("advice requested",
			"generation", res.Advice.Generation,
			"elapsed", res.Advice.Performance.TimeElapsed,
		)
		cmds = append(cmds, adviceCmd(m.game.AdviceCall(*res.Advice)))
	}

	if res.Terminal {
		m.finishRun()
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, tickCmd(m.tickRate, m.game.Generation()))
	return m, tea.Batch(cmds...)
}

// handleAdvice applies an advisor result. Failures keep the current multipliers.
func (m Model) handleAdvice(msg AdviceMsg) (tea.Model, tea.Cmd) {
	err := m.game.ApplyAdvice(game.AdviceResult(msg))
	switch {
	case errors.Is(err, game.ErrStaleAdvice):
		m.logger.Debug("dropped stale advice", "generation", msg.Generation)
	case err != nil:
		m.logger.Warn("advisor failed, keeping difficulty", "error", err)
	default:
		d := m.game.Difficulty()
		m.logger.Info("difficulty adjusted",
			"speed", d.GameSpeedMultiplier,
			"frequency", d.ObstacleFrequency,
			"velocity", d.ObstacleVelocityMultiplier,
		)
	}
	return m, nil
}

// finishRun logs and stores the run once.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	s := m.game.Session()
	m.logger.Info("run over",
		"score", s.Score,
		"distance", s.Distance,
		"coins", s.CoinsCollected,
		"elapsed", s.ElapsedTime,
	)

	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		Player:   m.player,
		Score:    s.Score,
		Distance: s.Distance,
		Coins:    s.CoinsCollected,
		Duration: s.ElapsedTime,
		Advisor:  m.advisor,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.runID = id
	m.loadTopRuns()
}

// loadTopRuns refreshes the stored runs shown on the leaderboard.
func (m *Model) loadTopRuns() {
	if m.store == nil {
		return
	}
	runs, err := m.store.TopRuns(boardRows)
	if err != nil {
		m.logger.Warn("could not load runs", "error", err)
		return
	}
	m.topRuns = runs
}

// board returns the leaderboard rows for a run at distance current.
func (m Model) board(current float64) []leaderboard.Entry {
	return leaderboard.Board(current, m.topRuns, boardRows)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".stacksroll", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("stacksroll_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// draw renders the board into the screen buffer.
func (m Model) draw() {
	snap := m.game.Snapshot()

	m.screen.Clear()
	DrawHUD(m.screen, m.layout, snap)
	DrawBoard(m.screen, m.layout, snap, m.game.Geometry())
	if snap.Phase == game.PhaseCountdown {
		mid := m.layout.Inner.Y + m.layout.Inner.H/2
		m.screen.DrawTextCentered(mid, countdownText(snap), core.ColorBanner)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.game.Phase() {
	case game.PhaseIdle:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.idleView())
	case game.PhaseGameOver:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.gameOverView())
	}

	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer follows the mouse without a button held
	)

	_, err := p.Run()
	return err
}
