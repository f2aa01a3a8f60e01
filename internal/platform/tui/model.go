package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/buildtree/internal/core"
	"github.com/vovakirdan/buildtree/internal/registry"
	"github.com/vovakirdan/buildtree/internal/storage"
	"github.com/vovakirdan/buildtree/internal/telemetry"
)

// footerRows is the number of terminal rows below the game screen:
// the time gauge and the help line.
const footerRows = 2

// gaugeLabelWidth reserves room for the gauge's text label.
const gaugeLabelWidth = 10

var (
	gaugeLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	footerHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // Whether the run has been saved for current game over

	// A press and release arriving within one tick still show up as
	// one held tick followed by a released one.
	pressPending   bool
	releasePending bool

	help         help.Model
	gauge        progress.Model
	spring       harmonica.Spring
	gaugePos     float64
	gaugeVel     float64
	gaugeLabel   string
	gaugeVisible bool
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards log output.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = telemetry.Discard()
	}

	gauge := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-footerRows, 0)),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		help:       help.New(),
		gauge:      gauge,
		spring:     harmonica.NewSpring(harmonica.FPS(cfg.TickRate), 10.0, 0.8),
	}
	m.layoutFooter(cfg.ScreenW)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed,
		"width", m.config.ScreenW, "height", m.config.ScreenH)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// gameConfig is the runtime config with the footer rows taken off.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = max(cfg.ScreenH-footerRows, 0)
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.logger.Info("quit requested", "key", msg.String())
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse tracks the pointer. Only the left button counts as "down".
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := &m.inputFrame.Pointer
	p.X, p.Y = msg.X, msg.Y

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.Down = true
			m.pressPending = true
			m.releasePending = false
		}
	case tea.MouseActionRelease:
		if m.pressPending {
			m.releasePending = true
		} else {
			p.Down = false
		}
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	gameH := max(msg.Height-footerRows, 0)
	m.screen.Resize(msg.Width, gameH)
	m.layoutFooter(msg.Width)

	// Resizable games keep their state; others restart
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, gameH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.gameConfig())
	}

	m.logger.Debug("resized", "width", msg.Width, "height", msg.Height)
	return m, nil
}

func (m *Model) layoutFooter(width int) {
	m.help.Width = width
	m.gauge.Width = max(width-gaugeLabelWidth-2, 0)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.Exit {
		m.logger.Info("game requested exit", "game", m.game.ID())
		m.quitting = true
		return m, tea.Quit
	}

	if prev.GameOver && !m.gameState.GameOver {
		m.runSaved = false
	}
	if !prev.GameOver && m.gameState.GameOver {
		m.logger.Info("round ended", "game", m.game.ID(), "reason", m.gameState.Reason,
			"score", m.gameState.Score, "depth", m.gameState.Depth, "elapsed", m.gameState.Elapsed)
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	m.updateGauge()

	// Clear input for next frame
	m.inputFrame.Clear()
	if m.releasePending {
		m.inputFrame.Pointer.Down = false
		m.releasePending = false
	}
	m.pressPending = false

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveRun records the finished round. Empty rounds are not recorded.
func (m *Model) saveRun() {
	if m.store == nil || m.gameState.Score == 0 {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		GameID:  m.game.ID(),
		Score:   m.gameState.Score,
		Depth:   m.gameState.Depth,
		Elapsed: m.gameState.Elapsed,
		Reason:  m.gameState.Reason,
	})
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "id", id, "score", m.gameState.Score)
}

// updateGauge moves the displayed gauge toward the game's reported
// fraction along a spring, so bonus time slides in instead of jumping.
func (m *Model) updateGauge() {
	g, ok := m.game.(registry.Gauge)
	if !ok {
		m.gaugeVisible = false
		return
	}
	fraction, label, visible := g.Gauge()
	if !visible {
		m.gaugeVisible = false
		m.gaugePos, m.gaugeVel = 0, 0
		return
	}
	m.gaugeVisible = true
	m.gaugeLabel = label
	m.gaugePos, m.gaugeVel = m.spring.Update(m.gaugePos, m.gaugeVel, fraction)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".buildtree", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen) + "\n" + m.footer()
}

// footer renders the gauge row and the help row.
func (m Model) footer() string {
	gaugeRow := ""
	if m.gaugeVisible && m.gauge.Width > 0 {
		label := fmt.Sprintf("%-*s", gaugeLabelWidth, m.gaugeLabel)
		gaugeRow = gaugeLabelStyle.Render(label) + " " + m.gauge.ViewAs(core.ClampF(m.gaugePos, 0, 1))
	}
	return gaugeRow + "\n" + footerHelpStyle.Render(m.help.View(m.keyMapper.Keys()))
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer hover and clicks on popup buttons
	)

	_, err := p.Run()
	return err
}
