// Package buildtree implements BuildTree, a binary search tree drill.
// The player is shown a number and steers it down the tree with left and
// right until it lands in an empty slot, racing a countdown.
package buildtree

import (
	"fmt"
	"time"

	"github.com/vovakirdan/buildtree/internal/config"
	"github.com/vovakirdan/buildtree/internal/core"
	"github.com/vovakirdan/buildtree/internal/popup"
	"github.com/vovakirdan/buildtree/internal/registry"
)

// Phase is the top-level state of a session.
type Phase int

const (
	PhaseMenu     Phase = iota // Start dialog
	PhaseReady                 // Round set up, waiting out the ready delay
	PhasePlaying               // Countdown running, arrows steer the number
	PhaseGameOver              // Result dialog over the finished tree
)

// String returns the phase name used in snapshots and logs.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// EndReason tells why a round ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndWrongSide
	EndTimeout
	EndComplete // Every value in the range was placed
)

// String returns the reason stored with saved runs.
func (r EndReason) String() string {
	switch r {
	case EndWrongSide:
		return "wrong_side"
	case EndTimeout:
		return "timeout"
	case EndComplete:
		return "complete"
	default:
		return ""
	}
}

// Mode selects the rule set.
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModePractice Mode = "practice" // No countdown
)

// Dialog texts.
const (
	startTitle   = "Start game?"
	startMessage = "\nUse the arrow keys to choose the side where the number must be inserted."
	overTitle    = "Game over!"
	doneTitle    = "Tree complete!"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading configuration on Reset.
func WithConfig(cfg config.BuildTreeConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgSet = true
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(g *Game) {
		g.now = now
	}
}

// Game implements the BuildTree game logic.
type Game struct {
	mode   Mode
	cfg    config.BuildTreeConfig
	cfgSet bool
	now    func() time.Time
	art    assets

	difficulty *config.DifficultyManager
	limits     popup.Limits

	// Session state
	phase   Phase
	reason  EndReason
	tree    *Tree
	cursor  *Node
	current int
	gen     *Generator
	timer   Timer
	dialog  *popup.Popup
	exit    bool
	tick    uint64

	// Round counters
	inserted   int // Nodes placed this round, the root excluded
	moves      int // Correct moves this round
	readyUntil time.Time
	elapsed    time.Duration

	// Edge detection for the arrows
	left  core.KeyLatch
	right core.KeyLatch

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic BuildTree game.
func New(opts ...Option) *Game {
	return newGame(ModeClassic, opts)
}

// NewPractice creates a game whose countdown never runs out.
func NewPractice(opts ...Option) *Game {
	return newGame(ModePractice, opts)
}

func newGame(mode Mode, opts []Option) *Game {
	g := &Game{
		mode: mode,
		now:  time.Now,
		art:  loadAssets(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Resizable = (*Game)(nil)
	_ registry.Gauge     = (*Game)(nil)
)

func init() {
	registry.Register("buildtree", func() registry.Game {
		return New()
	})
	registry.Register("buildtree_practice", func() registry.Game {
		return NewPractice()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModePractice {
		return "buildtree_practice"
	}
	return "buildtree"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "BuildTree (Practice)"
	}
	return "BuildTree"
}

// Reset initializes the session and shows the start dialog.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.cfgSet {
		cfg, _, err := config.Load(configPath, difficultyPreset)
		if err != nil {
			cfg = config.DefaultBuildTreeConfig()
		}
		g.cfg = cfg
	}

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.limits = popupLimits(g.cfg.Popup)
	g.gen = NewGenerator(runtime.Seed, g.cfg.Values.Min, g.cfg.Values.Max)

	g.tick = 0
	g.exit = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.toMenu()
}

// popupLimits converts the popup section of the config.
func popupLimits(c config.PopupConfig) popup.Limits {
	return popup.Limits{
		MaxTitle:       c.MaxTitle,
		MaxMessage:     c.MaxMessage,
		MaxLabel:       c.MaxLabel,
		WrapRatio:      c.WrapRatio,
		MinWidthRatio:  c.MinWidthRatio,
		MinHeightRatio: c.MinHeightRatio,
		ButtonHeight:   c.ButtonHeight,
		ButtonGap:      c.ButtonGap,
	}
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.cfg.Layout.MinWidth || h < g.cfg.Layout.MinHeight
	if g.dialog != nil {
		g.dialog.Resize(w, h)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	now := g.now()

	if g.tooSmall {
		// Keep the clock from charging the player for the pause.
		if g.phase == PhasePlaying {
			g.timer.last = now
		}
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case PhaseMenu, PhaseGameOver:
		g.updateDialog(in, now)
	case PhaseReady:
		g.updateReady(now)
	case PhasePlaying:
		g.updatePlaying(in, now)
	}

	return core.StepResult{State: g.State()}
}

// updateDialog routes input to the popup and dispatches its actions.
func (g *Game) updateDialog(in core.InputFrame, now time.Time) {
	if g.dialog == nil {
		return
	}
	for _, action := range g.dialog.Update(in) {
		g.dispatch(action, now)
	}
}

// dispatch applies a popup action to the session.
func (g *Game) dispatch(action popup.Action, now time.Time) {
	switch action {
	case popup.ActionQuit:
		g.exit = true
	case popup.ActionStartGame:
		g.dialog = nil
		g.startRound(now)
	case popup.ActionReturnToMenu:
		g.toMenu()
	}
}

// toMenu tears down the round and shows the start dialog.
func (g *Game) toMenu() {
	g.tree.Destroy()
	g.tree = nil
	g.cursor = nil
	g.gen.Reset()
	g.phase = PhaseMenu
	g.reason = EndNone
	g.inserted = 0
	g.moves = 0
	g.elapsed = 0

	g.dialog = popup.New(g.limits, g.screenW, g.screenH, startTitle, startMessage)
	g.dialog.SetAction(popup.SideLeft, "Quit", popup.ActionQuit)
	g.dialog.SetAction(popup.SideRight, "Play", popup.ActionStartGame)
}

// startRound builds a fresh tree: the root comes from the first draw and
// the first number to place from the second.
func (g *Game) startRound(now time.Time) {
	g.tree.Destroy()
	g.gen.Reset()
	g.reason = EndNone
	g.inserted = 0
	g.moves = 0
	g.elapsed = 0
	g.left.Reset()
	g.right.Reset()

	root, err := g.gen.Next()
	if err != nil {
		// Validated configs always hold at least one value.
		g.toMenu()
		return
	}
	g.tree = NewTree(root)
	g.cursor = g.tree.Root()
	g.timer.Reset(now, g.cfg.Timer.Budget)

	next, err := g.gen.Next()
	if err != nil {
		g.endRound(EndComplete, now)
		return
	}
	g.current = next

	g.phase = PhaseReady
	g.readyUntil = now.Add(g.cfg.Timer.ReadyDelay)
	g.updateReady(now)
}

// updateReady starts the countdown once the ready delay has passed.
// Arrow presses during the delay are dropped.
func (g *Game) updateReady(now time.Time) {
	g.left.Reset()
	g.right.Reset()
	if now.Before(g.readyUntil) {
		return
	}
	g.phase = PhasePlaying
	g.timer.Reset(now, g.cfg.Timer.Budget)
}

// updatePlaying handles one tick of play: arrows first, then the clock.
func (g *Game) updatePlaying(in core.InputFrame, now time.Time) {
	if g.left.Update(in.Has(core.ActionLeft)) {
		g.move(SideLeft, now)
	}
	if g.phase != PhasePlaying {
		return
	}
	if g.right.Update(in.Has(core.ActionRight)) {
		g.move(SideRight, now)
	}
	if g.phase != PhasePlaying {
		return
	}

	g.elapsed = g.timer.Elapsed(now)
	if g.mode == ModePractice {
		return
	}
	if g.timer.Sample(now) {
		g.endRound(EndTimeout, now)
	}
}

// move applies one arrow press at the cursor.
func (g *Game) move(side Side, now time.Time) {
	if !CorrectSide(g.cursor.Value, g.current, side) {
		g.endRound(EndWrongSide, now)
		return
	}

	bonus := g.difficulty.MoveBonus(g.cfg.Timer.MoveBonus, g.inserted, int(g.tick))
	g.moves++

	if child, ok := Descend(g.cursor, side); ok {
		g.cursor = child
		g.timer.Add(bonus)
		return
	}

	g.tree.InsertAt(g.cursor, g.current, side)
	g.inserted++
	g.cursor = g.tree.Root()
	g.timer.Add(bonus)

	next, err := g.gen.Next()
	if err != nil {
		g.endRound(EndComplete, now)
		return
	}
	g.current = next
}

// endRound freezes the round and opens the result dialog.
func (g *Game) endRound(reason EndReason, now time.Time) {
	g.phase = PhaseGameOver
	g.reason = reason
	g.elapsed = g.timer.Elapsed(now)

	title := overTitle
	if reason == EndComplete {
		title = doneTitle
	}

	g.dialog = popup.New(g.limits, g.screenW, g.screenH, title, g.resultMessage())
	g.dialog.SetAction(popup.SideLeft, "Menu", popup.ActionReturnToMenu)
	g.dialog.SetAction(popup.SideRight, "Retry", popup.ActionStartGame)
}

// resultMessage describes the finished round.
func (g *Game) resultMessage() string {
	var head string
	switch g.reason {
	case EndWrongSide:
		head = fmt.Sprintf(" Wrong side... %d goes %s of %d.",
			g.current, SideFor(g.cursor.Value, g.current), g.cursor.Value)
	case EndTimeout:
		head = "Time's up..."
	case EndComplete:
		head = fmt.Sprintf("Every number from %d to %d is in the tree.",
			g.cfg.Values.Min, g.cfg.Values.Max-1)
	}
	return fmt.Sprintf("%s\n\nYour time: %.3fs\nNodes placed: %d",
		head, g.elapsed.Seconds(), g.inserted)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.inserted,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.tooSmall || g.phase == PhaseMenu || g.phase == PhaseGameOver,
		Exit:     g.exit,
		Depth:    g.tree.Height(),
		Elapsed:  g.elapsed,
		Reason:   g.reason.String(),
	}
}

// Gauge reports the share of the countdown left, for the platform's
// progress bar. There is no gauge outside a classic round.
func (g *Game) Gauge() (float64, string, bool) {
	if g.mode == ModePractice || (g.phase != PhaseReady && g.phase != PhasePlaying) {
		return 0, "", false
	}
	return g.timer.Fraction(), formatSeconds(g.timer.Remaining()), true
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Dialog returns the open popup, or nil.
func (g *Game) Dialog() *popup.Popup {
	return g.dialog
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
