package buildtree

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/buildtree/internal/config"
	"github.com/vovakirdan/buildtree/internal/core"
	"github.com/vovakirdan/buildtree/internal/popup"
)

const (
	testW = 80
	testH = 22
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGame(t *testing.T, ctor func(...Option) *Game, seed int64, cfg config.BuildTreeConfig) (*Game, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	g := ctor(WithConfig(cfg), WithClock(clock.Now))
	g.Reset(core.RuntimeConfig{ScreenW: testW, ScreenH: testH, TickRate: 60, Seed: seed})
	return g, clock
}

// findSeed returns a seed whose first n draws satisfy pred.
func findSeed(t *testing.T, n int, pred func(v []int) bool) int64 {
	t.Helper()
	cfg := config.DefaultBuildTreeConfig()
	for seed := int64(1); seed < 1000; seed++ {
		gen := NewGenerator(seed, cfg.Values.Min, cfg.Values.Max)
		v := make([]int, n)
		for i := range v {
			v[i], _ = gen.Next()
		}
		if pred(v) {
			return seed
		}
	}
	t.Fatal("no seed matches")
	return 0
}

// press holds an action for one tick and releases it on the next.
func press(g *Game, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	g.Step(in)
	return g.Step(core.NewInputFrame())
}

// click presses and releases the pointer over r.
func click(g *Game, r core.Rect) core.StepResult {
	x, y := r.Center()
	in := core.NewInputFrame()
	in.Pointer = core.Pointer{X: x, Y: y, Down: true}
	g.Step(in)
	in.Pointer.Down = false
	return g.Step(in)
}

func sideAction(s Side) core.Action {
	if s == SideLeft {
		return core.ActionLeft
	}
	return core.ActionRight
}

// startPlaying presses Play and waits out the ready delay.
func startPlaying(t *testing.T, g *Game, clock *fakeClock) {
	t.Helper()
	press(g, core.ActionConfirm)
	if g.Phase() != PhaseReady {
		t.Fatalf("phase after Play = %s, expected ready", g.Phase())
	}
	clock.Advance(g.cfg.Timer.ReadyDelay)
	g.Step(core.NewInputFrame())
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase after ready delay = %s, expected playing", g.Phase())
	}
}

func TestStartsInMenu(t *testing.T) {
	g, _ := newTestGame(t, New, 1, config.DefaultBuildTreeConfig())

	snap := g.Snapshot()
	if snap.Phase != "menu" || snap.DialogTitle != startTitle {
		t.Fatalf("unexpected start state: %+v", snap)
	}
	d := g.Dialog()
	if d.Button(popup.SideLeft).Action != popup.ActionQuit || d.Button(popup.SideRight).Action != popup.ActionStartGame {
		t.Error("start dialog should offer Quit and Play")
	}
	if !g.State().Paused {
		t.Error("menu should report paused")
	}
}

func TestRoundSetup(t *testing.T) {
	g, clock := newTestGame(t, New, 5, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	history := g.gen.History()
	if len(history) != 2 {
		t.Fatalf("history has %d values, expected 2", len(history))
	}
	if g.tree.Root().Value != history[0] {
		t.Errorf("root = %d, expected first draw %d", g.tree.Root().Value, history[0])
	}
	if g.current != history[1] {
		t.Errorf("current = %d, expected second draw %d", g.current, history[1])
	}
	if g.cursor != g.tree.Root() {
		t.Error("cursor should start at the root")
	}
	if g.Dialog() != nil {
		t.Error("dialog should close when play starts")
	}
	if g.timer.Remaining() != 15*time.Second {
		t.Errorf("remaining = %s, expected 15s", g.timer.Remaining())
	}
}

func TestReadyIgnoresInput(t *testing.T) {
	g, clock := newTestGame(t, New, 5, config.DefaultBuildTreeConfig())
	press(g, core.ActionConfirm)

	press(g, core.ActionLeft)
	press(g, core.ActionRight)
	clock.Advance(400 * time.Millisecond)
	g.Step(core.NewInputFrame())

	if g.Phase() != PhaseReady {
		t.Fatalf("phase = %s, expected ready", g.Phase())
	}
	if g.moves != 0 || g.tree.Size() != 1 {
		t.Error("arrows during the ready delay should be ignored")
	}

	clock.Advance(400 * time.Millisecond)
	g.Step(core.NewInputFrame())
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %s, expected playing", g.Phase())
	}
	if g.timer.Remaining() != 15*time.Second {
		t.Errorf("countdown should start full after the delay, got %s", g.timer.Remaining())
	}
}

func TestInsertLeftChild(t *testing.T) {
	seed := findSeed(t, 2, func(v []int) bool { return v[1] < v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	root := g.tree.Root()
	candidate := g.current

	press(g, core.ActionLeft)

	if root.Left == nil || root.Left.Value != candidate {
		t.Fatalf("left child = %v, expected %d", root.Left, candidate)
	}
	if g.cursor != root {
		t.Error("cursor should reset to the root after an insertion")
	}
	history := g.gen.History()
	if len(history) != 3 || g.current != history[2] {
		t.Errorf("expected a third draw as the new candidate, history %v current %d", history, g.current)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %s, expected playing", g.Phase())
	}
	if g.State().Score != 1 {
		t.Errorf("score = %d, expected 1", g.State().Score)
	}
}

func TestDescendKeepsCandidate(t *testing.T) {
	seed := findSeed(t, 3, func(v []int) bool { return v[1] < v[0] && v[2] < v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	press(g, core.ActionLeft) // insert v[1]
	candidate := g.current
	drawn := g.gen.Len()

	press(g, core.ActionLeft) // descend into v[1]

	if g.cursor != g.tree.Root().Left {
		t.Fatal("cursor should move into the existing left child")
	}
	if g.current != candidate || g.gen.Len() != drawn {
		t.Error("descending must not consume or draw a value")
	}
	if g.moves != 2 {
		t.Errorf("moves = %d, expected 2", g.moves)
	}
}

func TestWrongSideEndsRound(t *testing.T) {
	seed := findSeed(t, 2, func(v []int) bool { return v[1] > v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	clock.Advance(2500 * time.Millisecond)
	g.Step(core.NewInputFrame())
	res := press(g, core.ActionLeft)

	if !res.State.GameOver || res.State.Reason != "wrong_side" {
		t.Fatalf("state = %+v, expected wrong_side game over", res.State)
	}
	d := g.Dialog()
	if d == nil || d.Title() != overTitle {
		t.Fatal("game over dialog should open")
	}
	if !strings.Contains(d.Message(), "Your time: 2.500s") {
		t.Errorf("message %q should report the elapsed time", d.Message())
	}
	if d.Button(popup.SideLeft).Action != popup.ActionReturnToMenu {
		t.Error("left action should return to the menu")
	}
	if g.tree.Root().Left != nil {
		t.Error("a wrong move must not insert")
	}
}

func TestWrongSideRight(t *testing.T) {
	seed := findSeed(t, 2, func(v []int) bool { return v[1] < v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	press(g, core.ActionRight)
	if g.Snapshot().Reason != "wrong_side" {
		t.Errorf("reason = %q, expected wrong_side", g.Snapshot().Reason)
	}
}

func TestBothArrowsSameTick(t *testing.T) {
	tests := []struct {
		name      string
		pred      func(v []int) bool
		phase     Phase
		reason    string
		size      int
		bothSides bool
	}{
		{
			name:      "left inserts then right judged against the new candidate",
			pred:      func(v []int) bool { return v[1] < v[0] && v[2] > v[0] },
			phase:     PhasePlaying,
			size:      3,
			bothSides: true,
		},
		{
			name:   "wrong left ends the round before right",
			pred:   func(v []int) bool { return v[1] > v[0] },
			phase:  PhaseGameOver,
			reason: "wrong_side",
			size:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seed := findSeed(t, 3, tt.pred)
			g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
			startPlaying(t, g, clock)

			in := core.NewInputFrame()
			in.Set(core.ActionLeft)
			in.Set(core.ActionRight)
			g.Step(in)
			g.Step(core.NewInputFrame())

			if g.Phase() != tt.phase {
				t.Fatalf("phase = %s, expected %s", g.Phase(), tt.phase)
			}
			if g.Snapshot().Reason != tt.reason {
				t.Errorf("reason = %q, expected %q", g.Snapshot().Reason, tt.reason)
			}
			if g.tree.Size() != tt.size {
				t.Errorf("tree size = %d, expected %d", g.tree.Size(), tt.size)
			}
			root := g.tree.Root()
			if both := root.Left != nil && root.Right != nil; both != tt.bothSides {
				t.Errorf("root has both children = %v, expected %v", both, tt.bothSides)
			}
		})
	}
}

func TestTimeoutWithoutInput(t *testing.T) {
	g, clock := newTestGame(t, New, 9, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	for i := 0; i < 14; i++ {
		clock.Advance(time.Second)
		if g.Step(core.NewInputFrame()).State.GameOver {
			t.Fatalf("round ended early after %ds", i+1)
		}
	}

	clock.Advance(time.Second)
	res := g.Step(core.NewInputFrame())
	if !res.State.GameOver || res.State.Reason != "timeout" {
		t.Fatalf("state = %+v, expected timeout", res.State)
	}
	if g.timer.Remaining() != 0 {
		t.Errorf("remaining = %s, expected 0", g.timer.Remaining())
	}
	if d := g.Dialog(); d == nil || d.Button(popup.SideLeft).Action != popup.ActionReturnToMenu {
		t.Error("timeout dialog should offer a return to the menu")
	}
}

func TestTimerNeverIncreasesWithoutMoves(t *testing.T) {
	g, clock := newTestGame(t, New, 11, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	prev := g.timer.Remaining()
	for i := 0; i < 200 && g.Phase() == PhasePlaying; i++ {
		clock.Advance(time.Duration(i%7) * 37 * time.Millisecond)
		g.Step(core.NewInputFrame())

		r := g.timer.Remaining()
		if r > prev {
			t.Fatalf("remaining rose from %s to %s", prev, r)
		}
		if r < 0 {
			t.Fatalf("remaining went negative: %s", r)
		}
		prev = r
	}
}

func TestCorrectMoveAddsBonus(t *testing.T) {
	g, clock := newTestGame(t, New, 13, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	clock.Advance(3 * time.Second)
	g.Step(core.NewInputFrame())
	before := g.timer.Remaining()

	side := SideFor(g.cursor.Value, g.current)
	press(g, sideAction(side))

	if g.tree.Size() != 2 {
		t.Fatal("first correct move should insert")
	}
	if got := g.timer.Remaining() - before; got != 500*time.Millisecond {
		t.Errorf("bonus = %s, expected 500ms", got)
	}
}

func TestCorrectMovesBuildBST(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
		startPlaying(t, g, clock)

		for i := 0; i < 5000 && g.Phase() == PhasePlaying; i++ {
			press(g, sideAction(SideFor(g.cursor.Value, g.current)))
		}

		if g.Snapshot().Reason != "complete" {
			t.Fatalf("seed %d: reason = %q, expected complete", seed, g.Snapshot().Reason)
		}
		if !g.tree.IsBST() {
			t.Fatalf("seed %d: tree is not a BST", seed)
		}
		if g.tree.Size() != 100 {
			t.Errorf("seed %d: tree has %d nodes, expected all 100 values", seed, g.tree.Size())
		}
		if g.Dialog().Title() != doneTitle {
			t.Errorf("seed %d: dialog title = %q", seed, g.Dialog().Title())
		}
	}
}

func TestRangeExhausted(t *testing.T) {
	cfg := config.DefaultBuildTreeConfig()
	cfg.Values = config.ValuesConfig{Min: 1, Max: 4}
	g, clock := newTestGame(t, New, 3, cfg)
	startPlaying(t, g, clock)

	for i := 0; i < 10 && g.Phase() == PhasePlaying; i++ {
		press(g, sideAction(SideFor(g.cursor.Value, g.current)))
	}

	if g.Phase() != PhaseGameOver || g.Snapshot().Reason != "complete" {
		t.Fatalf("snapshot = %+v, expected a completed round", g.Snapshot())
	}
	if g.State().Score != 2 {
		t.Errorf("score = %d, expected 2", g.State().Score)
	}
}

func TestReturnToMenu(t *testing.T) {
	seed := findSeed(t, 2, func(v []int) bool { return v[1] > v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)
	press(g, core.ActionLeft)

	click(g, g.Dialog().Button(popup.SideLeft).Bounds)

	snap := g.Snapshot()
	if snap.Phase != "menu" || snap.DialogTitle != startTitle {
		t.Fatalf("snapshot = %+v, expected the start dialog", snap)
	}
	if snap.TreeSize != 0 || snap.Drawn != 0 {
		t.Errorf("menu should clear the tree and history: %+v", snap)
	}
	if g.State().Exit {
		t.Error("returning to the menu must not exit")
	}
}

func TestRetryStartsNewRound(t *testing.T) {
	seed := findSeed(t, 2, func(v []int) bool { return v[1] > v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)
	press(g, core.ActionLeft)

	startPlaying(t, g, clock) // Retry has the default focus

	if g.gen.Len() != 2 || g.tree.Size() != 1 {
		t.Errorf("retry should start from a fresh tree: %+v", g.Snapshot())
	}
	if g.State().GameOver {
		t.Error("retry should clear game over")
	}
}

func TestQuitRequestsExit(t *testing.T) {
	g, _ := newTestGame(t, New, 1, config.DefaultBuildTreeConfig())

	press(g, core.ActionLeft)
	res := press(g, core.ActionConfirm)

	if !res.State.Exit {
		t.Error("Quit should ask the platform to exit")
	}
}

func TestPracticeNeverTimesOut(t *testing.T) {
	g, clock := newTestGame(t, NewPractice, 21, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	clock.Advance(10 * time.Minute)
	g.Step(core.NewInputFrame())

	if g.Phase() != PhasePlaying {
		t.Fatalf("practice round ended: %+v", g.Snapshot())
	}
	if g.State().Elapsed != 10*time.Minute {
		t.Errorf("elapsed = %s, expected 10m", g.State().Elapsed)
	}
	if _, _, ok := g.Gauge(); ok {
		t.Error("practice mode has no countdown gauge")
	}
}

func TestGauge(t *testing.T) {
	g, clock := newTestGame(t, New, 21, config.DefaultBuildTreeConfig())
	if _, _, ok := g.Gauge(); ok {
		t.Error("no gauge in the menu")
	}

	startPlaying(t, g, clock)
	clock.Advance(7500 * time.Millisecond)
	g.Step(core.NewInputFrame())

	frac, label, ok := g.Gauge()
	if !ok || frac != 0.5 || label != "7.50s" {
		t.Errorf("Gauge = (%v, %q, %v), expected (0.5, \"7.50s\", true)", frac, label, ok)
	}
}

func TestTooSmallPauses(t *testing.T) {
	clock := newFakeClock()
	g := New(WithConfig(config.DefaultBuildTreeConfig()), WithClock(clock.Now))
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, Seed: 1})

	press(g, core.ActionConfirm)
	if g.Phase() != PhaseMenu {
		t.Error("input should be ignored while the window is too small")
	}
	if !g.State().Paused || !g.Snapshot().TooSmall {
		t.Error("small window should pause")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small notice")
	}

	g.Resize(testW, testH)
	if g.Snapshot().TooSmall {
		t.Error("resize should lift the pause")
	}
	startPlaying(t, g, clock)
}

func TestResizePausesClock(t *testing.T) {
	g, clock := newTestGame(t, New, 4, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	g.Resize(20, 8)
	clock.Advance(time.Minute)
	g.Step(core.NewInputFrame())
	g.Resize(testW, testH)
	g.Step(core.NewInputFrame())

	if g.Phase() != PhasePlaying || g.timer.Remaining() != 15*time.Second {
		t.Errorf("time spent too small should not count: %+v", g.Snapshot())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newTestGame(t, New, 12345, config.DefaultBuildTreeConfig())
		startPlaying(t, g, clock)
		for i := 0; i < 40 && g.Phase() == PhasePlaying; i++ {
			clock.Advance(100 * time.Millisecond)
			press(g, sideAction(SideFor(g.cursor.Value, g.current)))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestRenderMenu(t *testing.T) {
	g, _ := newTestGame(t, New, 1, config.DefaultBuildTreeConfig())
	screen := core.NewScreen(testW, testH)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Start game?", "Quit", "Play", "|___/"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu render missing %q", want)
		}
	}
}

func TestRenderRound(t *testing.T) {
	seed := findSeed(t, 3, func(v []int) bool { return v[1] < v[0] })
	g, clock := newTestGame(t, New, seed, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)
	press(g, core.ActionLeft)

	screen := core.NewScreen(testW, testH)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, fmt.Sprintf("Insert: %d", g.current)) {
		t.Error("HUD should show the number to place")
	}
	root := g.tree.Root()
	if !strings.Contains(screen.Row(4), strconv.Itoa(root.Value)) {
		t.Errorf("cursor node %d not drawn on row 4: %q", root.Value, screen.Row(4))
	}
	if !strings.Contains(out, strconv.Itoa(root.Left.Value)) {
		t.Error("left child not drawn")
	}
	if !strings.Contains(out, "Nodes: 2") {
		t.Error("stats line missing")
	}
}

func TestRenderClockWarning(t *testing.T) {
	g, clock := newTestGame(t, New, 2, config.DefaultBuildTreeConfig())
	startPlaying(t, g, clock)

	colorAt := func() core.Color {
		screen := core.NewScreen(testW, testH)
		g.Render(screen)
		x := strings.Index(screen.Row(0), "Left:")
		if x < 0 {
			t.Fatalf("clock missing from %q", screen.Row(0))
		}
		return screen.GetCell(x, 0).Color
	}

	if c := colorAt(); c == core.ColorBrightRed {
		t.Error("clock should not warn with a full budget")
	}

	clock.Advance(14 * time.Second)
	g.Step(core.NewInputFrame())
	if c := colorAt(); c != core.ColorBrightRed {
		t.Errorf("clock color = %v, expected red at 1s left", c)
	}
}
