package buildtree

import "time"

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Phase       string
	Reason      string
	Current     int // Number waiting to be placed
	CursorValue int // 0 when there is no round
	RootValue   int
	TreeSize    int
	TreeHeight  int
	Inserted    int
	Moves       int
	Drawn       int // Values drawn from the generator this game
	Remaining   time.Duration
	DialogTitle string
	TooSmall    bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		Mode:       string(g.mode),
		Phase:      g.phase.String(),
		Reason:     g.reason.String(),
		Current:    g.current,
		TreeSize:   g.tree.Size(),
		TreeHeight: g.tree.Height(),
		Inserted:   g.inserted,
		Moves:      g.moves,
		Remaining:  g.timer.Remaining(),
		TooSmall:   g.tooSmall,
	}
	if g.gen != nil {
		s.Drawn = g.gen.Len()
	}
	if g.cursor != nil {
		s.CursorValue = g.cursor.Value
	}
	if root := g.tree.Root(); root != nil {
		s.RootValue = root.Value
	}
	if g.dialog != nil {
		s.DialogTitle = g.dialog.Title()
	}
	return s
}
