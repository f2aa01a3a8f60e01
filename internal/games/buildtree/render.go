package buildtree

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/buildtree/internal/core"
)

// Layout constants, in cells.
const (
	hudRows    = 2 // Number and clock line plus the hint line
	nodeRadius = 1 // Nodes are 5x3 discs
	levelGap   = 5 // Rows between a node and its children
)

var (
	cursorPalette = core.Palette{Border: core.ColorBrightRed, Fill: core.ColorDefault, Text: core.ColorBrightWhite}
	childPalette  = core.Palette{Border: core.ColorGray, Fill: core.ColorDefault, Text: core.ColorWhite}
	edgeColor     = core.ColorWhite
)

// Render draws the current game state.
func (g *Game) Render(dst core.Canvas) {
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	switch g.phase {
	case PhaseMenu:
		g.renderMenu(dst)
	default:
		g.renderRound(dst)
	}

	if g.dialog != nil {
		g.dialog.Draw(dst)
	}
}

func (g *Game) renderTooSmall(dst core.Canvas) {
	lines := []string{
		"Window too small",
		fmt.Sprintf("need %dx%d, have %dx%d", g.cfg.Layout.MinWidth, g.cfg.Layout.MinHeight, g.screenW, g.screenH),
	}
	y := dst.Height()/2 - 1
	for i, line := range lines {
		x := (dst.Width() - dst.MeasureText(line)) / 2
		dst.DrawTextColor(x, y+i, line, core.ColorBrightYellow)
	}
}

// renderMenu draws the title artwork behind the start dialog.
func (g *Game) renderMenu(dst core.Canvas) {
	w, h := dst.Width(), dst.Height()

	title := g.art.title
	if title.W <= w {
		dst.Blit((w-title.W)/2, 1, title, core.ColorGold)
	}

	tree := g.art.tree
	if 2*tree.W+4 <= w && tree.H+title.H+2 <= h {
		y := h - tree.H
		dst.Blit(1, y, tree, core.ColorGreen)
		dst.Blit(w-tree.W-1, y, tree, core.ColorGreen)
	}
}

// renderRound draws the part of the tree below the cursor and the HUD.
func (g *Game) renderRound(dst core.Canvas) {
	w, h := dst.Width(), dst.Height()

	if g.cursor != nil {
		top := hudRows + 1 + nodeRadius
		levels := min(g.cfg.Layout.ViewDepth, (h-2-top-nodeRadius)/levelGap)
		g.drawSubtree(dst, g.cursor, w/2, top, 0, max(levels, 0))
	}

	g.renderHUD(dst)

	if g.phase == PhaseReady {
		msg := "Get ready..."
		dst.DrawTextColor((w-dst.MeasureText(msg))/2, h/2, msg, core.ColorBrightYellow)
	}
}

// drawSubtree draws n at (cx, cy) and up to maxLevel levels below it.
// Children sit w/2^(level+2) cells to each side of their parent.
func (g *Game) drawSubtree(dst core.Canvas, n *Node, cx, cy, level, maxLevel int) {
	if level < maxLevel {
		dx := dst.Width() >> (level + 2)
		childY := cy + levelGap
		for _, side := range []Side{SideLeft, SideRight} {
			child := n.Child(side)
			if child == nil {
				continue
			}
			dir := -1
			if side == SideRight {
				dir = 1
			}
			childX := cx + dir*dx
			dst.DrawLine(cx+dir*(2*nodeRadius+1), cy, childX, childY-nodeRadius-1, edgeColor)
			g.drawSubtree(dst, child, childX, childY, level+1, maxLevel)
		}
	} else if n.Left != nil || n.Right != nil {
		// More tree below the view.
		dst.DrawTextColor(cx, cy+nodeRadius+1, "┆", childPalette.Border)
	}

	pal := childPalette
	if level == 0 {
		pal = cursorPalette
	}
	drawNode(dst, n.Value, cx, cy, pal)
}

// drawNode draws one node: a shaded disc with the value across its middle.
func drawNode(dst core.Canvas, value, cx, cy int, pal core.Palette) {
	dst.FillCircle(cx, cy, nodeRadius, '░', pal.Border)
	dst.FillRect(core.NewRect(cx-2*nodeRadius+1, cy, 4*nodeRadius-1, 1), ' ', pal.Fill)

	label := strconv.Itoa(value)
	dst.DrawTextColor(cx-dst.MeasureText(label)/2, cy, label, pal.Text)
}

// renderHUD draws the number to place, the clock and the round stats.
func (g *Game) renderHUD(dst core.Canvas) {
	w, h := dst.Width(), dst.Height()

	number := fmt.Sprintf("Insert: %d", g.current)
	dst.DrawTextColor(1, 0, number, core.ColorGold)

	var clock string
	clockColor := core.ColorBrightWhite
	if g.mode == ModePractice {
		clock = "Time: " + formatSeconds(g.elapsed)
	} else {
		remaining := g.timer.Remaining()
		clock = "Left: " + formatSeconds(remaining)
		if remaining <= g.cfg.Timer.WarnBelow {
			clockColor = core.ColorBrightRed
		}
	}
	dst.DrawTextColor(w-dst.MeasureText(clock)-1, 0, clock, clockColor)

	hint := "◀ smaller   larger ▶"
	dst.DrawTextColor((w-dst.MeasureText(hint))/2, 1, hint, core.ColorGray)

	stats := fmt.Sprintf("Nodes: %d  Depth: %d  Moves: %d", g.tree.Size(), g.tree.Height(), g.moves)
	dst.DrawTextColor(1, h-1, stats, core.ColorGray)
}
