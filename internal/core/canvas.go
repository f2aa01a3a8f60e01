package core

import "strings"

// Canvas is the drawing surface handed to games and widgets each frame.
// Coordinates are terminal cells; (0, 0) is the top-left corner.
type Canvas interface {
	Width() int
	Height() int
	Clear()

	// FillCircle fills a disc around (cx, cy). The horizontal radius is
	// doubled so the shape looks round in terminal cells.
	FillCircle(cx, cy, radius int, fill rune, c Color)
	// DrawLine draws a segment between two cells.
	DrawLine(x0, y0, x1, y1 int, c Color)
	// DrawRoundedBox outlines r with rounded corners.
	DrawRoundedBox(r Rect, c Color)
	// DrawBoxStyle outlines r with the given border style.
	DrawBoxStyle(r Rect, style BoxStyle, c Color)
	// FillRect fills r with a rune.
	FillRect(r Rect, fill rune, c Color)

	DrawText(x, y int, text string)
	DrawTextColor(x, y int, text string, c Color)
	// MeasureText returns the number of cells text occupies.
	MeasureText(text string) int

	// Blit copies a sprite with its top-left corner at (x, y).
	// Spaces in the sprite are transparent.
	Blit(x, y int, s Sprite, c Color)
}

// BoxStyle selects the border runes used by DrawBoxStyle.
type BoxStyle int

const (
	BoxSquare BoxStyle = iota
	BoxRounded
	BoxHeavy
	BoxDouble
)

// boxRunes lists corner and edge runes: tl, tr, bl, br, horizontal, vertical.
var boxRunes = map[BoxStyle][6]rune{
	BoxSquare:  {'┌', '┐', '└', '┘', '─', '│'},
	BoxRounded: {'╭', '╮', '╰', '╯', '─', '│'},
	BoxHeavy:   {'┏', '┓', '┗', '┛', '━', '┃'},
	BoxDouble:  {'╔', '╗', '╚', '╝', '═', '║'},
}

// Sprite is a small piece of ASCII art, the terminal stand-in for a texture.
type Sprite struct {
	Lines []string
	W, H  int
}

// ParseSprite builds a sprite from raw text. Trailing blank lines are dropped
// and tabs are not interpreted.
func ParseSprite(data []byte) Sprite {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	s := Sprite{Lines: lines, H: len(lines)}
	for _, line := range lines {
		if w := TextWidth(line); w > s.W {
			s.W = w
		}
	}
	return s
}
