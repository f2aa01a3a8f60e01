package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one character position on the screen.
// A zero Rune marks the right half of a double-width character.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

var _ Canvas = (*Screen)(nil)

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position using the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, r, ColorDefault)
}

// SetCell places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position.
// Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
// Returns an uncolored space for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes colored text starting at (x, y). Double-width
// runes take two cells.
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(col, y, r, c)
		if w == 2 {
			s.SetCell(col+1, y, 0, c)
		}
		col += w
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - s.MeasureText(text)) / 2
	s.DrawTextColor(x, y, text, c)
}

// MeasureText returns the display width of text in cells.
func (s *Screen) MeasureText(text string) int {
	return TextWidth(text)
}

// TextWidth returns the number of terminal cells text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// FillRect fills a rectangular area with the given rune.
func (s *Screen) FillRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, fill, c)
		}
	}
}

// DrawBox draws a square-cornered box outline.
func (s *Screen) DrawBox(r Rect) {
	s.DrawBoxStyle(r, BoxSquare, ColorDefault)
}

// DrawRoundedBox draws a box outline with rounded corners.
func (s *Screen) DrawRoundedBox(r Rect, c Color) {
	s.DrawBoxStyle(r, BoxRounded, c)
}

// DrawBoxStyle draws a box outline using the runes of the given style.
func (s *Screen) DrawBoxStyle(r Rect, style BoxStyle, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	runes, ok := boxRunes[style]
	if !ok {
		runes = boxRunes[BoxSquare]
	}

	s.SetCell(r.X, r.Y, runes[0], c)
	s.SetCell(r.Right()-1, r.Y, runes[1], c)
	s.SetCell(r.X, r.Bottom()-1, runes[2], c)
	s.SetCell(r.Right()-1, r.Bottom()-1, runes[3], c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetCell(x, r.Y, runes[4], c)
		s.SetCell(x, r.Bottom()-1, runes[4], c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetCell(r.X, y, runes[5], c)
		s.SetCell(r.Right()-1, y, runes[5], c)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x, y+i, r)
	}
}

// DrawLine draws a segment with Bresenham's algorithm. The rune follows
// the overall slope so diagonal edges read as '/' or '\'.
func (s *Screen) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)

	var glyph rune
	switch {
	case dx == 0:
		glyph = '│'
	case dy == 0:
		glyph = '─'
	case (x1 > x0) == (y1 > y0):
		glyph = '\\'
	default:
		glyph = '/'
	}

	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	err := dx + dy
	for {
		s.SetCell(x0, y0, glyph, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle fills a disc centered at (cx, cy). Cells are roughly twice as
// tall as they are wide, so the x radius is doubled.
func (s *Screen) FillCircle(cx, cy, radius int, fill rune, c Color) {
	if radius < 0 {
		return
	}
	limit := (float64(radius) + 0.5) * (float64(radius) + 0.5)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -2 * radius; dx <= 2*radius; dx++ {
			fx := float64(dx) / 2
			if fx*fx+float64(dy*dy) <= limit {
				s.SetCell(cx+dx, cy+dy, fill, c)
			}
		}
	}
}

// Blit copies the non-space runes of a sprite onto the screen.
func (s *Screen) Blit(x, y int, sp Sprite, c Color) {
	for row, line := range sp.Lines {
		col := x
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if r != ' ' {
				s.SetCell(col, y+row, r, c)
				if w == 2 {
					s.SetCell(col+1, y+row, 0, c)
				}
			}
			col += w
		}
	}
}

// String converts the screen buffer to a plain string, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			if r := s.cells[y][x].Rune; r != 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, cell := range s.cells[y] {
		if cell.Rune != 0 {
			sb.WriteRune(cell.Rune)
		}
	}
	return sb.String()
}

