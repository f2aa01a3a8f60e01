package popup

import "github.com/vovakirdan/buildtree/internal/core"

var (
	panelColor  = core.ColorBrightWhite
	titleColor  = core.ColorBrightBlue
	textColor   = core.ColorWhite
	buttonColor = core.ColorBrightWhite
	activeColor = core.ColorBrightCyan
)

// Draw renders the popup: a rounded panel with the title set into its top
// border, the wrapped message, and the active buttons.
func (p *Popup) Draw(dst core.Canvas) {
	b := p.bounds
	dst.FillRect(b, ' ', core.ColorDefault)
	dst.DrawRoundedBox(b, panelColor)

	// Title tab
	if p.title != "" {
		dst.DrawTextColor(b.X+2, b.Y, "┤ ", panelColor)
		dst.DrawTextColor(b.X+4, b.Y, p.title, titleColor)
		dst.DrawTextColor(b.X+4+dst.MeasureText(p.title), b.Y, " ├", panelColor)
	}

	// Message body, clipped to the panel
	rows := b.H - 3
	for i, line := range p.lines {
		if i >= rows {
			break
		}
		dst.DrawTextColor(b.X+2, b.Y+2+i, line, textColor)
	}

	focus := p.Focus()
	for side := range p.buttons {
		btn := p.buttons[side]
		if !btn.Active() {
			continue
		}
		p.drawButton(dst, btn, Side(side) == focus)
	}
}

// drawButton draws one button. Hovered, pressed or focused buttons are
// inset by a column on each side, the terminal version of a pressed notch.
func (p *Popup) drawButton(dst core.Canvas, btn Button, focused bool) {
	r := btn.Bounds
	dst.FillRect(r, ' ', core.ColorDefault)

	style := core.BoxRounded
	color := buttonColor
	if btn.Hovering || btn.Down || focused {
		r = r.Inset(1, 0)
		style = core.BoxHeavy
		color = activeColor
	}

	label := btn.Label
	if r.H < 3 {
		label = "[ " + label + " ]"
	} else {
		dst.DrawBoxStyle(r, style, color)
	}

	x := r.X + (r.W-dst.MeasureText(label))/2
	dst.DrawTextColor(x, r.Y+r.H/2, label, color)
}
