// Package popup implements a modal dialog with a title, a word-wrapped
// message and up to two action buttons, hit-tested with the mouse or
// driven from the keyboard.
package popup

import (
	"github.com/vovakirdan/buildtree/internal/core"
)

// Action is what a button asks the owner of the popup to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionStartGame
	ActionReturnToMenu
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionQuit:
		return "Quit"
	case ActionStartGame:
		return "StartGame"
	case ActionReturnToMenu:
		return "ReturnToMenu"
	default:
		return "Unknown"
	}
}

// Side selects one of the two buttons.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Limits bounds the popup content and drives its layout.
type Limits struct {
	MaxTitle   int // Title length in runes
	MaxMessage int // Message length in runes
	MaxLabel   int // Button label length in runes

	WrapRatio      float64 // Max message line width as a fraction of screen width
	MinWidthRatio  float64 // Min box width as a fraction of half the screen width
	MinHeightRatio float64 // Min box height as a fraction of half the screen height

	ButtonHeight int // Rows per button
	ButtonGap    int // Rows between the box and the buttons
}

// DefaultLimits returns the stock popup limits.
func DefaultLimits() Limits {
	return Limits{
		MaxTitle:       25,
		MaxMessage:     150,
		MaxLabel:       10,
		WrapRatio:      0.8,
		MinWidthRatio:  0.9,
		MinHeightRatio: 0.8,
		ButtonHeight:   3,
		ButtonGap:      1,
	}
}

// Button is one of the popup's two actions.
type Button struct {
	Label    string
	Bounds   core.Rect
	Hovering bool // Pointer is over the button and not pressing
	Down     bool // Pressed over the button, waiting for release
	Action   Action
}

// Active reports whether the button has an action attached.
// Inactive buttons are neither drawn nor hit-tested.
func (b Button) Active() bool {
	return b.Action != ActionNone
}

// Popup is a modal dialog. A new Popup replaces any previous one entirely.
type Popup struct {
	limits  Limits
	screenW int
	screenH int

	title   string
	message string
	lines   []string
	bounds  core.Rect
	buttons [2]Button
	focus   Side

	leftKey    core.KeyLatch
	rightKey   core.KeyLatch
	confirmKey core.KeyLatch
}

// New opens a popup for a screen of the given size. Title and message are
// truncated to their limits; both buttons start without an action.
func New(limits Limits, screenW, screenH int, title, message string) *Popup {
	p := &Popup{
		limits:  limits,
		screenW: screenW,
		screenH: screenH,
		title:   truncate(title, limits.MaxTitle),
		message: truncate(message, limits.MaxMessage),
		focus:   SideRight,
	}
	p.layout()
	return p
}

// SetAction attaches a labelled action to a button.
func (p *Popup) SetAction(side Side, label string, action Action) {
	b := &p.buttons[side]
	b.Label = truncate(label, p.limits.MaxLabel)
	b.Action = action
	b.Down = false
	b.Hovering = false
}

// Title returns the (possibly truncated) title.
func (p *Popup) Title() string {
	return p.title
}

// Message returns the (possibly truncated) raw message.
func (p *Popup) Message() string {
	return p.message
}

// Lines returns the wrapped message lines.
func (p *Popup) Lines() []string {
	return p.lines
}

// Bounds returns the message box rectangle.
func (p *Popup) Bounds() core.Rect {
	return p.bounds
}

// Button returns a copy of the button on the given side.
func (p *Popup) Button(side Side) Button {
	return p.buttons[side]
}

// Focus returns the side that the keyboard confirm key would press.
func (p *Popup) Focus() Side {
	other := SideLeft
	if p.focus == SideLeft {
		other = SideRight
	}
	if !p.buttons[p.focus].Active() && p.buttons[other].Active() {
		return other
	}
	return p.focus
}

// Resize redoes the layout for a new screen size, keeping actions.
func (p *Popup) Resize(screenW, screenH int) {
	p.screenW = screenW
	p.screenH = screenH
	p.layout()
}

// layout wraps the message and places the box and buttons.
func (p *Popup) layout() {
	maxLine := int(float64(p.screenW) * p.limits.WrapRatio)
	p.lines = Wrap(p.message, maxLine, core.TextWidth)

	contentW := core.TextWidth(p.title) + 6 // "╭─┤ title ├─╮"
	for _, line := range p.lines {
		contentW = max(contentW, core.TextWidth(line)+4)
	}
	contentH := len(p.lines) + 4

	minW := int(float64(p.screenW) / 2 * p.limits.MinWidthRatio)
	minH := int(float64(p.screenH) / 2 * p.limits.MinHeightRatio)

	width := min(max(contentW, minW), p.screenW)
	height := max(contentH, minH)

	groupH := height + p.limits.ButtonGap + p.limits.ButtonHeight
	p.bounds = core.Rect{
		X: (p.screenW - width) / 2,
		Y: max((p.screenH-groupH)/2, 0),
		W: width,
		H: height,
	}

	buttonY := p.bounds.Bottom() + p.limits.ButtonGap
	half := width / 2
	p.buttons[SideLeft].Bounds = core.NewRect(p.bounds.X, buttonY, half, p.limits.ButtonHeight)
	p.buttons[SideRight].Bounds = core.NewRect(p.bounds.Right()-half, buttonY, half, p.limits.ButtonHeight)
}

// Update feeds one tick of input to the popup and returns the actions fired,
// left button first. A pointer press-then-release over a button fires it
// once; left/right move the keyboard focus and confirm fires the focused
// button.
func (p *Popup) Update(in core.InputFrame) []Action {
	var fired []Action

	ptr := in.Pointer
	anyDown := p.buttons[SideLeft].Down || p.buttons[SideRight].Down

	for i := range p.buttons {
		b := &p.buttons[i]
		b.Hovering = false
		if !b.Active() {
			b.Down = false
			continue
		}

		inside := b.Bounds.Contains(ptr.X, ptr.Y)
		switch {
		case ptr.Down:
			if inside {
				b.Down = true
			}
		case anyDown:
			if inside && b.Down {
				fired = append(fired, b.Action)
			}
			b.Down = false
		default:
			b.Hovering = inside
		}
	}

	if p.leftKey.Update(in.Has(core.ActionLeft)) && p.buttons[SideLeft].Active() {
		p.focus = SideLeft
	}
	if p.rightKey.Update(in.Has(core.ActionRight)) && p.buttons[SideRight].Active() {
		p.focus = SideRight
	}
	if p.confirmKey.Update(in.Has(core.ActionConfirm)) {
		if b := p.buttons[p.Focus()]; b.Active() {
			fired = append(fired, b.Action)
		}
	}

	return fired
}
