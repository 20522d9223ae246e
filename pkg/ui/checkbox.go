package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles once per press.
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64

	held    bool // press already consumed
	changed bool
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{Label: label, Value: value, X: x, Y: y, Size: 16}
}

func (c *Checkbox) Update(p Pointer) {
	if p.Pressed && inside(p, c.X, c.Y, c.Size, c.Size) {
		if !c.held {
			c.Value = !c.Value
			c.changed = true
			c.held = true
		}
		return
	}
	c.held = false
}

// Changed reports whether the box was toggled since the last call.
func (c *Checkbox) Changed() bool {
	ch := c.changed
	c.changed = false
	return ch
}

// Set updates the value without reporting a change, for state owned elsewhere.
func (c *Checkbox) Set(v bool) { c.Value = v }

func (c *Checkbox) Height() float64 { return c.Size + 5 }

func (c *Checkbox) place(y float64) { c.Y = y }

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+2), float32(c.Y+2),
			float32(c.Size-4), float32(c.Size-4),
			color.RGBA{R: 100, G: 200, B: 100, A: 255}, true)
	}
}
