package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button fires once per press, on the press edge.
type Button struct {
	Label string
	X, Y  float64
	W, H  float64

	held    bool
	hover   bool
	clicked bool

	BGColor    color.RGBA
	HoverColor color.RGBA
}

func NewButton(x, y, width, height float64, label string) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		W:          width,
		H:          height,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
	}
}

func (b *Button) Update(p Pointer) {
	b.hover = inside(p, b.X, b.Y, b.W, b.H)
	if b.hover && p.Pressed {
		if !b.held {
			b.clicked = true
			b.held = true
		}
		return
	}
	b.held = false
}

// Clicked reports a press since the last call.
func (b *Button) Clicked() bool {
	c := b.clicked
	b.clicked = false
	return c
}

func (b *Button) Height() float64 { return b.H + 5 }

func (b *Button) place(y float64) { b.Y = y }

func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hover {
		bg = b.HoverColor
	}
	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		bg, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.W), float32(b.H),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}
