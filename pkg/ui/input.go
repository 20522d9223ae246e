// Package ui holds the small immediate-mode widgets drawn over the flock:
// weight sliders, toggles and buttons grouped in one panel.
package ui

import "github.com/hajimehoshi/ebiten/v2"

// Pointer is the mouse state widgets react to for one frame.
type Pointer struct {
	X, Y    float64
	Pressed bool    // left button held
	WheelY  float64 // vertical scroll since last frame
}

// CurrentPointer samples ebiten's input state.
func CurrentPointer() Pointer {
	mx, my := ebiten.CursorPosition()
	_, dy := ebiten.Wheel()
	return Pointer{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		WheelY:  dy,
	}
}

func inside(p Pointer, x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y && p.Y <= y+h
}
