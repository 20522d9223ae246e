package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Widget is anything a Panel can lay out.
type Widget interface {
	Update(p Pointer)
	Draw(screen *ebiten.Image)
	Height() float64
	place(y float64)
}

const (
	titleHeight   = 30
	sectionHeight = 25
	labelHeight   = 15
)

type item struct {
	title  string // section header when widget is nil
	label  func() string
	widget Widget
	y      float64 // top of the item after the last layout
}

// Panel stacks sections and widgets in a scrollable column.
type Panel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	ScrollOffset  float64

	BGColor     color.RGBA
	BorderColor color.RGBA

	items []item
}

func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Title:       title,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

func (p *Panel) AddSection(title string) {
	p.items = append(p.items, item{title: title})
	p.layout()
}

// AddSlider adds a slider whose label shows its current value.
func (p *Panel) AddSlider(label string, min, max, value float64) *Slider {
	s := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.add(func() string { return fmt.Sprintf("%s: %.2f", s.Label, s.Value) }, s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, 0, label, value)
	p.add(func() string { return c.Label }, c)
	return c
}

func (p *Panel) AddButton(label string) *Button {
	b := NewButton(p.X+10, 0, p.Width-20, 18, label)
	p.add(nil, b)
	return b
}

func (p *Panel) add(label func() string, w Widget) {
	p.items = append(p.items, item{label: label, widget: w})
	p.layout()
}

// layout assigns every item its y position for the current scroll offset.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for i := range p.items {
		it := &p.items[i]
		it.y = y
		if it.widget == nil {
			y += sectionHeight
			continue
		}
		top := y
		if it.label != nil {
			top += labelHeight
		}
		it.widget.place(top)
		y = top + it.widget.Height()
	}
}

func (p *Panel) contentHeight() float64 {
	h := float64(titleHeight)
	for _, it := range p.items {
		if it.widget == nil {
			h += sectionHeight
			continue
		}
		if it.label != nil {
			h += labelHeight
		}
		h += it.widget.Height()
	}
	return h
}

// Contains reports whether the pointer is over the panel.
func (p *Panel) Contains(ptr Pointer) bool {
	return inside(ptr, p.X, p.Y, p.Width, p.Height)
}

func (p *Panel) visible(it item) bool {
	return it.y >= p.Y+titleHeight-labelHeight && it.y <= p.Y+p.Height-labelHeight
}

// Update scrolls the panel and forwards the pointer to visible widgets.
func (p *Panel) Update(ptr Pointer) {
	if ptr.WheelY != 0 && p.Contains(ptr) {
		p.ScrollOffset -= ptr.WheelY * 20
		maxScroll := max(p.contentHeight()-p.Height+10, 0)
		p.ScrollOffset = min(max(p.ScrollOffset, 0), maxScroll)
		p.layout()
	}
	for _, it := range p.items {
		if it.widget != nil && p.visible(it) {
			it.widget.Update(ptr)
		}
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for _, it := range p.items {
		if !p.visible(it) {
			continue
		}
		switch {
		case it.widget == nil:
			vector.FillRect(screen,
				float32(p.X+5), float32(it.y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, it.title, int(p.X+10), int(it.y+3))
		case it.label != nil:
			ebitenutil.DebugPrintAt(screen, it.label(), int(p.X+10), int(it.y))
			it.widget.Draw(screen)
		default:
			it.widget.Draw(screen)
			if b, ok := it.widget.(*Button); ok {
				ebitenutil.DebugPrintAt(screen, b.Label, int(b.X+6), int(b.Y+1))
			}
		}
	}
}
