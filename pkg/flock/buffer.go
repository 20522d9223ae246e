package flock

import (
	"image/color"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
)

const (
	// Stride is the number of float32 fields in one render record:
	// posX, posY, size, typeCode, colorR, colorG, colorB.
	Stride = 7
	// FloatSize is the width in bytes of one field.
	FloatSize = 4
)

// Colour is a linear RGB triple in [0, 1] shared by every boid of a group.
type Colour struct {
	R, G, B float32
}

// RGBA converts the colour for image/color based renderers.
func (c Colour) RGBA() color.RGBA {
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: 255}
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func (c Colour) valid() bool {
	for _, v := range [3]float32{c.R, c.G, c.B} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// Record is one decoded render record.
type Record struct {
	X, Y    float32
	Size    float32
	Type    float32
	R, G, B float32
}

// Buffer is the flat render buffer: Stride floats per boid, tightly packed,
// in flock order.
type Buffer struct {
	data []float32
}

// Resize sets the buffer to hold n records. Existing records are kept.
func (b *Buffer) Resize(n int) {
	size := n * Stride
	if size <= cap(b.data) {
		b.data = b.data[:size]
		return
	}
	grown := make([]float32, size)
	copy(grown, b.data)
	b.data = grown
}

// Len is the number of records.
func (b *Buffer) Len() int {
	return len(b.data) / Stride
}

// ByteSize is the size of the packed data in bytes.
func (b *Buffer) ByteSize() int {
	return len(b.data) * FloatSize
}

// Data exposes the packed floats. Callers must not modify it.
func (b *Buffer) Data() []float32 {
	return b.data
}

// Set overwrites record i from the boid's current state and its group colour.
func (b *Buffer) Set(i int, bd *boid.Boid, c Colour) {
	r := b.data[i*Stride : (i+1)*Stride : (i+1)*Stride]
	r[0] = float32(bd.Position.X)
	r[1] = float32(bd.Position.Y)
	r[2] = float32(bd.Variables.Size)
	r[3] = bd.Type.Code()
	r[4] = c.R
	r[5] = c.G
	r[6] = c.B
}

// Record decodes record i.
func (b *Buffer) Record(i int) Record {
	return DecodeRecord(b.data, i)
}

// DecodeRecord reads record i out of any packed slice laid out like Buffer.
func DecodeRecord(data []float32, i int) Record {
	r := data[i*Stride : (i+1)*Stride]
	return Record{X: r[0], Y: r[1], Size: r[2], Type: r[3], R: r[4], G: r[5], B: r[6]}
}
