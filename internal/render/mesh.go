package render

import (
	"math"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/hajimehoshi/ebiten/v2"
)

// minRadius keeps size-0 boids visible.
const minRadius = 1.5

// shape outlines in unit coordinates, fanned from vertex 0.
var (
	triangle = [][2]float32{{0, -1}, {0.8, 0.8}, {-0.8, 0.8}}
	diamond  = [][2]float32{{0, -1.3}, {1, 0}, {0, 1.3}, {-1, 0}}
	square   = [][2]float32{{-0.7, -0.7}, {0.7, -0.7}, {0.7, 0.7}, {-0.7, 0.7}}
)

func shapeFor(code float32) [][2]float32 {
	switch code {
	case boid.Predator.Code():
		return diamond
	case boid.Drifter.Code():
		return square
	}
	return triangle
}

// buildMesh turns amount packed render records into triangles, reusing the
// backing arrays of vs and is.
func buildMesh(data []float32, amount int, vs []ebiten.Vertex, is []uint32) ([]ebiten.Vertex, []uint32) {
	vs, is = vs[:0], is[:0]
	for i := 0; i < amount; i++ {
		r := flock.DecodeRecord(data, i)
		radius := float32(math.Max(float64(r.Size), minRadius))
		shape := shapeFor(r.Type)

		base := uint32(len(vs))
		for _, p := range shape {
			vs = append(vs, ebiten.Vertex{
				DstX:   r.X + p[0]*radius,
				DstY:   r.Y + p[1]*radius,
				SrcX:   1,
				SrcY:   1,
				ColorR: r.R,
				ColorG: r.G,
				ColorB: r.B,
				ColorA: 1,
			})
		}
		for k := 1; k+1 < len(shape); k++ {
			is = append(is, base, base+uint32(k), base+uint32(k+1))
		}
	}
	return vs, is
}
