package flock

import (
	"fmt"
	"math"
	"strings"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/geometry"
	"github.com/paulmach/orb"
)

// RandomSource provides headings for new boids and uniform draws for placement.
// *boid.RNG satisfies it.
type RandomSource interface {
	boid.AngleSource
	Float64() float64
}

// Placement decides where the i-th of amount new boids starts.
// Implementations must return a point inside bounds.
type Placement interface {
	Place(bounds orb.Bound, i, amount int, rnd RandomSource) geometry.Vector2D
}

// RandomPlacement scatters boids uniformly over the world.
type RandomPlacement struct{}

func (RandomPlacement) Place(bounds orb.Bound, _, _ int, rnd RandomSource) geometry.Vector2D {
	return geometry.Vector2D{
		X: bounds.Min[0] + rnd.Float64()*(bounds.Max[0]-bounds.Min[0]),
		Y: bounds.Min[1] + rnd.Float64()*(bounds.Max[1]-bounds.Min[1]),
	}
}

// GridPlacement lays a group out on a square lattice centred in the world.
type GridPlacement struct{}

func (GridPlacement) Place(bounds orb.Bound, i, amount int, _ RandomSource) geometry.Vector2D {
	cols := int(math.Ceil(math.Sqrt(float64(amount))))
	if cols < 1 {
		cols = 1
	}
	rows := (amount + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	w := bounds.Max[0] - bounds.Min[0]
	h := bounds.Max[1] - bounds.Min[1]
	spacing := math.Min(w/float64(cols+1), h/float64(rows+1))

	center := bounds.Center()
	col, row := i%cols, i/cols
	return geometry.Vector2D{
		X: center[0] + (float64(col)-float64(cols-1)/2)*spacing,
		Y: center[1] + (float64(row)-float64(rows-1)/2)*spacing,
	}
}

// ParsePlacement maps "random" and "grid" to their policies.
func ParsePlacement(name string) (Placement, error) {
	switch strings.ToLower(name) {
	case "", "random":
		return RandomPlacement{}, nil
	case "grid":
		return GridPlacement{}, nil
	}
	return nil, fmt.Errorf("unknown placement %q", name)
}
