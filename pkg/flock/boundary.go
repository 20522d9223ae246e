package flock

import (
	"fmt"
	"math"
	"strings"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/paulmach/orb"
)

// Boundary is what happens to a boid that leaves the world after Update.
type Boundary uint8

const (
	// Wrap teleports boids to the opposite edge (toroidal world).
	Wrap Boundary = iota
	// Bounce clamps the position to the edge and reflects that velocity component.
	Bounce
	// Open lets boids leave the world.
	Open
)

func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Bounce:
		return "bounce"
	case Open:
		return "none"
	}
	return fmt.Sprintf("Boundary(%d)", uint8(b))
}

// ParseBoundary maps "wrap", "bounce" and "none".
func ParseBoundary(name string) (Boundary, error) {
	switch strings.ToLower(name) {
	case "", "wrap":
		return Wrap, nil
	case "bounce":
		return Bounce, nil
	case "none", "open":
		return Open, nil
	}
	return 0, fmt.Errorf("unknown boundary %q", name)
}

func (b Boundary) apply(bd *boid.Boid, bounds orb.Bound) {
	switch b {
	case Wrap:
		bd.Position.X = wrap(bd.Position.X, bounds.Min[0], bounds.Max[0])
		bd.Position.Y = wrap(bd.Position.Y, bounds.Min[1], bounds.Max[1])
	case Bounce:
		if bd.Position.X < bounds.Min[0] {
			bd.Position.X = bounds.Min[0]
			bd.Velocity.X *= -1
		}
		if bd.Position.X > bounds.Max[0] {
			bd.Position.X = bounds.Max[0]
			bd.Velocity.X *= -1
		}
		if bd.Position.Y < bounds.Min[1] {
			bd.Position.Y = bounds.Min[1]
			bd.Velocity.Y *= -1
		}
		if bd.Position.Y > bounds.Max[1] {
			bd.Position.Y = bounds.Max[1]
			bd.Velocity.Y *= -1
		}
	}
}

// wrap maps v into [min, max).
func wrap(v, min, max float64) float64 {
	if v >= min && v < max {
		return v
	}
	span := max - min
	m := math.Mod(v-min, span)
	if m < 0 {
		m += span
	}
	return min + m
}
