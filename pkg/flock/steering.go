package flock

import (
	"errors"
	"fmt"
	"math"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/geometry"
	"github.com/paulmach/orb"
)

// Weights scale each steering rule before they are summed into a boid's
// acceleration.
type Weights struct {
	Separation float64 `json:"separation" toml:"separation"`
	Alignment  float64 `json:"alignment" toml:"alignment"`
	Cohesion   float64 `json:"cohesion" toml:"cohesion"`
	Chase      float64 `json:"chase" toml:"chase"` // predator towards nearest prey
	Flee       float64 `json:"flee" toml:"flee"`   // prey away from nearest predator
}

// DefaultWeights keeps separation above cohesion and flee above chase.
func DefaultWeights() Weights {
	return Weights{
		Separation: 1.5,
		Alignment:  1.0,
		Cohesion:   1.0,
		Chase:      2.0,
		Flee:       3.0,
	}
}

// Validate rejects negative or non-finite weights.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"separation": w.Separation,
		"alignment":  w.Alignment,
		"cohesion":   w.Cohesion,
		"chase":      w.Chase,
		"flee":       w.Flee,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: weight %s must be a finite non-negative number, got %v", ErrInvalidWeights, name, v)
		}
	}
	return nil
}

// ErrInvalidWeights is wrapped by Weights.Validate errors.
var ErrInvalidWeights = errors.New("invalid steering weights")

// space measures displacements between boids. A wrapping world uses the
// shortest way across its seams.
type space struct {
	bounds   orb.Bound
	boundary Boundary
}

// between returns the displacement from a to b.
func (sp space) between(a, b geometry.Vector2D) geometry.Vector2D {
	d := b.Sub(a)
	if sp.boundary != Wrap {
		return d
	}
	d.X = shortest(d.X, sp.bounds.Max[0]-sp.bounds.Min[0])
	d.Y = shortest(d.Y, sp.bounds.Max[1]-sp.bounds.Min[1])
	return d
}

func shortest(d, span float64) float64 {
	switch {
	case d > span/2:
		return d - span
	case d < -span/2:
		return d + span
	}
	return d
}

// neighbourhood accumulates what one boid perceives during the pairwise scan.
// Positions are kept relative to the perceiving boid.
type neighbourhood struct {
	separation geometry.Vector2D // sum of away vectors weighted by 1/distance
	velocity   geometry.Vector2D // sum of flockmate velocities
	offset     geometry.Vector2D // sum of displacements to flockmates
	flockmates int

	prey, predator       *boid.Boid
	toPrey, toPredator   geometry.Vector2D
	preyDist, threatDist float64
}

// perceive scans every other boid (O(n) per boid, O(n²) per tick).
// Radii comparisons are strict.
func perceive(self int, boids []*boid.Boid, sp space) neighbourhood {
	me := boids[self]
	senseSq := me.Variables.SenseDistance * me.Variables.SenseDistance
	sepSq := me.Variables.SeparationDistance * me.Variables.SeparationDistance

	n := neighbourhood{preyDist: math.MaxFloat64, threatDist: math.MaxFloat64}
	for j, other := range boids {
		if j == self {
			continue
		}
		to := sp.between(me.Position, other.Position)
		distSq := to.LenSqr()
		if distSq >= senseSq {
			continue
		}

		switch boid.RelationTo(me.Type, other.Type) {
		case boid.Flock:
			n.velocity = n.velocity.Add(other.Velocity)
			n.offset = n.offset.Add(to)
			n.flockmates++
			// Coincident boids have no direction to push along.
			if distSq < sepSq && distSq > 0 {
				n.separation = n.separation.Sub(to.Mul(1 / distSq))
			}
		case boid.Chase:
			if distSq < n.preyDist {
				n.preyDist = distSq
				n.prey, n.toPrey = other, to
			}
		case boid.Flee:
			if distSq < n.threatDist {
				n.threatDist = distSq
				n.predator, n.toPredator = other, to
			}
		}
	}
	return n
}

// steer returns the steering for boid self: the weighted sum of the desired
// velocities of every rule that fired, minus the current velocity once.
// It is zero when no rule contributes, so an undisturbed boid keeps its
// velocity.
func steer(self int, boids []*boid.Boid, w Weights, sp space) geometry.Vector2D {
	me := boids[self]
	n := perceive(self, boids, sp)
	maxV := me.Variables.MaxVelocity

	desired := geometry.Zero
	if !n.separation.IsZero() {
		desired = desired.Add(toward(n.separation, maxV).Mul(w.Separation))
	}
	if n.flockmates > 0 {
		count := float64(n.flockmates)
		desired = desired.Add(toward(n.velocity.Mul(1/count), maxV).Mul(w.Alignment))
		desired = desired.Add(toward(n.offset.Mul(1/count), maxV).Mul(w.Cohesion))
	}
	if n.prey != nil {
		desired = desired.Add(toward(n.toPrey, maxV).Mul(w.Chase))
	}
	if n.predator != nil {
		desired = desired.Add(toward(n.toPredator.Mul(-1), maxV).Mul(w.Flee))
	}
	if desired.IsZero() {
		return geometry.Zero
	}

	total := desired.Sub(me.Velocity)
	// A corrupted result would make the boid vanish from the buffer.
	if !total.IsFinite() {
		return geometry.Zero
	}
	return total
}

// toward is dir at full speed, zero for a zero dir.
func toward(dir geometry.Vector2D, maxV float64) geometry.Vector2D {
	if dir.IsZero() {
		return geometry.Zero
	}
	return dir.WithLen(maxV)
}
