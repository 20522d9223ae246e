// Package boid holds the per-agent kinematic model of the flock.
//
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. The name "boid" is short
// for "bird-oid object". https://en.wikipedia.org/wiki/Boids
package boid

import (
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/geometry"
)

// Boid represents a single agent of the flock.
// Kinematic state is exported so the flock and renderers can read it directly.
type Boid struct {
	Position     geometry.Vector2D
	Velocity     geometry.Vector2D
	Acceleration geometry.Vector2D // transient, zeroed by every Update

	Variables Variables
	Type      Type
}

// New creates a boid at position facing a random heading taken from src,
// moving at full speed. A nil src uses the process-wide SharedAngles.
func New(position geometry.Vector2D, vars Variables, t Type, src AngleSource) *Boid {
	if src == nil {
		src = SharedAngles()
	}
	return &Boid{
		Position:  position,
		Velocity:  geometry.NewVectorPolar(vars.MaxVelocity, src.NextAngle()),
		Variables: vars,
		Type:      t,
	}
}

// Update integrates one tick (semi-implicit Euler): the clamped acceleration
// is added to the velocity, the clamped velocity to the position, then the
// acceleration is cleared.
func (b *Boid) Update() {
	b.clampAcceleration()
	b.Velocity = b.Velocity.Add(b.Acceleration).Limit(b.Variables.MaxVelocity)
	b.Position = b.Position.Add(b.Velocity)
	b.Acceleration = geometry.Zero
}

func (b *Boid) clampAcceleration() {
	b.Acceleration = b.Acceleration.Limit(b.Variables.MaxAcceleration)
}
