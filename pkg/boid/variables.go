package boid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidVariables is wrapped by every error returned from Variables.Validate.
var ErrInvalidVariables = errors.New("invalid boid variables")

// Variables is the trait template shared by every boid of a group.
type Variables struct {
	MaxAcceleration    float64 `json:"maxAcceleration" toml:"maxAcceleration"`
	MaxVelocity        float64 `json:"maxVelocity" toml:"maxVelocity"`
	SenseDistance      float64 `json:"senseDistance" toml:"senseDistance"`
	SeparationDistance float64 `json:"separationDistance" toml:"separationDistance"`
	Size               float64 `json:"size" toml:"size"` // render scale only
}

// Validate rejects trait sets that would yield NaNs or meaningless neighbour
// queries once the simulation runs.
func (v Variables) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"maxAcceleration", v.MaxAcceleration},
		{"maxVelocity", v.MaxVelocity},
		{"senseDistance", v.SenseDistance},
		{"separationDistance", v.SeparationDistance},
		{"size", v.Size},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidVariables, f.name, f.value)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidVariables, f.name, f.value)
		}
	}

	if v.MaxAcceleration == 0 {
		return fmt.Errorf("%w: maxAcceleration must be positive", ErrInvalidVariables)
	}
	if v.MaxVelocity == 0 {
		return fmt.Errorf("%w: maxVelocity must be positive", ErrInvalidVariables)
	}
	if v.SenseDistance == 0 && v.SeparationDistance != 0 {
		return fmt.Errorf("%w: separationDistance %v needs a non-zero senseDistance",
			ErrInvalidVariables, v.SeparationDistance)
	}
	if v.SeparationDistance > v.SenseDistance {
		return fmt.Errorf("%w: separationDistance %v exceeds senseDistance %v",
			ErrInvalidVariables, v.SeparationDistance, v.SenseDistance)
	}
	return nil
}
