package boid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a type name or discriminant is not one of
// the known behavioural types.
var ErrUnknownType = errors.New("unknown boid type")

// Type is the behavioural type of a boid. It selects which steering rules
// apply between a boid and each of its neighbours.
type Type uint8

const (
	// Prey flock with other prey and flee predators.
	Prey Type = iota
	// Predator chase prey and flock loosely with other predators.
	Predator
	// Drifter ignore everyone and are ignored in return: purely inertial.
	Drifter

	numTypes
)

var typeNames = [numTypes]string{
	Prey:     "prey",
	Predator: "predator",
	Drifter:  "drifter",
}

// String implements fmt.Stringer.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	return t < numTypes
}

// Code is the numeric discriminant written into the render buffer.
func (t Type) Code() float32 {
	return float32(t)
}

// ParseType converts a lower case type name ("prey", "predator", "drifter").
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// MarshalText lets Type appear by name in JSON and TOML.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Relation is what a boid does about one particular neighbour.
type Relation uint8

const (
	// Ignore means the neighbour has no influence.
	Ignore Relation = iota
	// Flock means separation, alignment and cohesion all apply.
	Flock
	// Flee means steer away from the nearest such neighbour.
	Flee
	// Chase means steer towards the nearest such neighbour.
	Chase
)

func (r Relation) String() string {
	switch r {
	case Ignore:
		return "ignore"
	case Flock:
		return "flock"
	case Flee:
		return "flee"
	case Chase:
		return "chase"
	}
	return fmt.Sprintf("Relation(%d)", uint8(r))
}

// relations is indexed [self][neighbour].
var relations = [numTypes][numTypes]Relation{
	Prey:     {Prey: Flock, Predator: Flee, Drifter: Ignore},
	Predator: {Prey: Chase, Predator: Flock, Drifter: Ignore},
	Drifter:  {Prey: Ignore, Predator: Ignore, Drifter: Ignore},
}

// RelationTo returns how a boid of type self reacts to a neighbour of type other.
// Unknown types are ignored.
func RelationTo(self, other Type) Relation {
	if !self.Valid() || !other.Valid() {
		return Ignore
	}
	return relations[self][other]
}
