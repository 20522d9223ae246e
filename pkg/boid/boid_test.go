package boid

import (
	"errors"
	"math"
	"testing"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/geometry"
)

const eps = 1e-9

func testVariables() Variables {
	return Variables{
		MaxAcceleration:    2,
		MaxVelocity:        5,
		SenseDistance:      50,
		SeparationDistance: 10,
		Size:               1,
	}
}

// fixedAngle always returns the same heading.
type fixedAngle float64

func (f fixedAngle) NextAngle() float64 { return float64(f) }

func TestNew_HeadingFromSource(t *testing.T) {
	b := New(geometry.Vector2D{X: 3, Y: 4}, testVariables(), Predator, fixedAngle(math.Pi/2))

	if !b.Velocity.Eq(geometry.Vector2D{X: 0, Y: 5}) {
		t.Errorf("Velocity = %v; want (0, 5)", b.Velocity)
	}
	if !b.Position.Eq(geometry.Vector2D{X: 3, Y: 4}) {
		t.Errorf("Position = %v; want (3, 4)", b.Position)
	}
	if !b.Acceleration.IsZero() {
		t.Errorf("Acceleration = %v; want zero", b.Acceleration)
	}
	if b.Type != Predator {
		t.Errorf("Type = %v; want predator", b.Type)
	}
}

func TestNew_RandomHeadingSpread(t *testing.T) {
	src := NewSeededAngles(42)
	vars := testVariables()

	first := New(geometry.Zero, vars, Prey, src).Velocity
	allSame := true
	for i := 0; i < 200; i++ {
		v := New(geometry.Zero, vars, Prey, src).Velocity
		if math.Abs(v.Len()-vars.MaxVelocity) > 1e-6 {
			t.Fatalf("speed = %v; want %v", v.Len(), vars.MaxVelocity)
		}
		if !v.Eq(first) {
			allSame = false
		}
	}
	if allSame {
		t.Error("expected headings to be spread, all were identical")
	}
}

func TestNew_NilSourceUsesShared(t *testing.T) {
	b := New(geometry.Zero, testVariables(), Prey, nil)
	if math.Abs(b.Velocity.Len()-5) > 1e-6 {
		t.Errorf("speed = %v; want 5", b.Velocity.Len())
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name         string
		velocity     geometry.Vector2D
		acceleration geometry.Vector2D
		wantVelocity geometry.Vector2D
		wantPosition geometry.Vector2D
	}{
		{
			name:         "inertial step moves by velocity",
			velocity:     geometry.Vector2D{X: 1, Y: 0},
			wantVelocity: geometry.Vector2D{X: 1, Y: 0},
			wantPosition: geometry.Vector2D{X: 1, Y: 0},
		},
		{
			name: "zero input stays put",
		},
		{
			name:         "acceleration clamped to max before integration",
			acceleration: geometry.Vector2D{X: 10, Y: 0},
			wantVelocity: geometry.Vector2D{X: 2, Y: 0},
			wantPosition: geometry.Vector2D{X: 2, Y: 0},
		},
		{
			name:         "velocity clamped after acceleration",
			velocity:     geometry.Vector2D{X: 0, Y: 4},
			acceleration: geometry.Vector2D{X: 0, Y: 2},
			wantVelocity: geometry.Vector2D{X: 0, Y: 5},
			wantPosition: geometry.Vector2D{X: 0, Y: 5},
		},
		{
			name:         "velocity clamp keeps direction",
			velocity:     geometry.Vector2D{X: 30, Y: 40},
			wantVelocity: geometry.Vector2D{X: 3, Y: 4},
			wantPosition: geometry.Vector2D{X: 3, Y: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Boid{
				Velocity:     tt.velocity,
				Acceleration: tt.acceleration,
				Variables:    testVariables(),
			}
			b.Update()

			if !b.Velocity.Eq(tt.wantVelocity) {
				t.Errorf("Velocity = %v; want %v", b.Velocity, tt.wantVelocity)
			}
			if !b.Position.Eq(tt.wantPosition) {
				t.Errorf("Position = %v; want %v", b.Position, tt.wantPosition)
			}
			if !b.Acceleration.IsZero() {
				t.Errorf("Acceleration = %v; want exactly zero", b.Acceleration)
			}
			if b.Velocity.Len() > b.Variables.MaxVelocity+eps {
				t.Errorf("|Velocity| = %v exceeds %v", b.Velocity.Len(), b.Variables.MaxVelocity)
			}
		})
	}
}

func TestClampAcceleration(t *testing.T) {
	b := &Boid{
		Acceleration: geometry.Vector2D{X: 10, Y: 0},
		Variables:    testVariables(),
	}
	b.clampAcceleration()

	if math.Abs(b.Acceleration.Len()-2) > eps {
		t.Errorf("|Acceleration| = %v; want 2", b.Acceleration.Len())
	}
	if b.Acceleration.Y != 0 || b.Acceleration.X <= 0 {
		t.Errorf("Acceleration direction changed: %v", b.Acceleration)
	}
}

func TestVariables_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *Variables)
		wantErr bool
	}{
		{"valid", func(v *Variables) {}, false},
		{"separation equal to sense", func(v *Variables) { v.SeparationDistance = v.SenseDistance }, false},
		{"no sensing at all", func(v *Variables) { v.SenseDistance, v.SeparationDistance = 0, 0 }, false},
		{"negative max velocity", func(v *Variables) { v.MaxVelocity = -1 }, true},
		{"zero max velocity", func(v *Variables) { v.MaxVelocity = 0 }, true},
		{"negative acceleration", func(v *Variables) { v.MaxAcceleration = -0.1 }, true},
		{"zero acceleration", func(v *Variables) { v.MaxAcceleration = 0 }, true},
		{"zero sense with separation", func(v *Variables) { v.SenseDistance = 0 }, true},
		{"separation beyond sense", func(v *Variables) { v.SeparationDistance = 60 }, true},
		{"NaN size", func(v *Variables) { v.Size = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := testVariables()
			tt.mutate(&v)
			err := v.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVariables) {
				t.Errorf("error %v does not wrap ErrInvalidVariables", err)
			}
		})
	}
}
