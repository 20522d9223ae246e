// Package flock coordinates groups of boids: it runs the steering update every
// tick and keeps a flat render buffer in lockstep with the simulation.
//
// A Flock is not safe for concurrent use. Exactly one goroutine may call its
// methods, and the slice returned by Data is only valid until the next Run,
// AddGroup or ResizeData.
package flock

import (
	"errors"
	"fmt"
	"math"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/geometry"
	"github.com/paulmach/orb"
	golog "github.com/tochemey/goakt/v3/log"
)

// ErrInvalidGroup is wrapped by every AddGroup validation failure.
var ErrInvalidGroup = errors.New("invalid flock group")

// Group describes a batch of boids created by one AddGroup call.
type Group struct {
	Name      string
	Type      boid.Type
	Colour    Colour
	Variables boid.Variables
	First     int // index of the first member in the flock order
	Count     int
}

// Flock owns every boid of every group, in group-add order.
type Flock struct {
	bounds    orb.Bound
	boids     []*boid.Boid
	owner     []int // group index per boid
	groups    []Group
	steering  []geometry.Vector2D
	buf       Buffer
	weights   Weights
	placement Placement
	boundary  Boundary
	rnd       RandomSource
	logger    golog.Logger
	ticks     uint64
}

// Option configures a Flock at construction.
type Option func(*Flock)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l golog.Logger) Option {
	return func(f *Flock) { f.logger = l }
}

// WithRandom replaces the process-wide shared RNG, typically with a seeded one.
func WithRandom(r RandomSource) Option {
	return func(f *Flock) { f.rnd = r }
}

// WithPlacement sets the initial placement policy (RandomPlacement by default).
func WithPlacement(p Placement) Option {
	return func(f *Flock) { f.placement = p }
}

// WithBoundary sets the edge policy (Wrap by default).
func WithBoundary(b Boundary) Option {
	return func(f *Flock) { f.boundary = b }
}

// WithWeights sets the steering weights (DefaultWeights by default).
func WithWeights(w Weights) Option {
	return func(f *Flock) { f.weights = w }
}

// New creates an empty flock living in a width x height world anchored at
// the origin.
func New(width, height float64, opts ...Option) (*Flock, error) {
	if !(width > 0 && height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, fmt.Errorf("world size must be positive and finite, got %vx%v", width, height)
	}

	f := &Flock{
		bounds:    orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{width, height}},
		weights:   DefaultWeights(),
		placement: RandomPlacement{},
		boundary:  Wrap,
		logger:    golog.DiscardLogger,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rnd == nil {
		f.rnd = boid.SharedAngles()
	}
	if f.logger == nil {
		f.logger = golog.DiscardLogger
	}
	if err := f.weights.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// AddGroup appends amount new boids of type t sharing colour and vars.
// The render buffer is not resized: call ResizeData before reading it.
func (f *Flock) AddGroup(amount int, t boid.Type, colour Colour, vars boid.Variables) error {
	return f.AddNamedGroup(fmt.Sprintf("%s-%d", t, len(f.groups)), amount, t, colour, vars)
}

// AddNamedGroup is AddGroup with an explicit group name.
func (f *Flock) AddNamedGroup(name string, amount int, t boid.Type, colour Colour, vars boid.Variables) error {
	if amount < 0 {
		return fmt.Errorf("%w %q: amount must not be negative, got %d", ErrInvalidGroup, name, amount)
	}
	if !t.Valid() {
		return fmt.Errorf("%w %q: %w", ErrInvalidGroup, name, boid.ErrUnknownType)
	}
	if !colour.valid() {
		return fmt.Errorf("%w %q: colour %v outside [0, 1]", ErrInvalidGroup, name, colour)
	}
	if err := vars.Validate(); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidGroup, name, err)
	}

	g := Group{
		Name:      name,
		Type:      t,
		Colour:    colour,
		Variables: vars,
		First:     len(f.boids),
		Count:     amount,
	}
	idx := len(f.groups)
	for i := 0; i < amount; i++ {
		pos := f.placement.Place(f.bounds, i, amount, f.rnd)
		if !f.bounds.Contains(orb.Point{pos.X, pos.Y}) {
			pos = clampToBounds(pos, f.bounds)
		}
		f.boids = append(f.boids, boid.New(pos, vars, t, f.rnd))
		f.owner = append(f.owner, idx)
	}
	f.groups = append(f.groups, g)

	f.logger.Infof("added group %s: %d %s boids (total %d)", name, amount, t, len(f.boids))
	return nil
}

func clampToBounds(p geometry.Vector2D, b orb.Bound) geometry.Vector2D {
	return geometry.Vector2D{
		X: math.Max(b.Min[0], math.Min(b.Max[0], p.X)),
		Y: math.Max(b.Min[1], math.Min(b.Max[1], p.Y)),
	}
}

// ResizeData matches the render buffer to the current boid count and
// refreshes every record.
func (f *Flock) ResizeData() {
	f.buf.Resize(len(f.boids))
	f.syncBuffer()
	f.logger.Debugf("render buffer resized to %d records (%d bytes)", f.buf.Len(), f.buf.ByteSize())
}

// Run advances the simulation by one tick. Steering for every boid is
// computed from the pre-tick state, then every boid is integrated and the
// render buffer rewritten. It reports whether anything moved, which is true
// whenever the flock is not empty.
func (f *Flock) Run() bool {
	if len(f.boids) == 0 {
		return false
	}

	if cap(f.steering) < len(f.boids) {
		f.steering = make([]geometry.Vector2D, len(f.boids))
	}
	f.steering = f.steering[:len(f.boids)]
	sp := space{bounds: f.bounds, boundary: f.boundary}
	for i := range f.boids {
		f.steering[i] = steer(i, f.boids, f.weights, sp)
	}

	for i, b := range f.boids {
		b.Acceleration = f.steering[i]
		b.Update()
		f.boundary.apply(b, f.bounds)
	}

	f.syncBuffer()
	f.ticks++
	return true
}

// syncBuffer rewrites every record the buffer currently holds. Boids added
// since the last ResizeData have no record yet.
func (f *Flock) syncBuffer() {
	n := min(len(f.boids), f.buf.Len())
	for i := 0; i < n; i++ {
		f.buf.Set(i, f.boids[i], f.groups[f.owner[i]].Colour)
	}
}

// Data is a read-only view of the render buffer.
func (f *Flock) Data() []float32 { return f.buf.Data() }

// ByteSize is the render buffer size in bytes, always Amount()*Stride*FloatSize.
func (f *Flock) ByteSize() int { return f.buf.ByteSize() }

// Amount is the number of records in the render buffer, i.e. the draw count.
// It equals Len after ResizeData.
func (f *Flock) Amount() int { return f.buf.Len() }

// Len is the number of boids in the flock.
func (f *Flock) Len() int { return len(f.boids) }

// Ticks is the number of completed Run calls that moved something.
func (f *Flock) Ticks() uint64 { return f.ticks }

// Record decodes render record i.
func (f *Flock) Record(i int) Record { return f.buf.Record(i) }

// Groups returns a copy of the group descriptions in creation order.
func (f *Flock) Groups() []Group {
	out := make([]Group, len(f.groups))
	copy(out, f.groups)
	return out
}

// Boids exposes the boids in flock order. Callers must treat them as read-only.
func (f *Flock) Boids() []*boid.Boid { return f.boids }

// Bounds is the world rectangle.
func (f *Flock) Bounds() orb.Bound { return f.bounds }

// Weights returns the current steering weights.
func (f *Flock) Weights() Weights { return f.weights }

// SetWeights replaces the steering weights from the next Run on.
func (f *Flock) SetWeights(w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	f.weights = w
	return nil
}
