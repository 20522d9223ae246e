package boid

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// AngleSource hands out headings in [0, 2π).
type AngleSource interface {
	NextAngle() float64
}

// RNG is a math/rand/v2 PCG generator safe for concurrent use.
// It serves both headings and the uniform draws used by placement.
type RNG struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededAngles creates a deterministic generator, mostly for tests and
// reproducible demos.
func NewSeededAngles(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// NextAngle returns a uniformly distributed angle in [0, 2π).
func (g *RNG) NextAngle() float64 {
	return g.Float64() * 2 * math.Pi
}

// Float64 returns a uniformly distributed value in [0, 1).
func (g *RNG) Float64() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Float64()
}

var (
	sharedOnce sync.Once
	shared     *RNG
)

// SharedAngles returns the process-wide generator. It is seeded once, on
// first use, from the clock, so headings differ between runs.
func SharedAngles() *RNG {
	sharedOnce.Do(func() {
		shared = NewSeededAngles(uint64(time.Now().UnixNano()))
	})
	return shared
}
