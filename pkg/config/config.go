// Package config loads the world and flock description used by the
// commands, from JSON (validated against a JSON Schema) or TOML.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

//go:embed schema.json
var schemaJSON string

// schemaURL only names the embedded resource; it is never fetched.
const schemaURL = "https://github.com/Always-Flowting/FinalBoidSimulation/pkg/config/schema.json"

// Group is one AddGroup call.
type Group struct {
	Name      string         `json:"name" toml:"name"`
	Amount    int            `json:"amount" toml:"amount"`
	Type      boid.Type      `json:"type" toml:"type"`
	Colour    [3]float32     `json:"colour" toml:"colour"`
	Variables boid.Variables `json:"variables" toml:"variables"`
}

type Config struct {
	// World Dimensions
	WorldWidth  float64 `json:"worldWidth" toml:"worldWidth"`
	WorldHeight float64 `json:"worldHeight" toml:"worldHeight"`

	Placement string `json:"placement" toml:"placement"` // random | grid
	Boundary  string `json:"boundary" toml:"boundary"`   // wrap | bounce | none

	// Seed 0 uses the shared, clock seeded source.
	Seed        uint64 `json:"seed" toml:"seed"`
	StartFrozen bool   `json:"startFrozen" toml:"startFrozen"`
	TPS         int    `json:"tps" toml:"tps"`

	Weights flock.Weights `json:"weights" toml:"weights"`
	Groups  []Group       `json:"groups" toml:"groups"`
}

func DefaultConfig() *Config {
	return &Config{
		WorldWidth:  1000,
		WorldHeight: 800,
		Placement:   "random",
		Boundary:    "wrap",
		TPS:         60,
		Weights:     flock.DefaultWeights(),
		Groups: []Group{
			{
				Name:   "prey",
				Amount: 200,
				Type:   boid.Prey,
				Colour: [3]float32{0.2, 0.6, 1},
				Variables: boid.Variables{
					MaxAcceleration:    0.3,
					MaxVelocity:        3,
					SenseDistance:      60,
					SeparationDistance: 20,
					Size:               4,
				},
			},
			{
				Name:   "predators",
				Amount: 5,
				Type:   boid.Predator,
				Colour: [3]float32{1, 0.2, 0.2},
				Variables: boid.Variables{
					MaxAcceleration:    0.35,
					MaxVelocity:        3.5,
					SenseDistance:      120,
					SeparationDistance: 30,
					Size:               7,
				},
			},
		},
	}
}

// LoadConfig reads configFile over DefaultConfig. JSON files are validated
// against schemaFile first, or against the embedded schema when schemaFile
// is empty. Files ending in .toml are decoded without a schema.
func LoadConfig(configFile string, schemaFile string) (*Config, error) {
	cfg := DefaultConfig()
	// Groups listed in the file replace the defaults instead of merging
	// into them; a file without groups keeps the defaults.
	defaults := cfg.Groups
	cfg.Groups = nil

	switch strings.ToLower(filepath.Ext(configFile)) {
	case ".toml":
		if _, err := toml.DecodeFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config toml: %w", err)
		}
	default:
		b, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
		if err := validateJSON(b, schemaFile); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if cfg.Groups == nil {
		cfg.Groups = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func compileSchema(schemaFile string) (*jsonschema.Schema, error) {
	if schemaFile != "" {
		return jsonschema.Compile(schemaFile)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
}

func validateJSON(b []byte, schemaFile string) error {
	sch, err := compileSchema(schemaFile)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	var v interface{}
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return fmt.Errorf("failed to decode config json: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Validate checks everything the schema cannot express, with the same
// rules AddGroup applies.
func (c *Config) Validate() error {
	if !(c.WorldWidth > 0 && c.WorldHeight > 0) || math.IsInf(c.WorldWidth, 0) || math.IsInf(c.WorldHeight, 0) {
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalidConfig, c.WorldWidth, c.WorldHeight)
	}
	if _, err := flock.ParsePlacement(c.Placement); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := flock.ParseBoundary(c.Boundary); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.TPS < 0 {
		return fmt.Errorf("%w: tps must not be negative, got %d", ErrInvalidConfig, c.TPS)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i, g := range c.Groups {
		if g.Amount < 0 {
			return fmt.Errorf("%w: group %d (%s): amount must not be negative", ErrInvalidConfig, i, g.Name)
		}
		if !g.Type.Valid() {
			return fmt.Errorf("%w: group %d (%s): %w", ErrInvalidConfig, i, g.Name, boid.ErrUnknownType)
		}
		for _, ch := range g.Colour {
			if !(ch >= 0 && ch <= 1) {
				return fmt.Errorf("%w: group %d (%s): colour %v outside [0, 1]", ErrInvalidConfig, i, g.Name, g.Colour)
			}
		}
		if err := g.Variables.Validate(); err != nil {
			return fmt.Errorf("%w: group %d (%s): %w", ErrInvalidConfig, i, g.Name, err)
		}
	}
	return nil
}

// NewFlock builds the configured world, adds every group in order and
// sizes the render buffer. Extra options are applied after the ones
// derived from the config.
func (c *Config) NewFlock(opts ...flock.Option) (*flock.Flock, error) {
	placement, err := flock.ParsePlacement(c.Placement)
	if err != nil {
		return nil, err
	}
	boundary, err := flock.ParseBoundary(c.Boundary)
	if err != nil {
		return nil, err
	}

	base := []flock.Option{
		flock.WithPlacement(placement),
		flock.WithBoundary(boundary),
		flock.WithWeights(c.Weights),
	}
	if c.Seed != 0 {
		base = append(base, flock.WithRandom(boid.NewSeededAngles(c.Seed)))
	}

	f, err := flock.New(c.WorldWidth, c.WorldHeight, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	for _, g := range c.Groups {
		if err := g.AddTo(f); err != nil {
			return nil, err
		}
	}
	f.ResizeData()
	return f, nil
}

// FlockColour is the group colour as stored in the render buffer.
func (g Group) FlockColour() flock.Colour {
	return flock.Colour{R: g.Colour[0], G: g.Colour[1], B: g.Colour[2]}
}

// AddTo adds the group to f. The render buffer is not resized.
func (g Group) AddTo(f *flock.Flock) error {
	colour := g.FlockColour()
	if g.Name == "" {
		return f.AddGroup(g.Amount, g.Type, colour, g.Variables)
	}
	return f.AddNamedGroup(g.Name, g.Amount, g.Type, colour, g.Variables)
}

// InitialState is the state gate the driver starts in.
func (c *Config) InitialState() flock.State {
	if c.StartFrozen {
		return flock.Frozen
	}
	return flock.Normal
}
