package simulation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/boid"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

var testVars = boid.Variables{MaxAcceleration: 0.5, MaxVelocity: 3, SenseDistance: 40, SeparationDistance: 10, Size: 2}

func startFlock(t *testing.T, state flock.State, frameCh chan<- Frame) *Client {
	t.Helper()
	ctx := context.Background()

	system, err := actor.NewActorSystem("FlockTest", actor.WithLogger(golog.DiscardLogger))
	if err != nil {
		t.Fatalf("NewActorSystem: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { _ = system.Stop(ctx) })

	f, err := flock.New(300, 300, flock.WithRandom(boid.NewSeededAngles(2)))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.AddGroup(10, boid.Prey, flock.Colour{G: 1}, testVars); err != nil {
		t.Fatal(err)
	}
	f.ResizeData()

	c, err := Spawn(ctx, system, "flock", NewFlockActor(f, state, frameCh))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	return c
}

func TestFlockActor_TickAndFreeze(t *testing.T) {
	ctx := context.Background()
	c := startFlock(t, flock.Frozen, nil)

	fr, err := c.Tick(ctx)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if fr.Changed || !fr.Frozen || fr.Ticks != 0 {
		t.Errorf("frozen tick moved the flock: %+v", fr)
	}
	if fr.Amount != 10 || len(fr.Data) != 10*flock.Stride {
		t.Errorf("Amount=%d len(Data)=%d", fr.Amount, len(fr.Data))
	}

	if fr, err = c.ToggleFreeze(ctx); err != nil || fr.Frozen {
		t.Fatalf("ToggleFreeze = %+v, %v; want normal", fr, err)
	}

	first := fr.Record(0)
	fr, err = c.Tick(ctx)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !fr.Changed || fr.Frozen || fr.Ticks != 1 {
		t.Errorf("tick after unfreeze = changed %v frozen %v ticks %d", fr.Changed, fr.Frozen, fr.Ticks)
	}
	if got := fr.Record(0); got.X == first.X && got.Y == first.Y {
		t.Errorf("boid 0 did not move: %+v", got)
	}

	got, err := c.Frame(ctx)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got.Changed || got.Ticks != 1 {
		t.Errorf("GetFrame must not advance: %+v", got)
	}
}

func TestFlockActor_AddGroup(t *testing.T) {
	ctx := context.Background()
	c := startFlock(t, flock.Normal, nil)

	err := c.AddGroup(ctx, config.Group{Name: "hawks", Amount: 2, Type: boid.Predator, Colour: [3]float32{1, 0, 0}, Variables: testVars})
	if err != nil {
		t.Fatalf("AddGroup: %v", err)
	}
	fr, err := c.Frame(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fr.Amount != 12 || fr.Agents != 12 {
		t.Errorf("Amount=%d Agents=%d; want 12 after resize", fr.Amount, fr.Agents)
	}
	if r := fr.Record(11); r.Type != boid.Predator.Code() || r.R != 1 {
		t.Errorf("record 11 = %+v; want a red predator", r)
	}

	bad := testVars
	bad.MaxVelocity = -1
	err = c.AddGroup(ctx, config.Group{Amount: 1, Type: boid.Prey, Variables: bad})
	if err == nil || !strings.Contains(err.Error(), flock.ErrInvalidGroup.Error()) {
		t.Errorf("invalid AddGroup error = %v", err)
	}
	if fr, _ := c.Frame(ctx); fr.Amount != 12 {
		t.Errorf("rejected group changed Amount to %d", fr.Amount)
	}
}

func TestFlockActor_SetWeights(t *testing.T) {
	ctx := context.Background()
	c := startFlock(t, flock.Normal, nil)

	if err := c.SetWeights(ctx, flock.Weights{Separation: 1}); err != nil {
		t.Errorf("SetWeights: %v", err)
	}
	if err := c.SetWeights(ctx, flock.Weights{Flee: -2}); err == nil {
		t.Error("negative weight should be rejected")
	}
}

func TestFlockActor_PushesFrames(t *testing.T) {
	ctx := context.Background()
	frames := make(chan Frame, 1)
	c := startFlock(t, flock.Normal, frames)

	if err := c.Notify(ctx); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	select {
	case fr := <-frames:
		if !fr.Changed || fr.Amount != 10 {
			t.Errorf("pushed frame = changed %v amount %d", fr.Changed, fr.Amount)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame pushed after tick")
	}
}
