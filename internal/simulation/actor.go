// Package simulation drives a flock from a goakt actor so the game loop,
// headless runners and tests all talk to it through messages.
package simulation

import (
	"time"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/proto"
)

// FlockActor owns a Flock and its state gate. Every Flock call happens
// inside Receive, so the flock is only ever touched by one goroutine.
type FlockActor struct {
	flock *flock.Flock
	state flock.State

	// Frames are pushed here after each moving tick when set.
	frameCh chan<- Frame

	// --- Stats ---
	ticksRun    int
	ticksFrozen int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps f. frameCh may be nil.
func NewFlockActor(f *flock.Flock, state flock.State, frameCh chan<- Frame) *FlockActor {
	return &FlockActor{
		flock:       f,
		state:       state,
		frameCh:     frameCh,
		lastLogTime: time.Now(),
	}
}

func (a *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("flock actor starting with %d boids in %d groups", a.flock.Len(), len(a.flock.Groups()))
	return nil
}

func (a *FlockActor) Receive(ctx *actor.ReceiveContext) {
	if _, ok := ctx.Message().(*goaktpb.PostStart); ok {
		ctx.Logger().Infof("%s started (%s)", ctx.Self().Name(), a.state)
		return
	}

	msg := ctx.Message()
	switch NameOf(msg) {
	case TickName:
		changed := false
		if a.state.Simulating() {
			changed = a.flock.Run()
			a.ticksRun++
		} else {
			a.ticksFrozen++
		}
		a.logStats(ctx)
		reply := newFrame(a.flock, a.state, changed)
		if changed {
			a.pushFrame(reply)
		}
		ctx.Response(reply)

	case ToggleFreezeName:
		a.state = a.state.Toggle()
		ctx.Logger().Infof("simulation %s", a.state)
		ctx.Response(newFrame(a.flock, a.state, false))

	case AddGroupName:
		g, err := DecodeAddGroup(msg)
		if err == nil {
			err = g.AddTo(a.flock)
		}
		if err == nil {
			a.flock.ResizeData()
		}
		if err != nil {
			ctx.Logger().Warnf("add group rejected: %v", err)
		}
		ctx.Response(newStatus(err))

	case SetWeightsName:
		err := a.flock.SetWeights(decodeWeights(msg.ProtoReflect()))
		if err != nil {
			ctx.Logger().Warnf("weights rejected: %v", err)
		}
		ctx.Response(newStatus(err))

	case GetFrameName:
		ctx.Response(newFrame(a.flock, a.state, false))

	default:
		ctx.Unhandled()
	}
}

func (a *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("flock actor stopped after %d ticks", a.flock.Ticks())
	return nil
}

func (a *FlockActor) logStats(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("ticks/sec: %d run, %d frozen | boids: %d", a.ticksRun, a.ticksFrozen, a.flock.Len())
		a.ticksRun = 0
		a.ticksFrozen = 0
		a.lastLogTime = time.Now()
	}
}

func (a *FlockActor) pushFrame(msg proto.Message) {
	if a.frameCh == nil {
		return
	}
	fr, err := DecodeFrame(msg)
	if err != nil {
		return
	}
	select {
	case a.frameCh <- fr:
	default:
		// reader busy, drop the frame
	}
}
