package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/proto"
)

// DefaultTimeout bounds every request made through a Client.
const DefaultTimeout = time.Second

// Client sends requests to a spawned FlockActor and decodes the replies.
type Client struct {
	pid     *actor.PID
	timeout time.Duration
}

// Spawn starts a FlockActor named name on system.
func Spawn(ctx context.Context, system actor.ActorSystem, name string, fa *FlockActor) (*Client, error) {
	pid, err := system.Spawn(ctx, name, fa)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn %s: %w", name, err)
	}
	return &Client{pid: pid, timeout: DefaultTimeout}, nil
}

func (c *Client) ask(ctx context.Context, msg proto.Message) (proto.Message, error) {
	reply, err := actor.Ask(ctx, c.pid, msg, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", NameOf(msg), err)
	}
	return reply, nil
}

func (c *Client) askFrame(ctx context.Context, msg proto.Message) (Frame, error) {
	reply, err := c.ask(ctx, msg)
	if err != nil {
		return Frame{}, err
	}
	return DecodeFrame(reply)
}

// Tick advances the flock unless it is frozen and returns the resulting frame.
func (c *Client) Tick(ctx context.Context) (Frame, error) {
	return c.askFrame(ctx, NewTick())
}

// ToggleFreeze flips the state gate.
func (c *Client) ToggleFreeze(ctx context.Context) (Frame, error) {
	return c.askFrame(ctx, NewToggleFreeze())
}

// Frame returns the current frame without advancing.
func (c *Client) Frame(ctx context.Context) (Frame, error) {
	return c.askFrame(ctx, NewGetFrame())
}

// AddGroup adds g and resizes the render buffer.
func (c *Client) AddGroup(ctx context.Context, g config.Group) error {
	reply, err := c.ask(ctx, NewAddGroup(g))
	if err != nil {
		return err
	}
	return StatusError(reply)
}

func (c *Client) SetWeights(ctx context.Context, w flock.Weights) error {
	reply, err := c.ask(ctx, NewSetWeights(w))
	if err != nil {
		return err
	}
	return StatusError(reply)
}

// Notify fires a Tick without waiting for the reply; frames then only
// arrive through the actor's frame channel.
func (c *Client) Notify(ctx context.Context) error {
	return actor.Tell(ctx, c.pid, NewTick())
}
