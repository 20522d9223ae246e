// Command flockd runs a flock without a window, ticking it through the
// flock actor at a fixed rate and logging frame statistics once a second.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Always-Flowting/FinalBoidSimulation/internal/simulation"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "flock config (.json or .toml); built-in defaults when empty")
	schemaFile := flag.String("schema", "", "JSON schema for -config; the embedded schema when empty")
	ticks := flag.Int("ticks", 600, "number of ticks to run, 0 runs until interrupted")
	tps := flag.Int("tps", 0, "ticks per second, overrides the config; 0 keeps it")
	debug := flag.Bool("debug", false, "log actor and flock debug output")
	flag.Parse()

	level := golog.InfoLevel
	if *debug {
		level = golog.DebugLevel
	}
	logger := golog.New(level, os.Stdout)

	cfg := config.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(*configFile, *schemaFile); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if *tps > 0 {
		cfg.TPS = *tps
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	f, err := cfg.NewFlock(flock.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to build flock: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	system, err := actor.NewActorSystem("BoidWorld", actor.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("failed to start actor system: %v", err)
	}
	defer system.Stop(context.Background())

	client, err := simulation.Spawn(ctx, system, "flock", simulation.NewFlockActor(f, cfg.InitialState(), nil))
	if err != nil {
		log.Fatal(err)
	}

	if err := run(ctx, client, logger, *ticks, cfg.TPS); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

type ticker interface {
	Tick(ctx context.Context) (simulation.Frame, error)
}

// run ticks sim n times (forever when n is 0) at tps, logging a summary of
// the latest frame every second.
func run(ctx context.Context, sim ticker, logger golog.Logger, n, tps int) error {
	tick := time.NewTicker(time.Second / time.Duration(tps))
	defer tick.Stop()
	report := time.NewTicker(time.Second)
	defer report.Stop()

	var (
		last   simulation.Frame
		moved  int
		frozen int
	)
	for done := 0; n == 0 || done < n; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-report.C:
			logger.Infof("tick %d | boids %d | %d moved, %d frozen in the last second | %d bytes per frame",
				last.Ticks, last.Agents, moved, frozen, len(last.Data)*flock.FloatSize)
			moved, frozen = 0, 0
		case <-tick.C:
			fr, err := sim.Tick(ctx)
			if err != nil {
				return err
			}
			if fr.Changed {
				moved++
			} else {
				frozen++
			}
			last = fr
			done++
		}
	}
	logger.Infof("finished after %d ticks with %d boids", last.Ticks, last.Agents)
	return nil
}
