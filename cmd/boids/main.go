package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"

	"github.com/Always-Flowting/FinalBoidSimulation/internal/render"
	"github.com/Always-Flowting/FinalBoidSimulation/internal/simulation"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/config"
	"github.com/Always-Flowting/FinalBoidSimulation/pkg/flock"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
)

func main() {
	configFile := flag.String("config", "", "flock config (.json or .toml); built-in defaults when empty")
	schemaFile := flag.String("schema", "", "JSON schema for -config; the embedded schema when empty")
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

	f, err := cfg.NewFlock(flock.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to build flock: %v", err)
	}

	ctx := context.Background()
	system, err := actor.NewActorSystem("BoidWorld", actor.WithLogger(logger))
	if err != nil {
		log.Fatalf("failed to create actor system: %v", err)
	}
	if err := system.Start(ctx); err != nil {
		log.Fatalf("failed to start actor system: %v", err)
	}
	defer system.Stop(ctx)

	client, err := simulation.Spawn(ctx, system, "flock", simulation.NewFlockActor(f, cfg.InitialState(), nil))
	if err != nil {
		log.Fatal(err)
	}

	game, err := render.NewGame(ctx, cfg, client, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids")
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
