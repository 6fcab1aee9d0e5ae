// Command boids runs boidswarm: flocking simulations of agents steering by
// separation, alignment and cohesion with their visible neighbors.
//
// Usage
//
// The boids command takes one optional argument:
//  boids [config_file]
// It is the path to a TOML config file.
// If no config file is specified, an interactive simulation
// with default parameters will run in an OpenGL window.
//
// Config file
//
// The config file is written in TOML.
// See https://github.com/toml-lang/toml for the full language spec.
// Any key of the Config struct may be set; unknown keys are an error.
// Setting Output records the simulation to an HDF5 file instead of displaying it.
// Setting Display to "terminal" displays it in the terminal, and "none" runs
// Steps steps without any display (useful together with Snapshot).
//
// Interactive mode
//
// In interactive mode, the simulation can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// Tab and shift tab allow to cycle through focal agents, whose search
// radius and neighbors are then highlighted.
// Pressing Esc or closing the window will quit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/PrincetonUniversity/boidswarm/hdf5"
	"github.com/PrincetonUniversity/boidswarm/opengl"
	"github.com/PrincetonUniversity/boidswarm/overlay"
	"github.com/PrincetonUniversity/boidswarm/term"
)

const usage = `Usage: boids [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("boids: ")

	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		c := *DefaultConf
		conf = &c
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}

	// setup simulation
	sim, clock, err := setup(conf)
	if err != nil {
		Fatal(err)
	}

	if err := run(conf, sim, clock); err != nil {
		Fatal(err)
	}

	if conf.Snapshot != "" {
		if err := overlay.WriteFile(conf.Snapshot, sim.Registry); err != nil {
			Fatal(err)
		}
		log.Printf("overlay of %d agents written to %s", sim.Registry.Len(), conf.Snapshot)
	}
}

// Fatal prints an error on the standard output and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}

// run runs the simulation with the driver selected by conf.
func run(conf *Config, sim *boidswarm.Simulation, clock *boidswarm.Clock) error {
	b := boundary(conf).Bounds()
	switch {
	case conf.Output != "":
		n := sim.Registry.Len()
		return hdf5.Run(sim, &hdf5.Config{
			Output: conf.Output,
			Steps:  conf.Steps,
			Step:   clock.Advance,
			Datasets: []*hdf5.Dataset{
				hdf5.AgentsDataset(n),
				hdf5.NeighborsDataset(n),
			},
			Meta: conf,
		})
	case conf.Display == "opengl":
		return opengl.Run(sim, &opengl.Config{
			MaxSwarmSize: sim.Registry.Len(),
			Clock:        clock,
			ForcePause:   conf.ForcePause,
			AgentSize:    conf.AgentSize,
			Xmin:         b.Left(),
			Ymin:         b.Bottom(),
			Xmax:         b.Right(),
			Ymax:         b.Top(),
		})
	case conf.Display == "terminal":
		return term.Run(sim, &term.Config{
			Clock:      clock,
			ForcePause: conf.ForcePause,
			Bounds:     b,
			FrameRate:  conf.FrameRate,
		})
	case conf.Display == "none":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := clock.Run(ctx, conf.Steps)
		if errors.Is(err, context.Canceled) {
			log.Printf("interrupted after %d steps", clock.Tick)
			return nil
		}
		return err
	}
	return fmt.Errorf("bad display %q", conf.Display)
}

// boundary returns the boundary described by conf.
func boundary(conf *Config) boidswarm.Boundary {
	return boidswarm.Boundary{
		OrthographicSize: conf.OrthographicSize,
		Width:            float64(conf.ScreenWidth),
		Height:           float64(conf.ScreenHeight),
	}
}

// setup initializes the state and parameters of all agents.
func setup(conf *Config) (*boidswarm.Simulation, *boidswarm.Clock, error) {
	if conf.Dt <= 0 {
		return nil, nil, fmt.Errorf("bad time step %v", conf.Dt)
	}
	switch conf.Display {
	case "opengl", "terminal", "none":
	default:
		return nil, nil, fmt.Errorf("bad display %q", conf.Display)
	}
	if conf.Output != "" && conf.Steps <= 0 {
		return nil, nil, fmt.Errorf("bad number of steps %d to record", conf.Steps)
	}
	if conf.AgentSize <= 0 || conf.FrameRate <= 0 {
		return nil, nil, fmt.Errorf("bad agent size %v or frame rate %d", conf.AgentSize, conf.FrameRate)
	}

	p := &boidswarm.Params{
		Radius:       conf.Radius,
		VisionAngle:  conf.VisionAngle,
		ForwardSpeed: conf.ForwardSpeed,
		TurnSpeed:    conf.TurnSpeed,
		Weights: boidswarm.Weights{
			Separation: conf.SeparationWeight,
			Alignment:  conf.AlignmentWeight,
			Cohesion:   conf.CohesionWeight,
		},
	}
	var err error
	if p.Vision, err = boidswarm.ParseVisionMode(conf.VisionMode); err != nil {
		return nil, nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	reg := boidswarm.NewRegistry(conf.SwarmSize)
	switch conf.SpawnType {
	case "random":
		seed := conf.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		boidswarm.Spawn(reg, conf.SwarmSize, boidswarm.SquareExtent(conf.SpawnExtent), p, rng)
	case "data":
		if conf.SpawnDataStep < 0 {
			return nil, nil, fmt.Errorf("bad spawn data step %d", conf.SpawnDataStep)
		}
		if err := load(reg, p, conf); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("bad spawn type %q", conf.SpawnType)
	}

	s := boidswarm.NewSimulation(reg)
	if s.Mode, err = boidswarm.ParseUpdateMode(conf.UpdateMode); err != nil {
		return nil, nil, err
	}

	b := boundary(conf)
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}
	if conf.Wrap {
		s.Env.Move = b.Move
	}

	return s, boidswarm.NewClock(s, conf.Dt), nil
}

// load fills reg with the agents of a recorded step.
func load(reg *boidswarm.Registry, p *boidswarm.Params, conf *Config) (err error) {
	l, err := hdf5.NewLoader(conf.SpawnDataPath, "agents")
	if err != nil {
		return err
	}
	defer func() {
		if cerr := l.Close(); err == nil {
			err = cerr
		}
	}()
	if conf.SpawnDataStep >= l.Len() {
		return fmt.Errorf("spawn data step %d but %s holds %d steps", conf.SpawnDataStep, conf.SpawnDataPath, l.Len())
	}
	if err := l.Seek(conf.SpawnDataStep); err != nil {
		return err
	}
	if err := l.Load(reg, p); err != nil {
		return err
	}
	if reg.Len() != conf.SwarmSize {
		log.Printf("loaded %d agents from %s (SwarmSize is %d)", reg.Len(), conf.SpawnDataPath, conf.SwarmSize)
	}
	return nil
}
