package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the various parameters required for running a simulation.
type Config struct {
	// Output is either a filename (path) for the HDF5 output file,
	// or the empty string for an interactive simulation.
	Output string

	Display  string // possible values: opengl, terminal, none
	Snapshot string // path of the GeoJSON overlay written at the end, if any

	// Interactive display parameters
	ForcePause bool    // start paused and step manually only
	AgentSize  float64 // length of the agent glyphs (opengl only), unit: world length
	FrameRate  int     // refresh rate (terminal only), unit: frame/s

	SwarmSize int     // number of agents
	Steps     int     // number of time steps (hdf5 and none only)
	Dt        float64 // duration of time steps
	Seed      int64   // seed of the spawn PRNG, 0 for a time based seed

	UpdateMode string // possible values: snapshot, sequential
	VisionMode string // possible values: literal, normalized

	// Agent parameters
	Radius           float64 // unit: world length
	VisionAngle      float64 // unit: degree
	ForwardSpeed     float64 // unit: world length/time
	TurnSpeed        float64 // unit: 1/time
	SeparationWeight float64 // unit: 1
	AlignmentWeight  float64 // unit: 1
	CohesionWeight   float64 // unit: 1

	// Spawn parameters
	SpawnType     string  // possible values: random, data
	SpawnDataPath string  // HDF5 file recorded by a previous run (data only)
	SpawnDataStep int     // recorded step to start from (data only)
	SpawnExtent   float64 // half side of the spawn square (random only), unit: world length

	// Boundary conditions parameters
	Wrap             bool    // teleport agents leaving the view to the opposite edge
	OrthographicSize float64 // half height of the view, unit: world length
	ScreenWidth      int     // unit: pixel
	ScreenHeight     int     // unit: pixel
}

// DefaultConf are the default parameters.
var DefaultConf = &Config{
	Output:           "",
	Display:          "opengl",
	Snapshot:         "",
	ForcePause:       false,
	AgentSize:        0.3,
	FrameRate:        30,
	SwarmSize:        50,
	Steps:            1000,
	Dt:               0.02,
	Seed:             0,
	UpdateMode:       "snapshot",
	VisionMode:       "literal",
	Radius:           2,
	VisionAngle:      270,
	ForwardSpeed:     5,
	TurnSpeed:        8,
	SeparationWeight: 1.7,
	AlignmentWeight:  0.1,
	CohesionWeight:   1,
	SpawnType:        "random",
	SpawnExtent:      10,
	Wrap:             true,
	OrthographicSize: 10,
	ScreenWidth:      1600,
	ScreenHeight:     900,
}

// ParseConfig parses the TOML config file whose path is provided.
func ParseConfig(path string) (*Config, error) {
	// config file overwrites default parameters
	conf := *DefaultConf
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return nil, err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("unknown config keys %v", keys)
	}
	return &conf, nil
}
