package boidswarm

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// ErrInvalidParams is wrapped by the errors returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid agent parameters")

// State contains the full state of an agent.
type State struct {
	Pos    r3.Vector // position, only X and Y take part in steering
	Vel    r3.Vector // smoothed velocity, Z is always 0
	Facing s1.Angle  // heading in the XY plane, counterclockwise from +X
}

// Forward returns the unit vector the agent is facing.
func (s State) Forward() r2.Point {
	sin, cos := math.Sincos(s.Facing.Radians())
	return r2.Point{X: cos, Y: sin}
}

// Weights contains the weight of each steering rule.
type Weights struct {
	Separation float64
	Alignment  float64
	Cohesion   float64
}

// Params contains the parameters of an agent.
// Agents of the same species usually share a single *Params.
type Params struct {
	Radius       float64    // neighbor search radius, unit: world length
	VisionAngle  float64    // full angle of the vision cone, unit: degree
	ForwardSpeed float64    // unit: world length/time
	TurnSpeed    float64    // unit: 1/time
	Weights      Weights    // steering rule weights, unit: 1
	Vision       VisionMode // vision cone test
}

// DefaultParams returns the default parameters of a boid.
func DefaultParams() *Params {
	return &Params{
		Radius:       2,
		VisionAngle:  270,
		ForwardSpeed: 5,
		TurnSpeed:    8,
		Weights: Weights{
			Separation: 1.7,
			Alignment:  0.1,
			Cohesion:   1,
		},
		Vision: VisionLiteral,
	}
}

// Validate reports whether p describes a usable agent.
func (p *Params) Validate() error {
	finite := func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
	switch {
	case !finite(p.Radius) || p.Radius <= 0:
		return fmt.Errorf("%w: radius %v", ErrInvalidParams, p.Radius)
	case !finite(p.VisionAngle) || p.VisionAngle <= 0 || p.VisionAngle > 360:
		return fmt.Errorf("%w: vision angle %v", ErrInvalidParams, p.VisionAngle)
	case !finite(p.ForwardSpeed) || p.ForwardSpeed <= 0:
		return fmt.Errorf("%w: forward speed %v", ErrInvalidParams, p.ForwardSpeed)
	case !finite(p.TurnSpeed) || p.TurnSpeed <= 0:
		return fmt.Errorf("%w: turn speed %v", ErrInvalidParams, p.TurnSpeed)
	case !finite(p.Weights.Separation) || !finite(p.Weights.Alignment) || !finite(p.Weights.Cohesion):
		return fmt.Errorf("%w: weights %+v", ErrInvalidParams, p.Weights)
	case p.Vision != VisionLiteral && p.Vision != VisionNormalized:
		return fmt.Errorf("%w: vision mode %d", ErrInvalidParams, int(p.Vision))
	}
	return nil
}

// cosHalfVision returns the cosine of half the vision angle.
func (p *Params) cosHalfVision() float64 {
	half := s1.Angle(p.VisionAngle) * s1.Degree / 2
	return math.Cos(half.Radians())
}

// Style contains the display properties of an agent.
type Style struct {
	Color [4]float32 // RGBA body color
}

// DefaultStyle is the style given to spawned agents.
var DefaultStyle = Style{Color: [4]float32{1, 1, 0, 1}}

// An Agent has a state, parameters and a style.
type Agent struct {
	State
	*Params
	Style

	// Neighbors holds the registry indices of the agents seen during the
	// last step. It is meant for debug displays only.
	Neighbors []int
}
