package boidswarm

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// TargetVelocity combines the forward vector fwd with the weighted outputs
// of the steering rules. The result has magnitude p.ForwardSpeed, or is zero
// if the terms cancel out.
func TargetVelocity(fwd, sep, ali, coh r2.Point, p *Params) r2.Point {
	v := fwd.
		Add(sep.Mul(p.Weights.Separation)).
		Add(ali.Mul(p.Weights.Alignment)).
		Add(coh.Mul(p.Weights.Cohesion))
	return normalize(v).Mul(p.ForwardSpeed)
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b r2.Point, t float64) r2.Point {
	return a.Add(b.Sub(a).Mul(clamp01(t)))
}

// SmoothVelocity moves vel toward target by a fraction turnSpeed/2*dt
// of the way. The returned velocity lies in the XY plane.
func SmoothVelocity(vel r3.Vector, target r2.Point, turnSpeed, dt float64) r3.Vector {
	v := Lerp(xy(vel), target, turnSpeed/2*dt)
	return r3.Vector{X: v.X, Y: v.Y}
}

// TurnToward rotates facing toward the direction of vel along the shortest
// arc by a fraction t of the remaining angle.
//
// t is turnSpeed*dt and is not halved, unlike the factor of SmoothVelocity.
// It is clamped to [0, 1] like a spherical interpolation, so a large
// turnSpeed*dt snaps the heading onto the velocity instead of overshooting
// past it. An unclamped factor above 1 would make the heading oscillate.
// The direction of a zero velocity is undefined, so facing is kept as is.
func TurnToward(facing s1.Angle, vel r3.Vector, t float64) s1.Angle {
	if vel.X == 0 && vel.Y == 0 {
		return facing
	}
	target := s1.Angle(math.Atan2(vel.Y, vel.X))
	return (facing + s1.Angle(clamp01(t))*diffAngle(target, facing)).Normalized()
}

// diffAngle returns the signed difference a-b in (-π, π].
func diffAngle(a, b s1.Angle) s1.Angle {
	return (a - b).Normalized()
}

// Advance computes the state of an agent after a step of duration dt given
// the states of its neighbors: the velocity is smoothed toward the target
// velocity and the position integrated. The facing is left unchanged;
// see TurnToward.
func Advance(st State, neighbors []State, p *Params, dt float64) State {
	sep := Separation(st.Pos, neighbors, p.Radius)
	ali := Alignment(st.Vel, neighbors)
	coh := Cohesion(st.Pos, neighbors)
	target := TargetVelocity(st.Forward(), sep, ali, coh, p)

	st.Vel = SmoothVelocity(st.Vel, target, p.TurnSpeed, dt)
	st.Pos = st.Pos.Add(st.Vel.Mul(dt))
	return st
}
