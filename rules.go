package boidswarm

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Each rule returns a unit vector, or the zero vector when it has nothing
// to steer toward.

// Separation steers away from the neighbors. The displacement to each
// neighbor is weighted by clamp01(distance/radius), so a neighbor pushes
// less the closer it is.
func Separation(pos r3.Vector, neighbors []State, radius float64) r2.Point {
	var dir r2.Point
	for _, n := range neighbors {
		dir = dir.Add(separationPush(pos, n.Pos, radius))
	}
	return normalize(dir)
}

// separationPush is the contribution of a neighbor at q to the separation
// of an agent at pos.
func separationPush(pos, q r3.Vector, radius float64) r2.Point {
	d := q.Sub(pos)
	ratio := clamp01(d.Norm() / radius)
	return xy(d).Mul(-ratio)
}

// Alignment steers toward the average velocity of the neighbors.
// An isolated agent keeps the direction of its own velocity vel.
func Alignment(vel r3.Vector, neighbors []State) r2.Point {
	if len(neighbors) == 0 {
		return normalize(xy(vel))
	}
	var dir r2.Point
	for _, n := range neighbors {
		dir = dir.Add(xy(n.Vel))
	}
	return normalize(dir.Mul(1 / float64(len(neighbors))))
}

// Cohesion steers toward the center of mass of the neighbors.
// An isolated agent does not steer.
func Cohesion(pos r3.Vector, neighbors []State) r2.Point {
	if len(neighbors) == 0 {
		return r2.Point{}
	}
	var center r2.Point
	for _, n := range neighbors {
		center = center.Add(xy(n.Pos))
	}
	center = center.Mul(1 / float64(len(neighbors)))
	return normalize(center.Sub(xy(pos)))
}

// xy projects v onto the XY plane.
func xy(v r3.Vector) r2.Point {
	return r2.Point{X: v.X, Y: v.Y}
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// normalize returns p scaled to unit length. The zero vector, and vectors
// too short for their length to be inverted, map to the zero vector.
func normalize(p r2.Point) r2.Point {
	n := p.Norm()
	if n == 0 {
		return r2.Point{}
	}
	inv := 1 / n
	if math.IsInf(inv, 0) {
		return r2.Point{}
	}
	return p.Mul(inv)
}
