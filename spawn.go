package boidswarm

import (
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
)

// SquareExtent returns the square of half side a centered on the origin.
func SquareExtent(a float64) orb.Bound {
	return orb.Bound{Min: orb.Point{-a, -a}, Max: orb.Point{a, a}}
}

// Spawn clears reg and fills it with n agents sharing the parameters p.
// Agents are placed uniformly at random in extent, at rest, each facing a
// uniformly random direction.
func Spawn(reg *Registry, n int, extent orb.Bound, p *Params, rng *rand.Rand) {
	reg.Clear()
	w, h := extent.Right()-extent.Left(), extent.Top()-extent.Bottom()
	for i := 0; i < n; i++ {
		a := &Agent{Params: p, Style: DefaultStyle}
		a.Pos = r3.Vector{
			X: extent.Left() + w*rng.Float64(),
			Y: extent.Bottom() + h*rng.Float64(),
		}
		a.Facing = (s1.Angle(360*rng.Float64()) * s1.Degree).Normalized()
		reg.Add(a)
	}
}
