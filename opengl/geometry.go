package opengl

import (
	"math"

	"github.com/PrincetonUniversity/boidswarm"
)

const (
	agentStride  = 7  // floats per agent vertex: x, y, facing, r, g, b, a
	ringSegments = 48 // segments of the search radius circle
	ringVertices = 2 * ringSegments
)

var (
	focalColor    = [4]float32{0.25, 0.75, 1, 1}
	neighborColor = [4]float32{0, 1, 1, 1}
)

// agentVertices appends the vertex data of the agents of reg to dst.
// The focal agent and its neighbors are highlighted when focal >= 0.
func agentVertices(dst []float32, reg *boidswarm.Registry, focal int) []float32 {
	var seen []int
	if focal >= 0 {
		seen = reg.At(focal).Neighbors
	}
	for i, a := range reg.Agents() {
		c := a.Color
		switch {
		case i == focal:
			c = focalColor
		case contains(seen, i):
			c = neighborColor
		}
		dst = append(dst,
			float32(a.Pos.X), float32(a.Pos.Y), float32(a.Facing.Radians()),
			c[0], c[1], c[2], c[3])
	}
	return dst
}

// overlayVertices appends to dst the line segments showing the search
// radius of a, then one segment per neighbor seen during the last step.
// The first ringVertices vertices belong to the circle.
func overlayVertices(dst []float32, a *boidswarm.Agent, reg *boidswarm.Registry) []float32 {
	x, y := float32(a.Pos.X), float32(a.Pos.Y)
	r := a.Radius
	for k := 0; k < ringSegments; k++ {
		sin0, cos0 := math.Sincos(2 * math.Pi * float64(k) / ringSegments)
		sin1, cos1 := math.Sincos(2 * math.Pi * float64(k+1) / ringSegments)
		dst = append(dst,
			x+float32(r*cos0), y+float32(r*sin0),
			x+float32(r*cos1), y+float32(r*sin1))
	}
	for _, j := range a.Neighbors {
		b := reg.At(j)
		dst = append(dst, x, y, float32(b.Pos.X), float32(b.Pos.Y))
	}
	return dst
}

func contains(s []int, i int) bool {
	for _, j := range s {
		if i == j {
			return true
		}
	}
	return false
}
