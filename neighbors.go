package boidswarm

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// A VisionMode selects how the vision cone test measures the direction
// from an agent to a candidate neighbor.
type VisionMode int

const (
	// VisionLiteral compares the dot product of the unit forward vector and the
	// raw direction to the candidate with the cosine of the half vision angle.
	// The test is only exact at distance 1: it lets more candidates in below
	// that distance and fewer beyond it.
	VisionLiteral VisionMode = iota

	// VisionNormalized normalizes the direction before the dot product,
	// which makes the cone independent of distance.
	VisionNormalized
)

// ParseVisionMode returns the VisionMode named s.
func ParseVisionMode(s string) (VisionMode, error) {
	switch s {
	case "literal", "":
		return VisionLiteral, nil
	case "normalized":
		return VisionNormalized, nil
	}
	return 0, fmt.Errorf("bad vision mode %q", s)
}

func (m VisionMode) String() string {
	switch m {
	case VisionLiteral:
		return "literal"
	case VisionNormalized:
		return "normalized"
	}
	return fmt.Sprintf("VisionMode(%d)", int(m))
}

// InVisionCone reports whether the point to lies in the vision cone of an
// observer at from facing the unit vector fwd.
func InVisionCone(fwd, from, to r2.Point, cosHalf float64, mode VisionMode) bool {
	d := to.Sub(from)
	if mode == VisionNormalized {
		d = d.Normalize()
	}
	return fwd.Dot(d) >= cosHalf
}

// visible reports whether an observer in state me with parameters p sees an
// agent in state other. Distance is measured in 3D, the cone in the XY plane.
func visible(me State, p *Params, cosHalf float64, other State) bool {
	if other.Pos.Sub(me.Pos).Norm() > p.Radius {
		return false
	}
	return InVisionCone(me.Forward(), xy(me.Pos), xy(other.Pos), cosHalf, p.Vision)
}

// A NeighborQuery selects the agents an observer can see.
//
// Query appends to dst the indices in states of the agents visible from
// states[self] with parameters p, in increasing index order, and returns
// the extended slice. The observer itself is never included.
type NeighborQuery interface {
	Query(dst []int, self int, states []State, p *Params) []int
}

// BruteForce is a NeighborQuery that tests every agent of the population.
type BruteForce struct{}

// Query implements NeighborQuery.
func (BruteForce) Query(dst []int, self int, states []State, p *Params) []int {
	me := states[self]
	cos := p.cosHalfVision()
	for j, other := range states {
		if j != self && visible(me, p, cos, other) {
			dst = append(dst, j)
		}
	}
	return dst
}

// Neighbors returns the agents of reg visible to a, in registry order,
// using the current state of every agent.
func Neighbors(a *Agent, reg *Registry) []*Agent {
	var out []*Agent
	cos := a.cosHalfVision()
	for _, b := range reg.Agents() {
		if b != a && visible(a.State, a.Params, cos, b.State) {
			out = append(out, b)
		}
	}
	return out
}
