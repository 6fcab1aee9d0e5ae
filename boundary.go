package boidswarm

import (
	"fmt"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// A Boundary wraps agents around the edges of the area seen by an
// orthographic camera, with a margin of one world unit on every side.
type Boundary struct {
	OrthographicSize float64 // half height of the camera view, unit: world length
	Width            float64 // screen width, unit: pixel
	Height           float64 // screen height, unit: pixel
}

// Validate reports whether the limits of b are well defined.
func (b Boundary) Validate() error {
	if b.OrthographicSize <= 0 || b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("bad boundary %+v", b)
	}
	return nil
}

// Limits returns the largest absolute X and Y coordinates inside b.
func (b Boundary) Limits() (x, y float64) {
	y = b.OrthographicSize + 1
	x = y*b.Width/b.Height + 1
	return x, y
}

// Bounds returns the rectangle delimited by the limits.
func (b Boundary) Bounds() orb.Bound {
	x, y := b.Limits()
	return orb.Bound{Min: orb.Point{-x, -y}, Max: orb.Point{x, y}}
}

// Wrap teleports a position beyond a limit to the opposite limit.
// Z is untouched.
func (b Boundary) Wrap(p r3.Vector) r3.Vector {
	bd := b.Bounds()
	switch {
	case p.X > bd.Right():
		p.X = bd.Left()
	case p.X < bd.Left():
		p.X = bd.Right()
	}
	switch {
	case p.Y > bd.Top():
		p.Y = bd.Bottom()
	case p.Y < bd.Bottom():
		p.Y = bd.Top()
	}
	return p
}

// Move is a move function, see Environment, with periodic boundary conditions.
// Only the position is affected.
func (b Boundary) Move(old, new State) State {
	new.Pos = b.Wrap(new.Pos)
	return new
}
