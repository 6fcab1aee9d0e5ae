package boidswarm

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

var screen = Boundary{OrthographicSize: 10, Width: 1600, Height: 900}

func TestBoundaryLimits(t *testing.T) {
	x, y := screen.Limits()
	if y != 11 || !near(x, 11*16.0/9+1) {
		t.Errorf("limits (%v, %v)", x, y)
	}
	b := screen.Bounds()
	if b.Min != (orb.Point{-x, -y}) || b.Max != (orb.Point{x, y}) {
		t.Errorf("bounds %v", b)
	}
	if err := screen.Validate(); err != nil {
		t.Error(err)
	}
	if err := (Boundary{OrthographicSize: 10, Width: 1}).Validate(); err == nil {
		t.Error("zero height accepted")
	}
}

func TestBoundaryWrap(t *testing.T) {
	x, y := screen.Limits()
	for _, c := range []struct{ in, want r3.Vector }{
		{r3.Vector{X: x + 0.01, Y: 2, Z: 3}, r3.Vector{X: -x, Y: 2, Z: 3}},
		{r3.Vector{X: -x - 0.01, Y: -2}, r3.Vector{X: x, Y: -2}},
		{r3.Vector{X: 1, Y: y + 0.5}, r3.Vector{X: 1, Y: -y}},
		{r3.Vector{X: 1, Y: -y - 0.5}, r3.Vector{X: 1, Y: y}},
		{r3.Vector{X: x + 1, Y: y + 1}, r3.Vector{X: -x, Y: -y}},
		{r3.Vector{X: x, Y: -y}, r3.Vector{X: x, Y: -y}},
		{r3.Vector{X: 0.5, Y: 0.5}, r3.Vector{X: 0.5, Y: 0.5}},
	} {
		if got := screen.Wrap(c.in); got != c.want {
			t.Errorf("Wrap(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestBoundaryMove(t *testing.T) {
	x, _ := screen.Limits()
	old := State{Pos: r3.Vector{X: x - 0.01}, Vel: r3.Vector{X: 5}}
	new := State{Pos: r3.Vector{X: x + 0.09}, Vel: r3.Vector{X: 5}, Facing: 1}
	got := screen.Move(old, new)
	if got.Pos.X != -x || got.Vel != new.Vel || got.Facing != new.Facing {
		t.Errorf("Move = %+v", got)
	}
}

func TestSpawn(t *testing.T) {
	p := DefaultParams()
	reg := NewRegistry(0)
	stale := &Agent{Params: p}
	reg.Add(stale)

	extent := SquareExtent(10)
	Spawn(reg, 100, extent, p, rand.New(rand.NewSource(1)))
	if reg.Len() != 100 || reg.Index(stale) != -1 {
		t.Fatalf("registry has %d agents, stale index %d", reg.Len(), reg.Index(stale))
	}
	for i, a := range reg.Agents() {
		if !extent.Contains(orb.Point{a.Pos.X, a.Pos.Y}) || a.Pos.Z != 0 {
			t.Errorf("agent %d spawned at %v", i, a.Pos)
		}
		if a.Vel != (r3.Vector{}) {
			t.Errorf("agent %d spawned moving: %v", i, a.Vel)
		}
		if d := a.Facing.Degrees(); d <= -180 || d > 180 {
			t.Errorf("agent %d facing %v°", i, d)
		}
		if a.Params != p {
			t.Errorf("agent %d does not share the species parameters", i)
		}
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a, b := NewRegistry(10), NewRegistry(10)
	Spawn(a, 10, SquareExtent(10), DefaultParams(), rand.New(rand.NewSource(7)))
	Spawn(b, 10, SquareExtent(10), DefaultParams(), rand.New(rand.NewSource(7)))
	for i := range a.Agents() {
		if a.At(i).State != b.At(i).State {
			t.Errorf("agent %d: %+v != %+v", i, a.At(i).State, b.At(i).State)
		}
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry(2)
	a, b := new(Agent), new(Agent)
	if reg.Add(a) != 0 || reg.Add(b) != 1 || reg.Len() != 2 {
		t.Fatal("bad indices")
	}
	if reg.At(1) != b || reg.Index(a) != 0 || reg.Index(new(Agent)) != -1 {
		t.Error("bad lookup")
	}
	reg.Clear()
	if reg.Len() != 0 || len(reg.Agents()) != 0 {
		t.Error("registry not cleared")
	}
}
