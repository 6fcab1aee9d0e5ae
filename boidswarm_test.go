package boidswarm

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

const tol = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= tol
}

func nearVec(v r3.Vector, x, y float64) bool {
	return near(v.X, x) && near(v.Y, y) && v.Z == 0
}

// triangle returns a registry of three agents at (0,0), (1,0) and (0,1),
// at rest and facing +Y.
func triangle(p *Params) *Registry {
	reg := NewRegistry(3)
	for _, pos := range []r3.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		a := &Agent{Params: p}
		a.Pos = pos
		a.Facing = s1.Angle(math.Pi / 2)
		reg.Add(a)
	}
	return reg
}

// scaled returns v normalized then multiplied by k.
func scaled(x, y, k float64) (float64, float64) {
	n := math.Hypot(x, y)
	return k * x / n, k * y / n
}

func TestStepGolden(t *testing.T) {
	const dt = 0.02
	p := DefaultParams()
	reg := triangle(p)
	sim := NewSimulation(reg)
	sim.Step(dt)

	smooth := p.TurnSpeed / 2 * dt // 0.08
	s := math.Sqrt2 / 2

	// Agent 0 sees both others: separation (-s,-s), cohesion (s,s), no alignment.
	tx, ty := scaled(0-1.7*s+s, 1-1.7*s+s, 5)
	vx, vy := smooth*tx, smooth*ty
	if a := reg.At(0); !nearVec(a.Vel, vx, vy) || !nearVec(a.Pos, vx*dt, vy*dt) {
		t.Errorf("agent 0: got pos %v vel %v, want vel (%g, %g)", a.Pos, a.Vel, vx, vy)
	}

	// Agent 1 sees both others.
	sx, sy := scaled(0.5+s, -s, 1)
	cx, cy := scaled(-1, 0.5, 1)
	tx, ty = scaled(1.7*sx+cx, 1+1.7*sy+cy, 5)
	vx, vy = smooth*tx, smooth*ty
	if a := reg.At(1); !nearVec(a.Vel, vx, vy) || !nearVec(a.Pos, 1+vx*dt, vy*dt) {
		t.Errorf("agent 1: got pos %v vel %v, want vel (%g, %g)", a.Pos, a.Vel, vx, vy)
	}

	// Agent 2 has both others behind it, outside its vision cone.
	if a := reg.At(2); !nearVec(a.Vel, 0, 0.4) || !nearVec(a.Pos, 0, 1.008) {
		t.Errorf("agent 2: got pos %v vel %v, want pos (0, 1.008) vel (0, 0.4)", a.Pos, a.Vel)
	}
	if f := reg.At(2).Facing; !near(f.Radians(), math.Pi/2) {
		t.Errorf("agent 2: facing %v, want unchanged", f)
	}

	want := [][]int{{1, 2}, {0, 2}, {}}
	for i, w := range want {
		got := reg.At(i).Neighbors
		if len(got) != len(w) {
			t.Errorf("agent %d: neighbors %v, want %v", i, got, w)
			continue
		}
		for k := range w {
			if got[k] != w[k] {
				t.Errorf("agent %d: neighbors %v, want %v", i, got, w)
			}
		}
	}
}

func TestStepHeadingFollowsVelocity(t *testing.T) {
	const dt = 0.02
	p := DefaultParams()
	reg := triangle(p)
	NewSimulation(reg).Step(dt)

	a := reg.At(0)
	target := math.Atan2(a.Vel.Y, a.Vel.X)
	want := math.Pi/2 + p.TurnSpeed*dt*(target-math.Pi/2)
	if !near(a.Facing.Radians(), want) {
		t.Errorf("facing %v rad, want %v rad", a.Facing.Radians(), want)
	}
}

func TestStepUpdateModes(t *testing.T) {
	const dt = 0.02
	snap := triangle(DefaultParams())
	NewSimulation(snap).Step(dt)

	seq := triangle(DefaultParams())
	sim := NewSimulation(seq)
	sim.Mode = Sequential
	sim.Step(dt)

	// the first agent reads the same state in both modes
	if snap.At(0).State != seq.At(0).State {
		t.Errorf("agent 0: snapshot %+v, sequential %+v", snap.At(0).State, seq.At(0).State)
	}
	// the second one sees the moving first agent in sequential mode
	d := snap.At(1).Vel.Sub(seq.At(1).Vel).Norm()
	if d < 1e-6 {
		t.Errorf("agent 1: velocity identical in both modes (%v)", snap.At(1).Vel)
	}
}

func TestStepMove(t *testing.T) {
	reg := NewRegistry(1)
	a := &Agent{Params: DefaultParams()}
	a.Pos = r3.Vector{X: 11.99}
	reg.Add(a)

	sim := NewSimulation(reg)
	var calls int
	sim.Env.Move = func(old, new State) State {
		calls++
		if old.Pos != (r3.Vector{X: 11.99}) {
			t.Errorf("old position %v", old.Pos)
		}
		new.Pos.X = -1
		return new
	}
	sim.Step(0.1)
	if calls != 1 || a.Pos.X != -1 {
		t.Errorf("move called %d times, position %v", calls, a.Pos)
	}
}

func TestStepEmptyRegistry(t *testing.T) {
	sim := NewSimulation(NewRegistry(0))
	sim.Step(0.02)
	if sim.Registry.Len() != 0 {
		t.Fatal("registry not empty")
	}
}

func TestStepNearlyCoincidentAgents(t *testing.T) {
	p := DefaultParams()
	reg := NewRegistry(2)
	for _, x := range []float64{0, 1e-158} {
		a := &Agent{Params: p}
		a.Pos = r3.Vector{X: x}
		reg.Add(a)
	}
	sim := NewSimulation(reg)
	for k := 0; k < 3; k++ {
		sim.Step(0.02)
	}
	finite := func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
	for i, a := range reg.Agents() {
		if !finite(a.Pos.X) || !finite(a.Pos.Y) || !finite(a.Vel.X) || !finite(a.Vel.Y) || !finite(a.Facing.Radians()) {
			t.Errorf("agent %d: non-finite state %+v", i, a.State)
		}
	}
}

func TestStepKeepsSpeedBounded(t *testing.T) {
	p := DefaultParams()
	reg := NewRegistry(16)
	for i := 0; i < 16; i++ {
		a := &Agent{Params: p}
		a.Pos = r3.Vector{X: float64(i % 4), Y: float64(i / 4)}
		a.Facing = s1.Angle(float64(i))
		reg.Add(a)
	}
	sim := NewSimulation(reg)
	for k := 0; k < 200; k++ {
		sim.Step(0.02)
	}
	for i, a := range reg.Agents() {
		if v := a.Vel.Norm(); math.IsNaN(v) || v > p.ForwardSpeed+tol {
			t.Errorf("agent %d: speed %v", i, v)
		}
		if a.Vel.Z != 0 {
			t.Errorf("agent %d: velocity left the plane: %v", i, a.Vel)
		}
	}
}

func TestParseModes(t *testing.T) {
	if m, err := ParseUpdateMode("sequential"); err != nil || m != Sequential {
		t.Errorf("ParseUpdateMode(sequential) = %v, %v", m, err)
	}
	if _, err := ParseUpdateMode("parallel"); err == nil {
		t.Error("ParseUpdateMode(parallel) succeeded")
	}
	if m, err := ParseVisionMode("normalized"); err != nil || m != VisionNormalized {
		t.Errorf("ParseVisionMode(normalized) = %v, %v", m, err)
	}
	if _, err := ParseVisionMode("wide"); err == nil {
		t.Error("ParseVisionMode(wide) succeeded")
	}
	if Snapshot.String() != "snapshot" || VisionLiteral.String() != "literal" {
		t.Error("bad mode names")
	}
}

func TestForward(t *testing.T) {
	for _, c := range []struct {
		deg  float64
		want r2.Point
	}{
		{0, r2.Point{X: 1}},
		{90, r2.Point{Y: 1}},
		{180, r2.Point{X: -1}},
		{-90, r2.Point{Y: -1}},
	} {
		st := State{Facing: s1.Angle(c.deg) * s1.Degree}
		got := st.Forward()
		if !near(got.X, c.want.X) || !near(got.Y, c.want.Y) {
			t.Errorf("Forward(%v°) = %v, want %v", c.deg, got, c.want)
		}
	}
}
