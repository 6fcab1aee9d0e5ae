package term

import (
	"math"
	"testing"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
)

var bounds = orb.Bound{Min: orb.Point{-10, -10}, Max: orb.Point{10, 10}}

func testSimulation() *boidswarm.Simulation {
	p := boidswarm.DefaultParams()
	reg := boidswarm.NewRegistry(3)
	for _, x := range []float64{0, 1, 9} {
		a := &boidswarm.Agent{Params: p, Style: boidswarm.DefaultStyle}
		a.Pos = r3.Vector{X: x}
		reg.Add(a)
	}
	return boidswarm.NewSimulation(reg)
}

func testScreen(t *testing.T) tcell.Screen {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return screen
}

func TestGlyph(t *testing.T) {
	cases := []struct {
		facing float64
		want   rune
	}{
		{0, '→'},
		{math.Pi / 4, '↗'},
		{math.Pi / 2, '↑'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↓'},
		{-math.Pi / 4, '↘'},
		{0.1, '→'},
		{-3 * math.Pi / 4, '↙'},
	}
	for _, c := range cases {
		a := &boidswarm.Agent{}
		a.Facing = s1.Angle(c.facing)
		if got := glyph(a); got != c.want {
			t.Errorf("glyph(%v) = %q, want %q", c.facing, got, c.want)
		}
	}
}

func TestDraw(t *testing.T) {
	screen := testScreen(t)
	s := testSimulation()
	c := boidswarm.NewClock(s, 0.02)
	draw(screen, s, c, -1, bounds)

	// x = 0 maps to column 40, y = 0 to row 12.
	if r, _, _, _ := screen.GetContent(40, 12); r != '→' {
		t.Errorf("agent 0 cell = %q, want '→'", r)
	}
	if r, _, _, _ := screen.GetContent(44, 12); r != '→' {
		t.Errorf("agent 1 cell = %q, want '→'", r)
	}
	if r, _, _, _ := screen.GetContent(76, 12); r != '→' {
		t.Errorf("agent 2 cell = %q, want '→'", r)
	}
	if r, _, _, _ := screen.GetContent(1, 0); r != 't' {
		t.Errorf("status line starts with %q, want 't'", r)
	}
}

func TestDrawFocal(t *testing.T) {
	screen := testScreen(t)
	s := testSimulation()
	s.Registry.At(0).Neighbors = []int{1}
	draw(screen, s, boidswarm.NewClock(s, 0.02), 0, bounds)

	_, _, st, _ := screen.GetContent(40, 12)
	if _, _, attr := st.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Error("focal agent is not highlighted")
	}
	_, _, st, _ = screen.GetContent(44, 12)
	if st != neighborStyle {
		t.Error("neighbor is not highlighted")
	}
	// radius 2 ring crosses the X axis at column 48
	if r, _, _, _ := screen.GetContent(48, 12); r != '.' {
		t.Errorf("ring cell = %q, want '.'", r)
	}
}

func TestHandle(t *testing.T) {
	s := testSimulation()
	conf := &Config{Clock: boidswarm.NewClock(s, 0.02), Bounds: bounds}
	v := &viewer{sim: s, conf: conf, focal: -1}

	for _, want := range []int{0, 1, 2, -1, 0} {
		v.handle(tcell.KeyTab, 0)
		if v.focal != want {
			t.Fatalf("tab: focal = %d, want %d", v.focal, want)
		}
	}
	for _, want := range []int{-1, 2, 1} {
		v.handle(tcell.KeyBacktab, 0)
		if v.focal != want {
			t.Fatalf("backtab: focal = %d, want %d", v.focal, want)
		}
	}

	v.handle(tcell.KeyRight, 0)
	if conf.Clock.Tick != 0 {
		t.Error("stepped while running")
	}
	v.handle(tcell.KeyRune, ' ')
	if !v.pause {
		t.Fatal("space did not pause")
	}
	v.handle(tcell.KeyRight, 0)
	if conf.Clock.Tick != 1 {
		t.Errorf("tick = %d after single step, want 1", conf.Clock.Tick)
	}

	if v.handle(tcell.KeyEscape, 0) {
		t.Error("escape did not quit")
	}
	if v.handle(tcell.KeyRune, 'q') {
		t.Error("q did not quit")
	}
}

func TestHandleForcePause(t *testing.T) {
	s := testSimulation()
	conf := &Config{Clock: boidswarm.NewClock(s, 0.02), ForcePause: true}
	v := &viewer{sim: s, conf: conf, pause: true, focal: -1}
	v.handle(tcell.KeyRune, ' ')
	if !v.pause {
		t.Error("space resumed a forcibly paused simulation")
	}
}
