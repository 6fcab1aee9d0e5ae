// Package term runs interactive boidswarm simulations in a terminal.
package term

import (
	"fmt"
	"math"
	"time"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/gdamore/tcell/v2"
	"github.com/paulmach/orb"
)

// DefaultFrameRate is the refresh rate used when Config.FrameRate is not set.
const DefaultFrameRate = 30

// Config holds the parameters of the terminal driver.
type Config struct {
	Clock      *boidswarm.Clock // drives the simulation
	ForcePause bool             // step manually only?
	Bounds     orb.Bound        // world area mapped onto the terminal
	FrameRate  int              // unit: frame/s
}

// Run runs an interactive simulation in the terminal until Esc or q is pressed.
func Run(s *boidswarm.Simulation, conf *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	return run(screen, s, conf)
}

func run(screen tcell.Screen, s *boidswarm.Simulation, conf *Config) error {
	if conf.Bounds.Right() <= conf.Bounds.Left() || conf.Bounds.Top() <= conf.Bounds.Bottom() {
		return fmt.Errorf("term: empty bounds %v", conf.Bounds)
	}
	rate := conf.FrameRate
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	v := &viewer{sim: s, conf: conf, pause: conf.ForcePause, focal: -1}
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handle(ev.Key(), ev.Rune()) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			if !v.pause {
				conf.Clock.Catchup(now.Sub(last))
			}
			last = now
			draw(screen, s, conf.Clock, v.focal, conf.Bounds)
			screen.Show()
		}
	}
}

// A viewer holds the interactive state of the terminal display.
type viewer struct {
	sim   *boidswarm.Simulation
	conf  *Config
	pause bool
	focal int // index of the agent whose neighborhood is displayed, or -1
}

// handle applies a key press and reports whether the display should keep running.
func (v *viewer) handle(key tcell.Key, r rune) bool {
	n := v.sim.Registry.Len()
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		if v.pause {
			v.conf.Clock.Advance()
		}
	case tcell.KeyTab:
		// cycle through agents, then disable (focal = -1)
		v.focal = (n+v.focal+3)%(n+1) - 1
	case tcell.KeyBacktab:
		v.focal = (n+v.focal+1)%(n+1) - 1
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case ' ':
			if !v.conf.ForcePause {
				v.pause = !v.pause
			}
		}
	}
	return true
}

var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// glyph returns the arrow closest to the heading.
func glyph(a *boidswarm.Agent) rune {
	k := int(math.Round(a.Facing.Radians()/(math.Pi/4))) % 8
	if k < 0 {
		k += 8
	}
	return arrows[k]
}

var (
	ringStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	neighborStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// draw renders the agents in bounds on screen, the first row being a status line.
func draw(screen tcell.Screen, s *boidswarm.Simulation, c *boidswarm.Clock, focal int, bounds orb.Bound) {
	screen.Clear()
	w, h := screen.Size()
	reg := s.Registry
	if focal >= reg.Len() {
		focal = -1
	}

	cell := func(x, y float64) (int, int, bool) {
		col := int((x - bounds.Left()) / (bounds.Right() - bounds.Left()) * float64(w))
		row := int((bounds.Top() - y) / (bounds.Top() - bounds.Bottom()) * float64(h))
		return col, row, col >= 0 && col < w && row >= 1 && row < h
	}

	var seen []int
	if focal >= 0 {
		a := reg.At(focal)
		seen = a.Neighbors
		for k := 0; k < 64; k++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(k) / 64)
			if col, row, ok := cell(a.Pos.X+a.Radius*cos, a.Pos.Y+a.Radius*sin); ok {
				screen.SetContent(col, row, '.', nil, ringStyle)
			}
		}
	}

	for i, a := range reg.Agents() {
		col, row, ok := cell(a.Pos.X, a.Pos.Y)
		if !ok {
			continue
		}
		st := tcell.StyleDefault.Foreground(rgb(a.Color))
		switch {
		case i == focal:
			st = st.Reverse(true)
		case contains(seen, i):
			st = neighborStyle
		}
		screen.SetContent(col, row, glyph(a), nil, st)
	}

	status := fmt.Sprintf(" t=%.2f tick=%d agents=%d ", c.Time(), c.Tick, reg.Len())
	if focal >= 0 {
		status += fmt.Sprintf("focal=%d neighbors=%d ", focal, len(seen))
	}
	for i, r := range []rune(status) {
		if i >= w {
			break
		}
		screen.SetContent(i, 0, r, nil, statusStyle)
	}
}

func rgb(c [4]float32) tcell.Color {
	return tcell.NewRGBColor(int32(255*c[0]), int32(255*c[1]), int32(255*c[2]))
}

func contains(s []int, i int) bool {
	for _, j := range s {
		if i == j {
			return true
		}
	}
	return false
}
