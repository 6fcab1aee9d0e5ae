//go:build !nogl

// Package opengl runs interactive boidswarm simulations in an OpenGL window.
package opengl

import (
	"embed"
	"fmt"
	"time"

	"github.com/PrincetonUniversity/boidswarm"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.1/glfw"
)

//go:embed shaders
var shaders embed.FS

// Config holds the parameters of the OpenGL driver.
type Config struct {
	MaxSwarmSize int              // maximum swarm size
	Clock        *boidswarm.Clock // drives the simulation
	ForcePause   bool             // step manually only?
	AgentSize    float64          // length of the agent glyphs, unit: world length

	// bounds of default viewport
	Xmin float64
	Ymin float64
	Xmax float64
	Ymax float64
}

// Run runs an interactive simulation in an OpenGL window.
func Run(s *boidswarm.Simulation, conf *Config) error {
	// init GLFW and OpenGL
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	// create OpenGL window
	const (
		title  = "Boidswarm"
		width  = 800
		height = 800
	)
	w, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return err
	}
	w.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return err
	}

	// set background color and enable alpha blending
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	w.SwapBuffers()

	// initialize OpenGL objects
	d, err := newDisplay(conf.MaxSwarmSize)
	if err != nil {
		return err
	}
	size := conf.AgentSize
	if size <= 0 {
		size = 0.3
	}
	d.setAgentSize(float32(size))

	// handle scrolling zoom
	home := viewport{{float32(conf.Xmin), float32(conf.Ymin)}, {float32(conf.Xmax), float32(conf.Ymax)}}
	vp := home
	focal := -1 // index of the agent whose neighborhood is displayed
	w.SetScrollCallback(func(w *glfw.Window, xo, yo float64) {
		xc, yc := w.GetCursorPos()
		xs, ys := w.GetSize()
		x, y := float32(xc)/float32(xs), (float32(ys)-float32(yc))/float32(ys)
		dx, dy := vp[1].X-vp[0].X, vp[1].Y-vp[0].Y
		z := 0.05 * float32(yo)
		vp[0].X += z * -(x * dx)
		vp[0].Y += z * -(y * dy)
		vp[1].X += z * (1 - x) * dx
		vp[1].Y += z * (1 - y) * dy
		d.draw(s, focal, vp)
		w.SwapBuffers()
	})

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, mod glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			quit = true
		}
		if key == glfw.KeySpace && action == glfw.Press && !conf.ForcePause {
			pause = !pause
		}
		if key == glfw.KeyRight && (action == glfw.Press || action == glfw.Repeat) {
			if pause {
				pause = false
				step = true
			}
		}
		if key == glfw.KeyTab && action == glfw.Press {
			// cycle through agents, then disable (focal = -1)
			n := s.Registry.Len()
			if mod == glfw.ModShift {
				focal--
			} else {
				focal++
			}
			focal = (n+focal+2)%(n+1) - 1
		}
		if key == glfw.KeyR && action == glfw.Press {
			vp = home
			d.draw(s, focal, vp)
			w.SwapBuffers()
		}
	})

	last := time.Now()
	for !(quit || w.ShouldClose()) {
		now := time.Now()
		elapsed := now.Sub(last)
		last = now
		if step {
			pause = true
			step = false
			conf.Clock.Advance()
		}
		if !pause {
			conf.Clock.Catchup(elapsed)
		}
		d.draw(s, focal, vp)
		w.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// A viewport is a rectangle delimiting the area of simulation space shown on screen.
// The first point is the bottom left corner, the second point is the top right corner.
type viewport [2]struct{ X, Y float32 }

// display contains all the OpenGL objects required to display the simulation.
type display struct {
	max  int // maximum number of agents
	prog struct {
		agent   uint32
		overlay uint32
	}
	vao struct {
		agent   uint32
		overlay uint32
	}
	buf struct {
		agent   uint32 // agent vertices
		overlay uint32 // radius circle and neighbor links
	}
	uni struct {
		agentVP   int32 // viewport of agent program
		size      int32 // agent glyph size
		overlayVP int32 // viewport of overlay program
		tint      int32 // overlay color
	}

	// scratch buffers
	agents  []float32
	overlay []float32
}

// draw updates the OpenGL buffers and draws the agents on screen.
func (d *display) draw(s *boidswarm.Simulation, focal int, vp viewport) {
	if focal >= s.Registry.Len() {
		focal = -1
	}
	d.updateViewport(vp)
	d.updateAgents(s.Registry, focal)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if focal >= 0 {
		d.drawOverlay(s.Registry.At(focal), s.Registry)
	}
	d.drawAgents()
}

// updateViewport sends the new viewport to OpenGL.
func (d *display) updateViewport(vp viewport) {
	gl.UseProgram(d.prog.agent)
	gl.Uniform2fv(d.uni.agentVP, 2, &vp[0].X)
	gl.UseProgram(d.prog.overlay)
	gl.Uniform2fv(d.uni.overlayVP, 2, &vp[0].X)
}

// setAgentSize sets the length of the agent glyphs.
func (d *display) setAgentSize(size float32) {
	gl.UseProgram(d.prog.agent)
	gl.Uniform1f(d.uni.size, size)
}

// updateAgents updates the OpenGL buffer containing agent states.
func (d *display) updateAgents(reg *boidswarm.Registry, focal int) {
	d.agents = agentVertices(d.agents[:0], reg, focal)
	if len(d.agents) > d.max*agentStride {
		d.agents = d.agents[:d.max*agentStride]
	}
	if len(d.agents) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.agent)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(d.agents), gl.Ptr(d.agents))
}

// drawOverlay draws the search radius and the neighbor links of a.
func (d *display) drawOverlay(a *boidswarm.Agent, reg *boidswarm.Registry) {
	d.overlay = overlayVertices(d.overlay[:0], a, reg)
	if limit := 2 * (ringVertices + 2*d.max); len(d.overlay) > limit {
		d.overlay = d.overlay[:limit]
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.overlay)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, 4*len(d.overlay), gl.Ptr(d.overlay))

	gl.UseProgram(d.prog.overlay)
	gl.BindVertexArray(d.vao.overlay)
	gl.Uniform4f(d.uni.tint, 0, 1, 0, 0.5)
	gl.DrawArrays(gl.LINES, 0, ringVertices)
	gl.Uniform4f(d.uni.tint, 0, 1, 1, 1)
	gl.DrawArrays(gl.LINES, ringVertices, int32(len(d.overlay)/2-ringVertices))
}

// drawAgents draws the agents as oriented triangles.
func (d *display) drawAgents() {
	gl.UseProgram(d.prog.agent)
	gl.BindVertexArray(d.vao.agent)
	gl.DrawArrays(gl.POINTS, 0, int32(len(d.agents)/agentStride))
}

// newDisplay compiles shaders and initializes a display.
func newDisplay(maxSwarmSize int) (*display, error) {
	d := &display{max: maxSwarmSize}

	// compile and link shaders
	var err error
	d.prog.agent, err = makeProg([]shader{
		{"Vertex", "agent.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Geometry", "agent.geom", gl.CreateShader(gl.GEOMETRY_SHADER)},
		{"Fragment", "agent.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}
	d.prog.overlay, err = makeProg([]shader{
		{"Vertex", "overlay.vert", gl.CreateShader(gl.VERTEX_SHADER)},
		{"Fragment", "overlay.frag", gl.CreateShader(gl.FRAGMENT_SHADER)},
	})
	if err != nil {
		return nil, err
	}

	// uniform location cannot be specified in the shaders in OpenGL 3.3 core
	d.uni.agentVP = gl.GetUniformLocation(d.prog.agent, gl.Str("vp\x00"))
	d.uni.size = gl.GetUniformLocation(d.prog.agent, gl.Str("size\x00"))
	d.uni.overlayVP = gl.GetUniformLocation(d.prog.overlay, gl.Str("vp\x00"))
	d.uni.tint = gl.GetUniformLocation(d.prog.overlay, gl.Str("tint\x00"))

	// attribute locations are specified in the shaders with layout(location=n)
	const (
		attrPos     = 0
		attrFacing  = 1
		attrColor   = 2
		attrOverlay = 3
	)
	const stride = int32(4 * agentStride)

	gl.GenVertexArrays(1, &d.vao.agent)
	gl.BindVertexArray(d.vao.agent)
	gl.GenBuffers(1, &d.buf.agent)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.agent)
	gl.BufferData(gl.ARRAY_BUFFER, 4*agentStride*maxSwarmSize, nil, gl.STREAM_DRAW)

	gl.EnableVertexAttribArray(attrPos)
	gl.VertexAttribPointer(attrPos, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(attrFacing)
	gl.VertexAttribPointer(attrFacing, 1, gl.FLOAT, false, stride, gl.PtrOffset(4*2))
	gl.EnableVertexAttribArray(attrColor)
	gl.VertexAttribPointer(attrColor, 4, gl.FLOAT, false, stride, gl.PtrOffset(4*3))

	gl.GenVertexArrays(1, &d.vao.overlay)
	gl.BindVertexArray(d.vao.overlay)
	gl.GenBuffers(1, &d.buf.overlay)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.buf.overlay)
	gl.BufferData(gl.ARRAY_BUFFER, 4*2*(ringVertices+2*maxSwarmSize), nil, gl.STREAM_DRAW)

	gl.EnableVertexAttribArray(attrOverlay)
	gl.VertexAttribPointer(attrOverlay, 2, gl.FLOAT, false, 0, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return d, nil
}

// A shader wraps an OpenGL shader.
type shader struct {
	name   string
	path   string
	shader uint32
}

// makeProg builds OpenGL programs.
func makeProg(list []shader) (uint32, error) {
	var fail bool
	for _, s := range list {
		src, err := shaders.ReadFile("shaders/" + s.path)
		if err != nil {
			return 0, err
		}
		str, free := gl.Strs(string(src) + "\x00")
		gl.ShaderSource(s.shader, 1, str, nil)
		free()
		gl.CompileShader(s.shader)
		var status int32
		gl.GetShaderiv(s.shader, gl.COMPILE_STATUS, &status)
		if status != gl.TRUE {
			var n int32
			gl.GetShaderiv(s.shader, gl.INFO_LOG_LENGTH, &n)
			log := make([]uint8, n)
			gl.GetShaderInfoLog(s.shader, n, &n, &log[0])
			fmt.Printf("### %s shader compilation error: %s ###\n\n%s\n\n", s.name, s.path, gl.GoStr(&log[0]))
			fail = true
			gl.DeleteShader(s.shader)
		}
	}
	if fail {
		return 0, fmt.Errorf("boidswarm: GLSL errors")
	}
	prog := gl.CreateProgram()
	for _, s := range list {
		gl.AttachShader(prog, s.shader)
	}
	gl.LinkProgram(prog)

	return prog, nil
}
