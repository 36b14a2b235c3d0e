// Command tackwave-viewer displays a solved wavefront mesh in an OpenGL
// window. Keys 1/2/3 switch the colored channel (amplitude, direction
// offset, phase offset), arrow keys pan, +/- zoom, Esc quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/simonbw/tack-and-trim-sub009/internal/config"
	"github.com/simonbw/tack-and-trim-sub009/internal/meshing"
	"github.com/simonbw/tack-and-trim-sub009/internal/solver"
	"github.com/simonbw/tack-and-trim-sub009/internal/terrain"
	"github.com/simonbw/tack-and-trim-sub009/internal/wave"
)

const (
	windowWidth  = 1024
	windowHeight = 1024
)

func init() {
	runtime.LockOSThread()
}

var vertexSrc = `#version 410 core
layout(location = 0) in vec2 position;
layout(location = 1) in float amplitude;
layout(location = 2) in float dirOffset;
layout(location = 3) in float phaseOffset;
layout(location = 4) in float blend;
uniform mat4 proj;
uniform int channel;
out float value;
out float weight;
void main() {
	gl_Position = proj * vec4(position, 0.0, 1.0);
	if (channel == 1) {
		value = dirOffset / 1.5707963 * 0.5 + 0.5;
	} else if (channel == 2) {
		value = phaseOffset / 3.1415926 * 0.5 + 0.5;
	} else {
		value = amplitude * 0.5;
	}
	weight = blend;
}` + "\x00"

var fragmentSrc = `#version 410 core
in float value;
in float weight;
out vec4 fragColor;
void main() {
	float v = clamp(value, 0.0, 1.0);
	vec3 cold = vec3(0.05, 0.15, 0.4);
	vec3 hot = vec3(0.95, 0.85, 0.3);
	fragColor = vec4(mix(cold, hot, v) * mix(0.35, 1.0, weight), 1.0);
}` + "\x00"

func main() {
	var (
		preset     = flag.String("terrain", "island", "Terrain preset (island, flat, bar, wall)")
		seed       = flag.Int64("seed", 1, "Island terrain seed")
		wavelength = flag.Float64("wavelength", 40, "Wavelength in world units")
		direction  = flag.Float64("direction", 0, "Wave direction in degrees")
		wireframe  = flag.Bool("wireframe", false, "Draw triangle edges instead of fills")
	)
	flag.Parse()

	cfg := config.Default()
	var field terrain.HeightSampler
	switch *preset {
	case "island":
		field = terrain.NewIsland(*seed, 2000, 120, 30)
	case "flat":
		field = terrain.Flat{Depth: 100}
	case "bar":
		field = terrain.Bar{Depth: 100, CrestX: 0, CrestDepth: 3, HalfWidth: 60}
	case "wall":
		field = terrain.Wall{Depth: 100, X0: -20, X1: 20, Y0: -300, Y1: 300}
	default:
		log.Fatalf("unknown terrain preset %q", *preset)
	}

	src := wave.Source{Wavelength: *wavelength, Direction: *direction * math.Pi / 180}
	grid := solver.Solve(field, src, 0, nil, cfg)
	mesh := meshing.Build(grid, cfg)
	log.Printf("mesh: %d vertices, %d triangles", mesh.VertexCount(), mesh.TriangleCount())

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "tackwave", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		panic(err)
	}

	program, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		panic(err)
	}
	defer gl.DeleteProgram(program)

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)

	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, gl.PtrOffset(0))
	for loc := uint32(1); loc <= 4; loc++ {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 1, gl.FLOAT, false, stride, gl.PtrOffset(int(loc+1)*4))
	}

	projLoc := gl.GetUniformLocation(program, gl.Str("proj\x00"))
	channelLoc := gl.GetUniformLocation(program, gl.Str("channel\x00"))

	halfW := float32(grid.Spacing) * float32(grid.Cols-1) / 2
	centerX := float32(grid.Origin[0]) + halfW
	centerY := float32(grid.Origin[1]) + float32(grid.Spacing)*float32(grid.Rows-1)/2
	zoom := float32(1)
	panX, panY := float32(0), float32(0)
	channel := int32(0)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.Key1:
			channel = 0
		case glfw.Key2:
			channel = 1
		case glfw.Key3:
			channel = 2
		}
	})

	if *wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.ClearColor(0.02, 0.02, 0.05, 1.0)
	gl.UseProgram(program)
	gl.BindVertexArray(vao)

	for !window.ShouldClose() {
		step := halfW / zoom * 0.02
		if window.GetKey(glfw.KeyLeft) == glfw.Press {
			panX -= step
		}
		if window.GetKey(glfw.KeyRight) == glfw.Press {
			panX += step
		}
		if window.GetKey(glfw.KeyDown) == glfw.Press {
			panY -= step
		}
		if window.GetKey(glfw.KeyUp) == glfw.Press {
			panY += step
		}
		if window.GetKey(glfw.KeyEqual) == glfw.Press {
			zoom *= 1.02
		}
		if window.GetKey(glfw.KeyMinus) == glfw.Press {
			zoom /= 1.02
		}

		extent := halfW / zoom
		proj := mgl32.Ortho2D(
			centerX+panX-extent, centerX+panX+extent,
			centerY+panY-extent, centerY+panY+extent,
		)

		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.UniformMatrix4fv(projLoc, 1, false, &proj[0])
		gl.Uniform1i(channelLoc, channel)
		gl.DrawElements(gl.TRIANGLES, int32(len(mesh.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))

		window.SwapBuffers()
		glfw.PollEvents()
	}

	gl.DeleteBuffers(1, &vbo)
	gl.DeleteBuffers(1, &ebo)
	gl.DeleteVertexArrays(1, &vao)
}

// newProgram compiles and links the viewer's shader pair.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	f, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &infoLog[0])
		return 0, fmt.Errorf("link program: %s", infoLog)
	}
	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &infoLog[0])
		return 0, fmt.Errorf("compile shader: %s", infoLog)
	}
	return shader, nil
}
