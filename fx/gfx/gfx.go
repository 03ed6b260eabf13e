// Package gfx is the boundary between the effect views and a shader-capable
// surface.
//
// A Program is a compiled shader with named uniform parameters. Uniforms are
// addressed by Handle; an unknown name yields InvalidHandle and setters ignore
// it, so a view keeps working (and draws nothing useful) against a program
// that lacks a parameter.
//
// Every program draws the same primitive: a quad whose four corners
// (-1,1), (-1,-1), (1,1), (1,-1) pass through the program's VertexStage.
package gfx

import (
	"errors"

	"effects/fx/quarkgl"
)

var (
	// ErrNoShaderCompiler is returned by Compile when the surface cannot
	// compile shaders at all.
	ErrNoShaderCompiler = errors.New("shader compiler not supported")

	// ErrUnknownShader is returned when no source exists for a shader name.
	ErrUnknownShader = errors.New("unknown shader")
)

// Handle addresses a uniform parameter of a Program.
type Handle int

// InvalidHandle is returned for names the program does not declare.
const InvalidHandle Handle = -1

// Program is a compiled shader bound to a surface.
type Program interface {
	// Use makes the program the active one for subsequent draws.
	Use()
	Handle(name string) Handle

	Uniform2f(h Handle, x, y float32)
	Uniform3f(h Handle, x, y, z float32)
	Uniform4f(h Handle, x, y, z, w float32)
	UniformMatrix3(h Handle, m quarkgl.Mat3)
	UniformMatrix4(h Handle, m quarkgl.Mat4)

	// DrawQuad draws one quad with the current uniform values.
	DrawQuad()
}

// Graphics is the shader-capable drawing surface of the platform.
type Graphics interface {
	// ShaderCompilerSupported reports the capability once per surface.
	ShaderCompilerSupported() bool
	Size() (w, h int)
	Clear(c quarkgl.Color)
	Compile(src Source) (Program, error)
	// Blit copies a software-rendered RGB565 buffer onto the surface at (x, y).
	Blit(buf []byte, stride, w, h, x, y int)
}

// QuadCorners are the four corners of the drawn quad, in triangle-strip order.
var QuadCorners = [4]quarkgl.Vec2{
	{X: -1, Y: 1},
	{X: -1, Y: -1},
	{X: 1, Y: 1},
	{X: 1, Y: -1},
}
