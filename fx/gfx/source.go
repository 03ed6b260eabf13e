package gfx

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"effects/fx/quarkgl"
)

//go:embed shaders/*.kage
var shaderFS embed.FS

// Uniforms is a read-only view of a program's current uniform values.
type Uniforms interface {
	Value(name string) []float32
}

// VertexStage maps a quad corner to clip space using the program uniforms.
type VertexStage func(u Uniforms, corner quarkgl.Vec2) quarkgl.Vec4

// Source is everything needed to compile a Program.
type Source struct {
	Name     string
	Fragment []byte
	Vertex   VertexStage
}

// Load reads the fragment source for name from the embedded shader set.
func Load(name string, vertex VertexStage) (Source, error) {
	return LoadFS(shaderFS, name, vertex)
}

// LoadFS reads shaders/<name>.kage from fsys.
func LoadFS(fsys fs.FS, name string, vertex VertexStage) (Source, error) {
	b, err := fs.ReadFile(fsys, "shaders/"+name+".kage")
	if errors.Is(err, fs.ErrNotExist) {
		return Source{}, fmt.Errorf("load shader %q: %w", name, ErrUnknownShader)
	}
	if err != nil {
		return Source{}, fmt.Errorf("load shader %q: %w", name, err)
	}
	if vertex == nil {
		vertex = FullView
	}
	return Source{Name: name, Fragment: b, Vertex: vertex}, nil
}

// FullView passes the quad corners through unchanged, covering the viewport.
func FullView(_ Uniforms, corner quarkgl.Vec2) quarkgl.Vec4 {
	return quarkgl.Vec4{X: corner.X, Y: corner.Y, Z: 0, W: 1}
}

// Mat4Value decodes a mat4 uniform.
func Mat4Value(u Uniforms, name string) (quarkgl.Mat4, bool) {
	var m quarkgl.Mat4
	v := u.Value(name)
	if len(v) != len(m) {
		return m, false
	}
	copy(m[:], v)
	return m, true
}

// Vec4Value decodes a vec4 uniform.
func Vec4Value(u Uniforms, name string) (quarkgl.Vec4, bool) {
	v := u.Value(name)
	if len(v) != 4 {
		return quarkgl.Vec4{}, false
	}
	return quarkgl.Vec4{X: v[0], Y: v[1], Z: v[2], W: v[3]}, true
}
