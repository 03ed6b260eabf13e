package gfx

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"effects/fx/quarkgl"
)

// uniformSizes is the float count of each Kage uniform type.
var uniformSizes = map[string]int{
	"float": 1,
	"vec2":  2,
	"vec3":  3,
	"vec4":  4,
	"mat2":  4,
	"mat3":  9,
	"mat4":  16,
}

type uniform struct {
	name string
	val  []float32
}

// UniformSet stores the uniform values declared by a Kage fragment source.
//
// Program implementations embed it; it is not safe for concurrent use.
type UniformSet struct {
	list   []uniform
	byName map[string]Handle
}

// ParseUniforms collects the package-level var declarations of a Kage source.
// Kage is Go syntax, so the standard parser reads it.
func ParseUniforms(src []byte) (*UniformSet, error) {
	f, err := parser.ParseFile(token.NewFileSet(), "shader.kage", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parse shader: %w", err)
	}
	if f.Name == nil || f.Name.Name != "main" {
		return nil, fmt.Errorf("parse shader: package must be main")
	}

	u := &UniformSet{byName: make(map[string]Handle)}
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			size, err := uniformSize(vs.Type)
			if err != nil {
				return nil, fmt.Errorf("parse shader: %w", err)
			}
			for _, n := range vs.Names {
				if !ast.IsExported(n.Name) {
					return nil, fmt.Errorf("parse shader: uniform %q must be exported", n.Name)
				}
				u.byName[n.Name] = Handle(len(u.list))
				u.list = append(u.list, uniform{name: n.Name, val: make([]float32, size)})
			}
		}
	}
	return u, nil
}

func uniformSize(expr ast.Expr) (int, error) {
	switch t := expr.(type) {
	case *ast.Ident:
		if n, ok := uniformSizes[t.Name]; ok {
			return n, nil
		}
		return 0, fmt.Errorf("unsupported uniform type %s", t.Name)
	case *ast.ArrayType:
		lit, ok := t.Len.(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return 0, fmt.Errorf("uniform arrays need a constant length")
		}
		var n int
		if _, err := fmt.Sscan(lit.Value, &n); err != nil || n <= 0 {
			return 0, fmt.Errorf("bad uniform array length %s", lit.Value)
		}
		elem, err := uniformSize(t.Elt)
		if err != nil {
			return 0, err
		}
		return n * elem, nil
	default:
		return 0, fmt.Errorf("uniform needs an explicit type")
	}
}

func (u *UniformSet) Handle(name string) Handle {
	if h, ok := u.byName[name]; ok {
		return h
	}
	return InvalidHandle
}

// Names lists the declared uniforms in declaration order.
func (u *UniformSet) Names() []string {
	out := make([]string, len(u.list))
	for i, v := range u.list {
		out[i] = v.name
	}
	return out
}

// Set copies vals into the uniform at h. Size mismatches are ignored, matching
// how a GPU driver drops a wrongly typed uniform call.
func (u *UniformSet) Set(h Handle, vals ...float32) bool {
	if h < 0 || int(h) >= len(u.list) {
		return false
	}
	dst := u.list[h].val
	if len(vals) != len(dst) {
		return false
	}
	copy(dst, vals)
	return true
}

func (u *UniformSet) SetMat3(h Handle, m quarkgl.Mat3) bool { return u.Set(h, m[:]...) }
func (u *UniformSet) SetMat4(h Handle, m quarkgl.Mat4) bool { return u.Set(h, m[:]...) }

// Value implements Uniforms.
func (u *UniformSet) Value(name string) []float32 {
	h := u.Handle(name)
	if h == InvalidHandle {
		return nil
	}
	return u.list[h].val
}

// Snapshot returns a copy keyed by name, scalars unwrapped to float32.
func (u *UniformSet) Snapshot() map[string]any {
	out := make(map[string]any, len(u.list))
	for _, v := range u.list {
		if len(v.val) == 1 {
			out[v.name] = v.val[0]
			continue
		}
		cp := make([]float32, len(v.val))
		copy(cp, v.val)
		out[v.name] = cp
	}
	return out
}

func (u *UniformSet) String() string {
	return "uniforms[" + strings.Join(u.Names(), ",") + "]"
}
