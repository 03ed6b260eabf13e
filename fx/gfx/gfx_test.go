package gfx

import (
	"errors"
	"testing"
	"testing/fstest"

	"effects/fx/quarkgl"
)

func TestLoadEmbeddedShaders(t *testing.T) {
	for _, name := range []string{"fractal", "particle"} {
		src, err := Load(name, nil)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(src.Fragment) == 0 || src.Vertex == nil {
			t.Fatalf("Load(%q) returned incomplete source", name)
		}
		if _, err := ParseUniforms(src.Fragment); err != nil {
			t.Fatalf("ParseUniforms(%q): %v", name, err)
		}
	}
}

func TestLoadUnknownShader(t *testing.T) {
	_, err := Load("nope", nil)
	if !errors.Is(err, ErrUnknownShader) {
		t.Fatalf("err = %v, want ErrUnknownShader", err)
	}
}

func TestParseUniforms(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/t.kage": {Data: []byte(`//kage:unit pixels

package main

const Pi = 3.14

var Scale float
var Center vec2
var M mat3
var Colors [4]vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	return vec4(Scale)
}
`)},
	}
	src, err := LoadFS(fsys, "t", nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	u, err := ParseUniforms(src.Fragment)
	if err != nil {
		t.Fatalf("ParseUniforms: %v", err)
	}
	want := []string{"Scale", "Center", "M", "Colors"}
	got := u.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("names = %v, want %v", got, want)
		}
	}
	if n := len(u.Value("Colors")); n != 16 {
		t.Fatalf("Colors size = %d, want 16", n)
	}

	if u.Handle("Missing") != InvalidHandle {
		t.Fatal("expected InvalidHandle for undeclared uniform")
	}
	if u.Set(u.Handle("Center"), 1, 2, 3) {
		t.Fatal("size mismatch accepted")
	}
	if !u.SetMat3(u.Handle("M"), quarkgl.Mat3Translate(4, 5)) {
		t.Fatal("SetMat3 rejected")
	}
	if v := u.Value("M"); v[6] != 4 || v[7] != 5 {
		t.Fatalf("M = %v", v)
	}

	snap := u.Snapshot()
	if _, ok := snap["Scale"].(float32); !ok {
		t.Fatalf("scalar snapshot type = %T", snap["Scale"])
	}
	u.Set(u.Handle("Center"), 9, 9)
	if c := snap["Center"].([]float32); c[0] != 0 {
		t.Fatal("snapshot aliases live storage")
	}
}

func TestParseUniformsRejectsBadSource(t *testing.T) {
	cases := map[string]string{
		"syntax":     "package main\nvar X vec2 = (",
		"unexported": "package main\nvar x vec2\n",
		"untyped":    "package main\nvar X = 1\n",
		"badtype":    "package main\nvar X string\n",
		"package":    "package other\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseUniforms([]byte(src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFullViewPassesCorners(t *testing.T) {
	for _, c := range QuadCorners {
		p := FullView(nil, c)
		if p.X != c.X || p.Y != c.Y || p.W != 1 {
			t.Fatalf("FullView(%v) = %v", c, p)
		}
	}
}
