package rubber

import (
	"time"

	"effects/fx/quarkgl"
)

// Segments is the tessellation density of each face along u and v.
const Segments = 12

// Model is the animated cube as a quarkgl scene: one line mesh per face.
type Model struct {
	anim  *Animator
	scene *quarkgl.Scene
	ids   [len(Faces)]int
	pos   []quarkgl.Vec3
}

// NewModel builds the scene with the perspective camera the cube is viewed
// through.
func NewModel(rng Rand) *Model {
	m := &Model{
		anim:  NewAnimator(rng),
		scene: quarkgl.CreateScene(len(Faces)),
		pos:   make([]quarkgl.Vec3, (Segments+1)*(Segments+1)),
	}
	m.scene.Camera = quarkgl.Camera{
		Type:     quarkgl.CameraPerspective,
		Position: m.anim.Eye(),
		Up:       quarkgl.V3(0, 1, 0),
		FOVYRad:  quarkgl.Radians(60),
		Near:     0.1,
		Far:      10,
	}
	lines := gridLines(Segments, 0)
	for i, f := range Faces {
		m.ids[i] = m.scene.AddMesh(quarkgl.Mesh{
			Vertices: make([]quarkgl.Vertex, len(m.pos)),
			Lines:    lines,
			Color:    f.Color,
		})
	}
	return m
}

// Scene returns the scene to render.
func (m *Model) Scene() *quarkgl.Scene { return m.scene }

// Animator returns the animation state.
func (m *Model) Animator() *Animator { return m.anim }

// Update advances the animation to now and re-tessellates every face.
func (m *Model) Update(now time.Duration) {
	m.anim.Tick(now)
	m.scene.Camera.Position = m.anim.Eye()

	cp := m.anim.Controls()
	for i, f := range Faces {
		tessellate(cp, f, m.pos)
		m.scene.UpdateMeshVertices(m.ids[i], m.pos)
	}
}

// tessellate fills dst with the (Segments+1)^2 grid points of face f, row by
// row along v.
func tessellate(cp *[ControlCount]quarkgl.Vec3, f Face, dst []quarkgl.Vec3) {
	k := 0
	for r := 0; r <= Segments; r++ {
		v := quarkgl.Scalar(r) / Segments
		for c := 0; c <= Segments; c++ {
			u := quarkgl.Scalar(c) / Segments
			dst[k] = PatchPoint(cp, f, u, v)
			k++
		}
	}
}
