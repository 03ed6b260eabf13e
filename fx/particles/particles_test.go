package particles

import (
	"math"
	"testing"
	"time"

	"effects/fx/quarkgl"
)

// seqRand replays fixed values, cycling when exhausted.
type seqRand struct {
	vals []float32
	i    int
}

func (r *seqRand) Float32() float32 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

func near(a, b quarkgl.Scalar) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestStoreKeepsLastInsertedInOrder(t *testing.T) {
	s := NewStore()
	const n = Capacity + 2345
	for i := 0; i < n; i++ {
		s.Insert(Particle{Speed: quarkgl.Scalar(i)})
		if s.Len() > Capacity {
			t.Fatalf("len %d exceeds capacity after insert %d", s.Len(), i)
		}
	}
	if s.Len() != Capacity {
		t.Fatalf("len = %d, want %d", s.Len(), Capacity)
	}
	if s.Evicted() != n-Capacity {
		t.Fatalf("evicted = %d, want %d", s.Evicted(), n-Capacity)
	}
	want := n - Capacity
	s.Each(func(i int, p *Particle) {
		if int(p.Speed) != want {
			t.Fatalf("record %d = %v, want %d", i, p.Speed, want)
		}
		want++
	})
}

func TestStoreSmallCapacity(t *testing.T) {
	s := NewStoreCap(3)
	for i := 1; i <= 5; i++ {
		s.Insert(Particle{Speed: quarkgl.Scalar(i)})
	}
	var got []int
	s.Each(func(i int, p *Particle) { got = append(got, int(p.Speed)) })
	if len(got) != 3 || got[0] != 3 || got[1] != 4 || got[2] != 5 {
		t.Fatalf("got %v, want [3 4 5]", got)
	}

	s.Reset()
	if s.Len() != 0 || s.Evicted() != 0 {
		t.Fatalf("reset left len=%d evicted=%d", s.Len(), s.Evicted())
	}

	z := NewStoreCap(0)
	z.Insert(Particle{})
	if z.Len() != 0 {
		t.Fatal("zero-capacity store kept a record")
	}
}

func TestEmitterCycleRefresh(t *testing.T) {
	// x, y, heading per refresh.
	rng := &seqRand{vals: []float32{0.75, 0.25, 0.5, 0.1, 0.9, 0.2}}
	e := NewEmitter(rng)

	e.Tick(0)
	src, dst := e.Waypoints()
	if src != (quarkgl.Vec2{}) {
		t.Fatalf("first source = %v, want origin", src)
	}
	if !near(dst.X, 0.5) || !near(dst.Y, -0.5) {
		t.Fatalf("first target = %v, want (0.5,-0.5)", dst)
	}
	if e.Position() != src {
		t.Fatalf("position at t=0 = %v, want source", e.Position())
	}

	e.Tick(Cycle / 2)
	if !near(e.Position().X, 0.25) || !near(e.Position().Y, -0.25) {
		t.Fatalf("midpoint = %v, want (0.25,-0.25)", e.Position())
	}
	if !near(e.Heading(), 180) {
		t.Fatalf("mid heading = %v, want 180", e.Heading())
	}

	// Exactly one cycle in: blend complete, no refresh yet.
	e.Tick(Cycle)
	if !near(e.Position().X, dst.X) || !near(e.Position().Y, dst.Y) {
		t.Fatalf("end of cycle = %v, want %v", e.Position(), dst)
	}

	oldTarget := dst
	e.Tick(Cycle + time.Millisecond)
	src, dst = e.Waypoints()
	if src != oldTarget {
		t.Fatalf("new source = %v, want old target %v", src, oldTarget)
	}
	if e.Position() != oldTarget {
		t.Fatalf("position after refresh = %v, want %v", e.Position(), oldTarget)
	}
	if !near(dst.X, -0.8) || !near(dst.Y, 0.8) {
		t.Fatalf("second target = %v, want (-0.8,0.8)", dst)
	}
	if !near(e.Heading(), 360) {
		t.Fatalf("heading after refresh = %v, want previous target 360", e.Heading())
	}
}

func TestEmitterOvershootsUntilRefresh(t *testing.T) {
	e := NewEmitter(&seqRand{vals: []float32{1, 0.5, 0}})
	e.Tick(0)
	_, dst := e.Waypoints()
	e.Tick(Cycle)
	if !near(e.Position().X, dst.X) {
		t.Fatalf("x = %v, want %v", e.Position().X, dst.X)
	}
	src, _ := e.Waypoints()
	if src != (quarkgl.Vec2{}) {
		t.Fatal("refreshed at exactly one cycle")
	}
}

func TestEmitBatch(t *testing.T) {
	// Waypoint draws, then spread/len pairs: spread 0.5 -> 0 degrees, len 1 -> 1.0.
	rng := &seqRand{vals: []float32{0.5, 0.5, 0, 0.5, 1}}
	e := NewEmitter(rng)
	e.Tick(0)

	s := NewStore()
	e.Emit(s)
	if s.Len() != Batch {
		t.Fatalf("len = %d, want %d", s.Len(), Batch)
	}
	s.Each(func(i int, p *Particle) {
		if p.Pos != e.Position() {
			t.Fatalf("particle %d at %v, want emitter %v", i, p.Pos, e.Position())
		}
		if p.Speed != InitialSpeed {
			t.Fatalf("speed = %v", p.Speed)
		}
		l := p.Dir.Len()
		if l < minLen-1e-5 || l > 1+1e-5 {
			t.Fatalf("direction length %v outside [0.2,1]", l)
		}
	})

	var first Particle
	s.Each(func(i int, p *Particle) {
		if i == 0 {
			first = *p
		}
	})
	// Heading 0 with no spread points straight up.
	if !near(first.Dir.X, 0) || first.Dir.Y <= 0 {
		t.Fatalf("first direction = %v, want +Y", first.Dir)
	}
}

func TestRelaxationIncreasesSpeed(t *testing.T) {
	p := Particle{Pos: quarkgl.V2(0.1, 0), Dir: quarkgl.V2(0, 1), Speed: 0.5}
	advance(&p, quarkgl.V2(0, 0), 0)
	if !near(p.Speed, 0.6) {
		t.Fatalf("speed = %v, want 0.6", p.Speed)
	}
	// Direction blends toward the emitter: 0.5*(0,1) + 0.5*(-1,0).
	if !near(p.Dir.X, -0.5) || !near(p.Dir.Y, 0.5) {
		t.Fatalf("dir = %v, want (-0.5,0.5)", p.Dir)
	}
}

func TestRelaxationCapsSpeed(t *testing.T) {
	for _, speed := range []quarkgl.Scalar{0.79, 0.8, 2, 50} {
		p := Particle{Pos: quarkgl.V2(0, 0.1), Speed: speed}
		advance(&p, quarkgl.V2(0, 0), 0)
		if p.Speed != MaxSpeed {
			t.Fatalf("speed %v -> %v, want %v", speed, p.Speed, MaxSpeed)
		}
	}
}

func TestNoRelaxationOutsideRadiusOrAtEmitter(t *testing.T) {
	for _, pos := range []quarkgl.Vec2{{X: 0.5}, {}} {
		p := Particle{Pos: pos, Dir: quarkgl.V2(1, 0), Speed: 0.4}
		advance(&p, quarkgl.V2(0, 0), 0)
		if p.Speed != 0.4 || p.Dir != quarkgl.V2(1, 0) {
			t.Fatalf("particle at %v relaxed: %+v", pos, p)
		}
	}
}

func TestAdvanceIntegratesAndDecays(t *testing.T) {
	p := Particle{Pos: quarkgl.V2(1, 1), Dir: quarkgl.V2(1, 0), Speed: 0.5}
	advance(&p, quarkgl.V2(-5, -5), 0.1)
	if !near(p.Pos.X, 1.05) || !near(p.Pos.Y, 1) {
		t.Fatalf("pos = %v, want (1.05,1)", p.Pos)
	}
	if !near(p.Speed, 0.45) {
		t.Fatalf("speed = %v, want 0.45", p.Speed)
	}
}

func TestStepperDt(t *testing.T) {
	s := NewStoreCap(1)
	s.Insert(Particle{Pos: quarkgl.V2(1, 1), Dir: quarkgl.V2(1, 0), Speed: 0.5})
	far := quarkgl.V2(-5, -5)

	st := NewStepper()
	if dt := st.Step(10*time.Second, far, s); dt != 0 {
		t.Fatalf("first dt = %v, want 0", dt)
	}
	if dt := st.Step(10*time.Second+100*time.Millisecond, far, s); dt != 100*time.Millisecond {
		t.Fatalf("dt = %v, want 100ms", dt)
	}
	if dt := st.Step(20*time.Second, far, s); dt != DefaultMaxStep {
		t.Fatalf("long gap dt = %v, want %v", dt, DefaultMaxStep)
	}
	if dt := st.Step(time.Second, far, s); dt != 0 {
		t.Fatalf("backwards dt = %v, want 0", dt)
	}
	s.Each(func(_ int, p *Particle) {
		if p.Speed <= 0 {
			t.Fatalf("speed went non-positive: %v", p.Speed)
		}
	})
}

func TestStepperUnclamped(t *testing.T) {
	s := NewStoreCap(1)
	s.Insert(Particle{Pos: quarkgl.V2(1, 1), Dir: quarkgl.V2(1, 0), Speed: 0.5})
	st := &Stepper{}
	st.Step(0, quarkgl.V2(-5, -5), s)
	if dt := st.Step(2*time.Second, quarkgl.V2(-5, -5), s); dt != 2*time.Second {
		t.Fatalf("dt = %v, want 2s", dt)
	}
	s.Each(func(_ int, p *Particle) {
		// 0.5 * (1 - 2) keeps the raw sign flip.
		if !near(p.Speed, -0.5) {
			t.Fatalf("speed = %v, want -0.5", p.Speed)
		}
	})
}

func TestIntensity(t *testing.T) {
	cases := []struct {
		i    int
		want quarkgl.Scalar
	}{
		{0, 0}, {500, 0.5}, {999, 0.999}, {1000, 1}, {9999, 1},
	}
	for _, c := range cases {
		if got := Intensity(c.i); !near(got, c.want) {
			t.Fatalf("Intensity(%d) = %v, want %v", c.i, got, c.want)
		}
	}
}

func TestSystemAdvanceAndInstances(t *testing.T) {
	sys := NewSystem(&seqRand{vals: []float32{0.3, 0.6, 0.9, 0.1, 0.4}})
	for i := 0; i < 120; i++ {
		sys.Advance(time.Duration(i) * 16 * time.Millisecond)
	}
	if sys.Store.Len() != Capacity {
		t.Fatalf("live = %d, want %d", sys.Store.Len(), Capacity)
	}
	st := sys.Stats()
	if st.Evicted != 120*Batch-Capacity {
		t.Fatalf("evicted = %d", st.Evicted)
	}

	inst := sys.AppendInstances(nil)
	if len(inst) != Capacity {
		t.Fatalf("instances = %d", len(inst))
	}
	if inst[0].Intensity != 0 || inst[len(inst)-1].Intensity != 1 {
		t.Fatalf("intensity endpoints %v %v", inst[0].Intensity, inst[len(inst)-1].Intensity)
	}
	for _, in := range inst {
		if in.Position.W != Scale || in.Position.Z != 0 {
			t.Fatalf("bad packing %v", in.Position)
		}
	}
}

func TestProjectionAspect(t *testing.T) {
	m := Projection(200, 100)
	p := quarkgl.Mat4MulV4(m, quarkgl.Vec4{X: 2, Y: 1, W: 1})
	if !near(p.X, 1) || !near(p.Y, 1) {
		t.Fatalf("corner maps to %v, want (1,1)", p)
	}
}
