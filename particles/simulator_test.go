package particles

import (
	"errors"
	"math"
	"testing"
)

// fixedRand returns constant draws so random branches can be forced
type fixedRand struct {
	f float32
	n int
}

func (r fixedRand) Float32() float32 { return r.f }
func (r fixedRand) Intn(int) int     { return r.n }

func inRange(v, lo, hi float32) bool {
	return v >= lo && v < hi
}

func TestInitializeCount(t *testing.T) {
	for _, count := range []int{0, 1, 17, 1000} {
		s := New(WithSeed(1))
		if err := s.Initialize(count); err != nil {
			t.Fatalf("Initialize(%d): %v", count, err)
		}
		if got := s.Count(); got != count {
			t.Errorf("Count() = %d, want %d", got, count)
		}
		if got := len(s.Particles()); got != count {
			t.Errorf("len(Particles()) = %d, want %d", got, count)
		}

		for i, p := range s.Particles() {
			if p.Life != 1 || p.A != 1 {
				t.Fatalf("particle %d: life=%f a=%f, want 1", i, p.Life, p.A)
			}
			if !inRange(p.X, -10, 10) || !inRange(p.Y, -10, 10) || !inRange(p.Z, -10, 10) {
				t.Errorf("particle %d position out of range: %f %f %f", i, p.X, p.Y, p.Z)
			}
			if !inRange(p.VX, -1, 1) || !inRange(p.VY, -1, 1) || !inRange(p.VZ, -1, 1) {
				t.Errorf("particle %d velocity out of range: %f %f %f", i, p.VX, p.VY, p.VZ)
			}
			if !inRange(p.Size, 0.1, 0.6) {
				t.Errorf("particle %d size %f out of range", i, p.Size)
			}
			if !inRange(p.R, 0, 1) || !inRange(p.G, 0, 1) || !inRange(p.B, 0, 1) {
				t.Errorf("particle %d color out of range: %f %f %f", i, p.R, p.G, p.B)
			}
			if !inRange(p.Twinkle, 0, TwoPi) {
				t.Errorf("particle %d twinkle %f out of range", i, p.Twinkle)
			}
			if !inRange(p.PulseSpeed, 2, 5) {
				t.Errorf("particle %d pulse speed %f out of range", i, p.PulseSpeed)
			}
			if !inRange(p.Brightness, 0.5, 1) {
				t.Errorf("particle %d brightness %f out of range", i, p.Brightness)
			}
		}
	}
}

func TestInitializeReplacesBuffer(t *testing.T) {
	s := New(WithSeed(2))
	if err := s.Initialize(10); err != nil {
		t.Fatal(err)
	}
	s.Particles()[0].Life = 0.25

	if err := s.Initialize(3); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", s.Count())
	}
	if s.Particles()[0].Life != 1 {
		t.Errorf("new buffer carries old state: life=%f", s.Particles()[0].Life)
	}
}

func TestInitializeRejectsInvalidCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  error
	}{
		{"negative", -1, ErrNegativeCount},
		{"very negative", math.MinInt32, ErrNegativeCount},
		{"over capacity", 65, ErrCapacityExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(WithSeed(3), WithMaxParticles(64))
			if err := s.Initialize(5); err != nil {
				t.Fatal(err)
			}
			before := &s.Particles()[0]

			err := s.Initialize(tt.count)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Initialize(%d) error = %v, want %v", tt.count, err, tt.want)
			}
			if s.Count() != 5 {
				t.Errorf("Count() = %d after rejected Initialize, want 5", s.Count())
			}
			if &s.Particles()[0] != before {
				t.Error("rejected Initialize replaced the buffer")
			}
		})
	}
}

func TestInitializeAtCapacity(t *testing.T) {
	s := New(WithSeed(3), WithMaxParticles(64))
	if err := s.Initialize(64); err != nil {
		t.Fatalf("Initialize at capacity: %v", err)
	}
	if s.Count() != 64 {
		t.Errorf("Count() = %d, want 64", s.Count())
	}
}

func TestTeardownIdempotent(t *testing.T) {
	s := New(WithSeed(4))
	s.Teardown() // nothing allocated yet

	if err := s.Initialize(8); err != nil {
		t.Fatal(err)
	}
	s.Teardown()
	s.Teardown()

	if s.Count() != 0 {
		t.Errorf("Count() = %d after Teardown, want 0", s.Count())
	}
	if s.Particles() != nil {
		t.Error("Particles() should be nil after Teardown")
	}
}

func TestEmptyBufferIsNoop(t *testing.T) {
	s := New(WithSeed(5))

	s.Step(0.5, 9.8, 0.98)
	s.Attract(0, 0, 0, 10)
	s.Turbulence(0, 0.3, 1)

	if s.Count() != 0 || s.Particles() != nil {
		t.Errorf("operations on empty simulator produced particles")
	}
	if s.Clock() != 0.5 {
		t.Errorf("Clock() = %f, want 0.5", s.Clock())
	}
	if s.Stats() != (StepStats{}) {
		t.Errorf("Stats() = %+v on empty buffer", s.Stats())
	}
}

func TestStepIntegration(t *testing.T) {
	s := New(WithRand(fixedRand{f: 0.5, n: SparkleOutOf - 1}))
	if err := s.Initialize(1); err != nil {
		t.Fatal(err)
	}

	p := &s.Particles()[0]
	*p = Particle{
		X: 1, Y: 2, Z: 3,
		VX: 1, VY: 4, VZ: -1,
		Life: 1, Size: 0.3,
		R: 0.1, G: 0.2, B: 0.3, A: 1,
		Twinkle: 6, PulseSpeed: 4, Brightness: 0.8,
	}
	want := *p

	var dt, gravity, damping float32 = 0.25, 8, 0.5
	s.Step(dt, gravity, damping)

	want.VY -= gravity * dt
	want.VX *= damping
	want.VY *= damping
	want.VZ *= damping
	want.X += want.VX * dt
	want.Y += want.VY * dt
	want.Z += want.VZ * dt
	want.Life -= LifeDecayRate * dt
	want.Twinkle += want.PulseSpeed * dt
	want.Twinkle -= TwoPi
	tf := (float32(math.Sin(float64(want.Twinkle))) + 1) * 0.5
	want.A = want.Life * (want.Brightness * tf)

	if *p != want {
		t.Errorf("after Step:\n got %+v\nwant %+v", *p, want)
	}
	if s.Stats() != (StepStats{}) {
		t.Errorf("Stats() = %+v, want none", s.Stats())
	}
}

func TestStepDampingOnlyWithoutGravity(t *testing.T) {
	s := New(WithRand(fixedRand{f: 0.5, n: SparkleOutOf - 1}))
	if err := s.Initialize(1); err != nil {
		t.Fatal(err)
	}
	p := &s.Particles()[0]
	p.VX, p.VY, p.VZ = 1, 1, 1

	s.Step(0.01, 0, 0.5)

	if p.VX != 0.5 || p.VY != 0.5 || p.VZ != 0.5 {
		t.Errorf("velocity = (%f, %f, %f), want 0.5 on every axis", p.VX, p.VY, p.VZ)
	}
}

func TestStepDeterministic(t *testing.T) {
	a := New(WithSeed(42))
	b := New(WithSeed(42))
	for _, s := range []*Simulator{a, b} {
		if err := s.Initialize(200); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 300; i++ {
		a.Step(1.0/60, 9.8, 0.98)
		b.Step(1.0/60, 9.8, 0.98)
		if i%10 == 0 {
			a.Attract(0, 5, 0, 2)
			b.Attract(0, 5, 0, 2)
		}
	}

	pa, pb := a.Particles(), b.Particles()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d diverged:\n%+v\n%+v", i, pa[i], pb[i])
		}
	}
	if a.Clock() != b.Clock() {
		t.Errorf("clocks diverged: %f vs %f", a.Clock(), b.Clock())
	}
}

func TestSparkleBrightnessClamp(t *testing.T) {
	s := New(WithRand(fixedRand{f: 0.5, n: 0}))
	if err := s.Initialize(4); err != nil {
		t.Fatal(err)
	}

	s.Step(0.1, 0, 1)

	for i, p := range s.Particles() {
		if want := p.Life * MaxBrightness; p.A != want {
			t.Errorf("particle %d alpha = %f, want %f", i, p.A, want)
		}
	}
	if got := s.Stats().Sparkles; got != 4 {
		t.Errorf("Stats().Sparkles = %d, want 4", got)
	}
}

func TestSparkleRate(t *testing.T) {
	s := New(WithSeed(7))
	if err := s.Initialize(1000); err != nil {
		t.Fatal(err)
	}

	total := 0
	for i := 0; i < 100; i++ {
		s.Step(0.001, 0, 1)
		total += s.Stats().Sparkles
	}

	// 100000 draws at 0.3% gives 300 expected, stddev ~17
	if total < 200 || total > 400 {
		t.Errorf("sparkles = %d over 100000 draws, want about 300", total)
	}
}

func TestRespawn(t *testing.T) {
	s := New(WithSeed(8))
	if err := s.Initialize(100); err != nil {
		t.Fatal(err)
	}
	for i := range s.Particles() {
		s.Particles()[i].Life = 0.01
	}

	s.Step(0.1, 9.8, 0.98)

	if got := s.Stats().Respawns; got != 100 {
		t.Errorf("Stats().Respawns = %d, want 100", got)
	}
	for i, p := range s.Particles() {
		if p.Life != 1 || p.A != 1 {
			t.Errorf("particle %d: life=%f a=%f after respawn", i, p.Life, p.A)
		}
		if p.Y < SpawnHeight || p.Y > SpawnHeight+SpawnHeightRange {
			t.Errorf("particle %d respawned at y=%f", i, p.Y)
		}
		if !inRange(p.X, -1, 1) || !inRange(p.Z, -1, 1) {
			t.Errorf("particle %d respawned at x=%f z=%f", i, p.X, p.Z)
		}
		if !inRange(p.VY, 0, 2) {
			t.Errorf("particle %d respawned with vy=%f, want upward", i, p.VY)
		}
		if !inRange(p.VX, -1, 1) || !inRange(p.VZ, -1, 1) {
			t.Errorf("particle %d respawned with vx=%f vz=%f", i, p.VX, p.VZ)
		}
	}
}

func TestColorPersistsAcrossRespawns(t *testing.T) {
	s := New(WithSeed(9))
	if err := s.Initialize(50); err != nil {
		t.Fatal(err)
	}

	type rgb struct{ r, g, b float32 }
	colors := make([]rgb, s.Count())
	for i, p := range s.Particles() {
		colors[i] = rgb{p.R, p.G, p.B}
	}

	respawns := 0
	for i := 0; i < 500; i++ {
		s.Step(0.1, 9.8, 0.98)
		respawns += s.Stats().Respawns
	}
	if respawns == 0 {
		t.Fatal("expected respawns during the run")
	}

	for i, p := range s.Particles() {
		if (rgb{p.R, p.G, p.B}) != colors[i] {
			t.Errorf("particle %d color changed: %v -> %v", i, colors[i], rgb{p.R, p.G, p.B})
		}
	}
}

func TestTwinkleStaysInRange(t *testing.T) {
	s := New(WithSeed(10))
	if err := s.Initialize(500); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		s.Step(1.0/60, 9.8, 0.98)
		for j, p := range s.Particles() {
			if !inRange(p.Twinkle, 0, TwoPi) {
				t.Fatalf("step %d particle %d twinkle %f outside [0, 2π)", i, j, p.Twinkle)
			}
		}
	}
}

func TestAttract(t *testing.T) {
	s := New(WithSeed(11))
	if err := s.Initialize(2); err != nil {
		t.Fatal(err)
	}

	ps := s.Particles()
	ps[0] = Particle{X: 1, Y: 1, Z: 1, VX: 0.5, VY: -0.5, VZ: 0.25, Life: 1}
	ps[1] = Particle{X: 3, Y: 0, Z: 0, Life: 1}

	s.Attract(1.05, 1, 1, 8)

	if ps[0].VX != 0.5 || ps[0].VY != -0.5 || ps[0].VZ != 0.25 {
		t.Errorf("particle inside dead zone was moved: %+v", ps[0])
	}

	ps[1] = Particle{X: 3, Y: 0, Z: 0, Life: 1}
	s.Attract(1, 0, 0, 8)

	// distance 2, force 8/4 along -x
	if ps[1].VX != -2 || ps[1].VY != 0 || ps[1].VZ != 0 {
		t.Errorf("velocity = (%f, %f, %f), want (-2, 0, 0)", ps[1].VX, ps[1].VY, ps[1].VZ)
	}
}

func TestTurbulence(t *testing.T) {
	s := New(WithSeed(12), WithNoiseSeed(3))
	if err := s.Initialize(50); err != nil {
		t.Fatal(err)
	}
	before := append([]Particle(nil), s.Particles()...)

	s.Turbulence(0.5, 0.37, 0)
	for i, p := range s.Particles() {
		if p != before[i] {
			t.Fatalf("zero-strength turbulence changed particle %d", i)
		}
	}

	s.Turbulence(0.5, 0.37, 1)
	changed := 0
	for i, p := range s.Particles() {
		if p.VX != before[i].VX || p.VY != before[i].VY || p.VZ != before[i].VZ {
			changed++
		}
		if p.X != before[i].X || p.Life != before[i].Life {
			t.Errorf("turbulence touched more than velocity on particle %d", i)
		}
	}
	if changed == 0 {
		t.Error("turbulence did not change any velocity")
	}
}

func TestFountainEndToEnd(t *testing.T) {
	s := New(WithSeed(13))
	if err := s.Initialize(1); err != nil {
		t.Fatal(err)
	}

	for tick := 1; tick <= 2; tick++ {
		s.Step(1.0, 0, 1.0)
	}

	p := s.Particles()[0]
	if p.Y < SpawnHeight {
		t.Errorf("y = %f after two ticks, want respawn at >= %v", p.Y, SpawnHeight)
	}
	if p.Life != 1 {
		t.Errorf("life = %f, want 1 after respawn", p.Life)
	}
	if s.Clock() != 2 {
		t.Errorf("Clock() = %f, want 2", s.Clock())
	}
}
