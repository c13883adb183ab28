package particles

import (
	"errors"
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

// Simulation constants
const (
	TwoPi = float32(2 * math.Pi)

	LifeDecayRate   = 0.5 // Life lost per second
	AttractDeadZone = 0.1 // No attraction inside this distance

	// Sparkle fires when a draw in [0, SparkleOutOf) lands below SparkleChance
	SparkleChance = 3
	SparkleOutOf  = 1000
	SparkleFlash  = 2.0
	MaxBrightness = 2.0

	SpawnHeight      = 10.0
	SpawnHeightRange = 2.0
	InitExtent       = 10.0 // Initial positions span [-InitExtent, InitExtent)

	DefaultMaxParticles = 1 << 22
)

var (
	ErrNegativeCount    = errors.New("particle count is negative")
	ErrCapacityExceeded = errors.New("particle count exceeds capacity")
)

// StepStats summarizes the random events of the most recent Step.
type StepStats struct {
	Sparkles int
	Respawns int
}

// Simulator owns a fixed-length particle buffer and advances it in place.
// It is not safe for concurrent use.
type Simulator struct {
	particles    []Particle
	clock        float32
	rng          Rand
	log          *zap.Logger
	maxParticles int
	noiseSeed    int64
	noise        *perlin.Perlin
	stats        StepStats
}

// New creates an empty simulator. Call Initialize to allocate particles.
func New(opts ...Option) *Simulator {
	s := &Simulator{
		log:          zap.NewNop(),
		maxParticles: DefaultMaxParticles,
		noiseSeed:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newTimeSeededRand()
	}
	return s
}

// Initialize replaces the buffer with count freshly randomized particles.
// On error the previous buffer is left untouched.
func (s *Simulator) Initialize(count int) error {
	if count < 0 {
		s.log.Warn("initialize rejected", zap.Int("count", count))
		return fmt.Errorf("initialize %d particles: %w", count, ErrNegativeCount)
	}
	if count > s.maxParticles {
		s.log.Warn("initialize rejected",
			zap.Int("count", count),
			zap.Int("max", s.maxParticles),
		)
		return fmt.Errorf("initialize %d particles (max %d): %w", count, s.maxParticles, ErrCapacityExceeded)
	}

	// Build fully before installing so the accessors never see a partial buffer
	buf := make([]Particle, count)
	for i := range buf {
		p := &buf[i]
		p.X = s.uniform(-InitExtent, InitExtent)
		p.Y = s.uniform(-InitExtent, InitExtent)
		p.Z = s.uniform(-InitExtent, InitExtent)

		p.VX = s.uniform(-1, 1)
		p.VY = s.uniform(-1, 1)
		p.VZ = s.uniform(-1, 1)

		p.Life = 1
		p.Size = s.uniform(0.1, 0.6)

		p.R = s.rng.Float32()
		p.G = s.rng.Float32()
		p.B = s.rng.Float32()
		p.A = 1

		s.drawPulse(p)
	}

	prev := len(s.particles)
	s.particles = buf
	s.stats = StepStats{}
	s.log.Debug("particle buffer initialized",
		zap.Int("count", count),
		zap.Int("previous", prev),
	)
	return nil
}

// Step advances every particle by dt seconds under gravity (y axis only)
// and a per-step velocity damping factor.
func (s *Simulator) Step(dt, gravity, damping float32) {
	s.clock += dt
	s.stats = StepStats{}

	for i := range s.particles {
		p := &s.particles[i]

		p.VY -= gravity * dt

		p.VX *= damping
		p.VY *= damping
		p.VZ *= damping

		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.Z += p.VZ * dt

		p.Life -= LifeDecayRate * dt

		p.Twinkle += p.PulseSpeed * dt
		if p.Twinkle >= TwoPi {
			p.Twinkle -= TwoPi
		}
		twinkle := (float32(math.Sin(float64(p.Twinkle))) + 1) * 0.5

		var sparkle float32
		if s.rng.Intn(SparkleOutOf) < SparkleChance {
			sparkle = SparkleFlash
			s.stats.Sparkles++
		}

		brightness := p.Brightness*twinkle + sparkle
		if brightness > MaxBrightness {
			brightness = MaxBrightness
		}
		p.A = p.Life * brightness

		if p.Life <= 0 {
			s.respawn(p)
			s.stats.Respawns++
		}
	}
}

// respawn resets a dead particle into the fountain emission state.
// Color is kept for the particle's whole existence.
func (s *Simulator) respawn(p *Particle) {
	p.X = s.uniform(-1, 1)
	p.Y = SpawnHeight + s.rng.Float32()*SpawnHeightRange
	p.Z = s.uniform(-1, 1)

	p.VX = s.uniform(-1, 1)
	p.VY = s.rng.Float32() * 2
	p.VZ = s.uniform(-1, 1)

	p.Life = 1
	p.A = 1

	s.drawPulse(p)
}

func (s *Simulator) drawPulse(p *Particle) {
	p.Twinkle = s.rng.Float32() * TwoPi
	p.PulseSpeed = s.uniform(2, 5)
	p.Brightness = s.uniform(0.5, 1)
}

// Attract applies an inverse-square velocity impulse toward the target.
// It must be called every step to sustain the pull.
func (s *Simulator) Attract(tx, ty, tz, strength float32) {
	for i := range s.particles {
		p := &s.particles[i]

		dx := tx - p.X
		dy := ty - p.Y
		dz := tz - p.Z

		dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
		if dist <= AttractDeadZone {
			continue
		}

		force := strength / (dist * dist)
		p.VX += dx / dist * force
		p.VY += dy / dist * force
		p.VZ += dz / dist * force
	}
}

// Turbulence adds a Perlin noise velocity impulse to every particle.
// t scrolls the field; scale maps world units to noise space.
func (s *Simulator) Turbulence(t, scale, strength float32) {
	if len(s.particles) == 0 || strength == 0 {
		return
	}
	if s.noise == nil {
		s.noise = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, s.noiseSeed)
	}

	tt := float64(t)
	for i := range s.particles {
		p := &s.particles[i]
		x := float64(p.X * scale)
		y := float64(p.Y * scale)
		z := float64(p.Z * scale)

		p.VX += strength * float32(s.noise.Noise3D(x+tt, y, z))
		p.VY += strength * float32(s.noise.Noise3D(x+noiseOffset, y+tt, z))
		p.VZ += strength * float32(s.noise.Noise3D(x, y+noiseOffset, z+tt))
	}
}

// Particles returns the live buffer. The slice is invalidated by the next
// Initialize or Teardown and must not be retained past them.
func (s *Simulator) Particles() []Particle {
	return s.particles
}

// Count returns the number of particles in the buffer.
func (s *Simulator) Count() int {
	return len(s.particles)
}

// Clock returns the accumulated simulation time in seconds.
func (s *Simulator) Clock() float32 {
	return s.clock
}

// Stats reports what happened during the last Step.
func (s *Simulator) Stats() StepStats {
	return s.stats
}

// Teardown releases the buffer. Safe to call repeatedly.
func (s *Simulator) Teardown() {
	if s.particles == nil {
		return
	}
	s.log.Debug("particle buffer released", zap.Int("count", len(s.particles)))
	s.particles = nil
	s.stats = StepStats{}
}

func (s *Simulator) uniform(lo, hi float32) float32 {
	return lo + s.rng.Float32()*(hi-lo)
}
