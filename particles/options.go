package particles

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Rand is the random source the simulator draws from. *math/rand.Rand
// satisfies it.
type Rand interface {
	Float32() float32
	Intn(n int) int
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(s *Simulator) {
		s.rng = r
	}
}

// WithSeed uses a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulator) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMaxParticles caps the count accepted by Initialize.
func WithMaxParticles(n int) Option {
	return func(s *Simulator) {
		if n >= 0 {
			s.maxParticles = n
		}
	}
}

// WithNoiseSeed seeds the turbulence noise field.
func WithNoiseSeed(seed int64) Option {
	return func(s *Simulator) {
		s.noiseSeed = seed
	}
}

func newTimeSeededRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Perlin parameters for Turbulence
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3

	// Decorrelates the per-axis samples
	noiseOffset = 31.7
)
