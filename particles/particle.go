package particles

import "unsafe"

// Particle is a single simulated point sprite. The field order is a binary
// layout contract: renderers outside the Go heap read it by raw offset.
type Particle struct {
	X, Y, Z    float32 // Position
	VX, VY, VZ float32 // Velocity, units per second
	Life       float32 // Remaining lifespan fraction, may dip below 0 before respawn
	Size       float32 // Render scale hint
	R, G, B, A float32 // Color; A is recomputed every step
	Twinkle    float32 // Phase in [0, 2π)
	PulseSpeed float32 // Radians per second
	Brightness float32 // Per-particle multiplier
}

// Layout of a Particle record
const (
	ParticleFloats = 15
	ParticleSize   = ParticleFloats * 4

	OffsetPosition   = 0
	OffsetVelocity   = 12
	OffsetLife       = 24
	OffsetSize       = 28
	OffsetColor      = 32
	OffsetTwinkle    = 48
	OffsetPulseSpeed = 52
	OffsetBrightness = 56
)

// Compile-time check that Particle has no padding
var _ [ParticleSize - unsafe.Sizeof(Particle{})]struct{}
var _ [unsafe.Sizeof(Particle{}) - ParticleSize]struct{}
