package particles

import (
	"encoding/binary"
	"fmt"
	"io"
	"unsafe"
)

// Bytes returns the live buffer viewed as raw bytes in host byte order,
// ParticleSize bytes per particle. Same lifetime rules as Particles.
func (s *Simulator) Bytes() []byte {
	if len(s.particles) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s.particles[0])), len(s.particles)*ParticleSize)
}

// WriteTo streams the buffer as little-endian particle records.
func (s *Simulator) WriteTo(w io.Writer) (int64, error) {
	if len(s.particles) == 0 {
		return 0, nil
	}
	if err := binary.Write(w, binary.LittleEndian, s.particles); err != nil {
		return 0, fmt.Errorf("write %d particles: %w", len(s.particles), err)
	}
	return int64(len(s.particles) * ParticleSize), nil
}
