package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Tuning is the subset of simulation parameters adjustable at runtime.
type Tuning struct {
	Gravity         float32 `toml:"gravity"`
	Damping         float32 `toml:"damping"`
	AttractStrength float32 `toml:"attract_strength"`
}

// SaveTuning writes t to path as TOML.
func SaveTuning(path string, t Tuning) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create tuning %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(t); err != nil {
		f.Close()
		return fmt.Errorf("encode tuning %s: %w", path, err)
	}
	return f.Close()
}

// LoadTuning reads a file written by SaveTuning. Missing keys keep the
// values from base.
func LoadTuning(path string, base Tuning) (Tuning, error) {
	t := base
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return base, fmt.Errorf("load tuning %s: %w", path, err)
	}
	return t, nil
}
