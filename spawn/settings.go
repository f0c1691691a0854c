// Package spawn releases enemies into the arena in timed waves.
package spawn

import "github.com/milk9111/melee/common"

const minMiniWaveInterval = 0.0001

// Settings tunes one spawner.
type Settings struct {
	// Desired is how many enemies a wave tries to add.
	Desired int `yaml:"desired"`
	// MaxPopulation is the population this spawner aims to stay under.
	MaxPopulation int `yaml:"max_population"`
	// OverSpawn is how many enemies a wave may still add once MaxPopulation
	// has been reached.
	OverSpawn int `yaml:"over_spawn"`
	// Absolute caps the population regardless of OverSpawn.
	Absolute         int     `yaml:"absolute"`
	WaveSeparation   float64 `yaml:"wave_separation"`
	MiniWaveInterval float64 `yaml:"mini_wave_interval"`
}

func DefaultSettings() Settings {
	return Settings{
		Desired:          5,
		MaxPopulation:    5,
		OverSpawn:        2,
		Absolute:         12,
		WaveSeparation:   5,
		MiniWaveInterval: 0.01,
	}
}

// Sanitize clamps counts to be non-negative and keeps the mini-wave interval
// above a minimum.
func (s *Settings) Sanitize() {
	s.Desired = max(s.Desired, 0)
	s.MaxPopulation = max(s.MaxPopulation, 0)
	s.OverSpawn = max(s.OverSpawn, 0)
	s.MiniWaveInterval = max(s.MiniWaveInterval, minMiniWaveInterval)
}

// AmountToSpawn is the size of the next wave given the active population.
func (s Settings) AmountToSpawn(active int) int {
	amount := s.Desired
	roof := s.MaxPopulation + s.OverSpawn - active
	if roof >= s.OverSpawn {
		amount = int(common.Clamp(float64(amount), float64(s.OverSpawn), float64(roof)))
	} else {
		amount = s.OverSpawn
	}
	amount = min(amount, s.Absolute-active)
	return max(amount, 0)
}
