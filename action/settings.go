package action

import (
	"errors"
	"fmt"

	"github.com/milk9111/melee/common"
)

var ErrInvalidSettings = errors.New("action: invalid settings")

// Animation describes the clip an action plays when it begins.
type Animation struct {
	Clip           string  `yaml:"clip"`
	Transition     float64 `yaml:"transition"`
	DriveParameter string  `yaml:"drive_parameter"`
	DriveValue     float64 `yaml:"drive_value"`
}

// Settings is the immutable tuning shared by every move action. Actions keep
// a pointer to it, so edits made by a hot reload apply on the next begin.
type Settings struct {
	Name          string       `yaml:"name"`
	ReadyTime     float64      `yaml:"ready_time"`
	MoveTime      float64      `yaml:"move_time"`
	VelocityCurve common.Curve `yaml:"velocity_curve"`
	Animation     Animation    `yaml:"animation"`
}

// AttackSettings extends Settings with the hit window and the weapon volume.
type AttackSettings struct {
	Settings       `yaml:",inline"`
	AttackDistance float64 `yaml:"attack_distance"`
	HitEnable      float64 `yaml:"hit_enable"`
	HitDisable     float64 `yaml:"hit_disable"`
	HitRadius      float64 `yaml:"hit_radius"`
	HitReach       float64 `yaml:"hit_reach"`
}

func DefaultSettings() Settings {
	return Settings{
		ReadyTime:     1,
		MoveTime:      1,
		VelocityCurve: common.Constant(1),
		Animation:     Animation{Transition: 0.1, DriveValue: 1},
	}
}

func DefaultAttackSettings() AttackSettings {
	return AttackSettings{
		Settings:       DefaultSettings(),
		AttackDistance: 1,
		HitEnable:      0.2,
		HitDisable:     0.8,
		HitRadius:      0.75,
		HitReach:       1,
	}
}

// Window returns the fractional hit window of the attack.
func (s *AttackSettings) Window() Window {
	if s == nil {
		return Window{}
	}
	return Window{Enable: s.HitEnable, Disable: s.HitDisable}
}

// Validate rejects settings that would make an action never progress.
// Hit windows are deliberately not checked.
func (s *Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil settings", ErrInvalidSettings)
	}
	if s.MoveTime <= 0 {
		return fmt.Errorf("%w: %q move_time must be positive, got %v", ErrInvalidSettings, s.Name, s.MoveTime)
	}
	if s.Animation.DriveValue < 0 {
		return fmt.Errorf("%w: %q drive_value must not be negative", ErrInvalidSettings, s.Name)
	}
	return nil
}

func (s *AttackSettings) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil attack settings", ErrInvalidSettings)
	}
	if err := s.Settings.Validate(); err != nil {
		return err
	}
	if s.HitRadius <= 0 {
		return fmt.Errorf("%w: %q hit_radius must be positive", ErrInvalidSettings, s.Name)
	}
	return nil
}

func (s *Settings) timeSpeed() float64 {
	if s.Animation.DriveValue <= 0 {
		return 1
	}
	return s.Animation.DriveValue
}
