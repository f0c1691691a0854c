package agent

import (
	"fmt"

	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/threat"
)

// EnemySettings tunes one enemy archetype.
type EnemySettings struct {
	Name   string       `yaml:"name"`
	Radius float64      `yaml:"radius"`
	Speed  float64      `yaml:"speed"`
	Stats  entity.Stats `yaml:"stats"`
	// RetargetDistance is how far the target may drift from the chase goal
	// before the goal is moved.
	RetargetDistance float64 `yaml:"retarget_distance"`
	// StopDistance is the surface gap at which a chasing enemy stops closing.
	StopDistance float64 `yaml:"stop_distance"`
	// DeadTime is how long a corpse lingers before returning to the pool.
	DeadTime float64      `yaml:"dead_time"`
	HitAggro float64      `yaml:"hit_aggro"`
	HitMask  entity.Layer `yaml:"hit_mask"`
	// ChaseAbsoluteTarget registers the director's absolute target on spawn.
	ChaseAbsoluteTarget bool `yaml:"chase_absolute_target"`

	Threat threat.Config         `yaml:"threat"`
	Attack action.AttackSettings `yaml:"attack"`
	Hurt   action.Settings       `yaml:"hurt"`
	Spawn  action.Settings       `yaml:"spawn"`
}

func DefaultEnemySettings() EnemySettings {
	attack := action.DefaultAttackSettings()
	attack.Name = "enemy_swing"
	attack.Animation.Clip = "swing"

	hurt := action.DefaultSettings()
	hurt.Name = "enemy_hurt"
	hurt.MoveTime = 0.4
	hurt.VelocityCurve = common.Linear(1, 0)
	hurt.Animation.Clip = "hurt"

	spawn := action.DefaultSettings()
	spawn.Name = "enemy_spawn"
	spawn.VelocityCurve = common.Linear(0, 1)
	spawn.Animation.Clip = "rise"

	return EnemySettings{
		Name:                "grunt",
		Radius:              0.5,
		Speed:               3.5,
		Stats:               entity.DefaultStats(),
		RetargetDistance:    0.2,
		StopDistance:        0.5,
		DeadTime:            1,
		HitAggro:            10,
		HitMask:             entity.LayerPlayer | entity.LayerPayload,
		ChaseAbsoluteTarget: true,
		Threat:              threat.DefaultConfig(),
		Attack:              attack,
		Hurt:                hurt,
		Spawn:               spawn,
	}
}

func (s *EnemySettings) Validate() error {
	if s.Radius <= 0 || s.Speed < 0 {
		return fmt.Errorf("%w: enemy %q radius must be positive and speed non-negative", action.ErrInvalidSettings, s.Name)
	}
	if err := s.Attack.Validate(); err != nil {
		return fmt.Errorf("enemy %q attack: %w", s.Name, err)
	}
	if err := s.Hurt.Validate(); err != nil {
		return fmt.Errorf("enemy %q hurt: %w", s.Name, err)
	}
	if err := s.Spawn.Validate(); err != nil {
		return fmt.Errorf("enemy %q spawn: %w", s.Name, err)
	}
	return nil
}

// PlayerSettings tunes the player character.
type PlayerSettings struct {
	Name    string                `yaml:"name"`
	Radius  float64               `yaml:"radius"`
	Speed   float64               `yaml:"speed"`
	Stats   entity.Stats          `yaml:"stats"`
	HitMask entity.Layer          `yaml:"hit_mask"`
	Attack  action.AttackSettings `yaml:"attack"`
	LockOn  action.AttackSettings `yaml:"lock_on"`
	Hurt    action.Settings       `yaml:"hurt"`
}

func DefaultPlayerSettings() PlayerSettings {
	attack := action.DefaultAttackSettings()
	attack.Name = "slash"
	attack.MoveTime = 0.5
	attack.VelocityCurve = common.Linear(1, 0)
	attack.Animation.Clip = "slash"

	lockOn := action.DefaultAttackSettings()
	lockOn.Name = "lunge"
	lockOn.MoveTime = 0.6
	lockOn.VelocityCurve = common.Linear(2, 0)
	lockOn.Animation.Clip = "lunge"

	hurt := action.DefaultSettings()
	hurt.Name = "player_hurt"
	hurt.MoveTime = 0.3
	hurt.VelocityCurve = common.Linear(1, 0)
	hurt.Animation.Clip = "hurt"

	stats := entity.DefaultStats()
	stats.MaxHealth = 300
	stats.CurrentHealth = 300
	stats.Strength = 40

	return PlayerSettings{
		Name:    "player",
		Radius:  0.5,
		Speed:   6,
		Stats:   stats,
		HitMask: entity.LayerEnemy,
		Attack:  attack,
		LockOn:  lockOn,
		Hurt:    hurt,
	}
}

func (s *PlayerSettings) Validate() error {
	if s.Radius <= 0 || s.Speed < 0 {
		return fmt.Errorf("%w: player %q radius must be positive and speed non-negative", action.ErrInvalidSettings, s.Name)
	}
	if err := s.Attack.Validate(); err != nil {
		return fmt.Errorf("player %q attack: %w", s.Name, err)
	}
	if err := s.LockOn.Validate(); err != nil {
		return fmt.Errorf("player %q lock-on: %w", s.Name, err)
	}
	if err := s.Hurt.Validate(); err != nil {
		return fmt.Errorf("player %q hurt: %w", s.Name, err)
	}
	return nil
}

// PayloadSettings tunes the escorted objective.
type PayloadSettings struct {
	Name   string       `yaml:"name"`
	Radius float64      `yaml:"radius"`
	Stats  entity.Stats `yaml:"stats"`
}

func DefaultPayloadSettings() PayloadSettings {
	return PayloadSettings{
		Name:   "payload",
		Radius: 1,
		Stats:  entity.Stats{CurrentHealth: 500, MaxHealth: 500},
	}
}
