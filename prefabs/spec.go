package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/melee/action"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/director"
	"github.com/milk9111/melee/spawn"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is wrapped by every validation failure.
var ErrInvalidSpec = errors.New("prefabs: invalid spec")

const (
	PlayerFile   = "player.yaml"
	EnemyFile    = "enemy.yaml"
	PayloadFile  = "payload.yaml"
	DirectorFile = "director.yaml"
	SpawnerFile  = "spawner.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over spec, so fields missing from the file
// keep the values spec already holds.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

func invalid(filename string, err error) error {
	return fmt.Errorf("prefabs: %s: %w", filename, errors.Join(ErrInvalidSpec, err))
}

// WeaponSpec is a named set of attacks. Entries that fail to decode or
// validate are skipped.
type WeaponSpec struct {
	Name    string      `yaml:"name"`
	Actions []yaml.Node `yaml:"actions"`
}

// Weapon is a loaded WeaponSpec.
type Weapon struct {
	Name    string
	Actions []action.AttackSettings
}

// Action looks up an attack by name.
func (w *Weapon) Action(name string) (action.AttackSettings, bool) {
	for _, a := range w.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return action.AttackSettings{}, false
}

func LoadWeapon(filename string, log zerolog.Logger) (Weapon, error) {
	spec, err := LoadSpec[WeaponSpec](filename)
	if err != nil {
		return Weapon{}, err
	}
	w := Weapon{Name: spec.Name}
	for i := range spec.Actions {
		a := action.DefaultAttackSettings()
		if err := spec.Actions[i].Decode(&a); err != nil {
			log.Warn().Err(err).Str("weapon", filename).Int("index", i).Msg("skipping undecodable action")
			continue
		}
		if err := a.Validate(); err != nil {
			log.Warn().Err(err).Str("weapon", filename).Str("action", a.Name).Msg("skipping invalid action")
			continue
		}
		w.Actions = append(w.Actions, a)
	}
	if len(w.Actions) == 0 {
		return Weapon{}, invalid(filename, fmt.Errorf("weapon %q has no usable actions", spec.Name))
	}
	return w, nil
}

func resolveAttack(w Weapon, name, filename string) (action.AttackSettings, error) {
	a, ok := w.Action(name)
	if !ok {
		return a, invalid(filename, fmt.Errorf("weapon %q has no action %q", w.Name, name))
	}
	return a, nil
}

// PlayerSpec is the player prefab. Attacks are drawn from a weapon file.
type PlayerSpec struct {
	agent.PlayerSettings `yaml:",inline"`
	Weapon               string `yaml:"weapon"`
	AttackAction         string `yaml:"attack_action"`
	LockOnAction         string `yaml:"lock_on_action"`
}

func LoadPlayer(log zerolog.Logger) (agent.PlayerSettings, error) {
	spec := PlayerSpec{PlayerSettings: agent.DefaultPlayerSettings()}
	if err := LoadSpecInto(PlayerFile, &spec); err != nil {
		return agent.PlayerSettings{}, err
	}
	cfg := spec.PlayerSettings
	if spec.Weapon != "" {
		w, err := LoadWeapon(spec.Weapon, log)
		if err != nil {
			return agent.PlayerSettings{}, err
		}
		if cfg.Attack, err = resolveAttack(w, spec.AttackAction, PlayerFile); err != nil {
			return agent.PlayerSettings{}, err
		}
		if cfg.LockOn, err = resolveAttack(w, spec.LockOnAction, PlayerFile); err != nil {
			return agent.PlayerSettings{}, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return agent.PlayerSettings{}, invalid(PlayerFile, err)
	}
	return cfg, nil
}

// EnemySpec is the enemy prefab. Brain names an optional decision script.
type EnemySpec struct {
	agent.EnemySettings `yaml:",inline"`
	Weapon              string `yaml:"weapon"`
	AttackAction        string `yaml:"attack_action"`
	Brain               string `yaml:"brain"`
}

func LoadEnemy(log zerolog.Logger) (EnemySpec, error) {
	spec := EnemySpec{EnemySettings: agent.DefaultEnemySettings()}
	if err := LoadSpecInto(EnemyFile, &spec); err != nil {
		return EnemySpec{}, err
	}
	if spec.Weapon != "" {
		w, err := LoadWeapon(spec.Weapon, log)
		if err != nil {
			return EnemySpec{}, err
		}
		if spec.Attack, err = resolveAttack(w, spec.AttackAction, EnemyFile); err != nil {
			return EnemySpec{}, err
		}
	}
	if err := spec.Validate(); err != nil {
		return EnemySpec{}, invalid(EnemyFile, err)
	}
	return spec, nil
}

func LoadPayload() (agent.PayloadSettings, error) {
	cfg := agent.DefaultPayloadSettings()
	if err := LoadSpecInto(PayloadFile, &cfg); err != nil {
		return agent.PayloadSettings{}, err
	}
	if cfg.Radius <= 0 || cfg.Stats.MaxHealth <= 0 {
		return agent.PayloadSettings{}, invalid(PayloadFile, fmt.Errorf("payload needs a positive radius and max health"))
	}
	return cfg, nil
}

func LoadDirector() (director.Settings, error) {
	cfg := director.DefaultSettings()
	if err := LoadSpecInto(DirectorFile, &cfg); err != nil {
		return director.Settings{}, err
	}
	if err := cfg.Validate(); err != nil {
		return director.Settings{}, invalid(DirectorFile, err)
	}
	return cfg, nil
}

// SpawnerSpec is the spawn wave prefab.
type SpawnerSpec struct {
	spawn.Settings `yaml:",inline"`
	Zone           spawn.Zone `yaml:"zone"`
}

func LoadSpawner() (SpawnerSpec, error) {
	spec := SpawnerSpec{Settings: spawn.DefaultSettings()}
	if err := LoadSpecInto(SpawnerFile, &spec); err != nil {
		return SpawnerSpec{}, err
	}
	spec.Sanitize()
	return spec, nil
}
