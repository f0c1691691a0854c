// Package config loads process settings for the arena simulation. Gameplay
// tuning lives in prefabs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "MELEE"

type LogConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type SimConfig struct {
	Seed         int64         `mapstructure:"seed"`
	TickRate     int           `mapstructure:"tickRate"`
	Duration     time.Duration `mapstructure:"duration"`
	PoolCapacity int           `mapstructure:"poolCapacity"`
}

// Step is the fixed tick length in seconds.
func (s SimConfig) Step() float64 {
	if s.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(s.TickRate)
}

// Ticks is how many fixed steps cover Duration.
func (s SimConfig) Ticks() int {
	return int(s.Duration.Seconds() * float64(max(s.TickRate, 1)))
}

type PrefabsConfig struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type RecorderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Sim      SimConfig      `mapstructure:"sim"`
	Prefabs  PrefabsConfig  `mapstructure:"prefabs"`
	Recorder RecorderConfig `mapstructure:"recorder"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"seed":        "sim.seed",
	"duration":    "sim.duration",
	"tick-rate":   "sim.tickRate",
	"pool":        "sim.poolCapacity",
	"log-level":   "log.level",
	"log-console": "log.console",
	"prefabs":     "prefabs.dir",
	"watch":       "prefabs.watch",
	"record":      "recorder.path",
	"metrics":     "metrics.enabled",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)

	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.tickRate", 60)
	v.SetDefault("sim.duration", "60s")
	v.SetDefault("sim.poolCapacity", 32)

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", false)

	v.SetDefault("recorder.enabled", false)
	v.SetDefault("recorder.path", "arena.db")

	v.SetDefault("metrics.enabled", true)
}

// Flags registers the command line flags understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML config file")
	fs.Int64("seed", 1, "random seed")
	fs.Duration("duration", time.Minute, "simulated time to run")
	fs.Int("tick-rate", 60, "fixed ticks per simulated second")
	fs.Int("pool", 32, "enemy pool capacity")
	fs.String("log-level", "info", "log level")
	fs.Bool("log-console", true, "human readable logs")
	fs.String("prefabs", "prefabs", "directory of prefab overrides")
	fs.Bool("watch", false, "hot reload prefab changes")
	fs.String("record", "", "record combat events to this sqlite file")
	fs.Bool("metrics", true, "collect metrics")
	return fs
}

// Load resolves settings from defaults, an optional config file, MELEE_*
// environment variables and flags, in increasing priority. With an empty
// path a melee.yaml in the working directory is used when present.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("melee")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: read melee.yaml: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("config: bind %s: %w", name, err)
			}
		}
		if f := flags.Lookup("record"); f != nil && f.Changed && f.Value.String() != "" {
			v.Set("recorder.enabled", true)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("config: sim.tickRate must be positive, got %d", c.Sim.TickRate)
	}
	if c.Sim.Duration < 0 {
		return fmt.Errorf("config: sim.duration must not be negative")
	}
	if c.Sim.PoolCapacity <= 0 {
		return fmt.Errorf("config: sim.poolCapacity must be positive, got %d", c.Sim.PoolCapacity)
	}
	if c.Recorder.Enabled && c.Recorder.Path == "" {
		return fmt.Errorf("config: recorder.path is required when recording")
	}
	return nil
}
