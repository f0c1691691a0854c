package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Console)
	assert.Equal(t, int64(1), cfg.Sim.Seed)
	assert.Equal(t, 60, cfg.Sim.TickRate)
	assert.Equal(t, time.Minute, cfg.Sim.Duration)
	assert.Equal(t, 32, cfg.Sim.PoolCapacity)
	assert.Equal(t, "prefabs", cfg.Prefabs.Dir)
	assert.False(t, cfg.Prefabs.Watch)
	assert.False(t, cfg.Recorder.Enabled)
	assert.Equal(t, "arena.db", cfg.Recorder.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3600, cfg.Sim.Ticks())
}

func TestPrecedence(t *testing.T) {
	path := writeConfig(t, `
log:
  level: warn
sim:
  seed: 9
  tickRate: 30
  duration: 10s
`)
	t.Setenv("MELEE_SIM_SEED", "42")

	flags := Flags("test")
	require.NoError(t, flags.Parse([]string{"--tick-rate=120"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "file beats defaults")
	assert.Equal(t, int64(42), cfg.Sim.Seed, "env beats file")
	assert.Equal(t, 120, cfg.Sim.TickRate, "flags beat file")
	assert.Equal(t, 10*time.Second, cfg.Sim.Duration)
	assert.InDelta(t, 1.0/120, cfg.Sim.Step(), 1e-12)
}

func TestUnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "sim:\n  tickRate: 30\n")
	flags := Flags("test")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Sim.TickRate)
}

func TestRecordFlagEnablesRecorder(t *testing.T) {
	flags := Flags("test")
	require.NoError(t, flags.Parse([]string{"--record", "run.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.True(t, cfg.Recorder.Enabled)
	assert.Equal(t, "run.db", cfg.Recorder.Path)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "nope.yaml"), want: "config: read"},
		{name: "bad tick rate", path: writeConfig(t, "sim:\n  tickRate: 0\n"), want: "sim.tickRate"},
		{name: "bad pool", path: writeConfig(t, "sim:\n  poolCapacity: -1\n"), want: "sim.poolCapacity"},
		{name: "recorder without path", path: writeConfig(t, "recorder:\n  enabled: true\n  path: \"\"\n"), want: "recorder.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
