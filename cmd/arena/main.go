// Command arena runs a headless melee simulation: a scripted player guards
// a payload against directed waves of enemies.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/milk9111/melee/config"
	"github.com/milk9111/melee/logging"
	"github.com/milk9111/melee/prefabs"
	"github.com/milk9111/melee/recorder"
	"github.com/milk9111/melee/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "arena:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := config.Flags("arena")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	path, _ := flags.GetString("config")

	cfg, err := config.Load(path, flags)
	if err != nil {
		return err
	}
	log, err := logging.New(out, cfg.Log.Level, cfg.Log.Console)
	if err != nil {
		return err
	}

	metrics := telemetry.Nop()
	if cfg.Metrics.Enabled {
		if metrics, err = telemetry.New(telemetry.Meter()); err != nil {
			return err
		}
	}

	arena, err := newArena(cfg, log, metrics)
	if err != nil {
		return err
	}
	log = arena.log

	if cfg.Recorder.Enabled {
		rec, err := recorder.Open(cfg.Recorder.Path, recorder.Options{}, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(arena.world.Tick()); err != nil {
				log.Error().Err(err).Msg("closing recorder")
			}
		}()
		if _, err := rec.BeginRun(cfg.Sim.Seed, cfg.Sim.TickRate); err != nil {
			return err
		}
		arena.AddSink(rec)
	}

	if cfg.Prefabs.Watch {
		w, err := watch(cfg.Prefabs.Dir, log)
		if err != nil {
			return err
		}
		defer w.Close()
		arena.Watch(w)
	}

	log.Info().
		Int64("seed", cfg.Sim.Seed).
		Int("tick_rate", cfg.Sim.TickRate).
		Dur("duration", cfg.Sim.Duration).
		Msg("arena starting")

	err = arena.Run(ctx, cfg.Sim.Ticks())
	arena.Summary()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func watch(dir string, log zerolog.Logger) (*prefabs.Watcher, error) {
	var dirs []string
	for _, d := range watchDirs(dir) {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			dirs = append(dirs, d)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("arena: nothing to watch under %s", dir)
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return nil, fmt.Errorf("arena: watch %s: %w", dir, err)
	}
	log.Info().Strs("dirs", dirs).Msg("watching prefabs")
	return w, nil
}
