package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/config"
	"github.com/milk9111/melee/director"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/entity"
	"github.com/milk9111/melee/logging"
	"github.com/milk9111/melee/physics"
	"github.com/milk9111/melee/prefabs"
	"github.com/milk9111/melee/script"
	"github.com/milk9111/melee/spawn"
	"github.com/milk9111/melee/telemetry"
	"github.com/rs/zerolog"
)

// Arena is a headless fight: a player guarding a payload against waves of
// directed enemies.
type Arena struct {
	cfg     config.Config
	log     zerolog.Logger
	world   *ecs.World
	space   *physics.Space
	metrics *telemetry.Instruments

	playerCfg *agent.PlayerSettings
	enemyCfg  *agent.EnemySettings
	brainName string
	brains    *brainBank

	player   *agent.Player
	payload  *agent.Payload
	director *director.Director
	spawner  *spawn.Controller
	pilot    *pilot
	reloader *prefabs.Reloader
}

func newArena(cfg config.Config, log zerolog.Logger, metrics *telemetry.Instruments) (*Arena, error) {
	prefabs.SetDir(cfg.Prefabs.Dir)

	world := ecs.NewWorld()
	log = logging.WithTick(log, world.Tick)

	playerCfg, err := prefabs.LoadPlayer(log)
	if err != nil {
		return nil, err
	}
	enemySpec, err := prefabs.LoadEnemy(log)
	if err != nil {
		return nil, err
	}
	payloadCfg, err := prefabs.LoadPayload()
	if err != nil {
		return nil, err
	}
	dirCfg, err := prefabs.LoadDirector()
	if err != nil {
		return nil, err
	}
	dirCfg.Capacity = cfg.Sim.PoolCapacity
	spawnSpec, err := prefabs.LoadSpawner()
	if err != nil {
		return nil, err
	}

	a := &Arena{
		cfg:       cfg,
		log:       log,
		world:     world,
		space:     physics.NewSpace(),
		metrics:   metrics,
		playerCfg: &playerCfg,
		enemyCfg:  &enemySpec.EnemySettings,
		brainName: enemySpec.Brain,
		brains:    &brainBank{},
	}
	if a.brainName != "" {
		brain, err := script.Load(a.brainName)
		if err != nil {
			return nil, err
		}
		a.brains.swap(brain)
	}

	a.payload = agent.NewPayload(world.CreateEntity(), payloadCfg, world.Events())
	a.space.Track(a.payload, entity.LayerPayload)

	a.player = agent.NewPlayer(world.CreateEntity(), a.playerCfg, a.space, world.Events())
	a.player.SetPosition(cp.Vector{Y: a.payload.TargetRadius() + a.player.TargetRadius() + 1})
	a.space.Track(a.player, entity.LayerPlayer)

	a.director = director.New(dirCfg, a.enemyCfg, director.Deps{
		World:   world,
		Space:   a.space,
		Rand:    common.NewRand(cfg.Sim.Seed),
		Metrics: metrics,
		Logger:  log,
		Brain:   a.brains.forSlot,
	})
	a.director.SetAbsoluteTarget(a.payload)
	a.spawner = spawn.NewController(spawnSpec.Settings, spawnSpec.Zone, a.director, common.NewRand(cfg.Sim.Seed+1), log)
	a.pilot = newPilot(a.player, a.payload, a.space, func() float64 { return a.playerCfg.LockOn.AttackDistance })

	players := agent.Group{a.player}
	world.AddSystem(a.pilot)
	world.AddSystem(agent.NewAgentSystem(players, a.director))
	world.AddSystem(a.director)
	world.AddSystem(a.spawner)
	world.AddSystem(agent.NewActionSystem(players, a.director))
	world.AddSystem(a.space)
	world.AddSink(metrics)

	if err := metrics.ObserveActive(a.director.Count); err != nil {
		return nil, err
	}
	return a, nil
}

// AddSink registers an extra event consumer.
func (a *Arena) AddSink(s ecs.EventSink) {
	a.world.AddSink(s)
}

// Run advances the arena a fixed number of ticks. It stops early when ctx
// is done or the payload is destroyed.
func (a *Arena) Run(ctx context.Context, ticks int) error {
	step := a.cfg.Sim.Step()
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.reloader.Drain()
		a.world.Update(step)
		if a.payload.Stats().IsDead() {
			a.log.Warn().Float64("elapsed", a.world.Elapsed()).Msg("payload destroyed")
			return nil
		}
	}
	return nil
}

// Watch hot reloads tuning from w.
func (a *Arena) Watch(w *prefabs.Watcher) {
	r := prefabs.NewReloader(w, a.log)
	r.Handle(prefabs.DirectorFile, a.reloadDirector)
	r.Handle(prefabs.SpawnerFile, a.reloadSpawner)
	r.Handle(prefabs.PlayerFile, a.reloadPlayer)
	r.Handle(prefabs.EnemyFile, a.reloadEnemy)
	r.Handle("sword.yaml", a.reloadWeapons)
	r.Handle("claws.yaml", a.reloadWeapons)
	if a.brainName != "" {
		r.Handle(a.brainName, a.reloadBrain)
	}
	a.reloader = r
}

func (a *Arena) reloadDirector() error {
	cfg, err := prefabs.LoadDirector()
	if err != nil {
		return err
	}
	a.director.SetSettings(cfg)
	return nil
}

func (a *Arena) reloadSpawner() error {
	spec, err := prefabs.LoadSpawner()
	if err != nil {
		return err
	}
	a.spawner.SetSettings(spec.Settings)
	a.spawner.SetZone(spec.Zone)
	return nil
}

func (a *Arena) reloadPlayer() error {
	cfg, err := prefabs.LoadPlayer(a.log)
	if err != nil {
		return err
	}
	*a.playerCfg = cfg
	return nil
}

// reloadEnemy updates the shared enemy settings. Active enemies see new
// action tuning immediately and the rest on their next spawn.
func (a *Arena) reloadEnemy() error {
	spec, err := prefabs.LoadEnemy(a.log)
	if err != nil {
		return err
	}
	*a.enemyCfg = spec.EnemySettings
	return nil
}

func (a *Arena) reloadWeapons() error {
	if err := a.reloadPlayer(); err != nil {
		return err
	}
	return a.reloadEnemy()
}

func (a *Arena) reloadBrain() error {
	brain, err := script.Load(a.brainName)
	if err != nil {
		return err
	}
	a.brains.swap(brain)
	return nil
}

// watchDirs lists the prefab directory and its scripts directory.
func watchDirs(dir string) []string {
	return []string{dir, filepath.Join(dir, "scripts")}
}

// Summary logs the run totals.
func (a *Arena) Summary() telemetry.Totals {
	t := a.metrics.Totals()
	a.log.Info().
		Float64("elapsed", a.world.Elapsed()).
		Int64("spawned", t.Spawned).
		Int64("despawned", t.Despawned).
		Int64("granted", t.Granted).
		Int64("hits", t.Hits).
		Int64("deaths", t.Deaths).
		Int64("pool_exhausted", t.PoolExhausted).
		Float64("damage", t.Damage).
		Int("active", a.director.Count()).
		Str("payload_health", fmt.Sprintf("%.0f/%.0f", a.payload.Stats().CurrentHealth, a.payload.Stats().MaxHealth)).
		Str("player_health", fmt.Sprintf("%.0f/%.0f", a.player.Stats().CurrentHealth, a.player.Stats().MaxHealth)).
		Msg("arena finished")
	return t
}
