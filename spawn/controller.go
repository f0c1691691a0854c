package spawn

import (
	"math/rand"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/melee/agent"
	"github.com/milk9111/melee/common"
	"github.com/milk9111/melee/ecs"
	"github.com/milk9111/melee/timer"
	"github.com/rs/zerolog"
)

// Spawner activates enemies. director.Director implements it.
type Spawner interface {
	SpawnEnemy(pos, heading cp.Vector) (*agent.Enemy, bool)
	Count() int
}

// Controller starts a wave every WaveSeparation seconds. A wave is released
// as a mini-wave, one enemy per MiniWaveInterval.
type Controller struct {
	cfg     Settings
	zone    Zone
	spawner Spawner
	rng     *rand.Rand
	log     zerolog.Logger

	wave      timer.Timer
	mini      timer.Timer
	remaining int
}

func NewController(cfg Settings, zone Zone, spawner Spawner, rng *rand.Rand, log zerolog.Logger) *Controller {
	cfg.Sanitize()
	if rng == nil {
		rng = common.NewRand(1)
	}
	return &Controller{
		cfg:     cfg,
		zone:    zone,
		spawner: spawner,
		rng:     rng,
		log:     log.With().Str("component", "spawner").Logger(),
		wave:    timer.New(cfg.WaveSeparation),
		mini:    timer.New(cfg.MiniWaveInterval),
	}
}

// Update implements ecs.System.
func (c *Controller) Update(w *ecs.World) {
	c.Step(w.DeltaTime())
}

// Step advances both timers. At most one enemy is spawned per step.
func (c *Controller) Step(dt float64) {
	c.wave.Tick(dt)
	if c.wave.Reached() {
		c.wave.SetTarget(c.cfg.WaveSeparation)
		c.wave.SubtractTargetTime()
		c.InitiateMiniWave(c.spawner.Count())
	}

	if c.remaining <= 0 {
		return
	}
	c.mini.Tick(dt)
	if c.mini.Reached() {
		c.mini.SubtractTargetTime()
		c.remaining--
		c.spawnOne()
	}
}

// InitiateMiniWave schedules the next wave for the given population.
func (c *Controller) InitiateMiniWave(active int) {
	c.remaining = c.cfg.AmountToSpawn(active)
	c.mini.SetTarget(c.cfg.MiniWaveInterval)
	c.log.Debug().Int("active", active).Int("count", c.remaining).Msg("wave started")
}

// ForceSpawn spawns n enemies immediately and returns how many succeeded.
func (c *Controller) ForceSpawn(n int) int {
	spawned := 0
	for i := 0; i < n; i++ {
		if c.spawnOne() {
			spawned++
		}
	}
	return spawned
}

// Reset rewinds both timers and drops any wave in progress.
func (c *Controller) Reset() {
	c.wave.Reset()
	c.mini.Reset()
	c.remaining = 0
}

// Remaining is how many enemies the current wave has yet to spawn.
func (c *Controller) Remaining() int { return c.remaining }

func (c *Controller) Settings() Settings { return c.cfg }

// SetSettings applies new tuning from the next wave on.
func (c *Controller) SetSettings(cfg Settings) {
	cfg.Sanitize()
	c.cfg = cfg
}

func (c *Controller) SetZone(z Zone) { c.zone = z }

func (c *Controller) spawnOne() bool {
	pos := c.zone.RandomPosition(c.rng)
	_, ok := c.spawner.SpawnEnemy(pos, c.zone.RandomHeading(c.rng))
	if !ok {
		c.log.Debug().Float64("x", pos.X).Float64("y", pos.Y).Msg("spawn rejected")
	}
	return ok
}
