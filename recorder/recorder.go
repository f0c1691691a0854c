// Package recorder persists combat events of a simulation run to sqlite.
package recorder

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/milk9111/melee/ecs"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultBatchSize = 500

var ErrClosed = errors.New("recorder: closed")

type Options struct {
	// BatchSize is how many events are buffered before a write.
	BatchSize int
	// Animations includes animation events, which dominate a run by volume.
	Animations bool
}

// Recorder is an ecs.EventSink writing events into a Run. Write failures
// are logged and counted; the simulation never stops for them.
type Recorder struct {
	db     *gorm.DB
	opts   Options
	log    zerolog.Logger
	run    *Run
	buf    []EventRecord
	failed int
	closed bool
}

// Open creates or opens the sqlite database at path and migrates the
// schema. An empty path uses a private in-memory database.
func Open(path string, opts Options, log zerolog.Logger) (*Recorder, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        opts.BatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("recorder: open %s: %w", path, err)
	}
	if path == "" {
		// every pooled connection to :memory: would see its own database
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("recorder: migrate: %w", err)
	}

	log.Info().Str("path", path).Msg("recording combat events")
	return &Recorder{db: db, opts: opts, log: log}, nil
}

// BeginRun starts a new run; events consumed afterwards belong to it.
func (r *Recorder) BeginRun(seed int64, tickRate int) (uint, error) {
	if r == nil {
		return 0, nil
	}
	if r.closed {
		return 0, ErrClosed
	}
	if err := r.Flush(); err != nil {
		return 0, err
	}
	run := &Run{Seed: seed, TickRate: tickRate, StartedAt: time.Now().UTC()}
	if err := r.db.Create(run).Error; err != nil {
		return 0, fmt.Errorf("recorder: begin run: %w", err)
	}
	r.run = run
	return run.ID, nil
}

// Consume implements ecs.EventSink.
func (r *Recorder) Consume(tick uint64, events []ecs.Event) {
	if r == nil || r.closed || r.run == nil {
		return
	}
	for _, evt := range events {
		if evt.Type == ecs.EventAnimation && !r.opts.Animations {
			continue
		}
		r.buf = append(r.buf, flatten(r.run.ID, tick, evt))
	}
	if len(r.buf) >= r.opts.BatchSize {
		if err := r.Flush(); err != nil {
			r.log.Warn().Err(err).Int("count", len(r.buf)).Msg("dropping combat events")
			r.buf = r.buf[:0]
		}
	}
}

// Flush writes buffered events.
func (r *Recorder) Flush() error {
	if r == nil || len(r.buf) == 0 {
		return nil
	}
	if err := r.db.CreateInBatches(&r.buf, r.opts.BatchSize).Error; err != nil {
		r.failed += len(r.buf)
		return fmt.Errorf("recorder: write events: %w", err)
	}
	r.buf = r.buf[:0]
	return nil
}

// Failed is how many events could not be written.
func (r *Recorder) Failed() int {
	if r == nil {
		return 0
	}
	return r.failed
}

// Counts tallies the current run's recorded events by type.
func (r *Recorder) Counts() (map[ecs.EventType]int64, error) {
	out := make(map[ecs.EventType]int64)
	if r == nil || r.run == nil {
		return out, nil
	}
	var rows []struct {
		Type  string
		Total int64
	}
	err := r.db.Model(&EventRecord{}).
		Select("type, count(*) as total").
		Where("run_id = ?", r.run.ID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recorder: count events: %w", err)
	}
	for _, row := range rows {
		out[ecs.EventType(row.Type)] = row.Total
	}
	return out, nil
}

// Events returns the current run's events of one type in tick order. An
// empty type returns every event.
func (r *Recorder) Events(typ ecs.EventType) ([]EventRecord, error) {
	if r == nil || r.run == nil {
		return nil, nil
	}
	q := r.db.Where("run_id = ?", r.run.ID)
	if typ != "" {
		q = q.Where("type = ?", string(typ))
	}
	var out []EventRecord
	if err := q.Order("tick, id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("recorder: query events: %w", err)
	}
	return out, nil
}

// Close flushes, stamps the run with its final tick and closes the database.
func (r *Recorder) Close(ticks uint64) error {
	if r == nil || r.closed {
		return nil
	}
	flushErr := r.Flush()
	var runErr error
	if r.run != nil {
		runErr = r.db.Model(r.run).Update("ticks", ticks).Error
	}
	r.closed = true

	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Join(flushErr, runErr, err)
	}
	return errors.Join(flushErr, runErr, sqlDB.Close())
}

func flatten(run uint, tick uint64, evt ecs.Event) EventRecord {
	rec := EventRecord{
		RunID:       run,
		Tick:        tick,
		Type:        string(evt.Type),
		Entity:      uint64(evt.Entity),
		EntityIndex: evt.Entity.Index(),
	}
	switch d := evt.Data.(type) {
	case ecs.ActionEvent:
		rec.Action = d.Action
		rec.Target = uint64(d.Target)
	case ecs.AnimationEvent:
		rec.Clip = d.Clip
	case ecs.HitEvent:
		rec.Target = uint64(d.Attacker)
		rec.Damage = d.Damage
		rec.Health = d.Health
	case ecs.SpawnEvent:
		rec.X, rec.Y = d.X, d.Y
	}
	return rec
}
