// Package telemetry counts combat activity. Counters are reported through
// OpenTelemetry and mirrored into in-process totals for run summaries.
package telemetry

import (
	"context"
	"fmt"

	"github.com/milk9111/melee/ecs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Totals are the counts accumulated since the instruments were created.
type Totals struct {
	Granted       int64
	Spawned       int64
	Despawned     int64
	Hits          int64
	Deaths        int64
	PoolExhausted int64
	Damage        float64
}

// Instruments is an ecs.EventSink that turns drained combat events into
// metrics.
type Instruments struct {
	meter metric.Meter

	granted   metric.Int64Counter
	spawned   metric.Int64Counter
	despawned metric.Int64Counter
	hits      metric.Int64Counter
	deaths    metric.Int64Counter
	exhausted metric.Int64Counter
	damage    metric.Float64Counter
	active    metric.Int64ObservableGauge

	totals Totals
}

// New creates the combat instruments on m.
func New(m metric.Meter) (*Instruments, error) {
	in := &Instruments{meter: m}

	var err error
	in.granted, err = m.Int64Counter(
		"melee.attacks.granted",
		metric.WithDescription("Attacks granted by the director"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating granted counter: %w", err)
	}

	in.spawned, err = m.Int64Counter(
		"melee.enemies.spawned",
		metric.WithDescription("Enemies activated from the pool"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating spawned counter: %w", err)
	}

	in.despawned, err = m.Int64Counter(
		"melee.enemies.despawned",
		metric.WithDescription("Enemies returned to the pool"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating despawned counter: %w", err)
	}

	in.hits, err = m.Int64Counter(
		"melee.hits",
		metric.WithDescription("Hits landed on any entity"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	in.deaths, err = m.Int64Counter(
		"melee.deaths",
		metric.WithDescription("Entities killed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deaths counter: %w", err)
	}

	in.exhausted, err = m.Int64Counter(
		"melee.pool.exhausted",
		metric.WithDescription("Spawn attempts rejected by a full pool"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating exhausted counter: %w", err)
	}

	in.damage, err = m.Float64Counter(
		"melee.damage",
		metric.WithDescription("Damage dealt, after defense"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating damage counter: %w", err)
	}

	in.active, err = m.Int64ObservableGauge(
		"melee.enemies.active",
		metric.WithDescription("Enemies currently active"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating active gauge: %w", err)
	}

	return in, nil
}

// Nop returns instruments backed by a no-op provider.
func Nop() *Instruments {
	in, _ := New(noop.NewMeterProvider().Meter(instrumentationName))
	return in
}

// ObserveActive reports count as the active enemy gauge.
func (in *Instruments) ObserveActive(count func() int) error {
	if in == nil || count == nil {
		return nil
	}
	_, err := in.meter.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(in.active, int64(count()))
			return nil
		},
		in.active,
	)
	if err != nil {
		return fmt.Errorf("registering active callback: %w", err)
	}
	return nil
}

// PoolExhausted records a rejected spawn.
func (in *Instruments) PoolExhausted(pool string) {
	if in == nil {
		return
	}
	in.totals.PoolExhausted++
	in.exhausted.Add(context.Background(), 1, metric.WithAttributes(attribute.String("pool", pool)))
}

// Consume implements ecs.EventSink.
func (in *Instruments) Consume(_ uint64, events []ecs.Event) {
	if in == nil {
		return
	}
	ctx := context.Background()
	for _, evt := range events {
		switch evt.Type {
		case ecs.EventAttackGranted:
			in.totals.Granted++
			name := ""
			if data, ok := evt.Data.(ecs.ActionEvent); ok {
				name = data.Action
			}
			in.granted.Add(ctx, 1, metric.WithAttributes(attribute.String("action", name)))
		case ecs.EventSpawned:
			in.totals.Spawned++
			in.spawned.Add(ctx, 1)
		case ecs.EventDespawned:
			in.totals.Despawned++
			in.despawned.Add(ctx, 1)
		case ecs.EventHit:
			in.totals.Hits++
			in.hits.Add(ctx, 1)
			if data, ok := evt.Data.(ecs.HitEvent); ok {
				in.totals.Damage += data.Damage
				// Counters are monotonic; defense above strength heals.
				if data.Damage > 0 {
					in.damage.Add(ctx, data.Damage)
				}
			}
		case ecs.EventDied:
			in.totals.Deaths++
			in.deaths.Add(ctx, 1)
		}
	}
}

// Totals returns the counts recorded so far.
func (in *Instruments) Totals() Totals {
	if in == nil {
		return Totals{}
	}
	return in.totals
}
