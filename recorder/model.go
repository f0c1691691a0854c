package recorder

import (
	"time"

	"gorm.io/gorm"
)

// Run is one simulation run.
type Run struct {
	gorm.Model
	Seed      int64
	TickRate  int
	StartedAt time.Time
	Ticks     uint64
	Events    []EventRecord `gorm:"constraint:OnDelete:CASCADE;foreignKey:RunID"`
}

// EventRecord is a flattened ecs.Event.
type EventRecord struct {
	ID          uint   `gorm:"primarykey"`
	RunID       uint   `gorm:"index:idx_event_run_tick"`
	Tick        uint64 `gorm:"index:idx_event_run_tick"`
	Type        string `gorm:"size:32;index"`
	Entity      uint64 `gorm:"index"`
	Action      string `gorm:"size:64"`
	Clip        string `gorm:"size:64"`
	EntityIndex int
	Target      uint64
	Damage      float64
	Health      float64
	X           float64
	Y           float64
}

var models = []any{&Run{}, &EventRecord{}}
