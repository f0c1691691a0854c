package entity

// Stats is the combat block every agent carries.
type Stats struct {
	CurrentHealth float64 `yaml:"current_health"`
	MaxHealth     float64 `yaml:"max_health"`
	Strength      float64 `yaml:"strength"`
	Defense       float64 `yaml:"defense"`
}

// DefaultStats returns the stats a freshly authored agent starts with.
func DefaultStats() Stats {
	return Stats{CurrentHealth: 100, MaxHealth: 100, Strength: 10, Defense: 5}
}

// ReceiveDamage subtracts strength less defense from health. The difference
// is not clamped: a defense above the incoming strength heals.
func (s *Stats) ReceiveDamage(strength float64) float64 {
	if s == nil {
		return 0
	}
	damage := strength - s.Defense
	s.CurrentHealth -= damage
	return damage
}

func (s *Stats) ReceiveHealing(amount float64) {
	if s == nil {
		return
	}
	s.CurrentHealth += amount
}

func (s *Stats) HealToFull() {
	if s == nil {
		return
	}
	s.CurrentHealth = s.MaxHealth
}

// AttackStrength is the strength this agent hits with.
func (s *Stats) AttackStrength() float64 {
	if s == nil {
		return 0
	}
	return s.Strength
}

func (s *Stats) IsDead() bool {
	return s != nil && s.CurrentHealth <= 0
}

func (s *Stats) Die() {
	if s == nil {
		return
	}
	s.CurrentHealth = 0
}

// CopyFrom overwrites every field with other's values.
func (s *Stats) CopyFrom(other Stats) {
	if s == nil {
		return
	}
	*s = other
}

// HealthRatio is current over max health, 0 when max is unset.
func (s *Stats) HealthRatio() float64 {
	if s == nil || s.MaxHealth <= 0 {
		return 0
	}
	return s.CurrentHealth / s.MaxHealth
}
