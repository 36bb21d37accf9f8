package combat

import (
	"go.uber.org/zap"

	"duelsim/internal/config"
)

type Event struct {
	T       int            `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Rand is the randomness source a battle draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Env carries everything a Battle needs from outside. Nil fields get defaults
// in NewBattle.
type Env struct {
	Rng       Rand
	Settings  config.Settings
	Log       *zap.SugaredLogger
	Emit      func(Event)
	Abilities *AbilityBook
}

type State string

const (
	StateIdle     State = "IDLE"
	StateFighting State = "FIGHTING"
	StatePaused   State = "PAUSED"
	StateFinished State = "FINISHED"
)

// BurnStatus is damage over time. TickDamage is fixed when the burn is applied.
type BurnStatus struct {
	TicksRemaining int    `json:"ticks_remaining"`
	TickDamage     int    `json:"tick_damage"`
	Source         string `json:"source,omitempty"`
}

func (s BurnStatus) Active() bool { return s.TicksRemaining > 0 }

type SlowStatus struct {
	FramesRemaining int `json:"frames_remaining"`
}

func (s SlowStatus) Active() bool { return s.FramesRemaining > 0 }
