package combat

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"duelsim/internal/config"
)

// fixedRand always returns v. 0.5 makes every FX jitter zero.
type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

func testEnv(t *testing.T, rng Rand) *Env {
	t.Helper()
	if rng == nil {
		rng = fixedRand{0.5}
	}
	return &Env{
		Rng:      rng,
		Settings: config.Settings{GlobalSpeedMultiplier: 1},
		Log:      zaptest.NewLogger(t).Sugar(),
	}
}

func mustFighter(t *testing.T, id, weapon string, abilities ...string) *Fighter {
	t.Helper()
	f, err := NewFighter(id, weapon, abilities, nil)
	if err != nil {
		t.Fatalf("NewFighter(%q, %q): %v", id, weapon, err)
	}
	return f
}

// startedBattle returns a FIGHTING battle with fighters on their start marks.
func startedBattle(t *testing.T, env *Env, wa, wb string) (*Battle, *Fighter, *Fighter) {
	t.Helper()
	a := mustFighter(t, "A", wa)
	b := mustFighter(t, "B", wb)
	bt := NewBattle(a, b, env)
	bt.Start()
	return bt, a, b
}
