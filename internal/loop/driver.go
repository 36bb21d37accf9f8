package loop

import (
	"math"

	"duelsim/internal/combat"
)

// SlowMoRate is the fraction of a normal frame simulated while slow motion
// is active.
const SlowMoRate = 0.18

// Driver decides how many simulation ticks each rendered frame gets.
//
// By default the count is max(1, round(steps*speed)), so slow motion shows
// as stutter rather than true fractional playback. With Smooth set, the
// fractional part is carried over between frames instead and a frame may run
// zero ticks.
type Driver struct {
	Battle *combat.Battle
	Smooth bool

	debt float64
}

func New(b *combat.Battle, smooth bool) *Driver {
	return &Driver{Battle: b, Smooth: smooth}
}

// Frame advances the battle by one rendered frame and returns the number of
// updates it ran.
func (d *Driver) Frame() int {
	steps := 1.0
	if d.Battle.SlowMoFor > 0 {
		steps = SlowMoRate
		d.Battle.SlowMoFor--
	}
	speed := d.Battle.Settings().GlobalSpeedMultiplier
	if speed <= 0 {
		speed = 1
	}

	var count int
	if d.Smooth {
		d.debt += steps * speed
		count = int(math.Floor(d.debt))
		d.debt -= float64(count)
	} else {
		count = max(1, int(math.Round(steps*speed)))
	}
	for i := 0; i < count; i++ {
		d.Battle.Update()
	}
	return count
}

// Step runs exactly one update regardless of speed or slow motion.
func (d *Driver) Step() {
	d.Battle.Update()
}

// Reset points the driver at a new battle and drops any carried time.
func (d *Driver) Reset(b *combat.Battle) {
	d.Battle = b
	d.debt = 0
}
