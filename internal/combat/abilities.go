package combat

import (
	"math"

	"duelsim/internal/config"
)

type AbilityKind int

const (
	AbilityNone AbilityKind = iota
	AbilityFire
	AbilityIce
	AbilityExplosive
	AbilityLifesteal
	AbilityStun
)

var abilityNames = [...]string{
	AbilityNone:      "",
	AbilityFire:      "Fire",
	AbilityIce:       "Ice",
	AbilityExplosive: "Explosive",
	AbilityLifesteal: "Lifesteal",
	AbilityStun:      "Stun",
}

var abilityByID = map[string]AbilityKind{
	"Fire":      AbilityFire,
	"Ice":       AbilityIce,
	"Explosive": AbilityExplosive,
	"Lifesteal": AbilityLifesteal,
	"Stun":      AbilityStun,
}

// ParseAbility maps an id to its kind. Unknown ids map to AbilityNone.
func ParseAbility(id string) AbilityKind {
	return abilityByID[id]
}

func (k AbilityKind) String() string {
	if k < 0 || int(k) >= len(abilityNames) {
		return ""
	}
	return abilityNames[k]
}

// AbilityIDs lists the known ability ids in picker order.
func AbilityIDs() []string {
	return []string{"Fire", "Ice", "Explosive", "Lifesteal", "Stun"}
}

type AbilityBook struct {
	tune config.AbilitiesConfig
}

func defaultAbilities() config.AbilitiesConfig {
	return config.AbilitiesConfig{
		Fire:      config.FireTuning{Ticks: 180, Period: 30, DmgRatio: 0.12},
		Ice:       config.IceTuning{Frames: 40, SlowFactor: 0.55},
		Explosive: config.ExplosiveTuning{Radius: 72, DmgRatio: 0.6},
		Lifesteal: config.LifestealTuning{Ratio: 0.25},
		Stun:      config.StunTuning{Chance: 0.4, Frames: 36},
	}
}

func NewAbilityBook(cfg *config.AbilitiesConfig) *AbilityBook {
	t := defaultAbilities()
	if cfg == nil {
		return &AbilityBook{tune: t}
	}
	if cfg.Fire.Ticks > 0 {
		t.Fire.Ticks = cfg.Fire.Ticks
	}
	if cfg.Fire.Period > 0 {
		t.Fire.Period = cfg.Fire.Period
	}
	if cfg.Fire.DmgRatio > 0 {
		t.Fire.DmgRatio = cfg.Fire.DmgRatio
	}
	if cfg.Ice.Frames > 0 {
		t.Ice.Frames = cfg.Ice.Frames
	}
	if cfg.Ice.SlowFactor > 0 {
		t.Ice.SlowFactor = cfg.Ice.SlowFactor
	}
	if cfg.Explosive.Radius > 0 {
		t.Explosive.Radius = cfg.Explosive.Radius
	}
	if cfg.Explosive.DmgRatio > 0 {
		t.Explosive.DmgRatio = cfg.Explosive.DmgRatio
	}
	if cfg.Lifesteal.Ratio > 0 {
		t.Lifesteal.Ratio = cfg.Lifesteal.Ratio
	}
	if cfg.Stun.Chance > 0 {
		t.Stun.Chance = cfg.Stun.Chance
	}
	if cfg.Stun.Frames > 0 {
		t.Stun.Frames = cfg.Stun.Frames
	}
	return &AbilityBook{tune: t}
}

// BurnPeriod is the number of frames between two burn ticks.
func (ab *AbilityBook) BurnPeriod() int { return ab.tune.Fire.Period }

// Apply runs one ability for a landed hit and reports whether it took effect.
// Unknown ids do nothing.
func (ab *AbilityBook) Apply(id string, attacker, target *Fighter, b *Battle) bool {
	var landed bool
	switch ParseAbility(id) {
	case AbilityFire:
		landed = ab.applyFire(attacker, target, b)
	case AbilityIce:
		landed = ab.applyIce(target, b)
	case AbilityExplosive:
		landed = ab.applyExplosive(attacker, target, b)
	case AbilityLifesteal:
		landed = ab.applyLifesteal(attacker, b)
	case AbilityStun:
		landed = ab.applyStun(target, b)
	default:
		b.log.Debugw("unknown ability ignored", "ability", id, "fighter", attacker.ID)
		return false
	}
	if landed {
		b.emit("Ability", map[string]any{
			"ability": id, "attacker": attacker.ID, "target": target.ID,
		})
	}
	return landed
}

func (ab *AbilityBook) applyFire(attacker, target *Fighter, b *Battle) bool {
	t := ab.tune.Fire
	tick := max(1, roundHalfUp(float64(attacker.Dmg)*t.DmgRatio))
	target.Burn = BurnStatus{TicksRemaining: t.Ticks, TickDamage: tick, Source: attacker.ID}
	b.SpawnFX(FXBurn, target.Pos.X+b.jitter(12), target.Pos.Y+b.jitter(8), FXOpts{})
	b.emit("ApplyStatus", map[string]any{
		"target": target.ID, "status": "burn", "dur": t.Ticks, "tick_dmg": tick,
	})
	return true
}

// applyIce refreshes the slow duration and multiplies SpeedMul, so a second
// hit inside the window slows further. SpeedMul returns to 1 on expiry.
func (ab *AbilityBook) applyIce(target *Fighter, b *Battle) bool {
	t := ab.tune.Ice
	target.Slow = SlowStatus{FramesRemaining: t.Frames}
	target.SpeedMul = math.Min(1, target.SpeedMul) * t.SlowFactor
	b.SpawnFX(FXIce, target.Pos.X+b.jitter(12), target.Pos.Y+b.jitter(8), FXOpts{})
	b.emit("ApplyStatus", map[string]any{
		"target": target.ID, "status": "ice", "dur": t.Frames, "speed_mul": target.SpeedMul,
	})
	return true
}

func (ab *AbilityBook) applyExplosive(attacker, target *Fighter, b *Battle) bool {
	t := ab.tune.Explosive
	center := target.Pos
	dmg := max(1, roundHalfUp(float64(attacker.Dmg)*t.DmgRatio))
	b.SpawnFX(FXExplosion, center.X, center.Y, FXOpts{Radius: t.Radius})
	for _, f := range b.Combatants() {
		if f.Pos.Dist(center) > t.Radius {
			continue
		}
		f.HP -= dmg
		b.emit("AreaDamage", map[string]any{
			"attacker": attacker.ID, "target": f.ID, "dmg": dmg, "hp": f.HP,
		})
	}
	return true
}

func (ab *AbilityBook) applyLifesteal(attacker *Fighter, b *Battle) bool {
	heal := roundHalfUp(float64(attacker.Dmg) * ab.tune.Lifesteal.Ratio)
	attacker.HP = min(attacker.MaxHP, attacker.HP+heal)
	b.SpawnFX(FXHeal, attacker.Pos.X, attacker.Pos.Y, FXOpts{})
	b.emit("Heal", map[string]any{"target": attacker.ID, "amount": heal, "hp": attacker.HP})
	return true
}

// applyStun never shortens a stun already in place.
func (ab *AbilityBook) applyStun(target *Fighter, b *Battle) bool {
	t := ab.tune.Stun
	if b.rng.Float64() >= t.Chance {
		return false
	}
	target.Stunned = max(target.Stunned, t.Frames)
	b.SpawnFX(FXStun, target.Pos.X, target.Pos.Y, FXOpts{})
	b.emit("ApplyStatus", map[string]any{
		"target": target.ID, "status": "stun", "dur": target.Stunned,
	})
	return true
}
