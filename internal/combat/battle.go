package combat

import (
	"context"
	"math"
	"strings"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"duelsim/internal/config"
	"duelsim/internal/util"
)

const (
	ArenaWidth  = 720
	ArenaHeight = 1280
	ArenaMinX   = 60
	ArenaMaxX   = 660

	attackCooldown = 30
	engageRatio    = 0.85
	hitShake       = 6
	finishShake    = 18
	slowMoOnKill   = 160
	bigKillLife    = 120
)

// Battle owns both fighters and advances them one frame per Update.
// It is not safe for concurrent use; readers take a Snapshot between updates.
type Battle struct {
	A, B *Fighter

	Frame       int
	FX          []FX
	CameraShake float64
	SlowMoFor   int

	winner   *Fighter
	machine  *fsm.FSM
	settings config.Settings
	rng      Rand
	log      *zap.SugaredLogger
	book     *AbilityBook
	emitFn   func(Event)
}

func NewBattle(a, b *Fighter, env *Env) *Battle {
	if env == nil {
		env = &Env{}
	}
	bt := &Battle{
		A: a, B: b,
		settings: env.Settings,
		rng:      env.Rng,
		log:      env.Log,
		book:     env.Abilities,
		emitFn:   env.Emit,
	}
	if bt.rng == nil {
		bt.rng = util.New(1)
	}
	if bt.log == nil {
		bt.log = zap.NewNop().Sugar()
	}
	if bt.book == nil {
		bt.book = NewAbilityBook(nil)
	}
	bt.machine = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: "start", Src: []string{string(StateIdle), string(StatePaused), string(StateFinished)}, Dst: string(StateFighting)},
			{Name: "pause", Src: []string{string(StateFighting)}, Dst: string(StatePaused)},
			{Name: "resume", Src: []string{string(StatePaused)}, Dst: string(StateFighting)},
			{Name: "finish", Src: []string{string(StateFighting)}, Dst: string(StateFinished)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				bt.log.Debugw("battle state", "event", e.Event, "from", e.Src, "to", e.Dst, "frame", bt.Frame)
				bt.emit("StateChange", map[string]any{"event": e.Event, "from": e.Src, "to": e.Dst})
			},
		},
	)
	return bt
}

func (b *Battle) State() State { return State(b.machine.Current()) }

// Winner is nil until the battle is FINISHED.
func (b *Battle) Winner() *Fighter { return b.winner }

// Combatants returns both fighters, always A first.
func (b *Battle) Combatants() [2]*Fighter { return [2]*Fighter{b.A, b.B} }

func (b *Battle) Settings() config.Settings { return b.settings }

func (b *Battle) SetSettings(s config.Settings) { b.settings = s }

func (b *Battle) Abilities() *AbilityBook { return b.book }

func (b *Battle) Start() {
	b.Frame = 0
	b.FX = nil
	b.CameraShake = 0
	b.winner = nil
	b.SlowMoFor = 0
	b.A.ResetState()
	b.B.ResetState()
	b.PlaceFighters()
	if b.State() != StateFighting {
		b.fire("start")
	}
	b.log.Infow("battle started",
		"a", b.A.WeaponKind, "a_abilities", b.A.Abilities,
		"b", b.B.WeaponKind, "b_abilities", b.B.Abilities)
	b.emit("Start", map[string]any{
		"a": b.A.WeaponKind, "b": b.B.WeaponKind,
		"a_abilities": strings.Join(b.A.Abilities, ","),
		"b_abilities": strings.Join(b.B.Abilities, ","),
	})
}

func (b *Battle) Pause() { b.fire("pause") }

func (b *Battle) Resume() { b.fire("resume") }

// PlaceFighters puts both fighters on their start marks.
func (b *Battle) PlaceFighters() {
	y := ArenaHeight * 0.52
	b.A.Pos = Vec2{X: ArenaWidth * 0.25, Y: y}
	b.B.Pos = Vec2{X: ArenaWidth * 0.75, Y: y}
}

// Update advances one frame. Outside FIGHTING it does nothing except let
// leftover FX and camera shake fade once the battle is FINISHED.
func (b *Battle) Update() {
	switch b.State() {
	case StateFighting:
	case StateFinished:
		b.tickFX()
		return
	default:
		return
	}

	b.Frame++
	for _, f := range b.Combatants() {
		b.tickStatus(f)
		b.checkDefeat(f)
	}
	if b.State() == StateFinished {
		return
	}

	b.aiStep(b.A, b.B)
	b.aiStep(b.B, b.A)

	b.tickFX()

	for _, f := range b.Combatants() {
		b.checkDefeat(f)
	}
}

func (b *Battle) tickStatus(f *Fighter) {
	if f.Burn.Active() {
		f.Burn.TicksRemaining--
		if f.Burn.TicksRemaining%b.book.BurnPeriod() == 0 {
			f.HP -= f.Burn.TickDamage
			b.SpawnFX(FXBurn, f.Pos.X+b.jitter(10), f.Pos.Y+b.jitter(5), FXOpts{})
			b.emit("Burn", map[string]any{
				"target": f.ID, "source": f.Burn.Source, "dmg": f.Burn.TickDamage, "hp": f.HP,
			})
		}
		if !f.Burn.Active() {
			f.Burn = BurnStatus{}
		}
	}
	if f.Slow.Active() {
		f.Slow.FramesRemaining--
		if !f.Slow.Active() {
			f.SpeedMul = 1
		}
	}
	if f.Stunned > 0 {
		f.Stunned--
	}
	if f.Cooldown > 0 {
		f.Cooldown--
	}
}

// checkDefeat ends the fight when f is down. Fighters are checked A then B,
// so a double KO goes to B.
func (b *Battle) checkDefeat(f *Fighter) {
	if !f.Defeated() || b.State() != StateFighting {
		return
	}
	winner := b.opponent(f)
	if !b.fire("finish") {
		return
	}
	b.winner = winner
	b.CameraShake = finishShake
	if b.settings.ExtendSlowMoOnKill {
		b.SlowMoFor = slowMoOnKill
	}
	b.SpawnFX(FXBigKill, winner.Pos.X, winner.Pos.Y, FXOpts{Life: bigKillLife})
	b.log.Infow("battle finished", "winner", winner.ID, "weapon", winner.WeaponKind,
		"loser_hp", f.HP, "winner_hp", winner.HP, "frame", b.Frame)
	b.emit("Defeated", map[string]any{"id": f.ID, "hp": f.HP, "winner": winner.ID})
}

func (b *Battle) aiStep(me, opp *Fighter) {
	if me.Stunned > 0 || me.Defeated() {
		return
	}
	dx := opp.Pos.X - me.Pos.X
	dir := -1.0
	if dx > 0 {
		dir = 1
	}
	if math.Abs(dx) > me.Range*engageRatio {
		me.Vx = dir * me.Speed * me.SpeedMul
		me.Pos.X = clamp(me.Pos.X+me.Vx*b.speedMultiplier(), ArenaMinX, ArenaMaxX)
		return
	}
	if me.Cooldown > 0 || opp.Defeated() {
		return
	}

	opp.HP -= me.Dmg
	me.Cooldown = attackCooldown
	b.SpawnFX(FXSpark, opp.Pos.X+b.jitter(15), opp.Pos.Y+b.jitter(8), FXOpts{})
	b.CameraShake = hitShake
	b.log.Debugw("hit", "attacker", me.ID, "target", opp.ID, "dmg", me.Dmg, "hp", opp.HP, "frame", b.Frame)
	b.emit("Hit", map[string]any{
		"attacker": me.ID, "target": opp.ID, "weapon": me.WeaponKind, "dmg": me.Dmg, "hp": opp.HP,
	})
	for _, id := range me.Abilities {
		b.book.Apply(id, me, opp, b)
	}
}

func (b *Battle) speedMultiplier() float64 {
	if b.settings.GlobalSpeedMultiplier <= 0 {
		return 1
	}
	return b.settings.GlobalSpeedMultiplier
}

func (b *Battle) opponent(f *Fighter) *Fighter {
	if f == b.A {
		return b.B
	}
	return b.A
}

func (b *Battle) fire(event string) bool {
	if !b.machine.Can(event) {
		return false
	}
	if err := b.machine.Event(context.Background(), event); err != nil {
		b.log.Warnw("battle transition rejected", "event", event, "state", b.machine.Current(), "err", err)
		return false
	}
	return true
}

func (b *Battle) emit(typ string, payload map[string]any) {
	if b.emitFn == nil {
		return
	}
	b.emitFn(Event{T: b.Frame, Type: typ, Payload: payload})
}
