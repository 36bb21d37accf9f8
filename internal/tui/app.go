package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/loop"
	"duelsim/internal/util"
)

const (
	FrameInterval = time.Second / 60
	speedStep     = 0.25
	minSpeed      = 0.25
	maxSpeed      = 4
)

// Options seeds an App. Zero values fall back to the built-in catalogs and a
// Spear vs Dagger loadout.
type Options struct {
	Catalog   *combat.Catalog
	Abilities *combat.AbilityBook
	Settings  config.Settings
	Loadouts  [2]config.FighterDef
	Seed      int64
	Smooth    bool
	Log       *zap.SugaredLogger

	// RandomColors draws each fighter's color from the palette on every
	// start or reset instead of using its fixed slot.
	RandomColors bool
}

// Ability toggle keys, in combat.AbilityIDs order. A uses Shift+1..5.
var abilityKeys = [2][]rune{
	{'!', '@', '#', '$', '%'},
	{'z', 'x', 'c', 'v', 'b'},
}

// App runs one battle in a terminal. Every battle mutation happens on the
// goroutine that called Run. With a nil screen it is a headless controller
// driven through Press and Tick.
type App struct {
	screen tcell.Screen
	opts   Options
	rng    *rand.Rand
	log    *zap.SugaredLogger

	loadouts [2]config.FighterDef
	battle   *combat.Battle
	driver   *loop.Driver
	logLine  string
}

func NewApp(screen tcell.Screen, opts Options) (*App, error) {
	if opts.Catalog == nil {
		opts.Catalog = combat.DefaultCatalog()
	}
	if opts.Abilities == nil {
		opts.Abilities = combat.NewAbilityBook(nil)
	}
	if opts.Settings.GlobalSpeedMultiplier <= 0 {
		opts.Settings.GlobalSpeedMultiplier = 1
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	ids := [2]string{"A", "B"}
	fallback := [2]string{"Spear", "Dagger"}
	for i := range opts.Loadouts {
		if opts.Loadouts[i].ID == "" {
			opts.Loadouts[i].ID = ids[i]
		}
		if opts.Loadouts[i].Weapon == "" {
			opts.Loadouts[i].Weapon = fallback[i]
		}
	}
	a := &App{
		screen:   screen,
		opts:     opts,
		rng:      util.New(opts.Seed),
		log:      opts.Log,
		loadouts: opts.Loadouts,
	}
	if err := a.rebuild(); err != nil {
		return nil, err
	}
	a.battle.PlaceFighters()
	return a, nil
}

func (a *App) Battle() *combat.Battle { return a.battle }

func (a *App) LogLine() string { return a.logLine }

// rebuild replaces the battle with fresh fighters from the current loadouts,
// keeping the speed setting of the old one.
func (a *App) rebuild() error {
	var fs [2]*combat.Fighter
	for i, lo := range a.loadouts {
		f, err := combat.NewFighter(lo.ID, lo.Weapon, lo.Abilities, a.opts.Catalog)
		if err != nil {
			return err
		}
		switch {
		case lo.Color != "":
			f.Color = lo.Color
		case a.opts.RandomColors:
			f.Color = combat.RandomColor(a.rng)
		}
		fs[i] = f
	}
	settings := a.opts.Settings
	if a.battle != nil {
		settings = a.battle.Settings()
	}
	a.battle = combat.NewBattle(fs[0], fs[1], &combat.Env{
		Rng:       a.rng,
		Settings:  settings,
		Log:       a.log,
		Abilities: a.opts.Abilities,
		Emit:      a.onEvent,
	})
	if a.driver == nil {
		a.driver = loop.New(a.battle, a.opts.Smooth)
	} else {
		a.driver.Reset(a.battle)
	}
	return nil
}

func (a *App) onEvent(ev combat.Event) {
	if ev.Type != "Defeated" {
		return
	}
	if w := a.battle.Winner(); w != nil {
		a.logLine = fmt.Sprintf("Winner: %s (%s)", w.ID, w.WeaponKind)
	}
}

// HandleKey applies one key press and reports whether the app should keep
// running.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	return a.handle(ev.Key(), ev.Rune())
}

// Press applies a key given as its rune. Front ends without tcell events
// map their own key codes onto the same bindings through it.
func (a *App) Press(r rune) bool {
	if r == 0x1b {
		return false
	}
	return a.handle(tcell.KeyRune, r)
}

func (a *App) handle(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case 's':
		a.start()
	case 'p':
		a.togglePause()
	case 'n':
		if a.battle.State() != combat.StateFinished {
			a.driver.Step()
		}
	case 'r':
		a.reset()
	case '+', '=':
		a.adjustSpeed(speedStep)
	case '-':
		a.adjustSpeed(-speedStep)
	case '1', '2', '3', '4':
		a.selectWeapon(0, int(r-'1'))
	case '7', '8', '9':
		a.selectWeapon(1, int(r-'7'))
	case '0':
		a.selectWeapon(1, 3)
	default:
		for side, keys := range abilityKeys {
			for idx, k := range keys {
				if r == k {
					a.toggleAbility(side, idx)
				}
			}
		}
	}
	return true
}

func (a *App) start() {
	if err := a.rebuild(); err != nil {
		a.logLine = err.Error()
		a.log.Warnw("start failed", "err", err)
		return
	}
	a.battle.Start()
	a.logLine = fmt.Sprintf("Fight started: %s vs %s", a.battle.A.WeaponKind, a.battle.B.WeaponKind)
}

func (a *App) togglePause() {
	switch a.battle.State() {
	case combat.StateFighting:
		a.battle.Pause()
		a.logLine = "Paused"
	case combat.StatePaused:
		a.battle.Resume()
		a.logLine = "Resumed"
	}
}

func (a *App) reset() {
	if err := a.rebuild(); err != nil {
		a.logLine = err.Error()
		return
	}
	a.battle.PlaceFighters()
	a.logLine = "Fighters reset"
}

func (a *App) adjustSpeed(delta float64) {
	s := a.battle.Settings()
	s.GlobalSpeedMultiplier = max(minSpeed, min(maxSpeed, s.GlobalSpeedMultiplier+delta))
	a.battle.SetSettings(s)
	a.logLine = fmt.Sprintf("Speed x%.2f", s.GlobalSpeedMultiplier)
}

// selectWeapon changes the loadout used by the next start or reset.
func (a *App) selectWeapon(side, idx int) {
	kinds := a.opts.Catalog.Kinds()
	if idx < 0 || idx >= len(kinds) {
		return
	}
	a.loadouts[side].Weapon = kinds[idx]
	a.logLine = fmt.Sprintf("%s weapon: %s", a.loadouts[side].ID, kinds[idx])
}

// toggleAbility flips one ability in a side's picker. The picked set is kept
// in catalog order; fighters take the first three when the next start or
// reset builds them.
func (a *App) toggleAbility(side, idx int) {
	ids := combat.AbilityIDs()
	if idx < 0 || idx >= len(ids) {
		return
	}
	picked := map[string]bool{ids[idx]: true}
	for _, id := range a.loadouts[side].Abilities {
		if id == ids[idx] {
			picked[id] = false
		} else {
			picked[id] = true
		}
	}
	var list []string
	for _, id := range ids {
		if picked[id] {
			list = append(list, id)
		}
	}
	a.loadouts[side].Abilities = list
	shown := strings.Join(list, ", ")
	if shown == "" {
		shown = "none"
	}
	a.logLine = fmt.Sprintf("%s abilities: %s", a.loadouts[side].ID, shown)
}

// Tick runs one rendered frame worth of simulation when the battle is live.
func (a *App) Tick() {
	switch a.battle.State() {
	case combat.StateFighting, combat.StateFinished:
		a.driver.Frame()
	}
}

func (a *App) Draw() {
	if a.screen == nil {
		return
	}
	Draw(a.screen, a.battle.Snapshot(), a.battle.Settings().GlobalSpeedMultiplier, a.logLine)
	a.screen.Show()
}

// Run owns the screen until ctx is cancelled or the user quits. Input is
// read on a separate goroutine and handed over through a channel.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.HandleKey(ev) {
					a.log.Infow("quit", "frame", a.battle.Frame)
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.Draw()
		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}
