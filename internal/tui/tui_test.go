package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"duelsim/internal/combat"
	"duelsim/internal/util"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func cell(s tcell.Screen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func row(s tcell.Screen, y, n int) string {
	var b strings.Builder
	for x := 0; x < n; x++ {
		b.WriteRune(cell(s, x, y))
	}
	return b.String()
}

func newApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := newScreen(t, 80, 24)
	app, err := NewApp(screen, Options{Seed: 1, Log: zaptest.NewLogger(t).Sugar()})
	if err != nil {
		t.Fatal(err)
	}
	return app, screen
}

func TestScaleX(t *testing.T) {
	tests := []struct {
		x    float64
		cols int
		want int
	}{
		{0, 80, 0},
		{combat.ArenaWidth, 80, 79},
		{360, 81, 40},
		{-5, 80, 0},
		{900, 80, 79},
		{300, 1, 0},
	}
	for _, tt := range tests {
		if got := ScaleX(tt.x, tt.cols); got != tt.want {
			t.Errorf("ScaleX(%v, %d) = %d, want %d", tt.x, tt.cols, got, tt.want)
		}
	}
}

func TestDrawLayout(t *testing.T) {
	screen := newScreen(t, 80, 24)
	s := combat.Snapshot{
		State: combat.StateFighting,
		Fighters: [2]combat.FighterView{
			{ID: "A", Weapon: "Spear", Color: "#ff8fab", HP: 100, MaxHP: 100, X: 180, Dmg: 18, Range: 260, Speed: 1.02},
			{ID: "B", Weapon: "Dagger", Color: "#ffd166", HP: 0, MaxHP: 100, X: 540, Dmg: 12, Range: 80, Speed: 1.7},
		},
		FX: []combat.FX{{Type: combat.FXSpark, X: 360, Life: 10}},
	}
	Draw(screen, s, 1, "Fight started: Spear vs Dagger")

	if got := cell(screen, 19, rowArena); got != 'A' {
		t.Errorf("A glyph = %q", got)
	}
	if got := cell(screen, 59, rowArena); got != 'x' {
		t.Errorf("defeated B glyph = %q", got)
	}
	if got := cell(screen, ScaleX(360, 80), rowFX); got != '*' {
		t.Errorf("spark glyph = %q", got)
	}
	if got := row(screen, rowStatus, 11); got != "HP: 100/100" {
		t.Errorf("status row = %q", got)
	}
	if got := row(screen, rowStatus+3, 12); got != "Abilities: —" {
		t.Errorf("abilities row = %q", got)
	}
	if got := row(screen, 23, 13); got != "Fight started" {
		t.Errorf("log row = %q", got)
	}
	if got := cell(screen, 3, rowBars); got != '█' {
		t.Errorf("full bar cell = %q", got)
	}
}

func TestAppKeys(t *testing.T) {
	app, _ := newApp(t)
	if app.Battle().State() != combat.StateIdle {
		t.Fatalf("initial state = %s", app.Battle().State())
	}
	if app.Battle().A.Pos.X != 180 || app.Battle().B.Pos.X != 540 {
		t.Fatalf("fighters not placed: %v %v", app.Battle().A.Pos, app.Battle().B.Pos)
	}

	app.handle(tcell.KeyRune, 's')
	if app.Battle().State() != combat.StateFighting {
		t.Fatalf("state after s = %s", app.Battle().State())
	}
	if app.LogLine() != "Fight started: Spear vs Dagger" {
		t.Errorf("log = %q", app.LogLine())
	}

	app.handle(tcell.KeyRune, 'p')
	if app.Battle().State() != combat.StatePaused || app.LogLine() != "Paused" {
		t.Errorf("after pause: %s %q", app.Battle().State(), app.LogLine())
	}
	app.handle(tcell.KeyRune, 'p')
	if app.Battle().State() != combat.StateFighting || app.LogLine() != "Resumed" {
		t.Errorf("after resume: %s %q", app.Battle().State(), app.LogLine())
	}

	app.handle(tcell.KeyRune, 'n')
	if app.Battle().Frame != 1 {
		t.Errorf("frame after step = %d", app.Battle().Frame)
	}

	app.handle(tcell.KeyRune, '+')
	if got := app.Battle().Settings().GlobalSpeedMultiplier; got != 1.25 {
		t.Errorf("speed after + = %v", got)
	}
	app.handle(tcell.KeyRune, '-')
	app.handle(tcell.KeyRune, '-')
	if got := app.Battle().Settings().GlobalSpeedMultiplier; got != 0.75 {
		t.Errorf("speed after - - = %v", got)
	}

	app.handle(tcell.KeyRune, '3')
	app.handle(tcell.KeyRune, '0')
	app.handle(tcell.KeyRune, 'r')
	b := app.Battle()
	if b.State() != combat.StateIdle || b.A.WeaponKind != "Sword" || b.B.WeaponKind != "Axe" {
		t.Errorf("after reset: %s %s %s", b.State(), b.A.WeaponKind, b.B.WeaponKind)
	}
	if got := b.Settings().GlobalSpeedMultiplier; got != 0.75 {
		t.Errorf("reset dropped speed: %v", got)
	}
	if app.LogLine() != "Fighters reset" {
		t.Errorf("log = %q", app.LogLine())
	}

	if app.handle(tcell.KeyRune, 'q') {
		t.Error("q should quit")
	}
	if app.handle(tcell.KeyEscape, 0) {
		t.Error("Esc should quit")
	}
}

func TestAppPlaysToWinner(t *testing.T) {
	app, _ := newApp(t)
	app.handle(tcell.KeyRune, 's')
	for i := 0; i < 20000 && app.Battle().State() != combat.StateFinished; i++ {
		app.Tick()
	}
	if app.Battle().Winner() == nil {
		t.Fatal("no winner")
	}
	if !strings.HasPrefix(app.LogLine(), "Winner: ") {
		t.Errorf("log = %q", app.LogLine())
	}
}

func TestTickIdleDoesNothing(t *testing.T) {
	app, _ := newApp(t)
	app.Tick()
	if app.Battle().Frame != 0 {
		t.Errorf("frame = %d", app.Battle().Frame)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _ := newApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := app.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run = %v", err)
	}
}

func TestPressWithoutScreen(t *testing.T) {
	app, err := NewApp(nil, Options{Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !app.Press('s') || app.Battle().State() != combat.StateFighting {
		t.Fatalf("state = %s", app.Battle().State())
	}
	app.Tick()
	app.Draw()
	if app.Battle().Frame != 1 {
		t.Errorf("frame = %d", app.Battle().Frame)
	}
	if app.Press(0x1b) {
		t.Error("escape should quit")
	}
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions("../../assets", 0)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Seed != 12345 {
		t.Errorf("seed = %d", opts.Seed)
	}
	if opts.Loadouts[0].Weapon != "Spear" || opts.Loadouts[1].Weapon != "Dagger" {
		t.Errorf("loadouts = %+v", opts.Loadouts)
	}
	if len(opts.Loadouts[0].Abilities) != 2 {
		t.Errorf("A abilities = %v", opts.Loadouts[0].Abilities)
	}

	builtin, err := LoadOptions("", 9)
	if err != nil {
		t.Fatal(err)
	}
	if builtin.Seed != 9 || builtin.Catalog != nil || builtin.Settings.GlobalSpeedMultiplier != 1 {
		t.Errorf("builtin options = %+v", builtin)
	}

	if _, err := LoadOptions(t.TempDir(), 0); err == nil {
		t.Error("expected error for a dir without weapons.yaml")
	}
}

func TestAbilityPicker(t *testing.T) {
	app, _ := newApp(t)

	app.Press('#')
	app.Press('!')
	if got := app.LogLine(); got != "A abilities: Fire, Explosive" {
		t.Errorf("log = %q", got)
	}
	for _, r := range "zxcv" {
		app.Press(r)
	}
	app.Press('r')
	a, b := app.Battle().A, app.Battle().B
	if strings.Join(a.Abilities, ",") != "Fire,Explosive" {
		t.Errorf("A abilities = %v", a.Abilities)
	}
	if strings.Join(b.Abilities, ",") != "Fire,Ice,Explosive" {
		t.Errorf("B abilities = %v, want the first three picked", b.Abilities)
	}

	app.Press('!')
	app.Press('#')
	if got := app.LogLine(); got != "A abilities: none" {
		t.Errorf("log = %q", got)
	}
	app.Press('s')
	if len(app.Battle().A.Abilities) != 0 {
		t.Errorf("A abilities after start = %v", app.Battle().A.Abilities)
	}
	if len(app.Battle().B.Abilities) != 3 {
		t.Errorf("B abilities after start = %v", app.Battle().B.Abilities)
	}
}

func TestRandomColors(t *testing.T) {
	app, err := NewApp(nil, Options{Seed: 5, RandomColors: true})
	if err != nil {
		t.Fatal(err)
	}
	r := util.New(5)
	wantA, wantB := combat.RandomColor(r), combat.RandomColor(r)
	if got := app.Battle().A.Color; got != wantA {
		t.Errorf("A color = %s, want %s", got, wantA)
	}
	if got := app.Battle().B.Color; got != wantB {
		t.Errorf("B color = %s, want %s", got, wantB)
	}

	fixed, err := NewApp(nil, Options{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	if fixed.Battle().A.Color != "#ff8fab" || fixed.Battle().B.Color != "#ffd166" {
		t.Errorf("fixed colors = %s %s", fixed.Battle().A.Color, fixed.Battle().B.Color)
	}
}
