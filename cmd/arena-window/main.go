package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"duelsim/internal/combat"
	"duelsim/internal/render"
	"duelsim/internal/tui"
)

const (
	windowW = combat.ArenaWidth / 2
	windowH = combat.ArenaHeight / 2
)

var errQuit = errors.New("quit")

var keyRunes = map[ebiten.Key]rune{
	ebiten.KeyS:      's',
	ebiten.KeyP:      'p',
	ebiten.KeyN:      'n',
	ebiten.KeyR:      'r',
	ebiten.KeyEqual:  '+',
	ebiten.KeyMinus:  '-',
	ebiten.Key1:      '1',
	ebiten.Key2:      '2',
	ebiten.Key3:      '3',
	ebiten.Key4:      '4',
	ebiten.Key7:      '7',
	ebiten.Key8:      '8',
	ebiten.Key9:      '9',
	ebiten.Key0:      '0',
	ebiten.KeyZ:      'z',
	ebiten.KeyX:      'x',
	ebiten.KeyC:      'c',
	ebiten.KeyV:      'v',
	ebiten.KeyB:      'b',
	ebiten.KeyQ:      'q',
	ebiten.KeyEscape: 0x1b,
}

// shiftRunes are what the terminal would report for Shift plus the key.
var shiftRunes = map[ebiten.Key]rune{
	ebiten.Key1:     '!',
	ebiten.Key2:     '@',
	ebiten.Key3:     '#',
	ebiten.Key4:     '$',
	ebiten.Key5:     '%',
	ebiten.KeyEqual: '+',
}

type game struct {
	app      *tui.App
	renderer *render.Renderer
}

func (g *game) Update() error {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	for k, r := range keyRunes {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if sr, ok := shiftRunes[k]; ok && shift {
			r = sr
		}
		if !g.app.Press(r) {
			return errQuit
		}
	}
	g.app.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	frame := ebiten.NewImageFromImage(g.renderer.Frame(g.app.Battle().Snapshot()))
	defer frame.Deallocate()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(windowW)/combat.ArenaWidth, float64(windowH)/combat.ArenaHeight)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(frame, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowW, windowH
}

func main() {
	var cfgDir string
	var seed int64
	var smooth, verbose, randomColors bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (empty for built-in tables)")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses arena.yaml)")
	flag.BoolVar(&smooth, "smooth", true, "carry fractional frames instead of rounding")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&randomColors, "random-colors", false, "pick fighter colors at random on each start")
	flag.Parse()

	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatal(err)
	}
	sugar := logger.Sugar()
	defer sugar.Sync()

	opts, err := tui.LoadOptions(cfgDir, seed)
	if err != nil {
		sugar.Fatalw("load config", "dir", cfgDir, "err", err)
	}
	opts.Smooth = smooth
	opts.RandomColors = randomColors
	opts.Log = sugar

	app, err := tui.NewApp(nil, opts)
	if err != nil {
		sugar.Fatalw("new arena", "err", err)
	}
	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("duelsim")
	if err := ebiten.RunGame(&game{app: app, renderer: render.New()}); err != nil && !errors.Is(err, errQuit) {
		sugar.Fatalw("run", "err", err)
	}
}
