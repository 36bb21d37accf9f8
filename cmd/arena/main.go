package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"duelsim/internal/tui"
)

func main() {
	var cfgDir, logPath string
	var seed int64
	var smooth, randomColors bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (empty for built-in tables)")
	flag.StringVar(&logPath, "logfile", "arena.log", "zap log file")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses arena.yaml)")
	flag.BoolVar(&smooth, "smooth", false, "carry fractional frames instead of rounding")
	flag.BoolVar(&randomColors, "random-colors", false, "pick fighter colors at random on each start")
	flag.Parse()

	if err := run(cfgDir, logPath, seed, smooth, randomColors); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfgDir, logPath string, seed int64, smooth, randomColors bool) error {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{logPath}
	cfg.ErrorOutputPaths = []string{logPath}
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	log := logger.Sugar()
	defer log.Sync()

	opts, err := tui.LoadOptions(cfgDir, seed)
	if err != nil {
		return err
	}
	opts.Smooth = smooth
	opts.RandomColors = randomColors
	opts.Log = log

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	app, err := tui.NewApp(screen, opts)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Infow("arena opened", "config", cfgDir, "seed", opts.Seed)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
