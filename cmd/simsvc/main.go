package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"duelsim/internal/combat"
	"duelsim/internal/config"
	"duelsim/internal/render"
	"duelsim/internal/util"
)

type loadout struct {
	weapons   *config.WeaponsConfig
	abilities *config.AbilitiesConfig
	arena     *config.ArenaConfig
	catalog   *combat.Catalog
	book      *combat.AbilityBook
	fighters  [2]config.FighterDef
}

func main() {
	var cfgDir, out, weaponA, weaponB, abilA, abilB, framesDir string
	var seed int64
	var n, maxFrames, every, thumb int
	var speed float64
	var slowmo, saveLog, verbose bool
	flag.StringVar(&cfgDir, "config", "assets", "config dir (empty for built-in tables)")
	flag.StringVar(&out, "out", "out.json", "output file (single) or summary file (batch)")
	flag.StringVar(&weaponA, "a", "", "weapon for fighter A (overrides arena.yaml)")
	flag.StringVar(&weaponB, "b", "", "weapon for fighter B (overrides arena.yaml)")
	flag.StringVar(&abilA, "abilities-a", "", "comma separated abilities for A")
	flag.StringVar(&abilB, "abilities-b", "", "comma separated abilities for B")
	flag.Int64Var(&seed, "seed", 0, "seed (0 uses arena.yaml, then 12345)")
	flag.IntVar(&n, "n", 1, "number of simulations")
	flag.IntVar(&maxFrames, "max-frames", 0, "frame cap per run (0 uses arena.yaml)")
	flag.Float64Var(&speed, "speed", 0, "global speed multiplier (0 uses arena.yaml)")
	flag.BoolVar(&slowmo, "slowmo", true, "extend slow motion on kill (overrides arena.yaml when set)")
	flag.BoolVar(&saveLog, "log", true, "save full event log when n==1")
	flag.StringVar(&framesDir, "frames", "", "dump PNG frames here when n==1")
	flag.IntVar(&every, "every", 30, "frame dump interval")
	flag.IntVar(&thumb, "thumb", 0, "thumbnail width for dumped frames (0 keeps full size)")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	log := newLogger(verbose)
	defer log.Sync()

	lo, err := loadConfig(cfgDir)
	if err != nil {
		log.Fatalw("load config", "dir", cfgDir, "err", err)
	}
	applyOverrides(&lo.fighters[0], weaponA, abilA)
	applyOverrides(&lo.fighters[1], weaponB, abilB)

	settings := lo.arena.Settings
	if speed > 0 {
		settings.GlobalSpeedMultiplier = speed
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "slowmo" {
			settings.ExtendSlowMoOnKill = slowmo
		}
	})
	if seed == 0 {
		seed = lo.arena.Seed
	}
	if seed == 0 {
		seed = 12345
	}
	if maxFrames <= 0 {
		maxFrames = lo.arena.MaxFrames
	}

	if n <= 1 {
		a, b, err := lo.build()
		if err != nil {
			log.Fatalw("build fighters", "err", err)
		}
		env := &combat.Env{Rng: util.New(seed), Settings: settings, Log: log, Abilities: lo.book}

		var onFrame func(*combat.Battle)
		if framesDir != "" {
			if err := os.MkdirAll(framesDir, 0o755); err != nil {
				log.Fatalw("frames dir", "dir", framesDir, "err", err)
			}
			onFrame = frameDumper(log, framesDir, every, thumb)
		}

		res := combat.RunSingle(env, a, b, maxFrames, saveLog, onFrame)
		res.Meta.Seed = seed
		if err := os.WriteFile(out, combat.MarshalPretty(res), 0644); err != nil {
			log.Fatalw("write result", "out", out, "err", err)
		}
		fmt.Printf("Single simsvc finished. Winner=%q, frames=%d, hp=%v -> %s\n", res.Winner, res.Frames, res.HP, out)
		return
	}

	type stat struct {
		Wins      map[string]int
		Draws     int
		SumFrames int
		ByFighter map[string]int
		BySource  map[string]int
		Self      map[string]int
		Procs     map[string]int
	}
	st := stat{
		Wins:      map[string]int{},
		ByFighter: map[string]int{},
		BySource:  map[string]int{},
		Self:      map[string]int{},
		Procs:     map[string]int{},
	}
	var mu sync.Mutex
	wg := sync.WaitGroup{}
	workers := 8
	jobs := make(chan int, n)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				a, b, err := lo.build()
				if err != nil {
					log.Errorw("build fighters", "job", i, "err", err)
					continue
				}
				env := &combat.Env{Rng: util.New(util.JobSeed(seed, i)), Settings: settings, Abilities: lo.book}
				res := combat.RunSingle(env, a, b, maxFrames, false, nil)

				mu.Lock()
				if res.Winner != "" {
					st.Wins[res.Winner]++
				} else {
					st.Draws++
				}
				st.SumFrames += res.Frames
				for k, v := range res.DamageByFighter {
					st.ByFighter[k] += v
				}
				for k, v := range res.DamageBySource {
					st.BySource[k] += v
				}
				for k, v := range res.SelfDamage {
					st.Self[k] += v
				}
				for k, v := range res.Procs {
					st.Procs[k] += v
				}
				mu.Unlock()
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	totalDmg := 0
	for _, v := range st.BySource {
		totalDmg += v
	}

	percent := func(m map[string]int) map[string]any {
		out := map[string]any{}
		for k, v := range m {
			share := 0.0
			if totalDmg > 0 {
				share = float64(v) / float64(totalDmg)
			}
			out[k] = map[string]any{"total": v, "ratio": share}
		}
		return out
	}
	winRate := map[string]float64{}
	for _, f := range lo.fighters {
		winRate[f.ID] = float64(st.Wins[f.ID]) / float64(n)
	}

	summary := map[string]any{
		"runs":         n,
		"seed":         seed,
		"win_rate":     winRate,
		"draws":        st.Draws,
		"avg_frames":   float64(st.SumFrames) / float64(n),
		"total_damage": totalDmg,
		"by_fighter":   percent(st.ByFighter),
		"by_source":    percent(st.BySource),
		"self_damage":  st.Self,
		"procs":        st.Procs,
		"fighters":     lo.fighters,
	}
	if err := os.WriteFile(out, combat.MarshalPretty(summary), 0644); err != nil {
		log.Fatalw("write summary", "out", out, "err", err)
	}
	fmt.Printf("Batch %d done -> %s\n", n, filepath.Base(out))
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func loadConfig(dir string) (*loadout, error) {
	lo := &loadout{arena: &config.ArenaConfig{Settings: config.DefaultSettings()}}
	if dir != "" {
		w, a, ar, err := config.LoadAll(dir)
		if err != nil {
			return nil, err
		}
		lo.weapons, lo.abilities, lo.arena = w, a, ar
	}
	lo.catalog = combat.NewCatalog(lo.weapons)
	lo.book = combat.NewAbilityBook(lo.abilities)
	lo.fighters = [2]config.FighterDef{
		lo.arena.Loadout("A", "Spear"),
		lo.arena.Loadout("B", "Dagger"),
	}
	return lo, nil
}

func applyOverrides(f *config.FighterDef, weapon, abilities string) {
	if weapon != "" {
		f.Weapon = weapon
	}
	if abilities != "" {
		f.Abilities = nil
		for _, id := range strings.Split(abilities, ",") {
			if id = strings.TrimSpace(id); id != "" {
				f.Abilities = append(f.Abilities, id)
			}
		}
	}
}

func (lo *loadout) build() (*combat.Fighter, *combat.Fighter, error) {
	var fs [2]*combat.Fighter
	for i, def := range lo.fighters {
		f, err := combat.NewFighter(def.ID, def.Weapon, def.Abilities, lo.catalog)
		if err != nil {
			return nil, nil, fmt.Errorf("fighter %s: %w", def.ID, err)
		}
		if def.Color != "" {
			f.Color = def.Color
		}
		fs[i] = f
	}
	return fs[0], fs[1], nil
}

// frameDumper returns an onFrame hook that writes every Nth frame and the
// final one.
func frameDumper(log *zap.SugaredLogger, dir string, every, thumb int) func(*combat.Battle) {
	r := render.New()
	if every <= 0 {
		every = 1
	}
	return func(b *combat.Battle) {
		if b.Frame%every != 0 && b.State() != combat.StateFinished {
			return
		}
		img := r.Frame(b.Snapshot())
		if thumb > 0 {
			img = render.Thumbnail(img, thumb)
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", b.Frame))
		if err := render.SavePNG(img, path); err != nil {
			log.Warnw("dump frame", "path", path, "err", err)
			return
		}
		log.Debugw("frame dumped", "path", path)
	}
}
