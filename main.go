package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-sync/app"
	"snake-sync/config"
	"snake-sync/game"
	"snake-sync/game/manager"
	"snake-sync/store"
	"snake-sync/ui"
	"snake-sync/ui/term"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	configPath := flag.String("config", filepath.Join("data", "config.json"), "Path to the JSON config file")
	renderer := flag.String("renderer", "", "Renderer: raylib or terminal (overrides config)")
	speed := flag.Int("speed", 0, "Tick interval in milliseconds (lower = faster, overrides config)")
	seed := flag.Uint64("seed", 0, "Apple placement seed, 0 for time based (overrides config)")
	dbPath := flag.String("db", "", "Results database path, \"-\" to disable (overrides config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for P snapshots (overrides config)")
	logFile := flag.String("log", "", "Log file used by the terminal renderer (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *renderer != "" {
		cfg.Renderer = *renderer
	}
	if *speed > 0 {
		cfg.TickMs = *speed
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	switch *dbPath {
	case "":
	case "-":
		cfg.ResultsDB = ""
	default:
		cfg.ResultsDB = *dbPath
	}
	if *snapshotDir != "" {
		cfg.SnapshotDir = *snapshotDir
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if cfg.Renderer == config.RendererTerminal && cfg.LogFile != "" {
		f, err := openLog(cfg.LogFile)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	ctx := context.Background()

	var results manager.ResultStore
	if cfg.ResultsDB != "" {
		db, err := store.Open(cfg.ResultsDB)
		if err != nil {
			log.Fatalf("Failed to open results: %v", err)
		}
		defer db.Close()
		results = db
	}

	states, err := manager.NewStateManager(ctx, results)
	if err != nil {
		log.Fatalf("Failed to initialize scores: %v", err)
	}

	a := app.New(cfg, states, game.SystemTimeProvider{})

	switch cfg.Renderer {
	case config.RendererTerminal:
		if err := runTerminal(ctx, a); err != nil {
			log.Fatalf("Terminal renderer failed: %v", err)
		}
	default:
		runWindow(ctx, a, cfg)
	}
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func runWindow(ctx context.Context, a *app.App, cfg *config.Config) {
	rl.InitWindow(int32(cfg.WindowWidth), int32(cfg.WindowHeight), "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	renderer := ui.NewRenderer()
	defer renderer.Close()

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		quit := false
		for _, act := range ui.KeyActions() {
			if a.Handle(act) {
				quit = true
			}
		}
		if quit {
			break
		}

		a.Update(ctx)
		f, status := a.Frame()
		renderer.Draw(f, a.Camera(), status)
	}
}

func runTerminal(ctx context.Context, a *app.App) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	renderer := term.NewRenderer(screen)
	events := term.Events(screen)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.Handle(term.ActionFor(ev)) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			a.Update(ctx)
			f, status := a.Frame()
			renderer.Draw(f, a.Camera(), status)
		}
	}
}
