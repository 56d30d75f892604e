package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"snake-sync/config"
	"snake-sync/game"
	"snake-sync/game/manager"
	"snake-sync/game/types"
	"snake-sync/input"
	"snake-sync/store"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, results manager.ResultStore) (*App, *game.ManualTimeProvider) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 11
	cfg.WindowWidth, cfg.WindowHeight = 160, 100
	cfg.SnapshotDir = filepath.Join(t.TempDir(), "shots")

	sm, err := manager.NewStateManager(context.Background(), results)
	if err != nil {
		t.Fatalf("NewStateManager failed: %v", err)
	}
	clock := game.NewManualTimeProvider(t0)
	return New(cfg, sm, clock), clock
}

// playTicks advances the clock one interval at a time and updates a.
func playTicks(a *App, clock *game.ManualTimeProvider, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(game.DefaultTickInterval)
		a.Update(context.Background())
	}
}

func TestHandleMoveAndQuit(t *testing.T) {
	a, clock := newTestApp(t, nil)

	if a.Handle(input.MoveTo(types.Up)) {
		t.Fatal("Expected move not to quit")
	}
	before := a.Session().Positions()[0]
	playTicks(a, clock, 1)
	after := a.Session().Positions()[0]
	if !types.Equal(after, types.Position{before.X(), before.Y() + types.Step, 0}) {
		t.Errorf("Expected head to move up from %v, got %v", before, after)
	}

	if !a.Handle(input.Action{Kind: input.Quit}) {
		t.Error("Expected quit action to quit")
	}
}

func TestRestartOnlyAfterEnd(t *testing.T) {
	a, clock := newTestApp(t, nil)
	first := a.Session().ID()

	a.Handle(input.Action{Kind: input.Restart})
	if a.Session().ID() != first || a.Games() != 1 {
		t.Fatal("Expected restart to be ignored while the game is live")
	}

	// A two-segment snake cannot bite itself, so build one that can.
	a.session = game.NewSession(
		game.WithStart(clock.Now()),
		game.WithBody(
			[]types.Position{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}, {0.3, 0, 0}, {0.4, 0, 0}},
			[]types.Direction{types.Left, types.Left, types.Left, types.Left, types.Left},
		),
		game.WithApple(types.Position{0.9, 0.9, 0}),
	)
	for _, d := range []types.Direction{types.Up, types.Right, types.Down} {
		a.Handle(input.MoveTo(d))
		playTicks(a, clock, 1)
	}
	if !a.Session().Ended() {
		t.Fatal("Expected the scripted session to end")
	}
	if hs := a.states.GetHighScore(); hs != 5 {
		t.Errorf("Expected high score 5 after the end, got %d", hs)
	}

	ended := a.Session().ID()
	a.Handle(input.Action{Kind: input.Restart})
	if a.Session().ID() == ended || a.Session().Ended() {
		t.Error("Expected a fresh session after restart")
	}
	if _, status := a.Frame(); status.HighScore != 5 || status.State != game.Idle {
		t.Errorf("Expected idle status carrying the high score, got %+v", status)
	}
}

func TestEndedSessionIsStored(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	a, clock := newTestApp(t, db)
	a.session = game.NewSession(
		game.WithStart(clock.Now()),
		game.WithBody(
			[]types.Position{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}, {0.3, 0, 0}, {0.4, 0, 0}},
			[]types.Direction{types.Left, types.Left, types.Left, types.Left, types.Left},
		),
		game.WithApple(types.Position{0.9, 0.9, 0}),
	)
	for _, d := range []types.Direction{types.Up, types.Right, types.Down} {
		a.Handle(input.MoveTo(d))
		playTicks(a, clock, 1)
	}

	recent, err := db.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != a.Session().ID() || recent[0].Length != 5 || recent[0].Ticks != 3 {
		t.Errorf("Unexpected stored results: %+v", recent)
	}
}

func TestSnapshotWritesFile(t *testing.T) {
	a, _ := newTestApp(t, nil)
	aspect := a.Camera().Aspect

	path, err := a.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if filepath.Ext(path) != ".png" {
		t.Errorf("Expected a png, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected snapshot on disk: %v", err)
	}
	if a.Camera().Aspect != aspect {
		t.Error("Expected the live camera to be left alone")
	}
}

func TestSeededRunsMatch(t *testing.T) {
	a, _ := newTestApp(t, nil)
	b, _ := newTestApp(t, nil)
	pa, _ := a.Session().Apple()
	pb, _ := b.Session().Apple()
	if pa != pb {
		t.Errorf("Expected the same first apple for the same seed, got %v and %v", pa, pb)
	}
}
