// Package app drives sessions for a front end: it applies decoded key
// presses, ticks the current session, records finished games and hands back
// what to draw.
package app

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"snake-sync/camera"
	"snake-sync/config"
	"snake-sync/game"
	"snake-sync/game/manager"
	"snake-sync/input"
	"snake-sync/ui/snapshot"
)

type App struct {
	cfg     *config.Config
	clock   game.TimeProvider
	rng     *rand.Rand
	states  *manager.StateManager
	camera  *camera.Camera
	session *game.Session
	games   int
}

// New starts the first session. All sessions share one random source so a
// fixed seed replays the whole run.
func New(cfg *config.Config, states *manager.StateManager, clock game.TimeProvider) *App {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(clock.Now().UnixNano())
	}
	a := &App{
		cfg:    cfg,
		clock:  clock,
		rng:    rand.New(rand.NewSource(seed)),
		states: states,
		camera: camera.New(cfg.EyeZ, cfg.WindowWidth, cfg.WindowHeight),
	}
	a.restart()
	return a
}

func (a *App) restart() {
	a.session = game.NewSession(
		game.WithStart(a.clock.Now()),
		game.WithInterval(time.Duration(a.cfg.TickMs)*time.Millisecond),
		game.WithRand(a.rng),
	)
	a.games++
	log.Printf("session %s started (game %d)", a.session.ID(), a.games)
}

// Handle applies one action. It reports whether the player asked to quit.
func (a *App) Handle(act input.Action) bool {
	switch act.Kind {
	case input.Move:
		a.session.RecordInput(act.Direction)
	case input.Restart:
		if a.session.Ended() {
			a.restart()
		}
	case input.Snapshot:
		if path, err := a.Snapshot(); err != nil {
			log.Printf("snapshot failed: %v", err)
		} else {
			log.Printf("snapshot saved to %s", path)
		}
	case input.Quit:
		return true
	}
	return false
}

// Update ticks the session and records it once it ends.
func (a *App) Update(ctx context.Context) {
	if !a.session.Tick(a.clock.Now()) {
		return
	}
	recorded, err := a.states.Observe(ctx, a.session)
	if err != nil {
		log.Printf("failed to record session %s: %v", a.session.ID(), err)
	}
	if recorded {
		log.Printf("session %s ended: length %d, apples %d, ticks %d",
			a.session.ID(), a.session.Length(), a.session.ApplesEaten(), a.session.Ticks())
	}
}

// Frame returns what to draw this frame.
func (a *App) Frame() (game.Frame, game.Status) {
	status := a.session.Status(a.clock.Now())
	status.HighScore = a.states.GetHighScore()
	return a.session.EmitInstances(), status
}

// Snapshot renders the current frame at the configured window size and
// writes it under the snapshot directory.
func (a *App) Snapshot() (string, error) {
	f, status := a.Frame()
	// A copy keeps the live camera's aspect untouched.
	cam := *a.camera
	img := snapshot.Render(f, &cam, status, a.cfg.WindowWidth, a.cfg.WindowHeight)
	path := snapshot.Filename(a.cfg.SnapshotDir, a.session.ID(), a.clock.Now(), strings.ToLower(a.cfg.SnapshotFormat))
	if err := snapshot.Save(path, img); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) Camera() *camera.Camera {
	return a.camera
}

func (a *App) Session() *game.Session {
	return a.session
}

// Games is the number of sessions started so far.
func (a *App) Games() int {
	return a.games
}
