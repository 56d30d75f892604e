package manager

import (
	"context"
	"fmt"
	"time"

	"snake-sync/store"
)

// Session is the view of a game session the state manager needs.
type Session interface {
	ID() string
	Ended() bool
	Length() int
	ApplesEaten() int
	Ticks() int
	StartedAt() time.Time
}

// ResultStore persists finished sessions.
type ResultStore interface {
	Record(ctx context.Context, r store.Result) error
	Summary(ctx context.Context) (store.Summary, error)
}

// StateManager records each session once it ends and keeps the high score.
// A nil store keeps scores in memory only.
type StateManager struct {
	results      ResultStore
	highScore    int
	scoreHistory []int
	recorded     map[string]bool
	now          func() time.Time
}

func NewStateManager(ctx context.Context, results ResultStore) (*StateManager, error) {
	sm := &StateManager{
		results:      results,
		scoreHistory: make([]int, 0),
		recorded:     make(map[string]bool),
		now:          time.Now,
	}

	if results != nil {
		sum, err := results.Summary(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load high score: %w", err)
		}
		sm.highScore = sum.HighScore
	}

	return sm, nil
}

// Observe records s the first time it is seen ended. It reports whether a
// result was written on this call.
func (sm *StateManager) Observe(ctx context.Context, s Session) (bool, error) {
	if !s.Ended() || sm.recorded[s.ID()] {
		return false, nil
	}
	sm.recorded[s.ID()] = true

	length := s.Length()
	sm.scoreHistory = append(sm.scoreHistory, length)
	if length > sm.highScore {
		sm.highScore = length
	}

	if sm.results == nil {
		return true, nil
	}

	r := store.Result{
		SessionID: s.ID(),
		Length:    length,
		Apples:    s.ApplesEaten(),
		Ticks:     s.Ticks(),
		StartedAt: s.StartedAt(),
		EndedAt:   sm.now(),
	}
	if err := sm.results.Record(ctx, r); err != nil {
		return true, err
	}
	return true, nil
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

// GetScoreHistory returns the lengths of sessions finished in this process.
func (sm *StateManager) GetScoreHistory() []int {
	out := make([]int, len(sm.scoreHistory))
	copy(out, sm.scoreHistory)
	return out
}
