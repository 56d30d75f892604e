package game

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"snake-sync/game/entity"
	"snake-sync/game/manager"
	"snake-sync/game/types"
)

// State is the lifecycle phase of a session.
type State int

const (
	Idle    State = iota // no direction yet, nothing moves
	Running              // a direction is pending, ticks step the snake
	Ended                // the snake bit itself; terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Frame is the render-facing output of a session. Revisions change when the
// corresponding buffer must be reallocated (snake length) or re-uploaded
// (apple moved or vanished). Revisions count from zero in every session, so
// SessionID must be part of any cache key built from them.
type Frame struct {
	SessionID     string
	Snake         []types.InstanceRaw
	Apple         []types.InstanceRaw
	SnakeRevision uint64
	AppleRevision uint64
}

// Session owns one game: the snake, its direction history, the apple and the
// tick clock. It is not safe for concurrent use; the frame loop owns it.
type Session struct {
	id        string
	board     types.Board
	codec     types.Codec
	startedAt time.Time

	snake        *entity.Snake
	queue        *entity.DirectionQueue
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	clock        *SimulationClock

	pending     types.Direction
	hasPending  bool
	lastApplied types.Direction
	moved       bool
	ended       bool

	ticks         int
	apples        int
	snakeRevision uint64
	spawnFailed   bool
}

type sessionConfig struct {
	board    types.Board
	interval time.Duration
	start    time.Time
	seed     uint64
	rng      *rand.Rand
	body     []types.Position
	dirs     []types.Direction
	apple    *types.Position
}

// Option customises a new session.
type Option func(*sessionConfig)

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *sessionConfig) { c.interval = d }
}

// WithStart sets the session start time, which is also the clock origin.
func WithStart(t time.Time) Option {
	return func(c *sessionConfig) { c.start = t }
}

// WithSeed seeds apple placement. Zero picks a time-based seed.
func WithSeed(seed uint64) Option {
	return func(c *sessionConfig) { c.seed = seed }
}

// WithRand supplies the random source directly.
func WithRand(r *rand.Rand) Option {
	return func(c *sessionConfig) { c.rng = r }
}

// WithBody replaces the starting snake. dirs is the direction history, head
// first; missing entries are filled with Stay.
func WithBody(positions []types.Position, dirs []types.Direction) Option {
	return func(c *sessionConfig) {
		c.body = positions
		c.dirs = dirs
	}
}

// WithApple places the first apple instead of sampling it.
func WithApple(p types.Position) Option {
	return func(c *sessionConfig) { c.apple = &p }
}

// WithBoard overrides the board geometry.
func WithBoard(b types.Board) Option {
	return func(c *sessionConfig) { c.board = b }
}

// NewSession starts a two-segment snake at the origin heading left, with a
// randomly placed apple.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{
		board:    types.DefaultBoard(),
		interval: DefaultTickInterval,
		body:     []types.Position{{0, 0, 0}, {types.Step, 0, 0}},
		dirs:     []types.Direction{types.Left},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.start.IsZero() {
		cfg.start = time.Now()
	}
	if cfg.rng == nil {
		seed := cfg.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		cfg.rng = rand.New(rand.NewSource(seed))
	}
	if len(cfg.body) == 0 {
		panic("game: session needs at least one segment")
	}

	dirs := make([]types.Direction, len(cfg.body))
	copy(dirs, cfg.dirs)

	collisionMgr := manager.NewCollisionManager(cfg.board)
	s := &Session{
		id:           uuid.New().String(),
		board:        cfg.board,
		codec:        types.NewCodec(cfg.board),
		startedAt:    cfg.start,
		snake:        entity.NewSnake(cfg.body...),
		queue:        entity.NewDirectionQueue(dirs...),
		collisionMgr: collisionMgr,
		foodMgr:      manager.NewFoodManager(cfg.board, cfg.rng, collisionMgr),
		clock:        NewSimulationClock(cfg.interval, cfg.start),
	}

	if cfg.apple != nil {
		s.foodMgr.Place(*cfg.apple)
	} else if err := s.foodMgr.Respawn(s.snake); err != nil {
		s.reportSpawnFailure(err)
	}

	return s
}

// RecordInput stores d as the next direction. Reversing into the body is
// refused, both against the pending direction and against the direction the
// head last moved in. It reports whether d was accepted.
func (s *Session) RecordInput(d types.Direction) bool {
	if s.ended || !d.Moving() {
		return false
	}
	if s.hasPending && d == s.pending.Opposite() {
		return false
	}
	// Stricter than comparing with the pending direction alone: two quick
	// turns within one tick must not fold the head back onto the neck.
	if s.moved && d == s.lastApplied.Opposite() {
		return false
	}
	s.pending = d
	s.hasPending = true
	return true
}

// Tick advances the simulation by one step if the interval has elapsed and a
// direction is pending. It reports whether a step happened.
func (s *Session) Tick(now time.Time) bool {
	if !s.clock.Due(now) || !s.hasPending {
		return false
	}

	d := s.pending
	preTail := s.snake.GetTail()

	s.queue.Push(d, s.snake.Len())
	s.snake.StepAll(s.queue, s.codec)
	s.lastApplied = d
	s.moved = true
	s.ticks++

	apple, hasApple := s.foodMgr.GetApple()
	switch s.collisionMgr.CheckCollision(s.snake, apple.Position, hasApple) {
	case manager.SelfCollision:
		// An apple under the head on the ending tick is left uneaten.
		s.hasPending = false
		s.pending = types.Stay
		s.ended = true
	case manager.AppleCollision:
		eaten, err := s.foodMgr.MaybeConsume(s.snake, s.queue, preTail)
		if eaten {
			s.apples++
			s.snakeRevision++
		}
		if err != nil {
			s.reportSpawnFailure(err)
		}
	}

	s.clock.Advance(now)
	return true
}

func (s *Session) reportSpawnFailure(err error) {
	if s.spawnFailed {
		return
	}
	s.spawnFailed = true
	log.Printf("session %s: apple spawning stopped: %v", s.id, err)
}

// EmitInstances builds the render frame from the current state. It does not
// modify the session, so a failed frame can simply be emitted again.
func (s *Session) EmitInstances() Frame {
	f := Frame{
		SessionID:     s.id,
		Snake:         make([]types.InstanceRaw, 0, s.snake.Len()),
		SnakeRevision: s.snakeRevision,
		AppleRevision: s.foodMgr.Revision(),
	}
	for _, seg := range s.snake.Body {
		f.Snake = append(f.Snake, seg.Raw())
	}
	if apple, ok := s.foodMgr.GetApple(); ok {
		f.Apple = []types.InstanceRaw{apple.Raw()}
	}
	return f
}

// Status is the HUD-facing summary of a session.
type Status struct {
	SessionID string
	State     State
	Length    int
	Apples    int
	HighScore int
	Elapsed   time.Duration
}

// Status summarises the session at now. HighScore is left for the caller.
func (s *Session) Status(now time.Time) Status {
	return Status{
		SessionID: s.id,
		State:     s.State(),
		Length:    s.snake.Len(),
		Apples:    s.apples,
		Elapsed:   s.ElapsedTime(now),
	}
}

func (s *Session) State() State {
	switch {
	case s.ended:
		return Ended
	case s.hasPending:
		return Running
	default:
		return Idle
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Ended() bool {
	return s.ended
}

// Direction returns the pending direction, if any.
func (s *Session) Direction() (types.Direction, bool) {
	return s.pending, s.hasPending
}

func (s *Session) Length() int {
	return s.snake.Len()
}

func (s *Session) ApplesEaten() int {
	return s.apples
}

func (s *Session) Ticks() int {
	return s.ticks
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// ElapsedTime returns how long the session has been running.
func (s *Session) ElapsedTime(now time.Time) time.Duration {
	return now.Sub(s.startedAt)
}

// Positions returns the segment positions, head first.
func (s *Session) Positions() []types.Position {
	return s.snake.Positions()
}

// Directions returns the direction history, head first.
func (s *Session) Directions() []types.Direction {
	return s.queue.Directions()
}

// Apple returns the apple position and whether an apple is on the board.
func (s *Session) Apple() (types.Position, bool) {
	a, ok := s.foodMgr.GetApple()
	return a.Position, ok
}

func (s *Session) Board() types.Board {
	return s.board
}
