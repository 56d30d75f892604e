package manager

import (
	"errors"

	"golang.org/x/exp/rand"

	"snake-sync/game/entity"
	"snake-sync/game/types"
)

// MaxSpawnAttempts bounds the random draws before falling back to a scan of
// the free cells.
const MaxSpawnAttempts = 512

// ErrBoardFull is returned when no lattice cell is free for the apple.
var ErrBoardFull = errors.New("no free cell for apple")

// FoodManager owns the apple: its position, respawn sampling and pickup.
type FoodManager struct {
	board        types.Board
	codec        types.Codec
	rng          *rand.Rand
	collisionMgr *CollisionManager

	apple     types.Instance
	revision  uint64
	exhausted bool
}

func NewFoodManager(board types.Board, rng *rand.Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		board:        board,
		codec:        types.NewCodec(board),
		rng:          rng,
		collisionMgr: collisionMgr,
		apple:        types.NewInstance(types.Position{}),
	}
}

// Place puts the apple at p without sampling.
func (fm *FoodManager) Place(p types.Position) {
	fm.apple = types.NewInstance(p)
	fm.exhausted = false
	fm.revision++
}

// MaybeConsume grows the snake and respawns the apple when the head reached
// it. preTail is where the tail was before this tick's step. It returns
// whether the apple was eaten; a failed respawn is reported through err.
func (fm *FoodManager) MaybeConsume(snake *entity.Snake, queue *entity.DirectionQueue, preTail types.Instance) (bool, error) {
	if fm.exhausted {
		return false, nil
	}
	if !fm.collisionMgr.IsAppleCollision(snake.GetHead().Position, fm.apple.Position) {
		return false, nil
	}

	snake.Grow(preTail.Position, preTail.Rotation)
	queue.Append(types.Stay)

	return true, fm.Respawn(snake)
}

// Respawn samples a new apple position off the snake's body. Uniform draws
// over the lattice are tried first; once MaxSpawnAttempts are rejected the
// remaining free cells are enumerated and one is drawn from them. With no
// free cell the manager stops offering an apple.
func (fm *FoodManager) Respawn(snake *entity.Snake) error {
	for i := 0; i < MaxSpawnAttempts; i++ {
		p := fm.sample()
		if fm.collisionMgr.ValidateSpawnPosition(p, snake) {
			fm.Place(p)
			return nil
		}
	}

	free := fm.collisionMgr.FreeCells(snake)
	if len(free) == 0 {
		fm.exhausted = true
		fm.revision++
		return ErrBoardFull
	}
	fm.Place(free[fm.rng.Intn(len(free))])
	return nil
}

func (fm *FoodManager) sample() types.Position {
	n := 2*fm.board.AppleRange + 1
	gx := fm.rng.Intn(n) - fm.board.AppleRange
	gy := fm.rng.Intn(n) - fm.board.AppleRange
	return fm.codec.ToPosition(gx, gy)
}

// GetApple returns the apple and whether one is on the board.
func (fm *FoodManager) GetApple() (types.Instance, bool) {
	return fm.apple, !fm.exhausted
}

// Revision changes whenever the apple moves or disappears; renderers compare
// it to decide when to re-upload the apple buffer.
func (fm *FoodManager) Revision() uint64 {
	return fm.revision
}

func (fm *FoodManager) Exhausted() bool {
	return fm.exhausted
}
