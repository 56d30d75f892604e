package manager

import (
	"snake-sync/game/entity"
	"snake-sync/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	SelfCollision
	AppleCollision
)

func (c CollisionType) String() string {
	switch c {
	case SelfCollision:
		return "self"
	case AppleCollision:
		return "apple"
	default:
		return "none"
	}
}

// CollisionManager answers position queries against the board lattice.
type CollisionManager struct {
	board types.Board
	codec types.Codec
}

func NewCollisionManager(board types.Board) *CollisionManager {
	return &CollisionManager{
		board: board,
		codec: types.NewCodec(board),
	}
}

// CheckCollision classifies the snake's head after a step. Self collision
// wins over reaching the apple.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake, apple types.Position, hasApple bool) CollisionType {
	if snake.SelfCollision() {
		return SelfCollision
	}
	if hasApple && cm.IsAppleCollision(snake.GetHead().Position, apple) {
		return AppleCollision
	}
	return NoCollision
}

// IsAppleCollision checks if the head sits on the apple
func (cm *CollisionManager) IsAppleCollision(head, apple types.Position) bool {
	return types.Equal(head, apple)
}

// ValidateSpawnPosition checks if a position is free for an apple: on the
// apple lattice and not under any segment.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Position, snake *entity.Snake) bool {
	gx, gy := cm.codec.ToGrid(pos)
	if abs(gx) > cm.board.AppleRange || abs(gy) > cm.board.AppleRange {
		return false
	}
	return !snake.Occupies(pos)
}

// FreeCells lists every apple lattice cell the snake does not cover.
func (cm *CollisionManager) FreeCells(snake *entity.Snake) []types.Position {
	r := cm.board.AppleRange
	free := make([]types.Position, 0, (2*r+1)*(2*r+1))
	for gx := -r; gx <= r; gx++ {
		for gy := -r; gy <= r; gy++ {
			p := cm.codec.ToPosition(gx, gy)
			if !snake.Occupies(p) {
				free = append(free, p)
			}
		}
	}
	return free
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
