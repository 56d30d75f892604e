package entity

import (
	"fmt"

	"snake-sync/game/types"
)

// DirectionQueue records the direction each segment moved on the last tick.
// Index 0 belongs to the head; pushing at the front shifts the history one
// segment down the body.
type DirectionQueue struct {
	dirs []types.Direction
}

// NewDirectionQueue returns a queue holding dirs, head first.
func NewDirectionQueue(dirs ...types.Direction) *DirectionQueue {
	q := &DirectionQueue{dirs: make([]types.Direction, len(dirs))}
	copy(q.dirs, dirs)
	return q
}

// Push inserts d at the front and drops tail entries beyond segments.
func (q *DirectionQueue) Push(d types.Direction, segments int) {
	q.dirs = append(q.dirs, types.Stay)
	copy(q.dirs[1:], q.dirs[:len(q.dirs)-1])
	q.dirs[0] = d
	if len(q.dirs) > segments {
		q.dirs = q.dirs[:segments]
	}
}

// Append adds d behind the current tail entry.
func (q *DirectionQueue) Append(d types.Direction) {
	q.dirs = append(q.dirs, d)
}

// At returns the direction for segment i. Querying past Len is a bug in the
// caller.
func (q *DirectionQueue) At(i int) types.Direction {
	if i < 0 || i >= len(q.dirs) {
		panic(fmt.Sprintf("direction queue: index %d out of range [0,%d)", i, len(q.dirs)))
	}
	return q.dirs[i]
}

// Front returns the head's direction, or Stay for an empty queue.
func (q *DirectionQueue) Front() types.Direction {
	if len(q.dirs) == 0 {
		return types.Stay
	}
	return q.dirs[0]
}

func (q *DirectionQueue) Len() int {
	return len(q.dirs)
}

// Directions returns a copy of the queue, head first.
func (q *DirectionQueue) Directions() []types.Direction {
	out := make([]types.Direction, len(q.dirs))
	copy(out, q.dirs)
	return out
}
