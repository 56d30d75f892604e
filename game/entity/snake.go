package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"snake-sync/game/types"
)

// Snake is the ordered body of the player, head at index 0. Every segment
// replays its own direction from the DirectionQueue on each tick.
type Snake struct {
	Body []types.Instance
}

func NewSnake(positions ...types.Position) *Snake {
	s := &Snake{Body: make([]types.Instance, 0, len(positions))}
	for _, p := range positions {
		s.Body = append(s.Body, types.NewInstance(p))
	}
	return s
}

// StepAll moves each segment along its queued direction. Segments past the
// end of the queue keep their place.
func (s *Snake) StepAll(q *DirectionQueue, codec types.Codec) {
	n := len(s.Body)
	if q.Len() < n {
		n = q.Len()
	}
	for i := 0; i < n; i++ {
		s.Body[i].Position = codec.Move(s.Body[i].Position, q.At(i))
	}
}

// SelfCollision reports whether any non-head segment sits on the head.
func (s *Snake) SelfCollision() bool {
	if len(s.Body) < 2 {
		return false
	}
	head := s.Body[0].Position
	for i := 1; i < len(s.Body); i++ {
		if types.Equal(s.Body[i].Position, head) {
			return true
		}
	}
	return false
}

// Grow appends a trailing segment.
func (s *Snake) Grow(at types.Position, rotation mgl32.Quat) {
	s.Body = append(s.Body, types.Instance{Position: at, Rotation: rotation})
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p types.Position) bool {
	for _, seg := range s.Body {
		if types.Equal(seg.Position, p) {
			return true
		}
	}
	return false
}

func (s *Snake) GetHead() types.Instance {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Instance {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Positions returns a copy of the segment positions, head first.
func (s *Snake) Positions() []types.Position {
	out := make([]types.Position, len(s.Body))
	for i, seg := range s.Body {
		out[i] = seg.Position
	}
	return out
}
