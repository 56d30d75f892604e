package entity

import (
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"snake-sync/game/types"
)

func TestDirectionQueuePush(t *testing.T) {
	tests := []struct {
		name     string
		initial  []types.Direction
		push     types.Direction
		segments int
		want     []types.Direction
	}{
		{"Shift and trim", []types.Direction{types.Left, types.Stay}, types.Up, 2, []types.Direction{types.Up, types.Left}},
		{"Grow into room", []types.Direction{types.Left}, types.Left, 2, []types.Direction{types.Left, types.Left}},
		{"Drops appended stay", []types.Direction{types.Up, types.Left, types.Stay}, types.Right, 3, []types.Direction{types.Right, types.Up, types.Left}},
		{"Empty queue", nil, types.Down, 1, []types.Direction{types.Down}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewDirectionQueue(tt.initial...)
			q.Push(tt.push, tt.segments)
			if got := q.Directions(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDirectionQueueAtOutOfRange(t *testing.T) {
	q := NewDirectionQueue(types.Left)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for out of range index")
		}
	}()
	q.At(1)
}

func TestDirectionQueueFront(t *testing.T) {
	q := NewDirectionQueue()
	if q.Front() != types.Stay {
		t.Errorf("Expected Stay for empty queue, got %v", q.Front())
	}
	q.Push(types.Right, 1)
	if q.Front() != types.Right {
		t.Errorf("Expected Right, got %v", q.Front())
	}
}

func TestSnakeStepAllTrailsHead(t *testing.T) {
	codec := types.NewCodec(types.DefaultBoard())
	s := NewSnake(types.Position{0, 0, 0}, types.Position{0.1, 0, 0})
	q := NewDirectionQueue(types.Left, types.Stay)

	q.Push(types.Left, s.Len())
	s.StepAll(q, codec)

	want := []types.Position{{-0.1, 0, 0}, {0, 0, 0}}
	for i, p := range s.Positions() {
		if !types.Equal(p, want[i]) {
			t.Errorf("Segment %d: expected %v, got %v", i, want[i], p)
		}
	}
}

func TestSnakeStepAllWraps(t *testing.T) {
	codec := types.NewCodec(types.DefaultBoard())
	start := types.Position{types.BoardHalfExtent - types.Step/2, 0, 0}
	s := NewSnake(start)
	q := NewDirectionQueue(types.Right)

	s.StepAll(q, codec)

	if got := s.GetHead().Position.X(); got != -types.BoardHalfExtent {
		t.Errorf("Expected head to wrap to %v, got %v", float32(-types.BoardHalfExtent), got)
	}
}

func TestSnakeStepAllShortQueue(t *testing.T) {
	codec := types.NewCodec(types.DefaultBoard())
	s := NewSnake(types.Position{0, 0, 0}, types.Position{0.1, 0, 0})
	q := NewDirectionQueue(types.Up)

	s.StepAll(q, codec)

	if !types.Equal(s.GetTail().Position, types.Position{0.1, 0, 0}) {
		t.Errorf("Expected tail without a queued direction to stay, got %v", s.GetTail().Position)
	}
}

func TestSnakeSelfCollision(t *testing.T) {
	tests := []struct {
		name      string
		positions []types.Position
		want      bool
	}{
		{"Single segment", []types.Position{{0, 0, 0}}, false},
		{"Straight line", []types.Position{{0, 0, 0}, {0.1, 0, 0}, {0.2, 0, 0}}, false},
		{"Adjacent overlap", []types.Position{{0, 0, 0}, {0, 0, 0}}, true},
		{"Non-adjacent overlap", []types.Position{{0.1, 0, 0}, {0.1, 0.1, 0}, {0, 0.1, 0}, {0, 0, 0}, {0.1, 0, 0}}, true},
		{"Within epsilon", []types.Position{{0.3, 0, 0}, {0.4, 0, 0}, {0.1 + 0.1 + 0.1, 0, 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSnake(tt.positions...)
			if got := s.SelfCollision(); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSnakeGrow(t *testing.T) {
	s := NewSnake(types.Position{0, 0, 0})
	s.Grow(types.Position{0.1, 0, 0}, mgl32.QuatIdent())

	if s.Len() != 2 {
		t.Fatalf("Expected 2 segments, got %d", s.Len())
	}
	if !s.Occupies(types.Position{0.1, 0, 0}) {
		t.Error("Expected grown segment to be occupied")
	}
	if s.Occupies(types.Position{0.2, 0, 0}) {
		t.Error("Expected free cell to be unoccupied")
	}
}
