package types

import "github.com/go-gl/mathgl/mgl32"

// Position is a point on the board; z is always 0.
type Position = mgl32.Vec3

// Board describes the toroidal play field and its movement lattice.
type Board struct {
	HalfExtent float32 // coordinates wrap at ±HalfExtent
	Step       float32 // distance travelled per tick
	AppleRange int     // apples spawn on k*Step for k in [-AppleRange, AppleRange]
}

// Game constants
const (
	Step            = 0.1   // Distance a segment moves per tick
	BoardHalfExtent = 1.2   // Wrap bound on both axes
	AppleRange      = 9     // Apple lattice index range
	Epsilon         = 0.001 // Tolerance for position equality
)

// DefaultBoard returns the board the game is played on.
func DefaultBoard() Board {
	return Board{
		HalfExtent: BoardHalfExtent,
		Step:       Step,
		AppleRange: AppleRange,
	}
}

// Direction is the way a segment moves on a tick.
type Direction int

const (
	Stay Direction = iota
	Up
	Right
	Down
	Left
)

// Delta returns the unit movement vector for the direction. Up is +y.
func (d Direction) Delta() (dx, dy float32) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction. Stay is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Stay
	}
}

// Moving reports whether the direction translates a segment.
func (d Direction) Moving() bool {
	return d >= Up && d <= Left
}

func (d Direction) String() string {
	switch d {
	case Stay:
		return "stay"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}
