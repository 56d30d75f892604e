// Package term renders the board into a terminal. Frames are projected with
// the same camera as the window renderer; each character cell covers two
// virtual pixels vertically so the board keeps its shape.
package term

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"snake-sync/camera"
	"snake-sync/game"
	"snake-sync/game/types"
	"snake-sync/input"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	appleStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const (
	bodyRune  = 'o'
	headRune  = '@'
	appleRune = '●'
)

type Renderer struct {
	screen tcell.Screen
}

func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Draw renders one frame. The bottom row is reserved for the HUD.
func (r *Renderer) Draw(f game.Frame, cam *camera.Camera, status game.Status) {
	r.screen.Clear()
	width, height := r.screen.Size()
	rows := height - 1
	if width <= 0 || rows <= 0 {
		r.screen.Show()
		return
	}

	cam.SetAspect(width, 2*rows)
	vp := cam.ViewProjection()

	r.drawBorder(vp, width, rows)
	for _, raw := range f.Apple {
		r.plot(vp, raw.Translation(), width, rows, appleRune, appleStyle)
	}
	// Tail first so the head wins a shared cell.
	for i := len(f.Snake) - 1; i >= 0; i-- {
		ch, style := bodyRune, bodyStyle
		if i == 0 {
			ch, style = headRune, headStyle
		}
		r.plot(vp, f.Snake[i].Translation(), width, rows, ch, style)
	}

	r.drawHUD(status, width, rows)
	r.screen.Show()
}

func (r *Renderer) plot(vp mgl32.Mat4, p types.Position, width, rows int, ch rune, style tcell.Style) {
	x, y, ok := Cell(vp, p, width, rows)
	if !ok {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

func (r *Renderer) drawBorder(vp mgl32.Mat4, width, rows int) {
	h := float32(types.BoardHalfExtent)
	x0, y0, ok0 := Cell(vp, types.Position{-h, h, 0}, width, rows)
	x1, y1, ok1 := Cell(vp, types.Position{h, -h, 0}, width, rows)
	if !ok0 || !ok1 {
		return
	}
	for x := x0; x <= x1; x++ {
		r.screen.SetContent(x, y0, '─', nil, borderStyle)
		r.screen.SetContent(x, y1, '─', nil, borderStyle)
	}
	for y := y0; y <= y1; y++ {
		r.screen.SetContent(x0, y, '│', nil, borderStyle)
		r.screen.SetContent(x1, y, '│', nil, borderStyle)
	}
	r.screen.SetContent(x0, y0, '┌', nil, borderStyle)
	r.screen.SetContent(x1, y0, '┐', nil, borderStyle)
	r.screen.SetContent(x0, y1, '└', nil, borderStyle)
	r.screen.SetContent(x1, y1, '┘', nil, borderStyle)
}

func (r *Renderer) drawHUD(s game.Status, width, row int) {
	text := fmt.Sprintf("Length: %d  Apples: %d  Best: %d  %s", s.Length, s.Apples, s.HighScore, formatElapsed(s.Elapsed))
	x := r.text(0, row, text, hudStyle, width)
	switch s.State {
	case game.Idle:
		r.text(x+2, row, "arrows/WASD to start", hintStyle, width)
	case game.Ended:
		r.text(x+2, row, "Game Over! R to restart, Q to quit", hintStyle, width)
	}
}

// text writes s from column x and returns the column after it.
func (r *Renderer) text(x, y int, s string, style tcell.Style, width int) int {
	for _, ch := range s {
		if x >= width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}

// Cell projects p into a width x rows character grid. ok is false when the
// point is behind the eye or off screen.
func Cell(vp mgl32.Mat4, p types.Position, width, rows int) (x, y int, ok bool) {
	px, py, ok := camera.ProjectWith(vp, p, width, 2*rows)
	if !ok {
		return 0, 0, false
	}
	x = int(math.Floor(float64(px)))
	y = int(math.Floor(float64(py) / 2))
	if x < 0 || x >= width || y < 0 || y >= rows {
		return 0, 0, false
	}
	return x, y, true
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// ActionFor decodes a key event.
func ActionFor(ev *tcell.EventKey) input.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.MoveTo(types.Up)
	case tcell.KeyDown:
		return input.MoveTo(types.Down)
	case tcell.KeyLeft:
		return input.MoveTo(types.Left)
	case tcell.KeyRight:
		return input.MoveTo(types.Right)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.Action{Kind: input.Quit}
	case tcell.KeyRune:
		return input.FromRune(ev.Rune())
	default:
		return input.Action{}
	}
}

// Events forwards screen events on a channel until the screen is finalised.
func Events(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	go func() {
		defer close(ch)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}
