package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-sync/camera"
	"snake-sync/game"
	"snake-sync/game/types"
	"snake-sync/input"
)

const (
	segmentSize = 0.095 // slightly under one step so segments read as separate
	hudPadding  = 10
)

var (
	snakeColor = rl.Color{R: 80, G: 200, B: 120, A: 255}
	headColor  = rl.Color{R: 140, G: 240, B: 160, A: 255}
	appleColor = rl.Red
	boardColor = rl.Color{R: 40, G: 40, B: 40, A: 255}
)

// Renderer draws frames into a raylib window. The snake and apple share one
// cube mesh; each instance matrix from the frame becomes a draw transform.
type Renderer struct {
	screenWidth  int32
	screenHeight int32

	mesh     rl.Mesh
	snakeMat rl.Material
	headMat  rl.Material
	appleMat rl.Material

	// Transforms are rebuilt only when the session, a revision or the count
	// changes.
	sessionID     string
	snakeRevision uint64
	appleRevision uint64
	snake         []rl.Matrix
	apple         []rl.Matrix
	loaded        bool
}

// NewRenderer allocates GPU resources. The window must already be open.
func NewRenderer() *Renderer {
	r := &Renderer{
		mesh:     rl.GenMeshCube(segmentSize, segmentSize, segmentSize),
		snakeMat: newMaterial(snakeColor),
		headMat:  newMaterial(headColor),
		appleMat: newMaterial(appleColor),
		loaded:   true,
	}
	r.UpdateDimensions()
	return r
}

func newMaterial(c rl.Color) rl.Material {
	m := rl.LoadMaterialDefault()
	m.Maps.Color = c
	return m
}

// Close releases the mesh and materials.
func (r *Renderer) Close() {
	r.release(rl.UnloadMesh, rl.UnloadMaterial)
}

func (r *Renderer) release(unloadMesh func(*rl.Mesh), unloadMaterial func(rl.Material)) {
	if !r.loaded {
		return
	}
	unloadMesh(&r.mesh)
	for _, m := range []rl.Material{r.snakeMat, r.headMat, r.appleMat} {
		unloadMaterial(m)
	}
	r.loaded = false
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

// Size returns the current window size in pixels.
func (r *Renderer) Size() (int, int) {
	return int(r.screenWidth), int(r.screenHeight)
}

// Draw renders one frame. The camera's aspect is kept in step with the
// window.
func (r *Renderer) Draw(f game.Frame, cam *camera.Camera, status game.Status) {
	r.UpdateDimensions()
	cam.SetAspect(int(r.screenWidth), int(r.screenHeight))
	r.sync(f)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode3D(toCamera3D(cam))
	half := float32(types.BoardHalfExtent)
	rl.DrawCube(rl.NewVector3(0, 0, -segmentSize), 2*half, 2*half, 0.01, boardColor)
	for i, m := range r.snake {
		mat := r.snakeMat
		if i == 0 {
			mat = r.headMat
		}
		rl.DrawMesh(r.mesh, mat, m)
	}
	for _, m := range r.apple {
		rl.DrawMesh(r.mesh, r.appleMat, m)
	}
	rl.EndMode3D()

	r.drawHUD(status)
	rl.EndDrawing()
}

// sync refreshes the cached transforms from f.
func (r *Renderer) sync(f game.Frame) {
	fresh := f.SessionID != r.sessionID
	r.sessionID = f.SessionID

	if fresh || f.SnakeRevision != r.snakeRevision || len(r.snake) != len(f.Snake) {
		r.snake = make([]rl.Matrix, len(f.Snake))
		r.snakeRevision = f.SnakeRevision
	}
	for i, raw := range f.Snake {
		r.snake[i] = toMatrix(raw)
	}

	if fresh || f.AppleRevision != r.appleRevision || len(r.apple) != len(f.Apple) {
		r.apple = make([]rl.Matrix, len(f.Apple))
		for i, raw := range f.Apple {
			r.apple[i] = toMatrix(raw)
		}
		r.appleRevision = f.AppleRevision
	}
}

func (r *Renderer) drawHUD(s game.Status) {
	fontSize := r.screenHeight / 30
	if fontSize < 12 {
		fontSize = 12
	}
	lineHeight := fontSize + 4
	x, y := int32(hudPadding), int32(hudPadding)

	rl.DrawText(fmt.Sprintf("Length: %d", s.Length), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Apples: %d", s.Apples), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(fmt.Sprintf("Best: %d", s.HighScore), x, y, fontSize, rl.White)
	y += lineHeight
	rl.DrawText(formatElapsed(s.Elapsed), x, y, fontSize, rl.LightGray)

	if msg := statusMessage(s.State); msg != "" {
		w := rl.MeasureText(msg, fontSize)
		rl.DrawText(msg, (r.screenWidth-w)/2, r.screenHeight-2*lineHeight, fontSize, rl.Yellow)
	}
}

// statusMessage is the hint shown at the bottom of the screen.
func statusMessage(s game.State) string {
	switch s {
	case game.Idle:
		return "Press an arrow key or WASD to start"
	case game.Ended:
		return "Game Over! Press R to restart"
	default:
		return ""
	}
}

func formatElapsed(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// toMatrix converts a column-major instance model matrix to raylib's layout,
// whose field Mi holds element i of the same column-major array.
func toMatrix(raw types.InstanceRaw) rl.Matrix {
	m := raw.Model
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

func toCamera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Eye.X(), c.Eye.Y(), c.Eye.Z()),
		Target:     rl.NewVector3(c.Target.X(), c.Target.Y(), c.Target.Z()),
		Up:         rl.NewVector3(c.Up.X(), c.Up.Y(), c.Up.Z()),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

type binding struct {
	key    int32
	action input.Action
}

var keyBindings = []binding{
	{rl.KeyUp, input.MoveTo(types.Up)},
	{rl.KeyW, input.MoveTo(types.Up)},
	{rl.KeyDown, input.MoveTo(types.Down)},
	{rl.KeyS, input.MoveTo(types.Down)},
	{rl.KeyLeft, input.MoveTo(types.Left)},
	{rl.KeyA, input.MoveTo(types.Left)},
	{rl.KeyRight, input.MoveTo(types.Right)},
	{rl.KeyD, input.MoveTo(types.Right)},
	{rl.KeyR, input.Action{Kind: input.Restart}},
	{rl.KeyP, input.Action{Kind: input.Snapshot}},
	{rl.KeyQ, input.Action{Kind: input.Quit}},
}

// KeyActions returns the actions for keys pressed since the last frame, in
// binding order.
func KeyActions() []input.Action {
	return actionsFor(func(key int32) bool { return rl.IsKeyPressed(key) })
}

func actionsFor(pressed func(int32) bool) []input.Action {
	var out []input.Action
	for _, b := range keyBindings {
		if pressed(b.key) {
			out = append(out, b.action)
		}
	}
	return out
}
