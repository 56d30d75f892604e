// Package snapshot draws a frame into an image and writes it to disk.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"snake-sync/camera"
	"snake-sync/game"
	"snake-sync/game/types"
)

var (
	BackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	BoardColor      = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	BodyColor       = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	HeadColor       = color.RGBA{R: 140, G: 240, B: 160, A: 255}
	AppleColor      = color.RGBA{R: 230, G: 41, B: 55, A: 255}
)

// Render draws f as seen through cam into a width x height image.
func Render(f game.Frame, cam *camera.Camera, status game.Status, width, height int) image.Image {
	cam.SetAspect(width, height)
	vp := cam.ViewProjection()

	dc := gg.NewContext(width, height)
	dc.SetColor(BackgroundColor)
	dc.Clear()

	h := float32(types.BoardHalfExtent)
	x0, y0, ok0 := camera.ProjectWith(vp, types.Position{-h, h, 0}, width, height)
	x1, y1, ok1 := camera.ProjectWith(vp, types.Position{h, -h, 0}, width, height)
	if ok0 && ok1 {
		dc.SetColor(BoardColor)
		dc.DrawRectangle(float64(x0), float64(y0), float64(x1-x0), float64(y1-y0))
		dc.Fill()
	}

	cell := float64(cam.PixelsPerUnit(width, height) * types.Step)

	for i := len(f.Snake) - 1; i >= 0; i-- {
		x, y, ok := camera.ProjectWith(vp, f.Snake[i].Translation(), width, height)
		if !ok {
			continue
		}
		dc.SetColor(BodyColor)
		if i == 0 {
			dc.SetColor(HeadColor)
		}
		side := cell * 0.9
		dc.DrawRectangle(float64(x)-side/2, float64(y)-side/2, side, side)
		dc.Fill()
	}

	for _, raw := range f.Apple {
		x, y, ok := camera.ProjectWith(vp, raw.Translation(), width, height)
		if !ok {
			continue
		}
		dc.SetColor(AppleColor)
		dc.DrawCircle(float64(x), float64(y), cell*0.45)
		dc.Fill()
	}

	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("Length: %d  Apples: %d  Best: %d", status.Length, status.Apples, status.HighScore), 8, 16)

	return dc.Image()
}

// Filename returns the snapshot path for a session at t. format is the file
// extension without the dot.
func Filename(dir, sessionID string, t time.Time, format string) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", sessionID, t.UTC().Format("20060102T150405.000"), format))
}

// Save writes img to path. The format follows the file extension.
func Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
