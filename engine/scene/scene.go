// Package scene ties a camera, environment, and diver together and
// renders them to an image, fanning the per-pixel geodesic solve out
// across goroutines.
package scene

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"raindiver/engine/camera"
	"raindiver/engine/diver"
	"raindiver/engine/environment"
	"raindiver/engine/geodesic"
)

// Scene is everything the renderer needs to produce one frame.
type Scene struct {
	Camera camera.Camera
	Env    *environment.Environment
	Diver  diver.Diver
	GR     bool
}

// RenderSettings controls output resolution, projection, and quality.
type RenderSettings struct {
	Projection camera.Projection
	Width      int
	Height     int

	// SuperSampling renders at SuperSampling times the target resolution
	// in each dimension, then downscales with a high-quality filter.
	// A value of 1 (or less) disables supersampling.
	SuperSampling int
}

// DefaultRenderSettings returns a reasonable preview-quality configuration.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Projection:    camera.Perspective,
		Width:         960,
		Height:        540,
		SuperSampling: 1,
	}
}

// ErrNoEnvironment is returned by Render when the scene has no background
// to sample.
var ErrNoEnvironment = fmt.Errorf("scene: no environment set")

// shadowColor is the color drawn for rays that fall into the black hole.
var shadowColor = color.RGBA{A: 255}

// Render rasterizes the scene at settings.Width x settings.Height,
// fanning pixel rows out across goroutines. It respects ctx
// cancellation, checked before each row, and returns ctx.Err() if
// canceled mid-render.
func Render(ctx context.Context, sc Scene, settings RenderSettings) (*image.RGBA, error) {
	if sc.Env == nil {
		return nil, ErrNoEnvironment
	}
	if settings.Width <= 0 || settings.Height <= 0 {
		return nil, fmt.Errorf("scene: invalid render dimensions %dx%d", settings.Width, settings.Height)
	}

	ss := settings.SuperSampling
	if ss < 1 {
		ss = 1
	}
	renderW, renderH := settings.Width*ss, settings.Height*ss

	full := image.NewRGBA(image.Rect(0, 0, renderW, renderH))
	r := sc.Diver.Position()

	if err := renderRows(ctx, full, sc, settings.Projection, r, renderW, renderH); err != nil {
		return nil, err
	}

	if ss == 1 {
		return full, nil
	}

	out := image.NewRGBA(image.Rect(0, 0, settings.Width, settings.Height))
	draw.CatmullRom.Scale(out, out.Bounds(), full, full.Bounds(), draw.Over, nil)
	return out, nil
}

// renderRows fans row-tiles out across GOMAXPROCS goroutines, each
// writing disjoint rows of img so no pixel is ever touched by more than
// one goroutine.
func renderRows(ctx context.Context, img *image.RGBA, sc Scene, proj camera.Projection, r float64, w, h int) error {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > h {
		workers = h
	}
	rowsPerTile := (h + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for tileStart := 0; tileStart < h; tileStart += rowsPerTile {
		tileStart := tileStart
		tileEnd := tileStart + rowsPerTile
		if tileEnd > h {
			tileEnd = h
		}
		g.Go(func() error {
			for y := tileStart; y < tileEnd; y++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				renderRow(img, sc, proj, r, y, w, h)
			}
			return nil
		})
	}
	return g.Wait()
}

func renderRow(img *image.RGBA, sc Scene, proj camera.Projection, r float64, y, w, h int) {
	for x := 0; x < w; x++ {
		rain := sc.Camera.PixelToRainAngle(proj, float64(x)+0.5, float64(y)+0.5, w, h)
		mapAngle, ok := geodesic.Solve(rain, r, sc.GR)
		if !ok {
			img.SetRGBA(x, y, shadowColor)
			continue
		}
		img.SetRGBA(x, y, sc.Env.Sample(mapAngle))
	}
}
