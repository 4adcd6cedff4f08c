// Package export renders scenes and animations to disk, reporting
// progress and supporting single-shot cooperative cancellation.
// RenderFrame and RenderAnimation run on the calling goroutine and return
// when the work is finished; they do not start a goroutine of their own.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"raindiver/engine/animation"
	"raindiver/engine/scene"
)

// ErrAlreadyRendering is returned by RenderFrame/RenderAnimation when a
// render is already in progress on this Renderer.
var ErrAlreadyRendering = errors.New("export: a render is already in progress")

// ErrCanceled is returned by RenderAnimation when CancelRender was called
// before the animation finished.
var ErrCanceled = errors.New("export: render canceled")

// Renderer drives a single background export at a time.
type Renderer struct {
	mu        sync.Mutex
	rendering bool
	cancelCh  chan struct{}
}

// NewRenderer returns an idle export renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) begin() (chan struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rendering {
		return nil, ErrAlreadyRendering
	}
	r.rendering = true
	r.cancelCh = make(chan struct{})
	return r.cancelCh, nil
}

func (r *Renderer) end() {
	r.mu.Lock()
	r.rendering = false
	r.cancelCh = nil
	r.mu.Unlock()
}

// CancelRender signals any in-progress render to stop at its next frame
// boundary. It is safe to call more than once or when nothing is
// rendering.
func (r *Renderer) CancelRender() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelCh == nil {
		return
	}
	select {
	case <-r.cancelCh:
		// already closed
	default:
		close(r.cancelCh)
	}
}

// Rendering reports whether a render is currently in progress.
func (r *Renderer) Rendering() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rendering
}

// RenderFrame renders a single scene and writes it to path. The image
// format is chosen from path's extension (.png or .jpg/.jpeg; anything
// else defaults to PNG).
func (r *Renderer) RenderFrame(ctx context.Context, sc scene.Scene, settings scene.RenderSettings, path string) error {
	if _, err := r.begin(); err != nil {
		return err
	}
	defer r.end()

	img, err := scene.Render(ctx, sc, settings)
	if err != nil {
		return fmt.Errorf("export: render frame: %w", err)
	}
	return writeImage(img, path)
}

// FrameName derives the on-disk name for frame index out of totalFrames,
// in the form "<stem>.<NNNNN>.<ext>", zero-padded to at least 5 digits
// (or more, if totalFrames needs it).
func FrameName(stem string, index, totalFrames int, ext string) string {
	width := 5
	for d := totalFrames; d >= 100000; d /= 10 {
		width++
	}
	return fmt.Sprintf("%s.%0*d.%s", stem, width, index, strings.TrimPrefix(ext, "."))
}

// RenderAnimation renders every frame of anim to outDir, named via
// FrameName, calling progress after each completed frame. It checks for
// cancellation at each frame boundary and returns ErrCanceled if
// CancelRender was called before completion.
func (r *Renderer) RenderAnimation(ctx context.Context, anim animation.Animation, settings scene.RenderSettings, outDir, stem, ext string, progress func(done, total int)) error {
	cancelCh, err := r.begin()
	if err != nil {
		return err
	}
	defer r.end()

	total := len(anim.Frames)
	for i, frame := range anim.Frames {
		select {
		case <-cancelCh:
			return ErrCanceled
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		img, err := scene.Render(ctx, frame.Scene, settings)
		if err != nil {
			return fmt.Errorf("export: render frame %d: %w", frame.Index, err)
		}

		name := FrameName(stem, i+1, total, ext)
		if err := writeImage(img, filepath.Join(outDir, name)); err != nil {
			return err
		}

		if progress != nil {
			progress(i+1, total)
		}
	}
	return nil
}

func writeImage(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}
