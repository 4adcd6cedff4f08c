package export

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"raindiver/engine/animation"
	"raindiver/engine/camera"
	"raindiver/engine/diver"
	"raindiver/engine/environment"
	"raindiver/engine/scene"
)

func tinyEnvironment(t *testing.T) *environment.Environment {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	env, err := environment.New(img)
	if err != nil {
		t.Fatalf("environment.New: %v", err)
	}
	return env
}

func tinyScene(t *testing.T) scene.Scene {
	return scene.Scene{Camera: camera.New(1), Env: tinyEnvironment(t), Diver: diver.New(20), GR: true}
}

func tinySettings() scene.RenderSettings {
	return scene.RenderSettings{Projection: camera.Perspective, Width: 8, Height: 8, SuperSampling: 1}
}

func TestFrameNameZeroPadsToFiveDigits(t *testing.T) {
	got := FrameName("dive", 7, 100, "png")
	want := "dive.00007.png"
	if got != want {
		t.Errorf("FrameName = %q, want %q", got, want)
	}
}

func TestFrameNameWidensForLargeAnimations(t *testing.T) {
	got := FrameName("dive", 123456, 200000, "png")
	want := "dive.123456.png"
	if got != want {
		t.Errorf("FrameName = %q, want %q", got, want)
	}
}

func TestRenderFrameWritesFile(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()
	path := filepath.Join(dir, "out.png")
	if err := r.RenderFrame(context.Background(), tinyScene(t), tinySettings(), path); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestRenderAnimationWritesAllFrames(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()
	anim := animation.Animation{Frames: []animation.Frame{
		{Index: 1, Scene: tinyScene(t)},
		{Index: 2, Scene: tinyScene(t)},
		{Index: 3, Scene: tinyScene(t)},
	}}

	var progressCalls []int
	err := r.RenderAnimation(context.Background(), anim, tinySettings(), dir, "dive", "png", func(done, total int) {
		progressCalls = append(progressCalls, done)
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("RenderAnimation: %v", err)
	}
	if len(progressCalls) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(progressCalls))
	}
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, FrameName("dive", i+1, 3, "png"))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected frame file %s: %v", path, err)
		}
	}
}

func TestCancelRenderStopsAnimation(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()
	frames := make([]animation.Frame, 50)
	for i := range frames {
		frames[i] = animation.Frame{Index: i + 1, Scene: tinyScene(t)}
	}
	anim := animation.Animation{Frames: frames}

	r.CancelRender() // canceling before a render starts must be a harmless no-op
	err := r.RenderAnimation(context.Background(), anim, tinySettings(), dir, "dive", "png", func(done, total int) {
		if done == 1 {
			r.CancelRender()
		}
	})
	if err != ErrCanceled {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
}

func TestRenderFrameRejectsConcurrentRender(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer()
	frames := make([]animation.Frame, 10)
	for i := range frames {
		frames[i] = animation.Frame{Index: i + 1, Scene: tinyScene(t)}
	}
	anim := animation.Animation{Frames: frames}

	done := make(chan error, 1)
	started := make(chan struct{})
	go func() {
		err := r.RenderAnimation(context.Background(), anim, tinySettings(), dir, "dive", "png", func(doneN, total int) {
			if doneN == 1 {
				close(started)
			}
		})
		done <- err
	}()

	<-started
	if err := r.RenderFrame(context.Background(), tinyScene(t), tinySettings(), filepath.Join(dir, "x.png")); err != ErrAlreadyRendering {
		t.Errorf("expected ErrAlreadyRendering, got %v", err)
	}
	r.CancelRender()
	<-done
}
