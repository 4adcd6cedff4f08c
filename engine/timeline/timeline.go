// Package timeline implements a sparse, keyframed schedule of scenes and
// the piecewise-linear interpolation used to sample it at an arbitrary
// frame.
package timeline

import (
	"reflect"
	"sort"

	"raindiver/engine/animation"
	"raindiver/engine/interpolate"
	"raindiver/engine/scene"
)

// Keyframe pins a scene at a frame number on the timeline.
type Keyframe struct {
	Frame int
	Scene scene.Scene
}

// Timeline is a sparse table of keyframes over an integer frame range,
// kept sorted by Frame. Go has no ordered map in the standard library,
// so a sorted []Keyframe stands in for the original's BTreeMap<i32, Scene>.
//
// A timeline always holds at least one keyframe: construction seeds one
// at StartFrame, and DeleteKeyframe refuses to remove the last one.
type Timeline struct {
	StartFrame   int
	EndFrame     int
	FPS          float64
	CurrentFrame int

	keyframes []Keyframe
}

// New returns a timeline spanning [startFrame, endFrame] at fps, seeded
// with one default-scene keyframe at startFrame.
func New(startFrame, endFrame int, fps float64) *Timeline {
	return &Timeline{
		StartFrame:   startFrame,
		EndFrame:     endFrame,
		FPS:          fps,
		CurrentFrame: startFrame,
		keyframes:    []Keyframe{{Frame: startFrame, Scene: scene.Scene{}}},
	}
}

// Default returns the conventional timeline: frames 1 through 120 at 30fps.
func Default() *Timeline {
	return New(1, 120, 30)
}

// Keyframes returns the keyframes in frame order. The returned slice is
// a copy; mutating it does not affect the timeline.
func (tl *Timeline) Keyframes() []Keyframe {
	out := make([]Keyframe, len(tl.keyframes))
	copy(out, tl.keyframes)
	return out
}

func (tl *Timeline) search(frame int) int {
	return sort.Search(len(tl.keyframes), func(i int) bool { return tl.keyframes[i].Frame >= frame })
}

// SetKeyframe inserts a keyframe at frame, replacing any existing
// keyframe at exactly that frame.
func (tl *Timeline) SetKeyframe(frame int, sc scene.Scene) {
	i := tl.search(frame)
	if i < len(tl.keyframes) && tl.keyframes[i].Frame == frame {
		tl.keyframes[i].Scene = sc
		return
	}
	tl.keyframes = append(tl.keyframes, Keyframe{})
	copy(tl.keyframes[i+1:], tl.keyframes[i:])
	tl.keyframes[i] = Keyframe{Frame: frame, Scene: sc}
}

// AddCurrentKeyframe pins down whatever scene GetScene currently produces
// at CurrentFrame as an explicit keyframe there.
func (tl *Timeline) AddCurrentKeyframe() {
	tl.SetKeyframe(tl.CurrentFrame, tl.GetCurrentScene())
}

// SetSceneIfDifferent sets a keyframe at frame only if sc differs from
// the scene the timeline would already produce there, avoiding redundant
// keyframes from e.g. continuous UI scrubbing that doesn't change state.
func (tl *Timeline) SetSceneIfDifferent(frame int, sc scene.Scene) bool {
	if reflect.DeepEqual(tl.GetScene(frame), sc) {
		return false
	}
	tl.SetKeyframe(frame, sc)
	return true
}

func (tl *Timeline) exactSceneAt(frame int) (scene.Scene, bool) {
	i := tl.search(frame)
	if i < len(tl.keyframes) && tl.keyframes[i].Frame == frame {
		return tl.keyframes[i].Scene, true
	}
	return scene.Scene{}, false
}

// DeleteKeyframe removes the keyframe at exactly frame, if any. The sole
// remaining keyframe on a timeline can never be deleted — the timeline
// always has something to show — so this is a no-op when len(keyframes)
// is 1.
func (tl *Timeline) DeleteKeyframe(frame int) {
	if len(tl.keyframes) == 1 {
		return
	}
	i := tl.search(frame)
	if i >= len(tl.keyframes) || tl.keyframes[i].Frame != frame {
		return
	}
	tl.keyframes = append(tl.keyframes[:i], tl.keyframes[i+1:]...)
}

// MoveKeyframe retimes the keyframe at fromFrame to toFrame, if one
// exists, overwriting any keyframe already at toFrame.
func (tl *Timeline) MoveKeyframe(fromFrame, toFrame int) {
	sc, ok := tl.exactSceneAt(fromFrame)
	if !ok || fromFrame == toFrame {
		return
	}
	tl.SetKeyframe(toFrame, sc)
	tl.DeleteKeyframe(fromFrame)
}

// ClearKeyframes replaces every keyframe with a single one at StartFrame
// holding whatever scene GetScene currently produces at CurrentFrame, so
// clearing never leaves the timeline empty.
func (tl *Timeline) ClearKeyframes() {
	sc := tl.GetCurrentScene()
	tl.keyframes = []Keyframe{{Frame: tl.StartFrame, Scene: sc}}
}

// GetScene samples the timeline at frame, piecewise-linearly
// interpolating the camera and diver state between the bracketing
// keyframes. Frames before the first or after the last keyframe snap to
// that endpoint's scene.
func (tl *Timeline) GetScene(frame int) scene.Scene {
	n := len(tl.keyframes)
	if sc, ok := tl.exactSceneAt(frame); ok {
		return sc
	}
	if frame <= tl.keyframes[0].Frame {
		return tl.keyframes[0].Scene
	}
	if frame >= tl.keyframes[n-1].Frame {
		return tl.keyframes[n-1].Scene
	}

	i := tl.search(frame)
	// i is the first keyframe with Frame >= frame, and by the checks
	// above 0 < i < n since frame sits strictly inside the keyframe span.
	lo, hi := tl.keyframes[i-1], tl.keyframes[i]
	alpha := float64(frame-lo.Frame) / float64(hi.Frame-lo.Frame)
	return lerpScene(lo.Scene, hi.Scene, alpha)
}

// GetCurrentScene samples the timeline at CurrentFrame.
func (tl *Timeline) GetCurrentScene() scene.Scene {
	return tl.GetScene(tl.CurrentFrame)
}

func lerpScene(a, b scene.Scene, alpha float64) scene.Scene {
	out := a
	out.Camera.FOV = interpolate.Lerp(a.Camera.FOV, b.Camera.FOV, alpha)
	out.Camera.R = interpolate.SlerpRotation(a.Camera.R, b.Camera.R, alpha)
	out.Diver.RInit = interpolate.Lerp(a.Diver.RInit, b.Diver.RInit, alpha)
	out.Diver.T = interpolate.Lerp(a.Diver.T, b.Diver.T, alpha)
	// Env and GR are not continuously interpolable; they step from the
	// earlier keyframe, matching the snap-to-endpoint rule applied
	// outside the keyframe span.
	return out
}

// ToAnimation samples every frame from StartFrame through EndFrame
// (inclusive), producing one animation frame per sampled timeline frame,
// indexed by its frame number.
func (tl *Timeline) ToAnimation() animation.Animation {
	frames := make([]animation.Frame, 0, tl.EndFrame-tl.StartFrame+1)
	for f := tl.StartFrame; f <= tl.EndFrame; f++ {
		frames = append(frames, animation.Frame{Index: f, Scene: tl.GetScene(f)})
	}
	return animation.Animation{Frames: frames}
}
