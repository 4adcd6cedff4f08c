// Package preview implements a coalesced background renderer: UI-driven
// scene edits request a new preview frequently, but only the most recent
// request matters once a render is already underway.
package preview

import (
	"context"
	"image"
	"sync"

	"raindiver/engine/scene"
)

type request struct {
	scene    scene.Scene
	settings scene.RenderSettings
}

// Manager owns the single in-flight preview render and the result of the
// most recently completed one.
type Manager struct {
	mu          sync.Mutex
	working     bool
	pending     *request
	lastRequest *request
	wg          sync.WaitGroup

	lastResult *image.RGBA
	lastErr    error
}

// NewManager returns an idle preview manager.
func NewManager() *Manager {
	return &Manager{}
}

// NewRender requests a preview of sc under settings.
//
// If (sc, settings) is identical to the last request this manager
// accepted — whether that request is still rendering, queued, or
// already finished — the call returns immediately without doing
// anything: the UI fires NewRender continuously while the scene isn't
// actually changing, and re-rendering an unchanged preview is wasted
// work. Otherwise, if no render is currently running, one starts
// immediately in the background; if a render is already in flight, this
// request replaces any previously queued one — only the latest request
// survives, since an older in-progress preview of a scene the user has
// already moved past has no value once it finishes.
func (m *Manager) NewRender(sc scene.Scene, settings scene.RenderSettings) {
	m.mu.Lock()
	if m.lastRequest != nil && m.lastRequest.scene == sc && m.lastRequest.settings == settings {
		m.mu.Unlock()
		return
	}
	m.lastRequest = &request{scene: sc, settings: settings}

	if m.working {
		m.pending = &request{scene: sc, settings: settings}
		m.mu.Unlock()
		return
	}
	m.working = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(sc, settings)
}

func (m *Manager) run(sc scene.Scene, settings scene.RenderSettings) {
	for {
		img, err := scene.Render(context.Background(), sc, settings)

		m.mu.Lock()
		m.lastResult = img
		m.lastErr = err
		next := m.pending
		m.pending = nil
		if next == nil {
			m.working = false
			m.mu.Unlock()
			m.wg.Done()
			return
		}
		m.mu.Unlock()

		sc, settings = next.scene, next.settings
	}
}

// WithRender calls fn with the most recently completed render's result
// and error, holding the manager's lock for the duration so a concurrent
// render cannot swap the result out from under the reader.
func (m *Manager) WithRender(fn func(img *image.RGBA, err error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(m.lastResult, m.lastErr)
}

// Working reports whether a render is currently in flight.
func (m *Manager) Working() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.working
}

// Wait blocks until the manager returns to idle, draining any coalesced
// pending request first. Intended for tests and graceful shutdown.
func (m *Manager) Wait() {
	m.wg.Wait()
}
