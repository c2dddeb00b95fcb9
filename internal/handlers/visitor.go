package handlers

import (
	"sync"
	"time"

	"deptsite/internal/game"
)

// gameView is the web renderer for a visitor's game. The controller pushes
// state into it and page handlers read it back out.
type gameView struct {
	Snapshot game.Snapshot
	Ranking  *game.Ranking
}

func (v *gameView) OnStateChange(s game.Snapshot) {
	v.Snapshot = s
	if s.State != game.Finished {
		v.Ranking = nil
	}
}

func (v *gameView) OnFinished(r game.Ranking) {
	v.Ranking = &r
}

// visitorState holds one browser session's game. Handlers reach it through
// WithSessionLock, which serialises requests per session.
type visitorState struct {
	mu           sync.RWMutex
	controller   *game.Controller
	view         *gameView
	lastAccessed time.Time
}

func newVisitorState(catalog game.Catalog) *visitorState {
	v := &visitorState{view: &gameView{}, lastAccessed: time.Now()}
	v.controller = game.NewController(catalog, v.view)
	return v
}

// Touch updates the last access time
func (v *visitorState) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastAccessed = time.Now()
}

// LastAccessed returns the last access time
func (v *visitorState) LastAccessed() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastAccessed
}

// reload swaps in a fresh catalog when nothing was playable before.
func (v *visitorState) reload(catalog game.Catalog) {
	if v.controller.Available() || !catalog.Available() {
		return
	}
	v.view = &gameView{}
	v.controller = game.NewController(catalog, v.view)
}
