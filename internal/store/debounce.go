package store

import (
	"sync"
	"time"
)

// DefaultSaveDebounce coalesces bursts of profile mutations into one
// write.
const DefaultSaveDebounce = 1500 * time.Millisecond

// Saver debounces calls to a save function. SaveSoon schedules a write;
// repeated calls within the window collapse into one. Flush runs any
// pending write synchronously; call it before shutdown or a language
// switch so the last turn's state is never lost.
type Saver struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	delay   time.Duration

	// runMu serializes save itself: a Flush racing a fired timer must
	// not run two writers against the same file.
	runMu sync.Mutex
	save  func()
}

// NewSaver creates a Saver. A non-positive delay falls back to the
// default window.
func NewSaver(delay time.Duration, save func()) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDebounce
	}
	return &Saver{delay: delay, save: save}
}

// SaveSoon schedules a save after the debounce window. A save already
// pending is left in place.
func (s *Saver) SaveSoon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return
	}
	s.pending = true
	s.timer = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
		s.runSave()
	})
}

// Flush cancels any pending timer and saves synchronously.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.pending = false
	s.mu.Unlock()
	s.runSave()
}

func (s *Saver) runSave() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	s.save()
}
