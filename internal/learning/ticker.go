package learning

import (
	"sync"
	"time"
)

// TimeTracker accumulates watch time for a viewer session: while playing it
// adds one second per tick and reports each increment through the callback.
// The goroutine is owned by the tracker and is guaranteed to stop on Close,
// so a torn-down session can never keep ticking.
type TimeTracker struct {
	mu      sync.Mutex
	playing bool
	seconds int
	onTick  func(total int)

	done      chan struct{}
	closeOnce sync.Once
}

// NewTimeTracker starts paused at the given accumulated seconds.
func NewTimeTracker(initial int, onTick func(total int)) *TimeTracker {
	t := &TimeTracker{
		seconds: initial,
		onTick:  onTick,
		done:    make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *TimeTracker) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.mu.Lock()
			if !t.playing {
				t.mu.Unlock()
				continue
			}
			t.seconds++
			total := t.seconds
			onTick := t.onTick
			t.mu.Unlock()
			if onTick != nil {
				onTick(total)
			}
		}
	}
}

// Play resumes counting. Content interaction events call this too.
func (t *TimeTracker) Play() {
	t.mu.Lock()
	t.playing = true
	t.mu.Unlock()
}

// Pause stops counting without tearing down the tracker.
func (t *TimeTracker) Pause() {
	t.mu.Lock()
	t.playing = false
	t.mu.Unlock()
}

func (t *TimeTracker) Playing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playing
}

// Seconds reports the accumulated watch time.
func (t *TimeTracker) Seconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

// Close stops the ticking goroutine permanently. Idempotent.
func (t *TimeTracker) Close() {
	t.closeOnce.Do(func() { close(t.done) })
}
