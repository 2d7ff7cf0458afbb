package learning_test

import (
	"testing"

	"lms_backend/internal/learning"
)

func TestTimeTracker_StartsPausedAtInitial(t *testing.T) {
	tr := learning.NewTimeTracker(90, nil)
	defer tr.Close()

	if tr.Playing() {
		t.Error("tracker should start paused")
	}
	if tr.Seconds() != 90 {
		t.Errorf("Seconds() = %d, want 90", tr.Seconds())
	}
}

func TestTimeTracker_PlayPause(t *testing.T) {
	tr := learning.NewTimeTracker(0, nil)
	defer tr.Close()

	tr.Play()
	if !tr.Playing() {
		t.Error("Play() should set the playing flag")
	}
	tr.Pause()
	if tr.Playing() {
		t.Error("Pause() should clear the playing flag")
	}
}

func TestTimeTracker_CloseIsIdempotent(t *testing.T) {
	tr := learning.NewTimeTracker(0, nil)
	tr.Close()
	tr.Close()
}
