package learning_test

import (
	"errors"
	"fmt"
	"testing"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
)

// testModule builds a module with the given number of sections, each holding
// the given number of content blocks.
func testModule(sections, blocks int, settings model.ModuleSettings) *model.LearningModule {
	m := &model.LearningModule{Settings: settings}
	for s := 0; s < sections; s++ {
		section := model.LearningSection{
			ID:    fmt.Sprintf("s%d", s),
			Title: fmt.Sprintf("Section %d", s),
			Order: s,
		}
		for b := 0; b < blocks; b++ {
			section.Content = append(section.Content, model.ContentBlock{
				ID:   fmt.Sprintf("c%d", b),
				Type: model.TextContent,
				Text: "body",
			})
		}
		m.Sections = append(m.Sections, section)
	}
	return m
}

func newNavigator(t *testing.T, m *model.LearningModule) *learning.Navigator {
	t.Helper()
	nav, err := learning.NewNavigator(m, model.NewStudentProgress(1, "m1"))
	if err != nil {
		t.Fatalf("NewNavigator() error = %v", err)
	}
	return nav
}

func TestNavigator_AdvanceWalksEveryBlock(t *testing.T) {
	const sections, blocks = 3, 4
	nav := newNavigator(t, testModule(sections, blocks, model.DefaultModuleSettings()))

	// M*N-1 advances from the start land exactly on the last block of the
	// last section.
	for i := 0; i < sections*blocks-1; i++ {
		if !nav.Advance() {
			t.Fatalf("Advance() #%d reported terminal early", i)
		}
	}
	if !nav.AtEnd() {
		t.Errorf("position = (%d,%d), want terminal", nav.SectionIndex(), nav.ContentIndex())
	}
	if nav.Advance() {
		t.Error("Advance() at the end should be a no-op")
	}
	if nav.SectionIndex() != sections-1 || nav.ContentIndex() != blocks-1 {
		t.Errorf("terminal position moved to (%d,%d)", nav.SectionIndex(), nav.ContentIndex())
	}
}

func TestNavigator_RetreatIsLeftInverseOfAdvance(t *testing.T) {
	nav := newNavigator(t, testModule(3, 2, model.DefaultModuleSettings()))

	type pos struct{ s, c int }
	var trail []pos
	for {
		trail = append(trail, pos{nav.SectionIndex(), nav.ContentIndex()})
		if !nav.Advance() {
			break
		}
	}

	for i := len(trail) - 2; i >= 0; i-- {
		if !nav.Retreat() {
			t.Fatalf("Retreat() reported initial early at trail index %d", i)
		}
		got := pos{nav.SectionIndex(), nav.ContentIndex()}
		if got != trail[i] {
			t.Fatalf("Retreat() landed at %+v, want %+v", got, trail[i])
		}
	}

	if !nav.AtStart() {
		t.Error("full retreat should return to the initial position")
	}
	if nav.Retreat() {
		t.Error("Retreat() at the initial position should be a no-op")
	}
}

func TestNavigator_JumpPolicy(t *testing.T) {
	tests := []struct {
		name     string
		settings model.ModuleSettings
		from     int
		target   int
		wantErr  error
	}{
		{"backward always allowed", model.ModuleSettings{}, 2, 0, nil},
		{"one ahead allowed", model.ModuleSettings{}, 1, 2, nil},
		{"skip allowed when enabled", model.ModuleSettings{AllowSkipping: true}, 0, 3, nil},
		{"skip refused when disabled", model.ModuleSettings{}, 0, 3, learning.ErrSectionLocked},
		{"sequential refuses far jump", model.ModuleSettings{AllowSkipping: true, RequireSequentialProgress: true}, 0, 3, learning.ErrSectionLocked},
		{"sequential allows one ahead", model.ModuleSettings{RequireSequentialProgress: true}, 1, 2, nil},
		{"out of range", model.ModuleSettings{AllowSkipping: true}, 0, 9, learning.ErrSectionOutOfRange},
		{"negative", model.ModuleSettings{AllowSkipping: true}, 0, -1, learning.ErrSectionOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := newNavigator(t, testModule(5, 2, tt.settings))
			for nav.SectionIndex() < tt.from {
				if err := nav.JumpToSection(nav.SectionIndex() + 1); err != nil {
					t.Fatalf("setup jump failed: %v", err)
				}
			}

			err := nav.JumpToSection(tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("JumpToSection(%d) = %v, want %v", tt.target, err, tt.wantErr)
			}
			if err == nil {
				if nav.SectionIndex() != tt.target {
					t.Errorf("SectionIndex() = %d, want %d", nav.SectionIndex(), tt.target)
				}
				if nav.ContentIndex() != 0 {
					t.Errorf("ContentIndex() after jump = %d, want 0", nav.ContentIndex())
				}
			}
		})
	}
}

func TestNavigator_Progress(t *testing.T) {
	nav := newNavigator(t, testModule(4, 5, model.DefaultModuleSettings()))

	// First block of the first section: 1/5 of a section, over 4 sections.
	if got := nav.SectionProgress(); got != 0.2 {
		t.Errorf("SectionProgress() = %v, want 0.2", got)
	}
	if got := nav.ModuleProgress(); got != 0.05 {
		t.Errorf("ModuleProgress() = %v, want 0.05", got)
	}

	for nav.Advance() {
	}
	if got := nav.SectionProgress(); got != 1 {
		t.Errorf("SectionProgress() at end = %v, want 1", got)
	}
	if got := nav.ModuleProgress(); got != 1 {
		t.Errorf("ModuleProgress() at end = %v, want 1", got)
	}
}

func TestNavigator_BookmarkToggleRoundTrips(t *testing.T) {
	nav := newNavigator(t, testModule(2, 2, model.DefaultModuleSettings()))

	key, set := nav.ToggleBookmark()
	if key != "s0-c0" {
		t.Errorf("bookmark key = %q, want s0-c0", key)
	}
	if !set || !nav.IsBookmarked(key) {
		t.Error("first toggle should set the bookmark")
	}

	_, set = nav.ToggleBookmark()
	if set || nav.IsBookmarked(key) {
		t.Error("second toggle should clear the bookmark")
	}
	if len(nav.Bookmarks()) != 0 {
		t.Errorf("Bookmarks() = %v, want empty", nav.Bookmarks())
	}
}

func TestNavigator_RestoresPositionAndBookmarks(t *testing.T) {
	m := testModule(3, 2, model.DefaultModuleSettings())
	progress := model.NewStudentProgress(1, "m1")
	progress.CurrentSection = 2
	progress.Bookmarks = []string{"s0-c1"}

	nav, err := learning.NewNavigator(m, progress)
	if err != nil {
		t.Fatalf("NewNavigator() error = %v", err)
	}
	if nav.SectionIndex() != 2 {
		t.Errorf("SectionIndex() = %d, want 2", nav.SectionIndex())
	}
	if !nav.IsBookmarked("s0-c1") {
		t.Error("bookmark from the progress record should be restored")
	}

	// Out-of-range persisted section falls back to the start.
	progress.CurrentSection = 99
	nav, err = learning.NewNavigator(m, progress)
	if err != nil {
		t.Fatalf("NewNavigator() error = %v", err)
	}
	if nav.SectionIndex() != 0 {
		t.Errorf("SectionIndex() = %d, want 0", nav.SectionIndex())
	}
}

func TestNavigator_EmptyModule(t *testing.T) {
	m := &model.LearningModule{Settings: model.DefaultModuleSettings()}
	if _, err := learning.NewNavigator(m, model.NewStudentProgress(1, "m1")); !errors.Is(err, learning.ErrEmptyModule) {
		t.Errorf("NewNavigator() = %v, want ErrEmptyModule", err)
	}
}
