// Package learning holds the viewer-side engine for a learning module:
// navigation state, progress derivation, notes, bookmarks, resources and
// time tracking. It is independent of the HTTP layer and of persistence.
package learning

import (
	"errors"
	"fmt"

	"lms_backend/internal/model"
)

var (
	ErrSectionLocked     = errors.New("section is locked by sequential progress")
	ErrSectionOutOfRange = errors.New("section index out of range")
	ErrEmptyModule       = errors.New("module has no sections")
)

// Navigator tracks the student's position inside a module and owns the skip
// policy: every jump goes through Authorize, so no caller can bypass the
// sequential-progress rules. The bookmark set is loaded from and written
// back to the progress record.
type Navigator struct {
	module   *model.LearningModule
	settings model.ModuleSettings

	sectionIndex int
	contentIndex int
	bookmarks    map[string]struct{}
}

// NewNavigator positions the viewer at the start of the section recorded in
// progress. A module with zero sections has no valid position.
func NewNavigator(m *model.LearningModule, progress *model.StudentProgress) (*Navigator, error) {
	if len(m.Sections) == 0 {
		return nil, ErrEmptyModule
	}
	section := progress.CurrentSection
	if section < 0 || section >= len(m.Sections) {
		section = 0
	}
	bookmarks := make(map[string]struct{}, len(progress.Bookmarks))
	for _, b := range progress.Bookmarks {
		bookmarks[b] = struct{}{}
	}
	return &Navigator{
		module:       m,
		settings:     m.Settings,
		sectionIndex: section,
		bookmarks:    bookmarks,
	}, nil
}

func (n *Navigator) SectionIndex() int { return n.sectionIndex }
func (n *Navigator) ContentIndex() int { return n.contentIndex }

func (n *Navigator) CurrentSection() *model.LearningSection {
	return &n.module.Sections[n.sectionIndex]
}

func (n *Navigator) CurrentContent() *model.ContentBlock {
	section := n.CurrentSection()
	if n.contentIndex >= len(section.Content) {
		return nil
	}
	return &section.Content[n.contentIndex]
}

// SectionProgress is the fractional position inside the current section.
func (n *Navigator) SectionProgress() float64 {
	section := n.CurrentSection()
	if len(section.Content) == 0 {
		return 0
	}
	return float64(n.contentIndex+1) / float64(len(section.Content))
}

// ModuleProgress is the fractional position across the whole module,
// counting partial progress through the current section. This is finer than
// the index-only percentage the tracker derives; the two are distinct
// numbers shown in different views.
func (n *Navigator) ModuleProgress() float64 {
	return (float64(n.sectionIndex) + n.SectionProgress()) / float64(len(n.module.Sections))
}

// Advance moves to the next content block, rolling over into the next
// section. At the last block of the last section it is a no-op.
func (n *Navigator) Advance() bool {
	section := n.CurrentSection()
	if n.contentIndex < len(section.Content)-1 {
		n.contentIndex++
		return true
	}
	if n.sectionIndex < len(n.module.Sections)-1 {
		n.sectionIndex++
		n.contentIndex = 0
		return true
	}
	return false
}

// Retreat is the left inverse of Advance; at the initial position it is a
// no-op.
func (n *Navigator) Retreat() bool {
	if n.contentIndex > 0 {
		n.contentIndex--
		return true
	}
	if n.sectionIndex > 0 {
		n.sectionIndex--
		n.contentIndex = len(n.CurrentSection().Content) - 1
		return true
	}
	return false
}

// Authorize reports whether a direct jump to the given section is allowed
// under the module settings. Moving backwards or one section ahead is always
// fine; farther jumps need allowSkipping and are refused outright under
// requireSequentialProgress.
func (n *Navigator) Authorize(index int) error {
	if index < 0 || index >= len(n.module.Sections) {
		return ErrSectionOutOfRange
	}
	if index <= n.sectionIndex+1 {
		return nil
	}
	if n.settings.RequireSequentialProgress {
		return ErrSectionLocked
	}
	if !n.settings.AllowSkipping {
		return ErrSectionLocked
	}
	return nil
}

// JumpToSection moves directly to a section, subject to Authorize, and
// resets the content position to the top of that section.
func (n *Navigator) JumpToSection(index int) error {
	if err := n.Authorize(index); err != nil {
		return err
	}
	n.sectionIndex = index
	n.contentIndex = 0
	return nil
}

// AtEnd reports whether the position is the last block of the last section.
func (n *Navigator) AtEnd() bool {
	return n.sectionIndex == len(n.module.Sections)-1 &&
		n.contentIndex == len(n.CurrentSection().Content)-1
}

// AtStart reports whether the position is the very first block.
func (n *Navigator) AtStart() bool {
	return n.sectionIndex == 0 && n.contentIndex == 0
}

// BookmarkKey is the composite key for the current (section, content) pair.
func (n *Navigator) BookmarkKey() string {
	content := n.CurrentContent()
	if content == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s", n.CurrentSection().ID, content.ID)
}

// ToggleBookmark flips the bookmark on the current position and reports
// the key and whether it is now set.
func (n *Navigator) ToggleBookmark() (string, bool) {
	key := n.BookmarkKey()
	if key == "" {
		return "", false
	}
	if _, ok := n.bookmarks[key]; ok {
		delete(n.bookmarks, key)
		return key, false
	}
	n.bookmarks[key] = struct{}{}
	return key, true
}

func (n *Navigator) IsBookmarked(key string) bool {
	_, ok := n.bookmarks[key]
	return ok
}

// Bookmarks returns the bookmark set for writing back into the progress
// record.
func (n *Navigator) Bookmarks() []string {
	out := make([]string, 0, len(n.bookmarks))
	for k := range n.bookmarks {
		out = append(out, k)
	}
	return out
}
