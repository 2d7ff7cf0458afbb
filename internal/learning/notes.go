package learning

import (
	"errors"
	"strings"
	"time"

	"lms_backend/internal/model"
)

var ErrNoteNotFound = errors.New("note not found")

// Notebook edits the note list of a progress record in place.
type Notebook struct {
	notes *[]model.Note
}

func NewNotebook(notes *[]model.Note) *Notebook {
	return &Notebook{notes: notes}
}

// Add appends a note and returns it.
func (nb *Notebook) Add(content string, tags []string) model.Note {
	note := model.Note{
		ID:        model.GenerateUUID(),
		Content:   content,
		Timestamp: time.Now(),
		Tags:      tags,
	}
	*nb.notes = append(*nb.notes, note)
	return note
}

// Edit replaces a note's content and tags in place and refreshes its
// timestamp.
func (nb *Notebook) Edit(id, content string, tags []string) (model.Note, error) {
	notes := *nb.notes
	for i := range notes {
		if notes[i].ID == id {
			notes[i].Content = content
			notes[i].Tags = tags
			notes[i].Timestamp = time.Now()
			return notes[i], nil
		}
	}
	return model.Note{}, ErrNoteNotFound
}

// Delete removes a note by id.
func (nb *Notebook) Delete(id string) error {
	notes := *nb.notes
	for i := range notes {
		if notes[i].ID == id {
			*nb.notes = append(notes[:i], notes[i+1:]...)
			return nil
		}
	}
	return ErrNoteNotFound
}

// Search returns the notes whose content or tags contain the term,
// case-insensitively. An empty term returns everything.
func (nb *Notebook) Search(term string) []model.Note {
	term = strings.ToLower(term)
	var out []model.Note
	for _, note := range *nb.notes {
		if term == "" || noteMatches(note, term) {
			out = append(out, note)
		}
	}
	return out
}

func noteMatches(note model.Note, term string) bool {
	if strings.Contains(strings.ToLower(note.Content), term) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
