package learning_test

import (
	"errors"
	"testing"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
)

func TestNotebook_AddEditDelete(t *testing.T) {
	var notes []model.Note
	nb := learning.NewNotebook(&notes)

	note := nb.Add("remember pointers", []string{"c", "memory"})
	if note.ID == "" {
		t.Fatal("Add() should assign an id")
	}
	if len(notes) != 1 {
		t.Fatalf("len(notes) = %d, want 1", len(notes))
	}

	before := notes[0].Timestamp
	edited, err := nb.Edit(note.ID, "remember pointers and arrays", nil)
	if err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if edited.Content != "remember pointers and arrays" {
		t.Errorf("Edit() content = %q", edited.Content)
	}
	if notes[0].Content != edited.Content {
		t.Error("Edit() should update in place")
	}
	if notes[0].Timestamp.Before(before) {
		t.Error("Edit() should refresh the timestamp")
	}

	if err := nb.Delete(note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("len(notes) after delete = %d, want 0", len(notes))
	}

	if _, err := nb.Edit("missing", "x", nil); !errors.Is(err, learning.ErrNoteNotFound) {
		t.Errorf("Edit(missing) = %v, want ErrNoteNotFound", err)
	}
	if err := nb.Delete("missing"); !errors.Is(err, learning.ErrNoteNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNoteNotFound", err)
	}
}

func TestNotebook_Search(t *testing.T) {
	var notes []model.Note
	nb := learning.NewNotebook(&notes)
	nb.Add("Pointers are addresses", []string{"memory"})
	nb.Add("Loops repeat work", []string{"control-flow"})
	nb.Add("Arrays are contiguous", []string{"Memory", "layout"})

	tests := []struct {
		term string
		want int
	}{
		{"pointers", 1},
		{"memory", 2}, // matches tags "memory" and "Memory"
		{"ARE", 2},
		{"", 3},
		{"nothing-here", 0},
	}
	for _, tt := range tests {
		if got := nb.Search(tt.term); len(got) != tt.want {
			t.Errorf("Search(%q) returned %d notes, want %d", tt.term, len(got), tt.want)
		}
	}
}
