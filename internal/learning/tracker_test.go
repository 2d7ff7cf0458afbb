package learning_test

import (
	"testing"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
)

func moduleWithQuizzes() *model.LearningModule {
	m := testModule(4, 2, model.DefaultModuleSettings())
	m.Sections[1].Quiz = []model.QuizQuestion{{ID: "q1", Type: model.TrueFalse}}
	m.Sections[3].Quiz = []model.QuizQuestion{{ID: "q2", Type: model.TrueFalse}}
	m.Objectives = []model.LearningObjective{
		{ID: "o1", Title: "First"},
		{ID: "o2", Title: "Second"},
	}
	return m
}

func TestSummarize(t *testing.T) {
	m := moduleWithQuizzes()
	p := model.NewStudentProgress(1, "m1")
	p.CurrentSection = 2
	p.CompletedObjectives = []string{"o1"}
	p.QuizScores = map[string]int{"s1": 80, "s3": 60}
	p.TimeSpent = 420

	s := learning.Summarize(m, p)

	if s.SectionPct != 50 {
		t.Errorf("SectionPct = %v, want 50", s.SectionPct)
	}
	if s.ObjectivePct != 50 {
		t.Errorf("ObjectivePct = %v, want 50", s.ObjectivePct)
	}
	if s.QuizPct != 100 {
		t.Errorf("QuizPct = %v, want 100", s.QuizPct)
	}
	if want := (50.0 + 50.0 + 100.0) / 3; s.OverallPct != want {
		t.Errorf("OverallPct = %v, want %v", s.OverallPct, want)
	}
	if s.AverageQuizScore != 70 {
		t.Errorf("AverageQuizScore = %v, want 70", s.AverageQuizScore)
	}
	if s.Grade != "C" {
		t.Errorf("Grade = %q, want C", s.Grade)
	}
	if s.QuizSections != 2 || s.CompletedQuizzes != 2 {
		t.Errorf("quiz counts = %d/%d, want 2/2", s.CompletedQuizzes, s.QuizSections)
	}
	if s.TimeSpent != 420 {
		t.Errorf("TimeSpent = %d, want 420", s.TimeSpent)
	}
}

func TestSummarize_EmptyModuleDerivesZero(t *testing.T) {
	m := &model.LearningModule{}
	p := model.NewStudentProgress(1, "m1")

	s := learning.Summarize(m, p)
	if s.SectionPct != 0 || s.ObjectivePct != 0 || s.QuizPct != 0 || s.OverallPct != 0 {
		t.Errorf("all percentages should be 0, got %+v", s)
	}
	if s.AverageQuizScore != 0 {
		t.Errorf("AverageQuizScore = %v, want 0", s.AverageQuizScore)
	}
	if s.Grade != "F" {
		t.Errorf("Grade = %q, want F", s.Grade)
	}
}

func TestSummarize_NoQuizScoresRecorded(t *testing.T) {
	m := moduleWithQuizzes()
	p := model.NewStudentProgress(1, "m1")

	s := learning.Summarize(m, p)
	if s.QuizPct != 0 {
		t.Errorf("QuizPct = %v, want 0", s.QuizPct)
	}
	if s.AverageQuizScore != 0 {
		t.Errorf("AverageQuizScore with no scores = %v, want 0", s.AverageQuizScore)
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {90, "A"},
		{85, "B"}, {80, "B"},
		{70, "C"},
		{60, "D"},
		{59.9, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := learning.Grade(tt.score); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
