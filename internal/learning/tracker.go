package learning

import (
	"lms_backend/internal/model"
)

// Summary is the derived progress view for one student in one module. All
// fields are recomputed from the snapshot on every call; nothing is cached.
type Summary struct {
	SectionPct       float64 `json:"sectionProgress"`
	ObjectivePct     float64 `json:"objectiveProgress"`
	QuizPct          float64 `json:"quizProgress"`
	OverallPct       float64 `json:"overallProgress"`
	AverageQuizScore float64 `json:"averageQuizScore"`
	Grade            string  `json:"grade"`
	CompletedQuizzes int     `json:"completedQuizzes"`
	QuizSections     int     `json:"quizSections"`
	TimeSpent        int     `json:"timeSpent"`
}

// Summarize derives the progress percentages and letter grade from a
// progress snapshot against the static module. Zero denominators (no
// sections, objectives or quizzes) derive 0, never NaN.
//
// SectionPct deliberately counts whole sections by index, which is coarser
// than the navigator's fractional ModuleProgress; the two numbers feed
// different views and must stay distinct.
func Summarize(m *model.LearningModule, p *model.StudentProgress) Summary {
	var s Summary

	if total := len(m.Sections); total > 0 {
		completed := p.CurrentSection
		if completed < 0 {
			completed = 0
		}
		s.SectionPct = float64(completed) / float64(total) * 100
	}

	if total := len(m.Objectives); total > 0 {
		s.ObjectivePct = float64(len(p.CompletedObjectives)) / float64(total) * 100
	}

	s.QuizSections = m.QuizSectionCount()
	s.CompletedQuizzes = len(p.QuizScores)
	if s.QuizSections > 0 {
		s.QuizPct = float64(s.CompletedQuizzes) / float64(s.QuizSections) * 100
	}

	s.OverallPct = (s.SectionPct + s.ObjectivePct + s.QuizPct) / 3

	if len(p.QuizScores) > 0 {
		sum := 0
		for _, score := range p.QuizScores {
			sum += score
		}
		s.AverageQuizScore = float64(sum) / float64(len(p.QuizScores))
	}

	s.Grade = Grade(s.AverageQuizScore)
	s.TimeSpent = p.TimeSpent
	return s
}

// Grade maps a score to a letter grade with inclusive lower bounds.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
