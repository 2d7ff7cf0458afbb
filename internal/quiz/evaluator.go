// Package quiz implements grading of individual questions and the state
// machine for one quiz attempt.
package quiz

import (
	"sort"
	"strings"

	"lms_backend/internal/model"
)

// Evaluate decides whether a submitted answer is correct for the given
// question. It is pure: no state, no side effects. Unknown question types
// fail closed.
func Evaluate(q *model.QuizQuestion, submitted model.AnswerValue) bool {
	switch q.Type {
	case model.MultipleChoice, model.TrueFalse:
		if submitted.IsList || q.CorrectAnswer.IsList {
			return false
		}
		return submitted.Single == q.CorrectAnswer.Single
	case model.FillBlank:
		return matchFillBlank(q.CorrectAnswer, submitted)
	case model.DragDrop:
		return matchSequences(q.CorrectAnswer, submitted)
	default:
		return false
	}
}

// matchFillBlank compares case-insensitively after trimming. The correct
// answer may be a single string or a list of acceptable strings.
func matchFillBlank(correct, submitted model.AnswerValue) bool {
	if submitted.IsList {
		return false
	}
	got := strings.ToLower(strings.TrimSpace(submitted.Single))
	if got == "" {
		return false
	}

	acceptable := correct.List
	if !correct.IsList {
		acceptable = []string{correct.Single}
	}
	for _, want := range acceptable {
		if strings.ToLower(strings.TrimSpace(want)) == got {
			return true
		}
	}
	return false
}

// matchSequences compares two answer sequences ignoring order: both sides are
// sorted by value before comparison. Drag-drop questions are framed as
// ordering tasks but have always been graded as sets; kept for compatibility
// with recorded scores.
func matchSequences(correct, submitted model.AnswerValue) bool {
	if !correct.IsList || !submitted.IsList {
		return false
	}
	if len(correct.List) != len(submitted.List) {
		return false
	}

	want := append([]string(nil), correct.List...)
	got := append([]string(nil), submitted.List...)
	sort.Strings(want)
	sort.Strings(got)
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
