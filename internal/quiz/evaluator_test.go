package quiz_test

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
)

func TestEvaluate_MultipleChoice(t *testing.T) {
	q := &model.QuizQuestion{
		ID:            "q1",
		Type:          model.MultipleChoice,
		Options:       []string{"malloc()", "free()", "calloc()"},
		CorrectAnswer: model.SingleAnswer("malloc()"),
	}

	if !quiz.Evaluate(q, model.SingleAnswer("malloc()")) {
		t.Error("exact match should be correct")
	}
	if quiz.Evaluate(q, model.SingleAnswer("free()")) {
		t.Error("wrong option should be incorrect")
	}
	if quiz.Evaluate(q, model.SingleAnswer("Malloc()")) {
		t.Error("multiple-choice comparison is case-sensitive")
	}
	if quiz.Evaluate(q, model.AnswerValue{}) {
		t.Error("empty answer should be incorrect")
	}
}

func TestEvaluate_TrueFalse(t *testing.T) {
	q := &model.QuizQuestion{
		ID:            "q1",
		Type:          model.TrueFalse,
		CorrectAnswer: model.SingleAnswer("true"),
	}

	if !quiz.Evaluate(q, model.SingleAnswer("true")) {
		t.Error("submitting the correct answer should be correct")
	}
	if quiz.Evaluate(q, model.SingleAnswer("false")) {
		t.Error("submitting the wrong answer should be incorrect")
	}
}

func TestEvaluate_FillBlank(t *testing.T) {
	tests := []struct {
		name      string
		correct   model.AnswerValue
		submitted model.AnswerValue
		want      bool
	}{
		{"exact", model.SingleAnswer("Paris"), model.SingleAnswer("Paris"), true},
		{"case and whitespace", model.ListAnswer("Paris", "paris"), model.SingleAnswer("  PARIS  "), true},
		{"any acceptable answer", model.ListAnswer("colour", "color"), model.SingleAnswer("color"), true},
		{"wrong", model.SingleAnswer("Paris"), model.SingleAnswer("London"), false},
		{"empty submission", model.SingleAnswer("Paris"), model.SingleAnswer(""), false},
		{"list submission invalid", model.SingleAnswer("Paris"), model.ListAnswer("Paris"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &model.QuizQuestion{ID: "q", Type: model.FillBlank, CorrectAnswer: tt.correct}
			if got := quiz.Evaluate(q, tt.submitted); got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate_DragDrop(t *testing.T) {
	q := &model.QuizQuestion{
		ID:            "q1",
		Type:          model.DragDrop,
		CorrectAnswer: model.ListAnswer("first", "second", "third"),
	}

	// Grading is order-insensitive: any permutation of the correct set passes.
	if !quiz.Evaluate(q, model.ListAnswer("third", "first", "second")) {
		t.Error("permutation of the correct set should be correct")
	}
	if !quiz.Evaluate(q, model.ListAnswer("first", "second", "third")) {
		t.Error("the correct order should be correct")
	}
	if quiz.Evaluate(q, model.ListAnswer("first", "second")) {
		t.Error("missing element should be incorrect")
	}
	if quiz.Evaluate(q, model.ListAnswer("first", "second", "fourth")) {
		t.Error("wrong element should be incorrect")
	}
	if quiz.Evaluate(q, model.SingleAnswer("first")) {
		t.Error("non-sequence submission should be incorrect")
	}
}

func TestEvaluate_UnknownTypeFailsClosed(t *testing.T) {
	q := &model.QuizQuestion{
		ID:            "q1",
		Type:          model.CodeQuestion,
		CorrectAnswer: model.SingleAnswer("anything"),
	}
	if quiz.Evaluate(q, model.SingleAnswer("anything")) {
		t.Error("code questions have no automatic grading and must fail closed")
	}
}
