package quiz_test

import (
	"errors"
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
)

func threeQuestions() []model.QuizQuestion {
	return []model.QuizQuestion{
		{ID: "q1", Type: model.TrueFalse, CorrectAnswer: model.SingleAnswer("true")},
		{ID: "q2", Type: model.MultipleChoice, CorrectAnswer: model.SingleAnswer("b"), Options: []string{"a", "b"}},
		{ID: "q3", Type: model.FillBlank, CorrectAnswer: model.ListAnswer("Paris", "paris")},
	}
}

func TestSession_SubmitScoresEveryQuestion(t *testing.T) {
	var got quiz.Submission
	calls := 0
	s, err := quiz.NewSession(threeQuestions(), quiz.Options{
		OnComplete: func(sub quiz.Submission) {
			got = sub
			calls++
		},
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	s.Answer("q1", model.SingleAnswer("true"))
	s.Answer("q2", model.SingleAnswer("a")) // wrong
	// q3 left unanswered: graded as incorrect.

	if err := s.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	score, err := s.Score()
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 33 {
		t.Errorf("Score() = %d, want 33", score)
	}
	if calls != 1 {
		t.Errorf("completion callback fired %d times, want 1", calls)
	}
	if got.Score != 33 || got.Correct != 1 || got.Total != 3 || got.Passed {
		t.Errorf("completion callback got %+v, want score 33, 1/3 correct, not passed", got)
	}

	results, err := s.Results()
	if err != nil {
		t.Fatalf("Results() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(Results()) = %d, want 3", len(results))
	}
	if !results[0].Correct || results[1].Correct || results[2].Correct {
		t.Errorf("unexpected correctness: %+v", results)
	}
}

func TestSession_PerfectAndZeroScores(t *testing.T) {
	questions := []model.QuizQuestion{
		{ID: "q1", Type: model.TrueFalse, CorrectAnswer: model.SingleAnswer("true")},
	}

	s, _ := quiz.NewSession(questions, quiz.Options{})
	defer s.Close()
	s.Answer("q1", model.SingleAnswer("true"))
	s.Submit()
	if score, _ := s.Score(); score != 100 {
		t.Errorf("Score() = %d, want 100", score)
	}
	if passed, _ := s.Passed(); !passed {
		t.Error("score 100 should pass")
	}

	s2, _ := quiz.NewSession(questions, quiz.Options{})
	defer s2.Close()
	s2.Submit() // nothing answered
	if score, _ := s2.Score(); score != 0 {
		t.Errorf("Score() with no answers = %d, want 0", score)
	}
	if passed, _ := s2.Passed(); passed {
		t.Error("score 0 should not pass")
	}
}

func TestSession_NavigationClampsAtBounds(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{})
	defer s.Close()

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous() at start error = %v", err)
	}
	if s.Index() != 0 {
		t.Errorf("Previous() at start moved to %d", s.Index())
	}

	s.Next()
	s.Next()
	s.Next() // past the end: clamped
	if s.Index() != 2 {
		t.Errorf("Index() = %d, want 2", s.Index())
	}
	if s.Current().ID != "q3" {
		t.Errorf("Current().ID = %s, want q3", s.Current().ID)
	}
}

func TestSession_TransitionsGuardState(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{AllowRetry: true})
	defer s.Close()

	if err := s.Retry(); !errors.Is(err, quiz.ErrNotSubmitted) {
		t.Errorf("Retry() before submit = %v, want ErrNotSubmitted", err)
	}
	if _, err := s.Score(); !errors.Is(err, quiz.ErrNotSubmitted) {
		t.Errorf("Score() before submit = %v, want ErrNotSubmitted", err)
	}

	s.Submit()
	if err := s.Submit(); !errors.Is(err, quiz.ErrAlreadySubmitted) {
		t.Errorf("second Submit() = %v, want ErrAlreadySubmitted", err)
	}
	if err := s.Answer("q1", model.SingleAnswer("true")); !errors.Is(err, quiz.ErrAlreadySubmitted) {
		t.Errorf("Answer() after submit = %v, want ErrAlreadySubmitted", err)
	}
	if err := s.Next(); !errors.Is(err, quiz.ErrAlreadySubmitted) {
		t.Errorf("Next() after submit = %v, want ErrAlreadySubmitted", err)
	}
}

func TestSession_RetryResetsEverything(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{AllowRetry: true})
	defer s.Close()

	s.Answer("q1", model.SingleAnswer("true"))
	s.Next()
	s.Submit()

	if err := s.Retry(); err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if s.Submitted() {
		t.Error("session should be back in progress after Retry()")
	}
	if s.Index() != 0 {
		t.Errorf("Index() after Retry() = %d, want 0", s.Index())
	}
	if len(s.Answers()) != 0 {
		t.Errorf("Answers() after Retry() = %v, want empty", s.Answers())
	}
	if _, err := s.Results(); !errors.Is(err, quiz.ErrNotSubmitted) {
		t.Errorf("Results() after Retry() = %v, want ErrNotSubmitted", err)
	}
}

func TestSession_RetryDisabled(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{AllowRetry: false})
	defer s.Close()

	s.Submit()
	if err := s.Retry(); !errors.Is(err, quiz.ErrRetryDisabled) {
		t.Errorf("Retry() = %v, want ErrRetryDisabled", err)
	}
}

func TestSession_NoQuestions(t *testing.T) {
	if _, err := quiz.NewSession(nil, quiz.Options{}); !errors.Is(err, quiz.ErrNoQuestions) {
		t.Errorf("NewSession(nil) = %v, want ErrNoQuestions", err)
	}
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{})
	s.Close()
	s.Close()
}

func TestSession_RemainingWithoutLimit(t *testing.T) {
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{})
	defer s.Close()
	if s.Remaining() != -1 {
		t.Errorf("Remaining() without limit = %d, want -1", s.Remaining())
	}
}

func TestSession_CountdownForcesSubmit(t *testing.T) {
	done := make(chan quiz.Submission, 2)
	s, err := quiz.NewSession(threeQuestions(), quiz.Options{
		TimeLimit:  time.Second,
		OnComplete: func(sub quiz.Submission) { done <- sub },
	})
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	defer s.Close()

	var sub quiz.Submission
	select {
	case sub = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("countdown did not force a submission")
	}

	if !s.Submitted() {
		t.Error("session should be submitted after the countdown expires")
	}
	if sub.Score != 0 || sub.Correct != 0 || sub.Total != 3 {
		t.Errorf("forced submission got %+v, want score 0 over 3 questions", sub)
	}
	if s.Remaining() > 0 {
		t.Errorf("Remaining() after expiry = %d, want <= 0", s.Remaining())
	}
	if err := s.Submit(); !errors.Is(err, quiz.ErrAlreadySubmitted) {
		t.Errorf("Submit() after forced submission = %v, want ErrAlreadySubmitted", err)
	}
	select {
	case <-done:
		t.Error("completion callback fired more than once")
	default:
	}
}

func TestSession_SubmissionSurvivesRetryAndClose(t *testing.T) {
	// The callback's data must stay valid even when the attempt is reset or
	// torn down before the receiver gets to it.
	var got quiz.Submission
	s, _ := quiz.NewSession(threeQuestions(), quiz.Options{
		AllowRetry: true,
		OnComplete: func(sub quiz.Submission) { got = sub },
	})

	s.Answer("q1", model.SingleAnswer("true"))
	if err := s.Submit(); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := s.Retry(); err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	s.Close()

	if got.Score != 33 || got.Correct != 1 || got.Total != 3 {
		t.Errorf("snapshot after teardown = %+v, want score 33, 1/3 correct", got)
	}
	if len(got.Results) != 3 {
		t.Fatalf("len(snapshot.Results) = %d, want 3", len(got.Results))
	}
	if answer, ok := got.Answers["q1"]; !ok || answer.Single != "true" {
		t.Errorf("snapshot.Answers[q1] = %+v, want \"true\"", answer)
	}
}
