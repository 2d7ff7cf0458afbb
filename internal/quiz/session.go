package quiz

import (
	"errors"
	"math"
	"sync"
	"time"

	"lms_backend/internal/model"
)

// PassingScore is the percentage at or above which an attempt counts as
// passed. It gates feedback only, never a transition.
const PassingScore = 70

var (
	ErrAlreadySubmitted = errors.New("quiz already submitted")
	ErrNotSubmitted     = errors.New("quiz not submitted yet")
	ErrRetryDisabled    = errors.New("retry is not allowed for this quiz")
	ErrNoQuestions      = errors.New("quiz has no questions")
)

// QuestionResult is the per-question outcome of a submission.
type QuestionResult struct {
	QuestionID string            `json:"questionId"`
	Answer     model.AnswerValue `json:"answer"`
	Correct    bool              `json:"correct"`
}

// Submission is the immutable outcome of one submit, captured atomically
// with the state transition. Receivers can consume it at any later point:
// a Retry or Close of the session does not invalidate it.
type Submission struct {
	Score   int
	Correct int
	Total   int
	Passed  bool
	Results []QuestionResult
	Answers map[string]model.AnswerValue
}

// Options configure a session at construction; they are policy, not state.
type Options struct {
	AllowRetry bool
	TimeLimit  time.Duration // 0 disables the countdown
	OnComplete func(sub Submission)
}

// Session sequences one attempt through a question set: collect answers,
// navigate, submit, optionally retry. A session is either in progress or
// submitted; every transition checks the current state. Safe for use with
// the internal countdown goroutine.
type Session struct {
	mu        sync.Mutex
	questions []model.QuizQuestion
	opts      Options

	index     int
	answers   map[string]model.AnswerValue
	submitted bool
	results   []QuestionResult
	score     int

	remaining int // seconds, -1 when no limit
	done      chan struct{}
	closeOnce sync.Once
}

// NewSession starts an attempt over the given questions. When a time limit
// is set, a countdown ticks once per second and forces submission at zero.
// Callers must Close the session when the owning view goes away.
func NewSession(questions []model.QuizQuestion, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		questions: questions,
		opts:      opts,
		answers:   make(map[string]model.AnswerValue),
		remaining: -1,
		done:      make(chan struct{}),
	}
	if opts.TimeLimit > 0 {
		s.remaining = int(opts.TimeLimit / time.Second)
		go s.countdown()
	}
	return s, nil
}

func (s *Session) countdown() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.submitted {
				// idle until Close, or until a Retry restarts the clock
				s.mu.Unlock()
				continue
			}
			s.remaining--
			expired := s.remaining <= 0
			s.mu.Unlock()
			if expired {
				// Time is up: grade whatever has been answered.
				s.Submit()
			}
		}
	}
}

// Close stops the countdown goroutine. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Answer upserts the answer for a question. Position does not change.
func (s *Session) Answer(questionID string, value model.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrAlreadySubmitted
	}
	s.answers[questionID] = value
	return nil
}

// Next moves forward one question, clamped at the last one.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if s.index < len(s.questions)-1 {
		s.index++
	}
	return nil
}

// Previous moves back one question, clamped at the first one.
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// Submit grades every question in the set, missing answers included, and
// transitions to the submitted state. The completion callback fires exactly
// once per submission.
func (s *Session) Submit() error {
	s.mu.Lock()
	if s.submitted {
		s.mu.Unlock()
		return ErrAlreadySubmitted
	}

	results := make([]QuestionResult, len(s.questions))
	correct := 0
	for i := range s.questions {
		q := &s.questions[i]
		answer := s.answers[q.ID] // zero value grades as unanswered
		ok := Evaluate(q, answer)
		if ok {
			correct++
		}
		results[i] = QuestionResult{QuestionID: q.ID, Answer: answer, Correct: ok}
	}

	s.results = results
	s.score = int(math.Round(float64(correct) / float64(len(s.questions)) * 100))
	s.submitted = true

	onComplete := s.opts.OnComplete
	var sub Submission
	if onComplete != nil {
		answers := make(map[string]model.AnswerValue, len(s.answers))
		for k, v := range s.answers {
			answers[k] = v
		}
		snapshot := make([]QuestionResult, len(results))
		copy(snapshot, results)
		sub = Submission{
			Score:   s.score,
			Correct: correct,
			Total:   len(s.questions),
			Passed:  s.score >= PassingScore,
			Results: snapshot,
			Answers: answers,
		}
	}
	s.mu.Unlock()

	if onComplete != nil {
		onComplete(sub)
	}
	return nil
}

// Retry clears answers and results and returns to the first question.
// Only valid after a submission, and only when the session allows it.
func (s *Session) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.submitted {
		return ErrNotSubmitted
	}
	if !s.opts.AllowRetry {
		return ErrRetryDisabled
	}
	s.answers = make(map[string]model.AnswerValue)
	s.results = nil
	s.score = 0
	s.index = 0
	s.submitted = false
	if s.opts.TimeLimit > 0 {
		s.remaining = int(s.opts.TimeLimit / time.Second)
	}
	return nil
}

func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Index reports the current question position.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Current returns the question at the current position.
func (s *Session) Current() model.QuizQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.index]
}

// Score is the percentage score of the last submission.
func (s *Session) Score() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.submitted {
		return 0, ErrNotSubmitted
	}
	return s.score, nil
}

// Results returns the per-question outcomes of the last submission.
func (s *Session) Results() ([]QuestionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.submitted {
		return nil, ErrNotSubmitted
	}
	out := make([]QuestionResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

// Passed reports whether the last submission met the passing threshold.
func (s *Session) Passed() (bool, error) {
	score, err := s.Score()
	if err != nil {
		return false, err
	}
	return score >= PassingScore, nil
}

// Remaining reports the countdown in seconds, or -1 when there is no limit.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// Answers returns a copy of the collected answers.
func (s *Session) Answers() map[string]model.AnswerValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.AnswerValue, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// QuestionCount reports the size of the question set.
func (s *Session) QuestionCount() int {
	return len(s.questions)
}
