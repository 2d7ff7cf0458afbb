package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// saveEvery throttles time-tracking persistence. Navigation and quiz
// events still save immediately.
const saveEvery = 30 // seconds

// ViewerSession is one student's live view of one module: navigation
// state, the optional quiz attempt and the time tracker. Progress is
// written through to the repository on every mutating call.
type ViewerSession struct {
	mu sync.Mutex

	userID   uint
	module   *model.LearningModule
	progress *model.StudentProgress

	nav      *learning.Navigator
	notebook *learning.Notebook
	tracker  *learning.TimeTracker

	quizSession *quiz.Session
	quizSection string

	svc *ViewerService
}

// ViewerService owns the live viewer sessions, keyed by user and module.
type ViewerService struct {
	ModuleRepo     *repository.ModuleRepository
	ProgressRepo   *repository.ProgressRepository
	QuizResultRepo *repository.QuizResultRepository

	mu       sync.RWMutex
	sessions map[string]*ViewerSession
}

func NewViewerService(
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.ProgressRepository,
	quizResultRepo *repository.QuizResultRepository,
) *ViewerService {
	return &ViewerService{
		ModuleRepo:     moduleRepo,
		ProgressRepo:   progressRepo,
		QuizResultRepo: quizResultRepo,
		sessions:       make(map[string]*ViewerSession),
	}
}

func sessionKey(userID uint, moduleID string) string {
	return fmt.Sprintf("%d:%s", userID, moduleID)
}

// Open loads the module and the student's progress and starts a viewer
// session. Reopening an already open session returns it unchanged.
func (s *ViewerService) Open(userID uint, moduleID string) (*ViewerSession, error) {
	key := sessionKey(userID, moduleID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[key]; ok {
		return existing, nil
	}

	module, err := s.ModuleRepo.FindByID(moduleID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}
	if !module.IsPublished {
		return nil, util.ErrModuleNotPublished
	}

	progress, err := s.ProgressRepo.FindOrCreate(userID, moduleID)
	if err != nil {
		return nil, err
	}

	nav, err := learning.NewNavigator(module, progress)
	if err != nil {
		return nil, err
	}

	sess := &ViewerSession{
		userID:   userID,
		module:   module,
		progress: progress,
		nav:      nav,
		notebook: learning.NewNotebook(&progress.Notes),
		svc:      s,
	}

	if module.Settings.TimeTracking {
		sess.tracker = learning.NewTimeTracker(progress.TimeSpent, sess.onTick)
		sess.tracker.Play()
	}

	s.sessions[key] = sess
	monitoring.ActiveViewerSessions.Inc()
	return sess, nil
}

// Get returns the open session for (userID, moduleID).
func (s *ViewerService) Get(userID uint, moduleID string) (*ViewerSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionKey(userID, moduleID)]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return sess, nil
}

// Close tears the session down, stopping its goroutines and saving a
// final snapshot of progress.
func (s *ViewerService) Close(userID uint, moduleID string) error {
	key := sessionKey(userID, moduleID)

	s.mu.Lock()
	sess, ok := s.sessions[key]
	if ok {
		delete(s.sessions, key)
	}
	s.mu.Unlock()
	if !ok {
		return util.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.tracker != nil {
		sess.progress.TimeSpent = sess.tracker.Seconds()
		sess.tracker.Close()
	}
	if sess.quizSession != nil {
		sess.quizSession.Close()
		sess.quizSession = nil
	}
	monitoring.ActiveViewerSessions.Dec()
	return s.ProgressRepo.Save(sess.progress)
}

// onTick runs on the tracker goroutine once per second while playing.
func (v *ViewerSession) onTick(total int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress.TimeSpent = total
	if total%saveEvery == 0 {
		v.save()
	}
}

// save persists progress, logging failures instead of surfacing them so a
// flaky write never interrupts the viewer.
func (v *ViewerSession) save() {
	if err := v.svc.ProgressRepo.Save(v.progress); err != nil {
		logger.Log.Error("Failed to save progress",
			zap.Uint("userID", v.userID),
			zap.String("moduleID", v.progress.ModuleID),
			zap.Error(err))
	}
}

// ViewerState is the snapshot handlers return after every viewer call.
type ViewerState struct {
	ModuleID        string                 `json:"moduleId"`
	SectionIndex    int                    `json:"sectionIndex"`
	ContentIndex    int                    `json:"contentIndex"`
	Section         *model.LearningSection `json:"section,omitempty"`
	Content         *model.ContentBlock    `json:"content,omitempty"`
	SectionProgress float64                `json:"sectionProgress"`
	ModuleProgress  float64                `json:"moduleProgress"`
	AtStart         bool                   `json:"atStart"`
	AtEnd           bool                   `json:"atEnd"`
	Bookmarked      bool                   `json:"bookmarked"`
	Bookmarks       []string               `json:"bookmarks"`
	TimeSpent       int                    `json:"timeSpent"`
	Playing         bool                   `json:"playing"`
	QuizActive      bool                   `json:"quizActive"`
}

func (v *ViewerSession) State() ViewerState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state()
}

func (v *ViewerSession) state() ViewerState {
	st := ViewerState{
		ModuleID:        v.progress.ModuleID,
		SectionIndex:    v.nav.SectionIndex(),
		ContentIndex:    v.nav.ContentIndex(),
		Section:         v.nav.CurrentSection(),
		Content:         v.nav.CurrentContent(),
		SectionProgress: v.nav.SectionProgress(),
		ModuleProgress:  v.nav.ModuleProgress(),
		AtStart:         v.nav.AtStart(),
		AtEnd:           v.nav.AtEnd(),
		Bookmarked:      v.nav.IsBookmarked(v.nav.BookmarkKey()),
		Bookmarks:       v.nav.Bookmarks(),
		TimeSpent:       v.progress.TimeSpent,
		QuizActive:      v.quizSession != nil,
	}
	if v.tracker != nil {
		st.Playing = v.tracker.Playing()
	}
	return st
}

// Advance moves to the next content block, crossing into the next section
// at a boundary. It reports false at the end of the module.
func (v *ViewerSession) Advance() (ViewerState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	moved := v.nav.Advance()
	if moved {
		v.progress.CurrentSection = v.nav.SectionIndex()
		v.save()
	}
	return v.state(), moved
}

func (v *ViewerSession) Retreat() (ViewerState, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	moved := v.nav.Retreat()
	if moved {
		v.progress.CurrentSection = v.nav.SectionIndex()
		v.save()
	}
	return v.state(), moved
}

// JumpToSection applies the module's skip policy before moving.
func (v *ViewerSession) JumpToSection(index int) (ViewerState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.nav.JumpToSection(index); err != nil {
		return v.state(), err
	}
	v.progress.CurrentSection = v.nav.SectionIndex()
	v.save()
	return v.state(), nil
}

func (v *ViewerSession) ToggleBookmark() (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.module.Settings.EnableBookmarks {
		return "", false, util.ErrBookmarksDisabled
	}
	key, set := v.nav.ToggleBookmark()
	v.progress.Bookmarks = v.nav.Bookmarks()
	v.save()
	return key, set, nil
}

// ToggleObjective flips a learning objective's completed state.
func (v *ViewerSession) ToggleObjective(objectiveID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	completed := v.progress.ToggleObjective(objectiveID)
	v.save()
	return completed
}

func (v *ViewerSession) Play() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tracker != nil {
		v.tracker.Play()
	}
}

func (v *ViewerSession) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.tracker != nil {
		v.tracker.Pause()
		v.progress.TimeSpent = v.tracker.Seconds()
		v.save()
	}
}

func (v *ViewerSession) AddNote(content string, tags []string) (model.Note, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.module.Settings.EnableNotes {
		return model.Note{}, util.ErrNotesDisabled
	}
	note := v.notebook.Add(content, tags)
	v.save()
	return note, nil
}

func (v *ViewerSession) EditNote(id, content string, tags []string) (model.Note, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.module.Settings.EnableNotes {
		return model.Note{}, util.ErrNotesDisabled
	}
	note, err := v.notebook.Edit(id, content, tags)
	if err != nil {
		return model.Note{}, err
	}
	v.save()
	return note, nil
}

func (v *ViewerSession) DeleteNote(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.module.Settings.EnableNotes {
		return util.ErrNotesDisabled
	}
	if err := v.notebook.Delete(id); err != nil {
		return err
	}
	v.save()
	return nil
}

func (v *ViewerSession) SearchNotes(term string) []model.Note {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.notebook.Search(term)
}

func (v *ViewerSession) Resources(term string, typ model.ResourceType) []model.ModuleResource {
	return learning.FilterResources(v.module.Resources, term, typ)
}

func (v *ViewerSession) ResourcesByType() map[model.ResourceType][]model.ModuleResource {
	return learning.GroupResourcesByType(v.module.Resources)
}

func (v *ViewerSession) Summary() learning.Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	return learning.Summarize(v.module, v.progress)
}

// QuizState is the handler-facing snapshot of a quiz attempt.
type QuizState struct {
	SectionID     string                `json:"sectionId"`
	QuestionIndex int                   `json:"questionIndex"`
	QuestionCount int                   `json:"questionCount"`
	Question      model.QuizQuestion    `json:"question"`
	Remaining     int                   `json:"remaining"` // seconds, -1 when no limit
	Submitted     bool                  `json:"submitted"`
	Score         int                   `json:"score,omitempty"`
	Passed        bool                  `json:"passed,omitempty"`
	Results       []quiz.QuestionResult `json:"results,omitempty"`
}

// StartQuiz begins an attempt on the given section's quiz. When retries
// are disabled a recorded attempt blocks a new one.
func (v *ViewerSession) StartQuiz(sectionID string) (QuizState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.quizSession != nil && !v.quizSession.Submitted() {
		return QuizState{}, util.ErrQuizAlreadyActive
	}

	var section *model.LearningSection
	for i := range v.module.Sections {
		if v.module.Sections[i].ID == sectionID {
			section = &v.module.Sections[i]
			break
		}
	}
	if section == nil || !section.HasQuiz() {
		return QuizState{}, util.ErrSectionHasNoQuiz
	}

	if !v.module.Settings.AllowQuizRetry {
		attempts, err := v.svc.QuizResultRepo.CountAttempts(v.userID, v.progress.ModuleID, sectionID)
		if err != nil {
			return QuizState{}, err
		}
		if attempts > 0 {
			return QuizState{}, quiz.ErrRetryDisabled
		}
	}

	if v.quizSession != nil {
		v.quizSession.Close()
	}

	sess, err := quiz.NewSession(section.Quiz, quiz.Options{
		AllowRetry: v.module.Settings.AllowQuizRetry,
		TimeLimit:  time.Duration(v.module.Settings.QuizTimeLimit) * time.Minute,
		OnComplete: func(sub quiz.Submission) { go v.recordQuizResult(sectionID, sub) },
	})
	if err != nil {
		return QuizState{}, err
	}

	v.quizSession = sess
	v.quizSection = sectionID
	return v.quizState(), nil
}

// recordQuizResult runs once per submission on its own goroutine, whether
// the attempt was submitted explicitly or forced by the countdown. It works
// entirely from the submission snapshot, so the result survives even when
// the viewer session is closed or the attempt replaced before it runs.
func (v *ViewerSession) recordQuizResult(sectionID string, sub quiz.Submission) {
	record := &model.QuizResult{
		UserID:      v.userID,
		ModuleID:    v.progress.ModuleID,
		SectionID:   sectionID,
		Score:       sub.Score,
		Correct:     sub.Correct,
		Total:       sub.Total,
		Passed:      sub.Passed,
		Answers:     sub.Answers,
		CompletedAt: time.Now(),
	}
	if err := v.svc.QuizResultRepo.Create(record); err != nil {
		logger.Log.Error("Failed to record quiz result",
			zap.Uint("userID", v.userID),
			zap.String("sectionID", sectionID),
			zap.Error(err))
	}

	v.mu.Lock()
	if v.progress.QuizScores == nil {
		v.progress.QuizScores = make(map[string]int)
	}
	v.progress.QuizScores[sectionID] = sub.Score
	v.save()
	v.mu.Unlock()

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(sub.Passed)).Inc()
}

func (v *ViewerSession) quizState() QuizState {
	sess := v.quizSession
	st := QuizState{
		SectionID:     v.quizSection,
		QuestionIndex: sess.Index(),
		QuestionCount: sess.QuestionCount(),
		Question:      sess.Current(),
		Remaining:     sess.Remaining(),
		Submitted:     sess.Submitted(),
	}
	if st.Submitted {
		st.Score, _ = sess.Score()
		st.Passed, _ = sess.Passed()
		st.Results, _ = sess.Results()
	}
	return st
}

func (v *ViewerSession) withQuiz(fn func(*quiz.Session) error) (QuizState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.quizSession == nil {
		return QuizState{}, util.ErrNoActiveQuiz
	}
	if err := fn(v.quizSession); err != nil {
		return v.quizState(), err
	}
	return v.quizState(), nil
}

func (v *ViewerSession) AnswerQuiz(questionID string, value model.AnswerValue) (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error {
		return s.Answer(questionID, value)
	})
}

func (v *ViewerSession) NextQuestion() (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error { return s.Next() })
}

func (v *ViewerSession) PreviousQuestion() (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error { return s.Previous() })
}

func (v *ViewerSession) SubmitQuiz() (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error { return s.Submit() })
}

func (v *ViewerSession) RetryQuiz() (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error { return s.Retry() })
}

func (v *ViewerSession) QuizStatus() (QuizState, error) {
	return v.withQuiz(func(s *quiz.Session) error { return nil })
}

// QuizHistory lists recorded attempts, newest first, with the best score so
// far. An empty sectionID covers the whole module.
type QuizHistory struct {
	SectionID string             `json:"sectionId,omitempty"`
	BestScore int                `json:"bestScore"`
	Attempts  []model.QuizResult `json:"attempts"`
}

func (v *ViewerSession) QuizHistory(sectionID string) (QuizHistory, error) {
	history := QuizHistory{SectionID: sectionID, Attempts: []model.QuizResult{}}

	if sectionID == "" {
		attempts, err := v.svc.QuizResultRepo.FindByUserAndModule(v.userID, v.progress.ModuleID)
		if err != nil {
			return QuizHistory{}, err
		}
		for _, a := range attempts {
			if a.Score > history.BestScore {
				history.BestScore = a.Score
			}
		}
		history.Attempts = append(history.Attempts, attempts...)
		return history, nil
	}

	attempts, err := v.svc.QuizResultRepo.FindBySection(v.userID, v.progress.ModuleID, sectionID)
	if err != nil {
		return QuizHistory{}, err
	}
	best, err := v.svc.QuizResultRepo.BestScore(v.userID, v.progress.ModuleID, sectionID)
	if err != nil {
		return QuizHistory{}, err
	}
	history.BestScore = best
	history.Attempts = append(history.Attempts, attempts...)
	return history, nil
}
