package controller

import (
	"errors"

	"lms_backend/internal/learning"
	"lms_backend/internal/model"
	"lms_backend/internal/quiz"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ViewerController exposes the live module viewer: one session per
// student per module, holding navigation, notes, time tracking and the
// active quiz attempt.
type ViewerController struct {
	ViewerService *service.ViewerService
}

func NewViewerController(viewerService *service.ViewerService) *ViewerController {
	return &ViewerController{ViewerService: viewerService}
}

func (c *ViewerController) session(ctx *gin.Context) (*service.ViewerSession, bool) {
	claims := util.GetUserFromContext(ctx)
	sess, err := c.ViewerService.Get(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return nil, false
	}
	return sess, true
}

// Open godoc
// @Summary Open a viewer session
// @Description Loads the module and the caller's progress and starts tracking
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Failure 404 {object} util.Response "Module not found or unpublished"
// @Router /api/modules/{id}/session [post]
func (c *ViewerController) Open(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	sess, err := c.ViewerService.Open(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrModuleNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, learning.ErrEmptyModule):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, sess.State())
}

// Close godoc
// @Summary Close a viewer session
// @Description Stops tracking and saves a final progress snapshot
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "No open session"
// @Router /api/modules/{id}/session [delete]
func (c *ViewerController) Close(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ViewerService.Close(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// State godoc
// @Summary Current viewer state
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Failure 404 {object} util.Response "No open session"
// @Router /api/modules/{id}/session [get]
func (c *ViewerController) State(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	util.Success(ctx, sess.State())
}

// Advance godoc
// @Summary Advance to the next content block
// @Description Crosses into the next section at a boundary; moved is false at the end
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/modules/{id}/session/advance [post]
func (c *ViewerController) Advance(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, moved := sess.Advance()
	util.Success(ctx, gin.H{"state": state, "moved": moved})
}

// Retreat godoc
// @Summary Step back to the previous content block
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/modules/{id}/session/retreat [post]
func (c *ViewerController) Retreat(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, moved := sess.Retreat()
	util.Success(ctx, gin.H{"state": state, "moved": moved})
}

// swagger:model JumpRequest
type JumpRequest struct {
	SectionIndex int `json:"sectionIndex"`
}

// Jump godoc
// @Summary Jump to a section
// @Description Subject to the module's skip and sequential-progress settings
// @Tags viewer
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body JumpRequest true "Target section index"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Failure 403 {object} util.Response "Section locked"
// @Failure 400 {object} util.Response "Index out of range"
// @Router /api/modules/{id}/session/jump [post]
func (c *ViewerController) Jump(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req JumpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := sess.JumpToSection(req.SectionIndex)
	if err != nil {
		switch {
		case errors.Is(err, learning.ErrSectionLocked):
			util.Error(ctx, 403, err.Error())
		case errors.Is(err, learning.ErrSectionOutOfRange):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, state)
}

// ToggleBookmark godoc
// @Summary Toggle a bookmark on the current content block
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=object} "Bookmark key and new state"
// @Failure 403 {object} util.Response "Bookmarks disabled"
// @Router /api/modules/{id}/session/bookmark [post]
func (c *ViewerController) ToggleBookmark(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	key, set, err := sess.ToggleBookmark()
	if err != nil {
		util.Error(ctx, 403, err.Error())
		return
	}
	util.Success(ctx, gin.H{"key": key, "bookmarked": set})
}

// swagger:model ObjectiveRequest
type ObjectiveRequest struct {
	ObjectiveID string `json:"objectiveId" binding:"required"`
}

// ToggleObjective godoc
// @Summary Toggle a learning objective's completed state
// @Tags viewer
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body ObjectiveRequest true "Objective ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/modules/{id}/session/objective [post]
func (c *ViewerController) ToggleObjective(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req ObjectiveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completed := sess.ToggleObjective(req.ObjectiveID)
	util.Success(ctx, gin.H{"objectiveId": req.ObjectiveID, "completed": completed})
}

// Play godoc
// @Summary Resume time tracking
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Router /api/modules/{id}/session/play [post]
func (c *ViewerController) Play(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	sess.Play()
	util.Success(ctx, sess.State())
}

// Pause godoc
// @Summary Pause time tracking
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.ViewerState}
// @Router /api/modules/{id}/session/pause [post]
func (c *ViewerController) Pause(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	sess.Pause()
	util.Success(ctx, sess.State())
}

// Summary godoc
// @Summary Progress summary
// @Description Derived section, objective and quiz percentages plus grade
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=learning.Summary}
// @Router /api/modules/{id}/session/summary [get]
func (c *ViewerController) Summary(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	util.Success(ctx, sess.Summary())
}

// swagger:model NoteRequest
type NoteRequest struct {
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags"`
}

// AddNote godoc
// @Summary Add a note
// @Tags viewer
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body NoteRequest true "Note content and tags"
// @Success 201 {object} util.Response{data=model.Note}
// @Failure 403 {object} util.Response "Notes disabled"
// @Router /api/modules/{id}/session/notes [post]
func (c *ViewerController) AddNote(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := sess.AddNote(req.Content, req.Tags)
	if err != nil {
		util.Error(ctx, 403, err.Error())
		return
	}
	util.Created(ctx, note)
}

// EditNote godoc
// @Summary Edit a note
// @Tags viewer
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   noteId path string true "Note ID"
// @Param   body body NoteRequest true "New content and tags"
// @Success 200 {object} util.Response{data=model.Note}
// @Failure 404 {object} util.Response "Note not found"
// @Router /api/modules/{id}/session/notes/{noteId} [put]
func (c *ViewerController) EditNote(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	note, err := sess.EditNote(ctx.Param("noteId"), req.Content, req.Tags)
	if err != nil {
		respondNoteError(ctx, err)
		return
	}
	util.Success(ctx, note)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   noteId path string true "Note ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Note not found"
// @Router /api/modules/{id}/session/notes/{noteId} [delete]
func (c *ViewerController) DeleteNote(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	if err := sess.DeleteNote(ctx.Param("noteId")); err != nil {
		respondNoteError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SearchNotes godoc
// @Summary Search notes
// @Description Case-insensitive match over content and tags; empty term returns all
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   q query string false "Search term"
// @Success 200 {object} util.Response{data=[]model.Note}
// @Router /api/modules/{id}/session/notes [get]
func (c *ViewerController) SearchNotes(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	util.Success(ctx, sess.SearchNotes(ctx.Query("q")))
}

// Resources godoc
// @Summary Filter module resources
// @Tags viewer
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   q query string false "Title or description search"
// @Param   type query string false "Resource type" Enums(pdf, link, video, audio, document)
// @Param   grouped query bool false "Group results by type"
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/session/resources [get]
func (c *ViewerController) Resources(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	if ctx.Query("grouped") == "true" {
		util.Success(ctx, sess.ResourcesByType())
		return
	}
	util.Success(ctx, sess.Resources(ctx.Query("q"), model.ResourceType(ctx.Query("type"))))
}

// swagger:model StartQuizRequest
type StartQuizRequest struct {
	SectionID string `json:"sectionId" binding:"required"`
}

// StartQuiz godoc
// @Summary Start a quiz attempt
// @Description Begins an attempt on the section's quiz; blocked when retries are disabled and one exists
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body StartQuizRequest true "Section ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 400 {object} util.Response "Section has no quiz"
// @Failure 409 {object} util.Response "Quiz already active or retry not allowed"
// @Router /api/modules/{id}/session/quiz [post]
func (c *ViewerController) StartQuiz(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := sess.StartQuiz(req.SectionID)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// QuizStatus godoc
// @Summary Current quiz state
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 404 {object} util.Response "No quiz in progress"
// @Router /api/modules/{id}/session/quiz [get]
func (c *ViewerController) QuizStatus(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, err := sess.QuizStatus()
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// swagger:model AnswerRequest
type AnswerRequest struct {
	QuestionID string            `json:"questionId" binding:"required"`
	Answer     model.AnswerValue `json:"answer"`
}

// AnswerQuiz godoc
// @Summary Record an answer
// @Description Accepts a string or an array of strings, matching the question type
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body AnswerRequest true "Question ID and answer"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 409 {object} util.Response "Already submitted"
// @Router /api/modules/{id}/session/quiz/answer [post]
func (c *ViewerController) AnswerQuiz(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	state, err := sess.AnswerQuiz(req.QuestionID, req.Answer)
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// NextQuestion godoc
// @Summary Move to the next question
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Router /api/modules/{id}/session/quiz/next [post]
func (c *ViewerController) NextQuestion(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, err := sess.NextQuestion()
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// PreviousQuestion godoc
// @Summary Move to the previous question
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Router /api/modules/{id}/session/quiz/previous [post]
func (c *ViewerController) PreviousQuestion(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, err := sess.PreviousQuestion()
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// SubmitQuiz godoc
// @Summary Submit the quiz
// @Description Grades every question, records the score and the attempt
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 409 {object} util.Response "Already submitted"
// @Router /api/modules/{id}/session/quiz/submit [post]
func (c *ViewerController) SubmitQuiz(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, err := sess.SubmitQuiz()
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// RetryQuiz godoc
// @Summary Retry the quiz
// @Description Resets the submitted attempt when the module allows retries
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.QuizState}
// @Failure 403 {object} util.Response "Retry not allowed"
// @Router /api/modules/{id}/session/quiz/retry [post]
func (c *ViewerController) RetryQuiz(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	state, err := sess.RetryQuiz()
	if err != nil {
		respondQuizError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

// QuizHistory godoc
// @Summary Recorded quiz attempts
// @Description Attempts and best score for a section, or the whole module when no section is given
// @Tags quiz
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   sectionId query string false "Section ID"
// @Success 200 {object} util.Response{data=service.QuizHistory}
// @Router /api/modules/{id}/session/quiz/history [get]
func (c *ViewerController) QuizHistory(ctx *gin.Context) {
	sess, ok := c.session(ctx)
	if !ok {
		return
	}
	history, err := sess.QuizHistory(ctx.Query("sectionId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

func respondNoteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, learning.ErrNoteNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotesDisabled):
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

func respondQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrNoActiveQuiz):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrSectionHasNoQuiz), errors.Is(err, quiz.ErrNoQuestions), errors.Is(err, quiz.ErrNotSubmitted):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyActive), errors.Is(err, quiz.ErrAlreadySubmitted):
		util.Error(ctx, 409, err.Error())
	case errors.Is(err, quiz.ErrRetryDisabled):
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
