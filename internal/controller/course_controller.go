package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary List courses
// @Description Filterable, paginated course catalogue
// @Tags courses
// @Produce  json
// @Param   category query string false "Category filter"
// @Param   level query string false "Level filter" Enums(beginner, intermediate, advanced)
// @Param   status query string false "Status filter" Enums(draft, published, archived)
// @Param   search query string false "Title or description search"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	q := service.CourseListQuery{
		Category: ctx.Query("category"),
		Level:    model.ModuleLevel(ctx.Query("level")),
		Search:   ctx.Query("search"),
		Page:     int(util.MustParseUint(ctx.DefaultQuery("page", "1"))),
		Limit:    int(util.MustParseUint(ctx.DefaultQuery("limit", "20"))),
	}

	// students only see published courses regardless of the filter
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.Role == model.Student {
		q.Status = model.CoursePublished
	} else {
		q.Status = model.CourseStatus(ctx.Query("status"))
	}

	courses, total, err := c.CourseService.List(q)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	})
}

// Get godoc
// @Summary Course detail
// @Description Returns the course, its modules and the caller's enrollment state
// @Tags courses
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	detail, err := c.CourseService.GetDetail(util.MustParseUint(ctx.Param("id")), claims)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Level       string `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Thumbnail   string `json:"thumbnail"`
	MaxStudents int    `json:"maxStudents"`
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateCourseRequest true "Course details"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Level:       model.ModuleLevel(req.Level),
		Thumbnail:   req.Thumbnail,
		MaxStudents: req.MaxStudents,
	}
	if course.Level == "" {
		course.Level = model.Beginner
	}

	if err := c.CourseService.Create(course, claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Param   body body service.UpdateCourseInput true "Fields to update"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var input service.UpdateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.Update(util.MustParseUint(ctx.Param("id")), input, claims)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Delete a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Delete(util.MustParseUint(ctx.Param("id")), claims); err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response "Course not found"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollment, err := c.CourseService.Enroll(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Error(ctx, 409, "Already enrolled in this course")
		} else {
			respondCourseError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// Drop godoc
// @Summary Drop a course
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Enrollment not found"
// @Router /api/courses/{id}/enroll [delete]
func (c *CourseController) Drop(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Drop(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrEnrollmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// MyCourses godoc
// @Summary My enrollments
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/courses/my [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	enrollments, err := c.CourseService.MyCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// TaughtCourses godoc
// @Summary Courses I teach
// @Tags courses
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses/teaching [get]
func (c *CourseController) TaughtCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.TaughtCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func respondCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
