package controller

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// List godoc
// @Summary List learning modules
// @Description Filterable, paginated module catalogue; students only see published modules
// @Tags modules
// @Produce  json
// @Param   courseId query int false "Course filter"
// @Param   subject query string false "Subject filter"
// @Param   level query string false "Level filter" Enums(beginner, intermediate, advanced)
// @Param   search query string false "Title or description search"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	q := service.ModuleListQuery{
		CourseID: util.MustParseUint(ctx.Query("courseId")),
		Subject:  ctx.Query("subject"),
		Level:    model.ModuleLevel(ctx.Query("level")),
		Search:   ctx.Query("search"),
		Page:     int(util.MustParseUint(ctx.DefaultQuery("page", "1"))),
		Limit:    int(util.MustParseUint(ctx.DefaultQuery("limit", "20"))),
	}

	modules, total, err := c.ModuleService.List(q, claims)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  modules,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	})
}

// Get godoc
// @Summary Module detail
// @Tags modules
// @Produce  json
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	module, err := c.ModuleService.Get(ctx.Param("id"), claims)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// Create godoc
// @Summary Create a learning module
// @Description Accepts the full content tree: sections, objectives, resources and settings
// @Tags modules
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.LearningModule true "Module content"
// @Success 201 {object} util.Response{data=model.LearningModule}
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var module model.LearningModule
	if err := ctx.ShouldBindJSON(&module); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if module.Title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	if err := c.ModuleService.Create(&module, claims); err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// Update godoc
// @Summary Update a learning module
// @Description Replaces the module's content tree
// @Tags modules
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body model.LearningModule true "Module content"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var updated model.LearningModule
	if err := ctx.ShouldBindJSON(&updated); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.Update(ctx.Param("id"), &updated, claims)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// Delete godoc
// @Summary Delete a learning module
// @Tags modules
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ModuleService.Delete(ctx.Param("id"), claims); err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// swagger:model PublishRequest
type PublishRequest struct {
	Published bool `json:"published"`
}

// Publish godoc
// @Summary Publish or unpublish a module
// @Tags modules
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   body body PublishRequest true "Publish flag"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id}/publish [put]
func (c *ModuleController) Publish(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ModuleService.SetPublished(ctx.Param("id"), req.Published, claims); err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"published": req.Published})
}

// UploadThumbnail godoc
// @Summary Upload a module thumbnail
// @Tags modules
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   file formData file true "Image file"
// @Success 200 {object} util.Response{data=object} "Thumbnail URL"
// @Failure 400 {object} util.Response "Unsupported file type"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id}/thumbnail [post]
func (c *ModuleController) UploadThumbnail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.ModuleService.UploadThumbnail(ctx.Request.Context(), ctx.Param("id"), file, claims)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// UploadResource godoc
// @Summary Upload a module resource
// @Description Stores the file and appends it to the module's resource list; video durations are probed
// @Tags modules
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "Module ID"
// @Param   file formData file true "Resource file"
// @Param   title formData string true "Resource title"
// @Param   description formData string false "Resource description"
// @Success 201 {object} util.Response{data=model.ModuleResource}
// @Failure 400 {object} util.Response "Unsupported file type"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id}/resources [post]
func (c *ModuleController) UploadResource(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	resource, err := c.ModuleService.UploadResource(
		ctx.Request.Context(), ctx.Param("id"), file, title, ctx.PostForm("description"), claims)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Created(ctx, resource)
}

func respondModuleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrUnsupportedFileType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
