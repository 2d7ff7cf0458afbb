package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewModuleService(
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
	storage *StorageService,
) *ModuleService {
	return &ModuleService{
		ModuleRepo: moduleRepo,
		CourseRepo: courseRepo,
		Storage:    storage,
	}
}

type ModuleListQuery struct {
	CourseID uint
	Subject  string
	Level    model.ModuleLevel
	Search   string
	Page     int
	Limit    int
}

// List hides drafts unless the caller is an instructor or admin.
func (s *ModuleService) List(q ModuleListQuery, claims *util.Claims) ([]model.LearningModule, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	publishedOnly := claims == nil || claims.Role == model.Student
	return s.ModuleRepo.List(q.CourseID, q.Subject, q.Level, q.Search, publishedOnly, q.Page, q.Limit)
}

func (s *ModuleService) Get(id string, claims *util.Claims) (*model.LearningModule, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	if !module.IsPublished {
		if claims == nil || (claims.Role == model.Student) {
			return nil, util.ErrModuleNotFound
		}
	}
	return module, nil
}

func (s *ModuleService) Create(module *model.LearningModule, claims *util.Claims) error {
	if err := s.authorizeCourse(module.CourseID, claims); err != nil {
		return err
	}

	module.CreatedBy = claims.UserID
	if module.Settings == (model.ModuleSettings{}) {
		module.Settings = model.DefaultModuleSettings()
	}
	return s.ModuleRepo.Create(module)
}

func (s *ModuleService) Update(id string, updated *model.LearningModule, claims *util.Claims) (*model.LearningModule, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.authorizeModule(module, claims); err != nil {
		return nil, err
	}

	module.Title = updated.Title
	module.Description = updated.Description
	module.Subject = updated.Subject
	module.Level = updated.Level
	module.EstimatedDuration = updated.EstimatedDuration
	module.Sections = updated.Sections
	module.Objectives = updated.Objectives
	module.Resources = updated.Resources
	module.Tags = updated.Tags
	module.Settings = updated.Settings

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *ModuleService) Delete(id string, claims *util.Claims) error {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrModuleNotFound
	}
	if err != nil {
		return err
	}

	if err := s.authorizeModule(module, claims); err != nil {
		return err
	}
	return s.ModuleRepo.Delete(id)
}

func (s *ModuleService) SetPublished(id string, published bool, claims *util.Claims) error {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrModuleNotFound
	}
	if err != nil {
		return err
	}

	if err := s.authorizeModule(module, claims); err != nil {
		return err
	}
	return s.ModuleRepo.SetPublished(id, published)
}

// UploadThumbnail validates and stores a module thumbnail image.
func (s *ModuleService) UploadThumbnail(ctx context.Context, id string, file *multipart.FileHeader, claims *util.Claims) (string, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return "", util.ErrModuleNotFound
	}
	if err != nil {
		return "", err
	}

	if err := s.authorizeModule(module, claims); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", util.ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("modules/%s/thumbnail%s", id, filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
	if err != nil {
		return "", err
	}

	module.Thumbnail = url
	if err := s.ModuleRepo.Update(module); err != nil {
		return "", err
	}
	return url, nil
}

// UploadResource stores a resource file and appends it to the module's
// resource list. Video durations are probed with ffmpeg when the file is
// stored locally.
func (s *ModuleService) UploadResource(ctx context.Context, id string, file *multipart.FileHeader, title, description string, claims *util.Claims) (*model.ModuleResource, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrModuleNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.authorizeModule(module, claims); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{
		util.MimePDF, util.MimeVideo, util.MimeAudio, util.MimeImage, util.MimeOctetStream,
	})
	if err != nil {
		return nil, util.ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("modules/%s/resources/%d%s", id, time.Now().UnixNano(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
	if err != nil {
		return nil, err
	}

	resource := model.ModuleResource{
		ID:          model.GenerateUUID(),
		Title:       title,
		Description: description,
		Type:        resourceTypeForMime(mimeType),
		URL:         url,
	}

	if util.IsVideo(mimeType) {
		if local, ok := s.Storage.Provider.(*LocalStorageProvider); ok {
			localPath := filepath.Join(local.Config.LocalPath, filename)
			if info, err := util.GetVideoInfo(localPath); err == nil {
				resource.Duration = info.Duration
			} else {
				logger.Log.Warn("Video probe failed", zap.String("path", localPath), zap.Error(err))
			}
		}
	}

	module.Resources = append(module.Resources, resource)
	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return &resource, nil
}

func resourceTypeForMime(mimeType string) model.ResourceType {
	switch {
	case mimeType == util.MimePDF:
		return model.PDFResource
	case util.IsVideo(mimeType):
		return model.VideoResource
	case strings.HasPrefix(mimeType, util.MimeAudio):
		return model.AudioResource
	default:
		return model.DocumentResource
	}
}

func (s *ModuleService) authorizeCourse(courseID uint, claims *util.Claims) error {
	if claims.Role == model.Admin {
		return nil
	}
	if courseID == 0 {
		return nil
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	if course.InstructorID != claims.UserID {
		return util.ErrPermissionDenied
	}
	return nil
}

func (s *ModuleService) authorizeModule(module *model.LearningModule, claims *util.Claims) error {
	if claims.Role == model.Admin {
		return nil
	}
	if module.CreatedBy == claims.UserID {
		return nil
	}
	return s.authorizeCourse(module.CourseID, claims)
}
