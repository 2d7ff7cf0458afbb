package service

import (
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ModuleRepo     *repository.ModuleRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	moduleRepo *repository.ModuleRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		ModuleRepo:     moduleRepo,
	}
}

type CourseListQuery struct {
	Category string
	Level    model.ModuleLevel
	Status   model.CourseStatus
	Search   string
	Page     int
	Limit    int
}

func (s *CourseService) List(q CourseListQuery) ([]model.Course, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.CourseRepo.List(q.Category, q.Level, q.Status, q.Search, q.Page, q.Limit)
}

type CourseDetail struct {
	Course       *model.Course          `json:"course"`
	Modules      []model.LearningModule `json:"modules"`
	Enrolled     bool                   `json:"enrolled"`
	StudentCount int64                  `json:"studentCount"`
}

// GetDetail returns a course with its module list. Drafts are only
// visible to the owning instructor and admins.
func (s *CourseService) GetDetail(courseID uint, claims *util.Claims) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	isOwner := claims != nil && (claims.UserID == course.InstructorID || claims.Role == model.Admin)
	if course.Status != model.CoursePublished && !isOwner {
		return nil, util.ErrCourseNotFound
	}

	modules, err := s.ModuleRepo.FindByCourse(courseID, !isOwner)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if claims != nil {
		if _, err := s.EnrollmentRepo.FindByUserAndCourse(claims.UserID, courseID); err == nil {
			enrolled = true
		}
	}

	count, err := s.CourseRepo.CountEnrollments(courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetail{
		Course:       course,
		Modules:      modules,
		Enrolled:     enrolled,
		StudentCount: count,
	}, nil
}

func (s *CourseService) Create(course *model.Course, instructorID uint) error {
	course.InstructorID = instructorID
	if course.Status == "" {
		course.Status = model.CourseDraft
	}
	return s.CourseRepo.Create(course)
}

type UpdateCourseInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Category    string             `json:"category"`
	Level       model.ModuleLevel  `json:"level"`
	Status      model.CourseStatus `json:"status"`
	Thumbnail   string             `json:"thumbnail"`
	MaxStudents *int               `json:"maxStudents"`
}

func (s *CourseService) Update(courseID uint, input UpdateCourseInput, claims *util.Claims) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	if claims.UserID != course.InstructorID && claims.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Category != "" {
		course.Category = input.Category
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if input.Thumbnail != "" {
		course.Thumbnail = input.Thumbnail
	}
	if input.MaxStudents != nil {
		course.MaxStudents = *input.MaxStudents
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(courseID uint, claims *util.Claims) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	if claims.UserID != course.InstructorID && claims.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(courseID)
}

// Enroll signs a student up for a published course. Re-enrolling after a
// drop reactivates the old record.
func (s *CourseService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	existing, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		if existing.Status == model.EnrollmentDropped {
			existing.Status = model.EnrollmentActive
			existing.EnrolledAt = time.Now()
			existing.CompletedAt = nil
			if err := s.EnrollmentRepo.Update(existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		return nil, util.ErrAlreadyEnrolled
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     model.EnrollmentActive,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *CourseService) Drop(userID, courseID uint) error {
	_, err := s.EnrollmentRepo.FindByUserAndCourse(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrEnrollmentNotFound
	}
	if err != nil {
		return err
	}
	return s.EnrollmentRepo.UpdateStatus(userID, courseID, model.EnrollmentDropped)
}

func (s *CourseService) MyCourses(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.FindByUser(userID)
}

func (s *CourseService) TaughtCourses(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByInstructor(instructorID)
}
