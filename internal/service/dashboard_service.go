package service

import (
	"lms_backend/internal/learning"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
)

type DashboardService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgressRepo   *repository.ProgressRepository
	ModuleRepo     *repository.ModuleRepository
	QuizResultRepo *repository.QuizResultRepository
}

func NewDashboardService(
	enrollmentRepo *repository.EnrollmentRepository,
	progressRepo *repository.ProgressRepository,
	moduleRepo *repository.ModuleRepository,
	quizResultRepo *repository.QuizResultRepository,
) *DashboardService {
	return &DashboardService{
		EnrollmentRepo: enrollmentRepo,
		ProgressRepo:   progressRepo,
		ModuleRepo:     moduleRepo,
		QuizResultRepo: quizResultRepo,
	}
}

// ModuleOverview pairs a module with the student's derived progress.
type ModuleOverview struct {
	ModuleID     string           `json:"moduleId"`
	Title        string           `json:"title"`
	Summary      learning.Summary `json:"summary"`
	LastAccessed string           `json:"lastAccessed"`
}

type Dashboard struct {
	ActiveCourses    int64            `json:"activeCourses"`
	CompletedCourses int64            `json:"completedCourses"`
	ModulesStarted   int              `json:"modulesStarted"`
	ModulesCompleted int              `json:"modulesCompleted"`
	AverageQuizScore float64          `json:"averageQuizScore"`
	TotalTimeSpent   int              `json:"totalTimeSpent"` // seconds
	RecentModules    []ModuleOverview `json:"recentModules"`
}

// Overview derives the student dashboard from enrollments, per-module
// progress and quiz history. Modules that have been deleted since the
// student last opened them are skipped.
func (s *DashboardService) Overview(userID uint) (*Dashboard, error) {
	active, err := s.EnrollmentRepo.CountByUser(userID, model.EnrollmentActive)
	if err != nil {
		return nil, err
	}
	completed, err := s.EnrollmentRepo.CountByUser(userID, model.EnrollmentCompleted)
	if err != nil {
		return nil, err
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	avgScore, err := s.QuizResultRepo.AverageScore(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		ActiveCourses:    active,
		CompletedCourses: completed,
		ModulesStarted:   len(records),
		AverageQuizScore: avgScore,
		RecentModules:    []ModuleOverview{},
	}

	for i := range records {
		p := &records[i]
		dashboard.TotalTimeSpent += p.TimeSpent

		module, err := s.ModuleRepo.FindByID(p.ModuleID)
		if err != nil {
			logger.Log.Debug("Skipping progress for missing module",
				zap.String("moduleID", p.ModuleID), zap.Error(err))
			continue
		}

		summary := learning.Summarize(module, p)
		if summary.OverallPct >= 100 {
			dashboard.ModulesCompleted++
		}

		if len(dashboard.RecentModules) < 5 {
			dashboard.RecentModules = append(dashboard.RecentModules, ModuleOverview{
				ModuleID:     module.ID,
				Title:        module.Title,
				Summary:      summary,
				LastAccessed: p.LastAccessed.Format("2006-01-02 15:04:05"),
			})
		}
	}

	return dashboard, nil
}
