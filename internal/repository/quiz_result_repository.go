package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) FindByUserAndModule(userID uint, moduleID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

func (r *QuizResultRepository) FindBySection(userID uint, moduleID, sectionID string) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND module_id = ? AND section_id = ?", userID, moduleID, sectionID).
		Order("completed_at DESC").
		Find(&results).Error
	return results, err
}

// BestScore returns the highest recorded score for a section, 0 when the
// student has no attempts yet.
func (r *QuizResultRepository) BestScore(userID uint, moduleID, sectionID string) (int, error) {
	var best int
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ? AND module_id = ? AND section_id = ?", userID, moduleID, sectionID).
		Select("COALESCE(MAX(score), 0)").
		Scan(&best).Error
	return best, err
}

func (r *QuizResultRepository) AverageScore(userID uint) (float64, error) {
	var avg float64
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ?", userID).
		Select("COALESCE(AVG(score), 0)").
		Scan(&avg).Error
	return avg, err
}

func (r *QuizResultRepository) CountAttempts(userID uint, moduleID, sectionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizResult{}).
		Where("user_id = ? AND module_id = ? AND section_id = ?", userID, moduleID, sectionID).
		Count(&count).Error
	return count, err
}
