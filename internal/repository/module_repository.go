package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.LearningModule) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id string) (*model.LearningModule, error) {
	var module model.LearningModule
	err := r.DB.Where("id = ?", id).First(&module).Error
	return &module, err
}

func (r *ModuleRepository) Update(module *model.LearningModule) error {
	return r.DB.Save(module).Error
}

func (r *ModuleRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.LearningModule{}).Error
}

func (r *ModuleRepository) SetPublished(id string, published bool) error {
	return r.DB.Model(&model.LearningModule{}).
		Where("id = ?", id).
		Update("is_published", published).
		Error
}

// List returns a filtered page of modules plus the unpaged total.
// publishedOnly hides drafts from students.
func (r *ModuleRepository) List(courseID uint, subject string, level model.ModuleLevel, search string, publishedOnly bool, page, limit int) ([]model.LearningModule, int64, error) {
	query := r.DB.Model(&model.LearningModule{})

	if courseID != 0 {
		query = query.Where("course_id = ?", courseID)
	}
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if search != "" {
		query = query.Where("title LIKE ? OR description LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var modules []model.LearningModule
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&modules).Error
	return modules, total, err
}

func (r *ModuleRepository) FindByCourse(courseID uint, publishedOnly bool) ([]model.LearningModule, error) {
	query := r.DB.Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var modules []model.LearningModule
	err := query.Order("created_at ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CountByCourse(courseID uint, publishedOnly bool) (int64, error) {
	query := r.DB.Model(&model.LearningModule{}).Where("course_id = ?", courseID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}
