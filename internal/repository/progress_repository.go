package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	progressKeyPrefix = "progress:"
	progressCacheTTL  = 30 * time.Minute
)

// ProgressRepository persists per-student module progress. Records are
// cached in Redis because the viewer saves after nearly every interaction.
type ProgressRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewProgressRepository(db *gorm.DB, rdb *redis.Client) *ProgressRepository {
	return &ProgressRepository{DB: db, Redis: rdb}
}

func progressKey(userID uint, moduleID string) string {
	return fmt.Sprintf("%s%d:%s", progressKeyPrefix, userID, moduleID)
}

// FindOrCreate returns the progress record for (userID, moduleID),
// creating the default record on first access.
func (r *ProgressRepository) FindOrCreate(userID uint, moduleID string) (*model.StudentProgress, error) {
	if cached := r.fromCache(userID, moduleID); cached != nil {
		return cached, nil
	}

	var progress model.StudentProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		created := model.NewStudentProgress(userID, moduleID)
		if err := r.DB.Create(created).Error; err != nil {
			return nil, err
		}
		r.toCache(created)
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	r.toCache(&progress)
	return &progress, nil
}

func (r *ProgressRepository) Save(progress *model.StudentProgress) error {
	progress.LastAccessed = time.Now()
	if err := r.DB.Save(progress).Error; err != nil {
		return err
	}
	r.toCache(progress)
	return nil
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByModule(moduleID string) ([]model.StudentProgress, error) {
	var records []model.StudentProgress
	err := r.DB.Where("module_id = ?", moduleID).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Delete(userID uint, moduleID string) error {
	if err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&model.StudentProgress{}).Error; err != nil {
		return err
	}
	r.Redis.Del(context.Background(), progressKey(userID, moduleID))
	return nil
}

func (r *ProgressRepository) fromCache(userID uint, moduleID string) *model.StudentProgress {
	val, err := r.Redis.Get(context.Background(), progressKey(userID, moduleID)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		logger.Log.Warn("Progress cache read failed", zap.Error(err))
		return nil
	}

	var progress model.StudentProgress
	if err := json.Unmarshal([]byte(val), &progress); err != nil {
		return nil
	}
	return &progress
}

func (r *ProgressRepository) toCache(progress *model.StudentProgress) {
	data, err := json.Marshal(progress)
	if err != nil {
		return
	}
	key := progressKey(progress.UserID, progress.ModuleID)
	if err := r.Redis.Set(context.Background(), key, data, progressCacheTTL).Err(); err != nil {
		logger.Log.Warn("Progress cache write failed", zap.Error(err))
	}
}
