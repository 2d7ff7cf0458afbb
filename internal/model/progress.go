package model

import (
	"time"
)

// Note is a free-text note kept inside the progress record.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Tags      []string  `json:"tags,omitempty"`
}

// StudentProgress is the persisted record of one student inside one module:
// position, completions, quiz scores, notes and bookmarks. One row per
// (user, module) pair; the viewer session re-saves it after every mutation.
// swagger:model StudentProgress
type StudentProgress struct {
	BaseModel
	UserID              uint           `gorm:"uniqueIndex:idx_user_module;type:bigint unsigned" json:"userId"`
	ModuleID            string         `gorm:"uniqueIndex:idx_user_module;size:36" json:"moduleId"`
	CompletedObjectives []string       `gorm:"serializer:json;type:json" json:"completedObjectives"`
	CurrentSection      int            `gorm:"default:0" json:"currentSection"`
	QuizScores          map[string]int `gorm:"serializer:json;type:json" json:"quizScores"`
	TimeSpent           int            `gorm:"default:0" json:"timeSpent"` // seconds
	LastAccessed        time.Time      `json:"lastAccessed"`
	Notes               []Note         `gorm:"serializer:json;type:json" json:"notes"`
	Bookmarks           []string       `gorm:"serializer:json;type:json" json:"bookmarks"`
}

func (StudentProgress) TableName() string {
	return "student_progress"
}

// NewStudentProgress returns the default record for a student opening a
// module for the first time.
func NewStudentProgress(userID uint, moduleID string) *StudentProgress {
	return &StudentProgress{
		UserID:              userID,
		ModuleID:            moduleID,
		CompletedObjectives: []string{},
		QuizScores:          map[string]int{},
		Notes:               []Note{},
		Bookmarks:           []string{},
		LastAccessed:        time.Now(),
	}
}

func (p *StudentProgress) HasBookmark(key string) bool {
	for _, b := range p.Bookmarks {
		if b == key {
			return true
		}
	}
	return false
}

func (p *StudentProgress) HasObjective(id string) bool {
	for _, o := range p.CompletedObjectives {
		if o == id {
			return true
		}
	}
	return false
}

// ToggleObjective flips the completion mark for an objective and reports the
// new state.
func (p *StudentProgress) ToggleObjective(id string) bool {
	for i, o := range p.CompletedObjectives {
		if o == id {
			p.CompletedObjectives = append(p.CompletedObjectives[:i], p.CompletedObjectives[i+1:]...)
			return false
		}
	}
	p.CompletedObjectives = append(p.CompletedObjectives, id)
	return true
}
