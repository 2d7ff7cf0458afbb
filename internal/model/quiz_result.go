package model

import (
	"time"
)

// QuizResult stores one graded quiz submission for a section.
type QuizResult struct {
	BaseModel
	UserID      uint                   `gorm:"index;type:bigint unsigned" json:"userId"`
	ModuleID    string                 `gorm:"index;size:36" json:"moduleId"`
	SectionID   string                 `gorm:"index;size:36" json:"sectionId"`
	Score       int                    `gorm:"not null" json:"score"` // 0-100
	Correct     int                    `gorm:"not null" json:"correct"`
	Total       int                    `gorm:"not null" json:"total"`
	Passed      bool                   `gorm:"default:false" json:"passed"`
	Answers     map[string]AnswerValue `gorm:"serializer:json;type:json" json:"answers"`
	CompletedAt time.Time              `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
