package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint             `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned" json:"userId"`
	CourseID    uint             `gorm:"uniqueIndex:idx_user_course;type:bigint unsigned" json:"courseId"`
	Course      *Course          `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Status      EnrollmentStatus `gorm:"type:enum('active','completed','dropped');default:'active'" json:"status"`
	EnrolledAt  time.Time        `json:"enrolledAt"`
	CompletedAt *time.Time       `json:"completedAt,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
