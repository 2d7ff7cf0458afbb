package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// swagger:model Course
type Course struct {
	BaseModel
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Category     string       `gorm:"size:100;index" json:"category"`
	Level        ModuleLevel  `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	Status       CourseStatus `gorm:"type:enum('draft','published','archived');default:'draft'" json:"status"`
	InstructorID uint         `gorm:"index;type:bigint unsigned" json:"instructorId"`
	Instructor   *User        `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	Thumbnail    string       `gorm:"size:255" json:"thumbnail,omitempty"`
	MaxStudents  int          `gorm:"default:0" json:"maxStudents"` // 0 = unlimited
}

func (Course) TableName() string {
	return "courses"
}
