package model

import (
	"bytes"
	"encoding/json"
)

type ModuleLevel string

const (
	Beginner     ModuleLevel = "beginner"
	Intermediate ModuleLevel = "intermediate"
	Advanced     ModuleLevel = "advanced"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	TrueFalse      QuestionType = "true-false"
	FillBlank      QuestionType = "fill-blank"
	DragDrop       QuestionType = "drag-drop"
	CodeQuestion   QuestionType = "code"
)

type ContentType string

const (
	TextContent        ContentType = "text"
	HeadingContent     ContentType = "heading"
	ImageContent       ContentType = "image"
	VideoContent       ContentType = "video"
	CodeContent        ContentType = "code"
	InteractiveContent ContentType = "interactive"
	QuizContent        ContentType = "quiz"
)

// AnswerValue carries a quiz answer that the clients send either as a single
// JSON string or as an ordered array of strings. The distinction matters for
// grading: drag-drop answers are only valid as sequences.
type AnswerValue struct {
	Single string
	List   []string
	IsList bool
}

func SingleAnswer(s string) AnswerValue {
	return AnswerValue{Single: s}
}

func ListAnswer(values ...string) AnswerValue {
	return AnswerValue{List: values, IsList: true}
}

func (a AnswerValue) IsEmpty() bool {
	if a.IsList {
		return len(a.List) == 0
	}
	return a.Single == ""
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.IsList {
		return json.Marshal(a.List)
	}
	return json.Marshal(a.Single)
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		a.IsList = true
		a.Single = ""
		return json.Unmarshal(trimmed, &a.List)
	}
	a.IsList = false
	a.List = nil
	return json.Unmarshal(trimmed, &a.Single)
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer AnswerValue  `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Points        int          `json:"points"`
	Difficulty    string       `json:"difficulty"`
	Hints         []string     `json:"hints,omitempty"`
}

type InteractiveElement struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"` // simulation, diagram, code-editor, animation, virtual-lab
	Title   string         `json:"title"`
	Content string         `json:"content"`
	Config  map[string]any `json:"config,omitempty"`
}

type BlockMetadata struct {
	EstimatedTime int      `json:"estimatedTime,omitempty"` // minutes
	Difficulty    string   `json:"difficulty,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// ContentBlock is a tagged union over the content types: exactly one of the
// payload fields matching Type is set.
// swagger:model ContentBlock
type ContentBlock struct {
	ID          string              `json:"id"`
	Type        ContentType         `json:"type"`
	Text        string              `json:"text,omitempty"`
	Interactive *InteractiveElement `json:"interactive,omitempty"`
	Quiz        *QuizQuestion       `json:"quiz,omitempty"`
	Metadata    *BlockMetadata      `json:"metadata,omitempty"`
}

// swagger:model LearningSection
type LearningSection struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Order         int            `json:"order"`
	Content       []ContentBlock `json:"content"`
	Quiz          []QuizQuestion `json:"quiz,omitempty"`
	EstimatedTime int            `json:"estimatedTime"` // minutes
	IsRequired    bool           `json:"isRequired"`
}

func (s *LearningSection) HasQuiz() bool {
	return len(s.Quiz) > 0
}

type LearningObjective struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ResourceType string

const (
	PDFResource      ResourceType = "pdf"
	LinkResource     ResourceType = "link"
	VideoResource    ResourceType = "video"
	AudioResource    ResourceType = "audio"
	DocumentResource ResourceType = "document"
)

// swagger:model ModuleResource
type ModuleResource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url"`
	Description string       `json:"description,omitempty"`
	Size        string       `json:"size,omitempty"`
	Duration    float64      `json:"duration,omitempty"` // seconds, probed for video/audio
	Thumbnail   string       `json:"thumbnail,omitempty"`
}

// ModuleSettings gates viewer behavior. The skip policy lives in the
// navigation engine, not in the handlers.
type ModuleSettings struct {
	AllowSkipping             bool `json:"allowSkipping"`
	RequireSequentialProgress bool `json:"requireSequentialProgress"`
	ShowProgress              bool `json:"showProgress"`
	EnableNotes               bool `json:"enableNotes"`
	EnableBookmarks           bool `json:"enableBookmarks"`
	TimeTracking              bool `json:"timeTracking"`
	AllowQuizRetry            bool `json:"allowQuizRetry"`
	QuizTimeLimit             int  `json:"quizTimeLimit,omitempty"` // minutes, 0 = none
}

func DefaultModuleSettings() ModuleSettings {
	return ModuleSettings{
		AllowSkipping:             true,
		RequireSequentialProgress: false,
		ShowProgress:              true,
		EnableNotes:               true,
		EnableBookmarks:           true,
		TimeTracking:              true,
		AllowQuizRetry:            true,
	}
}

// LearningModule is the static content tree. Sections, objectives and
// resources are stored as JSON documents; the engine treats a loaded module
// as immutable.
// swagger:model LearningModule
type LearningModule struct {
	UUIDBase
	Title             string              `gorm:"size:255;not null" json:"title"`
	Description       string              `gorm:"type:text" json:"description"`
	Subject           string              `gorm:"size:100;index" json:"subject"`
	Level             ModuleLevel         `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	EstimatedDuration int                 `gorm:"default:0" json:"estimatedDuration"` // minutes
	Sections          []LearningSection   `gorm:"serializer:json;type:json" json:"sections"`
	Objectives        []LearningObjective `gorm:"serializer:json;type:json" json:"learningObjectives"`
	Resources         []ModuleResource    `gorm:"serializer:json;type:json" json:"resources"`
	Tags              []string            `gorm:"serializer:json;type:json" json:"tags"`
	Settings          ModuleSettings      `gorm:"serializer:json;type:json" json:"settings"`
	CourseID          uint                `gorm:"index;type:bigint unsigned" json:"courseId"`
	CreatedBy         uint                `gorm:"index;type:bigint unsigned" json:"createdBy"`
	IsPublished       bool                `gorm:"default:false" json:"isPublished"`
	Thumbnail         string              `gorm:"size:255" json:"thumbnail,omitempty"`
}

func (LearningModule) TableName() string {
	return "learning_modules"
}

// QuizSectionCount reports how many sections carry a quiz.
func (m *LearningModule) QuizSectionCount() int {
	n := 0
	for i := range m.Sections {
		if m.Sections[i].HasQuiz() {
			n++
		}
	}
	return n
}
