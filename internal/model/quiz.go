package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortText      QuestionType = "short_text"
	MultipleSelect QuestionType = "multiple_select"
)

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title            string     `gorm:"size:255;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	CreatorID        uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
	TimeLimitSeconds int        `gorm:"default:0" json:"timeLimitSeconds"` // 0 = no limit
	IsPublic         bool       `gorm:"default:false" json:"isPublic"`
	Questions        []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	UUIDBase
	QuizID       string           `gorm:"index;type:varchar(36)" json:"quizId"`
	QuestionText string           `gorm:"type:text;not null" json:"questionText"`
	Type         QuestionType     `gorm:"type:enum('multiple_choice','true_false','short_text','multiple_select');not null" json:"type"`
	Points       int              `gorm:"default:10" json:"points"`
	OrderIndex   int              `gorm:"default:0" json:"orderIndex"`
	Options      []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption doubles as the acceptable-answer list for short_text
// questions: there OptionText holds a correct answer string rather than a
// selectable choice.
// swagger:model QuestionOption
type QuestionOption struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	OptionText string `gorm:"type:text;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
