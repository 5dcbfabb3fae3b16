package model

import (
	"time"

	"gorm.io/datatypes"
)

// QuizAttempt is the append-only record of one grading event. Exactly one of
// UserID / AnonymousID is set. Rows are never updated or deleted.
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	QuizID           *string        `gorm:"index;type:varchar(36)" json:"quizId"`
	QuestionID       *string        `gorm:"index;type:varchar(36)" json:"questionId"`
	QrCodeID         string         `gorm:"index;type:varchar(36)" json:"qrCodeId"`
	UserID           *uint          `gorm:"index;type:bigint unsigned" json:"userId"`
	AnonymousID      *string        `gorm:"index;type:varchar(36)" json:"anonymousId"`
	Score            int            `gorm:"not null" json:"score"`
	MaxScore         int            `gorm:"not null" json:"maxScore"`
	TimeTakenSeconds *int           `json:"timeTakenSeconds,omitempty"`
	Answers          datatypes.JSON `gorm:"type:json" json:"answers"`
	SubmittedAt      time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP(3)" json:"submittedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
