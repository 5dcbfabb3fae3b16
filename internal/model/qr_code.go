package model

import "time"

type QrCodeType string

const (
	QrStatic  QrCodeType = "static"
	QrDynamic QrCodeType = "dynamic"
)

// QrCode is a scannable entry point. A static code is permanently bound to
// one question at creation; LockedQuestionID is never updated afterwards. A
// dynamic code points at whichever quiz is currently active, which changes
// over time through assignments.
// swagger:model QrCode
type QrCode struct {
	UUIDBase
	Type                QrCodeType         `gorm:"type:enum('static','dynamic');not null" json:"type"`
	Label               string             `gorm:"size:255;not null" json:"label"`
	LocationDescription string             `gorm:"type:text" json:"locationDescription"`
	CreatorID           uint               `gorm:"index;type:bigint unsigned" json:"creatorId"`
	CurrentQuizID       *string            `gorm:"type:varchar(36)" json:"currentQuizId"`
	LockedQuestionID    *string            `gorm:"type:varchar(36)" json:"lockedQuestionId"`
	IsActive            bool               `gorm:"default:true" json:"isActive"`
	Assignments         []QrCodeAssignment `gorm:"foreignKey:QrCodeID" json:"assignments,omitempty"`
}

func (QrCode) TableName() string {
	return "qr_codes"
}

// QrCodeAssignment schedules a quiz onto a dynamic code for the window
// [ActiveFrom, ActiveUntil). A nil ActiveUntil means open-ended.
// swagger:model QrCodeAssignment
type QrCodeAssignment struct {
	UUIDBase
	QrCodeID    string     `gorm:"index;type:varchar(36);not null" json:"qrCodeId"`
	QuizID      string     `gorm:"type:varchar(36);not null" json:"quizId"`
	AssignedBy  uint       `gorm:"type:bigint unsigned" json:"assignedBy"`
	ActiveFrom  time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP(3)" json:"activeFrom"`
	ActiveUntil *time.Time `json:"activeUntil,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

func (QrCodeAssignment) TableName() string {
	return "qr_code_assignments"
}
