package repository

import (
	"qr_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create appends an attempt. Attempts are insert-only; no method on this
// repository updates or deletes one.
func (r *AttemptRepository) Create(a *model.QuizAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) ListByUser(userID uint, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("submitted_at desc").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByAnonymous(anonymousID string, limit int) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("anonymous_id = ?", anonymousID).
		Order("submitted_at desc").Limit(limit).Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) SumScoreByUser(userID uint) (int, error) {
	var total int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").Scan(&total).Error
	return int(total), err
}

func (r *AttemptRepository) CountByQrCode(qrCodeID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("qr_code_id = ?", qrCodeID).Count(&count).Error
	return count, err
}
