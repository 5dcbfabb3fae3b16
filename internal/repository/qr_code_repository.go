package repository

import (
	"errors"
	"time"

	"qr_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QrCodeRepository struct {
	DB *gorm.DB
}

func NewQrCodeRepository(db *gorm.DB) *QrCodeRepository {
	return &QrCodeRepository{DB: db}
}

func (r *QrCodeRepository) Create(qr *model.QrCode) error {
	return r.DB.Create(qr).Error
}

func (r *QrCodeRepository) FindByID(id string) (*model.QrCode, error) {
	var qr model.QrCode
	err := r.DB.Where("id = ?", id).First(&qr).Error
	return &qr, err
}

func (r *QrCodeRepository) FindWithAssignments(id string) (*model.QrCode, error) {
	var qr model.QrCode
	err := r.DB.
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("qr_code_assignments.created_at desc")
		}).
		Where("id = ?", id).First(&qr).Error
	return &qr, err
}

func (r *QrCodeRepository) List(creatorID uint, page, limit int) ([]model.QrCode, int64, error) {
	var codes []model.QrCode
	var total int64
	query := r.DB.Model(&model.QrCode{})
	if creatorID > 0 {
		query = query.Where("creator_id = ?", creatorID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&codes).Error
	return codes, total, err
}

// Update persists label, location and active flag changes. The locked
// question of a static code is write-once at creation, so it is explicitly
// excluded here.
func (r *QrCodeRepository) Update(qr *model.QrCode) error {
	return r.DB.Model(qr).
		Omit("locked_question_id", "type", "creator_id").
		Updates(map[string]interface{}{
			"label":                qr.Label,
			"location_description": qr.LocationDescription,
			"is_active":            qr.IsActive,
		}).Error
}

// UpdateCurrentQuiz moves the dynamic pointer. Idempotent: concurrent
// auto-activations compute the same target and the second write is a no-op.
func (r *QrCodeRepository) UpdateCurrentQuiz(id string, quizID *string) error {
	return r.DB.Model(&model.QrCode{}).Where("id = ?", id).
		Update("current_quiz_id", quizID).Error
}

func (r *QrCodeRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("qr_code_id = ?", id).Delete(&model.QrCodeAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.QrCode{}).Error
	})
}

func (r *QrCodeRepository) CreateAssignment(a *model.QrCodeAssignment) error {
	return r.DB.Create(a).Error
}

// FindEligibleAssignment returns the assignment with the greatest
// active_from that has already started and not yet ended. When several
// windows overlap the most recently started one wins. Returns nil without
// error when nothing is eligible.
func (r *QrCodeRepository) FindEligibleAssignment(qrCodeID string, now time.Time) (*model.QrCodeAssignment, error) {
	var a model.QrCodeAssignment
	err := r.DB.
		Where("qr_code_id = ?", qrCodeID).
		Where("active_from <= ?", now).
		Where("active_until IS NULL OR active_until >= ?", now).
		Order("active_from desc").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindStaticByQuestion locates an existing static code a creator already has
// for a question, used by the export sheet to avoid duplicates.
func (r *QrCodeRepository) FindStaticByQuestion(questionID string, creatorID uint) (*model.QrCode, error) {
	var qr model.QrCode
	err := r.DB.
		Where("type = ?", model.QrStatic).
		Where("locked_question_id = ?", questionID).
		Where("creator_id = ?", creatorID).
		First(&qr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &qr, nil
}
