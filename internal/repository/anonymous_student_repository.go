package repository

import (
	"qr_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AnonymousStudentRepository struct {
	DB *gorm.DB
}

func NewAnonymousStudentRepository(db *gorm.DB) *AnonymousStudentRepository {
	return &AnonymousStudentRepository{DB: db}
}

func (r *AnonymousStudentRepository) Create(s *model.AnonymousStudent) error {
	return r.DB.Create(s).Error
}

func (r *AnonymousStudentRepository) FindByID(id string) (*model.AnonymousStudent, error) {
	var s model.AnonymousStudent
	err := r.DB.Where("id = ?", id).First(&s).Error
	return &s, err
}

// IncrementPoints adds delta as a single atomic SQL update. Concurrent
// submissions from the same participant must not lose updates, so this is
// never done as a read-modify-write in application code.
func (r *AnonymousStudentRepository) IncrementPoints(id string, delta int) error {
	return r.DB.Model(&model.AnonymousStudent{}).
		Where("id = ?", id).
		Update("total_points", gorm.Expr("total_points + ?", delta)).Error
}

func (r *AnonymousStudentRepository) ListTop(limit int) ([]model.AnonymousStudent, error) {
	var students []model.AnonymousStudent
	err := r.DB.Order("total_points desc").Limit(limit).Find(&students).Error
	return students, err
}
