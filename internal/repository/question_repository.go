package repository

import (
	"qr_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *QuestionRepository) FindWithOptions(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_index asc")
		}).
		Where("id = ?", id).First(&q).Error
	return &q, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// ReplaceOptions swaps a question's option rows wholesale inside one
// transaction; edits always send the full option list.
func (r *QuestionRepository) ReplaceOptions(questionID string, options []model.QuestionOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		for i := range options {
			options[i].QuestionID = questionID
			options[i].OrderIndex = i
		}
		return tx.Create(&options).Error
	})
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Question{}).Error
	})
}

func (r *QuestionRepository) NextOrderIndex(quizID string) (int, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return int(count), err
}
