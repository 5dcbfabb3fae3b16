package repository

import (
	"qr_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.Where("id = ?", id).First(&q).Error
	return &q, err
}

// FindWithQuestions loads the quiz with questions and options fully
// populated in one call, both in display order.
func (r *QuizRepository) FindWithQuestions(id string) (*model.Quiz, error) {
	var q model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_index asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_options.order_index asc")
		}).
		Where("id = ?", id).First(&q).Error
	return &q, err
}

// List returns quizzes visible to a creator; creatorID 0 means no owner
// filter (admin view).
func (r *QuizRepository) List(creatorID uint, page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64
	query := r.DB.Model(&model.Quiz{})
	if creatorID > 0 {
		query = query.Where("creator_id = ?", creatorID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Quiz{}).Error
}

