package service

import (
	"strings"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
	"qr_quiz_backend/internal/util"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
}

func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository) *QuizService {
	return &QuizService{QuizRepo: quizRepo, QuestionRepo: questionRepo}
}

type QuizRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
	IsPublic         bool   `json:"isPublic"`
}

func (s *QuizService) CreateQuiz(creatorID uint, req QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:            strings.TrimSpace(req.Title),
		Description:      strings.TrimSpace(req.Description),
		CreatorID:        creatorID,
		TimeLimitSeconds: req.TimeLimitSeconds,
		IsPublic:         req.IsPublic,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// ListQuizzes scopes to the caller unless they are an admin.
func (s *QuizService) ListQuizzes(caller *util.Claims, page, limit int) ([]model.Quiz, int64, error) {
	creatorID := caller.UserID
	if caller.Role == model.Admin {
		creatorID = 0
	}
	return s.QuizRepo.List(creatorID, page, limit)
}

func (s *QuizService) GetQuiz(caller *util.Claims, id string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(id)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if caller.Role != model.Admin && quiz.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(caller *util.Claims, id string, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if caller.Role != model.Admin && quiz.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}

	quiz.Title = strings.TrimSpace(req.Title)
	quiz.Description = strings.TrimSpace(req.Description)
	quiz.TimeLimitSeconds = req.TimeLimitSeconds
	quiz.IsPublic = req.IsPublic
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) DeleteQuiz(caller *util.Claims, id string) error {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		return util.ErrQuizNotFound
	}
	if caller.Role != model.Admin && quiz.CreatorID != caller.UserID {
		return util.ErrPermissionDenied
	}
	return s.QuizRepo.Delete(id)
}

type OptionRequest struct {
	OptionText string `json:"optionText" binding:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	QuestionText string             `json:"questionText" binding:"required"`
	Type         model.QuestionType `json:"type" binding:"required"`
	Points       *int               `json:"points"`
	OrderIndex   *int               `json:"orderIndex"`
	Options      []OptionRequest    `json:"options"`
}

func (s *QuizService) AddQuestion(caller *util.Claims, quizID string, req QuestionRequest) (*model.Question, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if caller.Role != model.Admin && quiz.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}

	points := 10
	if req.Points != nil {
		points = *req.Points
	}

	orderIndex := 0
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	} else {
		next, err := s.QuestionRepo.NextOrderIndex(quizID)
		if err != nil {
			return nil, err
		}
		orderIndex = next
	}

	question := &model.Question{
		QuizID:       quizID,
		QuestionText: strings.TrimSpace(req.QuestionText),
		Type:         req.Type,
		Points:       points,
		OrderIndex:   orderIndex,
	}
	for i, o := range req.Options {
		question.Options = append(question.Options, model.QuestionOption{
			OptionText: o.OptionText,
			IsCorrect:  o.IsCorrect,
			OrderIndex: i,
		})
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return s.QuestionRepo.FindWithOptions(question.ID)
}

func (s *QuizService) UpdateQuestion(caller *util.Claims, id string, req QuestionRequest) (*model.Question, error) {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if err := s.checkQuestionOwnership(caller, question); err != nil {
		return nil, err
	}

	question.QuestionText = strings.TrimSpace(req.QuestionText)
	question.Type = req.Type
	if req.Points != nil {
		question.Points = *req.Points
	}
	if req.OrderIndex != nil {
		question.OrderIndex = *req.OrderIndex
	}
	question.Options = nil
	if err := s.QuestionRepo.Update(question); err != nil {
		return nil, err
	}

	if req.Options != nil {
		options := make([]model.QuestionOption, len(req.Options))
		for i, o := range req.Options {
			options[i] = model.QuestionOption{
				OptionText: o.OptionText,
				IsCorrect:  o.IsCorrect,
			}
		}
		if err := s.QuestionRepo.ReplaceOptions(id, options); err != nil {
			return nil, err
		}
	}

	return s.QuestionRepo.FindWithOptions(id)
}

func (s *QuizService) DeleteQuestion(caller *util.Claims, id string) error {
	question, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return util.ErrQuestionNotFound
	}
	if err := s.checkQuestionOwnership(caller, question); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuizService) checkQuestionOwnership(caller *util.Claims, question *model.Question) error {
	if caller.Role == model.Admin {
		return nil
	}
	quiz, err := s.QuizRepo.FindByID(question.QuizID)
	if err != nil {
		return util.ErrQuizNotFound
	}
	if quiz.CreatorID != caller.UserID {
		return util.ErrPermissionDenied
	}
	return nil
}
