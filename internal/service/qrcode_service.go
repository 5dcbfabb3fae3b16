package service

import (
	"strings"
	"time"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
	"qr_quiz_backend/internal/util"
)

type QrCodeService struct {
	QrRepo       *repository.QrCodeRepository
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
}

func NewQrCodeService(qrRepo *repository.QrCodeRepository, quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, attemptRepo *repository.AttemptRepository) *QrCodeService {
	return &QrCodeService{QrRepo: qrRepo, QuizRepo: quizRepo, QuestionRepo: questionRepo, AttemptRepo: attemptRepo}
}

type QrCodeRequest struct {
	Type                model.QrCodeType `json:"type" binding:"required"`
	Label               string           `json:"label" binding:"required"`
	LocationDescription string           `json:"locationDescription"`
	CurrentQuizID       *string          `json:"currentQuizId"`
	LockedQuestionID    *string          `json:"lockedQuestionId"`
}

// CreateQrCode is the only place a static code's locked question is ever
// set; every later operation leaves it untouched.
func (s *QrCodeService) CreateQrCode(creatorID uint, req QrCodeRequest) (*model.QrCode, error) {
	if req.Type != model.QrStatic && req.Type != model.QrDynamic {
		return nil, util.ErrInvalidQrType
	}

	qr := &model.QrCode{
		Type:                req.Type,
		Label:               strings.TrimSpace(req.Label),
		LocationDescription: strings.TrimSpace(req.LocationDescription),
		CreatorID:           creatorID,
		IsActive:            true,
	}

	switch req.Type {
	case model.QrStatic:
		if req.LockedQuestionID == nil || *req.LockedQuestionID == "" {
			return nil, util.ErrQuestionNotFound
		}
		if _, err := s.QuestionRepo.FindByID(*req.LockedQuestionID); err != nil {
			return nil, util.ErrQuestionNotFound
		}
		qr.LockedQuestionID = req.LockedQuestionID
	case model.QrDynamic:
		if req.CurrentQuizID != nil && *req.CurrentQuizID != "" {
			if _, err := s.QuizRepo.FindByID(*req.CurrentQuizID); err != nil {
				return nil, util.ErrQuizNotFound
			}
			qr.CurrentQuizID = req.CurrentQuizID
		}
	}

	if err := s.QrRepo.Create(qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (s *QrCodeService) ListQrCodes(caller *util.Claims, page, limit int) ([]model.QrCode, int64, error) {
	creatorID := caller.UserID
	if caller.Role == model.Admin {
		creatorID = 0
	}
	return s.QrRepo.List(creatorID, page, limit)
}

// QrCodeDetail bundles a code with its assignment history and how many
// attempts it has received.
type QrCodeDetail struct {
	QrCode    *model.QrCode `json:"qr_code"`
	ScanCount int64         `json:"scan_count"`
}

func (s *QrCodeService) GetQrCode(caller *util.Claims, id string) (*QrCodeDetail, error) {
	qr, err := s.QrRepo.FindWithAssignments(id)
	if err != nil {
		return nil, util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}
	count, err := s.AttemptRepo.CountByQrCode(id)
	if err != nil {
		return nil, err
	}
	return &QrCodeDetail{QrCode: qr, ScanCount: count}, nil
}

type QrCodeUpdateRequest struct {
	Label               string `json:"label"`
	LocationDescription string `json:"locationDescription"`
	IsActive            *bool  `json:"isActive"`
}

func (s *QrCodeService) UpdateQrCode(caller *util.Claims, id string, req QrCodeUpdateRequest) (*model.QrCode, error) {
	qr, err := s.QrRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}

	if req.Label != "" {
		qr.Label = strings.TrimSpace(req.Label)
	}
	qr.LocationDescription = strings.TrimSpace(req.LocationDescription)
	if req.IsActive != nil {
		qr.IsActive = *req.IsActive
	}
	if err := s.QrRepo.Update(qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (s *QrCodeService) DeleteQrCode(caller *util.Claims, id string) error {
	qr, err := s.QrRepo.FindByID(id)
	if err != nil {
		return util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return util.ErrPermissionDenied
	}
	return s.QrRepo.Delete(id)
}

type AssignRequest struct {
	QuizID string `json:"quizId" binding:"required"`
	Notes  string `json:"notes"`
}

// Assign points a dynamic code at a quiz immediately and logs the change as
// an open-ended assignment starting now.
func (s *QrCodeService) Assign(caller *util.Claims, id string, req AssignRequest) error {
	qr, err := s.QrRepo.FindByID(id)
	if err != nil {
		return util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return util.ErrPermissionDenied
	}
	if qr.Type == model.QrStatic {
		return util.ErrStaticQrImmutable
	}
	if _, err := s.QuizRepo.FindByID(req.QuizID); err != nil {
		return util.ErrQuizNotFound
	}

	quizID := req.QuizID
	if err := s.QrRepo.UpdateCurrentQuiz(id, &quizID); err != nil {
		return err
	}

	return s.QrRepo.CreateAssignment(&model.QrCodeAssignment{
		QrCodeID:   id,
		QuizID:     req.QuizID,
		AssignedBy: caller.UserID,
		ActiveFrom: time.Now(),
		Notes:      req.Notes,
	})
}

type ScheduleRequest struct {
	QuizID      string     `json:"quizId" binding:"required"`
	ActiveFrom  time.Time  `json:"activeFrom" binding:"required"`
	ActiveUntil *time.Time `json:"activeUntil"`
	Notes       string     `json:"notes"`
}

// Schedule records a future assignment window. Activation happens lazily on
// the first scan inside the window; nothing runs in the background.
func (s *QrCodeService) Schedule(caller *util.Claims, id string, req ScheduleRequest) (*model.QrCodeAssignment, error) {
	qr, err := s.QrRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}
	if qr.Type == model.QrStatic {
		return nil, util.ErrStaticQrImmutable
	}
	if _, err := s.QuizRepo.FindByID(req.QuizID); err != nil {
		return nil, util.ErrQuizNotFound
	}

	assignment := &model.QrCodeAssignment{
		QrCodeID:    id,
		QuizID:      req.QuizID,
		AssignedBy:  caller.UserID,
		ActiveFrom:  req.ActiveFrom,
		ActiveUntil: req.ActiveUntil,
		Notes:       req.Notes,
	}
	if err := s.QrRepo.CreateAssignment(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}
