package service

import (
	"strings"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
)

// ParticipantService issues anonymous identities so visitors can play
// without an account. The returned id is the caller's only credential.
type ParticipantService struct {
	AnonRepo    *repository.AnonymousStudentRepository
	AttemptRepo *repository.AttemptRepository
}

func NewParticipantService(anonRepo *repository.AnonymousStudentRepository, attemptRepo *repository.AttemptRepository) *ParticipantService {
	return &ParticipantService{AnonRepo: anonRepo, AttemptRepo: attemptRepo}
}

type JoinRequest struct {
	DisplayName string `json:"displayName" binding:"required,min=1,max=50"`
}

func (s *ParticipantService) Join(req JoinRequest) (*model.AnonymousStudent, error) {
	student := &model.AnonymousStudent{
		DisplayName: strings.TrimSpace(req.DisplayName),
	}
	if err := s.AnonRepo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *ParticipantService) Get(id string) (*model.AnonymousStudent, error) {
	return s.AnonRepo.FindByID(id)
}

func (s *ParticipantService) History(id string, limit int) ([]model.QuizAttempt, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if _, err := s.AnonRepo.FindByID(id); err != nil {
		return nil, err
	}
	return s.AttemptRepo.ListByAnonymous(id, limit)
}
