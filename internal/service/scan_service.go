package service

import (
	"encoding/json"
	"errors"
	"time"

	"qr_quiz_backend/internal/grading"
	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/util"
	"qr_quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stores the scan flow needs. The gorm repositories satisfy these; tests
// plug in fakes.
type QrCodeStore interface {
	FindByID(id string) (*model.QrCode, error)
	FindEligibleAssignment(qrCodeID string, now time.Time) (*model.QrCodeAssignment, error)
	UpdateCurrentQuiz(id string, quizID *string) error
}

type QuizStore interface {
	FindWithQuestions(id string) (*model.Quiz, error)
}

type QuestionStore interface {
	FindWithOptions(id string) (*model.Question, error)
}

type AttemptStore interface {
	Create(a *model.QuizAttempt) error
}

type ParticipantStore interface {
	IncrementPoints(id string, delta int) error
}

type ScanService struct {
	QrCodes      QrCodeStore
	Quizzes      QuizStore
	Questions    QuestionStore
	Attempts     AttemptStore
	Participants ParticipantStore
}

func NewScanService(qrCodes QrCodeStore, quizzes QuizStore, questions QuestionStore, attempts AttemptStore, participants ParticipantStore) *ScanService {
	return &ScanService{
		QrCodes:      qrCodes,
		Quizzes:      quizzes,
		Questions:    questions,
		Attempts:     attempts,
		Participants: participants,
	}
}

type ScanStatus string

const (
	ScanInactive ScanStatus = "inactive"
	ScanEmpty    ScanStatus = "empty"
	ScanStatic   ScanStatus = "static"
	ScanDynamic  ScanStatus = "dynamic"
)

// ResolvedContent is what a scanned code currently serves: a single locked
// question (static), a full quiz (dynamic), or an inactive/empty status.
type ResolvedContent struct {
	Status   ScanStatus
	QrCodeID string
	Question *model.Question
	Quiz     *model.Quiz
}

// Resolve maps a QR code to the content behind it at the given instant.
//
// NOT a pure query: when a scheduled assignment on a dynamic code has become
// eligible, Resolve writes the code's current-quiz pointer before returning.
// Activation is lazy, evaluated on the first scan after the window opens;
// there is no background job. Concurrent resolvers racing on that write
// compute the same target, so the race is benign.
//
// Resolution fails closed: a dangling quiz or question reference surfaces as
// a not-found error, never a guess.
func (s *ScanService) Resolve(qrCodeID string, now time.Time) (*ResolvedContent, error) {
	qr, err := s.QrCodes.FindByID(qrCodeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQrCodeNotFound
		}
		return nil, err
	}

	if !qr.IsActive {
		return &ResolvedContent{Status: ScanInactive, QrCodeID: qr.ID}, nil
	}

	if qr.Type == model.QrStatic {
		if qr.LockedQuestionID == nil || *qr.LockedQuestionID == "" {
			return &ResolvedContent{Status: ScanEmpty, QrCodeID: qr.ID}, nil
		}
		question, err := s.Questions.FindWithOptions(*qr.LockedQuestionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrQuestionNotFound
			}
			return nil, err
		}
		return &ResolvedContent{Status: ScanStatic, QrCodeID: qr.ID, Question: question}, nil
	}

	// Dynamic: the eligible assignment with the latest start wins.
	assignment, err := s.QrCodes.FindEligibleAssignment(qr.ID, now)
	if err != nil {
		return nil, err
	}
	if assignment != nil && (qr.CurrentQuizID == nil || *qr.CurrentQuizID != assignment.QuizID) {
		quizID := assignment.QuizID
		if err := s.QrCodes.UpdateCurrentQuiz(qr.ID, &quizID); err != nil {
			return nil, err
		}
		logger.Log.Info("auto-activated scheduled quiz",
			zap.String("qr_code_id", qr.ID),
			zap.String("quiz_id", quizID))
		qr.CurrentQuizID = &quizID
	}

	if qr.CurrentQuizID == nil || *qr.CurrentQuizID == "" {
		return &ResolvedContent{Status: ScanEmpty, QrCodeID: qr.ID}, nil
	}

	quiz, err := s.Quizzes.FindWithQuestions(*qr.CurrentQuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return &ResolvedContent{Status: ScanDynamic, QrCodeID: qr.ID, Quiz: quiz}, nil
}

type SubmitRequest struct {
	Answers          map[string]interface{} `json:"answers" binding:"required"`
	AnonymousID      string                 `json:"anonymous_id"`
	UserID           uint                   `json:"user_id"`
	TimeTakenSeconds *int                   `json:"time_taken_seconds"`
}

type SubmitResult struct {
	Score           int                      `json:"score"`
	MaxScore        int                      `json:"max_score"`
	Percentage      int                      `json:"percentage"`
	QuestionResults []grading.QuestionResult `json:"question_results"`
}

// Submit grades a submission against whatever the code resolves to and
// records the attempt. The caller has already established the participant
// identity; no authorization happens here.
func (s *ScanService) Submit(qrCodeID string, req SubmitRequest, now time.Time) (*SubmitResult, error) {
	// Exactly one participant reference.
	if (req.AnonymousID == "") == (req.UserID == 0) {
		return nil, util.ErrParticipantMissing
	}

	content, err := s.Resolve(qrCodeID, now)
	if err != nil {
		return nil, err
	}
	switch content.Status {
	case ScanInactive:
		return nil, util.ErrQrCodeInactive
	case ScanEmpty:
		return nil, util.ErrQuizNotFound
	}

	answers := make(map[string]grading.Answer, len(req.Answers))
	for qid, a := range req.Answers {
		answers[qid] = a
	}

	var summary grading.Summary
	attempt := model.QuizAttempt{
		QrCodeID:         qrCodeID,
		TimeTakenSeconds: req.TimeTakenSeconds,
		SubmittedAt:      now,
	}

	if content.Status == ScanStatic {
		summary = grading.ScoreQuiz([]model.Question{*content.Question}, answers)
		attempt.QuestionID = &content.Question.ID
	} else {
		summary = grading.ScoreQuiz(content.Quiz.Questions, answers)
		attempt.QuizID = &content.Quiz.ID
	}

	attempt.Score = summary.TotalScore
	attempt.MaxScore = summary.MaxScore

	if req.AnonymousID != "" {
		attempt.AnonymousID = &req.AnonymousID
	} else {
		userID := req.UserID
		attempt.UserID = &userID
	}

	if raw, err := json.Marshal(req.Answers); err == nil {
		attempt.Answers = datatypes.JSON(raw)
	} else {
		logger.Log.Warn("failed to encode submitted answers",
			zap.String("qr_code_id", qrCodeID),
			zap.Error(err))
	}

	if err := s.Attempts.Create(&attempt); err != nil {
		return nil, err
	}

	// Anonymous running totals live on the participant row and are bumped
	// with an atomic add. Registered users' totals are derived from their
	// attempts instead.
	if req.AnonymousID != "" {
		if err := s.Participants.IncrementPoints(req.AnonymousID, summary.TotalScore); err != nil {
			logger.Log.Error("failed to increment participant points",
				zap.String("anonymous_id", req.AnonymousID),
				zap.Error(err))
		}
	}

	return &SubmitResult{
		Score:           summary.TotalScore,
		MaxScore:        summary.MaxScore,
		Percentage:      summary.Percentage,
		QuestionResults: summary.Questions,
	}, nil
}
