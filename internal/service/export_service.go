package service

import (
	"encoding/base64"
	"fmt"

	"qr_quiz_backend/internal/config"
	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
	"qr_quiz_backend/internal/util"

	qrcode "github.com/skip2/go-qrcode"
)

// ExportService renders printable QR sheets. One code per question for a
// quiz sheet, or a single code for an existing dynamic/static code.
type ExportService struct {
	QrRepo   *repository.QrCodeRepository
	QuizRepo *repository.QuizRepository
	Config   *config.Config
}

func NewExportService(qrRepo *repository.QrCodeRepository, quizRepo *repository.QuizRepository, cfg *config.Config) *ExportService {
	return &ExportService{QrRepo: qrRepo, QuizRepo: quizRepo, Config: cfg}
}

type SheetItem struct {
	QrCodeID     string `json:"qr_code_id"`
	QuestionID   string `json:"question_id"`
	QuestionText string `json:"question_text"`
	OrderIndex   int    `json:"order_index"`
	ScanURL      string `json:"scan_url"`
	ImageDataURL string `json:"image_data_url"`
}

type QuizSheet struct {
	QuizID    string      `json:"quiz_id"`
	QuizTitle string      `json:"quiz_title"`
	Items     []SheetItem `json:"items"`
}

// QuizSheet builds one static code per question, reusing codes from earlier
// exports so reprinting a sheet never invalidates posters already hung up.
func (s *ExportService) QuizSheet(caller *util.Claims, quizID string) (*QuizSheet, error) {
	quiz, err := s.QuizRepo.FindWithQuestions(quizID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if caller.Role != model.Admin && quiz.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}

	sheet := &QuizSheet{
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		Items:     make([]SheetItem, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		qr, err := s.findOrCreateStatic(caller.UserID, quiz, &q)
		if err != nil {
			return nil, err
		}
		scanURL := s.scanURL(qr.ID)
		image, err := encodeQrPNG(scanURL)
		if err != nil {
			return nil, err
		}
		sheet.Items = append(sheet.Items, SheetItem{
			QrCodeID:     qr.ID,
			QuestionID:   q.ID,
			QuestionText: q.QuestionText,
			OrderIndex:   q.OrderIndex,
			ScanURL:      scanURL,
			ImageDataURL: image,
		})
	}
	return sheet, nil
}

type CodeImage struct {
	QrCodeID     string `json:"qr_code_id"`
	Label        string `json:"label"`
	ScanURL      string `json:"scan_url"`
	ImageDataURL string `json:"image_data_url"`
}

func (s *ExportService) CodeImage(caller *util.Claims, qrCodeID string) (*CodeImage, error) {
	qr, err := s.QrRepo.FindByID(qrCodeID)
	if err != nil {
		return nil, util.ErrQrCodeNotFound
	}
	if caller.Role != model.Admin && qr.CreatorID != caller.UserID {
		return nil, util.ErrPermissionDenied
	}

	scanURL := s.scanURL(qr.ID)
	image, err := encodeQrPNG(scanURL)
	if err != nil {
		return nil, err
	}
	return &CodeImage{
		QrCodeID:     qr.ID,
		Label:        qr.Label,
		ScanURL:      scanURL,
		ImageDataURL: image,
	}, nil
}

func (s *ExportService) findOrCreateStatic(creatorID uint, quiz *model.Quiz, q *model.Question) (*model.QrCode, error) {
	qr, err := s.QrRepo.FindStaticByQuestion(q.ID, creatorID)
	if err != nil {
		return nil, err
	}
	if qr != nil {
		return qr, nil
	}

	questionID := q.ID
	qr = &model.QrCode{
		Type:             model.QrStatic,
		Label:            fmt.Sprintf("%s #%d", quiz.Title, q.OrderIndex+1),
		CreatorID:        creatorID,
		LockedQuestionID: &questionID,
		IsActive:         true,
	}
	if err := s.QrRepo.Create(qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (s *ExportService) scanURL(qrCodeID string) string {
	return fmt.Sprintf("%s/scan/%s", s.Config.Scan.BaseURL, qrCodeID)
}

func encodeQrPNG(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 512)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
