package service

import "qr_quiz_backend/internal/model"

// Sanitized views served to participants before they submit. Option
// correctness flags are stripped on every type, and short_text questions
// lose their option rows entirely because those rows are the answers.
// Every pre-submission code path must go through these; returning a raw
// model row to an unauthenticated scanner leaks the answer key.

type SafeOption struct {
	ID         string `json:"id"`
	OptionText string `json:"option_text"`
	OrderIndex int    `json:"order_index"`
}

type SafeQuestion struct {
	ID           string             `json:"id"`
	QuestionText string             `json:"question_text"`
	Type         model.QuestionType `json:"type"`
	Points       int                `json:"points"`
	OrderIndex   int                `json:"order_index"`
	Options      []SafeOption       `json:"options"`
}

type SafeQuiz struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	TimeLimitSeconds int            `json:"time_limit_seconds"`
	Questions        []SafeQuestion `json:"questions"`
}

func SanitizeQuestion(q *model.Question) SafeQuestion {
	safe := SafeQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		Type:         q.Type,
		Points:       q.Points,
		OrderIndex:   q.OrderIndex,
		Options:      []SafeOption{},
	}
	if q.Type == model.ShortText {
		return safe
	}
	for _, o := range q.Options {
		safe.Options = append(safe.Options, SafeOption{
			ID:         o.ID,
			OptionText: o.OptionText,
			OrderIndex: o.OrderIndex,
		})
	}
	return safe
}

func SanitizeQuiz(quiz *model.Quiz) SafeQuiz {
	safe := SafeQuiz{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TimeLimitSeconds: quiz.TimeLimitSeconds,
		Questions:        make([]SafeQuestion, 0, len(quiz.Questions)),
	}
	for i := range quiz.Questions {
		safe.Questions = append(safe.Questions, SanitizeQuestion(&quiz.Questions[i]))
	}
	return safe
}
