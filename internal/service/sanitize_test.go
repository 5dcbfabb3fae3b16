package service_test

import (
	"encoding/json"
	"strings"
	"testing"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/service"
)

func TestSanitizeQuestionStripsCorrectness(t *testing.T) {
	q := &model.Question{
		UUIDBase:     model.UUIDBase{ID: "q1"},
		QuestionText: "Capital of France?",
		Type:         model.MultipleChoice,
		Points:       10,
		Options: []model.QuestionOption{
			{UUIDBase: model.UUIDBase{ID: "a"}, OptionText: "Paris", IsCorrect: true, OrderIndex: 0},
			{UUIDBase: model.UUIDBase{ID: "b"}, OptionText: "Rome", OrderIndex: 1},
		},
	}

	safe := service.SanitizeQuestion(q)
	if len(safe.Options) != 2 {
		t.Fatalf("got %d options, want 2", len(safe.Options))
	}

	payload, err := json.Marshal(safe)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(payload), "correct") {
		t.Fatalf("sanitized payload leaks correctness: %s", payload)
	}
}

func TestSanitizeShortTextDropsOptions(t *testing.T) {
	q := &model.Question{
		UUIDBase:     model.UUIDBase{ID: "q1"},
		QuestionText: "Capital of France?",
		Type:         model.ShortText,
		Points:       10,
		Options: []model.QuestionOption{
			{UUIDBase: model.UUIDBase{ID: "a"}, OptionText: "Paris", IsCorrect: true},
		},
	}

	safe := service.SanitizeQuestion(q)
	if len(safe.Options) != 0 {
		t.Fatalf("short_text options are the answers and must be dropped, got %v", safe.Options)
	}

	payload, err := json.Marshal(safe)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(payload), "Paris") {
		t.Fatalf("sanitized payload leaks the answer: %s", payload)
	}
}

func TestSanitizeQuizCoversAllQuestions(t *testing.T) {
	quiz := &model.Quiz{
		UUIDBase:         model.UUIDBase{ID: "quiz-1"},
		Title:            "Geography",
		TimeLimitSeconds: 300,
		Questions: []model.Question{
			{
				UUIDBase: model.UUIDBase{ID: "q1"},
				Type:     model.MultipleChoice,
				Options: []model.QuestionOption{
					{UUIDBase: model.UUIDBase{ID: "a"}, OptionText: "Paris", IsCorrect: true},
				},
			},
			{
				UUIDBase: model.UUIDBase{ID: "q2"},
				Type:     model.ShortText,
				Options: []model.QuestionOption{
					{UUIDBase: model.UUIDBase{ID: "b"}, OptionText: "42", IsCorrect: true},
				},
			},
		},
	}

	safe := service.SanitizeQuiz(quiz)
	if safe.ID != "quiz-1" || safe.TimeLimitSeconds != 300 {
		t.Fatalf("quiz metadata lost: %+v", safe)
	}
	if len(safe.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(safe.Questions))
	}
	if len(safe.Questions[0].Options) != 1 {
		t.Fatalf("choice options should survive, got %v", safe.Questions[0].Options)
	}
	if len(safe.Questions[1].Options) != 0 {
		t.Fatalf("short_text options should be dropped, got %v", safe.Questions[1].Options)
	}
}
