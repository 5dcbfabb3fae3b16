package grading_test

import (
	"testing"

	"qr_quiz_backend/internal/grading"
	"qr_quiz_backend/internal/model"
)

func quizQuestion(id string, qType model.QuestionType, points, order int, opts ...model.QuestionOption) model.Question {
	return model.Question{
		UUIDBase:   model.UUIDBase{ID: id},
		Type:       qType,
		Points:     points,
		OrderIndex: order,
		Options:    opts,
	}
}

func TestScoreQuizSumsAndPercentage(t *testing.T) {
	questions := []model.Question{
		quizQuestion("q1", model.MultipleChoice, 10, 0,
			opt("a", "Paris", true),
			opt("b", "Rome", false),
		),
		quizQuestion("q2", model.ShortText, 5, 1,
			opt("c", "42", true),
		),
	}

	summary := grading.ScoreQuiz(questions, map[string]grading.Answer{
		"q1": "a",
		"q2": "wrong",
	})

	if summary.TotalScore != 10 || summary.MaxScore != 15 {
		t.Fatalf("score = %d/%d, want 10/15", summary.TotalScore, summary.MaxScore)
	}
	if summary.Percentage != 67 {
		t.Fatalf("Percentage = %d, want 67", summary.Percentage)
	}
	if len(summary.Questions) != 2 {
		t.Fatalf("got %d question results, want 2", len(summary.Questions))
	}

	var earned, max int
	for _, qr := range summary.Questions {
		earned += qr.PointsEarned
		max += qr.PointsMax
	}
	if earned != summary.TotalScore || max != summary.MaxScore {
		t.Fatalf("per-question sums %d/%d disagree with summary %d/%d",
			earned, max, summary.TotalScore, summary.MaxScore)
	}
}

func TestScoreQuizFollowsQuestionOrder(t *testing.T) {
	questions := []model.Question{
		quizQuestion("second", model.MultipleChoice, 10, 5, opt("a", "x", true)),
		quizQuestion("first", model.MultipleChoice, 10, 1, opt("b", "y", true)),
	}

	summary := grading.ScoreQuiz(questions, map[string]grading.Answer{})
	if summary.Questions[0].QuestionID != "first" || summary.Questions[1].QuestionID != "second" {
		t.Fatalf("results out of order: %s, %s",
			summary.Questions[0].QuestionID, summary.Questions[1].QuestionID)
	}
}

func TestScoreQuizMissingAnswerIsSkipped(t *testing.T) {
	questions := []model.Question{
		quizQuestion("q1", model.MultipleChoice, 10, 0, opt("a", "x", true)),
	}

	summary := grading.ScoreQuiz(questions, map[string]grading.Answer{})
	if summary.TotalScore != 0 || summary.MaxScore != 10 {
		t.Fatalf("score = %d/%d, want 0/10", summary.TotalScore, summary.MaxScore)
	}
	if summary.Questions[0].Correct {
		t.Fatal("skipped question must be incorrect")
	}
}

func TestScoreQuizEmptyQuiz(t *testing.T) {
	summary := grading.ScoreQuiz(nil, map[string]grading.Answer{"q1": "a"})
	if summary.TotalScore != 0 || summary.MaxScore != 0 || summary.Percentage != 0 {
		t.Fatalf("empty quiz should score 0/0 at 0%%, got %+v", summary)
	}
}

func TestScoreQuizPercentageRounds(t *testing.T) {
	questions := []model.Question{
		quizQuestion("q1", model.MultipleChoice, 1, 0, opt("a", "x", true)),
		quizQuestion("q2", model.MultipleChoice, 1, 1, opt("b", "y", true)),
		quizQuestion("q3", model.MultipleChoice, 1, 2, opt("c", "z", true)),
	}

	summary := grading.ScoreQuiz(questions, map[string]grading.Answer{"q1": "a"})
	// 1/3 rounds to 33, 2/3 rounds to 67.
	if summary.Percentage != 33 {
		t.Fatalf("Percentage = %d, want 33", summary.Percentage)
	}

	summary = grading.ScoreQuiz(questions, map[string]grading.Answer{"q1": "a", "q2": "b"})
	if summary.Percentage != 67 {
		t.Fatalf("Percentage = %d, want 67", summary.Percentage)
	}
}
