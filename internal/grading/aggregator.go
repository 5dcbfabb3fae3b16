package grading

import (
	"math"
	"sort"

	"qr_quiz_backend/internal/model"
)

// QuestionResult pairs a question with its scoring outcome.
type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Result
}

// Summary is the aggregate outcome of grading a whole quiz.
type Summary struct {
	TotalScore int              `json:"score"`
	MaxScore   int              `json:"max_score"`
	Percentage int              `json:"percentage"`
	Questions  []QuestionResult `json:"question_results"`
}

// ScoreQuiz grades every question against the answer keyed by question ID
// (a missing key counts as a skipped answer) and sums the points. The
// per-question results follow the quiz's question order. A single-question
// grading event, as produced by a static code, is just the one-element case.
func ScoreQuiz(questions []model.Question, answers map[string]Answer) Summary {
	ordered := append([]model.Question(nil), questions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	s := Summary{Questions: make([]QuestionResult, 0, len(ordered))}
	for i := range ordered {
		q := &ordered[i]
		res := Score(q, answers[q.ID])
		s.TotalScore += res.PointsEarned
		s.MaxScore += res.PointsMax
		s.Questions = append(s.Questions, QuestionResult{QuestionID: q.ID, Result: res})
	}

	if s.MaxScore > 0 {
		s.Percentage = int(math.Round(float64(s.TotalScore) / float64(s.MaxScore) * 100))
	}
	return s
}
