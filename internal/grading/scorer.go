// Package grading scores submitted answers against a question's declared
// correct options. It is pure: no storage access, no clock, no side effects.
// Malformed input never raises an error here; it degrades to an incorrect
// answer so one bad entry cannot block a whole submission.
package grading

import (
	"sort"
	"strings"

	"qr_quiz_backend/internal/model"
)

// Answer is what a participant submitted for one question: a string (option
// ID or free text), a []string for multiple_select, or nil when skipped.
// JSON decoding hands us []interface{} for lists, so both slice shapes are
// accepted.
type Answer interface{}

// Result reports the outcome for a single question. CorrectOptionIDs (or
// CorrectText for short_text) are included for post-grading review and must
// never be sent to a participant before they submit.
type Result struct {
	Correct          bool     `json:"correct"`
	PointsEarned     int      `json:"points_earned"`
	PointsMax        int      `json:"points_max"`
	CorrectOptionIDs []string `json:"correct_options,omitempty"`
	CorrectText      string   `json:"correct_text,omitempty"`
}

// Score grades one question. Full points on a correct answer, zero
// otherwise; there is no partial credit on any type. An option ID that does
// not belong to the question is simply not in the correct set, hence wrong.
func Score(q *model.Question, answer Answer) Result {
	correctOpts := make([]model.QuestionOption, 0, len(q.Options))
	for _, o := range q.Options {
		if o.IsCorrect {
			correctOpts = append(correctOpts, o)
		}
	}
	correctIDs := make([]string, len(correctOpts))
	for i, o := range correctOpts {
		correctIDs[i] = o.ID
	}

	// Skipped or blank answers short-circuit before any type dispatch.
	if isEmpty(answer) {
		res := Result{PointsMax: q.Points}
		if q.Type == model.ShortText {
			res.CorrectText = firstText(correctOpts)
		} else {
			res.CorrectOptionIDs = correctIDs
		}
		return res
	}

	switch q.Type {
	case model.ShortText:
		return scoreShortText(q, correctOpts, answer)
	case model.MultipleSelect:
		return scoreMultipleSelect(q, correctIDs, answer)
	case model.MultipleChoice, model.TrueFalse:
		return scoreSingleChoice(q, correctIDs, answer)
	default:
		// Unknown type tag in the database: fail the answer, not the request.
		return Result{PointsMax: q.Points, CorrectOptionIDs: correctIDs}
	}
}

// scoreShortText does a trimmed, case-insensitive exact match against every
// acceptable answer string. Only the first correct text is reported back.
func scoreShortText(q *model.Question, correctOpts []model.QuestionOption, answer Answer) Result {
	submitted := normalizeText(firstString(answer))

	correct := false
	for _, o := range correctOpts {
		if normalizeText(o.OptionText) == submitted {
			correct = true
			break
		}
	}

	res := Result{
		Correct:     correct,
		PointsMax:   q.Points,
		CorrectText: firstText(correctOpts),
	}
	if correct {
		res.PointsEarned = q.Points
	}
	return res
}

// scoreMultipleSelect requires an exact set match: a subset or superset of
// the correct options earns nothing.
func scoreMultipleSelect(q *model.Question, correctIDs []string, answer Answer) Result {
	submitted := toStringSlice(answer)

	sortedSubmitted := append([]string(nil), submitted...)
	sortedCorrect := append([]string(nil), correctIDs...)
	sort.Strings(sortedSubmitted)
	sort.Strings(sortedCorrect)

	correct := len(sortedSubmitted) == len(sortedCorrect)
	if correct {
		for i := range sortedCorrect {
			if sortedSubmitted[i] != sortedCorrect[i] {
				correct = false
				break
			}
		}
	}

	res := Result{
		Correct:          correct,
		PointsMax:        q.Points,
		CorrectOptionIDs: correctIDs,
	}
	if correct {
		res.PointsEarned = q.Points
	}
	return res
}

func scoreSingleChoice(q *model.Question, correctIDs []string, answer Answer) Result {
	submitted := firstString(answer)

	correct := false
	for _, id := range correctIDs {
		if submitted == id {
			correct = true
			break
		}
	}

	res := Result{
		Correct:          correct,
		PointsMax:        q.Points,
		CorrectOptionIDs: correctIDs,
	}
	if correct {
		res.PointsEarned = q.Points
	}
	return res
}

func isEmpty(answer Answer) bool {
	switch v := answer.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case []interface{}:
		return len(v) == 0
	default:
		return false
	}
}

// firstString coerces an answer to a single string, taking the first element
// when a list was submitted.
func firstString(answer Answer) string {
	switch v := answer.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// toStringSlice coerces an answer to a list, wrapping a lone string.
func toStringSlice(answer Answer) []string {
	switch v := answer.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstText(opts []model.QuestionOption) string {
	if len(opts) > 0 {
		return opts[0].OptionText
	}
	return ""
}
