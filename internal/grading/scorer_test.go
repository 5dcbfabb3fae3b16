package grading_test

import (
	"testing"

	"qr_quiz_backend/internal/grading"
	"qr_quiz_backend/internal/model"
)

func opt(id, text string, correct bool) model.QuestionOption {
	return model.QuestionOption{
		UUIDBase:   model.UUIDBase{ID: id},
		OptionText: text,
		IsCorrect:  correct,
	}
}

func question(qType model.QuestionType, points int, opts ...model.QuestionOption) *model.Question {
	return &model.Question{
		UUIDBase: model.UUIDBase{ID: "q1"},
		Type:     qType,
		Points:   points,
		Options:  opts,
	}
}

func TestScoreMultipleChoice(t *testing.T) {
	q := question(model.MultipleChoice, 10,
		opt("a", "Berlin", false),
		opt("b", "Paris", true),
		opt("c", "Rome", false),
	)

	tests := []struct {
		name    string
		answer  grading.Answer
		correct bool
	}{
		{"correct option", "b", true},
		{"wrong option", "a", false},
		{"unknown option id", "zzz", false},
		{"list takes first element", []interface{}{"b", "a"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := grading.Score(q, tt.answer)
			if res.Correct != tt.correct {
				t.Fatalf("Correct = %v, want %v", res.Correct, tt.correct)
			}
			wantPoints := 0
			if tt.correct {
				wantPoints = 10
			}
			if res.PointsEarned != wantPoints || res.PointsMax != 10 {
				t.Fatalf("points = %d/%d, want %d/10", res.PointsEarned, res.PointsMax, wantPoints)
			}
		})
	}
}

func TestScoreTrueFalse(t *testing.T) {
	q := question(model.TrueFalse, 5,
		opt("t", "True", true),
		opt("f", "False", false),
	)

	if res := grading.Score(q, "t"); !res.Correct || res.PointsEarned != 5 {
		t.Fatalf("true answer: got %+v", res)
	}
	if res := grading.Score(q, "f"); res.Correct || res.PointsEarned != 0 {
		t.Fatalf("false answer: got %+v", res)
	}
}

func TestScoreMultipleSelectExactSet(t *testing.T) {
	q := question(model.MultipleSelect, 20,
		opt("a", "2", true),
		opt("b", "3", true),
		opt("c", "4", false),
		opt("d", "5", true),
	)

	tests := []struct {
		name    string
		answer  grading.Answer
		correct bool
	}{
		{"exact set", []interface{}{"a", "b", "d"}, true},
		{"order does not matter", []interface{}{"d", "a", "b"}, true},
		{"subset earns nothing", []interface{}{"a", "b"}, false},
		{"superset earns nothing", []interface{}{"a", "b", "c", "d"}, false},
		{"wrong set", []interface{}{"a", "b", "c"}, false},
		{"typed string slice", []string{"a", "b", "d"}, true},
		{"bare string coerced to a one-element set", "a", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := grading.Score(q, tt.answer)
			if res.Correct != tt.correct {
				t.Fatalf("Correct = %v, want %v", res.Correct, tt.correct)
			}
			if tt.correct && res.PointsEarned != 20 {
				t.Fatalf("PointsEarned = %d, want 20", res.PointsEarned)
			}
			if !tt.correct && res.PointsEarned != 0 {
				t.Fatalf("PointsEarned = %d, want 0", res.PointsEarned)
			}
		})
	}

	// A lone value matches when exactly one option is correct.
	single := question(model.MultipleSelect, 10,
		opt("a", "2", true),
		opt("b", "3", false),
	)
	if res := grading.Score(single, "a"); !res.Correct || res.PointsEarned != 10 {
		t.Fatalf("bare string against a single correct option: got %+v", res)
	}
}

func TestScoreShortText(t *testing.T) {
	q := question(model.ShortText, 10,
		opt("a", "Paris", true),
		opt("b", "City of Light", true),
	)

	tests := []struct {
		name    string
		answer  grading.Answer
		correct bool
	}{
		{"exact match", "Paris", true},
		{"case insensitive", "PARIS", true},
		{"trims whitespace", "  paris  ", true},
		{"alternate accepted answer", "city of light", true},
		{"near miss", "Pariss", false},
		{"unrelated", "London", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := grading.Score(q, tt.answer)
			if res.Correct != tt.correct {
				t.Fatalf("Correct = %v, want %v", res.Correct, tt.correct)
			}
		})
	}
}

func TestScoreShortTextReportsFirstCorrectText(t *testing.T) {
	q := question(model.ShortText, 10,
		opt("a", "Paris", true),
		opt("b", "City of Light", true),
	)

	res := grading.Score(q, "nope")
	if res.CorrectText != "Paris" {
		t.Fatalf("CorrectText = %q, want %q", res.CorrectText, "Paris")
	}
	if len(res.CorrectOptionIDs) != 0 {
		t.Fatalf("CorrectOptionIDs should be empty for short_text, got %v", res.CorrectOptionIDs)
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	choice := question(model.MultipleChoice, 10, opt("a", "x", true))
	text := question(model.ShortText, 10, opt("a", "Paris", true))

	for name, answer := range map[string]grading.Answer{
		"nil":          nil,
		"empty string": "",
		"empty list":   []interface{}{},
		"empty slice":  []string{},
	} {
		t.Run(name, func(t *testing.T) {
			res := grading.Score(choice, answer)
			if res.Correct || res.PointsEarned != 0 || res.PointsMax != 10 {
				t.Fatalf("empty answer should be incorrect with full max, got %+v", res)
			}
			if len(res.CorrectOptionIDs) != 1 || res.CorrectOptionIDs[0] != "a" {
				t.Fatalf("CorrectOptionIDs = %v, want [a]", res.CorrectOptionIDs)
			}
		})
	}

	res := grading.Score(text, "")
	if res.Correct || res.CorrectText != "Paris" {
		t.Fatalf("empty short_text answer: got %+v", res)
	}
}

func TestScoreUnknownTypeDegrades(t *testing.T) {
	q := question(model.QuestionType("essay"), 10, opt("a", "x", true))

	res := grading.Score(q, "anything")
	if res.Correct || res.PointsEarned != 0 || res.PointsMax != 10 {
		t.Fatalf("unknown type should degrade to incorrect, got %+v", res)
	}
}
