package service_test

import (
	"errors"
	"testing"
	"time"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/service"
	"qr_quiz_backend/internal/util"
	"qr_quiz_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeQrCodeStore struct {
	codes       map[string]*model.QrCode
	assignments map[string]*model.QrCodeAssignment
	updates     []string // quiz IDs written via UpdateCurrentQuiz
}

func (f *fakeQrCodeStore) FindByID(id string) (*model.QrCode, error) {
	qr, ok := f.codes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return qr, nil
}

func (f *fakeQrCodeStore) FindEligibleAssignment(qrCodeID string, now time.Time) (*model.QrCodeAssignment, error) {
	a, ok := f.assignments[qrCodeID]
	if !ok {
		return nil, nil
	}
	if a.ActiveFrom.After(now) {
		return nil, nil
	}
	if a.ActiveUntil != nil && a.ActiveUntil.Before(now) {
		return nil, nil
	}
	return a, nil
}

func (f *fakeQrCodeStore) UpdateCurrentQuiz(id string, quizID *string) error {
	qr, ok := f.codes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	qr.CurrentQuizID = quizID
	if quizID != nil {
		f.updates = append(f.updates, *quizID)
	}
	return nil
}

type fakeQuizStore struct {
	quizzes map[string]*model.Quiz
}

func (f *fakeQuizStore) FindWithQuestions(id string) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

type fakeQuestionStore struct {
	questions map[string]*model.Question
}

func (f *fakeQuestionStore) FindWithOptions(id string) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return q, nil
}

type fakeAttemptStore struct {
	attempts []model.QuizAttempt
	failWith error
}

func (f *fakeAttemptStore) Create(a *model.QuizAttempt) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.attempts = append(f.attempts, *a)
	return nil
}

type fakeParticipantStore struct {
	points map[string]int
}

func (f *fakeParticipantStore) IncrementPoints(id string, delta int) error {
	if f.points == nil {
		f.points = map[string]int{}
	}
	f.points[id] += delta
	return nil
}

type fixture struct {
	qrCodes      *fakeQrCodeStore
	quizzes      *fakeQuizStore
	questions    *fakeQuestionStore
	attempts     *fakeAttemptStore
	participants *fakeParticipantStore
	svc          *service.ScanService
}

func newFixture() *fixture {
	f := &fixture{
		qrCodes:      &fakeQrCodeStore{codes: map[string]*model.QrCode{}, assignments: map[string]*model.QrCodeAssignment{}},
		quizzes:      &fakeQuizStore{quizzes: map[string]*model.Quiz{}},
		questions:    &fakeQuestionStore{questions: map[string]*model.Question{}},
		attempts:     &fakeAttemptStore{},
		participants: &fakeParticipantStore{},
	}
	f.svc = service.NewScanService(f.qrCodes, f.quizzes, f.questions, f.attempts, f.participants)
	return f
}

func (f *fixture) addQuestion(id string, points int, correctOptionID string) *model.Question {
	q := &model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Type:     model.MultipleChoice,
		Points:   points,
		Options: []model.QuestionOption{
			{UUIDBase: model.UUIDBase{ID: correctOptionID}, OptionText: "right", IsCorrect: true},
			{UUIDBase: model.UUIDBase{ID: correctOptionID + "-wrong"}, OptionText: "wrong"},
		},
	}
	f.questions.questions[id] = q
	return q
}

func (f *fixture) addQuiz(id string, questions ...model.Question) *model.Quiz {
	quiz := &model.Quiz{UUIDBase: model.UUIDBase{ID: id}, Title: "t", Questions: questions}
	f.quizzes.quizzes[id] = quiz
	return quiz
}

func TestResolveUnknownCode(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.Resolve("missing", time.Now()); !errors.Is(err, util.ErrQrCodeNotFound) {
		t.Fatalf("err = %v, want ErrQrCodeNotFound", err)
	}
}

func TestResolveInactiveCode(t *testing.T) {
	f := newFixture()
	f.qrCodes.codes["qr"] = &model.QrCode{UUIDBase: model.UUIDBase{ID: "qr"}, Type: model.QrDynamic, IsActive: false}

	content, err := f.svc.Resolve("qr", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if content.Status != service.ScanInactive {
		t.Fatalf("Status = %s, want inactive", content.Status)
	}
}

func TestResolveStaticCode(t *testing.T) {
	f := newFixture()
	f.addQuestion("question-1", 10, "opt-a")
	locked := "question-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:         model.UUIDBase{ID: "qr"},
		Type:             model.QrStatic,
		LockedQuestionID: &locked,
		IsActive:         true,
	}

	content, err := f.svc.Resolve("qr", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if content.Status != service.ScanStatic || content.Question == nil || content.Question.ID != "question-1" {
		t.Fatalf("unexpected content: %+v", content)
	}
}

func TestResolveStaticCodeDanglingQuestion(t *testing.T) {
	f := newFixture()
	locked := "gone"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:         model.UUIDBase{ID: "qr"},
		Type:             model.QrStatic,
		LockedQuestionID: &locked,
		IsActive:         true,
	}

	if _, err := f.svc.Resolve("qr", time.Now()); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Fatalf("err = %v, want ErrQuestionNotFound", err)
	}
}

func TestResolveDynamicCodeWithoutQuiz(t *testing.T) {
	f := newFixture()
	f.qrCodes.codes["qr"] = &model.QrCode{UUIDBase: model.UUIDBase{ID: "qr"}, Type: model.QrDynamic, IsActive: true}

	content, err := f.svc.Resolve("qr", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if content.Status != service.ScanEmpty {
		t.Fatalf("Status = %s, want empty", content.Status)
	}
}

func TestResolveDynamicCodeCurrentQuiz(t *testing.T) {
	f := newFixture()
	q := f.addQuestion("question-1", 10, "opt-a")
	f.addQuiz("quiz-1", *q)
	current := "quiz-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:      model.UUIDBase{ID: "qr"},
		Type:          model.QrDynamic,
		CurrentQuizID: &current,
		IsActive:      true,
	}

	content, err := f.svc.Resolve("qr", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if content.Status != service.ScanDynamic || content.Quiz == nil || content.Quiz.ID != "quiz-1" {
		t.Fatalf("unexpected content: %+v", content)
	}
}

func TestResolveActivatesScheduledAssignment(t *testing.T) {
	f := newFixture()
	q := f.addQuestion("question-1", 10, "opt-a")
	f.addQuiz("quiz-old", *q)
	f.addQuiz("quiz-new", *q)

	old := "quiz-old"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:      model.UUIDBase{ID: "qr"},
		Type:          model.QrDynamic,
		CurrentQuizID: &old,
		IsActive:      true,
	}

	now := time.Now()
	f.qrCodes.assignments["qr"] = &model.QrCodeAssignment{
		QrCodeID:   "qr",
		QuizID:     "quiz-new",
		ActiveFrom: now.Add(-time.Hour),
	}

	content, err := f.svc.Resolve("qr", now)
	if err != nil {
		t.Fatal(err)
	}
	if content.Status != service.ScanDynamic || content.Quiz.ID != "quiz-new" {
		t.Fatalf("expected quiz-new, got %+v", content)
	}
	if len(f.qrCodes.updates) != 1 || f.qrCodes.updates[0] != "quiz-new" {
		t.Fatalf("current quiz writes = %v, want [quiz-new]", f.qrCodes.updates)
	}

	// A second resolve sees the pointer already current and writes nothing.
	if _, err := f.svc.Resolve("qr", now); err != nil {
		t.Fatal(err)
	}
	if len(f.qrCodes.updates) != 1 {
		t.Fatalf("second resolve should not rewrite, got %v", f.qrCodes.updates)
	}
}

func TestResolveIgnoresFutureAssignment(t *testing.T) {
	f := newFixture()
	q := f.addQuestion("question-1", 10, "opt-a")
	f.addQuiz("quiz-old", *q)
	f.addQuiz("quiz-new", *q)

	old := "quiz-old"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:      model.UUIDBase{ID: "qr"},
		Type:          model.QrDynamic,
		CurrentQuizID: &old,
		IsActive:      true,
	}

	now := time.Now()
	f.qrCodes.assignments["qr"] = &model.QrCodeAssignment{
		QrCodeID:   "qr",
		QuizID:     "quiz-new",
		ActiveFrom: now.Add(time.Hour),
	}

	content, err := f.svc.Resolve("qr", now)
	if err != nil {
		t.Fatal(err)
	}
	if content.Quiz.ID != "quiz-old" {
		t.Fatalf("future assignment must not activate, got %s", content.Quiz.ID)
	}
	if len(f.qrCodes.updates) != 0 {
		t.Fatalf("no writes expected, got %v", f.qrCodes.updates)
	}
}

func TestSubmitRequiresExactlyOneParticipant(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Submit("qr", service.SubmitRequest{Answers: map[string]interface{}{}}, time.Now())
	if !errors.Is(err, util.ErrParticipantMissing) {
		t.Fatalf("no identity: err = %v, want ErrParticipantMissing", err)
	}

	_, err = f.svc.Submit("qr", service.SubmitRequest{
		Answers:     map[string]interface{}{},
		AnonymousID: "anon-1",
		UserID:      7,
	}, time.Now())
	if !errors.Is(err, util.ErrParticipantMissing) {
		t.Fatalf("both identities: err = %v, want ErrParticipantMissing", err)
	}
}

func TestSubmitInactiveCode(t *testing.T) {
	f := newFixture()
	f.qrCodes.codes["qr"] = &model.QrCode{UUIDBase: model.UUIDBase{ID: "qr"}, Type: model.QrDynamic, IsActive: false}

	_, err := f.svc.Submit("qr", service.SubmitRequest{
		Answers:     map[string]interface{}{},
		AnonymousID: "anon-1",
	}, time.Now())
	if !errors.Is(err, util.ErrQrCodeInactive) {
		t.Fatalf("err = %v, want ErrQrCodeInactive", err)
	}
}

func TestSubmitStaticRecordsAttemptAndPoints(t *testing.T) {
	f := newFixture()
	f.addQuestion("question-1", 10, "opt-a")
	locked := "question-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:         model.UUIDBase{ID: "qr"},
		Type:             model.QrStatic,
		LockedQuestionID: &locked,
		IsActive:         true,
	}

	result, err := f.svc.Submit("qr", service.SubmitRequest{
		Answers:     map[string]interface{}{"question-1": "opt-a"},
		AnonymousID: "anon-1",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if result.Score != 10 || result.MaxScore != 10 || result.Percentage != 100 {
		t.Fatalf("result = %+v", result)
	}
	if len(f.attempts.attempts) != 1 {
		t.Fatalf("got %d attempts, want 1", len(f.attempts.attempts))
	}
	attempt := f.attempts.attempts[0]
	if attempt.QuestionID == nil || *attempt.QuestionID != "question-1" || attempt.QuizID != nil {
		t.Fatalf("attempt references wrong content: %+v", attempt)
	}
	if attempt.AnonymousID == nil || *attempt.AnonymousID != "anon-1" || attempt.UserID != nil {
		t.Fatalf("attempt participant wrong: %+v", attempt)
	}
	if f.participants.points["anon-1"] != 10 {
		t.Fatalf("points = %d, want 10", f.participants.points["anon-1"])
	}
}

func TestSubmitQuizForRegisteredUser(t *testing.T) {
	f := newFixture()
	q1 := f.addQuestion("question-1", 10, "opt-a")
	q2 := f.addQuestion("question-2", 5, "opt-b")
	f.addQuiz("quiz-1", *q1, *q2)
	current := "quiz-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:      model.UUIDBase{ID: "qr"},
		Type:          model.QrDynamic,
		CurrentQuizID: &current,
		IsActive:      true,
	}

	result, err := f.svc.Submit("qr", service.SubmitRequest{
		Answers: map[string]interface{}{
			"question-1": "opt-a",
			"question-2": "opt-b-wrong",
		},
		UserID: 42,
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	if result.Score != 10 || result.MaxScore != 15 || result.Percentage != 67 {
		t.Fatalf("result = %+v", result)
	}
	if len(result.QuestionResults) != 2 {
		t.Fatalf("got %d question results, want 2", len(result.QuestionResults))
	}

	attempt := f.attempts.attempts[0]
	if attempt.UserID == nil || *attempt.UserID != 42 || attempt.AnonymousID != nil {
		t.Fatalf("attempt participant wrong: %+v", attempt)
	}
	if attempt.QuizID == nil || *attempt.QuizID != "quiz-1" {
		t.Fatalf("attempt quiz wrong: %+v", attempt)
	}
	// Registered totals come from summing attempts, never the counter.
	if len(f.participants.points) != 0 {
		t.Fatalf("registered submit must not bump participant counters: %v", f.participants.points)
	}
}

func TestSubmitAttemptWriteFailure(t *testing.T) {
	f := newFixture()
	f.addQuestion("question-1", 10, "opt-a")
	locked := "question-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:         model.UUIDBase{ID: "qr"},
		Type:             model.QrStatic,
		LockedQuestionID: &locked,
		IsActive:         true,
	}
	f.attempts.failWith = errors.New("insert failed")

	if _, err := f.svc.Submit("qr", service.SubmitRequest{
		Answers:     map[string]interface{}{"question-1": "opt-a"},
		AnonymousID: "anon-1",
	}, time.Now()); err == nil {
		t.Fatal("expected error when the attempt cannot be recorded")
	}
	if len(f.participants.points) != 0 {
		t.Fatalf("points must not move when the attempt write fails: %v", f.participants.points)
	}
}

func TestSubmitUnencodableAnswersStillRecorded(t *testing.T) {
	f := newFixture()
	f.addQuestion("question-1", 10, "opt-a")
	locked := "question-1"
	f.qrCodes.codes["qr"] = &model.QrCode{
		UUIDBase:         model.UUIDBase{ID: "qr"},
		Type:             model.QrStatic,
		LockedQuestionID: &locked,
		IsActive:         true,
	}

	// A func value cannot be marshalled to JSON; the attempt is still
	// written, only its answers payload stays empty.
	result, err := f.svc.Submit("qr", service.SubmitRequest{
		Answers:     map[string]interface{}{"question-1": func() {}},
		AnonymousID: "anon-1",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 0 || result.MaxScore != 10 {
		t.Fatalf("result = %+v", result)
	}
	if len(f.attempts.attempts) != 1 {
		t.Fatalf("got %d attempts, want 1", len(f.attempts.attempts))
	}
	if len(f.attempts.attempts[0].Answers) != 0 {
		t.Fatalf("answers payload should be empty, got %s", f.attempts.attempts[0].Answers)
	}
}
