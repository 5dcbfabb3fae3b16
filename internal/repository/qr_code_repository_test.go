package repository_test

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"qr_quiz_backend/internal/model"
	"qr_quiz_backend/internal/repository"
)

// openTestDB builds the assignment table by hand; the model's MySQL
// column defaults do not port to sqlite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec(`
CREATE TABLE qr_code_assignments (
  id varchar(36) PRIMARY KEY,
  created_at datetime,
  updated_at datetime,
  deleted_at datetime,
  qr_code_id varchar(36) NOT NULL,
  quiz_id varchar(36) NOT NULL,
  assigned_by integer,
  active_from datetime NOT NULL,
  active_until datetime,
  notes text
)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func seedAssignment(t *testing.T, repo *repository.QrCodeRepository, qrID, quizID string, from time.Time, until *time.Time) {
	t.Helper()
	a := &model.QrCodeAssignment{
		QrCodeID:    qrID,
		QuizID:      quizID,
		ActiveFrom:  from,
		ActiveUntil: until,
	}
	if err := repo.CreateAssignment(a); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}
}

func day(n int) time.Time {
	return time.Date(2026, 3, n, 12, 0, 0, 0, time.UTC)
}

func TestFindEligibleAssignmentLatestWindowWins(t *testing.T) {
	repo := repository.NewQrCodeRepository(openTestDB(t))
	day5 := day(5)
	seedAssignment(t, repo, "qr-1", "quiz-early", day(1), &day5)
	seedAssignment(t, repo, "qr-1", "quiz-late", day(3), nil)

	// Both windows cover day 4; the most recently started one wins.
	a, err := repo.FindEligibleAssignment("qr-1", day(4))
	if err != nil {
		t.Fatal(err)
	}
	if a == nil || a.QuizID != "quiz-late" {
		t.Fatalf("got %+v, want quiz-late", a)
	}

	// Before the second window opens only the first is eligible.
	a, err = repo.FindEligibleAssignment("qr-1", day(2))
	if err != nil {
		t.Fatal(err)
	}
	if a == nil || a.QuizID != "quiz-early" {
		t.Fatalf("got %+v, want quiz-early", a)
	}
}

func TestFindEligibleAssignmentWindowBounds(t *testing.T) {
	repo := repository.NewQrCodeRepository(openTestDB(t))
	day4 := day(4)
	seedAssignment(t, repo, "qr-1", "quiz-1", day(2), &day4)

	// Not started yet.
	if a, err := repo.FindEligibleAssignment("qr-1", day(1)); err != nil || a != nil {
		t.Fatalf("future window: a=%+v err=%v", a, err)
	}
	// The closing instant is still inside the window.
	if a, err := repo.FindEligibleAssignment("qr-1", day(4)); err != nil || a == nil || a.QuizID != "quiz-1" {
		t.Fatalf("closing instant: a=%+v err=%v", a, err)
	}
	// Expired.
	if a, err := repo.FindEligibleAssignment("qr-1", day(5)); err != nil || a != nil {
		t.Fatalf("expired window: a=%+v err=%v", a, err)
	}
	// Another code's schedule is invisible.
	if a, err := repo.FindEligibleAssignment("qr-2", day(3)); err != nil || a != nil {
		t.Fatalf("foreign code: a=%+v err=%v", a, err)
	}
}
