package services

import (
	"testing"
	"time"

	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

var sandingCols = []string{
	"id", "bruker", "bestillings_dato", "onske_dato", "kommentar",
	"status", "utfort_dato", "utfort_av", "fakturert", "created_at", "updated_at",
}

func TestSandingServiceCreateRejectsPastWish(t *testing.T) {
	svc := SandingService{}
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())

	_, err := svc.Create("101", "2025-01-14", "", now)
	if err == nil || !domain.IsValidation(err) {
		t.Fatalf("expected validation error for past wish date, got %v", err)
	}
	_, err = svc.Create("101", "15.01.2025", "", now)
	if err == nil || !domain.IsValidation(err) {
		t.Fatalf("expected validation error for malformed wish date, got %v", err)
	}
}

func TestSandingServiceComplete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM stroing_bestillinger WHERE id").
		WillReturnRows(sqlmock.NewRows(sandingCols).
			AddRow(3, "101", "2025-01-14 09:00:00", "2025-01-15", "", models.SandingPending, "", "", 0, "", ""))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COALESCE\\(status, 'Pending'\\) FROM stroing_bestillinger").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.SandingPending))
	mock.ExpectExec("UPDATE stroing_bestillinger").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO stroing_status_log").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	svc := SandingService{SandingRepo: repositories.SandingRepo{DB: db}, DB: db}
	now := time.Date(2025, 1, 15, 14, 30, 0, 0, utils.ReferenceLocation())
	if err := svc.Complete(3, "brøytefører", now); err != nil {
		t.Fatalf("complete error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSandingServiceCompleteTwiceConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM stroing_bestillinger WHERE id").
		WillReturnRows(sqlmock.NewRows(sandingCols).
			AddRow(3, "101", "2025-01-14 09:00:00", "2025-01-15", "", models.SandingCompleted, "2025-01-15 12:00:00", "x", 0, "", ""))

	svc := SandingService{SandingRepo: repositories.SandingRepo{DB: db}, DB: db}
	err = svc.Complete(3, "y", time.Date(2025, 1, 15, 14, 30, 0, 0, utils.ReferenceLocation()))
	if err == nil || !domain.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestSandingServiceUpcomingWindow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM stroing_bestillinger ORDER BY onske_dato").
		WillReturnRows(sqlmock.NewRows(sandingCols).
			AddRow(1, "101", "", "2025-01-14", "", models.SandingPending, "", "", 0, "", "").
			AddRow(2, "102", "", "2025-01-15", "", models.SandingPending, "", "", 0, "", "").
			AddRow(3, "103", "", "2025-01-20", "", models.SandingPending, "", "", 0, "", "").
			AddRow(4, "104", "", "2025-01-30", "", models.SandingPending, "", "", 0, "", "").
			AddRow(5, "105", "", "garbage", "", models.SandingPending, "", "", 0, "", ""))

	svc := SandingService{SandingRepo: repositories.SandingRepo{DB: db}, DB: db}
	now := time.Date(2025, 1, 15, 8, 0, 0, 0, utils.ReferenceLocation())
	got := svc.UpcomingWindow(now, 7)

	wantIDs := []int64{2, 3}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d orders, got %d: %+v", len(wantIDs), len(got), got)
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("position %d: expected order %d, got %d", i, id, got[i].ID)
		}
	}
}
