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

func TestFeedbackServiceCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs("Føreforhold", "2025-01-15 10:00:00", "Glatt ved bommen", "101",
			models.FeedbackNew, "2025-01-15 10:00:00", 0, 0, 0, nil, nil).
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := FeedbackService{FeedbackRepo: repositories.FeedbackRepo{DB: db}, DB: db}
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
	id, err := svc.Create("Føreforhold", "Glatt ved bommen", "101", false, now)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeedbackServiceCreateRequiresTypeAndComment(t *testing.T) {
	svc := FeedbackService{}
	now := utils.Now()

	if _, err := svc.Create("", "something", "101", false, now); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing type, got %v", err)
	}
	if _, err := svc.Create("Annet", "  ", "101", false, now); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty comment, got %v", err)
	}
}

func TestFeedbackServiceUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE feedback").
		WillReturnResult(sqlmock.NewResult(0, 1))

	svc := FeedbackService{FeedbackRepo: repositories.FeedbackRepo{DB: db}, DB: db}
	now := time.Date(2025, 1, 16, 9, 0, 0, 0, utils.ReferenceLocation())
	if err := svc.UpdateStatus(5, models.FeedbackInProgress, "admin", now); err != nil {
		t.Fatalf("update status error: %v", err)
	}

	if err := svc.UpdateStatus(5, "Ferdig", "admin", now); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFeedbackServiceStatistics(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE\\(type, ''\\), COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"type", "n"}).
			AddRow("Føreforhold", 3).
			AddRow("Annet", 1))
	mock.ExpectQuery("SELECT COALESCE\\(status, ''\\), COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"status", "n"}).
			AddRow(models.FeedbackNew, 2).
			AddRow(models.FeedbackResolved, 2))
	mock.ExpectQuery("SELECT date\\(datetime\\), COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"date", "n"}).
			AddRow("2025-01-14", 1).
			AddRow("2025-01-15", 3))

	svc := FeedbackService{FeedbackRepo: repositories.FeedbackRepo{DB: db}, DB: db}
	stats, err := svc.Statistics("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("statistics error: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("expected total 4, got %d", stats.Total)
	}
	if stats.ByType["Føreforhold"] != 3 {
		t.Errorf("unexpected type counts: %+v", stats.ByType)
	}
	if len(stats.Daily) != 2 || stats.Daily[1].Count != 3 {
		t.Errorf("unexpected daily counts: %+v", stats.Daily)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlertServiceCreateAndActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO feedback").
		WithArgs(alertTypePrefix+"Snøfall", "2025-01-15 10:00:00", "Mye snø i natt, brøyting pågår", "admin",
			models.AlertActive, "2025-01-15 10:00:00", 0, 1, 1, "2025-01-20", "Alle").
		WillReturnResult(sqlmock.NewResult(9, 1))

	svc := AlertService{FeedbackRepo: repositories.FeedbackRepo{DB: db}, DB: db}
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
	id, err := svc.Create("Snøfall", "Mye snø i natt, brøyting pågår", "2025-01-20", []string{"Alle"}, true, "admin", now)
	if err != nil {
		t.Fatalf("create alert error: %v", err)
	}
	if id != 9 {
		t.Fatalf("expected id 9, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAlertServiceCreateValidation(t *testing.T) {
	svc := AlertService{}
	now := utils.Now()

	if _, err := svc.Create("", "msg", "", nil, false, "admin", now); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing type, got %v", err)
	}
	if _, err := svc.Create("Snøfall", "msg", "20.01.2025", nil, false, "admin", now); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for malformed expiry, got %v", err)
	}
}

func TestAlertServiceDeleteRefusesPlainFeedback(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{
		"id", "type", "datetime", "comment", "innsender", "status",
		"status_changed_by", "status_changed_at", "hidden", "is_alert",
		"display_on_weather", "expiry_date", "target_group",
	}
	mock.ExpectQuery("SELECT (.+) FROM feedback WHERE id").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(4, "Annet", "2025-01-15 10:00:00", "x", "101", models.FeedbackNew, "", "", 0, 0, 0, "", ""))

	svc := AlertService{FeedbackRepo: repositories.FeedbackRepo{DB: db}, DB: db}
	if err := svc.Delete(4); !domain.IsNotFound(err) {
		t.Fatalf("expected not-found for non-alert row, got %v", err)
	}
}
