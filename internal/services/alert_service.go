package services

import (
	"database/sql"
	"time"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"
)

// Alerts live in the feedback table with is_alert set; the type column
// carries this prefix so legacy rows keep sorting with admin alerts.
const alertTypePrefix = "Admin varsel: "

type AlertService struct {
	FeedbackRepo repositories.FeedbackRepo
	DB           *sql.DB
	RequestID    string
}

func (s AlertService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AlertService) feedback() repositories.FeedbackRepo {
	if s.FeedbackRepo.DB != nil {
		return s.FeedbackRepo
	}
	return repositories.FeedbackRepo{DB: s.db()}
}

// Create publishes an admin alert. An empty expiry date means the
// alert never expires on its own.
func (s AlertService) Create(alertType, message, expiryDate string, targetGroups []string, displayOnWeather bool, createdBy string, now time.Time) (int64, error) {
	alertType = utils.TrimOrEmpty(alertType)
	if alertType == "" {
		return 0, domain.ValidationError{Field: "type", Msg: "is required"}
	}
	if utils.TrimOrEmpty(message) == "" {
		return 0, domain.ValidationError{Field: "message", Msg: "is required"}
	}
	if expiryDate != "" {
		if _, err := utils.ParseDate(expiryDate); err != nil {
			return 0, domain.ValidationError{Field: "expiry_date", Msg: "must be YYYY-MM-DD"}
		}
	}

	stamp := utils.FormatDateTime(now.In(utils.ReferenceLocation()))
	id, err := s.feedback().Insert(models.Feedback{
		Type:             alertTypePrefix + alertType,
		Datetime:         stamp,
		Comment:          message,
		Submitter:        createdBy,
		Status:           models.AlertActive,
		StatusChangedAt:  stamp,
		IsAlert:          true,
		DisplayOnWeather: displayOnWeather,
		ExpiryDate:       expiryDate,
		TargetGroup:      utils.JoinList(targetGroups),
	})
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "alerts", "create", "alert published, type "+alertType)
	return id, nil
}

// Active returns the alerts residents should see right now: status
// Aktiv and not past their expiry date.
func (s AlertService) Active(now time.Time) ([]models.Feedback, error) {
	today := utils.FormatDate(now.In(utils.ReferenceLocation()))
	out, err := s.feedback().ListAlerts(false, false, today)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// List is the admin view; it can include expired alerts or narrow to
// alerts created today.
func (s AlertService) List(onlyToday, includeExpired bool, now time.Time) ([]models.Feedback, error) {
	today := utils.FormatDate(now.In(utils.ReferenceLocation()))
	out, err := s.feedback().ListAlerts(onlyToday, includeExpired, today)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

// Update rewrites an alert's editable fields.
func (s AlertService) Update(id int64, alertType, message, expiryDate string, targetGroups []string, status string) error {
	alertType = utils.TrimOrEmpty(alertType)
	if alertType == "" {
		return domain.ValidationError{Field: "type", Msg: "is required"}
	}
	if expiryDate != "" {
		if _, err := utils.ParseDate(expiryDate); err != nil {
			return domain.ValidationError{Field: "expiry_date", Msg: "must be YYYY-MM-DD"}
		}
	}
	if status == "" {
		status = models.AlertActive
	}
	err := s.feedback().UpdateAlert(id, alertTypePrefix+alertType, message, expiryDate, utils.JoinList(targetGroups), status)
	if err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "alert", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "alerts", "update", "alert updated")
	return nil
}

// Delete removes an alert row. The repo guard on is_alert keeps plain
// feedback safe from this path.
func (s AlertService) Delete(id int64) error {
	f, err := s.feedback().GetByID(id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "alert", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	if !f.IsAlert {
		return domain.NotFoundError{Resource: "alert"}
	}
	if err := s.feedback().Delete(id); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "alert", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "alerts", "delete", "alert removed")
	return nil
}

// TargetGroups splits the stored target group column back into a list.
func (s AlertService) TargetGroups(f models.Feedback) []string {
	return utils.SplitList(f.TargetGroup)
}
