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

var feedbackStatuses = map[string]bool{
	models.FeedbackNew:        true,
	models.FeedbackInProgress: true,
	models.FeedbackResolved:   true,
	models.FeedbackClosed:     true,
}

type FeedbackService struct {
	FeedbackRepo repositories.FeedbackRepo
	DB           *sql.DB
	RequestID    string
}

func (s FeedbackService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s FeedbackService) feedback() repositories.FeedbackRepo {
	if s.FeedbackRepo.DB != nil {
		return s.FeedbackRepo
	}
	return repositories.FeedbackRepo{DB: s.db()}
}

// Create stores a feedback entry with status Ny.
func (s FeedbackService) Create(ftype, comment, submitter string, hidden bool, now time.Time) (int64, error) {
	ftype = utils.TrimOrEmpty(ftype)
	if ftype == "" {
		return 0, domain.ValidationError{Field: "type", Msg: "is required"}
	}
	if utils.TrimOrEmpty(comment) == "" {
		return 0, domain.ValidationError{Field: "comment", Msg: "is required"}
	}

	stamp := utils.FormatDateTime(now.In(utils.ReferenceLocation()))
	id, err := s.feedback().Insert(models.Feedback{
		Type:            ftype,
		Datetime:        stamp,
		Comment:         comment,
		Submitter:       submitter,
		Status:          models.FeedbackNew,
		StatusChangedAt: stamp,
		Hidden:          hidden,
	})
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "feedback", "create", "feedback stored, type "+ftype)
	return id, nil
}

func (s FeedbackService) List(q repositories.FeedbackQuery) ([]models.Feedback, error) {
	out, err := s.feedback().List(q)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s FeedbackService) Get(id int64) (models.Feedback, error) {
	f, err := s.feedback().GetByID(id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return models.Feedback{}, domain.NotFoundError{Resource: "feedback", Err: err}
		}
		return models.Feedback{}, domain.InternalError{Err: err}
	}
	return f, nil
}

// UpdateStatus moves the entry through the Ny -> Under behandling ->
// Løst/Lukket workflow.
func (s FeedbackService) UpdateStatus(id int64, status, changedBy string, now time.Time) error {
	if !feedbackStatuses[status] {
		return domain.ValidationError{Field: "status", Msg: "unknown status " + status}
	}
	err := s.feedback().UpdateStatus(id, status, changedBy, utils.FormatDateTime(now.In(utils.ReferenceLocation())))
	if err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "feedback", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "feedback", "status", "feedback status set to "+status)
	return nil
}

func (s FeedbackService) SetHidden(id int64, hidden bool) error {
	if err := s.feedback().SetHidden(id, hidden); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "feedback", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	return nil
}

func (s FeedbackService) Delete(id int64) error {
	if err := s.feedback().Delete(id); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "feedback", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "feedback", "delete", "feedback removed")
	return nil
}

// Statistics aggregates feedback volume for the admin dashboard.
func (s FeedbackService) Statistics(start, end string) (models.FeedbackStats, error) {
	if start == "" || end == "" {
		return models.FeedbackStats{}, domain.ValidationError{Field: "period", Msg: "start and end are required"}
	}
	repo := s.feedback()

	byType, err := repo.CountsBy("type", start, end)
	if err != nil {
		return models.FeedbackStats{}, domain.InternalError{Err: err}
	}
	byStatus, err := repo.CountsBy("status", start, end)
	if err != nil {
		return models.FeedbackStats{}, domain.InternalError{Err: err}
	}
	daily, err := repo.DailyCounts(start, end)
	if err != nil {
		return models.FeedbackStats{}, domain.InternalError{Err: err}
	}

	stats := models.FeedbackStats{ByType: byType, ByStatus: byStatus, Daily: daily}
	for _, n := range byType {
		stats.Total += n
	}
	return stats, nil
}
