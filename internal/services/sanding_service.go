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

type SandingService struct {
	SandingRepo repositories.SandingRepo
	DB          *sql.DB
	RequestID   string
}

func (s SandingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SandingService) orders() repositories.SandingRepo {
	if s.SandingRepo.DB != nil {
		return s.SandingRepo
	}
	return repositories.SandingRepo{DB: s.db()}
}

// Create stores a sanding order. The wish date must be today or later.
func (s SandingService) Create(cabin, wishDate, comment string, now time.Time) (int64, error) {
	cabin = utils.TrimOrEmpty(cabin)
	if cabin == "" {
		return 0, domain.ValidationError{Field: "cabin", Msg: "is required"}
	}
	loc := utils.ReferenceLocation()
	wish, err := utils.ParseDate(utils.TrimOrEmpty(wishDate))
	if err != nil {
		return 0, domain.ValidationError{Field: "wish_date", Msg: "must be YYYY-MM-DD"}
	}
	today := utils.DayStart(now, loc)
	if utils.DayStart(wish, loc).Before(today) {
		return 0, domain.ValidationError{Field: "wish_date", Msg: "cannot be in the past"}
	}

	id, err := s.orders().Insert(cabin, utils.FormatDateTime(now.In(loc)), utils.FormatDate(wish), comment)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "stroing", "create", "sanding order stored for cabin "+cabin)
	return id, nil
}

func (s SandingService) List() ([]models.SandingOrder, error) {
	out, err := s.orders().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s SandingService) ListByCabin(cabin string) ([]models.SandingOrder, error) {
	if utils.TrimOrEmpty(cabin) == "" {
		return nil, domain.ValidationError{Field: "cabin", Msg: "is required"}
	}
	out, err := s.orders().ListByCabin(cabin)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s SandingService) Get(id int64) (models.SandingOrder, error) {
	o, err := s.orders().GetByID(id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return models.SandingOrder{}, domain.NotFoundError{Resource: "sanding order", Err: err}
		}
		return models.SandingOrder{}, domain.InternalError{Err: err}
	}
	return o, nil
}

// Complete marks the order done and records who did it.
func (s SandingService) Complete(id int64, completedBy string, now time.Time) error {
	completedBy = utils.TrimOrEmpty(completedBy)
	if completedBy == "" {
		return domain.ValidationError{Field: "completed_by", Msg: "is required"}
	}
	current, err := s.Get(id)
	if err != nil {
		return err
	}
	if current.Status == models.SandingCompleted {
		return domain.ConflictError{Resource: "sanding order", Msg: "already completed"}
	}
	if err := s.orders().MarkCompleted(id, completedBy, utils.FormatDateTime(now.In(utils.ReferenceLocation()))); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "sanding order", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "stroing", "complete", "sanding order marked done")
	return nil
}

func (s SandingService) Delete(id int64) error {
	if err := s.orders().Delete(id); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "sanding order", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "stroing", "delete", "sanding order removed")
	return nil
}

func (s SandingService) StatusLog(orderID int64) ([]models.SandingStatusChange, error) {
	if _, err := s.Get(orderID); err != nil {
		return nil, err
	}
	log, err := s.orders().StatusLog(orderID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return log, nil
}

// UpcomingWindow returns pending orders wished within the next
// horizonDays days, today included. Orders with malformed wish dates
// are skipped with a warning, never returned as errors.
func (s SandingService) UpcomingWindow(now time.Time, horizonDays int) []models.SandingOrder {
	warn := utils.ModuleWarnf("stroing")
	all, err := s.orders().List()
	if err != nil {
		warn("could not load sanding orders, returning empty window: %v", err)
		return []models.SandingOrder{}
	}
	loc := utils.ReferenceLocation()
	today := utils.DayStart(now, loc)
	limit := today.AddDate(0, 0, horizonDays)

	out := []models.SandingOrder{}
	for _, o := range all {
		wish, err := utils.ParseDate(o.WishDate)
		if err != nil {
			warn("order %d: unusable wish date %q: %v", o.ID, o.WishDate, err)
			continue
		}
		day := utils.DayStart(wish, loc)
		if day.Before(today) || day.After(limit) {
			continue
		}
		out = append(out, o)
	}
	return out
}
