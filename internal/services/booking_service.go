package services

import (
	"database/sql"
	"time"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"
	"fjelldrift/internal/validation"
)

var bookingValidator = validation.NewBookingValidator()

// upcomingHorizonDays bounds the "upcoming bookings" views and maps.
const upcomingHorizonDays = 7

type BookingService struct {
	BookingRepo repositories.PlowBookingRepo
	DB          *sql.DB
	RequestID   string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.PlowBookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.PlowBookingRepo{DB: s.db()}
}

// Create validates and stores a new plow booking.
func (s BookingService) Create(b models.PlowBooking) (int64, error) {
	if err := bookingValidator.Validate(b); err != nil {
		return 0, err
	}
	id, err := s.bookings().Insert(b)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "tunbroyting", "create", "booking stored for cabin "+b.Cabin)
	return id, nil
}

func (s BookingService) List() ([]models.PlowBooking, error) {
	out, err := s.bookings().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) ListByCabin(cabin string) ([]models.PlowBooking, error) {
	if utils.TrimOrEmpty(cabin) == "" {
		return nil, domain.ValidationError{Field: "cabin", Msg: "is required"}
	}
	out, err := s.bookings().ListByCabin(cabin)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) Get(id int64) (models.PlowBooking, error) {
	b, err := s.bookings().GetByID(id)
	if err != nil {
		if repositories.IsNoRows(err) {
			return models.PlowBooking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.PlowBooking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// Update applies a partial update after validating the merged record.
func (s BookingService) Update(id int64, upd models.PlowBookingUpdate) error {
	current, err := s.Get(id)
	if err != nil {
		return err
	}

	merged := current
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&merged.ArrivalDate, upd.ArrivalDate)
	apply(&merged.ArrivalTime, upd.ArrivalTime)
	apply(&merged.DepartureDate, upd.DepartureDate)
	apply(&merged.DepartureTime, upd.DepartureTime)
	apply(&merged.SubscriptionType, upd.SubscriptionType)

	if err := bookingValidator.Validate(merged); err != nil {
		return err
	}
	if err := s.bookings().Update(id, upd); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "tunbroyting", "update", "booking updated")
	return nil
}

func (s BookingService) Delete(id int64) error {
	if err := s.bookings().Delete(id); err != nil {
		if repositories.IsNoRows(err) {
			return domain.NotFoundError{Resource: "booking", Err: err}
		}
		return domain.InternalError{Err: err}
	}
	utils.LogEvent(s.RequestID, "tunbroyting", "delete", "booking removed")
	return nil
}

// ActiveToday returns the bookings active on the calendar day of now.
// The whole call shares a single "today"; a failing storage read yields
// an empty, renderable result instead of an error surfacing to the map.
func (s BookingService) ActiveToday(now time.Time) []models.PlowBooking {
	warn := utils.ModuleWarnf("tunbroyting")
	all, err := s.bookings().List()
	if err != nil {
		warn("could not load bookings, returning empty active set: %v", err)
		return []models.PlowBooking{}
	}
	return domain.FilterActiveToday(all, now, utils.ReferenceLocation(), warn)
}

// Upcoming returns bookings arriving within the next week.
func (s BookingService) Upcoming(now time.Time) []models.PlowBooking {
	warn := utils.ModuleWarnf("tunbroyting")
	all, err := s.bookings().List()
	if err != nil {
		warn("could not load bookings, returning empty upcoming set: %v", err)
		return []models.PlowBooking{}
	}
	return domain.FilterUpcoming(all, now, upcomingHorizonDays, utils.ReferenceLocation(), warn)
}

// BookingFilter narrows the admin listing.
type BookingFilter struct {
	View              string   // "", "today" or "active"
	StartDate         string   // inclusive arrival date bound
	EndDate           string   // inclusive arrival date bound
	SubscriptionTypes []string // empty = all
}

// AdminList applies the admin dashboard filter. "today" matches the
// active-today rule; "active" keeps every annual subscription plus
// one-off bookings that have not arrived yet.
func (s BookingService) AdminList(f BookingFilter, now time.Time) ([]models.PlowBooking, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	loc := utils.ReferenceLocation()
	warn := utils.ModuleWarnf("tunbroyting")

	switch f.View {
	case "today":
		all = domain.FilterActiveToday(all, now, loc, warn)
	case "active":
		kept := make([]models.PlowBooking, 0, len(all))
		for _, b := range all {
			if b.IsAnnual() {
				kept = append(kept, b)
				continue
			}
			if days, ok := domain.DaysUntilArrival(b, now, loc); ok && days >= 0 {
				kept = append(kept, b)
			}
		}
		all = kept
	}

	if f.StartDate != "" || f.EndDate != "" {
		var start, end time.Time
		if f.StartDate != "" {
			if start, err = utils.ParseDate(f.StartDate); err != nil {
				return nil, domain.ValidationError{Field: "start_date", Msg: "must be YYYY-MM-DD"}
			}
		}
		if f.EndDate != "" {
			if end, err = utils.ParseDate(f.EndDate); err != nil {
				return nil, domain.ValidationError{Field: "end_date", Msg: "must be YYYY-MM-DD"}
			}
		}
		kept := make([]models.PlowBooking, 0, len(all))
		for _, b := range all {
			arrival, err := domain.BookingArrival(b, loc)
			if err != nil {
				warn("booking %d: unusable arrival date in admin filter: %v", b.ID, err)
				continue
			}
			day := utils.DayStart(arrival, loc)
			if f.StartDate != "" && day.Before(start) {
				continue
			}
			if f.EndDate != "" && day.After(end) {
				continue
			}
			kept = append(kept, b)
		}
		all = kept
	}

	if len(f.SubscriptionTypes) > 0 {
		allowed := map[string]bool{}
		for _, t := range f.SubscriptionTypes {
			allowed[utils.TrimOrEmpty(t)] = true
		}
		kept := make([]models.PlowBooking, 0, len(all))
		for _, b := range all {
			if allowed[b.SubscriptionType] {
				kept = append(kept, b)
			}
		}
		all = kept
	}

	return all, nil
}
