package domain

import (
	"time"

	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/utils"
)

// WarnFunc receives anomaly reports for records that could not be
// classified. Passing nil disables reporting.
type WarnFunc func(format string, args ...any)

func (w WarnFunc) warnf(format string, args ...any) {
	if w != nil {
		w(format, args...)
	}
}

// BookingArrival resolves a booking's arrival instant in loc. Naive
// values are taken as wall-clock time in loc; values carrying another
// offset are converted so the instant is preserved.
func BookingArrival(b models.PlowBooking, loc *time.Location) (time.Time, error) {
	return normalizeStamp(b.ArrivalDate, b.ArrivalTime, loc)
}

// BookingDeparture resolves the departure instant. An empty departure
// date yields a zero time and nil error: the booking is open-ended.
func BookingDeparture(b models.PlowBooking, loc *time.Location) (time.Time, error) {
	if utils.TrimOrEmpty(b.DepartureDate) == "" {
		return time.Time{}, nil
	}
	return normalizeStamp(b.DepartureDate, b.DepartureTime, loc)
}

func normalizeStamp(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	dateStr = utils.TrimOrEmpty(dateStr)
	timeStr = utils.TrimOrEmpty(timeStr)
	if timeStr != "" && len(dateStr) == len("2006-01-02") {
		if t, err := utils.ParseFlexible(dateStr+" "+timeStr, loc); err == nil {
			return t, nil
		}
		// Fall through: a bad time column must not sink a valid date.
	}
	return utils.ParseFlexible(dateStr, loc)
}

// FilterActiveToday returns the bookings that are active on the
// calendar day of now in loc, preserving input order. The input is
// never mutated and "today" is fixed once for the whole pass.
//
// An annual subscription is active from its arrival day until its
// departure day, or indefinitely when no departure is set. Any other
// booking is active only on its exact arrival day. Records whose
// arrival cannot be parsed are excluded and reported via warn; a
// malformed departure on an annual subscription is treated as open
// ended, also reported.
func FilterActiveToday(bookings []models.PlowBooking, now time.Time, loc *time.Location, warn WarnFunc) []models.PlowBooking {
	if loc == nil {
		loc = utils.ReferenceLocation()
	}
	today := utils.DayStart(now, loc)

	out := make([]models.PlowBooking, 0, len(bookings))
	for _, b := range bookings {
		arrival, err := BookingArrival(b, loc)
		if err != nil {
			WarnFunc(warn).warnf("booking %d (cabin %s): unusable arrival date: %v", b.ID, b.Cabin, err)
			continue
		}
		arrivalDay := utils.DayStart(arrival, loc)

		if !b.IsAnnual() {
			if arrivalDay.Equal(today) {
				out = append(out, b)
			}
			continue
		}

		if arrivalDay.After(today) {
			continue
		}
		departure, err := BookingDeparture(b, loc)
		if err != nil {
			WarnFunc(warn).warnf("booking %d (cabin %s): unusable departure date, treating subscription as open-ended: %v", b.ID, b.Cabin, err)
			departure = time.Time{}
		}
		if departure.IsZero() || !utils.DayStart(departure, loc).Before(today) {
			out = append(out, b)
		}
	}
	return out
}

// FilterUpcoming returns bookings arriving after today and within the
// next `horizonDays` days, preserving input order. Used by the
// upcoming-bookings map.
func FilterUpcoming(bookings []models.PlowBooking, now time.Time, horizonDays int, loc *time.Location, warn WarnFunc) []models.PlowBooking {
	if loc == nil {
		loc = utils.ReferenceLocation()
	}
	today := utils.DayStart(now, loc)
	horizon := today.AddDate(0, 0, horizonDays)

	out := make([]models.PlowBooking, 0, len(bookings))
	for _, b := range bookings {
		arrival, err := BookingArrival(b, loc)
		if err != nil {
			WarnFunc(warn).warnf("booking %d (cabin %s): unusable arrival date: %v", b.ID, b.Cabin, err)
			continue
		}
		day := utils.DayStart(arrival, loc)
		if day.After(today) && !day.After(horizon) {
			out = append(out, b)
		}
	}
	return out
}

// DaysUntilArrival returns whole calendar days from today until the
// booking's arrival day (0 = today, negative = past). The bool is
// false when the arrival date is unusable.
func DaysUntilArrival(b models.PlowBooking, now time.Time, loc *time.Location) (int, bool) {
	if loc == nil {
		loc = utils.ReferenceLocation()
	}
	arrival, err := BookingArrival(b, loc)
	if err != nil {
		return 0, false
	}
	// Compare civil dates in UTC so DST transitions cannot skew the
	// day count.
	ay, am, ad := arrival.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	a := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(n).Hours() / 24), true
}
