package services

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	intconfig "fjelldrift/internal/config"
	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/repositories"
	"fjelldrift/internal/utils"
)

// Marker colors and sizes for the plowing map.
const (
	colorAnnualActive = "#03b01f"
	colorOneOffActive = "#db0000"
	colorInactive     = "#eaeaea"
	colorSandingToday = "#db0000"

	markerSizeActive   = 12
	markerSizeInactive = 8
	markerSizeSanding  = 10
)

// MapMarker is one cabin dot on a map feed.
type MapMarker struct {
	Cabin     string  `json:"cabin"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Color     string  `json:"color"`
	Size      int     `json:"size"`
	Status    string  `json:"status"`
	Label     string  `json:"label"`
}

type MapService struct {
	CustomerRepo repositories.CustomerRepo
	BookingRepo  repositories.PlowBookingRepo
	SandingRepo  repositories.SandingRepo
	DB           *sql.DB
	RequestID    string
}

func (s MapService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MapService) customers() repositories.CustomerRepo {
	if s.CustomerRepo.DB != nil {
		return s.CustomerRepo
	}
	return repositories.CustomerRepo{DB: s.db()}
}

func (s MapService) bookings() repositories.PlowBookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.PlowBookingRepo{DB: s.db()}
}

func (s MapService) sanding() repositories.SandingRepo {
	if s.SandingRepo.DB != nil {
		return s.SandingRepo
	}
	return repositories.SandingRepo{DB: s.db()}
}

// PlowToday builds the operator map for today's plowing round: every
// mappable cabin gets a dot, colored by whether its booking is active
// on the calendar day of now.
func (s MapService) PlowToday(now time.Time) ([]MapMarker, error) {
	cabins, err := s.customers().WithCoordinates()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	all, err := s.bookings().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return BuildPlowTodayMarkers(cabins, all, now, utils.ReferenceLocation(), utils.ModuleWarnf("map")), nil
}

// PlowUpcoming builds the week-ahead map: cabins whose booking arrives
// within the next seven days, fading toward white the further out the
// arrival is.
func (s MapService) PlowUpcoming(now time.Time) ([]MapMarker, error) {
	cabins, err := s.customers().WithCoordinates()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	all, err := s.bookings().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return BuildPlowUpcomingMarkers(cabins, all, now, utils.ReferenceLocation(), utils.ModuleWarnf("map")), nil
}

// Sanding builds the sanding-crew map for orders wished within the
// coming week.
func (s MapService) Sanding(now time.Time) ([]MapMarker, error) {
	cabins, err := s.customers().WithCoordinates()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	orders, err := s.sanding().List()
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return BuildSandingMarkers(cabins, orders, now, utils.ReferenceLocation(), utils.ModuleWarnf("map")), nil
}

// BuildPlowTodayMarkers is the pure marker builder behind PlowToday.
// Each cabin uses its newest booking; cabins without one stay gray.
func BuildPlowTodayMarkers(cabins []models.Customer, bookings []models.PlowBooking, now time.Time, loc *time.Location, warn domain.WarnFunc) []MapMarker {
	latest := latestBookingPerCabin(bookings)
	activeByCabin := map[string]models.PlowBooking{}
	for _, b := range domain.FilterActiveToday(bookings, now, loc, warn) {
		if _, seen := activeByCabin[b.Cabin]; !seen {
			activeByCabin[b.Cabin] = b
		}
	}

	out := []MapMarker{}
	for _, c := range cabins {
		if !c.HasCoordinates() {
			continue
		}
		m := MapMarker{
			Cabin:     c.ID,
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			Color:     colorInactive,
			Size:      markerSizeInactive,
			Status:    "Inaktiv",
			Label:     "Hytte: " + c.ID + " - Ingen bestilling",
		}
		if b, ok := activeByCabin[c.ID]; ok {
			m.Size = markerSizeActive
			m.Status = "Aktiv"
			if b.IsAnnual() {
				m.Color = colorAnnualActive
			} else {
				m.Color = colorOneOffActive
			}
			m.Label = "Hytte: " + c.ID + " - " + b.SubscriptionType
		} else if lb, ok := latest[c.ID]; ok {
			m.Label = "Hytte: " + c.ID + " - " + lb.SubscriptionType + " (inaktiv)"
		}
		out = append(out, m)
	}
	return out
}

// BuildPlowUpcomingMarkers returns only cabins with a booking arriving
// in (today, today+7]. Color intensity and size fall off with distance
// to arrival.
func BuildPlowUpcomingMarkers(cabins []models.Customer, bookings []models.PlowBooking, now time.Time, loc *time.Location, warn domain.WarnFunc) []MapMarker {
	coords := map[string]models.Customer{}
	for _, c := range cabins {
		if c.HasCoordinates() {
			coords[c.ID] = c
		}
	}

	out := []MapMarker{}
	for _, b := range domain.FilterUpcoming(bookings, now, 7, loc, warn) {
		c, ok := coords[b.Cabin]
		if !ok {
			continue
		}
		days, ok := domain.DaysUntilArrival(b, now, loc)
		if !ok || days < 1 {
			continue
		}
		base := colorOneOffActive
		if b.IsAnnual() {
			base = colorAnnualActive
		}
		out = append(out, MapMarker{
			Cabin:     c.ID,
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			Color:     fadeTowardWhite(base, days),
			Size:      markerSizeActive - days,
			Status:    "Kommende",
			Label:     "Hytte: " + c.ID + " - Ankomst om " + strconv.Itoa(days) + " dager",
		})
	}
	return out
}

// BuildSandingMarkers maps pending sanding wishes for the next week.
// A wish for today is solid red; later wishes are yellow and fade as
// the wish date moves out.
func BuildSandingMarkers(cabins []models.Customer, orders []models.SandingOrder, now time.Time, loc *time.Location, warn domain.WarnFunc) []MapMarker {
	coords := map[string]models.Customer{}
	for _, c := range cabins {
		if c.HasCoordinates() {
			coords[c.ID] = c
		}
	}
	today := utils.DayStart(now, loc)
	limit := today.AddDate(0, 0, 7)

	out := []MapMarker{}
	for _, o := range orders {
		c, ok := coords[o.Cabin]
		if !ok {
			continue
		}
		wish, err := utils.ParseDate(o.WishDate)
		if err != nil {
			warn("order %d: unusable wish date %q: %v", o.ID, o.WishDate, err)
			continue
		}
		day := utils.DayStart(wish, loc)
		if day.Before(today) || day.After(limit) {
			continue
		}
		days := daysBetween(today, day)

		m := MapMarker{
			Cabin:     c.ID,
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
			Label:     "Hytte: " + c.ID + " Dato: " + o.WishDate + " Dager til: " + strconv.Itoa(days),
			Status:    o.Status,
		}
		if days == 0 {
			m.Color = colorSandingToday
			m.Size = markerSizeActive
		} else {
			alpha := 1.0 - float64(days-1)/6.0
			m.Color = fmt.Sprintf("rgba(255,255,0,%.2f)", alpha)
			m.Size = markerSizeSanding
		}
		out = append(out, m)
	}
	return out
}

// latestBookingPerCabin keeps the most recently stored booking per
// cabin; List returns rows in insertion order.
func latestBookingPerCabin(bookings []models.PlowBooking) map[string]models.PlowBooking {
	out := map[string]models.PlowBooking{}
	for _, b := range bookings {
		out[b.Cabin] = b
	}
	return out
}

// fadeTowardWhite blends a hex color toward white as daysUntil grows:
// one day out keeps the full color, seven days out is nearly white.
func fadeTowardWhite(hexColor string, daysUntil int) string {
	if len(hexColor) != 7 || hexColor[0] != '#' {
		return hexColor
	}
	factor := 1.0 - float64(daysUntil-1)/7.0
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}

	blend := func(hh string) int64 {
		v, err := strconv.ParseInt(hh, 16, 0)
		if err != nil {
			return 255
		}
		return 255 - int64(float64(255-v)*factor)
	}
	r := blend(hexColor[1:3])
	g := blend(hexColor[3:5])
	b := blend(hexColor[5:7])
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
