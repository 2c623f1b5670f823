package services

import (
	"testing"
	"time"

	"fjelldrift/internal/domain"
	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/utils"
)

func coord(v float64) *float64 { return &v }

func discardWarn(format string, args ...any) {}

func TestBuildPlowTodayMarkers(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
	cabins := []models.Customer{
		{ID: "101", Latitude: coord(61.5), Longitude: coord(8.9)},
		{ID: "102", Latitude: coord(61.6), Longitude: coord(9.0)},
		{ID: "103", Latitude: coord(61.7), Longitude: coord(9.1)},
		{ID: "104"}, // no coordinates, must not appear
	}
	bookings := []models.PlowBooking{
		{ID: 1, Cabin: "101", ArrivalDate: "2025-01-10", SubscriptionType: models.SubscriptionAnnual},
		{ID: 2, Cabin: "102", ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly},
	}

	markers := BuildPlowTodayMarkers(cabins, bookings, now, utils.ReferenceLocation(), domain.WarnFunc(discardWarn))
	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d: %+v", len(markers), markers)
	}

	byID := map[string]MapMarker{}
	for _, m := range markers {
		byID[m.Cabin] = m
	}

	if m := byID["101"]; m.Color != colorAnnualActive || m.Size != markerSizeActive || m.Status != "Aktiv" {
		t.Errorf("annual active marker wrong: %+v", m)
	}
	if m := byID["102"]; m.Color != colorOneOffActive || m.Size != markerSizeActive {
		t.Errorf("one-off active marker wrong: %+v", m)
	}
	if m := byID["103"]; m.Color != colorInactive || m.Size != markerSizeInactive || m.Status != "Inaktiv" {
		t.Errorf("inactive marker wrong: %+v", m)
	}
	if _, ok := byID["104"]; ok {
		t.Error("cabin without coordinates must not be mapped")
	}
}

func TestBuildPlowUpcomingMarkersFade(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
	cabins := []models.Customer{
		{ID: "101", Latitude: coord(61.5), Longitude: coord(8.9)},
		{ID: "102", Latitude: coord(61.6), Longitude: coord(9.0)},
	}
	bookings := []models.PlowBooking{
		{ID: 1, Cabin: "101", ArrivalDate: "2025-01-16", SubscriptionType: models.SubscriptionWeekly},
		{ID: 2, Cabin: "102", ArrivalDate: "2025-01-20", SubscriptionType: models.SubscriptionWeekly},
		{ID: 3, Cabin: "101", ArrivalDate: "2025-01-30", SubscriptionType: models.SubscriptionWeekly},
	}

	markers := BuildPlowUpcomingMarkers(cabins, bookings, now, utils.ReferenceLocation(), domain.WarnFunc(discardWarn))
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d: %+v", len(markers), markers)
	}

	// One day out keeps the full color and shrinks by one.
	if markers[0].Cabin != "101" || markers[0].Color != colorOneOffActive || markers[0].Size != markerSizeActive-1 {
		t.Errorf("next-day marker wrong: %+v", markers[0])
	}
	// Five days out is faded and smaller.
	if markers[1].Cabin != "102" || markers[1].Color == colorOneOffActive || markers[1].Size != markerSizeActive-5 {
		t.Errorf("five-day marker wrong: %+v", markers[1])
	}
}

func TestFadeTowardWhite(t *testing.T) {
	if got := fadeTowardWhite("#db0000", 1); got != "#db0000" {
		t.Errorf("day 1 must keep the base color, got %s", got)
	}
	if got := fadeTowardWhite("#db0000", 8); got != "#ffffff" {
		t.Errorf("past the horizon must be white, got %s", got)
	}
	mid := fadeTowardWhite("#db0000", 4)
	if mid == "#db0000" || mid == "#ffffff" {
		t.Errorf("mid-window fade must be between base and white, got %s", mid)
	}
}

func TestBuildSandingMarkers(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
	cabins := []models.Customer{
		{ID: "101", Latitude: coord(61.5), Longitude: coord(8.9)},
		{ID: "102", Latitude: coord(61.6), Longitude: coord(9.0)},
		{ID: "103", Latitude: coord(61.7), Longitude: coord(9.1)},
	}
	orders := []models.SandingOrder{
		{ID: 1, Cabin: "101", WishDate: "2025-01-15", Status: models.SandingPending},
		{ID: 2, Cabin: "102", WishDate: "2025-01-18", Status: models.SandingPending},
		{ID: 3, Cabin: "103", WishDate: "2025-01-10", Status: models.SandingPending}, // past
	}

	markers := BuildSandingMarkers(cabins, orders, now, utils.ReferenceLocation(), domain.WarnFunc(discardWarn))
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d: %+v", len(markers), markers)
	}
	if markers[0].Color != colorSandingToday || markers[0].Size != markerSizeActive {
		t.Errorf("same-day sanding marker wrong: %+v", markers[0])
	}
	if markers[1].Color != "rgba(255,255,0,0.67)" || markers[1].Size != markerSizeSanding {
		t.Errorf("later sanding marker wrong: %+v", markers[1])
	}
}
