package domain

import (
	"fmt"
	"testing"
	"time"

	"fjelldrift/internal/domain/models"
	"fjelldrift/internal/utils"
)

// fixed reference instant: 2025-01-15 (Wednesday) 10:00 Oslo time
func testNow(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2025, 1, 15, 10, 0, 0, 0, utils.ReferenceLocation())
}

func TestFilterActiveTodayEmptyInput(t *testing.T) {
	got := FilterActiveToday(nil, testNow(t), nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
	got = FilterActiveToday([]models.PlowBooking{}, testNow(t), nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d records", len(got))
	}
}

func TestFilterActiveTodayAnnualSubscription(t *testing.T) {
	now := testNow(t)
	cases := []struct {
		name      string
		arrival   string
		departure string
		want      bool
	}{
		{"started yesterday, open-ended", "2025-01-14", "", true},
		{"started today", "2025-01-15", "", true},
		{"starts tomorrow", "2025-01-16", "", false},
		{"departed yesterday", "2024-12-01", "2025-01-14", false},
		{"departs today", "2024-12-01", "2025-01-15", true},
		{"departs next week", "2024-12-01", "2025-01-22", true},
		{"malformed departure treated as open-ended", "2024-12-01", "not-a-date", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []models.PlowBooking{{
				ID:               1,
				Cabin:            "142",
				ArrivalDate:      tc.arrival,
				DepartureDate:    tc.departure,
				SubscriptionType: models.SubscriptionAnnual,
			}}
			got := FilterActiveToday(in, now, nil, nil)
			if (len(got) == 1) != tc.want {
				t.Fatalf("arrival=%q departure=%q: included=%v, want %v",
					tc.arrival, tc.departure, len(got) == 1, tc.want)
			}
		})
	}
}

func TestFilterActiveTodayOneOffBooking(t *testing.T) {
	now := testNow(t)
	cases := []struct {
		name    string
		arrival string
		want    bool
	}{
		{"arrives today", "2025-01-15", true},
		{"arrived yesterday", "2025-01-14", false},
		{"arrives tomorrow", "2025-01-16", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []models.PlowBooking{{
				ID:               7,
				Cabin:            "27",
				ArrivalDate:      tc.arrival,
				DepartureDate:    "2025-02-01", // never widens a one-off booking
				SubscriptionType: models.SubscriptionWeekly,
			}}
			got := FilterActiveToday(in, now, nil, nil)
			if (len(got) == 1) != tc.want {
				t.Fatalf("arrival=%q: included=%v, want %v", tc.arrival, len(got) == 1, tc.want)
			}
		})
	}
}

func TestFilterActiveTodayTimezoneNormalization(t *testing.T) {
	now := testNow(t)

	// The same instant expressed naively in Oslo wall-clock time and
	// with an explicit UTC offset must classify identically.
	naive := models.PlowBooking{
		ID: 1, Cabin: "3",
		ArrivalDate:      "2025-01-15T08:00:00",
		SubscriptionType: models.SubscriptionWeekly,
	}
	offset := models.PlowBooking{
		ID: 2, Cabin: "4",
		ArrivalDate:      "2025-01-15T07:00:00Z", // 08:00 in Oslo (CET)
		SubscriptionType: models.SubscriptionWeekly,
	}
	got := FilterActiveToday([]models.PlowBooking{naive, offset}, now, nil, nil)
	if len(got) != 2 {
		t.Fatalf("expected both representations included, got %d", len(got))
	}

	// An offset stamp late on the 14th UTC is already the 15th in Oslo.
	rolled := models.PlowBooking{
		ID: 3, Cabin: "5",
		ArrivalDate:      "2025-01-14T23:30:00Z",
		SubscriptionType: models.SubscriptionWeekly,
	}
	got = FilterActiveToday([]models.PlowBooking{rolled}, now, nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected offset conversion to roll the date into today, got %d records", len(got))
	}
}

func TestFilterActiveTodayMalformedArrivalDoesNotAbort(t *testing.T) {
	now := testNow(t)
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	in := []models.PlowBooking{
		{ID: 1, Cabin: "10", ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly},
		{ID: 2, Cabin: "11", ArrivalDate: "garbage", SubscriptionType: models.SubscriptionWeekly},
		{ID: 3, Cabin: "12", ArrivalDate: "", SubscriptionType: models.SubscriptionAnnual},
		{ID: 4, Cabin: "13", ArrivalDate: "2025-01-01", SubscriptionType: models.SubscriptionAnnual},
	}
	got := FilterActiveToday(in, now, nil, warn)
	if len(got) != 2 {
		t.Fatalf("expected 2 classified records, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 4 {
		t.Fatalf("unexpected records: %+v", got)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings for the 2 bad records, got %d: %v", len(warnings), warnings)
	}
}

func TestFilterActiveTodayPreservesOrder(t *testing.T) {
	now := testNow(t)
	in := []models.PlowBooking{
		{ID: 5, Cabin: "1", ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly},
		{ID: 3, Cabin: "2", ArrivalDate: "2025-01-10", SubscriptionType: models.SubscriptionAnnual},
		{ID: 9, Cabin: "3", ArrivalDate: "2025-01-16", SubscriptionType: models.SubscriptionWeekly},
		{ID: 1, Cabin: "4", ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly},
	}
	got := FilterActiveToday(in, now, nil, nil)
	wantIDs := []int64{5, 3, 1}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d records, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d (order must match input)", i, got[i].ID, id)
		}
	}
}

func TestFilterActiveTodayDoesNotMutateInput(t *testing.T) {
	now := testNow(t)
	in := []models.PlowBooking{
		{ID: 1, Cabin: "1", ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly},
	}
	snapshot := in[0]
	_ = FilterActiveToday(in, now, nil, nil)
	if in[0] != snapshot {
		t.Fatal("input record was mutated")
	}
}

func TestFilterUpcomingWindow(t *testing.T) {
	now := testNow(t)
	in := []models.PlowBooking{
		{ID: 1, ArrivalDate: "2025-01-15", SubscriptionType: models.SubscriptionWeekly}, // today: excluded
		{ID: 2, ArrivalDate: "2025-01-16", SubscriptionType: models.SubscriptionWeekly},
		{ID: 3, ArrivalDate: "2025-01-22", SubscriptionType: models.SubscriptionWeekly}, // day 7: included
		{ID: 4, ArrivalDate: "2025-01-23", SubscriptionType: models.SubscriptionWeekly}, // beyond horizon
		{ID: 5, ArrivalDate: "bogus", SubscriptionType: models.SubscriptionWeekly},
	}
	got := FilterUpcoming(in, now, 7, nil, nil)
	wantIDs := []int64{2, 3}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d records, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("position %d: got id %d, want %d", i, got[i].ID, id)
		}
	}
}

func TestDaysUntilArrival(t *testing.T) {
	now := testNow(t)
	cases := []struct {
		arrival string
		want    int
		ok      bool
	}{
		{"2025-01-15", 0, true},
		{"2025-01-18", 3, true},
		{"2025-01-12", -3, true},
		{"junk", 0, false},
	}
	for _, tc := range cases {
		b := models.PlowBooking{ArrivalDate: tc.arrival}
		got, ok := DaysUntilArrival(b, now, nil)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("arrival=%q: got (%d,%v), want (%d,%v)", tc.arrival, got, ok, tc.want, tc.ok)
		}
	}
}
