package models

// Subscription types as stored by the legacy booking form. Anything
// other than the annual subscription is a one-off dated booking.
const (
	SubscriptionAnnual = "Årsabonnement"
	SubscriptionWeekly = "Ukentlig ved bestilling"
)

// PlowBooking is a driveway plowing request (tunbrøyting). Date and
// time fields mirror the TEXT columns of tunbroyting_bestillinger and
// may be empty or malformed; normalization happens at filter time.
type PlowBooking struct {
	ID               int64  `json:"id"`
	Cabin            string `json:"cabin" validate:"required"`
	ArrivalDate      string `json:"arrival_date" validate:"required"`
	ArrivalTime      string `json:"arrival_time,omitempty"`
	DepartureDate    string `json:"departure_date,omitempty"`
	DepartureTime    string `json:"departure_time,omitempty"`
	SubscriptionType string `json:"subscription_type" validate:"required"`
}

// IsAnnual reports whether the booking is an open-ended annual
// subscription rather than a one-off booking.
func (b PlowBooking) IsAnnual() bool {
	return b.SubscriptionType == SubscriptionAnnual
}

// PlowBookingUpdate carries PATCH-style updates; nil means unchanged.
type PlowBookingUpdate struct {
	ArrivalDate      *string `json:"arrival_date,omitempty"`
	ArrivalTime      *string `json:"arrival_time,omitempty"`
	DepartureDate    *string `json:"departure_date,omitempty"`
	DepartureTime    *string `json:"departure_time,omitempty"`
	SubscriptionType *string `json:"subscription_type,omitempty"`
}
