package models

// Customer is a cabin owner. The Id is the cabin number and doubles as
// the login user id.
type Customer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Subscription string   `json:"subscription,omitempty"`
	Role         string   `json:"role"`
	PasswordHash string   `json:"-"`
}

// HasCoordinates reports whether the cabin can be placed on the map.
func (c Customer) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// CustomerUpdate carries PATCH-style updates; nil means unchanged.
type CustomerUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Subscription *string  `json:"subscription,omitempty"`
	Role         *string  `json:"role,omitempty"`
}

// LoginEntry is one row of login_history.
type LoginEntry struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	LoginTime string `json:"login_time"`
	Success   bool   `json:"success"`
}
