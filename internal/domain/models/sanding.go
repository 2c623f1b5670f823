package models

// Sanding order statuses. The log table keeps every transition.
const (
	SandingPending   = "Pending"
	SandingCompleted = "Utført"
)

// SandingOrder is a gravel sanding request (strøing) for a cabin
// driveway, mirroring stroing_bestillinger.
type SandingOrder struct {
	ID          int64  `json:"id"`
	Cabin       string `json:"cabin"`
	OrderedAt   string `json:"ordered_at"`
	WishDate    string `json:"wish_date"`
	Comment     string `json:"comment,omitempty"`
	Status      string `json:"status"`
	CompletedAt string `json:"completed_at,omitempty"`
	CompletedBy string `json:"completed_by,omitempty"`
	Invoiced    bool   `json:"invoiced"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// SandingStatusChange is one row of the status audit log.
type SandingStatusChange struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	ChangedBy string `json:"changed_by"`
	ChangedAt string `json:"changed_at"`
}
