package model

import "time"

// UrgencyTier classifies how soon a follow-up obligation comes due, relative
// to an explicit reference time.
type UrgencyTier string

const (
	TierOverdue      UrgencyTier = "Overdue"
	TierDueThisWeek  UrgencyTier = "Due This Week"
	TierDueThisMonth UrgencyTier = "Due This Month"
	TierFuture       UrgencyTier = "Future"
)

// Obligation is a derived follow-up record for one qualifying order. DueDate
// is a pure function of the order date; Urgency depends on the reference time
// it was evaluated against, so it is recomputed on every listing or sync
// rather than stored.
type Obligation struct {
	OrderID   string      `json:"inquiry_no"`
	OrderDate time.Time   `json:"order_date"`
	Company   string      `json:"company"`
	Client    string      `json:"client"`
	Product   string      `json:"product"`
	Quantity  float64     `json:"qty"`
	City      string      `json:"city"`
	State     string      `json:"state"`
	Total     float64     `json:"total_amount"`
	DueDate   time.Time   `json:"due_date"`
	Urgency   UrgencyTier `json:"urgency"`

	// EvaluatedAt records the reference time Urgency was computed against.
	EvaluatedAt time.Time `json:"evaluated_at"`
}
