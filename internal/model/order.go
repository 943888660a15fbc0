package model

import (
	"time"
)

// Order is one cleaned row of the order-confirmation ledger. Orders are
// immutable inputs: the ledger loader builds them once and nothing downstream
// mutates them.
type Order struct {
	ID       string    `json:"inquiry_no"`
	Date     time.Time `json:"date"`
	Company  string    `json:"company"`
	Client   string    `json:"client"`
	Product  string    `json:"product"`
	Quantity float64   `json:"qty"`
	City     string    `json:"city"`
	State    string    `json:"state"`
	Total    float64   `json:"total_amount"`

	// Delivery is the expected-delivery date; zero when the ledger row had none.
	Delivery time.Time `json:"delivery,omitempty"`

	// Derived at load time. LeadTimeDays is valid only when Delivery is set.
	Year         int        `json:"year"`
	Month        time.Month `json:"month"`
	LeadTimeDays int        `json:"lead_time_days,omitempty"`
}

// HasDelivery reports whether the order carries an expected-delivery date.
func (o Order) HasDelivery() bool {
	return !o.Delivery.IsZero()
}
