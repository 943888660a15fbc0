package model

import "time"

// Overview holds the headline numbers shown on the executive dashboard.
type Overview struct {
	TotalOrders   int       `json:"total_orders"`
	TotalRevenue  float64   `json:"total_revenue"`
	TotalQuantity float64   `json:"total_qty"`
	AvgOrderValue float64   `json:"avg_order_value"`
	TopState      string    `json:"top_state"`
	From          time.Time `json:"from"`
	To            time.Time `json:"to"`
}

// TrendPoint is one year-month bucket of the revenue trend.
type TrendPoint struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Revenue float64    `json:"revenue"`
	Orders  int        `json:"orders"`
}

// StateBreakdown aggregates orders by state.
type StateBreakdown struct {
	State    string  `json:"state"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Quantity float64 `json:"qty"`
	Share    float64 `json:"revenue_share"`
}

// ProductStat aggregates orders by product description.
type ProductStat struct {
	Product  string  `json:"product"`
	Revenue  float64 `json:"revenue"`
	Orders   int     `json:"orders"`
	Quantity float64 `json:"qty"`
}

// CompanyStat aggregates orders by company, with an ABC segment assigned by
// cumulative revenue share (A covers the top 80%, B the next 15%, C the rest).
type CompanyStat struct {
	Company         string  `json:"company"`
	Revenue         float64 `json:"revenue"`
	Orders          int     `json:"orders"`
	Segment         string  `json:"segment"`
	CumulativeShare float64 `json:"cumulative_share"`
}

// LeadTimeStats summarizes order-to-delivery lead time over the orders that
// carry an expected-delivery date.
type LeadTimeStats struct {
	Orders  int     `json:"orders"`
	AvgDays float64 `json:"avg_days"`
	MinDays int     `json:"min_days"`
	MaxDays int     `json:"max_days"`
}
