package followup

import (
	"math"
	"sort"
	"time"

	"orderdash/internal/model"
)

// DefaultOffsetDays is how far after the order date a follow-up comes due.
const DefaultOffsetDays = 90

// Skipped records an order that could not be scheduled.
type Skipped struct {
	OrderID string `json:"inquiry_no"`
	Reason  string `json:"reason"`
}

// DaysRemaining counts whole days from ref until due, truncated toward
// negative infinity so a due date any amount in the past counts as negative.
func DaysRemaining(due, ref time.Time) int {
	return int(math.Floor(due.Sub(ref).Hours() / 24))
}

// Tier classifies a due date against the reference time. First match wins:
// past due is Overdue, 0–7 days out is due this week, 8–30 due this month,
// beyond that Future.
func Tier(due, ref time.Time) model.UrgencyTier {
	days := DaysRemaining(due, ref)
	switch {
	case days < 0:
		return model.TierOverdue
	case days <= 7:
		return model.TierDueThisWeek
	case days <= 30:
		return model.TierDueThisMonth
	default:
		return model.TierFuture
	}
}

// Schedule computes one Obligation per order: due date is order date plus the
// offset (calendar days, never dependent on ref), urgency is evaluated against
// ref. Orders with a zero date cannot be scheduled and are reported in the
// skipped list rather than failing the batch.
func Schedule(orders []model.Order, offsetDays int, ref time.Time) ([]model.Obligation, []Skipped) {
	var (
		obligations []model.Obligation
		skipped     []Skipped
	)

	for _, o := range orders {
		if o.Date.IsZero() {
			skipped = append(skipped, Skipped{OrderID: o.ID, Reason: "missing order date"})
			continue
		}

		due := o.Date.AddDate(0, 0, offsetDays)
		obligations = append(obligations, model.Obligation{
			OrderID:     o.ID,
			OrderDate:   o.Date,
			Company:     o.Company,
			Client:      o.Client,
			Product:     o.Product,
			Quantity:    o.Quantity,
			City:        o.City,
			State:       o.State,
			Total:       o.Total,
			DueDate:     due,
			Urgency:     Tier(due, ref),
			EvaluatedAt: ref,
		})
	}

	return obligations, skipped
}

// ProductCount is one entry of the top-products list.
type ProductCount struct {
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// Summary are the headline numbers over one evaluated obligation set.
type Summary struct {
	Total       int                       `json:"total"`
	TotalValue  float64                   `json:"total_value"`
	Companies   int                       `json:"companies"`
	States      int                       `json:"states"`
	ByTier      map[model.UrgencyTier]int `json:"by_tier"`
	DueWithin30 int                       `json:"due_within_30"`
	Overdue     int                       `json:"overdue"`
	TopProducts []ProductCount            `json:"top_products"`
}

// Summarize computes summary statistics over an obligation set. topN bounds
// the product list; ties break alphabetically for stable output.
func Summarize(obligations []model.Obligation, topN int) Summary {
	s := Summary{
		ByTier: map[model.UrgencyTier]int{
			model.TierOverdue:      0,
			model.TierDueThisWeek:  0,
			model.TierDueThisMonth: 0,
			model.TierFuture:       0,
		},
	}

	companies := make(map[string]struct{})
	states := make(map[string]struct{})
	products := make(map[string]int)

	for _, ob := range obligations {
		s.Total++
		s.TotalValue += ob.Total
		s.ByTier[ob.Urgency]++
		companies[ob.Company] = struct{}{}
		states[ob.State] = struct{}{}
		products[ob.Product]++
	}

	s.Companies = len(companies)
	s.States = len(states)
	s.DueWithin30 = s.ByTier[model.TierDueThisWeek] + s.ByTier[model.TierDueThisMonth]
	s.Overdue = s.ByTier[model.TierOverdue]

	top := make([]ProductCount, 0, len(products))
	for p, n := range products {
		top = append(top, ProductCount{Product: p, Count: n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Product < top[j].Product
	})
	if topN > 0 && len(top) > topN {
		top = top[:topN]
	}
	s.TopProducts = top

	return s
}
