package service

import (
	"fmt"
	"sort"

	"orderdash/internal/ledger"
	"orderdash/internal/model"
)

// ABC segmentation cutoffs by cumulative revenue share, in percent.
const (
	segmentACutoff = 80.0
	segmentBCutoff = 95.0
)

// ReportService computes dashboard reports on demand over the cached ledger.
// Nothing here is cached beyond the ledger snapshot itself.
type ReportService struct {
	cache *ledger.Cache
}

func NewReportService(cache *ledger.Cache) *ReportService {
	return &ReportService{cache: cache}
}

func (s *ReportService) Overview() (*model.Overview, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	ov := &model.Overview{TotalOrders: len(orders)}
	if len(orders) == 0 {
		return ov, nil
	}

	stateRevenue := make(map[string]float64)
	ov.From = orders[0].Date
	ov.To = orders[0].Date

	for _, o := range orders {
		ov.TotalRevenue += o.Total
		ov.TotalQuantity += o.Quantity
		stateRevenue[o.State] += o.Total
		if o.Date.Before(ov.From) {
			ov.From = o.Date
		}
		if o.Date.After(ov.To) {
			ov.To = o.Date
		}
	}
	ov.AvgOrderValue = ov.TotalRevenue / float64(len(orders))

	for state, revenue := range stateRevenue {
		if ov.TopState == "" || revenue > stateRevenue[ov.TopState] {
			ov.TopState = state
		}
	}

	return ov, nil
}

func (s *ReportService) RevenueTrend() ([]model.TrendPoint, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	type ym struct {
		year  int
		month int
	}
	buckets := make(map[ym]*model.TrendPoint)
	for _, o := range orders {
		key := ym{o.Year, int(o.Month)}
		pt, ok := buckets[key]
		if !ok {
			pt = &model.TrendPoint{Year: o.Year, Month: o.Month}
			buckets[key] = pt
		}
		pt.Revenue += o.Total
		pt.Orders++
	}

	trend := make([]model.TrendPoint, 0, len(buckets))
	for _, pt := range buckets {
		trend = append(trend, *pt)
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Year != trend[j].Year {
			return trend[i].Year < trend[j].Year
		}
		return trend[i].Month < trend[j].Month
	})

	return trend, nil
}

func (s *ReportService) StateBreakdown() ([]model.StateBreakdown, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var totalRevenue float64
	buckets := make(map[string]*model.StateBreakdown)
	for _, o := range orders {
		totalRevenue += o.Total
		st, ok := buckets[o.State]
		if !ok {
			st = &model.StateBreakdown{State: o.State}
			buckets[o.State] = st
		}
		st.Revenue += o.Total
		st.Orders++
		st.Quantity += o.Quantity
	}

	states := make([]model.StateBreakdown, 0, len(buckets))
	for _, st := range buckets {
		if totalRevenue > 0 {
			st.Share = st.Revenue / totalRevenue * 100
		}
		states = append(states, *st)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Revenue != states[j].Revenue {
			return states[i].Revenue > states[j].Revenue
		}
		return states[i].State < states[j].State
	})

	return states, nil
}

func (s *ReportService) TopProducts(limit int) ([]model.ProductStat, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	buckets := make(map[string]*model.ProductStat)
	for _, o := range orders {
		p, ok := buckets[o.Product]
		if !ok {
			p = &model.ProductStat{Product: o.Product}
			buckets[o.Product] = p
		}
		p.Revenue += o.Total
		p.Orders++
		p.Quantity += o.Quantity
	}

	products := make([]model.ProductStat, 0, len(buckets))
	for _, p := range buckets {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Revenue != products[j].Revenue {
			return products[i].Revenue > products[j].Revenue
		}
		return products[i].Product < products[j].Product
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}

	return products, nil
}

func (s *ReportService) CompanyAnalysis() ([]model.CompanyStat, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	var totalRevenue float64
	buckets := make(map[string]*model.CompanyStat)
	for _, o := range orders {
		totalRevenue += o.Total
		c, ok := buckets[o.Company]
		if !ok {
			c = &model.CompanyStat{Company: o.Company}
			buckets[o.Company] = c
		}
		c.Revenue += o.Total
		c.Orders++
	}

	companies := make([]model.CompanyStat, 0, len(buckets))
	for _, c := range buckets {
		companies = append(companies, *c)
	}
	sort.Slice(companies, func(i, j int) bool {
		if companies[i].Revenue != companies[j].Revenue {
			return companies[i].Revenue > companies[j].Revenue
		}
		return companies[i].Company < companies[j].Company
	})

	var cumulative float64
	for i := range companies {
		cumulative += companies[i].Revenue
		if totalRevenue > 0 {
			companies[i].CumulativeShare = cumulative / totalRevenue * 100
		}
		switch {
		case companies[i].CumulativeShare <= segmentACutoff:
			companies[i].Segment = "A"
		case companies[i].CumulativeShare <= segmentBCutoff:
			companies[i].Segment = "B"
		default:
			companies[i].Segment = "C"
		}
	}

	return companies, nil
}

func (s *ReportService) LeadTime() (*model.LeadTimeStats, error) {
	orders, _, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	stats := &model.LeadTimeStats{}
	var totalDays int
	for _, o := range orders {
		if !o.HasDelivery() {
			continue
		}
		if stats.Orders == 0 {
			stats.MinDays = o.LeadTimeDays
			stats.MaxDays = o.LeadTimeDays
		}
		stats.Orders++
		totalDays += o.LeadTimeDays
		if o.LeadTimeDays < stats.MinDays {
			stats.MinDays = o.LeadTimeDays
		}
		if o.LeadTimeDays > stats.MaxDays {
			stats.MaxDays = o.LeadTimeDays
		}
	}
	if stats.Orders > 0 {
		stats.AvgDays = float64(totalDays) / float64(stats.Orders)
	}

	return stats, nil
}

// Exclusions surfaces the ledger rows rejected at load time.
func (s *ReportService) Exclusions() ([]ledger.Exclusion, error) {
	_, exclusions, err := s.cache.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return exclusions, nil
}
