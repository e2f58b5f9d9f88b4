package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

// StatsService computes dashboard aggregates from the live order data.
// Cancelled orders never count toward revenue or product rankings.
type StatsService struct{ DB *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{DB: db} }

type ProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TopProducts ranks item names by total quantity sold over non-cancelled
// orders and returns the first limit entries.
func (s *StatsService) TopProducts(limit int) ([]ProductCount, error) {
	var orders []models.Order
	if err := s.DB.Preload("Items").
		Where("status <> ?", models.StatusAnnule).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	counts := map[string]int{}
	for _, o := range orders {
		for _, it := range o.Items {
			counts[it.Name] += it.Quantity
		}
	}
	out := make([]ProductCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, ProductCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type DailyRevenue struct {
	Day     string  `json:"day"` // YYYY-MM-DD
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// RevenueByDay sums order totals per calendar day over [from, to] inclusive.
// Days without orders appear with zero revenue so charts stay continuous.
func (s *StatsService) RevenueByDay(from, to time.Time) ([]DailyRevenue, error) {
	var orders []models.Order
	if err := s.DB.
		Where("status <> ?", models.StatusAnnule).
		Where("created_at >= ? AND created_at < ?", startOfDay(from), startOfDay(to).Add(24*time.Hour)).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	byDay := map[string]*DailyRevenue{}
	for d := startOfDay(from); !d.After(startOfDay(to)); d = d.Add(24 * time.Hour) {
		key := d.Format("2006-01-02")
		byDay[key] = &DailyRevenue{Day: key}
	}
	for _, o := range orders {
		key := o.CreatedAt.Format("2006-01-02")
		if e, ok := byDay[key]; ok {
			e.Revenue += o.TotalPrice
			e.Orders++
		}
	}
	out := make([]DailyRevenue, 0, len(byDay))
	for _, e := range byDay {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

type TodayStats struct {
	Takeaway int `json:"takeaway"`
	Delivery int `json:"delivery"`
	DineIn   int `json:"dineIn"`
	Active   int `json:"active"`
}

// Today counts today's orders per type plus the current active total, the
// dashboard's KPI row.
func (s *StatsService) Today(now time.Time) (*TodayStats, error) {
	var orders []models.Order
	start := startOfDay(now)
	if err := s.DB.
		Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour)).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	st := &TodayStats{}
	for _, o := range orders {
		switch o.Type {
		case models.TypeEmporter:
			st.Takeaway++
		case models.TypeLivraison:
			st.Delivery++
		case models.TypeSurPlace:
			st.DineIn++
		}
	}
	var active int64
	if err := s.DB.Model(&models.Order{}).
		Where("status NOT IN ?", []string{models.StatusTermine, models.StatusAnnule}).
		Count(&active).Error; err != nil {
		return nil, err
	}
	st.Active = int(active)
	return st, nil
}

// LoyaltyStars converts an order count into stars given the configured
// orders-per-star target.
func LoyaltyStars(orderCount, loyaltyTarget int) int {
	if loyaltyTarget < 1 {
		loyaltyTarget = 10
	}
	return orderCount / loyaltyTarget
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
