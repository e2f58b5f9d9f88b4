package services

import (
	"sort"
	"time"

	"github.com/diewo77/snack-manager/internal/models"
)

// DefaultPriorityThreshold is the wait time after which an active order is
// flagged urgent. Overridable through PRIORITY_THRESHOLD_MIN.
const DefaultPriorityThreshold = 15 * time.Minute

// IsPriority reports whether the order has been waiting at or beyond the
// threshold at the given instant.
func IsPriority(o *models.Order, now time.Time, threshold time.Duration) bool {
	return now.Sub(o.CreatedAt) >= threshold
}

// SortByUrgency orders the active list for the dashboard: urgent orders
// first, and within each tier the longest-waiting (oldest) first. The slice
// is sorted in place.
func SortByUrgency(orders []models.Order, now time.Time, threshold time.Duration) {
	sort.SliceStable(orders, func(i, j int) bool {
		pi := IsPriority(&orders[i], now, threshold)
		pj := IsPriority(&orders[j], now, threshold)
		if pi != pj {
			return pi
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
