package services

import (
	"sort"
	"strings"
	"time"

	"github.com/diewo77/snack-manager/internal/models"
)

// HistoryFilter narrows the history view. Zero values mean "no constraint";
// the three predicates are AND-composed.
type HistoryFilter struct {
	Day   time.Time // calendar day (any instant within the day)
	From  string    // "HH:MM" inclusive lower bound on the time of day
	To    string    // "HH:MM" inclusive upper bound on the time of day
	Query string    // case-insensitive substring match on customer name or id
}

// FilterHistory applies the filter and returns the matches sorted descending
// by creation instant.
func FilterHistory(orders []models.Order, f HistoryFilter) []models.Order {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !f.Day.IsZero() {
			y1, m1, d1 := f.Day.Date()
			y2, m2, d2 := o.CreatedAt.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		hhmm := o.CreatedAt.Format("15:04")
		if f.From != "" && hhmm < f.From {
			continue
		}
		if f.To != "" && hhmm > f.To {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) &&
			!strings.Contains(strings.ToLower(o.ID), q) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
