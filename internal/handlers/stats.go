package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/services"
)

type StatsHandler struct {
	Svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{Svc: svc}
}

// TopProducts handles GET /stats/top-products?limit= (default 5).
func (h *StatsHandler) TopProducts(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), nil)
			return
		}
		limit = n
	}
	items, err := h.Svc.TopProducts(limit)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

// Revenue handles GET /stats/revenue?from=&to= (YYYY-MM-DD, default the last
// 7 days ending today).
func (h *StatsHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	now := time.Now()
	from := now.AddDate(0, 0, -6)
	to := now
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_date"), nil)
			return
		}
		from = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_date"), nil)
			return
		}
		to = t
	}
	if to.Before(from) {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_date"), nil)
		return
	}
	days, err := h.Svc.RevenueByDay(from, to)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"days": days})
}

// Today handles GET /stats/today.
func (h *StatsHandler) Today(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	st, err := h.Svc.Today(time.Now())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}
