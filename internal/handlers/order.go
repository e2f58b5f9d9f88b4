package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/models"
	"github.com/diewo77/snack-manager/internal/services"
	"github.com/diewo77/snack-manager/internal/validation"
)

// OrderHandler exposes the order lifecycle over HTTP.
type OrderHandler struct {
	Svc       *services.OrderService
	Settings  *services.SettingsService
	Threshold time.Duration
}

func NewOrderHandler(svc *services.OrderService, settings *services.SettingsService, threshold time.Duration) *OrderHandler {
	if threshold <= 0 {
		threshold = services.DefaultPriorityThreshold
	}
	return &OrderHandler{Svc: svc, Settings: settings, Threshold: threshold}
}

// orderJSON is the wire shape of an order. Timestamp and date are display
// derivatives of createdAt; clients never send them back.
type orderJSON struct {
	ID           string            `json:"id"`
	CustomerName string            `json:"customerName"`
	PhoneNumber  string            `json:"phoneNumber,omitempty"`
	Address      string            `json:"address,omitempty"`
	Items        []models.OrderItem `json:"items"`
	TotalPrice   float64           `json:"totalPrice"`
	Status       string            `json:"status"`
	StatusLabel  string            `json:"statusLabel"`
	Type         string            `json:"type"`
	TypeLabel    string            `json:"typeLabel"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	Timestamp    string            `json:"timestamp"`
	Date         string            `json:"date"`
	Priority     bool              `json:"priority"`
}

func (h *OrderHandler) toJSON(o models.Order, lang string, now time.Time) orderJSON {
	return orderJSON{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		PhoneNumber:  o.PhoneNumber,
		Address:      o.Address,
		Items:        o.Items,
		TotalPrice:   o.TotalPrice,
		Status:       o.Status,
		StatusLabel:  i18n.T(lang, "status."+o.Status),
		Type:         o.Type,
		TypeLabel:    i18n.T(lang, "type."+o.Type),
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		Timestamp:    o.Timestamp(),
		Date:         o.DateLabel(),
		Priority:     o.IsActive() && services.IsPriority(&o, now, h.Threshold),
	}
}

type orderInput struct {
	ID           string             `json:"id"`
	CustomerName string             `json:"customerName"`
	PhoneNumber  string             `json:"phoneNumber"`
	Address      string             `json:"address"`
	Items        []models.OrderItem `json:"items"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       string             `json:"status"`
	Type         string             `json:"type"`
	Notes        string             `json:"notes"`
}

func (in orderInput) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("customerName", in.CustomerName, v)
	if len(in.Items) == 0 {
		v["items"] = "required"
	}
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity <= 0 {
			v["items"] = "invalid_value"
			break
		}
	}
	validation.OneOf("type", in.Type, []string{models.TypeEmporter, models.TypeLivraison, models.TypeSurPlace}, v)
	if in.Type == models.TypeLivraison {
		validation.Required("phoneNumber", in.PhoneNumber, v)
		validation.Required("address", in.Address, v)
	}
	if in.Status != "" && !models.ValidStatus(in.Status) {
		v["status"] = "invalid_value"
	}
	return v
}

func (in orderInput) toModel() models.Order {
	total := in.TotalPrice
	if total == 0 {
		for _, it := range in.Items {
			total += float64(it.Quantity) * it.UnitPrice
		}
	}
	status := in.Status
	if status == "" {
		status = models.StatusNouveau
	}
	return models.Order{
		ID:           in.ID,
		CustomerName: strings.TrimSpace(in.CustomerName),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Address:      strings.TrimSpace(in.Address),
		Items:        in.Items,
		TotalPrice:   total,
		Status:       status,
		Type:         in.Type,
		Notes:        in.Notes,
	}
}

// List handles GET /orders. view=active (default) returns open orders in
// urgency order, view=history accepts date, from, to and q filters,
// view=all returns everything newest first.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	now := time.Now()
	q := r.URL.Query()

	var (
		orders []models.Order
		err    error
	)
	switch q.Get("view") {
	case "", "active":
		orders, err = h.Svc.Active()
		if err == nil {
			services.SortByUrgency(orders, now, h.Threshold)
		}
	case "history":
		orders, err = h.Svc.History()
		if err == nil {
			f := services.HistoryFilter{From: q.Get("from"), To: q.Get("to"), Query: q.Get("q")}
			if d := q.Get("date"); d != "" {
				day, perr := time.ParseInLocation("2006-01-02", d, time.Local)
				if perr != nil {
					httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_date"), nil)
					return
				}
				f.Day = day
			}
			orders = services.FilterHistory(orders, f)
		}
	case "all":
		orders, err = h.Svc.All()
	default:
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_view"), nil)
		return
	}
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}

	items := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		items = append(items, h.toJSON(o, lang, now))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Get handles GET /orders/get?id=.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	o, err := h.Svc.Get(id)
	if err != nil {
		status := http.StatusInternalServerError
		msg := i18n.T(lang, "error.internal")
		if errors.Is(err, services.ErrOrderNotFound) {
			status, msg = http.StatusNotFound, i18n.T(lang, "error.order_not_found")
		}
		httpx.JSONError(w, status, msg, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.toJSON(*o, lang, time.Now()))
}

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in orderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), v)
		return
	}
	o := in.toModel()
	if o.ID == "" {
		o.ID = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	if err := h.Svc.Add(&o); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, h.toJSON(o, lang, time.Now()))
}

// UpdateStatus handles POST /orders/status with {id, status}.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	if !models.ValidStatus(in.Status) {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), validation.Violations{"status": "invalid_value"})
		return
	}
	if err := h.Svc.UpdateStatus(in.ID, in.Status); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.order_not_found"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	o, err := h.Svc.Get(in.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.toJSON(*o, lang, time.Now()))
}

// Update handles POST /orders/update with a full order payload. The creation
// time of the stored order is preserved.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in orderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), v)
		return
	}
	o := in.toModel()
	if err := h.Svc.UpdateDetails(&o); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.order_not_found"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	saved, err := h.Svc.Get(o.ID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.toJSON(*saved, lang, time.Now()))
}

// Delete handles POST /orders/delete with {id, delay_ms}. With a positive
// delay the delete is scheduled and can still be cancelled; without one the
// order is removed immediately. Deleting an unknown id is a no-op.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in struct {
		ID      string `json:"id"`
		DelayMs int    `json:"delay_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	if in.DelayMs > 0 {
		h.Svc.ScheduleDelete(in.ID, time.Duration(in.DelayMs)*time.Millisecond)
		httpx.JSON(w, http.StatusAccepted, map[string]any{"id": in.ID, "scheduled": true})
		return
	}
	if err := h.Svc.Delete(in.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": in.ID, "deleted": true})
}

// CancelDelete handles POST /orders/delete/cancel with {id}.
func (h *OrderHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if in.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	cancelled := h.Svc.CancelDelete(in.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": in.ID, "cancelled": cancelled})
}

// Ticket handles GET /orders/ticket?id= and renders the 80mm receipt as a
// printable HTML document.
func (h *OrderHandler) Ticket(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_id"), nil)
		return
	}
	o, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.order_not_found"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	settings, err := h.Settings.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	doc, err := services.RenderTicket(o, settings, time.Now())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// ClientHistory handles GET /clients/history?phone= and returns the
// customer's orders with loyalty progress.
func (h *OrderHandler) ClientHistory(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.missing_phone"), nil)
		return
	}
	orders, err := h.Svc.ClientHistory(phone)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	settings, err := h.Settings.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })

	now := time.Now()
	var total float64
	name := ""
	items := make([]orderJSON, 0, len(orders))
	for _, o := range orders {
		if o.Status != models.StatusAnnule {
			total += o.TotalPrice
		}
		if name == "" {
			name = o.CustomerName
		}
		items = append(items, h.toJSON(o, lang, now))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"customerName": name,
		"phoneNumber":  phone,
		"orders":       items,
		"orderCount":   len(items),
		"totalSpent":   total,
		"stars":        services.LoyaltyStars(len(items), settings.LoyaltyTarget),
	})
}
