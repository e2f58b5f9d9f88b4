package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/models"
	"github.com/diewo77/snack-manager/internal/services"
	"github.com/diewo77/snack-manager/internal/validation"
)

type SettingsHandler struct {
	Svc *services.SettingsService
}

func NewSettingsHandler(svc *services.SettingsService) *SettingsHandler {
	return &SettingsHandler{Svc: svc}
}

func settingsPayload(st *models.RestaurantSettings) map[string]any {
	return map[string]any{
		"settings":     st,
		"currentTheme": st.CurrentTheme(),
	}
}

// Get handles GET /settings. The payload carries the resolved theme alongside
// the raw record so clients don't duplicate the palette lookup.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	st, err := h.Svc.Get()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settingsPayload(st))
}

// Update handles POST /settings with a partial patch. Absent fields keep
// their stored value.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var p services.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	v := validation.Violations{}
	if p.RestaurantName != nil {
		validation.Required("restaurantName", *p.RestaurantName, v)
	}
	if p.PrimaryColor != nil {
		if _, ok := models.ColorThemes[*p.PrimaryColor]; !ok {
			v["primaryColor"] = "invalid_value"
		}
	}
	if p.LoyaltyTarget != nil {
		validation.PositiveInt("loyaltyTarget", *p.LoyaltyTarget, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), v)
		return
	}
	st, err := h.Svc.Update(p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, settingsPayload(st))
}

// Themes handles GET /settings/themes and returns the fixed palette.
func (h *SettingsHandler) Themes(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, models.ColorThemes)
}
