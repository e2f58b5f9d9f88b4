package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/models"
	"github.com/diewo77/snack-manager/internal/services"
	"github.com/diewo77/snack-manager/internal/validation"
)

type ProductHandler struct {
	Svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

type productInput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Available *bool   `json:"available"`
	Image     string  `json:"image"`
	ImageFit  string  `json:"imageFit"`
}

func (in productInput) validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("category", in.Category, v)
	validation.PositiveFloat("price", in.Price, v)
	if in.ImageFit != "" {
		validation.OneOf("imageFit", in.ImageFit, []string{"cover", "contain"}, v)
	}
	return v
}

func (in productInput) toModel() models.Product {
	available := true
	if in.Available != nil {
		available = *in.Available
	}
	fit := in.ImageFit
	if fit == "" {
		fit = "cover"
	}
	return models.Product{
		ID:        in.ID,
		Name:      strings.TrimSpace(in.Name),
		Category:  strings.TrimSpace(in.Category),
		Price:     in.Price,
		Available: available,
		Image:     in.Image,
		ImageFit:  fit,
	}
}

// List handles GET /products?q= and includes the unavailable count so the
// catalog page can show its badge without a second round trip.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	products, err := h.Svc.All(strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	unavailable, err := h.Svc.UnavailableCount()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":       products,
		"total":       len(products),
		"unavailable": unavailable,
	})
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in productInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	if v := in.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), v)
		return
	}
	p := in.toModel()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := h.Svc.Create(&p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update handles POST /products/update.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in productInput
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
	p := in.toModel()
	if err := h.Svc.Update(&p); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.product_not_found"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete handles POST /products/delete with {id}. Unknown ids are a no-op.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Svc.Delete(in.ID); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": in.ID, "deleted": true})
}

// Toggle handles POST /products/toggle with {id} and flips availability.
func (h *ProductHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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
	p, err := h.Svc.ToggleAvailability(in.ID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.product_not_found"), nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
