package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/models"
	"github.com/diewo77/snack-manager/internal/validation"
)

// StaffHandler manages staff members and their access codes. All routes are
// admin-only; the router enforces that.
type StaffHandler struct {
	DB *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler { return &StaffHandler{DB: db} }

// List handles GET /servers.
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var members []models.StaffMember
	if err := h.DB.Order("name asc").Find(&members).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": members, "total": len(members)})
}

// Create handles POST /servers with {name, code}. The code is stored as a
// bcrypt hash and never returned.
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.Required("code", in.Code, v)
	if len(strings.TrimSpace(in.Code)) < 4 {
		v["code"] = "too_short"
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, i18n.T(lang, "error.validation"), v)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Code)), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	m := models.StaffMember{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		CodeHash: string(hash),
	}
	if err := h.DB.Create(&m).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

// Delete handles POST /servers/delete with {id}.
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	res := h.DB.Delete(&models.StaffMember{}, "id = ?", in.ID)
	if res.Error != nil {
		httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
		return
	}
	if res.RowsAffected == 0 {
		httpx.JSONError(w, http.StatusNotFound, i18n.T(lang, "error.server_not_found"), nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": in.ID, "deleted": true})
}
