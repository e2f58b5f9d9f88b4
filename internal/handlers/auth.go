package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/auth"
	"github.com/diewo77/snack-manager/internal/httpx"
	"github.com/diewo77/snack-manager/internal/i18n"
	"github.com/diewo77/snack-manager/internal/middleware"
	"github.com/diewo77/snack-manager/internal/models"
)

// AuthHandler checks the administrator password or a staff access code and
// issues the session cookie.
type AuthHandler struct {
	DB *gorm.DB
	// AdminHash is the bcrypt hash of the administrator password, computed
	// once at startup.
	AdminHash []byte
}

func NewAuthHandler(db *gorm.DB, adminHash []byte) *AuthHandler {
	return &AuthHandler{DB: db, AdminHash: adminHash}
}

// Login handles POST /login with {role, password} for the admin or
// {role, code} for a serveur. The serveur code is matched against every
// stored staff hash; the matching member's name goes into the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFrom(r)
	var in struct {
		Role     string `json:"role"`
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.bad_json"), nil)
		return
	}

	switch in.Role {
	case auth.RoleAdmin:
		if bcrypt.CompareHashAndPassword(h.AdminHash, []byte(in.Password)) != nil {
			httpx.JSONError(w, http.StatusUnauthorized, i18n.T(lang, "login.bad_code"), nil)
			return
		}
		id := auth.Identity{Role: auth.RoleAdmin, Name: "Administrateur"}
		auth.CreateSession(w, id)
		httpx.JSON(w, http.StatusOK, map[string]any{"role": id.Role, "name": id.Name})
	case auth.RoleServeur:
		code := strings.TrimSpace(in.Code)
		if code == "" {
			code = strings.TrimSpace(in.Password)
		}
		if code == "" {
			httpx.JSONError(w, http.StatusUnauthorized, i18n.T(lang, "login.bad_code"), nil)
			return
		}
		var members []models.StaffMember
		if err := h.DB.Find(&members).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, i18n.T(lang, "error.internal"), nil)
			return
		}
		for _, m := range members {
			if bcrypt.CompareHashAndPassword([]byte(m.CodeHash), []byte(code)) == nil {
				id := auth.Identity{Role: auth.RoleServeur, Name: m.Name}
				auth.CreateSession(w, id)
				httpx.JSON(w, http.StatusOK, map[string]any{"role": id.Role, "name": id.Name})
				return
			}
		}
		httpx.JSONError(w, http.StatusUnauthorized, i18n.T(lang, "login.bad_code"), nil)
	default:
		httpx.JSONError(w, http.StatusBadRequest, i18n.T(lang, "error.validation"), nil)
	}
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Me handles GET /me and returns the current session identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"role": id.Role, "name": id.Name})
}
