package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/config"
	"github.com/diewo77/snack-manager/internal/models"
)

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Product{}, &models.RestaurantSettings{}, &models.StaffMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	staffHash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.StaffMember{ID: "s1", Name: "Karim", CodeHash: string(staffHash)}).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg := config.Config{Port: "0", PriorityThresholdMin: 15}
	return New(db, nil, cfg, adminHash)
}

func login(t *testing.T, h http.Handler, body string) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login code = %d, body %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func TestHealthEndpoints(t *testing.T) {
	h := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s code = %d", path, w.Code)
		}
	}
}

func TestOrdersRequireSession(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous code = %d, want 401", w.Code)
	}

	// HTML clients get redirected to the login page instead.
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("html redirect code = %d, want 303", w.Code)
	}

	cookie := login(t, h, `{"role":"serveur","code":"4321"}`)
	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authed code = %d, body %s", w.Code, w.Body.String())
	}
}

func TestStaffRoutesAdminOnly(t *testing.T) {
	h := setupRouter(t)

	serveur := login(t, h, `{"role":"serveur","code":"4321"}`)
	req := httptest.NewRequest(http.MethodGet, "/servers", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(serveur)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("serveur code = %d, want 403", w.Code)
	}

	admin := login(t, h, `{"role":"admin","password":"admin123"}`)
	req = httptest.NewRequest(http.MethodGet, "/servers", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(admin)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin code = %d, body %s", w.Code, w.Body.String())
	}
}

func TestSettingsWriteAdminOnly(t *testing.T) {
	h := setupRouter(t)

	serveur := login(t, h, `{"role":"serveur","code":"4321"}`)
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(serveur)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("serveur read code = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(`{"restaurantName":"X"}`))
	req.Header.Set("Accept", "application/json")
	req.AddCookie(serveur)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("serveur write code = %d, want 403", w.Code)
	}
}

func TestOrderLifecycleThroughRouter(t *testing.T) {
	h := setupRouter(t)
	admin := login(t, h, `{"role":"admin","password":"admin123"}`)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		req.Header.Set("Accept", "application/json")
		req.AddCookie(admin)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/orders", `{"customerName":"Jean","type":"emporter","items":[{"name":"Tacos","quantity":1,"price":7}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create code = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = do(http.MethodPost, "/orders/status", `{"id":"`+created.ID+`","status":"termine"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status code = %d, body %s", w.Code, w.Body.String())
	}

	w = do(http.MethodGet, "/orders?view=active", "")
	if w.Code != http.StatusOK {
		t.Fatalf("active code = %d", w.Code)
	}
	var listed struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 0 {
		t.Fatalf("completed order still active: %s", w.Body.String())
	}

	w = do(http.MethodGet, "/orders?view=history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("history code = %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 1 {
		t.Fatalf("history total = %d, want 1", listed.Total)
	}

	w = do(http.MethodGet, "/orders/ticket?id="+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("ticket code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "TOTAL:") {
		t.Fatal("ticket missing total")
	}

	w = do(http.MethodDelete, "/orders/delete", `{"id":"x"}`)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("wrong method code = %d, want 405", w.Code)
	}
}

func TestStatsEndpointsThroughRouter(t *testing.T) {
	h := setupRouter(t)
	admin := login(t, h, `{"role":"admin","password":"admin123"}`)

	for _, path := range []string{"/stats/today", "/stats/top-products", "/stats/revenue"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept", "application/json")
		req.AddCookie(admin)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s code = %d, body %s", path, w.Code, w.Body.String())
		}
	}
}
