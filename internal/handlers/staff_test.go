package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/snack-manager/internal/models"
)

func TestStaffCreateHashesCode(t *testing.T) {
	db := setupTestDB(t)
	h := NewStaffHandler(db)

	w := postJSON(t, h.Create, "/servers", `{"name":"Karim","code":"4321"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("code = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "4321") {
		t.Fatal("clear code leaked in response")
	}

	var saved models.StaffMember
	if err := db.First(&saved).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if saved.CodeHash == "4321" || saved.CodeHash == "" {
		t.Fatalf("code stored in clear: %q", saved.CodeHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(saved.CodeHash), []byte("4321")); err != nil {
		t.Fatalf("stored hash does not match code: %v", err)
	}
}

func TestStaffCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewStaffHandler(db)

	w := postJSON(t, h.Create, "/servers", `{"name":"","code":"12"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("code = %d, want 422", w.Code)
	}
	var resp struct {
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Details["name"] == "" || resp.Details["code"] != "too_short" {
		t.Fatalf("violations = %+v", resp.Details)
	}
}

func TestStaffListAndDelete(t *testing.T) {
	db := setupTestDB(t)
	h := NewStaffHandler(db)

	for _, m := range []models.StaffMember{
		{ID: "s1", Name: "Karim", CodeHash: "x"},
		{ID: "s2", Name: "Alice", CodeHash: "y"},
	} {
		m := m
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/servers", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list code = %d", w.Code)
	}
	var listed struct {
		Items []models.StaffMember `json:"items"`
		Total int                  `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 2 || listed.Items[0].Name != "Alice" {
		t.Fatalf("listed = %+v", listed)
	}
	if strings.Contains(w.Body.String(), "codeHash") || strings.Contains(w.Body.String(), "CodeHash") {
		t.Fatal("code hash leaked in list payload")
	}

	w2 := postJSON(t, h.Delete, "/servers/delete", `{"id":"s1"}`)
	if w2.Code != http.StatusOK {
		t.Fatalf("delete code = %d", w2.Code)
	}
	w2 = postJSON(t, h.Delete, "/servers/delete", `{"id":"s1"}`)
	if w2.Code != http.StatusNotFound {
		t.Fatalf("second delete code = %d", w2.Code)
	}
}
