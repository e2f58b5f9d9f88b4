package services

import (
	"errors"
	"testing"

	"github.com/diewo77/snack-manager/internal/models"
)

func TestProductSearchAndOrdering(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)

	seed := []models.Product{
		{ID: "1", Name: "Tacos Poulet", Category: "Tacos", Price: 7, Available: true},
		{ID: "2", Name: "Burger Classic", Category: "Burgers", Price: 8.5, Available: true},
		{ID: "3", Name: "Tacos Viande", Category: "Tacos", Price: 7.5, Available: false},
	}
	for i := range seed {
		if err := svc.Create(&seed[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := svc.All("")
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 3 || all[0].Category != "Burgers" {
		t.Fatalf("ordering off: %+v", all)
	}

	tacos, err := svc.All("tacos")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tacos) != 2 {
		t.Fatalf("search len = %d, want 2", len(tacos))
	}

	n, err := svc.UnavailableCount()
	if err != nil {
		t.Fatalf("unavailable: %v", err)
	}
	if n != 1 {
		t.Fatalf("unavailable = %d, want 1", n)
	}
}

func TestProductToggle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)

	p := models.Product{ID: "1", Name: "Tacos Poulet", Category: "Tacos", Price: 7, Available: true}
	if err := svc.Create(&p); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.ToggleAvailability("1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got.Available {
		t.Fatal("still available after toggle")
	}
	got, err = svc.ToggleAvailability("1")
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !got.Available {
		t.Fatal("not available after second toggle")
	}
	if _, err := svc.ToggleAvailability("missing"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestProductUpdateUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProductService(db)
	p := models.Product{ID: "missing", Name: "X", Category: "Y", Price: 1, Available: true}
	if err := svc.Update(&p); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}
