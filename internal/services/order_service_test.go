package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid cross-test collisions.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Product{}, &models.RestaurantSettings{}, &models.StaffMember{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(event string, _ any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) has(event string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}

func sampleOrder(id string, createdAt time.Time) models.Order {
	return models.Order{
		ID:           id,
		CustomerName: "Jean Dupont",
		Status:       models.StatusNouveau,
		Type:         models.TypeEmporter,
		TotalPrice:   14,
		CreatedAt:    createdAt,
		Items: []models.OrderItem{
			{Name: "Tacos Poulet", Quantity: 2, UnitPrice: 7},
		},
	}
}

func TestAddPersistsAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	n := &recordingNotifier{}
	svc := NewOrderService(db, n)

	o := sampleOrder("A1", time.Now())
	if err := svc.Add(&o); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := svc.Get("A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerName != "Jean Dupont" || len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !n.has("new_order") {
		t.Fatal("expected new_order notification")
	}
}

func TestUpdateStatusOnlyTouchesTarget(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	a := sampleOrder("A1", time.Now())
	b := sampleOrder("B2", time.Now())
	if err := svc.Add(&a); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if err := svc.Add(&b); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if err := svc.UpdateStatus("A1", models.StatusEnCours); err != nil {
		t.Fatalf("update status: %v", err)
	}
	gotA, _ := svc.Get("A1")
	gotB, _ := svc.Get("B2")
	if gotA.Status != models.StatusEnCours {
		t.Fatalf("A1 status = %q", gotA.Status)
	}
	if gotB.Status != models.StatusNouveau {
		t.Fatalf("B2 status changed: %q", gotB.Status)
	}
}

func TestUpdateStatusUnknownID(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)
	if err := svc.UpdateStatus("nope", models.StatusTermine); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateDetailsPreservesCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	created := time.Now().Add(-30 * time.Minute).Truncate(time.Second)
	o := sampleOrder("A1", created)
	if err := svc.Add(&o); err != nil {
		t.Fatalf("add: %v", err)
	}

	edited := sampleOrder("A1", time.Now())
	edited.CustomerName = "Marie Curie"
	edited.Items = []models.OrderItem{{Name: "Burger Classic", Quantity: 1, UnitPrice: 8.5}}
	edited.TotalPrice = 8.5
	if err := svc.UpdateDetails(&edited); err != nil {
		t.Fatalf("update details: %v", err)
	}

	got, err := svc.Get("A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CustomerName != "Marie Curie" {
		t.Fatalf("name = %q", got.CustomerName)
	}
	if len(got.Items) != 1 || got.Items[0].Name != "Burger Classic" {
		t.Fatalf("items not replaced: %+v", got.Items)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created at changed: %v != %v", got.CreatedAt, created)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	o := sampleOrder("A1", time.Now())
	if err := svc.Add(&o); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.Delete("missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	all, err := svc.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1", len(all))
	}
}

func TestScheduledDeleteCommitsAfterDelay(t *testing.T) {
	db := setupTestDB(t)
	n := &recordingNotifier{}
	svc := NewOrderService(db, n)

	o := sampleOrder("A1", time.Now())
	if err := svc.Add(&o); err != nil {
		t.Fatalf("add: %v", err)
	}
	svc.ScheduleDelete("A1", 20*time.Millisecond)

	// Still present until the timer fires.
	if _, err := svc.Get("A1"); err != nil {
		t.Fatalf("deleted too early: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := svc.Get("A1"); errors.Is(err, ErrOrderNotFound) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("order still present after scheduled delete")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !n.has("order_deleted") {
		t.Fatal("expected order_deleted notification")
	}
}

func TestCancelDeleteKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	o := sampleOrder("A1", time.Now())
	if err := svc.Add(&o); err != nil {
		t.Fatalf("add: %v", err)
	}
	svc.ScheduleDelete("A1", 30*time.Millisecond)
	if !svc.CancelDelete("A1") {
		t.Fatal("cancel returned false for a pending delete")
	}
	time.Sleep(80 * time.Millisecond)
	if _, err := svc.Get("A1"); err != nil {
		t.Fatalf("order deleted despite cancel: %v", err)
	}
	if svc.CancelDelete("A1") {
		t.Fatal("second cancel should return false")
	}
}

func TestActiveExcludesClosedOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	statuses := map[string]string{
		"A1": models.StatusNouveau,
		"B2": models.StatusEnCours,
		"C3": models.StatusTermine,
		"D4": models.StatusAnnule,
	}
	for id, st := range statuses {
		o := sampleOrder(id, time.Now())
		o.Status = st
		if err := svc.Add(&o); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active len = %d, want 2", len(active))
	}
	history, err := svc.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history len = %d, want 2", len(history))
	}
	for _, o := range history {
		if o.IsActive() {
			t.Fatalf("active order %s in history", o.ID)
		}
	}
}

func TestClientHistoryMatchesPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService(db, nil)

	a := sampleOrder("A1", time.Now())
	a.PhoneNumber = "06 12 34 56 78"
	b := sampleOrder("B2", time.Now())
	b.PhoneNumber = "07 00 00 00 00"
	for _, o := range []models.Order{a, b} {
		o := o
		if err := svc.Add(&o); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	got, err := svc.ClientHistory("06 12 34 56 78")
	if err != nil {
		t.Fatalf("client history: %v", err)
	}
	if len(got) != 1 || got[0].ID != "A1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
