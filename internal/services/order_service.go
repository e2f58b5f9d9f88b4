package services

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

var ErrOrderNotFound = errors.New("order_not_found")

// Notifier receives domain events for push delivery to connected dashboards.
// The websocket hub implements it; tests plug in a recorder.
type Notifier interface {
	Notify(event string, payload any)
}

// OrderService is the authoritative order store: every mutation goes through
// it and is persisted immediately. Reads return snapshot slices with items
// preloaded.
type OrderService struct {
	DB       *gorm.DB
	Notifier Notifier

	mu      sync.Mutex
	pending map[string]*time.Timer // scheduled deletions by order id
}

func NewOrderService(db *gorm.DB, n Notifier) *OrderService {
	return &OrderService{DB: db, Notifier: n, pending: make(map[string]*time.Timer)}
}

// Add persists a fully-formed order and broadcasts the new-order event (the
// dashboard's audible alert). The caller provides the id.
func (s *OrderService) Add(order *models.Order) error {
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if err := s.DB.Create(order).Error; err != nil {
		return err
	}
	if s.Notifier != nil {
		s.Notifier.Notify("new_order", order)
	}
	return nil
}

// UpdateStatus replaces the status of the matching order. Any status may move
// to any other; there is no guarded transition table.
func (s *OrderService) UpdateStatus(id, status string) error {
	res := s.DB.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateDetails replaces the whole record matching the order's id. Last
// writer wins; items are rewritten as a block.
func (s *OrderService) UpdateDetails(order *models.Order) error {
	var existing models.Order
	if err := s.DB.First(&existing, "id = ?", order.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	// keep the original creation instant: edits never reshuffle ordering
	order.CreatedAt = existing.CreatedAt
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
}

// Delete removes the order permanently. Deleting an absent id is a no-op.
func (s *OrderService) Delete(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Order{}).Error
	})
}

// ScheduleDelete arms a deletion that commits after the given delay, so the
// UI can play its exit animation and still offer an undo. A second schedule
// for the same id resets the timer.
func (s *OrderService) ScheduleDelete(id string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.pending[id]; ok {
		t.Stop()
	}
	s.pending[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, id)
		s.mu.Unlock()
		if err := s.Delete(id); err == nil && s.Notifier != nil {
			s.Notifier.Notify("order_deleted", map[string]string{"id": id})
		}
	})
}

// CancelDelete disarms a scheduled deletion. Returns false when nothing was
// pending for the id.
func (s *OrderService) CancelDelete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.pending[id]
	if ok {
		t.Stop()
		delete(s.pending, id)
	}
	return ok
}

// Get loads one order with its items.
func (s *OrderService) Get(id string) (*models.Order, error) {
	var o models.Order
	if err := s.DB.Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

// All returns every order, newest first.
func (s *OrderService) All() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").Order("created_at desc").Find(&orders).Error
	return orders, err
}

// Active returns the orders still on the dashboard (neither termine nor
// annule), newest first. Callers sort by urgency via SortByUrgency.
func (s *OrderService) Active() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("status NOT IN ?", []string{models.StatusTermine, models.StatusAnnule}).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// History returns the terminal orders (termine or annule), newest first.
func (s *OrderService) History() ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("status IN ?", []string{models.StatusTermine, models.StatusAnnule}).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

// ClientHistory returns every order placed with the given phone number,
// newest first. The phone number is the only customer identity there is.
func (s *OrderService) ClientHistory(phone string) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("Items").
		Where("phone_number = ?", phone).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}
