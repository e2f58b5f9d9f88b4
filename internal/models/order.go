package models

import (
	"strings"
	"time"
)

// Order statuses. nouveau and en_cours are active; termine and annule are
// terminal and move the order into the history view.
const (
	StatusNouveau = "nouveau"
	StatusEnCours = "en_cours"
	StatusTermine = "termine"
	StatusAnnule  = "annule"
)

// Order types. livraison requires a phone number and a delivery address.
const (
	TypeEmporter  = "emporter"
	TypeLivraison = "livraison"
	TypeSurPlace  = "sur_place"
)

var frenchMonths = [...]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}

// Order is a customer transaction. Items are snapshot copies taken at order
// time: they carry their own name and unit price and never reference the
// product catalog, so renaming or deleting a product leaves history intact.
type Order struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	CustomerName string      `gorm:"not null" json:"customerName"`
	PhoneNumber  string      `gorm:"index" json:"phoneNumber"` // de-facto customer identity key
	Address      string      `json:"address,omitempty"`        // livraison uniquement
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	// TotalPrice is stored as entered, not derived from the items.
	TotalPrice float64   `gorm:"not null" json:"totalPrice"`
	Status     string    `gorm:"not null;index" json:"status"`
	Type       string    `gorm:"not null" json:"type"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	OrderID  string `gorm:"not null;index;size:36" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Quantity int    `gorm:"not null" json:"quantity"`
	// UnitPrice is the price at order time (snapshot, see Order.Items).
	UnitPrice float64 `gorm:"not null" json:"price"`
}

// IsActive reports whether the order still belongs on the dashboard.
func (o *Order) IsActive() bool {
	return o.Status != StatusTermine && o.Status != StatusAnnule
}

// Timestamp renders the creation instant as the "HH:MM" display string the
// dashboard shows. Display only, never used as a sort key.
func (o *Order) Timestamp() string {
	return o.CreatedAt.Format("15:04")
}

// DateLabel renders the creation date in short French form
// ("18 janv. 2026"). Display only.
func (o *Order) DateLabel() string {
	return strings.Join([]string{
		o.CreatedAt.Format("2"),
		frenchMonths[o.CreatedAt.Month()-1],
		o.CreatedAt.Format("2006"),
	}, " ")
}

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusNouveau, StatusEnCours, StatusTermine, StatusAnnule:
		return true
	}
	return false
}

// ValidType reports whether t is one of the three known order types.
func ValidType(t string) bool {
	switch t {
	case TypeEmporter, TypeLivraison, TypeSurPlace:
		return true
	}
	return false
}
