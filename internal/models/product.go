package models

import "time"

// Product is a menu entry. Its lifecycle is independent from orders: order
// items are snapshots, so deleting a product does not touch history.
type Product struct {
	ID        string  `gorm:"primaryKey;size:36" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Category  string  `gorm:"not null;index" json:"category"` // ex: Burgers, Tacos, Boissons
	Price     float64 `gorm:"not null" json:"price"`
	Available bool    `gorm:"not null;default:true" json:"available"`
	Image     string  `json:"image"`              // data URI ou chemin
	ImageFit  string  `json:"imageFit,omitempty"` // cover | contain
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
