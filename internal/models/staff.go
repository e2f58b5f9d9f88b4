package models

import "time"

// StaffMember is a server who can open the dashboard with a personal access
// code. The code is stored bcrypt-hashed; it is only ever compared, never
// displayed back.
type StaffMember struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CodeHash  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
}
