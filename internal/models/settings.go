package models

import "time"

// RestaurantSettings is a single-row table: the process-wide settings record,
// loaded at startup and patched in place.
type RestaurantSettings struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	RestaurantName string  `gorm:"not null" json:"restaurantName"`
	PrimaryColor   string  `gorm:"not null" json:"primaryColor"` // palette key or "custom"
	CustomColor    string  `json:"customColor,omitempty"`        // hex, used when PrimaryColor == "custom"
	Logo           *string `json:"logo"`                         // data URI, nil when unset
	LogoSize       int     `gorm:"not null;default:40" json:"logoSize"`
	// LoyaltyTarget is the number of orders needed to earn one loyalty star.
	LoyaltyTarget int       `gorm:"not null;default:10" json:"loyaltyTarget"`
	UpdatedAt     time.Time `json:"-"`
}

// Theme is one entry of the fixed color palette.
type Theme struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ColorThemes is the fixed palette offered by the settings page. "custom"
// takes its hex from RestaurantSettings.CustomColor.
var ColorThemes = map[string]Theme{
	"blue":   {Name: "Océan (Défaut)", Hex: "#2563eb"},
	"purple": {Name: "Néon Purple", Hex: "#9333ea"},
	"orange": {Name: "Sunset Orange", Hex: "#f97316"},
	"green":  {Name: "Fresh Green", Hex: "#10b981"},
	"black":  {Name: "Luxe Black", Hex: "#0f172a"},
	"custom": {Name: "Personnalisé", Hex: ""},
}

// DefaultSettings mirrors the initial record the application ships with.
func DefaultSettings() RestaurantSettings {
	return RestaurantSettings{
		RestaurantName: "Snack Manager",
		PrimaryColor:   "blue",
		CustomColor:    "#2563eb",
		Logo:           nil,
		LogoSize:       40,
		LoyaltyTarget:  10,
	}
}

// CurrentTheme resolves the active theme from the palette, falling back to
// blue for unknown keys.
func (s *RestaurantSettings) CurrentTheme() Theme {
	if s.PrimaryColor == "custom" {
		hex := s.CustomColor
		if hex == "" {
			hex = "#000000"
		}
		return Theme{Name: ColorThemes["custom"].Name, Hex: hex}
	}
	if t, ok := ColorThemes[s.PrimaryColor]; ok {
		return t
	}
	return ColorThemes["blue"]
}
