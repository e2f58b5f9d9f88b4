package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

// SettingsService manages the single settings record: get-or-default reads
// and partial-merge writes.
type SettingsService struct{ DB *gorm.DB }

func NewSettingsService(db *gorm.DB) *SettingsService { return &SettingsService{DB: db} }

// SettingsPatch carries a partial update; nil fields keep their current value.
type SettingsPatch struct {
	RestaurantName *string `json:"restaurantName"`
	PrimaryColor   *string `json:"primaryColor"`
	CustomColor    *string `json:"customColor"`
	Logo           *string `json:"logo"`
	ClearLogo      bool    `json:"clearLogo"`
	LogoSize       *int    `json:"logoSize"`
	LoyaltyTarget  *int    `json:"loyaltyTarget"`
}

// Get returns the settings record, creating the default one on first access.
func (s *SettingsService) Get() (*models.RestaurantSettings, error) {
	var st models.RestaurantSettings
	err := s.DB.First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		st = models.DefaultSettings()
		if err := s.DB.Create(&st).Error; err != nil {
			return nil, err
		}
		return &st, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Update merges the patch into the current record and persists the result.
func (s *SettingsService) Update(p SettingsPatch) (*models.RestaurantSettings, error) {
	st, err := s.Get()
	if err != nil {
		return nil, err
	}
	if p.RestaurantName != nil {
		st.RestaurantName = *p.RestaurantName
	}
	if p.PrimaryColor != nil {
		st.PrimaryColor = *p.PrimaryColor
	}
	if p.CustomColor != nil {
		st.CustomColor = *p.CustomColor
	}
	if p.ClearLogo {
		st.Logo = nil
	} else if p.Logo != nil {
		st.Logo = p.Logo
	}
	if p.LogoSize != nil && *p.LogoSize > 0 {
		st.LogoSize = *p.LogoSize
	}
	if p.LoyaltyTarget != nil {
		// orders-per-star, never below 1
		t := *p.LoyaltyTarget
		if t < 1 {
			t = 1
		}
		st.LoyaltyTarget = t
	}
	if err := s.DB.Save(st).Error; err != nil {
		return nil, err
	}
	return st, nil
}
