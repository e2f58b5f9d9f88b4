package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService manages the catalog.
type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService { return &ProductService{DB: db} }

// All returns the catalog ordered by category then name. A non-empty query
// filters case-insensitively on the product name.
func (s *ProductService) All(query string) ([]models.Product, error) {
	var products []models.Product
	q := s.DB.Order("category asc, name asc")
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *ProductService) Get(id string) (*models.Product, error) {
	var p models.Product
	if err := s.DB.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Create(p *models.Product) error {
	return s.DB.Create(p).Error
}

func (s *ProductService) Update(p *models.Product) error {
	res := s.DB.Model(&models.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":      p.Name,
		"category":  p.Category,
		"price":     p.Price,
		"available": p.Available,
		"image":     p.Image,
		"image_fit": p.ImageFit,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) Delete(id string) error {
	return s.DB.Delete(&models.Product{}, "id = ?", id).Error
}

// ToggleAvailability flips the available flag and returns the updated product.
func (s *ProductService) ToggleAvailability(id string) (*models.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	p.Available = !p.Available
	if err := s.DB.Model(p).Update("available", p.Available).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// UnavailableCount counts catalog entries currently switched off.
func (s *ProductService) UnavailableCount() (int64, error) {
	var n int64
	err := s.DB.Model(&models.Product{}).Where("available = ?", false).Count(&n).Error
	return n, err
}
