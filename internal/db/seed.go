package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/snack-manager/internal/models"
)

// Seed fills an empty database with the demo dataset the product ships with:
// a handful of active and historical orders, the demo menu, and the default
// settings record. Each block is guarded by a count so re-running is a no-op.
func Seed(db *gorm.DB) {
	seedSettings(db)
	seedProducts(db)
	seedOrders(db)
}

func seedSettings(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.RestaurantSettings{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	s := models.DefaultSettings()
	db.Create(&s)
}

func seedProducts(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	demo := []models.Product{
		{ID: "1", Name: "Cheese Burger", Category: "Burgers", Price: 8.50, Available: true, Image: "/products/burger.png", ImageFit: "cover"},
		{ID: "2", Name: "Tacos L", Category: "Tacos", Price: 7.00, Available: true, Image: "/products/tacos.png", ImageFit: "cover"},
		{ID: "3", Name: "Naan Fromage", Category: "Naan", Price: 4.50, Available: false, Image: "/products/naan.png"},
		{ID: "4", Name: "Riz Poulet Curry", Category: "Riz", Price: 10.50, Available: true, Image: "/products/rice.png"},
		{ID: "5", Name: "Coca-Cola", Category: "Boissons", Price: 2.50, Available: true, Image: "/products/coke.png"},
	}
	db.Create(&demo)
}

func seedOrders(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	now := time.Now()
	day := 24 * time.Hour

	orders := []models.Order{
		// Active orders (dashboard)
		{
			ID: "105", CustomerName: "Thomas Martin", PhoneNumber: "06 11 22 33 44",
			Items: []models.OrderItem{
				{Name: "Menu Burger Double", Quantity: 2, UnitPrice: 11.50},
				{Name: "Nuggets x6", Quantity: 1, UnitPrice: 5.50},
			},
			TotalPrice: 28.50, Status: models.StatusNouveau, Type: models.TypeLivraison,
			Address: "12 rue des Lilas", CreatedAt: now.Add(-5 * time.Minute),
		},
		{
			ID: "104", CustomerName: "Sarah Connor", PhoneNumber: "06 99 88 77 66",
			Items: []models.OrderItem{
				{Name: "Tacos 3 Viandes", Quantity: 1, UnitPrice: 10.50},
				{Name: "Tiramisu", Quantity: 1, UnitPrice: 4.50},
			},
			TotalPrice: 15.00, Status: models.StatusEnCours, Type: models.TypeEmporter,
			CreatedAt: now.Add(-12 * time.Minute),
		},
		{
			ID: "103", CustomerName: "Lucas Dubreuil", PhoneNumber: "07 55 44 33 22",
			Items: []models.OrderItem{
				{Name: "Pizza 4 Fromages", Quantity: 1, UnitPrice: 12.00},
				{Name: "Coca-Cola 1.5L", Quantity: 1, UnitPrice: 4.50},
			},
			TotalPrice: 16.50, Status: models.StatusNouveau, Type: models.TypeEmporter,
			CreatedAt: now.Add(-18 * time.Minute),
		},
		// History
		{
			ID: "102", CustomerName: "Marie Lemoine", PhoneNumber: "07 88 99 00 11",
			Items: []models.OrderItem{
				{Name: "Tacos XL", Quantity: 1, UnitPrice: 9.50},
				{Name: "Coca-Cola", Quantity: 1, UnitPrice: 2.50},
			},
			TotalPrice: 12.00, Status: models.StatusTermine, Type: models.TypeLivraison,
			Address: "4 avenue Victor Hugo", CreatedAt: now.Add(-45 * time.Minute),
		},
		{
			ID: "101", CustomerName: "Jean Dupont", PhoneNumber: "06 12 34 56 78",
			Items: []models.OrderItem{
				{Name: "Burger Classic", Quantity: 2, UnitPrice: 10.50},
				{Name: "Frites", Quantity: 1, UnitPrice: 3.50},
			},
			TotalPrice: 24.50, Status: models.StatusTermine, Type: models.TypeEmporter,
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID: "99", CustomerName: "Sophie Morel", PhoneNumber: "06 55 11 22 33",
			Items: []models.OrderItem{
				{Name: "Salade César", Quantity: 1, UnitPrice: 8.50},
				{Name: "Eau Minérale", Quantity: 1, UnitPrice: 2.00},
			},
			TotalPrice: 10.50, Status: models.StatusTermine, Type: models.TypeEmporter,
			CreatedAt: now.Add(-day).Add(-2 * time.Hour),
		},
		{
			ID: "98", CustomerName: "Jean Dupont", PhoneNumber: "06 12 34 56 78",
			Items:      []models.OrderItem{{Name: "Pizza Regina", Quantity: 1, UnitPrice: 14.00}},
			TotalPrice: 14.00, Status: models.StatusTermine, Type: models.TypeLivraison,
			Address: "8 rue de la Paix", CreatedAt: now.Add(-2 * day),
		},
		{
			ID: "97", CustomerName: "Pierre Durand", PhoneNumber: "07 44 55 66 77",
			Items: []models.OrderItem{
				{Name: "Burger Enfant", Quantity: 1, UnitPrice: 6.00},
				{Name: "Capri-Sun", Quantity: 1, UnitPrice: 2.00},
			},
			TotalPrice: 8.00, Status: models.StatusAnnule, Type: models.TypeEmporter,
			CreatedAt: now.Add(-2 * day).Add(-90 * time.Minute),
		},
		{
			ID: "96", CustomerName: "Jean Dupont", PhoneNumber: "06 12 34 56 78",
			Items:      []models.OrderItem{{Name: "Tacos L", Quantity: 2, UnitPrice: 10.00}},
			TotalPrice: 20.00, Status: models.StatusTermine, Type: models.TypeEmporter,
			CreatedAt: now.Add(-8 * day),
		},
	}

	// Loyal customer block: enough completed orders to earn stars.
	for i := 0; i < 25; i++ {
		orders = append(orders, models.Order{
			ID: fmt.Sprintf("loyal-%d", i), CustomerName: "Sophie Martin", PhoneNumber: "06 00 00 00 00",
			Items:      []models.OrderItem{{Name: "Menu complet", Quantity: 1, UnitPrice: 15.00}},
			TotalPrice: 15.00, Status: models.StatusTermine, Type: models.TypeEmporter,
			CreatedAt: now.Add(-3 * day).Add(time.Duration(i) * time.Minute),
		})
	}

	for i := range orders {
		db.Create(&orders[i])
	}
}
