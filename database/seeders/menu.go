package seeders

import (
	"gorm.io/gorm"

	"github.com/ucqdev/cuahquick/app/models"
)

func init() {
	Register("shop", SeedShop)
	Register("menu", SeedMenu)
}

// SeedShop creates the cafeteria staff account if it does not exist.
// The default password must be rotated on first login in any real
// deployment; it exists so a fresh install is usable immediately.
func SeedShop(db *gorm.DB) error {
	shop := models.User{
		FullName: "Cafeteria UCQ",
		Email:    "cafeteria@ucq.edu.mx",
		// bcrypt("cambiame"), cost 10
		Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Phone:    "4420000000",
		Role:     models.RoleShop,
	}
	return db.Where("email = ?", shop.Email).FirstOrCreate(&shop).Error
}

// SeedMenu loads the opening menu.
func SeedMenu(db *gorm.DB) error {
	products := []models.Product{
		{ShopID: 1, Name: "Torta de pierna", Description: "Con aguacate y quesillo", Price: 45, Available: true},
		{ShopID: 1, Name: "Chilaquiles verdes", Description: "Con pollo y crema", Price: 55, Available: true},
		{ShopID: 1, Name: "Enchiladas queretanas", Description: "Orden de tres", Price: 60, Available: true},
		{ShopID: 1, Name: "Agua de horchata", Description: "Vaso 500 ml", Price: 20, Available: true},
		{ShopID: 1, Name: "Cafe de olla", Description: "Taza 350 ml", Price: 25, Available: true},
	}
	for i := range products {
		err := db.Where("name = ?", products[i].Name).FirstOrCreate(&products[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
