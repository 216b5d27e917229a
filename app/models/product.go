package models

import "gorm.io/gorm"

// Product is a menu item offered by a shop.
type Product struct {
	gorm.Model
	ShopID      uint    `gorm:"not null;index" json:"shop_id"`
	Name        string  `gorm:"size:255;not null;index" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Available   bool    `gorm:"not null;default:true" json:"available"`
	ImageURL    string  `gorm:"size:500" json:"image_url,omitempty"`
}
