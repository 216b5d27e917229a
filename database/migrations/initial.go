package migrations

import (
	"gorm.io/gorm"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/migration"
)

func init() {
	migration.Register("20260815000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260815000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260815000002_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}
