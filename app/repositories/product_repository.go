package repositories

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/orm"
)

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Available returns every product currently offered, name order.
func (r *ProductRepository) Available() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("available = ?", true).
		Order("name ASC").
		Get(&products)
	return products, err
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// Save persists changes to an existing product.
func (r *ProductRepository) Save(product *models.Product) error {
	return orm.DB().Save(product)
}
