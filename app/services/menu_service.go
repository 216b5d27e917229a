package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/pkg/cache"
	"github.com/ucqdev/cuahquick/pkg/orm"
)

const menuCacheKey = "cuahquick:menu"

// MenuService serves the public product catalog, cached in Redis since
// the menu changes far less often than it is read.
type MenuService struct {
	products *repositories.ProductRepository
}

func NewMenuService() *MenuService {
	return &MenuService{products: repositories.NewProductRepository()}
}

// Menu returns the available products, read through the cache.
func (s *MenuService) Menu() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Where("available = ?", true).
		Order("name ASC").
		Cache(menuCacheKey, config.MenuCacheTTL(), &products)
	return products, err
}

// Invalidate drops the cached menu. Called after any product mutation.
func (s *MenuService) Invalidate() {
	cache.Forget(menuCacheKey)
}

// Find looks up a single product by id.
func (s *MenuService) Find(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return product, apperr.ErrProductNotFound
	}
	return product, err
}

// AttachImage records the public URL of an uploaded product image.
func (s *MenuService) AttachImage(product models.Product, url string) error {
	product.ImageURL = url
	if err := s.products.Save(&product); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}
