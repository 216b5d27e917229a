package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/ctx"
	"github.com/ucqdev/cuahquick/pkg/storage"
)

const maxImageBytes = 5 << 20 // 5 MB

type MenuController struct {
	service *services.MenuService
}

func NewMenuController() *MenuController {
	return &MenuController{service: services.NewMenuService()}
}

// Menu handles GET /api/menu (also mounted at /api/products).
func (mc *MenuController) Menu(c *ctx.Context) {
	products, err := mc.service.Menu()
	if err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Menu.",
		"products": products,
	})
}

// UploadImage handles POST /api/shop/products/{id}/image. Multipart form
// with an "image" file field; the file lands on the configured disk and
// its URL is stored on the product.
func (mc *MenuController) UploadImage(c *ctx.Context) {
	id := c.ParamUint("id")
	if id == 0 {
		c.AppError(apperr.ErrProductNotFound)
		return
	}

	// Resolve the product before touching storage so an unknown id
	// never leaves an orphan file on the disk.
	product, err := mc.service.Find(id)
	if err != nil {
		c.AppError(err)
		return
	}

	if err := c.R.ParseMultipartForm(maxImageBytes); err != nil {
		c.Error(http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := c.R.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "Missing image file")
		return
	}
	defer file.Close()

	path := fmt.Sprintf("products/%d%s", id, filepath.Ext(header.Filename))
	if err := storage.PutStream(path, file); err != nil {
		c.AppError(err)
		return
	}

	url := storage.URL(path)
	if err := mc.service.AttachImage(product, url); err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Image uploaded.",
		"image_url": url,
	})
}
