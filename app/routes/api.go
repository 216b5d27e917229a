// Package routes declares the public HTTP surface.
package routes

import (
	"github.com/ucqdev/cuahquick/app/controllers"
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/ctx"
	"github.com/ucqdev/cuahquick/pkg/middleware"
	"github.com/ucqdev/cuahquick/pkg/rbac"
	"github.com/ucqdev/cuahquick/pkg/router"
	"github.com/ucqdev/cuahquick/pkg/ws"
)

// RegisterAPI mounts every API route on r. The returned hub is the live
// order feed; callers own its lifecycle.
func RegisterAPI(r *router.Router) *ws.Hub {
	feed := ws.NewHub()
	go feed.Run()

	authController := controllers.NewAuthController()
	orderController := controllers.NewOrderController()
	shopController := controllers.NewShopController(feed)
	menuController := controllers.NewMenuController()

	api := r.Group("/api")
	api.Post("/register", "auth.register", ctx.Wrap(authController.Register))
	api.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	api.Get("/menu", "menu.index", ctx.Wrap(menuController.Menu))
	api.Get("/products", "products.index", ctx.Wrap(menuController.Menu))

	authed := api.Group("", middleware.Auth)
	authed.Post("/orders", "orders.create", ctx.Wrap(orderController.Create))

	shop := authed.Group("/shop", rbac.HasRole(models.RoleShop))
	shop.Get("/orders", "shop.orders", ctx.Wrap(shopController.Queue))
	shop.Get("/orders/live", "shop.orders.live", ctx.Wrap(shopController.Live))
	shop.Put("/orders/{id}", "shop.orders.update", ctx.Wrap(shopController.UpdateStatus))
	shop.Post("/products/{id}/image", "shop.products.image", ctx.Wrap(menuController.UploadImage))

	return feed
}
