package controllers

import (
	"net/http"

	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/ctx"
	"github.com/ucqdev/cuahquick/pkg/middleware"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Create handles POST /api/orders. The owner is always the
// authenticated user.
func (oc *OrderController) Create(c *ctx.Context) {
	var in services.CreateOrderInput
	if _, err := c.ShouldBindJSON(&in); err != nil {
		c.Error(http.StatusBadRequest, "Malformed JSON body")
		return
	}

	userID := middleware.UserIDFromCtx(c.Context())
	order, err := oc.service.Create(userID, in)
	if err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "Order placed.",
		"order_id": order.ID,
	})
}
