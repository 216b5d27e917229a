package controllers

import (
	"net/http"

	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/app/resources"
	"github.com/ucqdev/cuahquick/app/services"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/collection"
	"github.com/ucqdev/cuahquick/pkg/ctx"
	"github.com/ucqdev/cuahquick/pkg/resource"
	"github.com/ucqdev/cuahquick/pkg/ws"
)

// ShopController serves the fulfillment side: the order queue, status
// updates, and the live order feed.
type ShopController struct {
	service *services.OrderService
	feed    *ws.Hub
}

func NewShopController(feed *ws.Hub) *ShopController {
	return &ShopController{service: services.NewOrderService(), feed: feed}
}

// Queue handles GET /api/shop/orders.
func (sc *ShopController) Queue(c *ctx.Context) {
	entries, err := sc.service.Queue()
	if err != nil {
		c.AppError(err)
		return
	}

	orders := collection.Map(entries, func(e repositories.QueueEntry) resource.Map {
		return resources.QueueEntryResource{}.ToArray(e)
	})

	c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Current queue.",
		"orders":  orders,
	})
}

// UpdateStatus handles PUT /api/shop/orders/{id}.
func (sc *ShopController) UpdateStatus(c *ctx.Context) {
	id := c.ParamUint("id")
	if id == 0 {
		c.AppError(apperr.ErrOrderNotFound)
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if _, err := c.ShouldBindJSON(&in); err != nil {
		c.Error(http.StatusBadRequest, "Malformed JSON body")
		return
	}

	order, err := sc.service.UpdateStatus(id, in.Status)
	if err != nil {
		c.AppError(err)
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Status updated.",
		"order":   resources.OrderResource{}.ToArray(order),
	})
}

// Live handles GET /api/shop/orders/live, upgrading to a websocket that
// streams queue changes as they happen.
func (sc *ShopController) Live(c *ctx.Context) {
	ws.Upgrade(c.W, c.R, sc.feed)
}
