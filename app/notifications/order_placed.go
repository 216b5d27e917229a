// Package notifications holds the outbound notifications fired on domain
// events.
package notifications

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/pkg/notification"
)

// OrderPlaced pings the shop's webhook when a new order lands, so the
// counter display updates even when nobody has the live feed open.
type OrderPlaced struct {
	Order models.Order
}

func (n OrderPlaced) Via() []string { return []string{"webhook"} }

func (n OrderPlaced) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: config.ShopWebhook(),
		Payload: map[string]interface{}{
			"event":     "order.created",
			"order_id":  n.Order.ID,
			"shop_id":   n.Order.ShopID,
			"total":     n.Order.Total,
			"building":  n.Order.Building,
			"classroom": n.Order.Classroom,
		},
	}
}

var _ notification.Webhookable = OrderPlaced{}
