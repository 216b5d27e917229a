package resources

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/pkg/resource"
)

// OrderResource is the public view of an order.
type OrderResource struct{}

func (OrderResource) ToArray(v interface{}) resource.Map {
	order, ok := v.(models.Order)
	if !ok {
		if p, isPtr := v.(*models.Order); isPtr {
			order = *p
		}
	}

	return resource.Map{
		"id":         order.ID,
		"user_id":    order.UserID,
		"shop_id":    order.ShopID,
		"total":      order.Total,
		"status":     order.Status,
		"building":   order.Building,
		"classroom":  order.Classroom,
		"notes":      order.Notes,
		"created_at": order.CreatedAt,
	}
}

// QueueEntryResource is an order in the shop queue with the client's
// contact details alongside.
type QueueEntryResource struct{}

func (QueueEntryResource) ToArray(v interface{}) resource.Map {
	entry, ok := v.(repositories.QueueEntry)
	if !ok {
		return resource.Map{}
	}

	out := OrderResource{}.ToArray(entry.Order)
	out["client_name"] = entry.ClientName
	out["client_phone"] = entry.ClientPhone
	return out
}
