package repositories

import (
	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/orm"
)

// QueueEntry is an order row joined with the owning client's contact
// details, as presented to the shop's fulfillment queue.
type QueueEntry struct {
	models.Order
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
}

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists a new order row.
func (r *OrderRepository) Create(order *models.Order) error {
	return orm.DB().Create(order)
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Where("id = ?", id).First(&order)
	return order, err
}

// Queue returns every order still in a non-terminal state, oldest first,
// with the client's name and phone joined in.
func (r *OrderRepository) Queue() ([]QueueEntry, error) {
	var entries []QueueEntry
	err := orm.DB().
		Model(&models.Order{}).
		Select("orders.*, users.full_name AS client_name, users.phone AS client_phone").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.status IN ?", models.QueueStatuses).
		Order("orders.created_at ASC").
		Get(&entries)
	return entries, err
}

// UpdateStatus sets the status on the order with the given ID. The
// returned count is the number of rows matched (0 when the ID does not
// exist).
func (r *OrderRepository) UpdateStatus(id uint, status string) (int64, error) {
	return orm.DB().
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
}

// CountByStatus counts orders currently in the given status.
func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := orm.DB().Model(&models.Order{}).Where("status = ?", status).Count(&count)
	return count, err
}
