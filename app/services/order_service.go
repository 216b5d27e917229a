package services

import (
	"strconv"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/pkg/apperr"
	"github.com/ucqdev/cuahquick/pkg/event"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/metrics"
)

// CreateOrderInput is the client-facing order form. The owning user is
// taken from the token claims, never from the body.
type CreateOrderInput struct {
	ShopID    uint    `json:"shop_id"`
	Total     float64 `json:"total"`
	Building  string  `json:"building"`
	Classroom string  `json:"classroom"`
	Notes     string  `json:"notes"`
}

// StatusChange is published on the order.status_changed event.
type StatusChange struct {
	Order  models.Order
	Status string
}

// OrderService implements order placement and the shop's queue.
type OrderService struct {
	orders *repositories.OrderRepository
}

func NewOrderService() *OrderService {
	return &OrderService{orders: repositories.NewOrderRepository()}
}

// Create places a new order for userID. Status is always pending on
// insert, whatever the caller sent.
func (s *OrderService) Create(userID uint, in CreateOrderInput) (models.Order, error) {
	if in.ShopID == 0 || in.Total <= 0 || in.Building == "" || in.Classroom == "" {
		return models.Order{}, apperr.ErrMissingFields
	}

	order := models.Order{
		UserID:    userID,
		ShopID:    in.ShopID,
		Total:     in.Total,
		Status:    models.StatusPending,
		Building:  in.Building,
		Classroom: in.Classroom,
		Notes:     in.Notes,
	}
	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues(shopLabel(order.ShopID)).Inc()
	logger.L.Info("order created", "order_id", order.ID, "user_id", userID, "shop_id", order.ShopID)
	event.FireAsync("order.created", order)

	return order, nil
}

// Queue returns the shop's fulfillment queue: every non-terminal order,
// oldest first, with the client's name and phone.
func (s *OrderService) Queue() ([]repositories.QueueEntry, error) {
	return s.orders.Queue()
}

// UpdateStatus moves an order to a new status. Transitions are not
// validated against the current state, matching how the shop staff
// actually work the queue (corrections happen).
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.IsValidStatusUpdate(status) {
		return models.Order{}, apperr.ErrInvalidStatus
	}

	matched, err := s.orders.UpdateStatus(id, status)
	if err != nil {
		return models.Order{}, err
	}
	if matched == 0 {
		return models.Order{}, apperr.ErrOrderNotFound
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrderStatusChanges.WithLabelValues(status).Inc()
	logger.L.Info("order status changed", "order_id", id, "status", status)
	event.FireAsync("order.status_changed", StatusChange{Order: order, Status: status})

	return order, nil
}

// RefreshPendingGauge recounts pending orders into the metrics gauge.
// Wired as a periodic scheduler task.
func (s *OrderService) RefreshPendingGauge() {
	count, err := s.orders.CountByStatus(models.StatusPending)
	if err != nil {
		logger.L.Warn("pending order count failed", "error", err)
		return
	}
	metrics.PendingOrders.Set(float64(count))
}

func shopLabel(id uint) string {
	return "shop_" + strconv.FormatUint(uint64(id), 10)
}
