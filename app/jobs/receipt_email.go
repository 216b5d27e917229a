// Package jobs holds the background jobs dispatched through the queue.
package jobs

import (
	"fmt"

	"github.com/ucqdev/cuahquick/app/repositories"
	"github.com/ucqdev/cuahquick/pkg/mail"
	"github.com/ucqdev/cuahquick/pkg/queue"
)

// ReceiptEmail sends the order confirmation to the client. Dispatched
// asynchronously from the order.created event so placing an order never
// waits on SMTP.
type ReceiptEmail struct {
	OrderID uint `json:"order_id"`
}

// RegisterAll registers every job type with the queue. Called once at boot
// before workers start.
func RegisterAll() {
	queue.Register("ReceiptEmail", func() queue.Job { return &ReceiptEmail{} })
}

func (j *ReceiptEmail) Handle() error {
	orders := repositories.NewOrderRepository()
	users := repositories.NewUserRepository()

	order, err := orders.FindByID(j.OrderID)
	if err != nil {
		return fmt.Errorf("receipt email: load order %d: %w", j.OrderID, err)
	}
	user, err := users.FindByID(order.UserID)
	if err != nil {
		return fmt.Errorf("receipt email: load user %d: %w", order.UserID, err)
	}

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Recibimos tu pedido #%d por $%.2f.</p><p>Entrega: edificio %s, salón %s.</p>",
		user.FullName, order.ID, order.Total, order.Building, order.Classroom,
	)

	return mail.To(user.Email).
		Subject(fmt.Sprintf("Pedido #%d recibido", order.ID)).
		Body(body).
		Send()
}

var _ queue.Job = (*ReceiptEmail)(nil)
