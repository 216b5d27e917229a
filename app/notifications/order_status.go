package notifications

import (
	"fmt"

	"github.com/ucqdev/cuahquick/app/models"
	"github.com/ucqdev/cuahquick/pkg/notification"
)

var statusLines = map[string]string{
	models.StatusPreparing: "Tu pedido está en preparación.",
	models.StatusReady:     "Tu pedido está listo, pasa por él o espera la entrega.",
	models.StatusDelivered: "Tu pedido fue entregado. ¡Buen provecho!",
	models.StatusCancelled: "Tu pedido fue cancelado. Pasa a la cafetería si tienes dudas.",
}

// OrderStatusChanged mails the owning client when the shop moves their
// order through the queue.
type OrderStatusChanged struct {
	Order models.Order
}

func (n OrderStatusChanged) Via() []string { return []string{"mail"} }

func (n OrderStatusChanged) ToMail() notification.MailData {
	line, ok := statusLines[n.Order.Status]
	if !ok {
		line = "El estado de tu pedido cambió a: " + n.Order.Status
	}
	return notification.MailData{
		Subject: fmt.Sprintf("Pedido #%d: %s", n.Order.ID, n.Order.Status),
		Body:    fmt.Sprintf("<p>%s</p>", line),
		Text:    line,
	}
}

var _ notification.Mailable = OrderStatusChanged{}
