// Package notification provides a multi-channel notification system.
//
// Define a Notification:
//
//	type OrderPlaced struct { Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{"mail", "webhook"} }
//	func (n *OrderPlaced) ToMail() notification.MailData { ... }
//	func (n *OrderPlaced) ToWebhook() notification.WebhookData { ... }
//
// Send:
//
//	notification.SendAsync(user.Email, &OrderPlaced{Order: order})
package notification

import (
	"fmt"
	"time"

	httpclient "github.com/ucqdev/cuahquick/pkg/http"
	"github.com/ucqdev/cuahquick/pkg/logger"
	"github.com/ucqdev/cuahquick/pkg/mail"
)

// MailData carries the data needed to send an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// WebhookData carries an arbitrary JSON payload to POST to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// Notification is the interface every notification must satisfy.
type Notification interface {
	// Via returns the list of channel names: "mail", "webhook".
	Via() []string
}

// Mailable can be implemented to support the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Webhookable can be implemented to support the webhook channel.
type Webhookable interface {
	ToWebhook() WebhookData
}

// Send dispatches the notification through all channels returned by Via().
// address is typically an email address used for the mail channel.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := dispatch(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches the notification in a background goroutine.
func SendAsync(address string, n Notification) {
	go func() {
		if errs := Send(address, n); len(errs) > 0 {
			for _, e := range errs {
				logger.Error("notification: async error", "error", e)
			}
		}
	}()
}

func dispatch(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "webhook":
		wh, ok := n.(Webhookable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Webhookable", n)
		}
		return sendWebhook(wh.ToWebhook())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}

	body := d.Body
	if body == "" {
		body = d.Text
	}

	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

func sendWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	req := httpclient.Post(d.URL).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Retry(3, time.Second)
	for k, v := range d.Headers {
		req.Header(k, v)
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
