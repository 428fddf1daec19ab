package sendgrid

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/strixcommerce/storefront-platform/internal/models"
)

type EmailService interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey string, fromEmail string, fromName string) EmailService {
	return &emailService{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}
}

// SendOrderConfirmation implements EmailService.
func (e *emailService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {

	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(order.CustomerName, order.CustomerEmail)

	message := mail.NewV3Mail()
	message.SetFrom(from)

	personalization := mail.NewPersonalization()
	personalization.AddTos(to)
	personalization.Subject = fmt.Sprintf("Order confirmation %s", order.ID)
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", PlainTextBody(order)))

	response, err := e.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

// PlainTextBody renders the order summary included in the confirmation
// email.
func PlainTextBody(order *models.Order) string {

	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your purchase, %s!\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Order %s\n\n", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %dx product %d (%s / %s) at %.2f\n",
			item.Quantity, item.ProductID, item.Size, item.Color, item.UnitPrice)
	}

	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", order.Subtotal)

	if order.Discount > 0 {
		fmt.Fprintf(&b, "Discount: -%.2f", order.Discount)

		if order.CouponCode != "" {
			fmt.Fprintf(&b, " (%s)", order.CouponCode)
		}

		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Shipping: %.2f\n", order.ShippingFee)
	fmt.Fprintf(&b, "Total: %.2f\n\n", order.Total)
	fmt.Fprintf(&b, "Shipping to: %s\n", order.ShippingAddress)

	return b.String()
}
