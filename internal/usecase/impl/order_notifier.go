package impl

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"os"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const (
	sideEffectConfirmation = "confirmation_email"
	sideEffectStatusEmail  = "status_email"
	sideEffectReceipt      = "receipt_pdf"
	sideEffectEvent        = "order_event"
)

var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "placed"}}<p>Hi {{.Name}},</p>
<p>Thanks for your order <strong>{{.Number}}</strong>. We are getting it ready.</p>
<p>Total charged: <strong>${{.Total}}</strong></p>
{{if .HasReceipt}}<p>Your receipt is attached.</p>{{end}}{{end}}
{{define "status"}}<p>Hi {{.Name}},</p>
<p>Your order <strong>{{.Number}}</strong> is now <strong>{{.Status}}</strong>.</p>{{end}}
`))

type orderEmailView struct {
	Name       string
	Number     string
	Total      string
	Status     entity.OrderStatus
	HasReceipt bool
}

// orderNotifier runs the best-effort side effects of committed order mutations.
// Every failure is logged and counted, never returned.
type orderNotifier struct {
	userRepo  repository.UserRepository
	mailer    service.Mailer
	receipts  service.ReceiptRenderer
	publisher service.EventPublisher
	metrics   service.BusinessMetrics
	logger    *slog.Logger
}

func (n *orderNotifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, n.logger)
}

func (n *orderNotifier) fail(ctx context.Context, kind string, order *entity.Order, err error) {
	n.metrics.SideEffectFailed(kind)
	n.log(ctx).Error("Order side effect failed",
		slog.String("kind", kind),
		slog.String("order_id", order.ID.String()),
		slog.Any("error", err),
	)
}

// orderPlaced emails the confirmation with the PDF receipt attached. The receipt
// is written to a temporary file that is always removed.
func (n *orderNotifier) orderPlaced(ctx context.Context, order *entity.Order) {
	n.publish(ctx, constants.OrderEventCreated, order)

	customer, err := n.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		n.fail(ctx, sideEffectConfirmation, order, errors.Wrap(err, "failed to load customer"))

		return
	}

	msg := &service.EmailMessage{
		To:      customer.Email,
		Subject: "Order confirmation " + orderNumber(order),
	}

	receiptPath, cleanup, err := n.writeReceipt(ctx, order, customer)
	defer cleanup()
	switch {
	case err == nil:
		msg.Attachments = []service.EmailAttachment{{
			Filename: "receipt-" + orderNumber(order) + ".pdf",
			Path:     receiptPath,
		}}
	case errors.Is(err, service.ErrReceiptUnavailable):
	default:
		n.fail(ctx, sideEffectReceipt, order, err)
	}

	body, err := renderEmail("placed", orderEmailView{
		Name:       customer.Name,
		Number:     orderNumber(order),
		Total:      order.TotalPrice.StringFixed(2),
		HasReceipt: len(msg.Attachments) > 0,
	})
	if err != nil {
		n.fail(ctx, sideEffectConfirmation, order, err)

		return
	}
	msg.HTMLBody = body

	if err := n.mailer.Send(ctx, msg); err != nil {
		n.fail(ctx, sideEffectConfirmation, order, err)

		return
	}

	n.log(ctx).Info("Order confirmation sent", slog.String("order_id", order.ID.String()))
}

// statusChanged publishes the transition and emails the customer.
func (n *orderNotifier) statusChanged(ctx context.Context, eventType string, order *entity.Order) {
	n.publish(ctx, eventType, order)

	customer, err := n.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		n.fail(ctx, sideEffectStatusEmail, order, errors.Wrap(err, "failed to load customer"))

		return
	}

	body, err := renderEmail("status", orderEmailView{
		Name:   customer.Name,
		Number: orderNumber(order),
		Status: order.Status,
	})
	if err != nil {
		n.fail(ctx, sideEffectStatusEmail, order, err)

		return
	}

	err = n.mailer.Send(ctx, &service.EmailMessage{
		To:       customer.Email,
		Subject:  "Order " + orderNumber(order) + " is " + string(order.Status),
		HTMLBody: body,
	})
	if err != nil {
		n.fail(ctx, sideEffectStatusEmail, order, err)
	}
}

func (n *orderNotifier) publish(ctx context.Context, eventType string, order *entity.Order) {
	event := &service.OrderEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		Type:       eventType,
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.StringFixed(2),
		OccurredAt: order.UpdatedAt,
	}
	if err := n.publisher.PublishOrderEvent(ctx, event); err != nil {
		n.fail(ctx, sideEffectEvent, order, err)
	}
}

// writeReceipt renders the receipt into a temporary file. cleanup is always
// safe to call, even on error.
func (n *orderNotifier) writeReceipt(ctx context.Context, order *entity.Order, customer *entity.User) (string, func(), error) {
	noop := func() {}

	pdf, err := n.receipts.RenderReceipt(ctx, order, customer)
	if err != nil {
		return "", noop, err
	}

	file, err := os.CreateTemp("", "receipt-*.pdf")
	if err != nil {
		return "", noop, errors.Wrap(err, "failed to create receipt file")
	}
	cleanup := func() {
		if err := os.Remove(file.Name()); err != nil && !os.IsNotExist(err) {
			n.log(ctx).Warn("Failed to remove receipt file", slog.String("path", file.Name()), slog.Any("error", err))
		}
	}

	if _, err := file.Write(pdf); err != nil {
		file.Close()

		return "", cleanup, errors.Wrap(err, "failed to write receipt file")
	}
	if err := file.Close(); err != nil {
		return "", cleanup, errors.Wrap(err, "failed to close receipt file")
	}

	return file.Name(), cleanup, nil
}

func renderEmail(name string, view orderEmailView) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", errors.Wrapf(err, "failed to render %s email", name)
	}

	return buf.String(), nil
}

// orderNumber is the short customer-facing order reference.
func orderNumber(order *entity.Order) string {
	return strings.ToUpper(order.ID.String()[:8])
}
