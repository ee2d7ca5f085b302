// Package receipt renders order receipts to PDF with headless Chrome.
package receipt

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultStoreName = "Storefront"

//go:embed receipt.html.tmpl
var receiptTemplate string

// printer turns a complete HTML document into PDF bytes.
type printer interface {
	PrintHTML(ctx context.Context, html string) ([]byte, error)
}

type receiptView struct {
	StoreName    string
	OrderNumber  string
	CustomerName string
	QRCode       template.URL
	Order        *entity.Order
}

type htmlReceiptRenderer struct {
	tmpl      *template.Template
	printer   printer
	qrcode    service.QRCodeService
	storeName string
	logger    *slog.Logger
}

// Params holds dependencies for the receipt renderer, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
	QRCode service.QRCodeService
}

// NewReceiptRenderer starts the Chrome allocator when receipts are enabled and
// releases it on shutdown.
func NewReceiptRenderer(params Params) (service.ReceiptRenderer, error) {
	cfg := params.Config.Receipt
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Receipt rendering disabled, confirmations are sent without a PDF")

		return disabledRenderer{}, nil
	}

	chrome := newChromePrinter(cfg, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			chrome.Close()

			return nil
		},
	})

	return newHTMLReceiptRenderer(chrome, params.QRCode, cfg.StoreName, params.Logger)
}

func newHTMLReceiptRenderer(p printer, qr service.QRCodeService, storeName string, logger *slog.Logger) (*htmlReceiptRenderer, error) {
	if storeName == "" {
		storeName = defaultStoreName
	}

	titleCaser := cases.Title(language.English)
	tmpl, err := template.New("receipt").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
		"title": titleCaser.String,
		"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
	}).Parse(receiptTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse receipt template")
	}

	return &htmlReceiptRenderer{
		tmpl:      tmpl,
		printer:   p,
		qrcode:    qr,
		storeName: storeName,
		logger:    logger,
	}, nil
}

// RenderReceipt prints the order receipt. A QR code failure only drops the code.
func (r *htmlReceiptRenderer) RenderReceipt(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error) {
	html, err := r.renderHTML(order, customer)
	if err != nil {
		return nil, err
	}

	pdf, err := r.printer.PrintHTML(ctx, html)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to print receipt for order %s", order.ID)
	}

	return pdf, nil
}

func (r *htmlReceiptRenderer) renderHTML(order *entity.Order, customer *entity.User) (string, error) {
	view := receiptView{
		StoreName:   r.storeName,
		OrderNumber: strings.ToUpper(order.ID.String()[:8]),
		Order:       order,
	}
	if customer != nil {
		view.CustomerName = customer.Name
	}

	if r.qrcode != nil {
		png, err := r.qrcode.GenerateOrderQR(order.ID)
		if err != nil {
			r.logger.Warn("Failed to generate receipt QR code",
				slog.String("order_id", order.ID.String()),
				slog.Any("error", err),
			)
		} else {
			view.QRCode = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", errors.Wrap(err, "failed to execute receipt template")
	}

	return buf.String(), nil
}

type disabledRenderer struct{}

func (disabledRenderer) RenderReceipt(context.Context, *entity.Order, *entity.User) ([]byte, error) {
	return nil, service.ErrReceiptUnavailable
}

// Module provides the receipt renderer.
var Module = fx.Options(
	fx.Provide(NewReceiptRenderer),
)
