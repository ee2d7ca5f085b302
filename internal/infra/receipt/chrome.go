package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/errors"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	defaultPrintTimeout = 30 * time.Second
	// US Letter in inches.
	paperWidth  = 8.5
	paperHeight = 11.0
	margin      = 0.4
)

// chromePrinter prints HTML through a shared Chrome allocator, launching a local
// browser or attaching to a remote one.
type chromePrinter struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      *slog.Logger
}

func newChromePrinter(cfg *config.ReceiptConfig, logger *slog.Logger) *chromePrinter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultPrintTimeout
	}

	p := &chromePrinter{timeout: timeout, logger: logger}

	if cfg.RemoteURL != "" {
		p.allocCtx, p.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)

		return p
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	p.allocCtx, p.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)

	return p
}

func (p *chromePrinter) PrintHTML(ctx context.Context, html string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	tabCtx, tabCancel := chromedp.NewContext(p.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			p.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()

	// Tie the tab to the request deadline.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}

			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data

			return nil
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrapf(ctx.Err(), "receipt printing aborted after %v", p.timeout)
		}

		return nil, errors.Wrap(err, "chromedp print failed")
	}
	if len(pdf) == 0 {
		return nil, errors.New("chrome produced an empty PDF")
	}

	return pdf, nil
}

// Close shuts the allocator down, killing a locally launched browser.
func (p *chromePrinter) Close() {
	if p.allocCancel != nil {
		p.allocCancel()
	}
}
