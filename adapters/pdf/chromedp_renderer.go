package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-studio/internal/application/service"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69

	defaultTimeout = 30 * time.Second
)

type chromedpRenderer struct {
	execPath  string
	remoteURL string
	timeout   time.Duration
	log       logger.Logger
}

// NewChromedpRenderer prints through a local headless Chrome, or through a
// remote one when renderer.remote_url is set.
func NewChromedpRenderer(cfg config.Config, log logger.Logger) service.PDFRenderer {
	timeout := cfg.Renderer.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &chromedpRenderer{
		execPath:  cfg.Renderer.ChromePath,
		remoteURL: cfg.Renderer.RemoteURL,
		timeout:   timeout,
		log:       log,
	}
}

func (r *chromedpRenderer) allocator(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.remoteURL != "" {
		return chromedp.NewRemoteAllocator(ctx, r.remoteURL)
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	return chromedp.NewExecAllocator(ctx, opts...)
}

// load returns the actions that put html into the page. A local browser
// reads it from a temp file; a remote one cannot, so the document content is
// set directly.
func (r *chromedpRenderer) load(html []byte) (chromedp.Tasks, func(), error) {
	if r.remoteURL != "" {
		return chromedp.Tasks{
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				tree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
			}),
		}, func() {}, nil
	}

	tmpDir, err := os.MkdirTemp("", "cv-render-")
	if err != nil {
		return nil, nil, fmt.Errorf("create render dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }
	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("write render input: %w", err)
	}
	return chromedp.Tasks{chromedp.Navigate("file://" + htmlPath)}, cleanup, nil
}

func (r *chromedpRenderer) PrintPDF(ctx context.Context, html []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	load, cleanup, err := r.load(html)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	allocCtx, cancelAlloc := r.allocator(ctx)
	defer cancelAlloc()
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(taskCtx,
		load,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	r.log.Debug("PDF printed", zap.Int("bytes", len(pdfBuf)), zap.Duration("took", time.Since(start)))
	return pdfBuf, nil
}
