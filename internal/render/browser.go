// Package render provides headless-browser rendering of slide HTML into
// PNG composites.
package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/marcus/carousel-studio/internal/types"
)

// Settle delays applied after the document loads, giving web fonts and the
// background image time to arrive before capture.
const (
	PreviewSettle = 1 * time.Second
	HiresSettle   = 1500 * time.Millisecond
)

// Surface is an owned handle to a shared headless browser. The browser
// process is started lazily on first use and reused across renders; a
// mutex serializes access because concurrent jobs share one process.
type Surface struct {
	execPath string

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc
}

// NewSurface creates a Surface. execPath optionally pins the
// Chrome/Chromium binary; empty uses chromedp's default lookup.
func NewSurface(execPath string) *Surface {
	return &Surface{execPath: execPath}
}

// Render loads the HTML document in a fresh page, waits for the settle
// delay, and captures a PNG clipped to the 1080x1350 canvas at the given
// device scale factor (1 for previews, 2 for hi-res).
func (s *Surface) Render(ctx context.Context, html string, scale float64, settle time.Duration) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureBrowser(); err != nil {
		return nil, err
	}

	// One page per slide; the browsing context is reused.
	pageCtx, cancel := chromedp.NewContext(s.browserCtx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelTimeout context.CancelFunc
		pageCtx, cancelTimeout = context.WithDeadline(pageCtx, deadline)
		defer cancelTimeout()
	}

	var shot []byte
	err := chromedp.Run(pageCtx,
		emulation.SetDeviceMetricsOverride(types.CanvasWidth, types.CanvasHeight, scale, false),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Sleep(settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  types.CanvasWidth,
					Height: types.CanvasHeight,
					Scale:  scale,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	return shot, nil
}

// Healthy reports whether the underlying browser process is usable.
func (s *Surface) Healthy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.browserCtx != nil && s.browserCtx.Err() == nil
}

// Close shuts the browser process down. The surface may be reused; the
// next Render restarts the browser.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teardown()
}

// ensureBrowser lazily starts the browser, restarting it if the previous
// process died. Callers hold s.mu.
func (s *Surface) ensureBrowser() error {
	if s.browserCtx != nil && s.browserCtx.Err() == nil {
		return nil
	}
	s.teardown()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if s.execPath != "" {
		opts = append(opts, chromedp.ExecPath(s.execPath))
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	s.browserCtx, s.browserStop = chromedp.NewContext(s.allocCtx)

	// Start the process now so a broken Chrome install fails loudly here
	// instead of inside the first stage.
	if err := chromedp.Run(s.browserCtx); err != nil {
		s.teardown()
		return fmt.Errorf("failed to start headless browser: %w", err)
	}
	return nil
}

func (s *Surface) teardown() {
	if s.browserStop != nil {
		s.browserStop()
		s.browserStop = nil
		s.browserCtx = nil
	}
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCancel = nil
		s.allocCtx = nil
	}
}
