// Package browser fetches rendered pages from the ladder provider.
//
// The provider renders its ladder client-side, so a plain GET returns an
// empty shell. ChromeFetcher drives a headless Chrome through chromedp;
// HTTPFetcher is the swap-in strategy for environments without Chrome
// (or a future official API).
package browser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Fetcher produces an HTML snapshot of a fully rendered page.
type Fetcher interface {
	FetchRenderedPage(ctx context.Context, url string) (string, error)
}

// --------------------------------------------------------------------------
// ChromeFetcher — headless Chrome via chromedp
// --------------------------------------------------------------------------

// ContentSelector matches anything that signals the ladder has rendered:
// a plain table, a class mentioning ladder/standing, or an ARIA grid.
const ContentSelector = `table, [class*="ladder"], [class*="standing"], [role="grid"]`

// ChromeFetcher drives a sandboxed headless Chrome instance. One browser is
// launched per fetch and torn down best-effort on every exit path.
type ChromeFetcher struct {
	NavigationTimeout time.Duration // page load budget
	SelectorTimeout   time.Duration // bounded wait for a content signal
	SettleDelay       time.Duration // grace delay for client-side rendering
	Logger            *slog.Logger
}

// NewChromeFetcher returns a fetcher with the standard timing budget
// (20s navigation, 10s selector wait, 3s settle).
func NewChromeFetcher(logger *slog.Logger) *ChromeFetcher {
	return &ChromeFetcher{
		NavigationTimeout: 20 * time.Second,
		SelectorTimeout:   10 * time.Second,
		SettleDelay:       3 * time.Second,
		Logger:            logger,
	}
}

// FetchRenderedPage navigates to url and returns the rendered document HTML.
// Image, stylesheet, and font requests are aborted to cut load time; they
// do not affect the DOM the extractor reads.
func (f *ChromeFetcher) FetchRenderedPage(ctx context.Context, url string) (string, error) {
	// no-sandbox / disable-dev-shm are runtime-environment accommodations
	// for containerized deploys, not a security boundary.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	taskCtx, cancelTask := chromedp.NewContext(allocCtx)
	defer cancelTask()

	f.blockHeavyResources(taskCtx)

	// Navigation gets its own deadline; a hung provider page should not
	// consume the caller's whole budget.
	navCtx, cancelNav := context.WithTimeout(taskCtx, f.NavigationTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, fetch.Enable(), chromedp.Navigate(url)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", url, err)
	}

	// A missing content signal is logged but not fatal — extraction still
	// gets a shot at whatever did render.
	selCtx, cancelSel := context.WithTimeout(taskCtx, f.SelectorTimeout)
	if err := chromedp.Run(selCtx, chromedp.WaitVisible(ContentSelector, chromedp.ByQuery)); err != nil {
		f.Logger.Warn("No ladder content signal before timeout", "url", url, "error", err)
	}
	cancelSel()

	var html string
	var title, textSample string
	var tableCount, rowCount int
	err := chromedp.Run(taskCtx,
		chromedp.Sleep(f.SettleDelay),
		chromedp.Title(&title),
		chromedp.Evaluate(`document.querySelectorAll("table").length`, &tableCount),
		chromedp.Evaluate(`document.querySelectorAll("tr, [role='row']").length`, &rowCount),
		chromedp.Evaluate(`(document.body ? document.body.innerText : "").slice(0, 300)`, &textSample),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("read rendered page: %w", err)
	}

	f.Logger.Info("Page rendered",
		"title", title,
		"tables", tableCount,
		"rows", rowCount,
		"text_sample", textSample)

	return html, nil
}

// blockHeavyResources aborts image/stylesheet/font requests and continues
// all others.
func (f *ChromeFetcher) blockHeavyResources(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		paused, ok := ev.(*fetch.EventRequestPaused)
		if !ok {
			return
		}
		go func() {
			c := chromedp.FromContext(ctx)
			ectx := cdp.WithExecutor(ctx, c.Target)
			switch paused.ResourceType {
			case network.ResourceTypeImage, network.ResourceTypeStylesheet, network.ResourceTypeFont:
				_ = fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient).Do(ectx)
			default:
				_ = fetch.ContinueRequest(paused.RequestID).Do(ectx)
			}
		}()
	})
}

// --------------------------------------------------------------------------
// HTTPFetcher — plain GET, no rendering
// --------------------------------------------------------------------------

// HTTPFetcher fetches the raw page body over HTTP. Only useful against
// server-rendered pages; kept as a swap-in strategy and for smoke tests.
type HTTPFetcher struct {
	Client *http.Client
	Logger *slog.Logger
}

// NewHTTPFetcher returns a plain-GET fetcher with a 30s timeout.
func NewHTTPFetcher(logger *slog.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

func (f *HTTPFetcher) FetchRenderedPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	f.Logger.Info("Fetched page", "url", url, "status", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}
