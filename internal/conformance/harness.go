// Package conformance drives the PWA in a real browser and checks the
// DOM contract and the desktop and mobile play scenarios against it.
package conformance

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tetris-pwa/internal/platform/web"
)

// ErrNoURL is returned when neither a URL nor self-hosting was requested.
var ErrNoURL = errors.New("conformance: no base URL")

// Options configures a run.
type Options struct {
	// URL is the page under test, e.g. http://localhost:8080/.
	URL string

	// Profiles to run; DefaultProfiles when empty.
	Profiles []Profile

	// Bin is the browser executable. Empty lets the launcher find or
	// download one.
	Bin string

	// Headful shows the browser window.
	Headful bool

	// NoSandbox disables the Chromium sandbox, needed when running as root
	// inside containers.
	NoSandbox bool

	// Screenshots is a directory that receives a PNG for every failed check.
	Screenshots string

	// Timeout bounds one profile, navigation included.
	Timeout time.Duration

	Logger *log.Logger
}

// Run launches a browser, runs every profile concurrently in its own
// incognito context and returns the combined report. Failed checks are
// reported, not returned; the error is for runs that could not happen.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.URL == "" {
		return nil, ErrNoURL
	}
	if _, err := url.Parse(opts.URL); err != nil {
		return nil, fmt.Errorf("conformance: bad url: %w", err)
	}
	if len(opts.Profiles) == 0 {
		opts.Profiles = DefaultProfiles()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Screenshots != "" {
		if err := os.MkdirAll(opts.Screenshots, 0o755); err != nil {
			return nil, fmt.Errorf("conformance: screenshots dir: %w", err)
		}
	}

	l := launcher.New().Context(ctx).Headless(!opts.Headful).NoSandbox(opts.NoSandbox)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("conformance: launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("conformance: connect to browser: %w", err)
	}
	defer browser.Close() //nolint:errcheck // the launcher cleanup kills it anyway

	report := &Report{URL: opts.URL, Started: time.Now()}
	results := make([][]Check, len(opts.Profiles))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range opts.Profiles {
		g.Go(func() error {
			checks, err := runProfile(gctx, browser, p, opts)
			if err != nil {
				return fmt.Errorf("conformance: %s: %w", p.Name, err)
			}
			results[i] = checks
			passed := 0
			for _, c := range checks {
				if c.Pass {
					passed++
				}
			}
			opts.Logger.Info("profile finished", "profile", p.Name, "passed", passed, "failed", len(checks)-passed)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, checks := range results {
		report.Checks = append(report.Checks, checks...)
	}
	report.Elapsed = time.Since(report.Started)
	return report, nil
}

// runProfile opens a fresh page for p, loads the app and runs the checks.
func runProfile(ctx context.Context, browser *rod.Browser, p Profile, opts Options) ([]Check, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	defer incognito.Close() //nolint:errcheck // closing the context also closes its pages

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	page = page.Context(ctx)

	if err := p.emulate(page); err != nil {
		return nil, fmt.Errorf("emulate: %w", err)
	}

	r := &run{
		page:        page,
		profile:     p,
		screenshots: opts.Screenshots,
		logger:      opts.Logger,
	}
	wait := page.EachEvent(func(e *proto.RuntimeExceptionThrown) {
		r.pageError(describeException(e))
	})
	go wait()

	if err := page.Navigate(opts.URL); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	if err := page.WaitIdle(idleWait); err != nil {
		opts.Logger.Debug("page did not go idle", "profile", p.Name, "error", err)
	}

	if err := r.runAll(); err != nil {
		return r.checks, err
	}
	return r.checks, nil
}

func describeException(e *proto.RuntimeExceptionThrown) string {
	d := e.ExceptionDetails
	if d == nil {
		return "unknown exception"
	}
	msg := d.Text
	if d.Exception != nil && d.Exception.Description != "" {
		msg = d.Exception.Description
	}
	if d.URL != "" {
		msg = fmt.Sprintf("%s (%s:%d)", msg, d.URL, d.LineNumber+1)
	}
	return msg
}

// SelfHost starts the web server on a random loopback port and returns
// its URL. stop shuts it down and waits for it.
func SelfHost(ctx context.Context, logger *log.Logger) (baseURL string, stop func(), err error) {
	if logger == nil {
		logger = log.Default()
	}
	srv, err := web.NewServer(web.Options{Logger: logger})
	if err != nil {
		return "", nil, fmt.Errorf("conformance: self-host: %w", err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("conformance: self-host: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Serve(ctx, ln); err != nil {
			logger.Warn("self-hosted server stopped", "error", err)
		}
	}()

	stop = func() {
		cancel()
		wg.Wait()
	}
	return "http://" + ln.Addr().String() + "/", stop, nil
}
