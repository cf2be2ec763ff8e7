package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-pwa/internal/conformance"
)

var (
	flagConfURL         string
	flagConfSelfHost    bool
	flagConfProfiles    []string
	flagConfScreenshots string
	flagConfBrowser     string
	flagConfHeadful     bool
	flagConfNoSandbox   bool
	flagConfTimeout     time.Duration
)

var conformanceCmd = &cobra.Command{
	Use:   "conformance",
	Short: "Check the web app in a real browser",
	Long: `Open the web app in headless Chromium as a desktop and a mobile
browser, check the page contract and play a short scenario in each.
Exits non-zero if any check fails.

Examples:
  tetris conformance --url http://localhost:8080
  tetris conformance --self-host
  tetris conformance --self-host --profile mobile --screenshots ./shots`,
	Args: cobra.NoArgs,
	RunE: runConformance,
}

func init() {
	f := conformanceCmd.Flags()
	f.StringVar(&flagConfURL, "url", "", "Base URL of a running server")
	f.BoolVar(&flagConfSelfHost, "self-host", false, "Start a server on a random local port and test it")
	f.StringSliceVar(&flagConfProfiles, "profile", nil, "Profiles to run: desktop, mobile (default both)")
	f.StringVar(&flagConfScreenshots, "screenshots", "", "Directory for screenshots of failed checks")
	f.StringVar(&flagConfBrowser, "browser", "", "Chromium executable (downloaded when empty)")
	f.BoolVar(&flagConfHeadful, "headful", false, "Show the browser window")
	f.BoolVar(&flagConfNoSandbox, "no-sandbox", false, "Disable the Chromium sandbox")
	f.DurationVar(&flagConfTimeout, "timeout", time.Minute, "Time limit per profile")
	conformanceCmd.MarkFlagsMutuallyExclusive("url", "self-host")
}

func runConformance(_ *cobra.Command, _ []string) error {
	if flagConfURL == "" && !flagConfSelfHost {
		return errors.New("pass --url or --self-host")
	}

	var profiles []conformance.Profile
	for _, name := range flagConfProfiles {
		p, ok := conformance.ProfileByName(name)
		if !ok {
			return fmt.Errorf("unknown profile %q (want desktop or mobile)", name)
		}
		profiles = append(profiles, p)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger("tetris-conformance")
	url := flagConfURL
	if flagConfSelfHost {
		u, stopServer, err := conformance.SelfHost(ctx, logger)
		if err != nil {
			return err
		}
		defer stopServer()
		url = u
	}

	report, err := conformance.Run(ctx, conformance.Options{
		URL:         url,
		Profiles:    profiles,
		Bin:         flagConfBrowser,
		Headful:     flagConfHeadful,
		NoSandbox:   flagConfNoSandbox,
		Screenshots: flagConfScreenshots,
		Timeout:     flagConfTimeout,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	if err := report.Write(os.Stdout); err != nil {
		return err
	}
	if !report.Passed() {
		return fmt.Errorf("%d check(s) failed", len(report.Failures()))
	}
	return nil
}
