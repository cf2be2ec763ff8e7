package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tetris-pwa/internal/config"
	"github.com/vovakirdan/tetris-pwa/internal/platform/tui"
	"github.com/vovakirdan/tetris-pwa/internal/platform/web"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

var (
	flagHTTPAddr    string
	flagSSHAddr     string
	flagHostKey     string
	flagRecordDir   string
	flagPublicURL   string
	flagIdleTimeout time.Duration
	flagWatchConfig bool
	flagQR          bool
	flagEnvFiles    []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web app, optionally with SSH play",
	Long: `Serve the installable web app over HTTP. Every browser tab gets its own
game on the server; scores from all front-ends share one leaderboard.

With --ssh, terminal players can join too:
  ssh localhost -p 23234

Settings are read in order: defaults, .env files, TETRIS_* environment
variables, then flags.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key under ~/.tetris/ssh

Examples:
  tetris serve                          # Web app on :8080
  tetris serve --ssh :23234             # Also accept SSH players
  tetris serve --qr                     # Print a QR code for phones
  tetris serve --record-dir ./replays   # Record every web game
  tetris serve --config ./tetris.yaml --watch-config`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (empty disables SSH)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagRecordDir, "record-dir", "", "Directory for web game recordings")
	serveCmd.Flags().StringVar(&flagPublicURL, "public-url", "", "URL players use to reach the server")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 10*time.Minute, "SSH idle timeout")
	serveCmd.Flags().BoolVar(&flagWatchConfig, "watch-config", false, "Reload --config when it changes")
	serveCmd.Flags().BoolVar(&flagQR, "qr", false, "Print a QR code of the public URL")
	serveCmd.Flags().StringSliceVar(&flagEnvFiles, "env", []string{".env"}, "Env files to load")
}

// serverConfig layers defaults, env files, the environment and flags.
func serverConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	if err := config.LoadDotEnv(flagEnvFiles...); err != nil {
		return config.ServerConfig{}, err
	}
	sc := config.DefaultServerConfig()
	if err := sc.ApplyEnv(); err != nil {
		return sc, err
	}

	flags := cmd.Flags()
	if flags.Changed("http") {
		sc.HTTPAddr = flagHTTPAddr
	}
	if flags.Changed("ssh") {
		sc.SSHAddr = flagSSHAddr
	}
	if flags.Changed("host-key") {
		sc.HostKeyPath = flagHostKey
	}
	if flags.Changed("record-dir") {
		sc.RecordDir = flagRecordDir
	}
	if flags.Changed("public-url") {
		sc.PublicURL = flagPublicURL
	}
	if flags.Changed("idle-timeout") {
		sc.IdleTimeout = flagIdleTimeout
	}
	if flags.Changed("db") {
		sc.DBPath = flagDBPath
	}
	if flags.Changed("fps") {
		sc.TickRate = flagFPS
	}
	return sc, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	sc, err := serverConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger("tetris-web")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := configSource(ctx, logger)
	if err != nil {
		return err
	}
	if w, ok := source.(*config.Watcher); ok {
		defer w.Stop()
	}

	store, err := storage.Open(sc.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	webSrv, err := web.NewServer(web.Options{
		Addr:      sc.HTTPAddr,
		TickRate:  sc.TickRate,
		RecordDir: sc.RecordDir,
		PublicURL: sc.PublicURL,
		Store:     store,
		Config:    source,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	var sshSrv *tui.SSHServer
	if sc.SSHAddr != "" {
		sshSrv, err = tui.NewSSHServer(tui.SSHServerConfig{
			Address:     sc.SSHAddr,
			HostKeyPath: sc.HostKeyPath,
			IdleTimeout: sc.IdleTimeout,
			TickRate:    sc.TickRate,
			Config:      source.Current,
		}, store, logger.WithPrefix("tetris-ssh"))
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webSrv.ListenAndServe(gctx)
	})
	if sshSrv != nil {
		g.Go(func() error {
			return sshSrv.ListenAndServe(gctx)
		})
	}

	url := publicURL(sc)
	logger.Info("Open the game", "url", url)
	if flagQR {
		if err := printQR(url); err != nil {
			logger.Warn("could not render QR code", "error", err)
		}
	}

	return g.Wait()
}

// configSource returns a watcher when --watch-config is set, otherwise a
// fixed config.
func configSource(ctx context.Context, logger *log.Logger) (web.ConfigSource, error) {
	if !flagWatchConfig {
		cfg, err := engineConfig()
		if err != nil {
			return nil, err
		}
		return web.StaticConfig(cfg), nil
	}
	if flagConfig == "" {
		return nil, errors.New("--watch-config needs --config")
	}

	w, err := config.NewWatcher(flagConfig, config.ParsePreset(flagDifficulty), logger.WithPrefix("tetris-config"))
	if err != nil {
		return nil, err
	}
	w.OnChange(func(cfg config.TetrisConfig) {
		logger.Info("config reloaded, new games use it", "cols", cfg.Board.Cols, "rows", cfg.Board.Rows)
	})
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	return w, nil
}

// publicURL is the address printed for players when none is configured:
// the first non-loopback IPv4 address with the HTTP port.
func publicURL(sc config.ServerConfig) string {
	if sc.PublicURL != "" {
		return sc.PublicURL
	}
	host, port, err := net.SplitHostPort(sc.HTTPAddr)
	if err != nil {
		return "http://" + sc.HTTPAddr + "/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
		if ip := lanAddress(); ip != "" {
			host = ip
		}
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

func lanAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		if ipnet, ok := a.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return ""
}

func printQR(url string) error {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Println(strings.TrimRight(qr.ToSmallString(false), "\n"))
	fmt.Println("Scan to play:", url)
	return nil
}
