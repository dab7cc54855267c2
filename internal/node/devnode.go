// SPDX-License-Identifier: MPL-2.0

package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

var (
	bannerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	bannerLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	bannerValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))
)

// DevNode is the default Runner. It binds the configured listeners, serves
// the identity JSON-RPC methods and shuts down when the run context ends.
type DevNode struct {
	// Version is reported by web3_clientVersion and the banner.
	Version string
	// Out receives the startup banner. Nil discards it.
	Out io.Writer
	// Logger receives lifecycle and request logs. Nil discards them.
	Logger *log.Logger
	// Listening, when set, is called with the bound addresses before serving.
	Listening func(addrs []string)
}

// Run binds every configured host and serves until ctx is cancelled.
// Bind and serve failures are returned as-is.
func (n *DevNode) Run(ctx context.Context, cfg *Config) error {
	logger := n.logger()

	listeners, err := listen(ctx, cfg.Server)
	if err != nil {
		return err
	}

	addrs := make([]string, len(listeners))
	for i, ln := range listeners {
		addrs[i] = ln.Addr().String()
	}
	if !cfg.Silent {
		n.printBanner(cfg, addrs)
	}
	if n.Listening != nil {
		n.Listening(addrs)
	}

	srv := &http.Server{
		Handler:           n.Handler(cfg),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, ln := range listeners {
		g.Go(func() error {
			logger.Info("listening", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Debug("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Handler returns the HTTP handler serving JSON-RPC on "/", wrapped with CORS
// handling unless the config disables it.
func (n *DevNode) Handler(cfg *Config) http.Handler {
	router := mux.NewRouter()
	router.Handle("/", &rpcHandler{
		logger:  n.logger(),
		methods: identityMethods(n.Version, cfg.EVM.ChainID),
	}).Methods(http.MethodPost)

	if cfg.Server.NoCORS {
		return router
	}
	return cors.New(cors.Options{
		AllowedOrigins: []string{cfg.Server.AllowOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(router)
}

func (n *DevNode) logger() *log.Logger {
	if n.Logger == nil {
		return log.New(io.Discard)
	}
	return n.Logger
}

func (n *DevNode) printBanner(cfg *Config, addrs []string) {
	if n.Out == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(bannerTitleStyle.Render("anvil " + n.Version))
	sb.WriteString("\n\n")
	row := func(label, value string) {
		sb.WriteString(bannerLabelStyle.Render(label))
		sb.WriteString(" ")
		sb.WriteString(bannerValueStyle.Render(value))
		sb.WriteString("\n")
	}
	row("Chain ID:", strconv.FormatUint(cfg.EVM.ChainID, 10))
	row("Hardfork:", cfg.EVM.Hardfork.String())
	if cfg.Fork.URL != "" {
		row("Fork:", cfg.Fork.URL)
		if block := cfg.Fork.PinnedBlock(); block != nil {
			row("Fork block:", strconv.FormatUint(*block, 10))
		}
	}
	sb.WriteString("\n")
	for _, addr := range addrs {
		row("Listening on", addr)
	}
	_, _ = fmt.Fprint(n.Out, sb.String())
}

func listen(ctx context.Context, server ServerConfig) ([]net.Listener, error) {
	var lc net.ListenConfig
	port := strconv.Itoa(int(server.Port))

	listeners := make([]net.Listener, 0, len(server.Hosts))
	for _, host := range server.Hosts {
		ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, port))
		if err != nil {
			for _, opened := range listeners {
				_ = opened.Close()
			}
			return nil, err
		}
		listeners = append(listeners, ln)
	}
	return listeners, nil
}
