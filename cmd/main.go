package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"skyflip/internal/config"
	"skyflip/internal/dispatcher"
	"skyflip/internal/handler"
	"skyflip/internal/infrastructure/cofl"
	"skyflip/internal/infrastructure/display"
	"skyflip/internal/infrastructure/game"
	"skyflip/internal/infrastructure/notifier"
	"skyflip/internal/server"
	"skyflip/internal/session"
	"skyflip/pkg/application/modules"
	"skyflip/pkg/contextx"
	"skyflip/pkg/logx"
)

const (
	appName    = "skyflip"
	appVersion = "1.0.0"

	sessionTTL                  = 24 * time.Hour
	httpServerShutdownTimeout   = 10 * time.Second
	httpServerReadHeaderTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	if err := run(ctx, log); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	console := display.NewConsole(nil)
	webhook := notifier.NewWebhook(cfg.WebhookURL)
	executor := game.NewClient(cfg.IngameName, cfg.FlipActionDelay)

	auctionHandler := handler.NewAuction(executor, webhook, console, cfg.Skip).
		WithGateRetryDelay(cfg.GateRetryDelay)
	bazaarHandler := handler.NewBazaar(executor, webhook, console).
		WithGateRetryDelay(cfg.GateRetryDelay)

	disp := dispatcher.New(cfg, auctionHandler, bazaarHandler, console)

	sessions := session.NewStore(sessionTTL)
	feedClient := cofl.NewClient(cfg.WebsocketURL, cfg.IngameName, sessions, disp)

	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.Observability.ProbeAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Observability.MetricsAddress,
	}.Run(ctx, g)

	statusServer := server.NewServer(cfg, disp, feedClient)

	//nolint:exhaustruct
	httpServer := &http.Server{
		Addr:              cfg.Observability.StatusAddress,
		Handler:           statusServer.Router(),
		ReadHeaderTimeout: httpServerReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	modules.HTTPServer{
		ShutdownTimeout: httpServerShutdownTimeout,
	}.Run(ctx, g, httpServer)

	g.Go(func() error {
		if err := feedClient.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("feedClient.Run: %w", err)
		}

		return nil
	})

	console.Status(fmt.Sprintf("§aAgent started for §e%s", cfg.IngameName))
	webhook.SendInitialized(ctx, cfg.IngameName)

	err = g.Wait()

	// Feed is down at this point, drain the handlers that are still running.
	disp.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
