package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/cms"
	"meenora.in/store/internal/store/config"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/httpserver"
	"meenora.in/store/internal/store/observability"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		os.Stderr.WriteString("failed to initialise logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	if cfg.Cookies.HashKeyEphemeral {
		logger.Warn("MEENORA_COOKIE_HASH_KEY not set; carts and sessions will not survive a restart")
	}

	service := buildCatalog(cfg, logger)

	sessions, err := session.NewManager(session.Config{
		HashKey:      cfg.Cookies.HashKey,
		BlockKey:     cfg.Cookies.BlockKey,
		CookieSecure: cfg.Cookies.Secure,
		Lifetime:     cfg.Cookies.SessionLifetime,
	})
	if err != nil {
		logger.Fatal("session manager", zap.Error(err))
	}

	carts, err := cart.NewManager(cart.Config{
		HashKey:      cfg.Cookies.HashKey,
		BlockKey:     cfg.Cookies.BlockKey,
		CookieSecure: cfg.Cookies.Secure,
		Lifetime:     cfg.Cookies.CartLifetime,
	})
	if err != nil {
		logger.Fatal("cart manager", zap.Error(err))
	}

	wishlists, err := wishlist.NewManager(wishlist.Config{
		HashKey:      cfg.Cookies.HashKey,
		BlockKey:     cfg.Cookies.BlockKey,
		CookieSecure: cfg.Cookies.Secure,
	})
	if err != nil {
		logger.Fatal("wishlist manager", zap.Error(err))
	}

	flashes, err := flash.NewManager(cfg.Cookies.HashKey, cfg.Cookies.BlockKey, cfg.Cookies.Secure)
	if err != nil {
		logger.Fatal("flash manager", zap.Error(err))
	}

	content, err := cms.Load()
	if err != nil {
		logger.Warn("load content, using defaults", zap.Error(err))
	}

	srv, err := httpserver.New(httpserver.Config{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Catalog:      service,
		Sessions:     sessions,
		Carts:        carts,
		Wishlists:    wishlists,
		Flashes:      flashes,
		Checkout:     checkout.NewService(nil),
		Content:      content,
		CSRFSecure:   cfg.Cookies.Secure,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("store listening", zap.String("addr", cfg.Server.Addr))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

// buildCatalog selects the remote client when an API URL is configured and
// falls back to the seeded in-memory catalog for offline development.
func buildCatalog(cfg config.Config, logger *zap.Logger) catalog.Service {
	if cfg.API.BaseURL == "" {
		logger.Info("MEENORA_API_URL not set; using in-memory catalog")
		return catalog.NewStatic()
	}

	client, err := catalog.NewClient(cfg.API.BaseURL, &http.Client{Timeout: cfg.API.Timeout})
	if err != nil {
		logger.Fatal("catalog client", zap.String("url", cfg.API.BaseURL), zap.Error(err))
	}
	logger.Info("using remote catalog", zap.String("url", cfg.API.BaseURL))
	return client
}
