package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/souhail747/luxe/internal/auth"
	"github.com/souhail747/luxe/internal/config"
	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/event"
	handler "github.com/souhail747/luxe/internal/handler/http"
	"github.com/souhail747/luxe/internal/storage"
	"github.com/souhail747/luxe/internal/store"
	"github.com/souhail747/luxe/pkg/health"
	"github.com/souhail747/luxe/pkg/httpclient"
	pkgkafka "github.com/souhail747/luxe/pkg/kafka"
	"github.com/souhail747/luxe/pkg/middleware"
	"github.com/souhail747/luxe/pkg/tracing"
)

// App wires together all dependencies of one storefront session and serves
// them on the local API.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	storage  storage.Storage
	cart     *store.CartStore
	wishlist *store.WishlistStore
	theme    *store.ThemeStore
	auth     *auth.Client

	rdb      *redis.Client
	pool     *pgxpool.Pool
	producer *pkgkafka.Producer

	detach          []func()
	tracingShutdown func(context.Context) error
	httpServer      *http.Server
}

// NewApp creates a new application instance, rehydrating the session from
// storage and initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	if err := a.init(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger

	shutdown, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	a.tracingShutdown = shutdown

	// Client-side storage and the session stores.
	st, err := a.openStorage(ctx)
	if err != nil {
		return err
	}
	a.storage = st

	a.cart = store.NewCartStore(store.Load[domain.Cart](ctx, st, storage.CartKey, logger))
	a.wishlist = store.NewWishlistStore(store.Load[domain.Wishlist](ctx, st, storage.WishlistKey, logger))
	a.theme = store.NewThemeStore(store.Load[store.Theme](ctx, st, storage.ThemeKey, logger), store.NewDocumentClass())

	_, detachCart := store.Persist[domain.Cart](a.cart, st, storage.CartKey, logger)
	_, detachWishlist := store.Persist[domain.Wishlist](a.wishlist, st, storage.WishlistKey, logger)
	_, detachTheme := store.Persist[store.Theme](a.theme, st, storage.ThemeKey, logger)
	a.detach = append(a.detach, detachCart, detachWishlist, detachTheme)

	logger.Info("session restored",
		slog.String("profile", cfg.Profile),
		slog.String("storage", cfg.Storage),
		slog.Int("cart_items", a.cart.TotalItems()),
		slog.Int("wishlist_items", a.wishlist.Len()),
		slog.Bool("dark", a.theme.IsDark()),
	)

	cat, err := a.loadCatalog(ctx)
	if err != nil {
		return err
	}

	// Auth endpoint behind retries and a circuit breaker.
	breaker := httpclient.NewBreakerClient(httpclient.New(cfg.HTTP), cfg.Breaker, logger)
	a.auth = auth.NewClient(ctx, cfg.Auth, breaker, st, logger)

	// Analytics.
	var pub event.Publisher = event.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		pub = a.producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	forwarder := event.NewForwarder(pub, cfg.KafkaTopic, cfg.Profile, logger)
	a.detach = append(a.detach, forwarder.AttachAll(a.cart, a.wishlist, a.theme))

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("storage", st.Ping)
	if a.pool != nil {
		healthHandler.Register("postgres", a.pool.Ping)
	}
	if a.producer != nil {
		healthHandler.Register("kafka", a.producer.Ping)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins

	router := handler.NewRouter(handler.Deps{
		Catalog:       cat,
		Cart:          a.cart,
		Wishlist:      a.wishlist,
		Theme:         a.theme,
		Auth:          a.auth,
		Health:        healthHandler,
		Logger:        logger,
		SessionID:     cfg.Profile,
		CORS:          cors,
		PprofCIDRs:    cfg.PprofCIDRs,
		CatalogMaxAge: cfg.CatalogMaxAge,
		AuthPerMinute: cfg.AuthPerMinute,
		AuthBurst:     cfg.AuthBurst,
	})

	a.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return nil
}

// Handler is the local API, exposed for in-process use.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()
	a.logger.Info("application shutdown complete")
	return nil
}

// close releases everything init acquired, in reverse order. It tolerates
// a partially initialized App.
func (a *App) close() {
	for i := len(a.detach) - 1; i >= 0; i-- {
		a.detach[i]()
	}
	a.detach = nil

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.rdb = nil
	}
	if a.tracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracingShutdown(ctx); err != nil {
			a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
		a.tracingShutdown = nil
	}
}
