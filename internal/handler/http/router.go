package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souhail747/luxe/internal/auth"
	"github.com/souhail747/luxe/internal/catalog"
	"github.com/souhail747/luxe/internal/domain"
	"github.com/souhail747/luxe/internal/store"
	"github.com/souhail747/luxe/pkg/health"
	"github.com/souhail747/luxe/pkg/middleware"
)

const serviceName = "storefront"

// AuthService is the sign-in boundary. *auth.Client implements it.
type AuthService interface {
	Login(ctx context.Context, creds auth.Credentials) (domain.Session, error)
	Register(ctx context.Context, reg auth.Registration) (domain.Session, error)
	Logout(ctx context.Context)
	Session() (domain.Session, bool)
}

// Deps is everything the router serves.
type Deps struct {
	Catalog  *catalog.Catalog
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Theme    *store.ThemeStore
	Auth     AuthService
	Health   *health.Handler
	Logger   *slog.Logger

	SessionID     string
	CORS          middleware.CORSConfig
	PprofCIDRs    []string
	CatalogMaxAge int
	AuthPerMinute int
	AuthBurst     int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(d.Logger, d.SessionID))

	// Health check endpoints
	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, d.PprofCIDRs, d.Logger)

	catalogHandler := NewCatalogHandler(d.Catalog, d.Wishlist, d.Logger)
	cartHandler := NewCartHandler(d.Cart, d.Catalog, d.Logger)
	wishlistHandler := NewWishlistHandler(d.Wishlist, d.Cart, d.Catalog, d.Logger)
	themeHandler := NewThemeHandler(d.Theme, d.Logger)
	authHandler := NewAuthHandler(d.Auth, d.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(d.CatalogMaxAge))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/featured", catalogHandler.Featured)
			r.Get("/categories", catalogHandler.Categories)
		})
		// Detail carries the wishlisted flag, so it is session state.
		r.With(middleware.NoStore).Get("/products/{id}", catalogHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Get("/summary", cartHandler.Summary)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{id}", cartHandler.RemoveItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Delete("/", wishlistHandler.ClearWishlist)
				r.Post("/items", wishlistHandler.AddItem)
				r.Delete("/items/{id}", wishlistHandler.RemoveItem)
				r.Post("/items/{id}/toggle", wishlistHandler.Toggle)
				r.Post("/items/{id}/move-to-cart", wishlistHandler.MoveToCart)
			})

			r.Route("/theme", func(r chi.Router) {
				r.Get("/", themeHandler.GetTheme)
				r.Put("/", themeHandler.SetTheme)
				r.Post("/toggle", themeHandler.Toggle)
			})

			r.Route("/auth", func(r chi.Router) {
				throttle := middleware.Throttle(d.AuthPerMinute, d.AuthBurst, d.Logger)
				r.With(throttle).Post("/login", authHandler.Login)
				r.With(throttle).Post("/register", authHandler.Register)
				r.Post("/logout", authHandler.Logout)
				r.Get("/session", authHandler.Session)
			})
		})
	})

	return r
}
