// Package httpserver assembles the router, middleware stack and handler set
// into a runnable HTTP server.
package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"meenora.in/store/internal/store/cart"
	"meenora.in/store/internal/store/catalog"
	"meenora.in/store/internal/store/checkout"
	"meenora.in/store/internal/store/cms"
	"meenora.in/store/internal/store/flash"
	"meenora.in/store/internal/store/guard"
	custommw "meenora.in/store/internal/store/httpserver/middleware"
	"meenora.in/store/internal/store/httpserver/ui"
	"meenora.in/store/internal/store/session"
	"meenora.in/store/internal/store/templates"
	"meenora.in/store/internal/store/wishlist"
	"meenora.in/store/public"
)

// Config holds everything the server needs, already constructed.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Catalog    catalog.Service
	Sessions   *session.Manager
	Carts      *cart.Manager
	Wishlists  *wishlist.Manager
	Flashes    *flash.Manager
	Checkout   *checkout.Service
	Content    cms.Content
	CSRFSecure bool
	Logger     *zap.Logger
}

// New constructs the HTTP server with the full route table.
func New(cfg Config) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	renderer, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("httpserver: parse templates: %w", err)
	}

	handlers := ui.New(ui.Config{
		Catalog:   cfg.Catalog,
		Sessions:  cfg.Sessions,
		Carts:     cfg.Carts,
		Wishlists: cfg.Wishlists,
		Flashes:   cfg.Flashes,
		Checkout:  cfg.Checkout,
		Content:   cfg.Content,
		Renderer:  renderer,
		Logger:    logger,
	})

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(60 * time.Second))

	staticContent, err := public.StaticFS()
	if err != nil {
		return nil, fmt.Errorf("httpserver: embed static: %w", err)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))

	router.Group(func(r chi.Router) {
		r.Use(custommw.Session(cfg.Sessions))
		r.Use(custommw.Cart(cfg.Carts))
		r.Use(custommw.Wishlist(cfg.Wishlists))
		r.Use(custommw.CSRF(custommw.CSRFConfig{Secure: cfg.CSRFSecure}))

		storeGuard := custommw.GuardConfig{LoginPath: "/login", RoleHome: "/dashboard", Logger: logger}
		adminGuard := custommw.GuardConfig{LoginPath: "/admin/login", RoleHome: "/dashboard", Logger: logger}

		// Public storefront.
		r.Get("/", handlers.Home)
		r.Get("/about", handlers.About)
		r.Get("/shop", handlers.Shop)
		r.Get("/products/{id}", handlers.ProductDetail)
		r.Get("/blog", handlers.Blog)
		r.Get("/blog/{id}", handlers.BlogPost)
		r.Get("/contact", handlers.ContactForm)
		r.Post("/contact", handlers.ContactSubmit)

		// Cart.
		r.Get("/cart", handlers.CartView)
		r.Post("/cart/add", handlers.CartAdd)
		r.Post("/cart/update", handlers.CartUpdate)
		r.Post("/cart/remove", handlers.CartRemove)
		r.Post("/cart/clear", handlers.CartClear)

		// Wishlist.
		r.Get("/wishlist", handlers.WishlistView)
		r.Post("/wishlist/add", handlers.WishlistAdd)
		r.Post("/wishlist/remove", handlers.WishlistRemove)

		// Auth portals.
		r.Get("/login", handlers.LoginForm)
		r.Post("/login", handlers.LoginSubmit)
		r.Get("/signup", handlers.SignupForm)
		r.Post("/signup", handlers.SignupSubmit)
		r.Post("/logout", handlers.Logout)

		// Customer pages.
		r.Group(func(r chi.Router) {
			r.Use(custommw.Guard(guard.Authenticated, storeGuard))
			r.Get("/dashboard", handlers.Dashboard)
			r.Get("/checkout", handlers.CheckoutForm)
			r.Post("/checkout", handlers.CheckoutSubmit)
			r.Get("/orders/{id}", handlers.OrderDetail)
		})

		// Admin console. The portal itself sits outside the guard so signed-out
		// operators can reach it.
		r.Route("/admin", func(r chi.Router) {
			r.Get("/login", handlers.AdminLoginForm)
			r.Post("/login", handlers.AdminLoginSubmit)

			r.Group(func(r chi.Router) {
				r.Use(custommw.Guard(guard.AdminOnly, adminGuard))

				r.Get("/", handlers.AdminHome)

				r.Get("/products", handlers.AdminProducts)
				r.Get("/products/new", handlers.AdminProductNew)
				r.Post("/products", handlers.AdminProductCreate)
				r.Get("/products/{id}/edit", handlers.AdminProductEdit)
				r.Post("/products/{id}/edit", handlers.AdminProductUpdate)
				r.Post("/products/{id}/delete", handlers.AdminProductDelete)

				r.Get("/banners", handlers.AdminBanners)
				r.Post("/banners", handlers.AdminBannerCreate)
				r.Post("/banners/{id}/toggle", handlers.AdminBannerToggle)
				r.Post("/banners/{id}/delete", handlers.AdminBannerDelete)

				r.Get("/blogs", handlers.AdminBlogs)
				r.Get("/blogs/new", handlers.AdminBlogNew)
				r.Post("/blogs", handlers.AdminBlogCreate)
				r.Get("/blogs/{id}/edit", handlers.AdminBlogEdit)
				r.Post("/blogs/{id}/edit", handlers.AdminBlogUpdate)
				r.Post("/blogs/{id}/delete", handlers.AdminBlogDelete)

				r.Get("/contacts", handlers.AdminContacts)
				r.Post("/contacts/{id}/delete", handlers.AdminContactDelete)
			})
		})

		// Unknown paths land on the storefront.
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/", http.StatusFound)
		})
	})

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  orDefault(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  orDefault(cfg.IdleTimeout, 60*time.Second),
	}, nil
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
