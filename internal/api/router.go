package api

import (
	"net/http"

	apimw "github.com/example/watchhaven/internal/api/middleware"
	"github.com/example/watchhaven/internal/auth"
	"github.com/example/watchhaven/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the storefront API. With a nil jwtService the admin
// routes are open and no login route is mounted.
func NewRouter(handlers *Handlers, authHandlers *AuthHandlers, jwtService *auth.JWTService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware)

	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", handlers.ListCategories)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", handlers.ListProducts)
			r.Get("/{id}", handlers.GetProduct)
			r.Get("/{id}/share", handlers.ShareProduct)
		})

		// visitor-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(withSession)

			r.Get("/session/view", handlers.GetScreen)
			r.Post("/session/view", handlers.Navigate)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", handlers.GetCart)
				r.Delete("/", handlers.ClearCart)
				r.Post("/items", handlers.AddToCart)
				r.Patch("/items/{id}", handlers.ChangeQuantity)
				r.Delete("/items/{id}", handlers.RemoveFromCart)
			})
			r.Post("/checkout", handlers.Checkout)

			r.Route("/newsletter", func(r chi.Router) {
				r.Get("/popup", handlers.NewsletterPopup)
				r.Post("/popup/dismiss", handlers.DismissPopup)
				r.Post("/subscribe", handlers.Subscribe)
			})
		})

		if authHandlers != nil {
			r.Post("/auth/login", authHandlers.Login)
			r.Post("/auth/logout", authHandlers.Logout)
		}

		r.Route("/admin", func(r chi.Router) {
			if jwtService != nil {
				r.Use(apimw.AuthMiddleware(jwtService))
				r.Use(apimw.RequireRole(auth.RoleAdmin))
			}

			r.Get("/products", handlers.AdminListProducts)
			r.Post("/products", handlers.AdminAddProduct)
			r.Put("/products/{id}", handlers.AdminUpdateProduct)
			r.Delete("/products/{id}", handlers.AdminDeleteProduct)
			r.Post("/images/upload", handlers.UploadImage)
			r.Post("/images/resolve", handlers.ResolveImage)
		})
	})

	return r
}
