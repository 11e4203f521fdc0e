package handler

import (
	"net/http"

	"emedica-be/internal/logger"
	"emedica-be/internal/metrics"
	"emedica-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	Tokens         middleware.AccessTokenParser
	CORSOrigin     string
	InternalSecret string
	Limiter        *middleware.RateLimiter
	Metrics        *metrics.Registry
	Webhook        http.Handler
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	reg := cfg.Metrics
	if reg == nil {
		reg = metrics.Default
	}
	cartSession := middleware.CartSession(h.SecureCookies)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.RealIP)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(reg.Middleware)
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.Internal(cfg.InternalSecret))
	r.Use(middleware.Auth(cfg.Tokens))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", reg.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", h.SignUp)
			r.With(cartSession).Post("/signin", h.SignIn)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", h.Me)
				r.Get("/me/address", h.GetAddress)
				r.Patch("/me/address", h.UpdateAddress)
				r.Patch("/me/payment-method", h.UpdatePaymentMethod)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.ListUsers)
				r.Get("/{id}", h.GetUser)
				r.Patch("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/featured", h.FeaturedProducts)
			r.Get("/slug/{slug}", h.GetProductBySlug)
			r.Get("/{id}", h.GetProduct)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/", h.CreateProduct)
				r.Patch("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{name}/brands", h.ListCategoryBrands)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(cartSession)
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Delete("/items/{productId}", h.RemoveCartItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", h.CreateOrder)
			r.Get("/mine", h.ListMyOrders)
			r.Get("/{id}", h.GetOrder)
			r.Post("/{id}/payment-intent", h.CreatePaymentIntent)
			r.Post("/{id}/payment-capture", h.CapturePayment)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", h.ListOrders)
				r.Put("/{id}/pay", h.PayOrder)
				r.Put("/{id}/pay/cod", h.PayOrderCOD)
				r.Put("/{id}/deliver", h.DeliverOrder)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/product/{productId}", h.ListProductReviews)
			r.With(middleware.RequireAuth).Get("/product/{productId}/mine", h.GetMyReview)
			r.With(middleware.RequireAuth).Post("/", h.CreateReview)
		})

		if cfg.Webhook != nil {
			r.Method(http.MethodPost, "/webhooks/payment", cfg.Webhook)
		}
	})

	return r
}
