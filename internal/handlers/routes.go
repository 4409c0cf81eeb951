package handlers

import (
	"net/http"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/access"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/auth"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/cache"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/metrics"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Store       *store.Store
	Tokens      *auth.TokenService
	Stats       *cache.StatsCache
	Templates   *TemplateCache
	RateLimiter *RateLimiter
	Gate        *access.Gate

	CookieSecure     bool
	AllowAdminSignup bool
}

// NewRouter mounts every route and wraps the mux in the middleware chain:
// logging -> metrics -> security headers -> access gate -> mux.
func NewRouter(d Deps) http.Handler {
	authH := &AuthHandler{Store: d.Store, Tokens: d.Tokens, CookieSecure: d.CookieSecure, AllowAdminSignup: d.AllowAdminSignup}
	productH := &ProductHandler{Store: d.Store}
	buyerH := &BuyerHandler{Store: d.Store}
	sellerH := &SellerHandler{Store: d.Store}
	adminH := &AdminHandler{Store: d.Store, Stats: d.Stats}
	pageH := &PageHandler{Templates: d.Templates}

	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /{$}", pageH.Index)
	mux.HandleFunc("GET /login", pageH.Login)
	mux.HandleFunc("GET /register", pageH.Register)
	mux.HandleFunc("POST /api/login", d.RateLimiter.Middleware(authH.Login))
	mux.HandleFunc("POST /api/register", d.RateLimiter.Middleware(authH.Register))
	mux.HandleFunc("POST /api/logout", authH.Logout)
	mux.HandleFunc("GET /healthz", health(d.Store))
	mux.Handle("GET /metrics", metrics.Handler())

	// Any authenticated role
	mux.HandleFunc("GET /api/user", authH.CurrentUser)
	mux.HandleFunc("GET /api/products", productH.List)

	// Buyer
	mux.HandleFunc("GET /api/buyer/orders", buyerH.ListOrders)
	mux.HandleFunc("POST /api/buyer/orders", buyerH.Checkout)

	// Seller
	mux.HandleFunc("GET /api/seller/products", sellerH.ListProducts)
	mux.HandleFunc("POST /api/seller/products", sellerH.CreateProduct)
	mux.HandleFunc("PUT /api/seller/products/{id}", sellerH.UpdateProduct)
	mux.HandleFunc("DELETE /api/seller/products/{id}", sellerH.DeleteProduct)
	mux.HandleFunc("GET /api/seller/orders", sellerH.ListOrders)
	mux.HandleFunc("GET /api/seller/product-stats", sellerH.ProductStats)

	// Admin
	mux.HandleFunc("GET /api/admin/users", adminH.ListUsers)
	mux.HandleFunc("POST /api/admin/users", adminH.CreateUser)
	mux.HandleFunc("DELETE /api/admin/users/{id}", adminH.DeleteUser)
	mux.HandleFunc("GET /api/admin/products", adminH.ListProducts)
	mux.HandleFunc("DELETE /api/admin/products/{id}", adminH.DeleteProduct)
	mux.HandleFunc("GET /api/admin/orders", adminH.ListOrders)
	mux.HandleFunc("GET /api/admin/statistics", adminH.Statistics)

	// Dashboards
	for _, role := range []models.Role{models.RoleAdmin, models.RoleSeller, models.RoleBuyer} {
		mux.HandleFunc("GET /"+string(role)+"/dashboard", pageH.Dashboard(role))
	}

	return LoggingMiddleware(
		metrics.InstrumentHandler(
			SecurityHeadersMiddleware(
				d.Gate.Middleware(mux),
			),
		),
	)
}

func health(s *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.DB.PingContext(r.Context()); err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
