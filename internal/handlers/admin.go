package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/cache"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

type AdminHandler struct {
	Store *store.Store
	Stats *cache.StatsCache
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

// CreateUser lets an admin add an account of any role.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in registration
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := validateRegistration(&in); err != nil {
		respond.Error(w, r, err)
		return
	}
	user, err := createUser(r, h.Store, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("User created by admin", "user_id", user.ID, "role", user.Role)
	respond.JSON(w, http.StatusCreated, user)
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.Store.DeleteUser(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("User deleted", "user_id", id)
	respond.Message(w, http.StatusOK, "User deleted successfully")
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.ListProducts(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, products)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.Store.DeleteProduct(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("Product deleted by admin", "product_id", id)
	respond.Message(w, http.StatusOK, "Product deleted successfully")
}

// ListOrders returns every order, newest first. With ?page or ?limit the
// result is paginated (default 10 per page) and X-Total-Count carries the
// overall number of orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("page") && !q.Has("limit") {
		orders, err := h.Store.ListAllOrders(r.Context(), 0, 0)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, orders)
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	offset := (page - 1) * limit

	orders, err := h.Store.ListAllOrders(r.Context(), limit, offset)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	total, err := h.Store.CountOrders(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	respond.JSON(w, http.StatusOK, orders)
}

// Statistics serves the cached dashboard aggregate. It may lag writes by up
// to the cache TTL.
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Get(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
