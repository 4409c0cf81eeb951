package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

// SellerHandler serves /api/seller. Every query is scoped to the caller.
type SellerHandler struct {
	Store *store.Store
}

func (h *SellerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	products, err := h.Store.ListProductsBySeller(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, products)
}

func (h *SellerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	p := &models.Product{Name: in.Name, Price: in.Price, Quantity: in.Quantity, SellerID: id.UserID}
	if err := h.Store.CreateProduct(r.Context(), p); err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("Product created", "product_id", p.ID, "seller_id", id.UserID)
	respond.JSON(w, http.StatusCreated, p)
}

func (h *SellerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	productID, err := pathID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in productInput
	if err := decodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := in.validate(); err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.Store.UpdateSellerProduct(r.Context(), id.UserID, models.Product{
		ID: productID, Name: in.Name, Price: in.Price, Quantity: in.Quantity,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

func (h *SellerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	productID, err := pathID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	if err := h.Store.DeleteSellerProduct(r.Context(), id.UserID, productID); err != nil {
		respond.Error(w, r, err)
		return
	}
	slog.Info("Product deleted", "product_id", productID, "seller_id", id.UserID)
	respond.Message(w, http.StatusOK, "Product deleted successfully")
}

// ListOrders returns orders for the seller's products. ?limit=N caps the
// result to the N most recent.
func (h *SellerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	orders, err := h.Store.ListOrdersBySeller(r.Context(), id.UserID, queryInt(r, "limit", 0))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *SellerHandler) ProductStats(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	stats, err := h.Store.SellerProductStats(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}
