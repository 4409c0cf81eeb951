package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/metrics"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

type BuyerHandler struct {
	Store *store.Store
}

// cartItem mirrors what the storefront cart posts. Either id or productId
// identifies the product; name and price are display values only.
type cartItem struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"productId"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CartQuantity int     `json:"cartQuantity"`
}

type checkoutRequest struct {
	Items      []cartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
	Address    string     `json:"address"`
}

type checkoutResponse struct {
	Message string         `json:"message"`
	Orders  []models.Order `json:"orders"`
}

func (h *BuyerHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	orders, err := h.Store.ListOrdersByBuyer(r.Context(), id.UserID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, orders)
}

func (h *BuyerHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	var in checkoutRequest
	if err := decodeJSON(w, r, &in); err != nil {
		metrics.RecordCheckout(string(apperr.CodeValidation), 0)
		respond.Error(w, r, err)
		return
	}

	items := make([]models.LineItem, 0, len(in.Items))
	units := 0
	for _, it := range in.Items {
		productID := it.ProductID
		if productID == 0 {
			productID = it.ID
		}
		items = append(items, models.LineItem{ProductID: productID, Quantity: it.CartQuantity, UnitPrice: it.Price})
		units += it.CartQuantity
	}

	orders, err := h.Store.PlaceOrder(r.Context(), id.UserID, items, in.Address)
	if err != nil {
		metrics.RecordCheckout(string(apperr.From(err).Code), 0)
		respond.Error(w, r, err)
		return
	}
	metrics.RecordCheckout("ok", units)

	var total float64
	for _, o := range orders {
		total += o.TotalPrice
	}
	slog.Info("Order placed", "buyer_id", id.UserID, "lines", len(orders), "total", total, "client_total", in.TotalPrice)
	respond.JSON(w, http.StatusCreated, checkoutResponse{Message: "Order placed successfully", Orders: orders})
}
