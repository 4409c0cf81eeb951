package handlers

import (
	"net/http"
	"strings"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/respond"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/store"
)

type ProductHandler struct {
	Store *store.Store
}

// List returns the catalog. Sellers only see their own products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var products []models.Product
	if id.Role == models.RoleSeller {
		products, err = h.Store.ListProductsBySeller(r.Context(), id.UserID)
	} else {
		products, err = h.Store.ListProducts(r.Context())
	}
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, products)
}

type productInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

func (in *productInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return apperr.Validation("Product name is required")
	case in.Price < 0:
		return apperr.Validation("Price cannot be negative")
	case in.Quantity < 0:
		return apperr.Validation("Quantity cannot be negative")
	}
	return nil
}
