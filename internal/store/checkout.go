package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

// PlaceOrder turns a cart into Pending order rows, one per line item, and
// takes the ordered quantities out of stock. Either every item is committed or
// nothing is: the stock decrement is a conditional update inside the same
// transaction as the order inserts, so concurrent checkouts of the same
// product cannot both pass the stock check.
func (s *Store) PlaceOrder(ctx context.Context, buyerID int64, items []models.LineItem, address string) ([]models.Order, error) {
	address = strings.TrimSpace(address)
	if err := validateCheckout(buyerID, items, address); err != nil {
		return nil, err
	}

	orderDate := time.Now().UTC()
	orders := make([]models.Order, 0, len(items))

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		for _, item := range items {
			name, price, err := takeStock(ctx, tx, item)
			if err != nil {
				return err
			}
			if item.UnitPrice > 0 && item.UnitPrice != price {
				slog.Debug("Cart price differs from stored price", "product_id", item.ProductID, "cart_price", item.UnitPrice, "price", price)
			}

			o := models.Order{
				BuyerID:     buyerID,
				ProductID:   item.ProductID,
				ProductName: name,
				Quantity:    item.Quantity,
				TotalPrice:  lineTotal(price, item.Quantity),
				OrderDate:   orderDate,
				Status:      models.OrderStatusPending,
				Address:     address,
			}
			insert := tx.Rebind(`INSERT INTO orders (buyer_id, product_id, quantity, total_price, order_date, status, address)
				VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)
			err = tx.QueryRowxContext(ctx, insert, o.BuyerID, o.ProductID, o.Quantity, o.TotalPrice, o.OrderDate, o.Status, o.Address).Scan(&o.ID)
			if err != nil {
				return fmt.Errorf("insert order for product %d: %w", item.ProductID, err)
			}
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// takeStock decrements the product's quantity only if enough is left and
// returns the product's name and current price.
func takeStock(ctx context.Context, tx *sqlx.Tx, item models.LineItem) (string, float64, error) {
	var (
		name  string
		price float64
	)
	update := tx.Rebind(`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ? RETURNING name, price`)
	err := tx.QueryRowxContext(ctx, update, item.Quantity, item.ProductID, item.Quantity).Scan(&name, &price)
	if err == nil {
		return name, price, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", 0, fmt.Errorf("decrement stock of product %d: %w", item.ProductID, err)
	}

	// nothing updated: either the product is gone or stock is short
	err = tx.GetContext(ctx, &name, tx.Rebind(`SELECT name FROM products WHERE id = ?`), item.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, apperr.NotFound(fmt.Sprintf("Product %d", item.ProductID))
	}
	if err != nil {
		return "", 0, fmt.Errorf("look up product %d: %w", item.ProductID, err)
	}
	return "", 0, apperr.InsufficientStock(name)
}

func validateCheckout(buyerID int64, items []models.LineItem, address string) error {
	if buyerID <= 0 {
		return apperr.Validation("Invalid buyer")
	}
	if len(items) == 0 {
		return apperr.Validation("Cart is empty")
	}
	for _, it := range items {
		if it.ProductID <= 0 {
			return apperr.Validation("Invalid product id")
		}
		if it.Quantity <= 0 {
			return apperr.Validation("Quantity must be greater than zero")
		}
	}
	if address == "" {
		return apperr.Validation("Shipping address is required")
	}
	return nil
}

// lineTotal rounds to cents.
func lineTotal(price float64, quantity int) float64 {
	return math.Round(price*float64(quantity)*100) / 100
}
