package store

import (
	"context"
	"fmt"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

const orderSelect = `
	SELECT o.id, o.buyer_id, o.product_id, p.name AS product_name, o.quantity, o.total_price, o.order_date, o.status, o.address
	FROM orders o
	JOIN products p ON p.id = o.product_id`

func (s *Store) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]models.Order, error) {
	orders := []models.Order{}
	query := s.DB.Rebind(orderSelect + ` WHERE o.buyer_id = ? ORDER BY o.order_date DESC, o.id DESC`)
	if err := s.DB.SelectContext(ctx, &orders, query, buyerID); err != nil {
		return nil, fmt.Errorf("list buyer orders: %w", err)
	}
	return orders, nil
}

// ListOrdersBySeller returns orders for the seller's products, newest first.
// A limit of zero means no limit.
func (s *Store) ListOrdersBySeller(ctx context.Context, sellerID int64, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	query := orderSelect + ` WHERE p.seller_id = ? ORDER BY o.order_date DESC, o.id DESC`
	args := []any{sellerID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	if err := s.DB.SelectContext(ctx, &orders, s.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list seller orders: %w", err)
	}
	return orders, nil
}

// ListAllOrders pages through every order. A limit of zero returns all rows.
func (s *Store) ListAllOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	orders := []models.Order{}
	query := orderSelect + ` ORDER BY o.order_date DESC, o.id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}
	if err := s.DB.SelectContext(ctx, &orders, s.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	if err := s.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}
