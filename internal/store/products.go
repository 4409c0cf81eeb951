package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

const productColumns = `id, name, price, quantity, seller_id`

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := s.DB.Rebind(`INSERT INTO products (name, price, quantity, seller_id) VALUES (?, ?, ?, ?) RETURNING id`)
	if err := s.DB.QueryRowxContext(ctx, query, p.Name, p.Price, p.Quantity, p.SellerID).Scan(&p.ID); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := s.DB.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM products ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Store) ListProductsBySeller(ctx context.Context, sellerID int64) ([]models.Product, error) {
	products := []models.Product{}
	query := s.DB.Rebind(`SELECT ` + productColumns + ` FROM products WHERE seller_id = ? ORDER BY id`)
	if err := s.DB.SelectContext(ctx, &products, query, sellerID); err != nil {
		return nil, fmt.Errorf("list seller products: %w", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.DB.GetContext(ctx, &p, s.DB.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdateSellerProduct changes name, price and stock of a product owned by
// sellerID. Products of other sellers are reported as not found.
func (s *Store) UpdateSellerProduct(ctx context.Context, sellerID int64, p models.Product) (*models.Product, error) {
	query := s.DB.Rebind(`UPDATE products SET name = ?, price = ?, quantity = ? WHERE id = ? AND seller_id = ?`)
	res, err := s.DB.ExecContext(ctx, query, p.Name, p.Price, p.Quantity, p.ID, sellerID)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if err := expectAffected(res, "Product"); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, p.ID)
}

func (s *Store) DeleteSellerProduct(ctx context.Context, sellerID, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM products WHERE id = ? AND seller_id = ?`), id, sellerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectAffected(res, "Product")
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(`DELETE FROM products WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return expectAffected(res, "Product")
}

func (s *Store) SellerProductStats(ctx context.Context, sellerID int64) (*models.SellerProductStats, error) {
	var st models.SellerProductStats
	query := s.DB.Rebind(`
		SELECT
			COUNT(*) AS total_products,
			COALESCE(SUM(quantity), 0) AS total_stock,
			COALESCE(SUM(price * quantity), 0) AS total_value
		FROM products
		WHERE seller_id = ?`)
	if err := s.DB.GetContext(ctx, &st, query, sellerID); err != nil {
		return nil, fmt.Errorf("seller product stats: %w", err)
	}
	return &st, nil
}
