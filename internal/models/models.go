package models

import (
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

type OrderStatus string

const OrderStatusPending OrderStatus = "Pending"

type User struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password" json:"-"` // bcrypt hash
	Role         Role   `db:"role" json:"role"`
}

type Product struct {
	ID       int64   `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Price    float64 `db:"price" json:"price"`
	Quantity int     `db:"quantity" json:"quantity"` // stock
	SellerID int64   `db:"seller_id" json:"sellerId"`
}

type Order struct {
	ID          int64       `db:"id" json:"id"`
	BuyerID     int64       `db:"buyer_id" json:"buyerId"`
	ProductID   int64       `db:"product_id" json:"productId"`
	ProductName string      `db:"product_name" json:"productName,omitempty"` // joined for display
	Quantity    int         `db:"quantity" json:"quantity"`
	TotalPrice  float64     `db:"total_price" json:"totalPrice"`
	OrderDate   time.Time   `db:"order_date" json:"orderDate"`
	Status      OrderStatus `db:"status" json:"status"`
	Address     string      `db:"address" json:"address"`
}

// LineItem is one product/quantity pair of a checkout request.
type LineItem struct {
	ProductID int64
	Quantity  int
	UnitPrice float64 // as shown to the buyer; the stored price is authoritative
}

type Statistics struct {
	TotalUsers     int64            `json:"totalUsers"`
	TotalProducts  int64            `json:"totalProducts"`
	TotalOrders    int64            `json:"totalOrders"`
	OrdersByStatus map[string]int64 `json:"ordersByStatus"`
}

type SellerProductStats struct {
	TotalProducts int64   `db:"total_products" json:"totalProducts"`
	TotalStock    int64   `db:"total_stock" json:"totalStock"`
	TotalValue    float64 `db:"total_value" json:"totalValue"`
}
