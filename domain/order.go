package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order has no items")
)

type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserUUID  string      `gorm:"type:uuid;index;not null" json:"user_uuid"`
	Total     float64     `gorm:"not null" json:"total"`
	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}

// OrderLine is one requested line of a checkout: the unit price is resolved
// server-side from the product row.
type OrderLine struct {
	ProductID uint
	Quantity  int
}

type OrderRepository interface {
	// PlaceOrder creates the order and decrements product stock inside a
	// single transaction; it fails with ErrInsufficientStock when any line
	// exceeds the available stock.
	PlaceOrder(ctx context.Context, userUUID string, lines []OrderLine) (*Order, error)
	GetOrderByID(ctx context.Context, id uint) (*Order, error)
	ListOrdersByUser(ctx context.Context, userUUID string) (*[]Order, error)

	// UserPurchasedProduct reports whether the user has any order
	// containing the product (drives the verified-purchase review flag).
	UserPurchasedProduct(ctx context.Context, userUUID string, productID uint) (bool, error)
}

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, userUUID string, lines []OrderLine) (*Order, error)
	GetOrder(ctx context.Context, id uint, requesterUUID, requesterRole string) (*Order, error)
	ListOrders(ctx context.Context, userUUID string) (*[]Order, error)
}
