package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// PlaceOrder resolves prices, decrements stock and writes the order rows in
// one transaction, locking each product row so two checkouts cannot oversell.
func (r *orderRepository) PlaceOrder(ctx context.Context, userUUID string, lines []domain.OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	var order *domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := make([]domain.OrderItem, 0, len(lines))
		total := 0.0

		for _, line := range lines {
			var product domain.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, line.ProductID).Error
			if err != nil {
				return err
			}

			if product.Stock < line.Quantity {
				return domain.ErrInsufficientStock
			}

			err = tx.Model(&domain.Product{}).
				Where("id = ?", product.ID).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity)).Error
			if err != nil {
				return err
			}

			items = append(items, domain.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: product.Price,
			})
			total += product.Price * float64(line.Quantity)
		}

		order = &domain.Order{
			UserUUID: userUUID,
			Total:    total,
			Items:    items,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	var order domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userUUID string) (*[]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_uuid = ?", userUUID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return &orders, nil
}

func (r *orderRepository) UserPurchasedProduct(ctx context.Context, userUUID string, productID uint) (bool, error) {
	var item domain.OrderItem
	err := r.db.WithContext(ctx).
		Joins("JOIN orders o ON o.id = order_items.order_id").
		Where("o.user_uuid = ? AND order_items.product_id = ?", userUUID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
