package service

import (
	"context"
	"errors"

	"github.com/andres-gutierrezri/kitty-project/domain"
)

var ErrNotYourOrder = errors.New("order belongs to another user")

type orderService struct {
	orderRepo domain.OrderRepository
}

func NewOrderService(orderRepo domain.OrderRepository) domain.OrderUseCase {
	return &orderService{
		orderRepo: orderRepo,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, userUUID string, lines []domain.OrderLine) (*domain.Order, error) {
	return s.orderRepo.PlaceOrder(ctx, userUUID, lines)
}

func (s *orderService) GetOrder(ctx context.Context, id uint, requesterUUID, requesterRole string) (*domain.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserUUID != requesterUUID && requesterRole != domain.RoleAdmin {
		return nil, ErrNotYourOrder
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userUUID string) (*[]domain.Order, error) {
	return s.orderRepo.ListOrdersByUser(ctx, userUUID)
}
