package service

import (
	"context"
	"fmt"
	"log"

	"shopadmin/internal/auth"
	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

const EventOrderStatusUpdated = "order.status_updated"

// Publisher sends domain events to a broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// OrderService covers the admin view of orders and status changes.
//
// Status changes are a flat reassignment: any known status may replace any
// other, including after Delivered or Declined.
type OrderService struct {
	orders    repository.OrderRepository
	publisher Publisher
	policy    Policy
}

// NewOrderService builds the service. publisher may be nil.
func NewOrderService(orders repository.OrderRepository, publisher Publisher, policy Policy) *OrderService {
	return &OrderService{orders: orders, publisher: publisher, policy: policy}
}

// OrdersView is the data behind the orders page.
type OrdersView struct {
	Admin  *domain.User
	Orders []domain.Order
}

// View lists every order with its user fully expanded. Admins only.
func (s *OrderService) View(ctx context.Context) (*OrdersView, error) {
	admin, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.List(ctx, repository.OrderListOptions{ExpandUser: true})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &OrdersView{Admin: admin, Orders: orders}, nil
}

// UpdateStatus validates status and overwrites it on the order.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	if err := s.policy.authorizeMutation(ctx); err != nil {
		return nil, err
	}
	st, ok := domain.ParseOrderStatus(status)
	if !ok {
		return nil, ErrInvalidInput
	}
	o, err := s.orders.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, wrapRepoErr("update order status", id, err)
	}
	log.Printf("[admin.order.status] order=%s status=%s", o.ID, o.Status)
	s.publishStatusUpdated(ctx, o)
	return o, nil
}

func (s *OrderService) publishStatusUpdated(ctx context.Context, o *domain.Order) {
	if s.publisher == nil {
		return
	}
	evt := domain.OrderStatusUpdatedEvent{
		OrderID:   o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		UpdatedAt: o.UpdatedAt,
	}
	if err := s.publisher.Publish(ctx, EventOrderStatusUpdated, evt); err != nil {
		log.Printf("[admin.order.status] publish failed order=%s: %v", o.ID, err)
	}
}
