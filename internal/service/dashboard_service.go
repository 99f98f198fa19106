package service

import (
	"context"
	"fmt"

	"shopadmin/internal/auth"
	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

// Dashboard is the data behind the admin landing page.
type Dashboard struct {
	Admin    *domain.User
	Products []domain.Product
	Orders   []domain.Order
}

type DashboardService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

func NewDashboardService(products repository.ProductRepository, orders repository.OrderRepository) *DashboardService {
	return &DashboardService{products: products, orders: orders}
}

// Load returns all products and all orders, each order carrying its user's email.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	admin, err := auth.RequireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	orders, err := s.orders.List(ctx, repository.OrderListOptions{
		ExpandUser: true,
		UserFields: []string{repository.UserFieldEmail},
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &Dashboard{Admin: admin, Products: products, Orders: orders}, nil
}
