package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shopadmin/internal/auth"
	"shopadmin/internal/domain"
	"shopadmin/internal/mocks"
	"shopadmin/internal/repository"
)

func TestDashboard_Load(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	orders := repository.NewMemoryOrders(store)
	users := repository.NewMemoryUsers(store)

	u := &domain.User{Email: "jane@example.com", Name: "Jane"}
	require.NoError(t, users.Create(ctx, u))
	require.NoError(t, orders.Create(ctx, &domain.Order{UserID: u.ID}))
	require.NoError(t, store.Create(ctx, &domain.Product{Name: "Lamp", Price: 3}))

	svc := NewDashboardService(store, orders)
	d, err := svc.Load(adminCtx())
	require.NoError(t, err)
	assert.Len(t, d.Products, 1)
	require.Len(t, d.Orders, 1)
	assert.Equal(t, "jane@example.com", d.Orders[0].User.Email)
	assert.Empty(t, d.Orders[0].User.Name, "dashboard only expands the email")
}

func TestDashboard_Forbidden(t *testing.T) {
	products := new(mocks.MockProductRepository)
	orders := new(mocks.MockOrderRepository)
	svc := NewDashboardService(products, orders)

	for _, ctx := range []context.Context{context.Background(), customerCtx()} {
		d, err := svc.Load(ctx)
		assert.ErrorIs(t, err, auth.ErrForbidden)
		assert.Nil(t, d)
	}
	products.AssertNotCalled(t, "List", mock.Anything)
	orders.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestDashboard_StorageError(t *testing.T) {
	products := new(mocks.MockProductRepository)
	products.On("List", mock.Anything).Return(nil, errors.New("timeout"))
	svc := NewDashboardService(products, new(mocks.MockOrderRepository))

	_, err := svc.Load(adminCtx())
	assert.Error(t, err)
}
