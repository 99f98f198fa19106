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

type orderFixture struct {
	store  *repository.MemoryStore
	orders *repository.MemoryOrders
	users  *repository.MemoryUsers
	pub    *mocks.MockPublisher
	svc    *OrderService
}

func setupOrders(t *testing.T, guard bool) *orderFixture {
	t.Helper()
	store := repository.NewMemoryStore()
	f := &orderFixture{
		store:  store,
		orders: repository.NewMemoryOrders(store),
		users:  repository.NewMemoryUsers(store),
		pub:    new(mocks.MockPublisher),
	}
	f.svc = NewOrderService(f.orders, f.pub, Policy{GuardMutations: guard})
	return f
}

func (f *orderFixture) seedOrder(t *testing.T) *domain.Order {
	t.Helper()
	ctx := context.Background()
	u := &domain.User{Email: "jane@example.com", Name: "Jane", Role: "customer"}
	require.NoError(t, f.users.Create(ctx, u))
	o := &domain.Order{UserID: u.ID, Items: []domain.OrderItem{{ProductID: "p1", Quantity: 1, Price: 3}}, Total: 3}
	require.NoError(t, f.orders.Create(ctx, o))
	return o
}

func TestOrderService_UpdateStatus(t *testing.T) {
	f := setupOrders(t, true)
	o := f.seedOrder(t)
	f.pub.On("Publish", mock.Anything, EventOrderStatusUpdated, mock.MatchedBy(func(evt domain.OrderStatusUpdatedEvent) bool {
		return evt.OrderID == o.ID && evt.Status == domain.OrderStatusShippedOut
	})).Return(nil).Once()

	got, err := f.svc.UpdateStatus(adminCtx(), o.ID, "ShippedOut")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShippedOut, got.Status)

	stored, _ := f.orders.GetByID(context.Background(), o.ID)
	assert.Equal(t, domain.OrderStatusShippedOut, stored.Status)
	f.pub.AssertExpectations(t)
}

func TestOrderService_UpdateStatus_AnyTransition(t *testing.T) {
	f := setupOrders(t, true)
	o := f.seedOrder(t)
	f.pub.On("Publish", mock.Anything, EventOrderStatusUpdated, mock.Anything).Return(nil)

	for _, st := range []string{"Delivered", "Pending", "Declined", "Accepted", "Declined"} {
		got, err := f.svc.UpdateStatus(adminCtx(), o.ID, st)
		require.NoError(t, err, st)
		assert.Equal(t, domain.OrderStatus(st), got.Status)
	}
}

func TestOrderService_UpdateStatus_Invalid(t *testing.T) {
	f := setupOrders(t, true)
	o := f.seedOrder(t)

	for _, st := range []string{"", "pending", "Shipped", "DELIVERED", " Accepted", "Cancelled"} {
		_, err := f.svc.UpdateStatus(adminCtx(), o.ID, st)
		assert.ErrorIs(t, err, ErrInvalidInput, st)
	}

	stored, _ := f.orders.GetByID(context.Background(), o.ID)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	f.pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_UpdateStatus_NotFound(t *testing.T) {
	f := setupOrders(t, true)
	_, err := f.svc.UpdateStatus(adminCtx(), "missing", "Accepted")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderService_UpdateStatus_Forbidden(t *testing.T) {
	f := setupOrders(t, true)
	o := f.seedOrder(t)

	_, err := f.svc.UpdateStatus(customerCtx(), o.ID, "Accepted")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	unguarded := NewOrderService(f.orders, nil, Policy{})
	got, err := unguarded.UpdateStatus(context.Background(), o.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, got.Status)
}

func TestOrderService_PublishFailureIsNotFatal(t *testing.T) {
	f := setupOrders(t, true)
	o := f.seedOrder(t)
	f.pub.On("Publish", mock.Anything, EventOrderStatusUpdated, mock.Anything).Return(errors.New("broker down"))

	got, err := f.svc.UpdateStatus(adminCtx(), o.ID, "Accepted")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusAccepted, got.Status)
}

func TestOrderService_View(t *testing.T) {
	f := setupOrders(t, true)
	f.seedOrder(t)

	_, err := f.svc.View(context.Background())
	assert.ErrorIs(t, err, auth.ErrForbidden)
	_, err = f.svc.View(customerCtx())
	assert.ErrorIs(t, err, auth.ErrForbidden)

	view, err := f.svc.View(adminCtx())
	require.NoError(t, err)
	assert.Equal(t, "admin-1", view.Admin.ID)
	require.Len(t, view.Orders, 1)
	assert.Equal(t, "Jane", view.Orders[0].User.Name)
}

func TestOrderService_View_StorageError(t *testing.T) {
	repo := new(mocks.MockOrderRepository)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	svc := NewOrderService(repo, nil, Policy{GuardMutations: true})

	_, err := svc.View(adminCtx())
	require.Error(t, err)
	assert.False(t, errors.Is(err, auth.ErrForbidden))
	assert.False(t, errors.Is(err, repository.ErrNotFound))
}
