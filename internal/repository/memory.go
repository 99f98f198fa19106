package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopadmin/internal/domain"
)

// MemoryStore is an in-memory document store shared by the product, order and
// user repositories. Documents are copied on the way in and out.
type MemoryStore struct {
	mu           sync.RWMutex
	productsByID map[string]domain.Product
	ordersByID   map[string]domain.Order
	usersByID    map[string]domain.User
	// insertion order, so listings are stable
	productIDs []string
	orderIDs   []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		productsByID: make(map[string]domain.Product),
		ordersByID:   make(map[string]domain.Order),
		usersByID:    make(map[string]domain.User),
	}
}

func newID() string { return uuid.NewString() }

var _ ProductRepository = (*MemoryStore)(nil)

func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = newID()
	m.productsByID[p.ID] = copyProduct(*p)
	m.productIDs = append(m.productIDs, p.ID)
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyProduct(p)
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	f.Apply(&p)
	m.productsByID[id] = p
	cp := copyProduct(p)
	return &cp, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.productsByID, id)
	m.productIDs = removeID(m.productIDs, id)
	return &p, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.productIDs))
	for _, id := range m.productIDs {
		p := m.productsByID[id]
		if p.Image != nil {
			p.Image = &domain.ProductImage{ContentType: p.Image.ContentType}
		}
		out = append(out, p)
	}
	return out, nil
}

func copyProduct(p domain.Product) domain.Product {
	if p.Image != nil {
		img := *p.Image
		img.Data = append([]byte(nil), p.Image.Data...)
		p.Image = &img
	}
	return p
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// MemoryOrders implements OrderRepository on top of a MemoryStore.
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o.ID = newID()
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	stored := *o
	stored.User = nil
	stored.Items = copyItems(o.Items)
	mo.store.ordersByID[o.ID] = stored
	mo.store.orderIDs = append(mo.store.orderIDs, o.ID)
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (mo *MemoryOrders) List(ctx context.Context, opts OrderListOptions) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, 0, len(mo.store.orderIDs))
	for _, id := range mo.store.orderIDs {
		o := copyOrder(mo.store.ordersByID[id])
		if opts.ExpandUser {
			// a dangling reference expands to nothing, like a failed populate
			if u, ok := mo.store.usersByID[o.UserID]; ok {
				o.User = projectUser(u, opts.UserFields)
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (mo *MemoryOrders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o, ok := mo.store.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	mo.store.ordersByID[id] = o
	cp := copyOrder(o)
	return &cp, nil
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = copyItems(o.Items)
	return o
}

func copyItems(items []domain.OrderItem) []domain.OrderItem {
	return append([]domain.OrderItem(nil), items...)
}

// MemoryUsers implements UserRepository on top of a MemoryStore.
type MemoryUsers struct{ store *MemoryStore }

func NewMemoryUsers(store *MemoryStore) *MemoryUsers { return &MemoryUsers{store: store} }

var _ UserRepository = (*MemoryUsers)(nil)

func (us *MemoryUsers) Create(ctx context.Context, u *domain.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	us.store.mu.Lock()
	defer us.store.mu.Unlock()
	for _, existing := range us.store.usersByID {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrAlreadyExists
		}
	}
	u.ID = newID()
	us.store.usersByID[u.ID] = *u
	return nil
}

func (us *MemoryUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	us.store.mu.RLock()
	defer us.store.mu.RUnlock()
	u, ok := us.store.usersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (us *MemoryUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	us.store.mu.RLock()
	defer us.store.mu.RUnlock()
	for _, u := range us.store.usersByID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}
