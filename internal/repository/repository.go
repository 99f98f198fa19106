package repository

import (
	"context"
	"errors"

	"shopadmin/internal/domain"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique key is taken.
	ErrAlreadyExists = errors.New("already exists")
)

// ProductRepository stores products. List omits image bytes but keeps the
// content type, so callers can still tell whether an image exists.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// Update replaces the editable fields and returns the updated product.
	Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error)
	// Delete removes the product and returns what was removed.
	Delete(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

// OrderListOptions controls expansion of the user reference.
type OrderListOptions struct {
	ExpandUser bool
	// UserFields limits the expanded user to these fields (id is always kept).
	// Empty means every public field.
	UserFields []string
}

// OrderRepository stores orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, opts OrderListOptions) ([]domain.Order, error)
	// UpdateStatus overwrites the status and returns the updated order.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

// UserRepository stores user accounts. Email is unique.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// User fields that can be requested through OrderListOptions.UserFields.
const (
	UserFieldEmail = "email"
	UserFieldName  = "name"
	UserFieldRole  = "role"
)

// projectUser copies the requested public fields of u.
func projectUser(u domain.User, fields []string) *domain.User {
	out := &domain.User{ID: u.ID}
	if len(fields) == 0 {
		out.Email, out.Name, out.Role = u.Email, u.Name, u.Role
		return out
	}
	for _, f := range fields {
		switch f {
		case UserFieldEmail:
			out.Email = u.Email
		case UserFieldName:
			out.Name = u.Name
		case UserFieldRole:
			out.Role = u.Role
		}
	}
	return out
}
