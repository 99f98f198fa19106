package domain

import "time"

// ProductImage is an uploaded picture stored inline with the product.
// Data and ContentType are always set together.
type ProductImage struct {
	Data        []byte `json:"-"`
	ContentType string `json:"content_type"`
}

// Product is a catalogue item managed from the admin panel.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Stock       int64         `json:"stock"`
	Image       *ProductImage `json:"image,omitempty"`
}

// HasImage reports whether the product carries a usable image.
func (p *Product) HasImage() bool {
	return p != nil && p.Image != nil && len(p.Image.Data) > 0
}

// ProductFields are the editable attributes of a product.
type ProductFields struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Stock       int64
}

// Apply overwrites every editable attribute of p.
func (f ProductFields) Apply(p *Product) {
	p.Name = f.Name
	p.Price = f.Price
	p.Description = f.Description
	p.Category = f.Category
	p.Stock = f.Stock
}

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusAccepted   OrderStatus = "Accepted"
	OrderStatusDeclined   OrderStatus = "Declined"
	OrderStatusShippedOut OrderStatus = "ShippedOut"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusDeclined,
	OrderStatusShippedOut,
	OrderStatusDelivered,
}

// ParseOrderStatus matches s exactly against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// OrderItem is one order line.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is a customer order. UserID references a User; User is only set when the
// reference was expanded on read.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	User      *User       `json:"user,omitempty"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

const RoleAdmin = "admin"

// User is an account that can sign in or place orders.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	PasswordHash string `json:"-"`
}

// IsAdmin reports whether u may use the admin panel.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
