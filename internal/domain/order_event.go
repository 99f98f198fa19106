package domain

import "time"

// OrderStatusUpdatedEvent is published after an admin changes an order's status.
type OrderStatusUpdatedEvent struct {
	OrderID   string      `json:"orderId"`
	UserID    string      `json:"userId"`
	Status    OrderStatus `json:"status"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
