package models

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

type Order struct {
	ID         string      `json:"id"`
	UserID     int         `json:"user_id"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// OrderItem is a staged line item, written at checkout while the order is
// still pending. It becomes an OrderDetail only when the order is paid.
type OrderItem struct {
	OrderID   string  `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// OrderDetail is a committed line item of a paid order. The whole batch for
// an order is written in the same transaction as the pending→paid flip and
// is never mutated afterwards.
type OrderDetail struct {
	ID        int     `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateOrderRequest struct {
	UserID int               `json:"user_id" binding:"required"`
	Items  []CreateOrderItem `json:"items" binding:"required,min=1,dive"`
}

type CreateOrderItem struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type OrderEvent struct {
	OrderID    string      `json:"order_id"`
	UserID     int         `json:"user_id"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"total_price"`
	EventType  string      `json:"event_type"` // order_created, payment_success, payment_failed
}
