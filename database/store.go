package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nddat0406/taynguyennuts-sub001/models"
)

var ErrOrderNotFound = errors.New("order not found")

// Store wraps the order tables. Every state transition goes through a
// conditional update so concurrent duplicate callbacks cannot both apply.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, status, total_price, created_at, updated_at FROM orders WHERE id = $1",
		id,
	).Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("query order: %w", err)
	}
	return &o, nil
}

// CompareAndSetStatus flips the order status only if it currently holds
// expected. Returns false when another delivery got there first.
func (s *Store) CompareAndSetStatus(ctx context.Context, id string, expected, next models.OrderStatus) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2",
		id, expected, next,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// FinalizePaid applies the pending→paid transition and materializes the
// order_details batch from the staged order_items in one transaction.
// Either both commit or neither does. Returns false without error when the
// order was no longer pending (duplicate delivery).
func (s *Store) FinalizePaid(ctx context.Context, id string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin finalize tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3",
		id, models.OrderStatusPaid, models.OrderStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO order_details (order_id, product_id, quantity, unit_price)
		 SELECT order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = $1`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("insert order details: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit finalize tx: %w", err)
	}
	return true, nil
}

// CreateOrder inserts the pending order row and its staged line items
// together. Detail rows are not written here; they appear only once the
// order is paid.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create tx: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"INSERT INTO orders (id, user_id, status, total_price) VALUES ($1, $2, $3, $4) RETURNING created_at, updated_at",
		order.ID, order.UserID, order.Status, order.TotalPrice,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4)",
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create tx: %w", err)
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, status, total_price, created_at, updated_at FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var result []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
