package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avivros/bookme/internal/domain/order"
)

const (
	listOrdersByUserSQL = `SELECT order_id, user_id, total_amount, payment_status, order_date, idempotency_key
		FROM orders WHERE user_id = $1 ORDER BY order_date DESC`

	getOrderByIdemKeySQL = `SELECT order_id, user_id, total_amount, payment_status, order_date, idempotency_key
		FROM orders WHERE idempotency_key = $1`

	createOrderSQL = `INSERT INTO orders (order_id, user_id, total_amount, payment_status, order_date, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)`

	deleteOrderSQL = `DELETE FROM orders WHERE order_id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// ListByUser returns all orders owned by the given user, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for user %q: %w", userID, err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

// GetByIdempotencyKey returns the order previously created with the given
// idempotency key, or order.ErrNotFound when the key was never used.
func (r *OrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIdemKeySQL, key)
	if err != nil {
		return nil, fmt.Errorf("getting order by idempotency key: %w", err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order by idempotency key: %w", err)
	}
	return &o, nil
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	_, err := r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, o.TotalAmount, o.PaymentStatus, o.OrderDate,
		nullableString(o.IdempotencyKey),
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// Delete removes the order with the given identifier.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteOrderSQL, id)
	if err != nil {
		return fmt.Errorf("deleting order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o    order.Order
		idem sql.NullString
	)
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.PaymentStatus, &o.OrderDate, &idem)
	if err != nil {
		return order.Order{}, fmt.Errorf("scanning order row: %w", err)
	}
	o.IdempotencyKey = idem.String
	return o, nil
}
