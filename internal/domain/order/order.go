package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Order represents a submitted customer order. Orders are immutable after
// creation except for deletion.
type Order struct {
	ID            string
	UserID        string
	TotalAmount   decimal.Decimal
	PaymentStatus bool
	OrderDate     time.Time

	// IdempotencyKey deduplicates retried submissions. Empty for clients
	// that do not send one.
	IdempotencyKey string
}

// Repository defines persistence operations for orders.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Delete(ctx context.Context, id string) error
}
