package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel errors for order validation.
var (
	ErrMissingUser   = fmt.Errorf("userId required")
	ErrInvalidAmount = fmt.Errorf("totalAmount must not be negative")
)

// CreateRequest holds the input for submitting an order.
type CreateRequest struct {
	UserID         string
	TotalAmount    decimal.Decimal
	PaymentStatus  bool
	OrderDate      time.Time
	IdempotencyKey string
}

// Service encapsulates order submission and retrieval logic.
type Service struct {
	orders Repository
	newID  func() string
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	return &Service{
		orders: orders,
		newID:  func() string { return uuid.New().String() },
	}
}

// Create validates the request, assigns a server-side order ID, and persists
// the order. When the request carries an idempotency key that was already
// used, the previously stored order is returned instead of creating a
// duplicate.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if req.UserID == "" {
		return nil, ErrMissingUser
	}
	if req.TotalAmount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	if req.IdempotencyKey != "" {
		existing, err := s.orders.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, errors.Wrap(err, "idempotency lookup")
		}
		if existing != nil {
			return existing, nil
		}
	}

	o := &Order{
		ID:             s.newID(),
		UserID:         req.UserID,
		TotalAmount:    req.TotalAmount.Round(2),
		PaymentStatus:  req.PaymentStatus,
		OrderDate:      req.OrderDate,
		IdempotencyKey: req.IdempotencyKey,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// ListByUser returns all orders owned by the given user.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// Delete removes an order by its identifier.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}
