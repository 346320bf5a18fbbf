package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	orders  map[string]Order
	created int
}

func newMockRepo() *mockRepo {
	return &mockRepo{orders: map[string]Order{}}
}

func (m *mockRepo) ListByUser(_ context.Context, userID string) ([]Order, error) {
	var out []Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockRepo) GetByIdempotencyKey(_ context.Context, key string) (*Order, error) {
	for _, o := range m.orders {
		if o.IdempotencyKey == key {
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Create(_ context.Context, o *Order) error {
	m.created++
	m.orders[o.ID] = *o
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func validRequest() CreateRequest {
	return CreateRequest{
		UserID:        "u-1",
		TotalAmount:   decimal.RequireFromString("105.00"),
		PaymentStatus: true,
		OrderDate:     time.Now().UTC(),
	}
}

func TestCreate_AssignsIDAndRounds(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	req := validRequest()
	req.TotalAmount = decimal.RequireFromString("105.005")

	o, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, o.ID)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("105.01")),
		"got %s", o.TotalAmount)
	assert.Equal(t, 1, repo.created)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	req := validRequest()
	req.UserID = ""
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingUser)

	req = validRequest()
	req.TotalAmount = decimal.RequireFromString("-1")
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCreate_IdempotencyKeyReplaysStoredOrder(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	req := validRequest()
	req.IdempotencyKey = "key-1"

	first, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.created, "replay must not persist a second order")
}

func TestCreate_DistinctKeysCreateDistinctOrders(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	a := validRequest()
	a.IdempotencyKey = "key-a"
	b := validRequest()
	b.IdempotencyKey = "key-b"

	first, err := svc.Create(context.Background(), a)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), b)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, repo.created)
}

func TestDelete_MissingOrder(t *testing.T) {
	svc := NewService(newMockRepo())
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), ErrNotFound)
}
