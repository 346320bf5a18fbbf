package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/")
}

func TestListBooks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/book", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Book{{Name: "Dune", Price: 42.5, Qty: 3}})
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
	assert.Equal(t, 42.5, books[0].Price)
}

func TestGetBook_EscapesName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/book/War%20and%20Peace", r.URL.EscapedPath())
		_ = json.NewEncoder(w).Encode(Book{Name: "War and Peace"})
	})

	b, err := c.GetBook(context.Background(), "War and Peace")
	require.NoError(t, err)
	assert.Equal(t, "War and Peace", b.Name)
}

func TestGetBook_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 404, "message": "book not found"})
	})

	_, err := c.GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_SendsBodyAndDecodesResponse(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/order", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "u-1", req.UserID)
		assert.Equal(t, "key-1", req.IdempotencyKey)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Order{
			OrderID:       "o-1",
			UserID:        req.UserID,
			TotalAmount:   req.TotalAmount,
			PaymentStatus: req.PaymentStatus,
			OrderDate:     req.OrderDate,
		})
	})

	o, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		UserID:         "u-1",
		TotalAmount:    105,
		PaymentStatus:  true,
		OrderDate:      now,
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "o-1", o.OrderID)
	assert.True(t, o.OrderDate.Equal(now))
}

func TestDeleteOrder_NoContentIsSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/order/o-1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.DeleteOrder(context.Background(), "o-1"))
}

func TestDo_ServerErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 500, "message": "database unavailable"})
	})

	_, err := c.ListBooks(context.Background())
	var sErr *StatusError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, http.StatusInternalServerError, sErr.StatusCode)
	assert.Contains(t, sErr.Error(), "database unavailable")
}

func TestGetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/paul", r.URL.Path)
		_ = json.NewEncoder(w).Encode(User{UserID: "u-7", UserName: "paul", Password: "melange"})
	})

	u, err := c.GetUser(context.Background(), "paul")
	require.NoError(t, err)
	assert.Equal(t, "u-7", u.UserID)
	assert.Equal(t, "melange", u.Password)
}
