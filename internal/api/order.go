package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/avivros/bookme/internal/domain/order"
)

// OrderDTO is the wire representation of an order.
type OrderDTO struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentStatus bool      `json:"paymentStatus"`
	OrderDate     time.Time `json:"orderDate"`
}

// CreateOrderRequest is the order submission payload. The server assigns
// the order ID. IdempotencyKey is optional; when present, resubmissions
// with the same key return the originally created order.
type CreateOrderRequest struct {
	UserID         string    `json:"userId"`
	TotalAmount    float64   `json:"totalAmount"`
	PaymentStatus  bool      `json:"paymentStatus"`
	OrderDate      time.Time `json:"orderDate"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
}

// ListOrders returns all orders owned by the given user.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, errors.Wrapf(err, "list orders for user %s", userID))
		return
	}

	dtos := make([]OrderDTO, len(orders))
	for i, o := range orders {
		dtos[i] = orderToDTO(o)
	}
	respondJSON(w, http.StatusOK, dtos)
}

// CreateOrder submits a new order and returns it with the assigned ID.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		UserID:         req.UserID,
		TotalAmount:    decimal.NewFromFloat(req.TotalAmount),
		PaymentStatus:  req.PaymentStatus,
		OrderDate:      req.OrderDate,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingUser), errors.Is(err, order.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, r, errors.Wrap(err, "create order"))
		}
		return
	}
	respondJSON(w, http.StatusCreated, orderToDTO(*o))
}

// DeleteOrder removes an order by its identifier.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	if err := h.orders.Delete(r.Context(), orderID); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			respondError(w, http.StatusNotFound, "order not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "delete order %s", orderID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func orderToDTO(o order.Order) OrderDTO {
	return OrderDTO{
		OrderID:       o.ID,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		PaymentStatus: o.PaymentStatus,
		OrderDate:     o.OrderDate,
	}
}
