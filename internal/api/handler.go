// Package api exposes the bookstore REST surface: CRUD for books, users,
// and orders under /api.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avivros/bookme/internal/domain/book"
	"github.com/avivros/bookme/internal/domain/order"
	"github.com/avivros/bookme/internal/domain/user"
)

// Handler serves the bookstore API, delegating business logic to the
// injected domain repositories and the order service.
type Handler struct {
	books  book.Repository
	users  user.Repository
	orders *order.Service
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(books book.Repository, users user.Repository, orders *order.Service) *Handler {
	return &Handler{
		books:  books,
		users:  users,
		orders: orders,
	}
}

// Routes returns the chi router for all API endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Route("/book", func(r chi.Router) {
		r.Get("/", h.ListBooks)
		r.Get("/{name}", h.GetBook)
		r.Put("/", h.UpdateBook)
		r.Delete("/{name}", h.DeleteBook)
	})

	r.Route("/user", func(r chi.Router) {
		r.Get("/{userName}", h.GetUser)
		r.Get("/id/{userId}", h.GetUserByID)
		r.Post("/", h.CreateUser)
		r.Put("/", h.UpdateUser)
	})

	r.Route("/order", func(r chi.Router) {
		r.Get("/{userId}", h.ListOrders)
		r.Post("/", h.CreateOrder)
		r.Delete("/{orderId}", h.DeleteOrder)
	})

	return r
}
