package client

import (
	"context"
	"net/http"
)

// ListBooks fetches the whole catalog.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/book", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a single book by its unique name.
func (c *Client) GetBook(ctx context.Context, name string) (*Book, error) {
	var b Book
	if err := c.do(ctx, http.MethodGet, "/book/"+escape(name), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook rewrites a book's mutable fields, keyed by name.
func (c *Client) UpdateBook(ctx context.Context, b Book) error {
	return c.do(ctx, http.MethodPut, "/book", b, nil)
}

// DeleteBook removes a book by name.
func (c *Client) DeleteBook(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/book/"+escape(name), nil, nil)
}

// GetUser fetches an account by user name.
func (c *Client) GetUser(ctx context.Context, userName string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user/"+escape(userName), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches an account by its identifier.
func (c *Client) GetUserByID(ctx context.Context, userID string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/user/id/"+escape(userID), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a new account and returns it with the assigned ID.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPost, "/user", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser rewrites an existing account's profile fields.
func (c *Client) UpdateUser(ctx context.Context, u User) error {
	return c.do(ctx, http.MethodPut, "/user", u, nil)
}

// ListOrders fetches all orders owned by the given user, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/order/"+escape(userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder submits a new order and returns it with the assigned ID.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var o Order
	if err := c.do(ctx, http.MethodPost, "/order", req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteOrder removes an order by its identifier.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/order/"+escape(orderID), nil, nil)
}
