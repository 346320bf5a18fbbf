package client

import "time"

// Book is the catalog entry as served by the API.
type Book struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Author         string  `json:"author"`
	Publishing     string  `json:"publishing"`
	PublishingYear int     `json:"publishingYear"`
	Price          float64 `json:"price"`
	Titel          string  `json:"titel"`
	Img            string  `json:"img,omitempty"`
	Qty            int     `json:"qty"`
}

// User is the account record as served by the API. Password is the stored
// credential; the server returns it as-is and the storefront compares it
// locally on login.
type User struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest registers a new account.
type CreateUserRequest struct {
	FullName string `json:"fullName"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Order is a persisted order as served by the API.
type Order struct {
	OrderID       string    `json:"orderId"`
	UserID        string    `json:"userId"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentStatus bool      `json:"paymentStatus"`
	OrderDate     time.Time `json:"orderDate"`
}

// CreateOrderRequest submits a new order. IdempotencyKey lets the server
// detect resubmissions of the same checkout and replay the original order.
type CreateOrderRequest struct {
	UserID         string    `json:"userId"`
	TotalAmount    float64   `json:"totalAmount"`
	PaymentStatus  bool      `json:"paymentStatus"`
	OrderDate      time.Time `json:"orderDate"`
	IdempotencyKey string    `json:"idempotencyKey,omitempty"`
}
