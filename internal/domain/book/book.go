package book

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested book does not exist.
var ErrNotFound = errors.New("book not found")

// Book represents a catalog item available for purchase. Name is the
// business key used by the storefront; ID is the storage key.
type Book struct {
	ID             string
	Name           string
	Category       string
	Author         string
	Publishing     string
	PublishingYear int
	Price          decimal.Decimal
	Titel          string
	Img            string
	Qty            int
}

// Repository defines persistence operations for the book catalog.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByName(ctx context.Context, name string) (*Book, error)
	Update(ctx context.Context, b *Book) error
	DeleteByName(ctx context.Context, name string) error
}
