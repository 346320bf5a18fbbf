package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avivros/bookme/internal/domain/book"
)

const (
	listBooksSQL = `SELECT id, name, category, author, publishing, publishing_year, price, titel, img, qty
		FROM books ORDER BY name`

	getBookByNameSQL = `SELECT id, name, category, author, publishing, publishing_year, price, titel, img, qty
		FROM books WHERE name = $1`

	updateBookSQL = `UPDATE books
		SET category = $2, author = $3, publishing = $4, publishing_year = $5, price = $6, titel = $7, img = $8, qty = $9
		WHERE name = $1`

	deleteBookByNameSQL = `DELETE FROM books WHERE name = $1`
)

var _ book.Repository = (*BookRepository)(nil)

// BookRepository implements book.Repository backed by PostgreSQL.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository returns a BookRepository that uses the given pool.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

// List returns the whole catalog ordered by book name.
func (r *BookRepository) List(ctx context.Context) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, listBooksSQL)
	if err != nil {
		return nil, fmt.Errorf("listing books: %w", err)
	}
	return pgx.CollectRows(rows, scanBook)
}

// GetByName returns a single book by its unique name.
func (r *BookRepository) GetByName(ctx context.Context, name string) (*book.Book, error) {
	rows, err := r.pool.Query(ctx, getBookByNameSQL, name)
	if err != nil {
		return nil, fmt.Errorf("getting book %q: %w", name, err)
	}

	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrNotFound
		}
		return nil, fmt.Errorf("getting book %q: %w", name, err)
	}
	return &b, nil
}

// Update rewrites all mutable fields of the book identified by name.
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	tag, err := r.pool.Exec(ctx, updateBookSQL,
		b.Name, b.Category, b.Author, b.Publishing, b.PublishingYear,
		b.Price, b.Titel, nullableString(b.Img), b.Qty,
	)
	if err != nil {
		return fmt.Errorf("updating book %q: %w", b.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

// DeleteByName removes the book with the given name.
func (r *BookRepository) DeleteByName(ctx context.Context, name string) error {
	tag, err := r.pool.Exec(ctx, deleteBookByNameSQL, name)
	if err != nil {
		return fmt.Errorf("deleting book %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrNotFound
	}
	return nil
}

func scanBook(row pgx.CollectableRow) (book.Book, error) {
	var (
		b   book.Book
		img sql.NullString
	)
	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.Author, &b.Publishing,
		&b.PublishingYear, &b.Price, &b.Titel, &img, &b.Qty,
	)
	if err != nil {
		return book.Book{}, fmt.Errorf("scanning book row: %w", err)
	}
	b.Img = img.String
	return b, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
