package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/avivros/bookme/internal/domain/book"
)

// BookDTO is the wire representation of a catalog book.
type BookDTO struct {
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

// ListBooks returns the whole catalog.
func (h *Handler) ListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.List(r.Context())
	if err != nil {
		respondInternal(w, r, errors.Wrap(err, "list books"))
		return
	}

	dtos := make([]BookDTO, len(books))
	for i, b := range books {
		dtos[i] = bookToDTO(b)
	}
	respondJSON(w, http.StatusOK, dtos)
}

// GetBook returns a single book by name, or 404.
func (h *Handler) GetBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	b, err := h.books.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, book.ErrNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "get book %s", name))
		return
	}
	respondJSON(w, http.StatusOK, bookToDTO(*b))
}

// UpdateBook rewrites a book's mutable fields, keyed by name.
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	var dto BookDTO
	if !decodeBody(w, r, &dto) {
		return
	}
	if dto.Name == "" {
		respondError(w, http.StatusBadRequest, "name required")
		return
	}

	b := dtoToBook(dto)
	if err := h.books.Update(r.Context(), &b); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "update book %s", dto.Name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteBook removes a book by name.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.books.DeleteByName(r.Context(), name); err != nil {
		if errors.Is(err, book.ErrNotFound) {
			respondError(w, http.StatusNotFound, "book not found")
			return
		}
		respondInternal(w, r, errors.Wrapf(err, "delete book %s", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func bookToDTO(b book.Book) BookDTO {
	return BookDTO{
		Name:           b.Name,
		Category:       b.Category,
		Author:         b.Author,
		Publishing:     b.Publishing,
		PublishingYear: b.PublishingYear,
		Price:          b.Price.InexactFloat64(),
		Titel:          b.Titel,
		Img:            b.Img,
		Qty:            b.Qty,
	}
}

func dtoToBook(dto BookDTO) book.Book {
	return book.Book{
		Name:           dto.Name,
		Category:       dto.Category,
		Author:         dto.Author,
		Publishing:     dto.Publishing,
		PublishingYear: dto.PublishingYear,
		Price:          decimal.NewFromFloat(dto.Price),
		Titel:          dto.Titel,
		Img:            dto.Img,
		Qty:            dto.Qty,
	}
}
