package storefront

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivros/bookme/internal/storefront/client"
	"github.com/avivros/bookme/internal/storefront/session"
)

func newTestStorefront(t *testing.T, handler http.Handler) *Storefront {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(client.New(srv.URL))
}

func TestAddToCart_UnauthenticatedYieldsPromptSignal(t *testing.T) {
	s := newTestStorefront(t, http.NotFoundHandler())

	err := s.AddToCart(client.Book{Name: "Dune", Price: 42.50})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.True(t, s.Cart.IsEmpty(), "cart must not be mutated while signed out")
}

func TestAddToCart_AuthenticatedMutates(t *testing.T) {
	s := newTestStorefront(t, http.NotFoundHandler())
	s.Session.SetCurrent(session.Identity{ID: "u-1", Username: "paul"})

	require.NoError(t, s.AddToCart(client.Book{Name: "Dune", Price: 42.50}))
	require.NoError(t, s.AddToCart(client.Book{Name: "Dune", Price: 42.50}))

	assert.Equal(t, 2, s.Cart.Quantity("Dune"))
	assert.Equal(t, "85", s.Cart.Total().String())
}

func TestBrowse_FetchesCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /book", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]client.Book{
			{Name: "Dune", Author: "Frank Herbert", Price: 42.50},
		})
	})
	s := newTestStorefront(t, mux)

	books, err := s.Browse(t.Context())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Name)
}
