// Package storefront assembles the client-side core: cart, session,
// checkout, and order reconciliation, all owned by one explicitly
// constructed container instead of package-level state.
package storefront

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/avivros/bookme/internal/storefront/cart"
	"github.com/avivros/bookme/internal/storefront/checkout"
	"github.com/avivros/bookme/internal/storefront/client"
	"github.com/avivros/bookme/internal/storefront/orderbook"
	"github.com/avivros/bookme/internal/storefront/session"
)

// ErrAuthRequired is the authentication-prompt signal: the attempted action
// needs a signed-in identity and was suspended without touching any state.
var ErrAuthRequired = errors.New("authentication required")

// Storefront is the application root owning all client-side state.
type Storefront struct {
	API      *client.Client
	Cart     *cart.Cart
	Session  *session.Session
	Checkout *checkout.Orchestrator
	Orders   *orderbook.Reconciler
	Index    *orderbook.Index
}

// New builds a storefront against the given API client. Checkout options
// (navigator, scheduler, clock) pass through to the orchestrator.
func New(api *client.Client, opts ...checkout.Option) *Storefront {
	c := cart.New()
	sess := session.New(api)
	idx := orderbook.NewIndex()
	return &Storefront{
		API:      api,
		Cart:     c,
		Session:  sess,
		Checkout: checkout.New(c, sess, api, idx, opts...),
		Orders:   orderbook.NewReconciler(idx, sess, api),
		Index:    idx,
	}
}

// AddToCart adds one copy of the book to the cart. Without a signed-in
// identity the cart is left untouched and ErrAuthRequired tells the caller
// to prompt for authentication first. Once signed in, cart mutations are
// unconditional.
func (s *Storefront) AddToCart(b client.Book) error {
	if s.Session.CurrentID() == "" {
		return ErrAuthRequired
	}
	s.Cart.Apply(cart.AddLine{Line: cart.Line{
		BookKey:   b.Name,
		UnitPrice: decimal.NewFromFloat(b.Price),
		Quantity:  1,
	}})
	return nil
}

// Browse fetches the catalog.
func (s *Storefront) Browse(ctx context.Context) ([]client.Book, error) {
	return s.API.ListBooks(ctx)
}
