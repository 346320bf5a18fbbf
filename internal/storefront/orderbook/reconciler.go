package orderbook

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/avivros/bookme/internal/storefront/client"
)

// OrderSource is the slice of the API client the reconciler needs.
type OrderSource interface {
	ListOrders(ctx context.Context, userID string) ([]client.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
}

var _ OrderSource = (*client.Client)(nil)

// IdentitySource answers who is currently signed in.
type IdentitySource interface {
	CurrentID() string
}

// Reconciler merges server-held orders for the current identity into the
// local index and applies user-initiated deletions server-first.
type Reconciler struct {
	index   *Index
	session IdentitySource
	source  OrderSource
}

// NewReconciler wires a reconciler over the given index.
func NewReconciler(index *Index, session IdentitySource, source OrderSource) *Reconciler {
	return &Reconciler{index: index, session: session, source: source}
}

// Refresh fetches the server's order list for the current identity and
// merges it into the index. With no identity it does nothing. When ctx is
// cancelled before the response is merged (view torn down), the local index
// is left untouched.
func (r *Reconciler) Refresh(ctx context.Context) error {
	userID := r.session.CurrentID()
	if userID == "" {
		return nil
	}

	orders, err := r.source.ListOrders(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "list orders")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, o := range orders {
		r.index.Insert(o)
	}
	return nil
}

// Delete removes an order on the server first; the local entry is dropped
// only after the server confirms. A failed delete leaves local state intact.
func (r *Reconciler) Delete(ctx context.Context, orderID string) error {
	if err := r.source.DeleteOrder(ctx, orderID); err != nil {
		return errors.Wrapf(err, "delete order %s", orderID)
	}
	r.index.Remove(orderID)
	return nil
}
