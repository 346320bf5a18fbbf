// Package checkout drives the cart-to-order conversion: shipping selection,
// payment validation, order submission, and the duplicate-submission guard.
package checkout

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avivros/bookme/internal/storefront/cart"
	"github.com/avivros/bookme/internal/storefront/client"
	"github.com/avivros/bookme/internal/storefront/orderbook"
)

// State is the checkout machine's current position.
type State int

const (
	StateIdle State = iota
	StateFormEntry
	StateEmptyCart
	StateShippingChosen
	StatePaymentValidated
	StateSubmitting
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFormEntry:
		return "form-entry"
	case StateEmptyCart:
		return "empty-cart"
	case StateShippingChosen:
		return "shipping-chosen"
	case StatePaymentValidated:
		return "payment-validated"
	case StateSubmitting:
		return "submitting"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OrderListView is the view the orchestrator redirects to after success.
const OrderListView = "orders"

// redirectDelay leaves the success message visible before redirecting.
const redirectDelay = 2 * time.Second

var (
	// ErrIdentityMissing means submission was attempted while signed out.
	ErrIdentityMissing = errors.New("identity missing: sign in before submitting")
	// ErrEmptyTotal means the order total is not positive.
	ErrEmptyTotal = errors.New("order total must be positive")
	// ErrSubmissionInFlight means a submission is already outstanding.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrAlreadySubmitted means this exact cart snapshot was already turned
	// into an order.
	ErrAlreadySubmitted = errors.New("order already submitted for this cart")
	// ErrNoAddressTier means an address was saved without a delivery tier.
	ErrNoAddressTier = errors.New("address applies only to delivery tiers")
)

// OrderPlacer is the slice of the API client the orchestrator needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*client.Order, error)
}

var _ OrderPlacer = (*client.Client)(nil)

// IdentitySource answers who is currently signed in.
type IdentitySource interface {
	CurrentID() string
}

// Option customizes an Orchestrator, mostly for tests and the CLI.
type Option func(*Orchestrator)

// WithNavigator sets the redirect target invoked after a successful submit.
func WithNavigator(navigate func(view string)) Option {
	return func(o *Orchestrator) { o.navigate = navigate }
}

// WithScheduler replaces the delayed-call scheduler (time.AfterFunc shape).
func WithScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(o *Orchestrator) { o.schedule = schedule }
}

// WithClock replaces the order timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithKeyGen replaces the idempotency key generator.
func WithKeyGen(newKey func() string) Option {
	return func(o *Orchestrator) { o.newKey = newKey }
}

// Orchestrator converts cart contents into a submitted order. It holds an
// explicit state enum, enforces at most one in-flight order-creation request,
// and keeps a durable per-snapshot completion marker so a repeated submit of
// the same cart cannot create a second order.
type Orchestrator struct {
	cart     *cart.Cart
	session  IdentitySource
	placer   OrderPlacer
	index    *orderbook.Index
	navigate func(view string)
	schedule func(d time.Duration, fn func())
	now      func() time.Time
	newKey   func() string

	mu          sync.Mutex
	state       State
	tier        ShippingTier
	address     *Address
	fingerprint string            // cart snapshot covered by idemKey
	idemKey     string
	completed   map[string]string // idempotency key -> created order ID
	lastErr     error
}

// New wires an orchestrator over the given cart, session, and order placer.
func New(c *cart.Cart, session IdentitySource, placer OrderPlacer, index *orderbook.Index, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cart:      c,
		session:   session,
		placer:    placer,
		index:     index,
		navigate:  func(string) {},
		schedule:  func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		now:       time.Now,
		newKey:    uuid.NewString,
		state:     StateIdle,
		completed: make(map[string]string),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the machine's current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the error recorded by the most recent failed submission.
func (o *Orchestrator) LastError() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Begin enters the checkout flow. An empty cart short-circuits to the
// terminal empty-cart display state; otherwise form entry starts.
func (o *Orchestrator) Begin() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cart.IsEmpty() {
		o.state = StateEmptyCart
	} else {
		o.state = StateFormEntry
	}
	return o.state
}

// Reset returns to browsing, the single exit from the empty-cart state. It
// also abandons any partially entered checkout.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateSubmitting {
		return
	}
	o.state = StateIdle
	o.tier = TierUnset
	o.address = nil
	o.lastErr = nil
}

// ChooseShipping selects exactly one shipping tier. Re-choosing from a later
// form state drops the machine back to shipping-chosen since the total may
// have changed.
func (o *Orchestrator) ChooseShipping(tier ShippingTier) error {
	if tier != TierPickup && tier != TierStandard && tier != TierExpress {
		return errors.Errorf("unknown shipping tier %d", tier)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case StateFormEntry, StateShippingChosen, StatePaymentValidated, StateFailed:
	default:
		return errors.Errorf("cannot choose shipping in state %s", o.state)
	}
	o.tier = tier
	o.state = StateShippingChosen
	return nil
}

// SaveAddress stores the delivery address for a paid tier. Saving is
// advisory and does not gate progression to payment; the upstream flow never
// required a complete address and that behavior is kept.
func (o *Orchestrator) SaveAddress(addr Address) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.tier.RequiresAddress() {
		return ErrNoAddressTier
	}
	o.address = &addr
	return nil
}

// Address returns the saved delivery address, if any.
func (o *Orchestrator) Address() (Address, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.address == nil {
		return Address{}, false
	}
	return *o.address, true
}

// ValidatePayment checks the payment form. On success the machine advances
// to payment-validated; any violation keeps it in shipping-chosen and
// returns the validation error.
func (o *Orchestrator) ValidatePayment(form PaymentForm) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateShippingChosen {
		return errors.Errorf("cannot validate payment in state %s", o.state)
	}
	if err := form.Validate(); err != nil {
		return err
	}
	o.state = StatePaymentValidated
	return nil
}

// OrderTotal is the cart total plus the selected tier's fee, rounded to two
// decimal places.
func (o *Orchestrator) OrderTotal() decimal.Decimal {
	o.mu.Lock()
	tier := o.tier
	o.mu.Unlock()
	return o.cart.Total().Add(tier.Fee()).Round(2)
}

// Submit issues exactly one order-creation request for the current cart
// snapshot. While a request is outstanding, further submits return
// ErrSubmissionInFlight. A snapshot that already produced an order returns
// ErrAlreadySubmitted. On success the created order is inserted into the
// local order book and a redirect to the order list is scheduled; on failure
// the machine moves to failed and a fresh attempt is allowed.
func (o *Orchestrator) Submit(ctx context.Context) (*client.Order, error) {
	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	if o.state != StatePaymentValidated && o.state != StateFailed {
		state := o.state
		o.mu.Unlock()
		return nil, errors.Errorf("cannot submit in state %s", state)
	}

	userID := o.session.CurrentID()
	if userID == "" {
		o.mu.Unlock()
		return nil, ErrIdentityMissing
	}

	total := o.cart.Total().Add(o.tier.Fee()).Round(2)
	if !total.IsPositive() {
		o.mu.Unlock()
		return nil, ErrEmptyTotal
	}

	key := o.snapshotKeyLocked()
	if orderID, done := o.completed[key]; done {
		o.mu.Unlock()
		return nil, errors.Wrapf(ErrAlreadySubmitted, "order %s", orderID)
	}

	req := client.CreateOrderRequest{
		UserID:         userID,
		TotalAmount:    total.InexactFloat64(),
		PaymentStatus:  true,
		OrderDate:      o.now(),
		IdempotencyKey: key,
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	created, err := o.placer.CreateOrder(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StateFailed
		o.lastErr = err
		return nil, errors.Wrap(err, "create order")
	}

	o.index.Insert(*created)
	o.completed[key] = created.OrderID
	o.state = StateCompleted
	o.lastErr = nil
	o.schedule(redirectDelay, func() { o.navigate(OrderListView) })
	return created, nil
}

// snapshotKeyLocked returns the idempotency key for the current cart
// snapshot, minting a new one whenever the lines or the tier changed since
// the last call. Caller holds o.mu.
func (o *Orchestrator) snapshotKeyLocked() string {
	var b strings.Builder
	for _, l := range o.cart.Lines() {
		b.WriteString(l.BookKey)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(l.Quantity))
		b.WriteByte('@')
		b.WriteString(l.UnitPrice.String())
		b.WriteByte(';')
	}
	b.WriteString(o.tier.String())

	if fp := b.String(); fp != o.fingerprint || o.idemKey == "" {
		o.fingerprint = fp
		o.idemKey = o.newKey()
	}
	return o.idemKey
}
