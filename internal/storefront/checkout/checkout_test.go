package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avivros/bookme/internal/storefront/cart"
	"github.com/avivros/bookme/internal/storefront/client"
	"github.com/avivros/bookme/internal/storefront/orderbook"
)

type staticIdentity string

func (s staticIdentity) CurrentID() string { return string(s) }

type mockPlacer struct {
	mu       sync.Mutex
	requests []client.CreateOrderRequest
	err      error
	nextID   string
	block    chan struct{} // when set, CreateOrder waits until closed
}

func (m *mockPlacer) CreateOrder(_ context.Context, req client.CreateOrderRequest) (*client.Order, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	if m.err != nil {
		return nil, m.err
	}
	id := m.nextID
	if id == "" {
		id = "order-1"
	}
	return &client.Order{
		OrderID:       id,
		UserID:        req.UserID,
		TotalAmount:   req.TotalAmount,
		PaymentStatus: req.PaymentStatus,
		OrderDate:     req.OrderDate,
	}, nil
}

func (m *mockPlacer) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func validForm() PaymentForm {
	return PaymentForm{
		CardNumber: "1234567890123456",
		Holder:     "A B",
		Expiry:     "12/29",
		CVV:        "123",
	}
}

func duneCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	c.Apply(cart.AddLine{Line: cart.Line{
		BookKey:   "Dune",
		UnitPrice: decimal.RequireFromString("42.50"),
		Quantity:  2,
	}})
	return c
}

// advance to payment-validated with standard shipping
func readyOrchestrator(t *testing.T, c *cart.Cart, placer OrderPlacer, opts ...Option) *Orchestrator {
	t.Helper()
	o := New(c, staticIdentity("u-1"), placer, orderbook.NewIndex(), opts...)
	require.Equal(t, StateFormEntry, o.Begin())
	require.NoError(t, o.ChooseShipping(TierStandard))
	require.NoError(t, o.ValidatePayment(validForm()))
	return o
}

func TestBegin_EmptyCartShortCircuits(t *testing.T) {
	o := New(cart.New(), staticIdentity("u-1"), &mockPlacer{}, orderbook.NewIndex())
	assert.Equal(t, StateEmptyCart, o.Begin())

	_, err := o.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateEmptyCart, o.State())

	o.Reset()
	assert.Equal(t, StateIdle, o.State())
}

func TestSubmit_DuneStandardShippingTotals(t *testing.T) {
	c := duneCart(t)
	placer := &mockPlacer{}
	o := readyOrchestrator(t, c, placer)

	assert.True(t, c.Total().Equal(decimal.RequireFromString("85.00")),
		"cart total %s", c.Total())
	assert.True(t, o.OrderTotal().Equal(decimal.RequireFromString("105.00")),
		"order total %s", o.OrderTotal())

	created, err := o.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, o.State())

	require.Len(t, placer.requests, 1)
	req := placer.requests[0]
	assert.Equal(t, "u-1", req.UserID)
	assert.InDelta(t, 105.00, req.TotalAmount, 0.0001)
	assert.True(t, req.PaymentStatus)
	assert.NotEmpty(t, req.IdempotencyKey)
	assert.Equal(t, "order-1", created.OrderID)
}

func TestValidatePayment_BadExpiryStaysShippingChosen(t *testing.T) {
	o := New(duneCart(t), staticIdentity("u-1"), &mockPlacer{}, orderbook.NewIndex())
	o.Begin()
	require.NoError(t, o.ChooseShipping(TierStandard))

	form := validForm()
	form.Expiry = "13/29"
	err := o.ValidatePayment(form)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expiry", vErr.Field)
	assert.Equal(t, StateShippingChosen, o.State())
}

func TestValidatePayment_TableOfViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PaymentForm)
		field  string
	}{
		{"short card number", func(f *PaymentForm) { f.CardNumber = "123" }, "cardNumber"},
		{"letters in card number", func(f *PaymentForm) { f.CardNumber = "1234abcd90123456" }, "cardNumber"},
		{"blank holder", func(f *PaymentForm) { f.Holder = "  " }, "holder"},
		{"month zero", func(f *PaymentForm) { f.Expiry = "00/29" }, "expiry"},
		{"month thirteen", func(f *PaymentForm) { f.Expiry = "13/29" }, "expiry"},
		{"four digit cvv", func(f *PaymentForm) { f.CVV = "1234" }, "cvv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			var vErr *ValidationError
			require.ErrorAs(t, form.Validate(), &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
	assert.NoError(t, validForm().Validate())
}

func TestSubmit_RequiresIdentity(t *testing.T) {
	c := duneCart(t)
	placer := &mockPlacer{}
	o := New(c, staticIdentity(""), placer, orderbook.NewIndex())
	o.Begin()
	require.NoError(t, o.ChooseShipping(TierStandard))
	require.NoError(t, o.ValidatePayment(validForm()))

	_, err := o.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIdentityMissing)
	assert.Equal(t, StatePaymentValidated, o.State())
	assert.Zero(t, placer.calls())
}

func TestSubmit_SecondWhilePendingIsRejected(t *testing.T) {
	placer := &mockPlacer{block: make(chan struct{})}
	o := readyOrchestrator(t, duneCart(t), placer)

	firstDone := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background())
		firstDone <- err
	}()

	// wait for the first submission to reach the network call
	require.Eventually(t, func() bool {
		return o.State() == StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := o.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(placer.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, placer.calls())
}

func TestSubmit_CompletedMarkerBlocksResubmit(t *testing.T) {
	placer := &mockPlacer{nextID: "X"}
	o := readyOrchestrator(t, duneCart(t), placer)

	created, err := o.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "X", created.OrderID)

	_, err = o.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, placer.calls())
}

func TestSubmit_NewCartSnapshotMintsNewKey(t *testing.T) {
	c := duneCart(t)
	placer := &mockPlacer{}
	o := readyOrchestrator(t, c, placer)

	_, err := o.Submit(context.Background())
	require.NoError(t, err)

	// a changed cart is a fresh checkout attempt
	c.Apply(cart.AddLine{Line: cart.Line{
		BookKey:   "Hyperion",
		UnitPrice: decimal.RequireFromString("30.00"),
		Quantity:  1,
	}})
	o.Begin()
	require.NoError(t, o.ChooseShipping(TierStandard))
	require.NoError(t, o.ValidatePayment(validForm()))

	_, err = o.Submit(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, placer.calls())
	assert.NotEqual(t, placer.requests[0].IdempotencyKey, placer.requests[1].IdempotencyKey)
}

func TestSubmit_FailureIsRetryable(t *testing.T) {
	placer := &mockPlacer{err: errors.New("network down")}
	o := readyOrchestrator(t, duneCart(t), placer)

	_, err := o.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateFailed, o.State())
	assert.Error(t, o.LastError())

	placer.err = nil
	created, err := o.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, o.State())
	assert.NotNil(t, created)
	assert.NoError(t, o.LastError())

	// both attempts carry the same key, letting the server dedupe
	require.Equal(t, 2, placer.calls())
	assert.Equal(t, placer.requests[0].IdempotencyKey, placer.requests[1].IdempotencyKey)
}

func TestSubmit_SuccessInsertsOrderAndSchedulesRedirect(t *testing.T) {
	var (
		scheduledDelay time.Duration
		scheduledFn    func()
		navigatedTo    string
	)
	idx := orderbook.NewIndex()
	o := New(duneCart(t), staticIdentity("u-1"), &mockPlacer{nextID: "X"}, idx,
		WithNavigator(func(view string) { navigatedTo = view }),
		WithScheduler(func(d time.Duration, fn func()) {
			scheduledDelay = d
			scheduledFn = fn
		}),
	)
	o.Begin()
	require.NoError(t, o.ChooseShipping(TierExpress))
	require.NoError(t, o.ValidatePayment(validForm()))

	_, err := o.Submit(context.Background())
	require.NoError(t, err)

	assert.True(t, idx.Contains("X"))
	assert.Equal(t, 2*time.Second, scheduledDelay)
	require.NotNil(t, scheduledFn)
	scheduledFn()
	assert.Equal(t, OrderListView, navigatedTo)
}

func TestSaveAddress_OnlyForDeliveryTiers(t *testing.T) {
	o := New(duneCart(t), staticIdentity("u-1"), &mockPlacer{}, orderbook.NewIndex())
	o.Begin()

	require.NoError(t, o.ChooseShipping(TierPickup))
	assert.ErrorIs(t, o.SaveAddress(Address{Street: "Main 1"}), ErrNoAddressTier)

	require.NoError(t, o.ChooseShipping(TierStandard))
	require.NoError(t, o.SaveAddress(Address{Street: "Main 1", City: "Springfield"}))
	addr, ok := o.Address()
	require.True(t, ok)
	assert.Equal(t, "Springfield", addr.City)

	// the address is advisory: payment proceeds without one too
	require.NoError(t, o.ChooseShipping(TierExpress))
	require.NoError(t, o.ValidatePayment(validForm()))
}

func TestChooseShipping_Fees(t *testing.T) {
	assert.True(t, TierPickup.Fee().IsZero())
	assert.True(t, TierStandard.Fee().Equal(decimal.NewFromInt(20)))
	assert.True(t, TierExpress.Fee().Equal(decimal.NewFromInt(30)))
	assert.False(t, TierPickup.RequiresAddress())
	assert.True(t, TierStandard.RequiresAddress())
	assert.True(t, TierExpress.RequiresAddress())
}
