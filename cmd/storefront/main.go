// Command storefront drives a complete shopping flow against a running API
// server: browse the catalog, sign in (or register), fill the cart, check
// out, and reconcile the order list afterwards.
package main

import (
	"context"
	"flag"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"go.uber.org/zap"

	"github.com/avivros/bookme/internal/storefront"
	"github.com/avivros/bookme/internal/storefront/checkout"
	"github.com/avivros/bookme/internal/storefront/client"
)

type options struct {
	apiURL string

	username string
	password string
	register bool
	fullName string
	email    string

	books    string
	quantity int
	shipping string
	street   string
	city     string
	postal   string

	cardNumber string
	cardHolder string
	cardExpiry string
	cardCVV    string
}

func main() {
	var o options
	flag.StringVar(&o.apiURL, "api-url", "http://localhost:8080/api", "base URL of the bookstore API")
	flag.StringVar(&o.username, "username", "", "account user name")
	flag.StringVar(&o.password, "password", "", "account password")
	flag.BoolVar(&o.register, "register", false, "create the account instead of signing in")
	flag.StringVar(&o.fullName, "full-name", "", "full name for registration")
	flag.StringVar(&o.email, "email", "", "email for registration")
	flag.StringVar(&o.books, "books", "", "comma-separated book names to buy; empty shows the order list only")
	flag.IntVar(&o.quantity, "qty", 1, "copies of each book")
	flag.StringVar(&o.shipping, "shipping", "standard", "shipping tier: pickup, standard, or express")
	flag.StringVar(&o.street, "street", "", "delivery street and number")
	flag.StringVar(&o.city, "city", "", "delivery city")
	flag.StringVar(&o.postal, "postal", "", "delivery postal code")
	flag.StringVar(&o.cardNumber, "card-number", "", "16-digit card number")
	flag.StringVar(&o.cardHolder, "card-holder", "", "card holder name")
	flag.StringVar(&o.cardExpiry, "card-expiry", "", "card expiry, MM/YY")
	flag.StringVar(&o.cardCVV, "card-cvv", "", "3-digit CVV")
	flag.Parse()

	app.Run(func(ctx context.Context, lg *zap.Logger, _ *app.Telemetry) error {
		return run(ctx, lg, o)
	})
}

func run(ctx context.Context, lg *zap.Logger, o options) error {
	redirected := make(chan string, 1)
	sf := storefront.New(client.New(o.apiURL),
		checkout.WithNavigator(func(view string) { redirected <- view }),
	)

	catalog, err := sf.Browse(ctx)
	if err != nil {
		return errors.Wrap(err, "browse catalog")
	}
	lg.Info("Catalog loaded", zap.Int("books", len(catalog)))

	wanted, err := selectBooks(catalog, o.books)
	if err != nil {
		return err
	}

	// Adding before sign-in is suspended with a prompt instead of mutating
	// the cart.
	if len(wanted) > 0 {
		if err := sf.AddToCart(wanted[0]); errors.Is(err, storefront.ErrAuthRequired) {
			lg.Info("Add to cart suspended, sign in first")
		}
	}

	if err := signIn(ctx, sf, o); err != nil {
		return err
	}
	lg.Info("Signed in", zap.String("user_id", sf.Session.CurrentID()))

	if len(wanted) == 0 {
		return showOrders(ctx, lg, sf)
	}

	for _, b := range wanted {
		for range o.quantity {
			if err := sf.AddToCart(b); err != nil {
				return errors.Wrapf(err, "add %s", b.Name)
			}
		}
		lg.Info("Added to cart", zap.String("book", b.Name), zap.Int("qty", o.quantity))
	}
	lg.Info("Cart ready", zap.String("total", sf.Cart.Total().String()))

	if err := checkOut(ctx, lg, sf, o); err != nil {
		return err
	}

	// Wait for the post-success redirect to the order list, then reconcile.
	select {
	case view := <-redirected:
		lg.Info("Redirected", zap.String("view", view))
	case <-ctx.Done():
		return ctx.Err()
	}
	return showOrders(ctx, lg, sf)
}

func selectBooks(catalog []client.Book, names string) ([]client.Book, error) {
	if names == "" {
		return nil, nil
	}
	byName := make(map[string]client.Book, len(catalog))
	for _, b := range catalog {
		byName[b.Name] = b
	}

	var out []client.Book
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		b, ok := byName[name]
		if !ok {
			return nil, errors.Errorf("book %q is not in the catalog", name)
		}
		out = append(out, b)
	}
	return out, nil
}

func signIn(ctx context.Context, sf *storefront.Storefront, o options) error {
	if o.username == "" || o.password == "" {
		return errors.New("username and password are required")
	}
	if o.register {
		_, err := sf.Session.Register(ctx, o.fullName, o.username, o.email, o.password)
		return errors.Wrap(err, "register")
	}
	_, err := sf.Session.Login(ctx, o.username, o.password)
	return errors.Wrap(err, "login")
}

func checkOut(ctx context.Context, lg *zap.Logger, sf *storefront.Storefront, o options) error {
	co := sf.Checkout
	if co.Begin() == checkout.StateEmptyCart {
		return errors.New("cart is empty, nothing to check out")
	}

	tier, err := parseTier(o.shipping)
	if err != nil {
		return err
	}
	if err := co.ChooseShipping(tier); err != nil {
		return errors.Wrap(err, "choose shipping")
	}
	if tier.RequiresAddress() && o.street != "" {
		if err := co.SaveAddress(checkout.Address{
			Street:     o.street,
			City:       o.city,
			PostalCode: o.postal,
		}); err != nil {
			return errors.Wrap(err, "save address")
		}
	}

	if err := co.ValidatePayment(checkout.PaymentForm{
		CardNumber: o.cardNumber,
		Holder:     o.cardHolder,
		Expiry:     o.cardExpiry,
		CVV:        o.cardCVV,
	}); err != nil {
		return errors.Wrap(err, "validate payment")
	}

	lg.Info("Submitting order",
		zap.String("shipping", tier.String()),
		zap.String("total", co.OrderTotal().String()),
	)
	created, err := co.Submit(ctx)
	if err != nil {
		return errors.Wrap(err, "submit order")
	}
	lg.Info("Order placed",
		zap.String("order_id", created.OrderID),
		zap.Float64("total", created.TotalAmount),
	)
	return nil
}

func showOrders(ctx context.Context, lg *zap.Logger, sf *storefront.Storefront) error {
	if err := sf.Orders.Refresh(ctx); err != nil {
		return errors.Wrap(err, "refresh orders")
	}
	for _, o := range sf.Index.Orders() {
		lg.Info("Order",
			zap.String("order_id", o.OrderID),
			zap.Float64("total", o.TotalAmount),
			zap.Bool("paid", o.PaymentStatus),
			zap.Time("date", o.OrderDate),
		)
	}
	return nil
}

func parseTier(s string) (checkout.ShippingTier, error) {
	switch s {
	case "pickup":
		return checkout.TierPickup, nil
	case "standard":
		return checkout.TierStandard, nil
	case "express":
		return checkout.TierExpress, nil
	default:
		return checkout.TierUnset, errors.Errorf("unknown shipping tier %q", s)
	}
}
