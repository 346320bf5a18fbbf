package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3}$`)
)

// PaymentForm carries the card details entered at checkout. Validation is
// purely syntactic; no gateway is involved.
type PaymentForm struct {
	CardNumber string
	Holder     string
	Expiry     string // MM/YY
	CVV        string
}

// ValidationError reports the first payment form field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payment form: %s %s", e.Field, e.Reason)
}

// Validate checks the form syntactically: 16-digit card number, non-empty
// holder, MM/YY expiry with month 01-12, 3-digit CVV.
func (f PaymentForm) Validate() error {
	if !cardNumberRe.MatchString(f.CardNumber) {
		return &ValidationError{Field: "cardNumber", Reason: "must be exactly 16 digits"}
	}
	if strings.TrimSpace(f.Holder) == "" {
		return &ValidationError{Field: "holder", Reason: "must not be empty"}
	}
	if !expiryRe.MatchString(f.Expiry) {
		return &ValidationError{Field: "expiry", Reason: "must match MM/YY with month 01-12"}
	}
	if !cvvRe.MatchString(f.CVV) {
		return &ValidationError{Field: "cvv", Reason: "must be exactly 3 digits"}
	}
	return nil
}
