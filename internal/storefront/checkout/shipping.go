package checkout

import "github.com/shopspring/decimal"

// ShippingTier is one of the fixed fulfillment options.
type ShippingTier int

const (
	TierUnset ShippingTier = iota
	TierPickup
	TierStandard
	TierExpress
)

var (
	feeStandard = decimal.NewFromInt(20)
	feeExpress  = decimal.NewFromInt(30)
)

// Fee returns the tier's fixed shipping fee.
func (t ShippingTier) Fee() decimal.Decimal {
	switch t {
	case TierStandard:
		return feeStandard
	case TierExpress:
		return feeExpress
	default:
		return decimal.Zero
	}
}

// LeadTime describes the delivery window shown to the customer.
func (t ShippingTier) LeadTime() string {
	switch t {
	case TierPickup:
		return "pickup in store"
	case TierStandard:
		return "5-8 business days"
	case TierExpress:
		return "1-2 business days"
	default:
		return ""
	}
}

// RequiresAddress reports whether choosing this tier opens the delivery
// address sub-form.
func (t ShippingTier) RequiresAddress() bool {
	return t == TierStandard || t == TierExpress
}

func (t ShippingTier) String() string {
	switch t {
	case TierPickup:
		return "pickup"
	case TierStandard:
		return "standard"
	case TierExpress:
		return "express"
	default:
		return "unset"
	}
}

// Address is the delivery address captured for paid shipping tiers. Saving
// it is advisory: it does not gate checkout progression.
type Address struct {
	Street     string
	City       string
	PostalCode string
	Note       string
}
