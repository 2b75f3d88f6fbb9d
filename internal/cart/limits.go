package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/money"
)

// ShippingTier identifies a quoted shipping option.
type ShippingTier string

const (
	TierStandard      ShippingTier = "standard"
	TierExpress       ShippingTier = "express"
	TierInternational ShippingTier = "international"
)

var validShippingTiers = []ShippingTier{
	TierStandard,
	TierExpress,
	TierInternational,
}

// String implements fmt.Stringer.
func (s ShippingTier) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ShippingTier) IsValid() bool {
	for _, candidate := range validShippingTiers {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShippingTier converts raw input into a ShippingTier.
func ParseShippingTier(value string) (ShippingTier, error) {
	for _, candidate := range validShippingTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping tier %q", value)
}

// Limits holds the deployment-static business thresholds used by the
// validation and calculation rules. Monetary amounts are KES.
type Limits struct {
	MaxQuantityPerItem int
	MaxItemsInCart     int
	LargeQuantity      int

	MinOrderAmount   decimal.Decimal
	MaxOrderAmount   decimal.Decimal
	LargeOrderAmount decimal.Decimal

	FreeShippingThreshold decimal.Decimal
	ShippingCosts         map[ShippingTier]decimal.Decimal
}

// LimitsFromConfig builds Limits from the envconfig-backed cart section.
func LimitsFromConfig(cfg config.CartConfig) Limits {
	return Limits{
		MaxQuantityPerItem:    cfg.MaxQuantityPerItem,
		MaxItemsInCart:        cfg.MaxItemsInCart,
		LargeQuantity:         cfg.LargeQuantity,
		MinOrderAmount:        money.FromKES(cfg.MinOrderAmount),
		MaxOrderAmount:        money.FromKES(cfg.MaxOrderAmount),
		LargeOrderAmount:      money.FromKES(cfg.LargeOrderAmount),
		FreeShippingThreshold: money.FromKES(cfg.FreeShippingThreshold),
		ShippingCosts: map[ShippingTier]decimal.Decimal{
			TierStandard:      money.FromKES(cfg.ShippingStandard),
			TierExpress:       money.FromKES(cfg.ShippingExpress),
			TierInternational: money.FromKES(cfg.ShippingInternational),
		},
	}
}

// DefaultLimits returns the documented defaults; used by tests and as a
// fallback when no config is supplied.
func DefaultLimits() Limits {
	return LimitsFromConfig(config.CartConfig{
		MaxQuantityPerItem:    10,
		MaxItemsInCart:        50,
		LargeQuantity:         5,
		MinOrderAmount:        500,
		MaxOrderAmount:        1000000,
		LargeOrderAmount:      200000,
		FreeShippingThreshold: 5000,
		ShippingStandard:      350,
		ShippingExpress:       750,
		ShippingInternational: 2500,
	})
}
