package cart

import (
	"github.com/shopspring/decimal"

	"github.com/amara-labs/zawadi-backend/pkg/money"
)

// The calculation engine: pure derivations over a list of items. They are
// re-run in full after every mutation instead of tracking deltas.

// Subtotal sums price x quantity across all items, unavailable ones included.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(money.Line(item.Price, item.Quantity))
	}
	return sum
}

// ItemCount sums quantities across all items.
func ItemCount(items []Item) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Total is subtotal plus shipping.
func Total(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping)
}

// ShippingCost quotes the cost for a tier: zero once the subtotal clears the
// free-shipping threshold, otherwise the tier's flat cost. Unknown tiers
// fall back to standard.
func (l Limits) ShippingCost(subtotal decimal.Decimal, tier ShippingTier) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(l.FreeShippingThreshold) {
		return decimal.Zero
	}
	if cost, ok := l.ShippingCosts[tier]; ok {
		return cost
	}
	return l.ShippingCosts[TierStandard]
}

// ShippingInfo is the standard-tier shipping summary shown alongside the
// cart, including how much more spend earns free shipping.
type ShippingInfo struct {
	Cost             decimal.Decimal `json:"cost"`
	IsFree           bool            `json:"isFree"`
	RemainingForFree decimal.Decimal `json:"remainingForFree"`
	Tier             ShippingTier    `json:"type"`
}

// ShippingInfoFor derives the standard-tier summary for a subtotal.
func (l Limits) ShippingInfoFor(subtotal decimal.Decimal) ShippingInfo {
	cost := l.ShippingCost(subtotal, TierStandard)
	remaining := l.FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return ShippingInfo{
		Cost:             cost,
		IsFree:           cost.IsZero(),
		RemainingForFree: remaining,
		Tier:             TierStandard,
	}
}

// ShippingOption is one quoted tier. The threshold-based free shipping only
// discounts the standard tier's displayed cost; express and international
// always quote their flat cost.
type ShippingOption struct {
	Tier           ShippingTier    `json:"type"`
	Cost           decimal.Decimal `json:"cost"`
	DeliveryWindow string          `json:"deliveryWindow"`
	Recommended    bool            `json:"recommended"`
}

var deliveryWindows = map[ShippingTier]string{
	TierStandard:      "3-5 business days",
	TierExpress:       "1-2 business days",
	TierInternational: "7-14 business days",
}

// ShippingOptionsFor quotes all tiers for a subtotal.
func (l Limits) ShippingOptionsFor(subtotal decimal.Decimal) []ShippingOption {
	options := make([]ShippingOption, 0, len(validShippingTiers))
	for _, tier := range validShippingTiers {
		cost := l.ShippingCosts[tier]
		if tier == TierStandard {
			cost = l.ShippingCost(subtotal, TierStandard)
		}
		options = append(options, ShippingOption{
			Tier:           tier,
			Cost:           cost,
			DeliveryWindow: deliveryWindows[tier],
			Recommended:    tier == TierStandard,
		})
	}
	return options
}

// mergeDuplicates collapses repeated item ids into one line, summing their
// quantities up to the per-item cap. Stored blobs are the only source of
// duplicates; the store's merge-on-add keeps live carts unique.
func (l Limits) mergeDuplicates(items []Item) []Item {
	merged := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		at, seen := index[item.ID]
		if !seen {
			index[item.ID] = len(merged)
			merged = append(merged, item)
			continue
		}
		combined := merged[at].Quantity + item.Quantity
		if combined > l.MaxQuantityPerItem {
			combined = l.MaxQuantityPerItem
		}
		merged[at].Quantity = combined
	}
	return merged
}

// recompute refreshes the derived fields from the item list. An empty cart
// carries zero shipping; there is nothing to ship.
func (l Limits) recompute(c *Cart) {
	if len(c.Items) == 0 {
		c.Subtotal = decimal.Zero
		c.Shipping = decimal.Zero
		c.Total = decimal.Zero
		c.ItemCount = 0
		return
	}
	c.Subtotal = Subtotal(c.Items)
	c.Shipping = l.ShippingCost(c.Subtotal, TierStandard)
	c.Total = Total(c.Subtotal, c.Shipping)
	c.ItemCount = ItemCount(c.Items)
}
