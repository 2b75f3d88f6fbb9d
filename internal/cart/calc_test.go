package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func kes(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount)
}

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestSubtotalAndItemCount(t *testing.T) {
	t.Parallel()

	items := []Item{
		{ID: "p1", Price: kes(1000), Quantity: 2},
		{ID: "p2", Price: kes(450), Quantity: 3, Available: boolPtr(false)},
	}

	if got := Subtotal(items); !got.Equal(kes(3350)) {
		t.Fatalf("expected subtotal 3350 (unavailable items included), got %s", got)
	}
	if got := ItemCount(items); got != 5 {
		t.Fatalf("expected item count 5, got %d", got)
	}
	if got := Subtotal(nil); !got.IsZero() {
		t.Fatalf("empty subtotal should be zero, got %s", got)
	}
}

func TestShippingCostThreshold(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()

	if got := limits.ShippingCost(kes(4999), TierStandard); !got.Equal(kes(350)) {
		t.Fatalf("expected standard cost below threshold, got %s", got)
	}
	if got := limits.ShippingCost(kes(5000), TierStandard); !got.IsZero() {
		t.Fatalf("threshold is inclusive; expected free shipping, got %s", got)
	}
	if got := limits.ShippingCost(kes(1000), TierExpress); !got.Equal(kes(750)) {
		t.Fatalf("expected express cost, got %s", got)
	}
	if got := limits.ShippingCost(kes(1000), "drone"); !got.Equal(kes(350)) {
		t.Fatalf("unknown tier should fall back to standard, got %s", got)
	}
}

func TestShippingInfoRemaining(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()

	info := limits.ShippingInfoFor(kes(2000))
	if info.IsFree {
		t.Fatal("expected paid shipping at 2000")
	}
	if !info.RemainingForFree.Equal(kes(3000)) {
		t.Fatalf("expected 3000 remaining for free shipping, got %s", info.RemainingForFree)
	}
	if info.Tier != TierStandard {
		t.Fatalf("expected standard tier, got %s", info.Tier)
	}

	info = limits.ShippingInfoFor(kes(7500))
	if !info.IsFree || !info.Cost.IsZero() {
		t.Fatalf("expected free shipping above threshold, got %+v", info)
	}
	if !info.RemainingForFree.IsZero() {
		t.Fatalf("remaining should clamp at zero, got %s", info.RemainingForFree)
	}
}

func TestShippingOptionsQuotes(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()
	options := limits.ShippingOptionsFor(kes(6000))

	if len(options) != 3 {
		t.Fatalf("expected three tiers, got %d", len(options))
	}
	for _, opt := range options {
		switch opt.Tier {
		case TierStandard:
			if !opt.Cost.IsZero() {
				t.Fatalf("standard should be free above threshold, got %s", opt.Cost)
			}
			if !opt.Recommended {
				t.Fatal("standard should be recommended")
			}
		case TierExpress:
			if !opt.Cost.Equal(kes(750)) {
				t.Fatalf("express quote should ignore the free threshold, got %s", opt.Cost)
			}
		case TierInternational:
			if !opt.Cost.Equal(kes(2500)) {
				t.Fatalf("international quote should ignore the free threshold, got %s", opt.Cost)
			}
		}
		if opt.DeliveryWindow == "" {
			t.Fatalf("tier %s missing delivery window", opt.Tier)
		}
	}
}

func TestRecomputeEmptyCartZeroesTotals(t *testing.T) {
	t.Parallel()

	limits := DefaultLimits()
	cart := Cart{Items: []Item{}, Subtotal: kes(99), Shipping: kes(350), Total: kes(449), ItemCount: 4}
	limits.recompute(&cart)

	if !cart.Subtotal.IsZero() || !cart.Shipping.IsZero() || !cart.Total.IsZero() || cart.ItemCount != 0 {
		t.Fatalf("empty cart should zero all derived fields, got %+v", cart)
	}
}

func TestParseShippingTier(t *testing.T) {
	t.Parallel()

	tier, err := ParseShippingTier("express")
	if err != nil || tier != TierExpress {
		t.Fatalf("expected express tier, got %v %v", tier, err)
	}
	if _, err := ParseShippingTier("overnight"); err == nil {
		t.Fatal("expected error for unknown tier")
	}
	if ShippingTier("standard").IsValid() != true {
		t.Fatal("standard should be valid")
	}
}
