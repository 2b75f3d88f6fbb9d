package cart

import "github.com/shopspring/decimal"

// Item is one product line in a cart. Price is the unit price captured at
// add time; it is not re-fetched on later mutations. MaxQuantity mirrors the
// catalog's remaining stock and Available its orderability flag; both are
// advisory hints supplied by the caller, nil when unknown.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Origin      string          `json:"origin,omitempty"`
	Category    string          `json:"category,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	MaxQuantity *int            `json:"maxQuantity,omitempty"`
	Available   *bool           `json:"available,omitempty"`
}

// Orderable reports whether the item can be added to a cart. Unset means
// assumed available.
func (i Item) Orderable() bool {
	return i.Available == nil || *i.Available
}

func (i Item) clone() Item {
	out := i
	if i.MaxQuantity != nil {
		v := *i.MaxQuantity
		out.MaxQuantity = &v
	}
	if i.Available != nil {
		v := *i.Available
		out.Available = &v
	}
	return out
}

// Cart is the aggregate of line items plus derived totals. The derived
// fields are never authored directly; they are recomputed from Items after
// every mutation and before every snapshot write.
type Cart struct {
	Items     []Item          `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// EmptyCart returns a cart with zeroed totals and no items.
func EmptyCart() Cart {
	return Cart{
		Items:     []Item{},
		Subtotal:  decimal.Zero,
		Shipping:  decimal.Zero,
		Total:     decimal.Zero,
		ItemCount: 0,
	}
}

// Clone returns a deep copy so callers can never mutate store-owned state.
func (c Cart) Clone() Cart {
	out := c
	out.Items = make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		out.Items = append(out.Items, item.clone())
	}
	return out
}

func (c Cart) findItem(itemID string) (int, bool) {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i, true
		}
	}
	return 0, false
}

func (c Cart) unavailableCount() int {
	count := 0
	for _, item := range c.Items {
		if !item.Orderable() {
			count++
		}
	}
	return count
}
