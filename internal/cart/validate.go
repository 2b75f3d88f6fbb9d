package cart

import (
	"fmt"

	"github.com/amara-labs/zawadi-backend/pkg/money"
)

// ValidationResult is the structured outcome of a cart operation. Errors
// block the operation; warnings are advisory. Business-rule violations are
// data, never Go errors: the transport layer decides how to render them.
type ValidationResult struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func newResult(errors, warnings []string) ValidationResult {
	if errors == nil {
		errors = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return ValidationResult{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

// ValidateAdd applies the add rules for a candidate item against the current
// item list. The candidate's Quantity field is ignored; quantity is the
// requested amount.
func (l Limits) ValidateAdd(items []Item, candidate Item, quantity int) ValidationResult {
	var errs, warns []string

	if quantity <= 0 {
		errs = append(errs, "quantity must be greater than zero")
	}
	if quantity > l.MaxQuantityPerItem {
		errs = append(errs, fmt.Sprintf("cannot add more than %d of a single item", l.MaxQuantityPerItem))
	}
	if !candidate.Orderable() {
		errs = append(errs, fmt.Sprintf("%s is currently unavailable", itemLabel(candidate)))
	}
	if !candidate.Price.IsPositive() {
		errs = append(errs, fmt.Sprintf("%s has an invalid price", itemLabel(candidate)))
	}
	if candidate.MaxQuantity != nil && quantity > *candidate.MaxQuantity {
		errs = append(errs, fmt.Sprintf("only %d of %s left in stock", *candidate.MaxQuantity, itemLabel(candidate)))
	}
	if ItemCount(items)+quantity > l.MaxItemsInCart {
		errs = append(errs, fmt.Sprintf("cart cannot hold more than %d items", l.MaxItemsInCart))
	}
	if idx, ok := (Cart{Items: items}).findItem(candidate.ID); ok {
		combined := items[idx].Quantity + quantity
		if combined > l.MaxQuantityPerItem {
			errs = append(errs, fmt.Sprintf("cart already has %d of %s; at most %d allowed per item",
				items[idx].Quantity, itemLabel(candidate), l.MaxQuantityPerItem))
		}
	}
	if quantity > l.LargeQuantity {
		warns = append(warns, fmt.Sprintf("large quantity (%d), please review before checkout", quantity))
	}

	return newResult(errs, warns)
}

// ValidateUpdate applies the update rules for an existing line. Quantity
// zero is a removal and passes validation; negative quantities never do.
func (l Limits) ValidateUpdate(items []Item, itemID string, quantity int) ValidationResult {
	var errs, warns []string

	idx, ok := (Cart{Items: items}).findItem(itemID)
	if !ok {
		return newResult([]string{fmt.Sprintf("item %s is not in the cart", itemID)}, nil)
	}
	if quantity < 0 {
		errs = append(errs, "quantity must not be negative")
	}
	if quantity > l.MaxQuantityPerItem {
		errs = append(errs, fmt.Sprintf("cannot keep more than %d of a single item", l.MaxQuantityPerItem))
	}
	existing := items[idx]
	if quantity > 0 && existing.MaxQuantity != nil && quantity > *existing.MaxQuantity {
		errs = append(errs, fmt.Sprintf("only %d of %s left in stock", *existing.MaxQuantity, itemLabel(existing)))
	}
	if quantity > l.LargeQuantity {
		warns = append(warns, fmt.Sprintf("large quantity (%d), please review before checkout", quantity))
	}

	return newResult(errs, warns)
}

// ValidateCart applies the whole-cart rules used as the pre-checkout gate.
// It never mutates state; the subtotal is derived fresh from the items.
func (l Limits) ValidateCart(c Cart) ValidationResult {
	var errs, warns []string

	subtotal := Subtotal(c.Items)

	if subtotal.LessThan(l.MinOrderAmount) {
		errs = append(errs, fmt.Sprintf("minimum order amount is %s", money.Format(l.MinOrderAmount)))
	}
	if subtotal.GreaterThan(l.MaxOrderAmount) {
		errs = append(errs, fmt.Sprintf("maximum order amount is %s", money.Format(l.MaxOrderAmount)))
	}
	if len(c.Items) == 0 {
		warns = append(warns, "cart is empty")
	}
	if unavailable := c.unavailableCount(); unavailable > 0 {
		errs = append(errs, fmt.Sprintf("%d unavailable item(s) in cart", unavailable))
	}
	if subtotal.GreaterThan(l.LargeOrderAmount) {
		warns = append(warns, fmt.Sprintf("orders above %s may need review; contact support if you need help", money.Format(l.LargeOrderAmount)))
	}

	return newResult(errs, warns)
}

func itemLabel(item Item) string {
	if item.Name != "" {
		return item.Name
	}
	return "item " + item.ID
}
