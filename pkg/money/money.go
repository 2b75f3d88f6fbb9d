package money

import "github.com/shopspring/decimal"

// Amounts are Kenyan shillings with two decimal places of precision.

var Zero = decimal.Zero

// FromKES converts a whole-shilling amount into a decimal amount.
func FromKES(amount int) decimal.Decimal {
	return decimal.NewFromInt(int64(amount))
}

// Line computes price x quantity for a single cart line.
func Line(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// Format renders an amount for human-readable messages, e.g. "KES 1500".
func Format(amount decimal.Decimal) string {
	return "KES " + amount.StringFixedBank(0)
}
