package cart

import (
	cartsvc "github.com/amara-labs/zawadi-backend/internal/cart"
)

// CartView is the read-side response for the session's cart.
type CartView struct {
	Cart     cartsvc.Cart         `json:"cart"`
	Shipping cartsvc.ShippingInfo `json:"shipping"`
}

// MutationView accompanies every cart mutation. The validation result is
// part of the payload whether the mutation was applied or rejected.
type MutationView struct {
	Cart       cartsvc.Cart             `json:"cart"`
	Validation cartsvc.ValidationResult `json:"validation"`
}

type ExportView struct {
	Blob string `json:"blob"`
}
