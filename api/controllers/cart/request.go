package cart

import (
	"github.com/shopspring/decimal"

	cartsvc "github.com/amara-labs/zawadi-backend/internal/cart"
)

// ItemPayload is the storefront's candidate item. Price, stock ceiling and
// availability may be omitted and hydrated from the catalog.
type ItemPayload struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name"`
	Image       string          `json:"image"`
	Origin      string          `json:"origin"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	MaxQuantity *int            `json:"maxQuantity"`
	Available   *bool           `json:"available"`
}

type AddItemRequest struct {
	Item     ItemPayload `json:"item" validate:"required"`
	Quantity int         `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

type ImportRequest struct {
	Blob string `json:"blob" validate:"required"`
}

func (p ItemPayload) toItem() cartsvc.Item {
	return cartsvc.Item{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Origin:      p.Origin,
		Category:    p.Category,
		Price:       p.Price,
		MaxQuantity: p.MaxQuantity,
		Available:   p.Available,
	}
}
