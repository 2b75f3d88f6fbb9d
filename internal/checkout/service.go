package checkout

import (
	"context"
	"fmt"

	"github.com/amara-labs/zawadi-backend/internal/cart"
	"github.com/amara-labs/zawadi-backend/internal/orders"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
)

const currencyCode = "KES"

type orderCreator interface {
	CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (*orders.Order, error)
}

type sessionCarts interface {
	Store(ctx context.Context, sessionID string) (*cart.Store, error)
}

// Result reports the outcome of a checkout attempt. A failed validation
// is a normal outcome, not an error.
type Result struct {
	Accepted   bool                  `json:"accepted"`
	Validation cart.ValidationResult `json:"validation"`
	Order      *orders.Order         `json:"order,omitempty"`
}

// Service executes the checkout orchestration for a session's cart.
type Service interface {
	Checkout(ctx context.Context, sessionID string) (*Result, error)
}

type service struct {
	carts  sessionCarts
	orders orderCreator
	logg   *logger.Logger
}

// NewService builds the checkout service.
func NewService(carts sessionCarts, creator orderCreator, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart manager required")
	}
	if creator == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{carts: carts, orders: creator, logg: logg}, nil
}

// Checkout validates the session's cart as a whole, submits it as an
// order, and clears the cart once the order service accepts it. The cart
// is left untouched when validation or submission fails so the shopper
// can correct it and retry.
func (s *service) Checkout(ctx context.Context, sessionID string) (*Result, error) {
	store, err := s.carts.Store(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	validation := store.Validate()
	if !validation.Valid {
		ctx = s.logg.WithSessionID(ctx, sessionID)
		ctx = s.logg.WithField(ctx, "errors", validation.Errors)
		s.logg.Info(ctx, "checkout rejected by cart validation")
		return &Result{Accepted: false, Validation: validation}, nil
	}

	snapshot := store.Cart()
	shipping := store.ShippingInfo()

	items := make([]orders.LineItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, orders.LineItem{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(ctx, orders.CreateOrderRequest{
		SessionID:    sessionID,
		Items:        items,
		Subtotal:     snapshot.Subtotal,
		ShippingCost: snapshot.Shipping,
		ShippingTier: string(shipping.Tier),
		Total:        snapshot.Total,
		Currency:     currencyCode,
	})
	if err != nil {
		return nil, err
	}

	store.Clear(ctx)

	ctx = s.logg.WithSessionID(ctx, sessionID)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":   order.ID,
		"item_count": snapshot.ItemCount,
	})
	s.logg.Info(ctx, "checkout completed")

	return &Result{Accepted: true, Validation: validation, Order: order}, nil
}
