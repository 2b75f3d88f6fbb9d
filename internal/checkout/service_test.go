package checkout

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amara-labs/zawadi-backend/internal/cart"
	"github.com/amara-labs/zawadi-backend/internal/orders"
	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
	"github.com/amara-labs/zawadi-backend/pkg/storage/kv"
)

type stubCreator struct {
	requests []orders.CreateOrderRequest
	order    *orders.Order
	err      error
}

func (s *stubCreator) CreateOrder(ctx context.Context, req orders.CreateOrderRequest) (*orders.Order, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestManager(t *testing.T) *cart.Manager {
	t.Helper()
	snaps, err := cart.NewSnapshots(kv.NewMemoryStore(), config.SnapshotConfig{
		KeyPrefix: "test:cart",
		TTL:       168 * time.Hour,
	}, cart.DefaultLimits(), testLogger())
	if err != nil {
		t.Fatalf("new snapshots: %v", err)
	}
	manager, err := cart.NewManager(snaps, cart.DefaultLimits(), testLogger(), nil)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func orderableItem(id, name string, price int64) cart.Item {
	available := true
	return cart.Item{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Available: &available,
	}
}

func TestCheckoutSubmitsOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	store, err := manager.Store(ctx, "sess_1")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if result := store.AddItem(ctx, orderableItem("prod_1", "Kiondo basket", 1500), 2); !result.Valid {
		t.Fatalf("add rejected: %+v", result)
	}

	creator := &stubCreator{order: &orders.Order{ID: "ord_001", Status: "pending"}}
	svc, err := NewService(manager, creator, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Checkout(ctx, "sess_1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("expected acceptance, got %+v", result.Validation)
	}
	if result.Order == nil || result.Order.ID != "ord_001" {
		t.Fatalf("unexpected order %+v", result.Order)
	}

	if len(creator.requests) != 1 {
		t.Fatalf("expected one order request, got %d", len(creator.requests))
	}
	req := creator.requests[0]
	if req.SessionID != "sess_1" || req.Currency != "KES" {
		t.Fatalf("unexpected request %+v", req)
	}
	if !req.Subtotal.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("unexpected subtotal %s", req.Subtotal)
	}
	if !req.ShippingCost.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("unexpected shipping %s", req.ShippingCost)
	}
	if !req.Total.Equal(decimal.NewFromInt(3350)) {
		t.Fatalf("unexpected total %s", req.Total)
	}

	if cleared := store.Cart(); len(cleared.Items) != 0 {
		t.Fatalf("cart should be empty after checkout, has %d items", len(cleared.Items))
	}
}

func TestCheckoutRejectsBelowMinimumOrder(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	store, err := manager.Store(ctx, "sess_2")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if result := store.AddItem(ctx, orderableItem("prod_1", "Beaded necklace", 300), 1); !result.Valid {
		t.Fatalf("add rejected: %+v", result)
	}

	creator := &stubCreator{order: &orders.Order{ID: "ord_x"}}
	svc, err := NewService(manager, creator, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	result, err := svc.Checkout(ctx, "sess_2")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if result.Accepted {
		t.Fatal("expected rejection for an order below the minimum")
	}
	if len(creator.requests) != 0 {
		t.Fatal("no order should be submitted for an invalid cart")
	}
	if remaining := store.Cart(); len(remaining.Items) != 1 {
		t.Fatalf("cart should be untouched, has %d items", len(remaining.Items))
	}
}

func TestCheckoutKeepsCartWhenOrderServiceFails(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	store, err := manager.Store(ctx, "sess_3")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if result := store.AddItem(ctx, orderableItem("prod_1", "Mudcloth throw", 2500), 1); !result.Valid {
		t.Fatalf("add rejected: %+v", result)
	}

	creator := &stubCreator{err: errors.New("orders unavailable")}
	svc, err := NewService(manager, creator, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Checkout(ctx, "sess_3"); err == nil {
		t.Fatal("expected checkout to surface the submission failure")
	}
	if remaining := store.Cart(); len(remaining.Items) != 1 {
		t.Fatalf("cart should survive a failed submission, has %d items", len(remaining.Items))
	}
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	manager := newTestManager(t)
	creator := &stubCreator{}

	if _, err := NewService(nil, creator, testLogger()); err == nil {
		t.Fatal("expected an error for a nil cart manager")
	}
	if _, err := NewService(manager, nil, testLogger()); err == nil {
		t.Fatal("expected an error for a nil order creator")
	}
	if _, err := NewService(manager, creator, nil); err == nil {
		t.Fatal("expected an error for a nil logger")
	}
}
