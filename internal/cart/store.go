package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/amara-labs/zawadi-backend/pkg/logger"
	"github.com/amara-labs/zawadi-backend/pkg/metrics"
)

// Store is the sole owner of one session's authoritative cart. Every
// mutation runs validate, mutate, recompute, persist, in that order, under
// the store's lock. Persistence is best-effort: a failed snapshot write is
// logged and the in-memory mutation stands.
type Store struct {
	mu        sync.Mutex
	sessionID string
	cart      Cart

	limits    Limits
	snapshots *Snapshots
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
}

const (
	opAdd    = "add_item"
	opUpdate = "update_item"
	opRemove = "remove_item"
	opClear  = "clear_cart"
)

func newStore(sessionID string, initial Cart, limits Limits, snapshots *Snapshots, logg *logger.Logger, met *metrics.CartMetrics) *Store {
	limits.recompute(&initial)
	return &Store{
		sessionID: sessionID,
		cart:      initial,
		limits:    limits,
		snapshots: snapshots,
		logg:      logg,
		metrics:   met,
	}
}

// SessionID returns the owning session's identifier.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Cart returns a defensive copy of the current cart.
func (s *Store) Cart() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem validates and adds a candidate item. An item already in the cart
// merges by incrementing its quantity. The candidate's Quantity field is
// ignored in favor of the explicit argument.
func (s *Store) AddItem(ctx context.Context, candidate Item, quantity int) ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opAdd, time.Now())

	result := s.limits.ValidateAdd(s.cart.Items, candidate, quantity)
	if !result.Valid {
		s.metrics.IncRejected(opAdd)
		return result
	}

	if idx, ok := s.cart.findItem(candidate.ID); ok {
		s.cart.Items[idx].Quantity += quantity
	} else {
		line := candidate.clone()
		line.Quantity = quantity
		s.cart.Items = append(s.cart.Items, line)
	}

	s.limits.recompute(&s.cart)
	s.persist(ctx)
	s.metrics.IncAccepted(opAdd)
	return result
}

// UpdateItem overwrites an existing line's quantity; zero removes the line.
func (s *Store) UpdateItem(ctx context.Context, itemID string, quantity int) ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opUpdate, time.Now())

	result := s.limits.ValidateUpdate(s.cart.Items, itemID, quantity)
	if !result.Valid {
		s.metrics.IncRejected(opUpdate)
		return result
	}

	idx, ok := s.cart.findItem(itemID)
	if !ok {
		// ValidateUpdate guarantees presence; treat disappearance as a bug.
		s.metrics.IncRejected(opUpdate)
		s.logg.Error(ctx, "validated cart item vanished before update", errors.New("item not found"))
		return newResult([]string{"item " + itemID + " is not in the cart"}, nil)
	}

	if quantity == 0 {
		s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	} else {
		s.cart.Items[idx].Quantity = quantity
	}

	s.limits.recompute(&s.cart)
	s.persist(ctx)
	s.metrics.IncAccepted(opUpdate)
	return result
}

// RemoveItem drops the matching line. Removing an absent item is a no-op;
// this operation cannot fail from the caller's perspective.
func (s *Store) RemoveItem(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opRemove, time.Now())

	idx, ok := s.cart.findItem(itemID)
	if ok {
		s.cart.Items = append(s.cart.Items[:idx], s.cart.Items[idx+1:]...)
	}

	s.limits.recompute(&s.cart)
	s.persist(ctx)
	s.metrics.IncAccepted(opRemove)
}

// Clear resets to the empty cart and drops the persisted snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opClear, time.Now())

	s.cart = EmptyCart()
	if err := s.snapshots.Clear(ctx, s.sessionID); err != nil {
		s.logg.Error(ctx, "failed to clear cart snapshot", err)
	}
	s.metrics.IncAccepted(opClear)
}

// Validate re-runs the whole-cart rules without mutating state. Used as the
// pre-checkout gate.
func (s *Store) Validate() ValidationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.ValidateCart(s.cart)
}

// ShippingInfo returns the standard-tier shipping summary for the cart.
func (s *Store) ShippingInfo() ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.ShippingInfoFor(s.cart.Subtotal)
}

// ShippingOptions quotes all shipping tiers for the cart.
func (s *Store) ShippingOptions() []ShippingOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.ShippingOptionsFor(s.cart.Subtotal)
}

// persist writes the snapshot as the final step of a mutation. Failures are
// absorbed: the in-memory state has already changed and stays authoritative
// for this session.
func (s *Store) persist(ctx context.Context) {
	if err := s.snapshots.Save(ctx, s.sessionID, s.cart); err != nil {
		s.logg.Error(ctx, "cart snapshot write failed", err)
	}
}

func (s *Store) observe(op string, start time.Time) {
	s.metrics.ObserveDuration(op, time.Since(start))
}
