package cart

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/amara-labs/zawadi-backend/pkg/config"
	"github.com/amara-labs/zawadi-backend/pkg/logger"
	"github.com/amara-labs/zawadi-backend/pkg/storage/kv"
)

// SnapshotVersion tags the current envelope schema.
const SnapshotVersion = "1.0"

type envelope struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Data      Cart   `json:"data"`
}

// Snapshots round-trips carts through the key-value store, one envelope
// blob per session. Corrupt or stale blobs degrade to absence; callers only
// ever see a cart or nil.
type Snapshots struct {
	store     kv.Store
	keyPrefix string
	ttl       time.Duration
	limits    Limits
	logg      *logger.Logger
	now       func() time.Time
}

// NewSnapshots builds the snapshot layer over a key-value store.
func NewSnapshots(store kv.Store, cfg config.SnapshotConfig, limits Limits, logg *logger.Logger) (*Snapshots, error) {
	if store == nil {
		return nil, errors.New("kv store required")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 168 * time.Hour
	}
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "zawadi:cart"
	}
	return &Snapshots{
		store:     store,
		keyPrefix: prefix,
		ttl:       ttl,
		limits:    limits,
		logg:      logg,
		now:       time.Now,
	}, nil
}

func (s *Snapshots) key(sessionID string) string {
	return s.keyPrefix + ":" + sessionID
}

// Save wraps the cart in a versioned envelope and writes it. If the envelope
// cannot be serialized it falls back to writing the raw cart; the raw-cart
// branch in Load recovers such blobs on the next access.
func (s *Snapshots) Save(ctx context.Context, sessionID string, cart Cart) error {
	blob, err := json.Marshal(envelope{
		Version:   SnapshotVersion,
		Timestamp: s.now().UnixMilli(),
		Data:      cart,
	})
	if err == nil {
		return s.store.Set(ctx, s.key(sessionID), string(blob))
	}

	s.logg.Warn(ctx, "snapshot envelope serialization failed, writing raw cart")
	raw, rawErr := json.Marshal(cart)
	if rawErr != nil {
		return multierr.Append(err, rawErr)
	}
	return s.store.Set(ctx, s.key(sessionID), string(raw))
}

// Load reads the session's snapshot. Absent, corrupt, or stale blobs all
// resolve to nil; only storage backend failures surface as errors.
func (s *Snapshots) Load(ctx context.Context, sessionID string) (*Cart, error) {
	blob, err := s.store.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(blob), &env); err == nil && env.Version != "" {
		if s.stale(env.Timestamp) {
			s.logg.Info(ctx, "discarding stale cart snapshot")
			s.clearQuietly(ctx, sessionID)
			return nil, nil
		}
		cart := s.migrateVersion(env)
		return &cart, nil
	}

	// Legacy pre-envelope format: a bare array of loosely typed items.
	if cart, ok := s.migrateLegacy([]byte(blob)); ok {
		return &cart, nil
	}

	// Raw cart object: the degraded Save fallback writes the cart without
	// an envelope. No timestamp means no staleness check; the next Save
	// rebuilds the envelope.
	var raw Cart
	if err := json.Unmarshal([]byte(blob), &raw); err == nil && raw.Items != nil {
		raw.Items = s.limits.mergeDuplicates(raw.Items)
		s.limits.recompute(&raw)
		return &raw, nil
	}

	s.logg.Warn(ctx, "clearing unparseable cart snapshot")
	s.clearQuietly(ctx, sessionID)
	return nil, nil
}

// Clear removes the stored snapshot.
func (s *Snapshots) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, s.key(sessionID))
}

// Size reports the number of line entries in the stored snapshot without
// reconstructing a full cart. Tolerates both the envelope and legacy shapes.
func (s *Snapshots) Size(ctx context.Context, sessionID string) (int, error) {
	blob, err := s.store.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	var envShape struct {
		Version string `json:"version"`
		Data    struct {
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(blob), &envShape); err == nil && envShape.Version != "" {
		return len(envShape.Data.Items), nil
	}

	var legacy []json.RawMessage
	if err := json.Unmarshal([]byte(blob), &legacy); err == nil {
		return len(legacy), nil
	}

	var rawShape struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal([]byte(blob), &rawShape); err == nil {
		return len(rawShape.Items), nil
	}
	return 0, nil
}

// Export returns the raw stored blob for diagnostics, empty when absent.
func (s *Snapshots) Export(ctx context.Context, sessionID string) (string, error) {
	blob, err := s.store.Get(ctx, s.key(sessionID))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return blob, nil
}

// Import restores a previously exported blob. Only blobs with a
// recognizable version+data envelope are accepted; anything else is
// rejected without error. A missing timestamp is replaced with now so the
// imported snapshot is not immediately discarded as stale.
func (s *Snapshots) Import(ctx context.Context, sessionID, blob string) bool {
	var parsed struct {
		Version   string `json:"version"`
		Timestamp int64  `json:"timestamp"`
		Data      *Cart  `json:"data"`
	}
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		return false
	}
	if parsed.Version == "" || parsed.Data == nil {
		return false
	}

	if parsed.Timestamp == 0 {
		stamped, err := json.Marshal(envelope{
			Version:   parsed.Version,
			Timestamp: s.now().UnixMilli(),
			Data:      *parsed.Data,
		})
		if err != nil {
			return false
		}
		blob = string(stamped)
	}

	if err := s.store.Set(ctx, s.key(sessionID), blob); err != nil {
		s.logg.Error(ctx, "snapshot import write failed", err)
		return false
	}
	return true
}

func (s *Snapshots) stale(timestampMillis int64) bool {
	age := s.now().Sub(time.UnixMilli(timestampMillis))
	return age > s.ttl
}

// migrateVersion is the seam for future schema changes; every known version
// currently passes through with totals recomputed defensively.
func (s *Snapshots) migrateVersion(env envelope) Cart {
	cart := env.Data
	if cart.Items == nil {
		cart.Items = []Item{}
	}
	cart.Items = s.limits.mergeDuplicates(cart.Items)
	s.limits.recompute(&cart)
	return cart
}

// legacyItem mirrors the loosely typed pre-envelope line shape. Each parse
// path is explicit so migrations stay independently testable.
type legacyItem struct {
	ID          *string          `json:"id"`
	Name        string           `json:"name"`
	Image       string           `json:"image"`
	Origin      string           `json:"origin"`
	Category    string           `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	MaxQuantity *int             `json:"maxQuantity"`
	Available   *bool            `json:"available"`
}

func (s *Snapshots) migrateLegacy(blob []byte) (Cart, bool) {
	var entries []legacyItem
	if err := json.Unmarshal(blob, &entries); err != nil {
		return Cart{}, false
	}

	cart := EmptyCart()
	for _, entry := range entries {
		item := Item{
			Name:        entry.Name,
			Image:       entry.Image,
			Origin:      entry.Origin,
			Category:    entry.Category,
			Price:       decimal.Zero,
			Quantity:    1,
			MaxQuantity: entry.MaxQuantity,
			Available:   entry.Available,
		}
		if entry.ID != nil && *entry.ID != "" {
			item.ID = *entry.ID
		} else {
			item.ID = uuid.NewString()
		}
		if entry.Price != nil {
			item.Price = *entry.Price
		}
		if entry.Quantity != nil && *entry.Quantity > 0 {
			item.Quantity = *entry.Quantity
		}
		cart.Items = append(cart.Items, item)
	}
	cart.Items = s.limits.mergeDuplicates(cart.Items)
	s.limits.recompute(&cart)
	return cart, true
}

func (s *Snapshots) clearQuietly(ctx context.Context, sessionID string) {
	if err := s.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "failed to clear cart snapshot", err)
	}
}
