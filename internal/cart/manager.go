package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/amara-labs/zawadi-backend/pkg/logger"
	"github.com/amara-labs/zawadi-backend/pkg/metrics"
)

// Session ids arrive from the client, so the resident map must not grow
// without bound. Stores idle past the TTL are swept out; the snapshot layer
// rehydrates them transparently on the next access.
const (
	defaultIdleTTL = 30 * time.Minute
	sweepInterval  = time.Minute
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Manager hands out one Store per session, constructed by the composition
// root and passed down by reference; nothing in this package holds global
// state. A session's first access loads its snapshot, if any.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*session
	lastSweep time.Time

	limits    Limits
	snapshots *Snapshots
	logg      *logger.Logger
	metrics   *metrics.CartMetrics
	idleTTL   time.Duration
	now       func() time.Time
}

// NewManager builds a Manager over the snapshot layer.
func NewManager(snapshots *Snapshots, limits Limits, logg *logger.Logger, met *metrics.CartMetrics) (*Manager, error) {
	if snapshots == nil {
		return nil, errors.New("snapshot layer required")
	}
	if logg == nil {
		return nil, errors.New("logger required")
	}
	return &Manager{
		sessions:  make(map[string]*session),
		limits:    limits,
		snapshots: snapshots,
		logg:      logg,
		metrics:   met,
		idleTTL:   defaultIdleTTL,
		now:       time.Now,
	}, nil
}

// Store returns the session's cart store, creating and hydrating it on
// first access. A snapshot that fails to load (backend down) degrades to an
// empty cart rather than blocking the session.
func (m *Manager) Store(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, errors.New("session id required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	if sess, ok := m.sessions[sessionID]; ok {
		sess.lastSeen = m.now()
		return sess.store, nil
	}

	initial := EmptyCart()
	loaded, err := m.snapshots.Load(ctx, sessionID)
	if err != nil {
		m.logg.Error(ctx, "cart snapshot load failed, starting empty", err)
	} else if loaded != nil {
		initial = *loaded
	}

	store := newStore(sessionID, initial, m.limits, m.snapshots, m.logg, m.metrics)
	m.sessions[sessionID] = &session{store: store, lastSeen: m.now()}
	return store, nil
}

// sweepLocked drops sessions idle longer than the TTL. Runs at most once per
// sweep interval so hot paths mostly skip the scan. Caller holds mu.
func (m *Manager) sweepLocked() {
	now := m.now()
	if now.Sub(m.lastSweep) < sweepInterval {
		return
	}
	m.lastSweep = now
	for id, sess := range m.sessions {
		if now.Sub(sess.lastSeen) > m.idleTTL {
			delete(m.sessions, id)
		}
	}
}

// Snapshots exposes the persistence layer for diagnostic surfaces.
func (m *Manager) Snapshots() *Snapshots {
	return m.snapshots
}

// Evict drops the in-memory store for a session, forcing the next access to
// re-hydrate from the snapshot. Used after a successful import.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
