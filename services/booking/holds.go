package booking

import (
	"sync"
	"time"

	"carebook/models"
	"carebook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// holdKey identifies the slot a hold claims. At most one live hold may exist
// per key at any time.
type holdKey struct {
	providerID string
	slotStart  int64 // unix seconds
}

func keyFor(providerID string, slotStart time.Time) holdKey {
	return holdKey{providerID: providerID, slotStart: slotStart.Unix()}
}

// HoldManager is the only shared mutable state in the engine. A single mutex
// guards both indexes; every operation under it is an O(1) map access and the
// lock is never held across I/O, so cross-key contention stays negligible.
type HoldManager struct {
	mu       sync.Mutex
	byKey    map[holdKey]*models.SoftHold
	byHandle map[string]*models.SoftHold

	ttl time.Duration
	now func() time.Time
}

// NewHoldManager returns a manager granting holds of the given TTL.
func NewHoldManager(ttl time.Duration) *HoldManager {
	return &HoldManager{
		byKey:    make(map[holdKey]*models.SoftHold),
		byHandle: make(map[string]*models.SoftHold),
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Tests use this to simulate expiry.
func (m *HoldManager) WithClock(now func() time.Time) *HoldManager {
	m.now = now
	return m
}

// Place atomically checks the key and inserts a new hold. The check and the
// insert happen under one lock acquisition; two concurrent callers can never
// both observe "free".
func (m *HoldManager) Place(providerID string, slotStart, slotEnd time.Time) (models.SoftHold, error) {
	now := m.now()
	key := keyFor(providerID, slotStart)

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.byKey[key]; ok {
		if existing.LiveAt(now) {
			return models.SoftHold{}, newError(CodeHoldConflict, "slot is already held")
		}
		// Expired leftover not yet swept; reclaim it in place.
		delete(m.byHandle, existing.Handle)
	}

	hold := &models.SoftHold{
		Handle:     uuid.New().String(),
		ProviderID: providerID,
		SlotStart:  slotStart,
		SlotEnd:    slotEnd,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
	}
	m.byKey[key] = hold
	m.byHandle[hold.Handle] = hold
	return *hold, nil
}

// Get returns a snapshot of the hold and whether it is live right now.
// A hold past its expiry reports dead even before any sweep removes it.
func (m *HoldManager) Get(handle string) (models.SoftHold, bool) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	hold, ok := m.byHandle[handle]
	if !ok {
		return models.SoftHold{}, false
	}
	return *hold, hold.LiveAt(now)
}

// Release terminates the hold immediately. Idempotent: releasing an unknown
// or already-terminated handle is a no-op.
func (m *HoldManager) Release(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(handle)
}

// Complete terminates a hold after a successful commit. Commit and release
// are mutually exclusive successors of "live"; both reduce to removal here,
// so whichever reaches the lock first wins.
func (m *HoldManager) Complete(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(handle)
}

func (m *HoldManager) remove(handle string) {
	hold, ok := m.byHandle[handle]
	if !ok {
		return
	}
	delete(m.byHandle, handle)
	key := keyFor(hold.ProviderID, hold.SlotStart)
	if current, ok := m.byKey[key]; ok && current.Handle == handle {
		delete(m.byKey, key)
	}
}

// sweepExpired reclaims entries past their expiry and returns how many were
// removed. Sweep timing only bounds memory; liveness never depends on it.
func (m *HoldManager) sweepExpired() int {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for handle, hold := range m.byHandle {
		if !hold.LiveAt(now) {
			delete(m.byHandle, handle)
			key := keyFor(hold.ProviderID, hold.SlotStart)
			if current, ok := m.byKey[key]; ok && current.Handle == handle {
				delete(m.byKey, key)
			}
			removed++
		}
	}
	return removed
}

// StartSweeper runs the periodic reclaim loop until the returned stop
// function is called.
func (m *HoldManager) StartSweeper(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		logger := utils.GetLogger()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := m.sweepExpired(); n > 0 {
					logger.Debug("reclaimed expired holds", zap.Int("count", n))
				}
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
