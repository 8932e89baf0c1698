package store

import (
	"context"
	"sort"
	"sync"

	"patient-profile-service/internal/domain/entities"
)

// MemoryStore is an in-memory RecordStoreContract. It backs local runs
// without a database and every test that exercises the subscription loop.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]entities.PatientRecord
	failure error
	subs    *fanout
}

var _ RecordStoreContract = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]entities.PatientRecord),
		subs: newFanout(),
	}
}

// Subscribe registers a subscriber and immediately delivers the current
// state (or the configured failure).
func (s *MemoryStore) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	s.mu.RLock()
	initial := Snapshot{Records: s.listLocked()}
	if s.failure != nil {
		initial = Snapshot{Err: s.failure}
	}
	id, ch := s.subs.add(initial)
	s.mu.RUnlock()

	return ch, func() { s.subs.remove(id) }, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, record entities.PatientRecord) error {
	s.mu.Lock()
	if s.failure != nil {
		err := s.failure
		s.mu.Unlock()
		return err
	}
	s.docs[record.ID] = record.Clone()
	snap := Snapshot{Records: s.listLocked()}
	s.mu.Unlock()

	s.subs.publish(snap)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.failure != nil {
		err := s.failure
		s.mu.Unlock()
		return err
	}
	delete(s.docs, id)
	snap := Snapshot{Records: s.listLocked()}
	s.mu.Unlock()

	s.subs.publish(snap)
	return nil
}

// SetFailure makes every subsequent operation fail with err and pushes an
// error snapshot to current subscribers; pass nil to recover. Tests use it
// to drive the access-denied and generic-error paths.
func (s *MemoryStore) SetFailure(err error) {
	s.mu.Lock()
	s.failure = err
	snap := Snapshot{Err: err}
	if err == nil {
		snap = Snapshot{Records: s.listLocked()}
	}
	s.mu.Unlock()

	s.subs.publish(snap)
}

// Close tears down all subscribers.
func (s *MemoryStore) Close() {
	s.subs.closeAll()
}

// listLocked builds the ordered snapshot; callers hold at least a read lock.
func (s *MemoryStore) listLocked() []entities.PatientRecord {
	out := make([]entities.PatientRecord, 0, len(s.docs))
	for _, rec := range s.docs {
		out = append(out, rec.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastUpdated > out[j].LastUpdated
	})
	return out
}
