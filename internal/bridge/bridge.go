// Package bridge materializes the remote record collection into a local
// ordered list and funnels every write back out through the same store.
package bridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/store"

	"go.uber.org/zap"
)

// BridgeImpl implements BridgeContract over a RecordStoreContract.
type BridgeImpl struct {
	store  store.RecordStoreContract
	logger *zap.Logger
	now    func() time.Time

	mu          sync.RWMutex
	records     []entities.PatientRecord
	status      Status
	statusErr   error
	lastSync    time.Time
	unsubscribe func()
	loopDone    chan struct{}

	inflight atomic.Int32
}

var _ BridgeContract = (*BridgeImpl)(nil)

func NewBridge(recordStore store.RecordStoreContract, logger *zap.Logger) *BridgeImpl {
	return &BridgeImpl{
		store:  recordStore,
		logger: logger,
		now:    time.Now,
		status: StatusConnecting,
	}
}

// Start opens the standing subscription and launches the receive loop.
func (b *BridgeImpl) Start(ctx context.Context) error {
	snapshots, unsubscribe, err := b.store.Subscribe(ctx)
	if err != nil {
		return Classify(err)
	}

	b.mu.Lock()
	b.status = StatusConnecting
	b.statusErr = nil
	b.unsubscribe = unsubscribe
	b.loopDone = make(chan struct{})
	done := b.loopDone
	b.mu.Unlock()

	go b.receive(snapshots, done)
	b.logger.Info("sync bridge subscription opened")
	return nil
}

// receive applies every delivery until the snapshot channel closes. A
// successful delivery replaces the materialized list in full; an error
// delivery parks the bridge in a sticky error state but leaves whatever was
// last materialized readable.
func (b *BridgeImpl) receive(snapshots <-chan store.Snapshot, done chan struct{}) {
	defer close(done)
	for snap := range snapshots {
		b.mu.RLock()
		parked := b.status == StatusError
		b.mu.RUnlock()
		if parked {
			// Error states are only exited through Reload; anything the
			// store still pushes on this subscription is ignored.
			continue
		}

		if snap.Err != nil {
			classified := Classify(snap.Err)
			b.mu.Lock()
			b.status = StatusError
			b.statusErr = classified
			b.mu.Unlock()

			if errors.Is(classified, ErrPermissionDenied) {
				b.logger.Error("subscription blocked by store permissions", zap.Error(snap.Err))
			} else {
				b.logger.Warn("subscription error", zap.Error(snap.Err))
			}
			continue
		}

		b.mu.Lock()
		b.records = snap.Records
		b.status = StatusSynced
		b.statusErr = nil
		b.lastSync = b.now()
		count := len(snap.Records)
		b.mu.Unlock()

		b.logger.Debug("materialized list replaced", zap.Int("records", count))
	}
}

// Stop unsubscribes and joins the receive loop.
func (b *BridgeImpl) Stop(ctx context.Context) error {
	b.mu.Lock()
	unsubscribe := b.unsubscribe
	done := b.loopDone
	b.unsubscribe = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	b.logger.Info("sync bridge stopped")
	return nil
}

// Reload is the explicit user-driven recovery path: full teardown and a
// fresh subscription, never an automatic retry.
func (b *BridgeImpl) Reload(ctx context.Context) error {
	if err := b.Stop(ctx); err != nil {
		return err
	}
	return b.Start(ctx)
}

func (b *BridgeImpl) Records() []entities.PatientRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entities.PatientRecord, len(b.records))
	for i, rec := range b.records {
		out[i] = rec.Clone()
	}
	return out
}

func (b *BridgeImpl) Status() (Status, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status, b.statusErr
}

func (b *BridgeImpl) LastSyncTime() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastSync
}

func (b *BridgeImpl) Syncing() bool {
	return b.inflight.Load() > 0
}

// Commit stamps lastUpdated with the current wall clock and performs the
// acknowledged merge upsert. The materialized list is not touched on either
// outcome: the next subscription delivery is the only path by which the
// committed state becomes visible, so the stamped payload is returned for
// the caller to hold optimistically.
func (b *BridgeImpl) Commit(ctx context.Context, record entities.PatientRecord) (entities.PatientRecord, error) {
	b.inflight.Add(1)
	defer b.inflight.Add(-1)

	stamped := record.Clone()
	stamped.LastUpdated = b.now().UnixMilli()

	if err := b.store.Upsert(ctx, stamped); err != nil {
		b.logger.Warn("commit rejected", zap.String("id", stamped.ID), zap.Error(err))
		return entities.PatientRecord{}, err
	}
	b.logger.Info("record committed", zap.String("id", stamped.ID), zap.Int64("lastUpdated", stamped.LastUpdated))
	return stamped, nil
}

// Delete removes the document by id, with the same acknowledgment and
// error contract as Commit.
func (b *BridgeImpl) Delete(ctx context.Context, id string) error {
	b.inflight.Add(1)
	defer b.inflight.Add(-1)

	if err := b.store.Delete(ctx, id); err != nil {
		b.logger.Warn("delete rejected", zap.String("id", id), zap.Error(err))
		return err
	}
	b.logger.Info("record deleted", zap.String("id", id))
	return nil
}
