package bridge

import (
	"context"
	"errors"
	"sync/atomic"

	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/store"
)

// Compile-time check to ensure MockRecordStore implements RecordStoreContract.
var _ store.RecordStoreContract = (*MockRecordStore)(nil)

// MockRecordStore is a mock implementation of store.RecordStoreContract.
type MockRecordStore struct {
	SubscribeFunc func(ctx context.Context) (<-chan store.Snapshot, func(), error)
	UpsertFunc    func(ctx context.Context, record entities.PatientRecord) error
	DeleteFunc    func(ctx context.Context, id string) error

	SubscribeCallCount int32
	UpsertCallCount    int32
	DeleteCallCount    int32
}

func (m *MockRecordStore) Subscribe(ctx context.Context) (<-chan store.Snapshot, func(), error) {
	atomic.AddInt32(&m.SubscribeCallCount, 1)
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx)
	}
	return nil, nil, errors.New("SubscribeFunc not implemented in mock")
}

func (m *MockRecordStore) Upsert(ctx context.Context, record entities.PatientRecord) error {
	atomic.AddInt32(&m.UpsertCallCount, 1)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, record)
	}
	return nil
}

func (m *MockRecordStore) Delete(ctx context.Context, id string) error {
	atomic.AddInt32(&m.DeleteCallCount, 1)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
