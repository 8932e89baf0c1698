package bridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"patient-profile-service/internal/domain/entities"
	"patient-profile-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func record(id string, lastUpdated int64) entities.PatientRecord {
	rec := entities.NewPatientRecord(id)
	rec.LastUpdated = lastUpdated
	return rec
}

// channelStore wires a mock whose subscription is a plain channel the test
// pushes into. Unsubscribing closes the channel, as a real teardown would.
func channelStore() (*MockRecordStore, chan store.Snapshot, *atomic.Int32) {
	snapshots := make(chan store.Snapshot, 8)
	unsubCount := &atomic.Int32{}
	var once sync.Once
	mock := &MockRecordStore{
		SubscribeFunc: func(ctx context.Context) (<-chan store.Snapshot, func(), error) {
			return snapshots, func() {
				unsubCount.Add(1)
				once.Do(func() { close(snapshots) })
			}, nil
		},
	}
	return mock, snapshots, unsubCount
}

func TestNewBridge(t *testing.T) {
	b := NewBridge(&MockRecordStore{}, zap.NewNop())
	require.NotNil(t, b)
	status, err := b.Status()
	assert.Equal(t, StatusConnecting, status)
	assert.NoError(t, err)
}

func TestSnapshotsReplaceMaterializedList(t *testing.T) {
	mock, snapshots, _ := channelStore()
	b := NewBridge(mock, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop(context.Background())

	snapshots <- store.Snapshot{Records: []entities.PatientRecord{record("a", 10)}}
	require.Eventually(t, func() bool { return len(b.Records()) == 1 }, time.Second, time.Millisecond)

	status, statusErr := b.Status()
	assert.Equal(t, StatusSynced, status)
	assert.NoError(t, statusErr)
	assert.False(t, b.LastSyncTime().IsZero())

	// The second delivery fully supersedes the first.
	snapshots <- store.Snapshot{Records: []entities.PatientRecord{record("b", 20), record("c", 5)}}
	require.Eventually(t, func() bool { return len(b.Records()) == 2 }, time.Second, time.Millisecond)
	recs := b.Records()
	assert.Equal(t, "b", recs[0].ID)
	assert.Equal(t, "c", recs[1].ID)
}

func TestErrorClassificationAndStickiness(t *testing.T) {
	mock, snapshots, _ := channelStore()
	b := NewBridge(mock, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop(context.Background())

	snapshots <- store.Snapshot{Records: []entities.PatientRecord{record("a", 10)}}
	require.Eventually(t, func() bool { return len(b.Records()) == 1 }, time.Second, time.Millisecond)

	snapshots <- store.Snapshot{Err: errors.New("Missing or insufficient permissions.")}
	require.Eventually(t, func() bool {
		status, _ := b.Status()
		return status == StatusError
	}, time.Second, time.Millisecond)

	_, statusErr := b.Status()
	assert.ErrorIs(t, statusErr, ErrPermissionDenied)
	assert.Len(t, b.Records(), 1, "last materialized state stays readable")
}

func TestGenericErrorPassesThroughVerbatim(t *testing.T) {
	mock, snapshots, _ := channelStore()
	b := NewBridge(mock, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop(context.Background())

	snapshots <- store.Snapshot{Err: errors.New("backend unavailable")}
	require.Eventually(t, func() bool {
		status, _ := b.Status()
		return status == StatusError
	}, time.Second, time.Millisecond)

	_, statusErr := b.Status()
	assert.NotErrorIs(t, statusErr, ErrPermissionDenied)
	assert.Equal(t, "backend unavailable", statusErr.Error())
}

func TestCommitStampsAndReturnsPayload(t *testing.T) {
	var written entities.PatientRecord
	mock, _, _ := channelStore()
	mock.UpsertFunc = func(ctx context.Context, rec entities.PatientRecord) error {
		written = rec
		return nil
	}

	b := NewBridge(mock, zap.NewNop())
	fixed := time.UnixMilli(1_700_000_000_000)
	b.now = func() time.Time { return fixed }

	draft := record("PAT-1", 0)
	stamped, err := b.Commit(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), stamped.LastUpdated)
	assert.Equal(t, stamped.LastUpdated, written.LastUpdated)
	assert.Equal(t, "PAT-1", written.ID)
	assert.Zero(t, draft.LastUpdated, "caller's record is not mutated")
	assert.Empty(t, b.Records(), "commit never touches the materialized list")
}

func TestCommitFailureSurfacesUnchanged(t *testing.T) {
	rejection := errors.New("quota exceeded")
	mock, _, _ := channelStore()
	mock.UpsertFunc = func(ctx context.Context, rec entities.PatientRecord) error {
		return rejection
	}

	b := NewBridge(mock, zap.NewNop())
	_, err := b.Commit(context.Background(), record("PAT-1", 0))
	assert.Equal(t, rejection, err)
	assert.Empty(t, b.Records())
}

func TestDeleteDelegates(t *testing.T) {
	mock, _, _ := channelStore()
	b := NewBridge(mock, zap.NewNop())

	require.NoError(t, b.Delete(context.Background(), "PAT-1"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&mock.DeleteCallCount))

	rejection := errors.New("not allowed")
	mock.DeleteFunc = func(ctx context.Context, id string) error { return rejection }
	assert.Equal(t, rejection, b.Delete(context.Background(), "PAT-1"))
}

func TestStopUnsubscribesAndJoinsLoop(t *testing.T) {
	mock, snapshots, unsubCount := channelStore()
	b := NewBridge(mock, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))

	snapshots <- store.Snapshot{Records: []entities.PatientRecord{record("a", 1)}}
	require.NoError(t, b.Stop(context.Background()))
	assert.Equal(t, int32(1), unsubCount.Load())
}

func TestReloadIsTheOnlyExitFromError(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()
	require.NoError(t, s.Upsert(context.Background(), record("a", 10)))

	b := NewBridge(s, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop(context.Background())
	require.Eventually(t, func() bool { return len(b.Records()) == 1 }, time.Second, time.Millisecond)

	s.SetFailure(errors.New("permission denied for table patient_records"))
	require.Eventually(t, func() bool {
		status, _ := b.Status()
		return status == StatusError
	}, time.Second, time.Millisecond)

	// The configuration fix alone does not recover the bridge.
	s.SetFailure(nil)
	status, _ := b.Status()
	assert.Equal(t, StatusError, status)

	require.NoError(t, b.Reload(context.Background()))
	require.Eventually(t, func() bool {
		status, _ := b.Status()
		return status == StatusSynced
	}, time.Second, time.Millisecond)
}

// End-to-end: a committed draft re-enters the materialized list through the
// subscription with a fresher lastUpdated.
func TestCommitRoundTripThroughSubscription(t *testing.T) {
	s := store.NewMemoryStore()
	defer s.Close()

	b := NewBridge(s, zap.NewNop())
	require.NoError(t, b.Start(context.Background()))
	defer b.Stop(context.Background())

	before := time.Now().UnixMilli() - 1

	draft := entities.NewPatientRecord("PAT-42")
	draft.PatientID = "2024-N4D-001"
	draft.Category = "Adult"
	draft.Initials = "JD"
	draft.Age = entities.Num(30)
	draft.PrimaryDiagnosis = "Hypertension"

	stamped, err := b.Commit(context.Background(), draft)
	require.NoError(t, err)
	assert.Greater(t, stamped.LastUpdated, before)

	require.Eventually(t, func() bool {
		for _, rec := range b.Records() {
			if rec.ID == "PAT-42" && rec.LastUpdated > before {
				return true
			}
		}
		return false
	}, time.Second, time.Millisecond)
}
