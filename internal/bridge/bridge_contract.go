package bridge

import (
	"context"
	"time"

	"patient-profile-service/internal/domain/entities"
)

// Status is the connection state of the bridge's standing subscription.
// connecting moves to synced on the first delivery and to error on a
// classified failure; synced loops on every later delivery; error states
// are only left through Reload, never by automatic retry.
type Status string

const (
	StatusConnecting Status = "connecting"
	StatusSynced     Status = "synced"
	StatusError      Status = "error"
)

// BridgeContract defines the only component allowed to talk to the record
// collection. Everything else reads the materialized list it owns and asks
// for changes through Commit and Delete.
type BridgeContract interface {
	// Start opens the subscription and runs the receive loop until Stop.
	Start(ctx context.Context) error
	// Stop unsubscribes and joins the receive loop.
	Stop(ctx context.Context) error
	// Records returns a copy of the current materialized list.
	Records() []entities.PatientRecord
	// Status returns the connection state; the error detail is non-nil only
	// in StatusError and is ErrPermissionDenied-wrapped when actionable.
	Status() (Status, error)
	// LastSyncTime is the wall time of the most recent successful delivery.
	LastSyncTime() time.Time
	// Syncing reports whether a Commit or Delete is in flight; callers use
	// it to disable conflicting actions, the bridge enforces nothing.
	Syncing() bool
	// Commit stamps lastUpdated and performs the acknowledged write. The
	// returned record is the stamped payload, held by the caller for
	// optimistic display since the subscription gives no read-after-write
	// guarantee.
	Commit(ctx context.Context, record entities.PatientRecord) (entities.PatientRecord, error)
	// Delete removes the document by id with the same acknowledgment
	// contract as Commit.
	Delete(ctx context.Context, id string) error
	// Reload tears the subscription down and reopens it; the only exit from
	// an error state.
	Reload(ctx context.Context) error
}
