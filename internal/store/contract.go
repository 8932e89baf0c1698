// Package store holds the remote document-collection contract consumed by
// the sync bridge, plus the two implementations shipped with the service.
package store

import (
	"context"

	"patient-profile-service/internal/domain/entities"
)

// Snapshot is one delivery of the standing subscription: either the full
// record list ordered by lastUpdated descending, or a subscription error.
// A snapshot always supersedes the previous one in full; there is no diff.
type Snapshot struct {
	Records []entities.PatientRecord
	Err     error
}

// RecordStoreContract defines the operations the collection collaborator
// must provide.
type RecordStoreContract interface {
	// Subscribe opens a standing subscription. The first delivery carries
	// the current state; the returned func tears the subscription down.
	Subscribe(ctx context.Context) (<-chan Snapshot, func(), error)
	// Upsert writes the full record document keyed by its id with merge
	// semantics, blocking until the write is acknowledged or rejected.
	Upsert(ctx context.Context, record entities.PatientRecord) error
	// Delete removes the document by id; deleting an absent id succeeds.
	// Same acknowledgment contract as Upsert.
	Delete(ctx context.Context, id string) error
}
