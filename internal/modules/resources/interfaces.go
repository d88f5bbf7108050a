package resources

import "context"

// RecordStore is the aggregate-record dependency: whole-document get and
// replace keyed by (owner, kind). Get reports ok=false for a missing record.
type RecordStore interface {
	Get(ctx context.Context, ownerID, kind string) ([]byte, bool, error)
	Put(ctx context.Context, ownerID, kind string, doc []byte) error
}
