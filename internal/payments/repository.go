package payments

import (
	"context"
	"time"
)

// Registry is the pending-payment store shared by the initiate and confirm
// handlers. All records live only for the pending window; nothing survives a
// restart.
type Registry interface {
	// Put inserts a record keyed by its ID.
	Put(ctx context.Context, p PendingPayment) error
	// Get returns the record and whether it exists.
	Get(ctx context.Context, id string) (PendingPayment, bool, error)
	// Remove deletes the record. Removing an absent ID is not an error.
	Remove(ctx context.Context, id string) error
	// ExpireStale drops records older than maxAge and reports how many.
	ExpireStale(ctx context.Context, maxAge time.Duration) (int, error)
}
