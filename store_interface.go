package statepass

import (
	"context"
	"fmt"
	"time"
)

// Row is the unit of storage in the key-value tier, identified by
// (partition key, sort key). A row carries exactly one of an inline payload
// or an overflow pointer, never both.
type Row struct {
	PartitionKey string
	SortKey      int

	// Payload is the serialized item when stored inline; nil when overflowed.
	Payload []byte

	// Overflow marks the item as stored in the object store. The object's
	// address is recomputed from the row coordinates, so no location field
	// is needed.
	Overflow bool

	// PayloadSize is the serialized byte length, recorded for both tiers.
	PayloadSize int64

	// ExpiresAt is the absolute time after which the store may reclaim the row.
	ExpiresAt time.Time
}

// RowStore is the key-value tier: a table-like store addressed by
// (partition key, sort key) with per-row expiration. Writes are upserts with
// last-writer-wins semantics; no compare-and-swap is required or used.
type RowStore interface {
	// PutRow upserts a row.
	PutRow(ctx context.Context, tableName string, row Row) error

	// GetRow returns the row at the exact coordinates, or an error matching
	// ErrNotFound when absent.
	GetRow(ctx context.Context, tableName, partitionKey string, sortKey int) (Row, error)

	// QueryRows returns every row in a partition in ascending sort-key order.
	QueryRows(ctx context.Context, tableName, partitionKey string) ([]Row, error)
}

// BlobStore is the overflow tier: a path-addressed object store with
// externally configured expiration. Writes are idempotent overwrites.
type BlobStore interface {
	PutBlob(ctx context.Context, address string, data []byte) error

	// GetBlob returns the object at the address, or an error matching
	// ErrNotFound when absent.
	GetBlob(ctx context.Context, address string) ([]byte, error)
}

// OverflowAddress derives the object-store address for a row's overflow blob.
// It is a pure function of the row coordinates, so the row itself only needs a
// boolean flag and no secondary index is kept.
func OverflowAddress(tableName, partitionKey string, sortKey int) string {
	return fmt.Sprintf("%s/%s/%d.json", tableName, partitionKey, sortKey)
}
