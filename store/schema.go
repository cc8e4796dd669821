package store

import "strconv"

// DynamoDB schema constants for the state table
const (
	// Key attributes
	AttrPartitionKey = "partition_key"
	AttrSortKey      = "sort_key"

	// Payload attributes. A row carries either an inline payload or the
	// overflow flag, never both.
	AttrPayload     = "payload"
	AttrOverflow    = "overflow"
	AttrPayloadSize = "payload_size"

	// TTL attribute; the table's time-to-live specification must point at it.
	AttrExpiresAt = "expires_at"
)

// sortKeyString renders a sort key for DynamoDB's number attribute encoding.
func sortKeyString(sortKey int) string {
	return strconv.Itoa(sortKey)
}
