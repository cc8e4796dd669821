package statepass

import (
	"github.com/rs/zerolog"
)

// Log event names
const (
	// Item-level events
	EventItemStored  = "item_stored"
	EventItemFetched = "item_fetched"

	// List-level events
	EventListStored  = "list_stored"
	EventListFetched = "list_fetched"

	// Overflow tier events
	EventItemOverflowed = "item_overflowed"

	// Persistence events
	EventStorageError = "storage_error"
)

// LogItemStored logs a single-row write, including which tier took the payload
func LogItemStored(logger zerolog.Logger, tableName, partitionKey string, sortKey int, tier Tier, size int64) {
	logger.Debug().
		Str("event", EventItemStored).
		Str("table_name", tableName).
		Str("partition_key", partitionKey).
		Int("sort_key", sortKey).
		Str("tier", tier.String()).
		Int64("payload_size", size).
		Msg("Item stored")
}

// LogItemFetched logs a single-row read
func LogItemFetched(logger zerolog.Logger, tableName, partitionKey string, sortKey int, tier Tier) {
	logger.Debug().
		Str("event", EventItemFetched).
		Str("table_name", tableName).
		Str("partition_key", partitionKey).
		Int("sort_key", sortKey).
		Str("tier", tier.String()).
		Msg("Item fetched")
}

// LogItemOverflowed logs a payload crossing the inline threshold into the object store
func LogItemOverflowed(logger zerolog.Logger, address string, size int64) {
	logger.Debug().
		Str("event", EventItemOverflowed).
		Str("address", address).
		Int64("payload_size", size).
		Msg("Item overflowed to object store")
}

// LogListStored logs a list write
func LogListStored(logger zerolog.Logger, tableName, partitionKey string, count int) {
	logger.Debug().
		Str("event", EventListStored).
		Str("table_name", tableName).
		Str("partition_key", partitionKey).
		Int("count", count).
		Msg("List stored")
}

// LogListFetched logs a list read
func LogListFetched(logger zerolog.Logger, tableName, partitionKey string, count int) {
	logger.Debug().
		Str("event", EventListFetched).
		Str("table_name", tableName).
		Str("partition_key", partitionKey).
		Int("count", count).
		Msg("List fetched")
}

// LogStorageError logs errors during backend operations
func LogStorageError(logger zerolog.Logger, operation, tableName, partitionKey string, err error) {
	logger.Error().
		Str("event", EventStorageError).
		Str("operation", operation).
		Str("table_name", tableName).
		Str("partition_key", partitionKey).
		Err(err).
		Msg("Storage error")
}

// ClientLogger creates a logger enriched with client context
func ClientLogger(baseLogger zerolog.Logger, tableName, namespace string) zerolog.Logger {
	return baseLogger.With().
		Str("table_name", tableName).
		Str("namespace", namespace).
		Logger()
}
