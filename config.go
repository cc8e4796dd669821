package statepass

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTTLDays is the row expiration applied when Config.TTLDays is zero.
const DefaultTTLDays = 1

// Config holds the construction parameters binding a client to one
// table/execution/bucket triple. A client is immutable after construction.
type Config struct {
	// TableName is the key-value tier table backing this client's writes.
	TableName string

	// ExecutionID is the workflow execution identifier the namespace is
	// derived from.
	ExecutionID string

	// TTLDays controls the expires_at written on every row. Expiration is a
	// property of the writing client only; readers never interpret it.
	TTLDays int

	// Bucket is the object-store bucket for overflow blobs. Object expiry is
	// configured on the bucket itself, outside this client.
	Bucket string
}

// Validate checks the construction parameters.
func (c Config) Validate() error {
	if c.TableName == "" {
		return &ValidationError{Field: "TableName", Message: "must not be empty"}
	}
	if c.ExecutionID == "" {
		return &ValidationError{Field: "ExecutionID", Message: "must not be empty"}
	}
	if c.Bucket == "" {
		return &ValidationError{Field: "Bucket", Message: "must not be empty"}
	}
	if c.TTLDays < 0 {
		return &ValidationError{Field: "TTLDays", Message: "must not be negative"}
	}
	return nil
}

// ttl returns the configured row lifetime as a duration.
func (c Config) ttl() time.Duration {
	days := c.TTLDays
	if days == 0 {
		days = DefaultTTLDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// ClientOption allows functional configuration of clients
type ClientOption func(*Client)

// WithLogger sets the client's logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithClock overrides the clock used to compute row expiry. Intended for tests.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}
