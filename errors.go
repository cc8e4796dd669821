package statepass

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeMalformedEvent  = "MALFORMED_EVENT"
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	ErrCodeValidation      = "VALIDATION_ERROR"
)

// Sentinel errors for errors.Is checks
var (
	// ErrNotFound is returned when no row or overflow object exists at the
	// requested coordinates.
	ErrNotFound = errors.New("item not found")

	// ErrMalformedEvent is returned when a map-iteration event is missing
	// required fields.
	ErrMalformedEvent = errors.New("malformed map-iteration event")

	// ErrPayloadTooLarge is returned when an item exceeds the overflow tier's
	// own size ceiling. Items are never chunked.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrInvalidConfig is returned when client construction parameters fail
	// validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// NotFoundError reports an absent row or overflow object.
type NotFoundError struct {
	TableName    string
	PartitionKey string
	SortKey      int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("[%s] no item at %s/%s/%d", ErrCodeNotFound, e.TableName, e.PartitionKey, e.SortKey)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError for the given row coordinates.
func NewNotFoundError(tableName, partitionKey string, sortKey int) error {
	return &NotFoundError{TableName: tableName, PartitionKey: partitionKey, SortKey: sortKey}
}

// MalformedEventError reports which required event fields were missing.
type MalformedEventError struct {
	Missing []string
}

func (e *MalformedEventError) Error() string {
	return fmt.Sprintf("[%s] event missing required fields: %s", ErrCodeMalformedEvent, strings.Join(e.Missing, ", "))
}

func (e *MalformedEventError) Is(target error) bool {
	return target == ErrMalformedEvent
}

// NewMalformedEventError creates a MalformedEventError listing the missing fields.
func NewMalformedEventError(missing []string) error {
	return &MalformedEventError{Missing: missing}
}

// PayloadTooLargeError reports an item that exceeds the overflow tier's ceiling.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("[%s] serialized item is %d bytes, overflow limit is %d", ErrCodePayloadTooLarge, e.Size, e.Limit)
}

func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}

// ValidationError reports an invalid construction parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ErrCodeValidation, e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// IsNotFound checks whether an error indicates an absent item.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsMalformedEvent checks whether an error indicates a bad map-iteration event.
func IsMalformedEvent(err error) bool {
	return errors.Is(err, ErrMalformedEvent)
}

// IsPayloadTooLarge checks whether an error indicates an oversize item.
func IsPayloadTooLarge(err error) bool {
	return errors.Is(err, ErrPayloadTooLarge)
}
