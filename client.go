// Package statepass passes JSON state between workflow steps that can only
// hand small payloads through the scheduler. Items below the inline threshold
// live as row attributes in the key-value tier; larger items spill to the
// object store behind a pointer row. Callers receive a small locator they can
// forward through the workflow engine and use later to reverse the process.
package statepass

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// List elements are assigned sequential sort keys starting here.
const listBaseSortKey = 0

// Client is a state data client bound to one table/execution/bucket triple.
// It is immutable after construction and safe for concurrent use: no operation
// mutates client state, and parallel map branches avoid write conflicts through
// distinct sort keys rather than locking.
type Client struct {
	tableName string
	namespace string
	ttl       time.Duration
	rows      RowStore
	blobs     BlobStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewClient creates a state data client over the given tiers.
func NewClient(cfg Config, rows RowStore, blobs BlobStore, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	namespace, err := Namespace(cfg.ExecutionID)
	if err != nil {
		return nil, err
	}

	client := &Client{
		tableName: cfg.TableName,
		namespace: namespace,
		ttl:       cfg.ttl(),
		rows:      rows,
		blobs:     blobs,
		logger:    zerolog.Nop(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.logger = ClientLogger(client.logger, client.tableName, client.namespace)

	return client, nil
}

// Namespace returns the per-execution namespace this client writes under.
func (c *Client) Namespace() string {
	return c.namespace
}

// TableName returns the key-value tier table this client is bound to.
func (c *Client) TableName() string {
	return c.tableName
}

// Item operations

// PutItem stores a single item under a logical key in the client's namespace.
func (c *Client) PutItem(ctx context.Context, key string, v any) (*ItemLocator, error) {
	return c.PutItemAt(ctx, key, v, 0)
}

// PutItemAt stores a single item at an explicit positional index under a
// logical key. PutItem is PutItemAt with index 0.
func (c *Client) PutItemAt(ctx context.Context, key string, v any, index int) (*ItemLocator, error) {
	partitionKey := PartitionKey(c.namespace, key)
	if err := c.writeRow(ctx, c.tableName, partitionKey, index, v); err != nil {
		return nil, err
	}

	return &ItemLocator{
		TableName:    c.tableName,
		PartitionKey: partitionKey,
		Key:          key,
	}, nil
}

// GetItem retrieves the item stored under a logical key into out.
func (c *Client) GetItem(ctx context.Context, key string, out any) error {
	return c.GetItemAt(ctx, key, 0, out)
}

// GetItemAt retrieves the item at an explicit positional index under a
// logical key into out.
func (c *Client) GetItemAt(ctx context.Context, key string, index int, out any) error {
	raw, err := c.readRow(ctx, c.tableName, PartitionKey(c.namespace, key), index)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// Global item operations. Global items are addressed by an explicit table and
// partition key with no namespace prefix applied, so a different execution can
// read them with only the locator fields.

// PutGlobalItem stores an item readable across executions.
func (c *Client) PutGlobalItem(ctx context.Context, tableName, partitionKey string, v any, index int) (*GlobalItemLocator, error) {
	if err := c.writeRow(ctx, tableName, partitionKey, index, v); err != nil {
		return nil, err
	}

	return &GlobalItemLocator{
		TableName:    tableName,
		PartitionKey: partitionKey,
	}, nil
}

// GetGlobalItem retrieves a cross-execution item into out.
func (c *Client) GetGlobalItem(ctx context.Context, tableName, partitionKey string, index int, out any) error {
	raw, err := c.readRow(ctx, tableName, partitionKey, index)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// List operations

// PutItems stores an ordered sequence of items under one logical key. Each
// element is routed through the size check independently and written as its
// own row; the returned locator's Items field holds one tier marker per
// element. An empty input yields an empty marker slice and writes no rows.
func (c *Client) PutItems(ctx context.Context, key string, items []any) (*ListLocator, error) {
	partitionKey := PartitionKey(c.namespace, key)

	markers, err := c.writeList(ctx, c.tableName, partitionKey, items)
	if err != nil {
		return nil, err
	}

	return &ListLocator{
		TableName:    c.tableName,
		PartitionKey: partitionKey,
		Key:          key,
		Items:        markers,
	}, nil
}

// GetItems retrieves the ordered sequence stored under a logical key. Sort-key
// order is the source of truth, so the result always matches write order.
func (c *Client) GetItems(ctx context.Context, key string) ([]json.RawMessage, error) {
	return c.readList(ctx, c.tableName, PartitionKey(c.namespace, key))
}

// PutGlobalItems stores an ordered sequence readable across executions.
func (c *Client) PutGlobalItems(ctx context.Context, tableName, partitionKey string, items []any) (*GlobalListLocator, error) {
	markers, err := c.writeList(ctx, tableName, partitionKey, items)
	if err != nil {
		return nil, err
	}

	return &GlobalListLocator{
		TableName:    tableName,
		PartitionKey: partitionKey,
		Items:        markers,
	}, nil
}

// GetGlobalItems retrieves a cross-execution ordered sequence.
func (c *Client) GetGlobalItems(ctx context.Context, tableName, partitionKey string) ([]json.RawMessage, error) {
	return c.readList(ctx, tableName, partitionKey)
}

// Map-iteration operations. Each parallel branch of a map state derives its
// row coordinates from the upstream list locator and its own branch index, so
// branches never collide and need no coordination.

// PutItemForMapIteration stores a branch result in the client's own namespace.
// The branch row's partition key is namespace:{items_result_key} and its sort
// key is the branch's context_index. The returned locator omits the index;
// readers recompute it from their own event.
func (c *Client) PutItemForMapIteration(ctx context.Context, event MapIterationEvent, v any) (*ItemLocator, error) {
	key, index, err := event.LocalCoordinates()
	if err != nil {
		return nil, err
	}

	partitionKey := PartitionKey(c.namespace, key)
	if err := c.writeRow(ctx, c.tableName, partitionKey, index, v); err != nil {
		return nil, err
	}

	return &ItemLocator{
		TableName:    c.tableName,
		PartitionKey: partitionKey,
		Key:          key,
	}, nil
}

// GetItemForMapIteration retrieves a branch result from the client's own
// namespace using the same event fields the put used.
func (c *Client) GetItemForMapIteration(ctx context.Context, event MapIterationEvent, out any) error {
	key, index, err := event.LocalCoordinates()
	if err != nil {
		return err
	}

	raw, err := c.readRow(ctx, c.tableName, PartitionKey(c.namespace, key), index)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// PutGlobalItemForMapIteration stores a branch result at the explicit table
// and partition key carried by the event, with no namespace prefix, so a
// downstream execution can read it.
func (c *Client) PutGlobalItemForMapIteration(ctx context.Context, event MapIterationEvent, v any) (*GlobalItemLocator, error) {
	tableName, partitionKey, index, err := event.GlobalCoordinates()
	if err != nil {
		return nil, err
	}

	if err := c.writeRow(ctx, tableName, partitionKey, index, v); err != nil {
		return nil, err
	}

	return &GlobalItemLocator{
		TableName:    tableName,
		PartitionKey: partitionKey,
	}, nil
}

// GetGlobalItemForMapIteration retrieves a cross-execution branch result.
func (c *Client) GetGlobalItemForMapIteration(ctx context.Context, event MapIterationEvent, out any) error {
	tableName, partitionKey, index, err := event.GlobalCoordinates()
	if err != nil {
		return err
	}

	raw, err := c.readRow(ctx, tableName, partitionKey, index)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

// Internal tiered write/read path

func (c *Client) writeRow(ctx context.Context, tableName, partitionKey string, sortKey int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	size := int64(len(payload))
	if size > MaxOverflowBytes {
		return &PayloadTooLargeError{Size: size, Limit: MaxOverflowBytes}
	}

	row := Row{
		PartitionKey: partitionKey,
		SortKey:      sortKey,
		PayloadSize:  size,
		ExpiresAt:    c.now().Add(c.ttl),
	}

	tier := RouteTier(payload)
	if tier == TierInline {
		row.Payload = payload
	} else {
		row.Overflow = true
		address := OverflowAddress(tableName, partitionKey, sortKey)
		if err := c.blobs.PutBlob(ctx, address, payload); err != nil {
			LogStorageError(c.logger, "put_blob", tableName, partitionKey, err)
			return fmt.Errorf("failed to store overflow object: %w", err)
		}
		LogItemOverflowed(c.logger, address, size)
	}

	if err := c.rows.PutRow(ctx, tableName, row); err != nil {
		LogStorageError(c.logger, "put_row", tableName, partitionKey, err)
		return fmt.Errorf("failed to store row: %w", err)
	}

	LogItemStored(c.logger, tableName, partitionKey, sortKey, tier, size)
	return nil
}

func (c *Client) readRow(ctx context.Context, tableName, partitionKey string, sortKey int) (json.RawMessage, error) {
	row, err := c.rows.GetRow(ctx, tableName, partitionKey, sortKey)
	if err != nil {
		return nil, err
	}
	return c.resolveRow(ctx, tableName, row)
}

// resolveRow turns a row into its serialized item, following the overflow
// pointer when the payload lives in the object store.
func (c *Client) resolveRow(ctx context.Context, tableName string, row Row) (json.RawMessage, error) {
	if !row.Overflow {
		LogItemFetched(c.logger, tableName, row.PartitionKey, row.SortKey, TierInline)
		return json.RawMessage(row.Payload), nil
	}

	address := OverflowAddress(tableName, row.PartitionKey, row.SortKey)
	data, err := c.blobs.GetBlob(ctx, address)
	if err != nil {
		LogStorageError(c.logger, "get_blob", tableName, row.PartitionKey, err)
		return nil, fmt.Errorf("failed to fetch overflow object: %w", err)
	}

	LogItemFetched(c.logger, tableName, row.PartitionKey, row.SortKey, TierOverflow)
	return json.RawMessage(data), nil
}

// writeList assigns sequential sort keys, routes each element independently
// and returns the per-element tier markers. A failure partway leaves the
// already-written rows in place; an identical rewrite overwrites them.
func (c *Client) writeList(ctx context.Context, tableName, partitionKey string, items []any) ([]int, error) {
	markers := make([]int, 0, len(items))
	for i, item := range items {
		if err := c.writeRow(ctx, tableName, partitionKey, listBaseSortKey+i, item); err != nil {
			return nil, fmt.Errorf("failed to store list element %d: %w", i, err)
		}
		markers = append(markers, 1)
	}

	LogListStored(c.logger, tableName, partitionKey, len(items))
	return markers, nil
}

func (c *Client) readList(ctx context.Context, tableName, partitionKey string) ([]json.RawMessage, error) {
	rows, err := c.rows.QueryRows(ctx, tableName, partitionKey)
	if err != nil {
		LogStorageError(c.logger, "query_rows", tableName, partitionKey, err)
		return nil, fmt.Errorf("failed to query list rows: %w", err)
	}

	items := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		raw, err := c.resolveRow(ctx, tableName, row)
		if err != nil {
			return nil, err
		}
		items = append(items, raw)
	}

	LogListFetched(c.logger, tableName, partitionKey, len(items))
	return items, nil
}

func decodeInto(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return nil
}
