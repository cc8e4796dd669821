package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sicko7947/statepass"
)

// MemoryRowStore implements statepass.RowStore using in-memory storage (for testing)
type MemoryRowStore struct {
	tables map[string]map[string]map[int]statepass.Row // table -> partition key -> sort key -> row
	mu     sync.RWMutex
}

// NewMemoryRowStore creates a new in-memory row store
func NewMemoryRowStore() statepass.RowStore {
	return &MemoryRowStore{
		tables: make(map[string]map[string]map[int]statepass.Row),
	}
}

func (s *MemoryRowStore) PutRow(ctx context.Context, tableName string, row statepass.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, exists := s.tables[tableName]
	if !exists {
		table = make(map[string]map[int]statepass.Row)
		s.tables[tableName] = table
	}

	partition, exists := table[row.PartitionKey]
	if !exists {
		partition = make(map[int]statepass.Row)
		table[row.PartitionKey] = partition
	}

	// Copy payload bytes
	rowCopy := row
	rowCopy.Payload = append([]byte(nil), row.Payload...)
	partition[row.SortKey] = rowCopy

	return nil
}

func (s *MemoryRowStore) GetRow(ctx context.Context, tableName, partitionKey string, sortKey int) (statepass.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, exists := s.tables[tableName][partitionKey][sortKey]
	if !exists {
		return statepass.Row{}, statepass.NewNotFoundError(tableName, partitionKey, sortKey)
	}

	// Copy payload bytes
	rowCopy := row
	rowCopy.Payload = append([]byte(nil), row.Payload...)
	return rowCopy, nil
}

func (s *MemoryRowStore) QueryRows(ctx context.Context, tableName, partitionKey string) ([]statepass.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	partition := s.tables[tableName][partitionKey]

	rows := make([]statepass.Row, 0, len(partition))
	for _, row := range partition {
		rowCopy := row
		rowCopy.Payload = append([]byte(nil), row.Payload...)
		rows = append(rows, rowCopy)
	}

	// Ascending sort-key order, matching the real store's query contract
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SortKey < rows[j].SortKey
	})

	return rows, nil
}

// MemoryBlobStore implements statepass.BlobStore using in-memory storage (for testing)
type MemoryBlobStore struct {
	objects map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBlobStore creates a new in-memory blob store
func NewMemoryBlobStore() statepass.BlobStore {
	return &MemoryBlobStore{
		objects: make(map[string][]byte),
	}
}

func (s *MemoryBlobStore) PutBlob(ctx context.Context, address string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[address] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryBlobStore) GetBlob(ctx context.Context, address string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.objects[address]
	if !exists {
		return nil, fmt.Errorf("overflow object %s: %w", address, statepass.ErrNotFound)
	}

	return append([]byte(nil), data...), nil
}
