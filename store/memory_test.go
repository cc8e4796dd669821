package store

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sicko7947/statepass"
)

func TestMemoryRowStore_PutAndGetRow(t *testing.T) {
	rowStore := NewMemoryRowStore()
	ctx := context.Background()

	row := statepass.Row{
		PartitionKey: "exec-1:results",
		SortKey:      3,
		Payload:      []byte(`{"hello":"local"}`),
		PayloadSize:  17,
		ExpiresAt:    time.Unix(1800000000, 0),
	}

	if err := rowStore.PutRow(ctx, "state-table", row); err != nil {
		t.Fatalf("PutRow() failed: %v", err)
	}

	got, err := rowStore.GetRow(ctx, "state-table", "exec-1:results", 3)
	if err != nil {
		t.Fatalf("GetRow() failed: %v", err)
	}

	if got.PartitionKey != row.PartitionKey || got.SortKey != row.SortKey {
		t.Errorf("GetRow() coordinates = %s/%d, want %s/%d", got.PartitionKey, got.SortKey, row.PartitionKey, row.SortKey)
	}
	if !bytes.Equal(got.Payload, row.Payload) {
		t.Errorf("GetRow() payload = %s, want %s", got.Payload, row.Payload)
	}
	if !got.ExpiresAt.Equal(row.ExpiresAt) {
		t.Errorf("GetRow() expiresAt = %v, want %v", got.ExpiresAt, row.ExpiresAt)
	}
}

func TestMemoryRowStore_GetRow_NotFound(t *testing.T) {
	rowStore := NewMemoryRowStore()

	_, err := rowStore.GetRow(context.Background(), "state-table", "exec-1:missing", 0)
	if err == nil {
		t.Fatal("GetRow() did not fail for an absent row")
	}
	if !statepass.IsNotFound(err) {
		t.Errorf("GetRow() error = %v, want a not-found error", err)
	}
}

func TestMemoryRowStore_LastWriterWins(t *testing.T) {
	rowStore := NewMemoryRowStore()
	ctx := context.Background()

	first := statepass.Row{PartitionKey: "pk", SortKey: 0, Payload: []byte(`"first"`)}
	second := statepass.Row{PartitionKey: "pk", SortKey: 0, Payload: []byte(`"second"`)}

	if err := rowStore.PutRow(ctx, "state-table", first); err != nil {
		t.Fatalf("PutRow() failed: %v", err)
	}
	if err := rowStore.PutRow(ctx, "state-table", second); err != nil {
		t.Fatalf("PutRow() failed: %v", err)
	}

	got, err := rowStore.GetRow(ctx, "state-table", "pk", 0)
	if err != nil {
		t.Fatalf("GetRow() failed: %v", err)
	}
	if string(got.Payload) != `"second"` {
		t.Errorf("GetRow() payload = %s, want \"second\"", got.Payload)
	}
}

func TestMemoryRowStore_QueryRows_SortKeyOrder(t *testing.T) {
	rowStore := NewMemoryRowStore()
	ctx := context.Background()

	// Insert out of order; the query contract is ascending sort-key order.
	for _, sortKey := range []int{2, 0, 1} {
		row := statepass.Row{PartitionKey: "exec-1:numbers", SortKey: sortKey, Payload: []byte(`{}`)}
		if err := rowStore.PutRow(ctx, "state-table", row); err != nil {
			t.Fatalf("PutRow() failed: %v", err)
		}
	}

	rows, err := rowStore.QueryRows(ctx, "state-table", "exec-1:numbers")
	if err != nil {
		t.Fatalf("QueryRows() failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("QueryRows() returned %d rows, want 3", len(rows))
	}
	for i, row := range rows {
		if row.SortKey != i {
			t.Errorf("rows[%d].SortKey = %d, want %d", i, row.SortKey, i)
		}
	}
}

func TestMemoryRowStore_TablesAreIsolated(t *testing.T) {
	rowStore := NewMemoryRowStore()
	ctx := context.Background()

	row := statepass.Row{PartitionKey: "pk", SortKey: 0, Payload: []byte(`{}`)}
	if err := rowStore.PutRow(ctx, "table-a", row); err != nil {
		t.Fatalf("PutRow() failed: %v", err)
	}

	if _, err := rowStore.GetRow(ctx, "table-b", "pk", 0); !statepass.IsNotFound(err) {
		t.Errorf("GetRow() on other table error = %v, want a not-found error", err)
	}
}

func TestMemoryBlobStore_PutAndGetBlob(t *testing.T) {
	blobStore := NewMemoryBlobStore()
	ctx := context.Background()

	data := []byte(`{"big":"payload"}`)
	if err := blobStore.PutBlob(ctx, "state-table/pk/0.json", data); err != nil {
		t.Fatalf("PutBlob() failed: %v", err)
	}

	got, err := blobStore.GetBlob(ctx, "state-table/pk/0.json")
	if err != nil {
		t.Fatalf("GetBlob() failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("GetBlob() = %s, want %s", got, data)
	}
}

func TestMemoryBlobStore_GetBlob_NotFound(t *testing.T) {
	blobStore := NewMemoryBlobStore()

	_, err := blobStore.GetBlob(context.Background(), "missing")
	if err == nil {
		t.Fatal("GetBlob() did not fail for an absent object")
	}
	if !statepass.IsNotFound(err) {
		t.Errorf("GetBlob() error = %v, want a not-found error", err)
	}
}

func TestMemoryBlobStore_CopiesData(t *testing.T) {
	blobStore := NewMemoryBlobStore()
	ctx := context.Background()

	data := []byte(`{"n":1}`)
	if err := blobStore.PutBlob(ctx, "addr", data); err != nil {
		t.Fatalf("PutBlob() failed: %v", err)
	}

	// Mutating the caller's slice must not affect the stored object.
	data[0] = 'X'

	got, err := blobStore.GetBlob(ctx, "addr")
	if err != nil {
		t.Fatalf("GetBlob() failed: %v", err)
	}
	if string(got) != `{"n":1}` {
		t.Errorf("GetBlob() = %s, want {\"n\":1}", got)
	}
}
