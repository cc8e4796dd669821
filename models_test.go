package statepass

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Locator JSON shapes are the wire contract between workflow steps; downstream
// steps pattern-match on the exact field sets.

func TestItemLocator_WireShape(t *testing.T) {
	locator := ItemLocator{TableName: "t", PartitionKey: "ns:k", Key: "k"}

	data, err := json.Marshal(locator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"table_name":"t","partition_key":"ns:k","key":"k"}`, string(data))
}

func TestGlobalItemLocator_WireShape(t *testing.T) {
	locator := GlobalItemLocator{TableName: "t", PartitionKey: "pk"}

	data, err := json.Marshal(locator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"table_name":"t","partition_key":"pk"}`, string(data))
}

func TestListLocator_WireShape(t *testing.T) {
	locator := ListLocator{TableName: "t", PartitionKey: "ns:k", Key: "k", Items: []int{1, 1}}

	data, err := json.Marshal(locator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"table_name":"t","partition_key":"ns:k","key":"k","items":[1,1]}`, string(data))
}

func TestListLocator_EmptyItemsMarshalsAsArray(t *testing.T) {
	locator := ListLocator{TableName: "t", PartitionKey: "ns:k", Key: "k", Items: []int{}}

	data, err := json.Marshal(locator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"table_name":"t","partition_key":"ns:k","key":"k","items":[]}`, string(data))
}

func TestMapIterationEvent_Decode(t *testing.T) {
	payload := `{"items_result_key":"results","context_index":24}`

	var event MapIterationEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &event))

	key, index, err := event.LocalCoordinates()
	require.NoError(t, err)
	assert.Equal(t, "results", key)
	assert.Equal(t, 24, index)
}

func TestMapIterationEvent_LocalCoordinates_IndexZero(t *testing.T) {
	// Branch 0 is a valid index and must not read as a missing field.
	event := MapIterationEvent{ItemsResultKey: "results", ContextIndex: ToPtr(0)}

	key, index, err := event.LocalCoordinates()
	require.NoError(t, err)
	assert.Equal(t, "results", key)
	assert.Equal(t, 0, index)
}

func TestMapIterationEvent_LocalCoordinates_Missing(t *testing.T) {
	event := MapIterationEvent{}

	_, _, err := event.LocalCoordinates()
	require.Error(t, err)
	assert.True(t, IsMalformedEvent(err))

	var malformed *MalformedEventError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, []string{"items_result_key", "context_index"}, malformed.Missing)
}

func TestMapIterationEvent_GlobalCoordinates(t *testing.T) {
	event := MapIterationEvent{
		ItemsResultTableName:    "other-table",
		ItemsResultPartitionKey: "other-ns:results",
		ContextIndex:            ToPtr(7),
	}

	tableName, partitionKey, index, err := event.GlobalCoordinates()
	require.NoError(t, err)
	assert.Equal(t, "other-table", tableName)
	assert.Equal(t, "other-ns:results", partitionKey)
	assert.Equal(t, 7, index)
}

func TestMapIterationEvent_GlobalCoordinates_Missing(t *testing.T) {
	event := MapIterationEvent{ItemsResultTableName: "t"}

	_, _, _, err := event.GlobalCoordinates()
	require.Error(t, err)

	var malformed *MalformedEventError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, []string{"items_result_partition_key", "context_index"}, malformed.Missing)
}
