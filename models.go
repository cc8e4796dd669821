package statepass

// Locator variants returned to callers. These shapes are forwarded verbatim
// through the workflow engine as step output, and downstream steps pattern-match
// on their fields, so the JSON field sets must stay stable.

// ItemLocator identifies a single item stored under the writing client's
// namespace. PartitionKey already includes the namespace prefix.
type ItemLocator struct {
	TableName    string `json:"table_name"`
	PartitionKey string `json:"partition_key"`
	Key          string `json:"key"`
}

// GlobalItemLocator identifies an item addressed by an explicit table and
// partition key, readable from any namespace.
type GlobalItemLocator struct {
	TableName    string `json:"table_name"`
	PartitionKey string `json:"partition_key"`
}

// ListLocator identifies an ordered sequence of items stored under one logical
// key. Items holds one tier marker per element (1 = stored at that position);
// markers record count/consistency, not content.
type ListLocator struct {
	TableName    string `json:"table_name"`
	PartitionKey string `json:"partition_key"`
	Key          string `json:"key"`
	Items        []int  `json:"items"`
}

// GlobalListLocator identifies an ordered sequence addressed by an explicit
// table and partition key.
type GlobalListLocator struct {
	TableName    string `json:"table_name"`
	PartitionKey string `json:"partition_key"`
	Items        []int  `json:"items"`
}

// MapIterationEvent is the slice of the workflow engine's event payload the
// map-iteration helpers consume. Local addressing requires ItemsResultKey and
// ContextIndex; global addressing requires ItemsResultTableName,
// ItemsResultPartitionKey and ContextIndex. ContextIndex is a pointer so a
// missing index can be told apart from branch 0.
type MapIterationEvent struct {
	ItemsResultKey          string `json:"items_result_key,omitempty"`
	ItemsResultTableName    string `json:"items_result_table_name,omitempty"`
	ItemsResultPartitionKey string `json:"items_result_partition_key,omitempty"`
	ContextIndex            *int   `json:"context_index,omitempty"`
}

// LocalCoordinates extracts the logical key and branch index for namespace-local
// map-iteration addressing.
func (e MapIterationEvent) LocalCoordinates() (key string, index int, err error) {
	var missing []string
	if e.ItemsResultKey == "" {
		missing = append(missing, "items_result_key")
	}
	if e.ContextIndex == nil {
		missing = append(missing, "context_index")
	}
	if len(missing) > 0 {
		return "", 0, NewMalformedEventError(missing)
	}
	return e.ItemsResultKey, *e.ContextIndex, nil
}

// GlobalCoordinates extracts the explicit table, partition key and branch index
// for cross-namespace map-iteration addressing.
func (e MapIterationEvent) GlobalCoordinates() (tableName, partitionKey string, index int, err error) {
	var missing []string
	if e.ItemsResultTableName == "" {
		missing = append(missing, "items_result_table_name")
	}
	if e.ItemsResultPartitionKey == "" {
		missing = append(missing, "items_result_partition_key")
	}
	if e.ContextIndex == nil {
		missing = append(missing, "context_index")
	}
	if len(missing) > 0 {
		return "", "", 0, NewMalformedEventError(missing)
	}
	return e.ItemsResultTableName, e.ItemsResultPartitionKey, *e.ContextIndex, nil
}
