package statepass

import (
	"fmt"
	"strings"
)

// Namespace derives the per-execution namespace from a workflow execution
// identifier. The mapping is 1:1 and stable for the lifetime of the execution;
// every partition key a client writes locally is prefixed with it, so two
// executions sharing a table can never collide on the same logical key.
func Namespace(executionID string) (string, error) {
	ns := strings.TrimSpace(executionID)
	if ns == "" {
		return "", &ValidationError{Field: "ExecutionID", Message: "must not be empty"}
	}
	return ns, nil
}

// PartitionKey scopes a caller-supplied logical key to a namespace.
func PartitionKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}
