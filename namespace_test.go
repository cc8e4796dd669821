package statepass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	ns, err := Namespace("execution-123")
	require.NoError(t, err)
	assert.Equal(t, "execution-123", ns)
}

func TestNamespace_Stable(t *testing.T) {
	first, err := Namespace("execution-123")
	require.NoError(t, err)
	second, err := Namespace("execution-123")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNamespace_TrimsWhitespace(t *testing.T) {
	ns, err := Namespace("  execution-123\n")
	require.NoError(t, err)
	assert.Equal(t, "execution-123", ns)
}

func TestNamespace_Empty(t *testing.T) {
	tests := []string{"", "   ", "\t\n"}
	for _, id := range tests {
		_, err := Namespace(id)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestPartitionKey(t *testing.T) {
	assert.Equal(t, "exec-1:results", PartitionKey("exec-1", "results"))
}

func TestPartitionKey_DistinctNamespaces(t *testing.T) {
	// Same logical key under different namespaces never yields the same
	// partition key.
	assert.NotEqual(t, PartitionKey("exec-a", "k"), PartitionKey("exec-b", "k"))
}
