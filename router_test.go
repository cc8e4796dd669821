package statepass

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteTier(t *testing.T) {
	tests := []struct {
		name string
		size int
		want Tier
	}{
		{"empty", 0, TierInline},
		{"small", 64, TierInline},
		{"just below threshold", ItemSizeThresholdBytes - 1, TierInline},
		{"at threshold", ItemSizeThresholdBytes, TierOverflow},
		{"just above threshold", ItemSizeThresholdBytes + 1, TierOverflow},
		{"far above threshold", 4 * ItemSizeThresholdBytes, TierOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RouteTier(bytes.Repeat([]byte("a"), tt.size)))
		})
	}
}

func TestItemSizeThreshold_LeavesEnvelopeHeadroom(t *testing.T) {
	// DynamoDB's hard item ceiling is 400KB counting attribute names; the
	// routing threshold must sit below it so key attributes, the expiry field
	// and the tier envelope still fit.
	const dynamoDBItemLimit = 400 * 1024
	assert.Less(t, ItemSizeThresholdBytes, dynamoDBItemLimit)
}
