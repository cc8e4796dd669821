package statepass

// Tier identifies where a serialized item is persisted.
type Tier string

const (
	// TierInline stores the item as row attributes in the key-value tier.
	TierInline Tier = "INLINE"
	// TierOverflow stores the item as a blob in the object store, with the
	// row holding only a pointer flag and size metadata.
	TierOverflow Tier = "OVERFLOW"
)

// String returns the string representation
func (t Tier) String() string {
	return string(t)
}

const (
	// ItemSizeThresholdBytes is the inline/overflow routing threshold.
	// DynamoDB's hard item ceiling is 400KB counting attribute names, so the
	// threshold is calibrated at 375KB to leave headroom for the key
	// attributes, the expiry field and the tier envelope.
	ItemSizeThresholdBytes = 375 * 1024

	// MaxOverflowBytes is the largest serialized item the overflow tier
	// accepts in a single write (S3's single-PUT ceiling). Items above it
	// fail immediately; there is no chunking.
	MaxOverflowBytes = int64(5) * 1024 * 1024 * 1024
)

// RouteTier classifies a serialized item. Pure decision, no side effects.
func RouteTier(serialized []byte) Tier {
	if len(serialized) < ItemSizeThresholdBytes {
		return TierInline
	}
	return TierOverflow
}
