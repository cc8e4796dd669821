package store

// Package store provides tier implementations for the state data client.
// The RowStore and BlobStore interfaces are defined in the parent statepass
// package (../store_interface.go) to avoid import cycles between the client
// and store packages.
//
// This package contains concrete implementations:
//   - DynamoDBRowStore: key-value tier on AWS DynamoDB
//   - S3BlobStore: overflow tier on AWS S3
//   - MemoryRowStore / MemoryBlobStore: in-memory tiers for testing
//
// Attribute naming follows the conventions in schema.go.
