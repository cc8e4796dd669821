package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sicko7947/statepass"
)

// DynamoDBRowStore implements statepass.RowStore using AWS DynamoDB
type DynamoDBRowStore struct {
	client DynamoDBClient
}

// NewDynamoDBRowStore creates a new DynamoDB-backed row store. The table name
// is supplied per call, since global operations address tables other than the
// writing client's own.
func NewDynamoDBRowStore(client DynamoDBClient) statepass.RowStore {
	return &DynamoDBRowStore{client: client}
}

// rowRecord is the stored attribute shape of a statepass.Row
type rowRecord struct {
	PartitionKey string `dynamodbav:"partition_key"`
	SortKey      int    `dynamodbav:"sort_key"`
	Payload      []byte `dynamodbav:"payload,omitempty"`
	Overflow     bool   `dynamodbav:"overflow,omitempty"`
	PayloadSize  int64  `dynamodbav:"payload_size"`
	ExpiresAt    int64  `dynamodbav:"expires_at"`
}

func toRecord(row statepass.Row) rowRecord {
	return rowRecord{
		PartitionKey: row.PartitionKey,
		SortKey:      row.SortKey,
		Payload:      row.Payload,
		Overflow:     row.Overflow,
		PayloadSize:  row.PayloadSize,
		ExpiresAt:    row.ExpiresAt.Unix(),
	}
}

func fromRecord(rec rowRecord) statepass.Row {
	return statepass.Row{
		PartitionKey: rec.PartitionKey,
		SortKey:      rec.SortKey,
		Payload:      rec.Payload,
		Overflow:     rec.Overflow,
		PayloadSize:  rec.PayloadSize,
		ExpiresAt:    time.Unix(rec.ExpiresAt, 0),
	}
}

// PutRow upserts a row. Last writer wins; no condition expression is used.
func (s *DynamoDBRowStore) PutRow(ctx context.Context, tableName string, row statepass.Row) error {
	item, err := attributevalue.MarshalMap(toRecord(row))
	if err != nil {
		return fmt.Errorf("failed to marshal row: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put row: %w", err)
	}

	return nil
}

// GetRow performs an exact-match lookup by (partition key, sort key).
func (s *DynamoDBRowStore) GetRow(ctx context.Context, tableName, partitionKey string, sortKey int) (statepass.Row, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			AttrPartitionKey: &types.AttributeValueMemberS{Value: partitionKey},
			AttrSortKey:      &types.AttributeValueMemberN{Value: sortKeyString(sortKey)},
		},
	})
	if err != nil {
		return statepass.Row{}, fmt.Errorf("failed to get row: %w", err)
	}

	if result.Item == nil {
		return statepass.Row{}, statepass.NewNotFoundError(tableName, partitionKey, sortKey)
	}

	var rec rowRecord
	if err := attributevalue.UnmarshalMap(result.Item, &rec); err != nil {
		return statepass.Row{}, fmt.Errorf("failed to unmarshal row: %w", err)
	}

	return fromRecord(rec), nil
}

// QueryRows returns every row in a partition in ascending sort-key order,
// paginating through all results.
func (s *DynamoDBRowStore) QueryRows(ctx context.Context, tableName, partitionKey string) ([]statepass.Row, error) {
	var rows []statepass.Row
	var lastEvaluatedKey map[string]types.AttributeValue

	// Paginate through all results; Query returns items in ascending
	// sort-key order, which is the list codec's source of truth.
	for {
		queryInput := &dynamodb.QueryInput{
			TableName:              aws.String(tableName),
			KeyConditionExpression: aws.String("partition_key = :pk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: partitionKey},
			},
		}

		if lastEvaluatedKey != nil {
			queryInput.ExclusiveStartKey = lastEvaluatedKey
		}

		result, err := s.client.Query(ctx, queryInput)
		if err != nil {
			return nil, fmt.Errorf("failed to query rows: %w", err)
		}

		for _, item := range result.Items {
			var rec rowRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				return nil, fmt.Errorf("failed to unmarshal row: %w", err)
			}
			rows = append(rows, fromRecord(rec))
		}

		// Check if there are more results
		if result.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = result.LastEvaluatedKey
	}

	return rows, nil
}
