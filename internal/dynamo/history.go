// Package dynamo implements the DynamoDB-backed pet history store. Every
// profile create/update and daily check-in appends an immutable DailyRecord
// keyed by (PK=pet id, SK=ISO timestamp); the dashboard reads the most recent
// window of that series.
package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// API is the subset of the DynamoDB client the store uses. Tests substitute
// an in-memory fake.
type API interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store reads and writes DailyRecord items in one history table.
type Store struct {
	client API
	table  string
}

// NewStore returns a Store bound to the given table.
func NewStore(client API, table string) *Store {
	return &Store{client: client, table: table}
}

// PutRecord appends one history record. The sort key is stamped here from
// the current UTC time unless the caller already set it.
func (s *Store) PutRecord(ctx context.Context, rec domain.DailyRecord) error {
	if rec.SK == "" {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		rec.SK = now
		rec.CreatedAt = now
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return err
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return err
}

// RecentHistory returns up to limit records for petID, newest first.
func (s *Store) RecentHistory(ctx context.Context, petID string, limit int) ([]domain.DailyRecord, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: petID},
		},
		ScanIndexForward: aws.Bool(false), // newest first
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, err
	}
	recs := make([]domain.DailyRecord, 0, len(out.Items))
	for _, item := range out.Items {
		var rec domain.DailyRecord
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// LatestRecord returns the most recent history record for petID, or
// (nil, nil) when the pet has no history yet.
func (s *Store) LatestRecord(ctx context.Context, petID string) (*domain.DailyRecord, error) {
	recs, err := s.RecentHistory(ctx, petID, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}
