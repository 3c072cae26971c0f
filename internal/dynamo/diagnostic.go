// Diagnostic table reads. The table is written by an offline pipeline; the
// reminder jobs only ever need the newest artifact per pet.
package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/catlinkdev/go-catcare-backend/internal/domain"
)

// DiagStore reads DiagRecord items from the diagnostic table.
type DiagStore struct {
	client API
	table  string
}

// NewDiagStore returns a DiagStore bound to the given table.
func NewDiagStore(client API, table string) *DiagStore {
	return &DiagStore{client: client, table: table}
}

// LatestDiagnostic returns the newest diagnostic record for petID, or
// (nil, nil) when the pipeline has not produced one yet.
func (s *DiagStore) LatestDiagnostic(ctx context.Context, petID string) (*domain.DiagRecord, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: petID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	var rec domain.DiagRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
