package repositories

import (
	"context"
	"fmt"
	"strconv"

	"kesher_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// StarterRepository stores the conversation starters of a match.
type StarterRepository interface {
	Exists(ctx context.Context, matchID string) (bool, error)
	PutBatch(ctx context.Context, starters []models.Starter) error
	ListByMatch(ctx context.Context, matchID string) ([]models.Starter, error)
	MarkUsed(ctx context.Context, matchID string, order int) error
}

// DynamoStarterRepository implements StarterRepository on DynamoDB.
// Partition key matchId, numeric sort key order (1-3).
type DynamoStarterRepository struct {
	Dynamo *DynamoService
}

func NewDynamoStarterRepository(dynamo *DynamoService) *DynamoStarterRepository {
	return &DynamoStarterRepository{Dynamo: dynamo}
}

func (r *DynamoStarterRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.StartersTable,
		"#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"},
		1,
		true,
	)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

func (r *DynamoStarterRepository) PutBatch(ctx context.Context, starters []models.Starter) error {
	writeRequests := make([]types.WriteRequest, 0, len(starters))
	for _, starter := range starters {
		item, err := attributevalue.MarshalMap(starter)
		if err != nil {
			return fmt.Errorf("failed to marshal starter: %w", err)
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	return r.Dynamo.BatchWriteItems(ctx, models.StartersTable, writeRequests)
}

func (r *DynamoStarterRepository) ListByMatch(ctx context.Context, matchID string) ([]models.Starter, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.StartersTable,
		"#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"},
		0,
		true,
	)
	if err != nil {
		return nil, err
	}

	var starters []models.Starter
	if err := attributevalue.UnmarshalListOfMaps(items, &starters); err != nil {
		return nil, fmt.Errorf("failed to unmarshal starters: %w", err)
	}
	return starters, nil
}

func (r *DynamoStarterRepository) MarkUsed(ctx context.Context, matchID string, order int) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.StartersTable,
		"SET #used = :used",
		map[string]types.AttributeValue{
			"matchId": &types.AttributeValueMemberS{Value: matchID},
			"order":   &types.AttributeValueMemberN{Value: strconv.Itoa(order)},
		},
		map[string]types.AttributeValue{
			":used": &types.AttributeValueMemberBOOL{Value: true},
		},
		map[string]string{"#used": "used"},
	)
	return err
}
