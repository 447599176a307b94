package repositories

import (
	"context"
	"fmt"

	"kesher_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MessageRepository is the append-only per-match message log.
type MessageRepository interface {
	Put(ctx context.Context, message models.Message) error
	ListByMatch(ctx context.Context, matchID string, limit int32) ([]models.Message, error)
	MarkRead(ctx context.Context, matchID, readerID string) (int, error)
}

// DynamoMessageRepository implements MessageRepository on DynamoDB.
// Partition key matchId, sort key messageId; message ids are KSUIDs, so
// sort-key order is creation order.
type DynamoMessageRepository struct {
	Dynamo *DynamoService
}

func NewDynamoMessageRepository(dynamo *DynamoService) *DynamoMessageRepository {
	return &DynamoMessageRepository{Dynamo: dynamo}
}

func (r *DynamoMessageRepository) Put(ctx context.Context, message models.Message) error {
	return r.Dynamo.PutItem(ctx, models.MessagesTable, message)
}

// ListByMatch returns messages oldest first.
func (r *DynamoMessageRepository) ListByMatch(ctx context.Context, matchID string, limit int32) ([]models.Message, error) {
	items, err := r.Dynamo.QueryItems(ctx, models.MessagesTable,
		"#matchId = :matchId",
		map[string]types.AttributeValue{
			":matchId": &types.AttributeValueMemberS{Value: matchID},
		},
		map[string]string{"#matchId": "matchId"},
		limit,
		true,
	)
	if err != nil {
		return nil, err
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

// MarkRead flips every message sent to readerID to status=read and returns
// the number of messages updated.
func (r *DynamoMessageRepository) MarkRead(ctx context.Context, matchID, readerID string) (int, error) {
	messages, err := r.ListByMatch(ctx, matchID, 0)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, msg := range messages {
		if msg.SenderID == readerID || msg.Status == models.MessageStatusRead {
			continue
		}
		_, err := r.Dynamo.UpdateItem(ctx, models.MessagesTable,
			"SET #status = :read",
			map[string]types.AttributeValue{
				"matchId":   &types.AttributeValueMemberS{Value: matchID},
				"messageId": &types.AttributeValueMemberS{Value: msg.MessageID},
			},
			map[string]types.AttributeValue{
				":read": &types.AttributeValueMemberS{Value: models.MessageStatusRead},
			},
			map[string]string{"#status": "status"},
		)
		if err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
