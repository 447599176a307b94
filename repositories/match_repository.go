package repositories

import (
	"context"
	"errors"
	"fmt"

	"kesher_server/apperrors"
	"kesher_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchRepository is the storage interface for the match lifecycle. The
// implementation must make CreateActiveMatch and Close atomic with respect
// to concurrent callers touching the same users.
type MatchRepository interface {
	Get(ctx context.Context, matchID string) (*models.Match, error)
	CreateActiveMatch(ctx context.Context, match models.Match) error
	Close(ctx context.Context, match models.Match, closedBy, reason, at string) error
	GetActiveMatchID(ctx context.Context, userID string) (string, error)
	TouchLastMessage(ctx context.Context, matchID, at string) error
}

// DynamoMatchRepository implements MatchRepository on DynamoDB.
//
// The one-active-match invariant is enforced with a denormalized
// activeMatchId pointer on each profile item: creating a match puts the
// match record and sets both pointers in one TransactWriteItems call, each
// pointer write conditioned on the profile item existing and the pointer
// being absent. The existence condition keeps the Update from upserting a
// stub profile when a profile is deleted after the service's pre-check.
// DynamoDB cannot re-query inside a transaction, so these conditions are
// the compare-and-swap equivalent of the original read-inside-transaction
// check.
type DynamoMatchRepository struct {
	Dynamo *DynamoService
}

func NewDynamoMatchRepository(dynamo *DynamoService) *DynamoMatchRepository {
	return &DynamoMatchRepository{Dynamo: dynamo}
}

func matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": &types.AttributeValueMemberS{Value: matchID},
	}
}

func (r *DynamoMatchRepository) Get(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := r.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(matchID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "match not found")
		}
		return nil, err
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func (r *DynamoMatchRepository) CreateActiveMatch(ctx context.Context, match models.Match) error {
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		return fmt.Errorf("failed to marshal match: %w", err)
	}

	transactItems := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(models.MatchesTable),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(matchId)"),
			},
		},
	}
	for _, userID := range match.Users {
		transactItems = append(transactItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(models.UserProfilesTable),
				Key:                 profileKey(userID),
				UpdateExpression:    aws.String("SET activeMatchId = :matchId, updatedAt = :now"),
				ConditionExpression: aws.String("attribute_exists(userId) AND attribute_not_exists(activeMatchId)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":matchId": &types.AttributeValueMemberS{Value: match.MatchID},
					":now":     &types.AttributeValueMemberS{Value: match.CreatedAt},
				},
			},
		})
	}

	if err := r.Dynamo.TransactWriteItems(ctx, transactItems); err != nil {
		if IsConditionalCheckFailed(err) {
			return apperrors.New(apperrors.FailedPrecondition, "a participant is missing or already has an active match")
		}
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

// Close flips the match to its terminal state and clears both activeMatchId
// pointers in one transaction. The conditions only hold while the match is
// active and still pointed at, so a second close fails the precondition.
func (r *DynamoMatchRepository) Close(ctx context.Context, match models.Match, closedBy, reason, at string) error {
	transactItems := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName: aws.String(models.MatchesTable),
				Key:       matchKey(match.MatchID),
				UpdateExpression: aws.String(
					"SET #state = :closed, closedBy = :closedBy, closeReason = :reason, closedAt = :now, updatedAt = :now"),
				ConditionExpression: aws.String("#state = :active"),
				ExpressionAttributeNames: map[string]string{
					"#state": "state",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":closed":   &types.AttributeValueMemberS{Value: models.MatchStateClosed},
					":active":   &types.AttributeValueMemberS{Value: models.MatchStateActive},
					":closedBy": &types.AttributeValueMemberS{Value: closedBy},
					":reason":   &types.AttributeValueMemberS{Value: reason},
					":now":      &types.AttributeValueMemberS{Value: at},
				},
			},
		},
	}
	for _, userID := range match.Users {
		transactItems = append(transactItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(models.UserProfilesTable),
				Key:                 profileKey(userID),
				UpdateExpression:    aws.String("REMOVE activeMatchId SET updatedAt = :now"),
				ConditionExpression: aws.String("activeMatchId = :matchId"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":matchId": &types.AttributeValueMemberS{Value: match.MatchID},
					":now":     &types.AttributeValueMemberS{Value: at},
				},
			},
		})
	}

	if err := r.Dynamo.TransactWriteItems(ctx, transactItems); err != nil {
		if IsConditionalCheckFailed(err) {
			return apperrors.New(apperrors.FailedPrecondition, "match is not active")
		}
		return fmt.Errorf("failed to close match: %w", err)
	}
	return nil
}

func (r *DynamoMatchRepository) GetActiveMatchID(ctx context.Context, userID string) (string, error) {
	item, err := r.Dynamo.GetItem(ctx, models.UserProfilesTable, profileKey(userID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return "", apperrors.New(apperrors.NotFound, "user not found")
		}
		return "", err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return "", fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return profile.ActiveMatchID, nil
}

func (r *DynamoMatchRepository) TouchLastMessage(ctx context.Context, matchID, at string) error {
	_, err := r.Dynamo.UpdateItem(ctx, models.MatchesTable,
		"SET lastMessageAt = :now, updatedAt = :now",
		matchKey(matchID),
		map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberS{Value: at},
		}, nil,
	)
	return err
}
