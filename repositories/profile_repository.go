package repositories

import (
	"context"
	"errors"
	"fmt"

	"kesher_server/apperrors"
	"kesher_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ProfileRepository is the storage interface for user profiles and their
// public projections.
type ProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Put(ctx context.Context, profile models.UserProfile) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error)
	Delete(ctx context.Context, userID string) error
	ScanByGender(ctx context.Context, gender string, limit int32) ([]models.UserProfile, error)
	SetDevices(ctx context.Context, userID string, devices []models.Device) error
	PutPublicProfile(ctx context.Context, profile models.PublicProfile) error
	DeletePublicProfile(ctx context.Context, userID string) error
}

// DynamoProfileRepository implements ProfileRepository on DynamoDB.
type DynamoProfileRepository struct {
	Dynamo *DynamoService
}

func NewDynamoProfileRepository(dynamo *DynamoService) *DynamoProfileRepository {
	return &DynamoProfileRepository{Dynamo: dynamo}
}

func profileKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *DynamoProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := r.Dynamo.GetItem(ctx, models.UserProfilesTable, profileKey(userID))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, apperrors.New(apperrors.NotFound, "user not found")
		}
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *DynamoProfileRepository) Put(ctx context.Context, profile models.UserProfile) error {
	return r.Dynamo.PutItem(ctx, models.UserProfilesTable, profile)
}

// Update applies a SET expression built from the updates map and returns the
// resulting profile.
func (r *DynamoProfileRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*models.UserProfile, error) {
	if len(updates) == 0 {
		return r.Get(ctx, userID)
	}

	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)

	for k, v := range updates {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update field '%s': %w", k, err)
		}
		updateExpression += " #" + k + " = :" + k + ","
		expressionAttributeValues[":"+k] = av
		expressionAttributeNames["#"+k] = k
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	updatedItem, err := r.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression,
		profileKey(userID), expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}

	var updatedProfile models.UserProfile
	if err := attributevalue.UnmarshalMap(updatedItem, &updatedProfile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated profile: %w", err)
	}
	return &updatedProfile, nil
}

func (r *DynamoProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.Dynamo.DeleteItem(ctx, models.UserProfilesTable, profileKey(userID))
}

// ScanByGender fetches up to limit gender-matched profiles, paging through
// the table as needed. An empty gender scans everyone.
func (r *DynamoProfileRepository) ScanByGender(ctx context.Context, gender string, limit int32) ([]models.UserProfile, error) {
	matchFields := map[string]string{}
	if gender != "" {
		matchFields["gender"] = gender
	}

	var profiles []models.UserProfile
	err := r.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, nil, matchFields, limit, &profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filtered profiles: %w", err)
	}
	return profiles, nil
}

func (r *DynamoProfileRepository) SetDevices(ctx context.Context, userID string, devices []models.Device) error {
	av, err := attributevalue.Marshal(devices)
	if err != nil {
		return fmt.Errorf("failed to marshal devices: %w", err)
	}

	_, err = r.Dynamo.UpdateItem(ctx, models.UserProfilesTable, "SET #devices = :devices",
		profileKey(userID),
		map[string]types.AttributeValue{":devices": av},
		map[string]string{"#devices": "devices"},
	)
	return err
}

func (r *DynamoProfileRepository) PutPublicProfile(ctx context.Context, profile models.PublicProfile) error {
	return r.Dynamo.PutItem(ctx, models.PublicProfilesTable, profile)
}

func (r *DynamoProfileRepository) DeletePublicProfile(ctx context.Context, userID string) error {
	return r.Dynamo.DeleteItem(ctx, models.PublicProfilesTable, profileKey(userID))
}
