package repository

import (
	"campus-assistant/internal/models"
	"campus-assistant/internal/utils"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type pushTokenRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewPushTokenRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.PushTokenRepository {
	return &pushTokenRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

// GetAllTokens returns every registered token, for broadcast delivery.
func (r *pushTokenRepository) GetAllTokens() ([]models.PushToken, error) {
	result, err := r.dynamodb.Scan(context.Background(), &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to scan push tokens from DynamoDB")
		return nil, fmt.Errorf("failed to get push tokens: %w", err)
	}

	var tokens []models.PushToken
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tokens); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal push tokens")
		return nil, fmt.Errorf("failed to parse push tokens: %w", err)
	}

	r.logger.Infof("Successfully retrieved %d push tokens", len(tokens))
	return tokens, nil
}

// GetTokenByUser returns the user's registered token, or nil when the user
// never registered one.
func (r *pushTokenRepository) GetTokenByUser(userID string) (*models.PushToken, error) {
	result, err := r.dynamodb.GetItem(context.Background(), &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to get push token from DynamoDB")
		return nil, fmt.Errorf("failed to get push token: %w", err)
	}

	if result.Item == nil {
		// No token registered for this user
		return nil, nil
	}

	var token models.PushToken
	if err := attributevalue.UnmarshalMap(result.Item, &token); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal push token")
		return nil, fmt.Errorf("failed to parse push token: %w", err)
	}

	return &token, nil
}

// SaveToken upserts the user's token, overwriting any previous registration.
func (r *pushTokenRepository) SaveToken(userID, token string) error {
	timestamp := time.Now().UTC().Format(time.RFC3339)

	_, err := r.dynamodb.PutItem(context.Background(), &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item: map[string]types.AttributeValue{
			"userId":    &types.AttributeValueMemberS{Value: userID},
			"token":     &types.AttributeValueMemberS{Value: token},
			"createdAt": &types.AttributeValueMemberS{Value: timestamp},
		},
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to save push token to DynamoDB")
		return fmt.Errorf("failed to save push token: %w", err)
	}

	r.logger.WithField("userId", userID).Info("Successfully saved push token")
	return nil
}

// DeleteToken drops a registration whose target the push platform reported as
// permanently invalid.
func (r *pushTokenRepository) DeleteToken(userID string) error {
	_, err := r.dynamodb.DeleteItem(context.Background(), &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to delete push token from DynamoDB")
		return fmt.Errorf("failed to delete push token: %w", err)
	}

	r.logger.WithField("userId", userID).Info("Successfully deleted push token")
	return nil
}
