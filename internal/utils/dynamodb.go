package utils

import (
	"campus-assistant/internal/models"
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDbAPI defines the DynamoDB operations needed by our application
type DynamoDbAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// ScheduleRepository defines schedule-entry database operations
type ScheduleRepository interface {
	GetEntriesByDay(day string) ([]models.ScheduleEntry, error)
}

// PushTokenRepository defines push-token registry operations
type PushTokenRepository interface {
	GetAllTokens() ([]models.PushToken, error)
	GetTokenByUser(userID string) (*models.PushToken, error)
	SaveToken(userID, token string) error
	DeleteToken(userID string) error
}
