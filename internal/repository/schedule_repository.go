package repository

import (
	"campus-assistant/internal/models"
	"campus-assistant/internal/utils"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type scheduleRepository struct {
	logger    *logrus.Entry
	dynamodb  utils.DynamoDbAPI
	tableName string
}

func NewScheduleRepository(logger *logrus.Entry, dynamodb utils.DynamoDbAPI, tableName string) utils.ScheduleRepository {
	return &scheduleRepository{
		logger:    logger,
		dynamodb:  dynamodb,
		tableName: tableName,
	}
}

func (r *scheduleRepository) GetEntriesByDay(day string) ([]models.ScheduleEntry, error) {
	result, err := r.dynamodb.Scan(context.Background(), &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("#day = :dayVal"), // Use #day as an alias to avoid using the reserved keyword "day"
		ExpressionAttributeNames: map[string]string{
			"#day": "day",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":dayVal": &types.AttributeValueMemberS{Value: day},
		},
	})

	if err != nil {
		r.logger.WithError(err).Error("Failed to scan schedule entries from DynamoDB")
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}

	if len(result.Items) == 0 {
		r.logger.Info("No schedule entries found for ", day)
		return nil, nil
	}

	var entries []models.ScheduleEntry
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &entries); err != nil {
		r.logger.WithError(err).Error("Failed to unmarshal schedule entries")
		return nil, fmt.Errorf("failed to parse schedule entries: %w", err)
	}

	r.logger.Infof("Successfully retrieved %d schedule entries for %s", len(entries), day)
	return entries, nil
}
