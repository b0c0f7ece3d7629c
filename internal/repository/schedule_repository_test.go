package repository

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

type fakeDynamoDb struct {
	scanOutput *dynamodb.ScanOutput
	scanInput  *dynamodb.ScanInput
	getOutput  *dynamodb.GetItemOutput
	err        error
}

func (f *fakeDynamoDb) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDynamoDb) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInput = params
	return f.scanOutput, f.err
}

func (f *fakeDynamoDb) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return f.getOutput, f.err
}

func (f *fakeDynamoDb) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, f.err
}

func (f *fakeDynamoDb) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return &dynamodb.DeleteItemOutput{}, f.err
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func entryItem(id, day string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: id},
		"userId":    &types.AttributeValueMemberS{Value: "user-1"},
		"title":     &types.AttributeValueMemberS{Value: "Linear Algebra"},
		"type":      &types.AttributeValueMemberS{Value: "Class"},
		"day":       &types.AttributeValueMemberS{Value: day},
		"startTime": &types.AttributeValueMemberS{Value: "09:00"},
		"endTime":   &types.AttributeValueMemberS{Value: "10:30"},
		"recurring": &types.AttributeValueMemberBOOL{Value: true},
	}
}

func TestGetEntriesByDay(t *testing.T) {
	t.Run("Parses matching entries", func(t *testing.T) {
		db := &fakeDynamoDb{scanOutput: &dynamodb.ScanOutput{
			Items: []map[string]types.AttributeValue{
				entryItem("entry-1", "Monday"),
				entryItem("entry-2", "Monday"),
			},
		}}
		repo := NewScheduleRepository(testLogger(), db, "schedules")

		entries, err := repo.GetEntriesByDay("Monday")
		if err != nil {
			t.Fatalf("GetEntriesByDay: %v", err)
		}

		if len(entries) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(entries))
		}
		first := entries[0]
		if first.ID != "entry-1" || first.Title != "Linear Algebra" || first.StartTime != "09:00" || !first.Recurring {
			t.Errorf("entry fields not mapped: %+v", first)
		}
		if db.scanInput.ExpressionAttributeNames["#day"] != "day" {
			t.Errorf("expected the day attribute aliased, got %v", db.scanInput.ExpressionAttributeNames)
		}
	})

	t.Run("No matches yields nil without error", func(t *testing.T) {
		db := &fakeDynamoDb{scanOutput: &dynamodb.ScanOutput{}}
		repo := NewScheduleRepository(testLogger(), db, "schedules")

		entries, err := repo.GetEntriesByDay("Sunday")
		if err != nil {
			t.Fatalf("GetEntriesByDay: %v", err)
		}
		if entries != nil {
			t.Errorf("expected nil, got %v", entries)
		}
	})

	t.Run("Store failure is wrapped", func(t *testing.T) {
		db := &fakeDynamoDb{err: errors.New("dynamodb unavailable")}
		repo := NewScheduleRepository(testLogger(), db, "schedules")

		if _, err := repo.GetEntriesByDay("Monday"); err == nil {
			t.Error("expected an error")
		}
	})
}
