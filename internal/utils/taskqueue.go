package utils

import (
	"campus-assistant/internal/models"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SchedulerAPI defines the EventBridge Scheduler operations needed by the task queue
type SchedulerAPI interface {
	CreateSchedule(ctx context.Context, params *scheduler.CreateScheduleInput, optFns ...func(*scheduler.Options)) (*scheduler.CreateScheduleOutput, error)
}

// LambdaAPI defines the Lambda operations needed for immediate dispatch
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// TaskQueue enqueues delayed notification tasks against the dispatcher.
type TaskQueue interface {
	EnqueueTask(task models.DelayedTask) error
}

type taskQueueClient struct {
	logger        *logrus.Entry
	scheduler     SchedulerAPI
	lambdaClient  LambdaAPI
	dispatcherArn string
	roleArn       string
	groupName     string
}

func NewTaskQueueClient(logger *logrus.Entry, schedulerClient SchedulerAPI, lambdaClient LambdaAPI, dispatcherArn, roleArn, groupName string) TaskQueue {
	return &taskQueueClient{
		logger:        logger,
		scheduler:     schedulerClient,
		lambdaClient:  lambdaClient,
		dispatcherArn: dispatcherArn,
		roleArn:       roleArn,
		groupName:     groupName,
	}
}

// EnqueueTask creates a one-time schedule that invokes the dispatcher with the
// task payload at its fire time. Schedule names carry a random suffix: a
// watcher firing twice for the same entry creates a second pair of tasks
// rather than colliding with the first. A fire time already in the past is
// handed straight to Lambda, since the scheduler rejects at() expressions in
// the past.
func (q *taskQueueClient) EnqueueTask(task models.DelayedTask) error {
	payload, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	if !task.ScheduleTime.After(time.Now()) {
		return q.invokeNow(task, payload)
	}

	scheduleName := fmt.Sprintf("reminder-%s", uuid.NewString())
	// at() expressions are interpreted in UTC
	expression := fmt.Sprintf("at(%s)", task.ScheduleTime.UTC().Format("2006-01-02T15:04:05"))

	_, err = q.scheduler.CreateSchedule(context.Background(), &scheduler.CreateScheduleInput{
		Name:      aws.String(scheduleName),
		GroupName: aws.String(q.groupName),
		FlexibleTimeWindow: &types.FlexibleTimeWindow{
			Mode: types.FlexibleTimeWindowModeOff,
		},
		ScheduleExpression:    aws.String(expression),
		ActionAfterCompletion: types.ActionAfterCompletionDelete,
		Target: &types.Target{
			Arn:     aws.String(q.dispatcherArn),
			RoleArn: aws.String(q.roleArn),
			Input:   aws.String(string(payload)),
		},
	})
	if err != nil {
		q.logger.WithError(err).WithField("entryId", task.EntryID).Error("Failed to create schedule for task")
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.WithFields(logrus.Fields{
		"entryId":      task.EntryID,
		"scheduleName": scheduleName,
		"expression":   expression,
	}).Info("Successfully enqueued delayed task")

	return nil
}

func (q *taskQueueClient) invokeNow(task models.DelayedTask, payload []byte) error {
	_, err := q.lambdaClient.Invoke(context.Background(), &lambda.InvokeInput{
		FunctionName:   aws.String(q.dispatcherArn),
		InvocationType: "Event", // async, don't wait for the dispatcher
		Payload:        payload,
	})
	if err != nil {
		q.logger.WithError(err).WithField("entryId", task.EntryID).Error("Failed to invoke dispatcher for immediate task")
		return fmt.Errorf("failed to dispatch immediate task: %w", err)
	}

	q.logger.WithField("entryId", task.EntryID).Info("Fire time already passed, dispatched immediately")
	return nil
}
