package main

import (
	"campus-assistant/internal/utils"
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	lambdasvc "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/sirupsen/logrus"
)

const (
	SEVERITY    = "severity"
	MESSAGE     = "message"
	TIMESTAMP   = "timestamp"
	COMPONENT   = "component"
	SERVICENAME = "schedule-watcher"
)

type EnvVars struct {
	dispatcherFunctionArn string
	schedulerRoleArn      string
	schedulerGroupName    string
}

func getEnvVars() (*EnvVars, error) {
	dispatcherFunctionArn := os.Getenv("DISPATCHER_FUNCTION_ARN")
	if dispatcherFunctionArn == "" {
		return nil, errors.New("DISPATCHER_FUNCTION_ARN is not set")
	}

	schedulerRoleArn := os.Getenv("SCHEDULER_ROLE_ARN")
	if schedulerRoleArn == "" {
		return nil, errors.New("SCHEDULER_ROLE_ARN is not set")
	}

	schedulerGroupName := os.Getenv("SCHEDULER_GROUP_NAME")
	if schedulerGroupName == "" {
		schedulerGroupName = "default"
	}

	return &EnvVars{
		dispatcherFunctionArn: dispatcherFunctionArn,
		schedulerRoleArn:      schedulerRoleArn,
		schedulerGroupName:    schedulerGroupName,
	}, nil
}

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  TIMESTAMP,
			logrus.FieldKeyLevel: SEVERITY,
			logrus.FieldKeyMsg:   MESSAGE,
		},
	})
	logger := logrus.WithField(COMPONENT, SERVICENAME)

	envVars, err := getEnvVars()
	if err != nil {
		logger.WithError(err).Error("Failed to get environment variables")
		panic(err)
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.WithError(err).Error("Failed to load AWS config")
		panic(err)
	}

	queue := utils.NewTaskQueueClient(
		logger,
		scheduler.NewFromConfig(cfg),
		lambdasvc.NewFromConfig(cfg),
		envVars.dispatcherFunctionArn,
		envVars.schedulerRoleArn,
		envVars.schedulerGroupName,
	)

	handler, err := NewHandler(logger, queue)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.EventHandler)
}
