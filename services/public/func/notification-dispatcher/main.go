package main

import (
	"campus-assistant/internal/repository"
	"campus-assistant/internal/utils"
	"context"
	"errors"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"
)

const (
	SEVERITY    = "severity"
	MESSAGE     = "message"
	TIMESTAMP   = "timestamp"
	COMPONENT   = "component"
	SERVICENAME = "notification-dispatcher"
)

type EnvVars struct {
	pushTokenTableName string
	channelSecret      string
	channelToken       string
}

func getEnvVars() (*EnvVars, error) {
	pushTokenTableName := os.Getenv("PUSH_TOKEN_TABLE_NAME")
	if pushTokenTableName == "" {
		return nil, errors.New("PUSH_TOKEN_TABLE_NAME is not set")
	}

	channelSecret := os.Getenv("CHANNEL_SECRET")
	if channelSecret == "" {
		return nil, errors.New("CHANNEL_SECRET is not set")
	}

	channelToken := os.Getenv("CHANNEL_TOKEN")
	if channelToken == "" {
		return nil, errors.New("CHANNEL_TOKEN is not set")
	}

	return &EnvVars{
		pushTokenTableName: pushTokenTableName,
		channelSecret:      channelSecret,
		channelToken:       channelToken,
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

	linebotClient, err := utils.NewLineBotClient(envVars.channelSecret, envVars.channelToken)
	if err != nil {
		panic(err)
	}

	tokenRepo := repository.NewPushTokenRepository(logger, dynamodb.NewFromConfig(cfg), envVars.pushTokenTableName)

	handler, err := NewHandler(logger, linebotClient, tokenRepo)
	if err != nil {
		logger.WithError(err).Error("Failed to create handler")
		panic(err)
	}

	lambda.Start(handler.HandleDispatch)
}
