package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// multicastLimit is the LINE Messaging API cap on recipients per multicast call.
const multicastLimit = 500

// LinebotAPI separates the two delivery contracts: a targeted push to one
// registered token and a broadcast to many.
type LinebotAPI interface {
	PushText(to string, title, body string) error
	MulticastText(to []string, title, body string) error
}

type LineBotClient struct {
	client *linebot.Client
}

func NewLineBotClient(channelSecret string, channelToken string) (LinebotAPI, error) {
	client, err := linebot.New(channelSecret, channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create line bot client: %w", err)
	}
	return &LineBotClient{
		client: client,
	}, nil
}

func textMessage(title, body string) linebot.SendingMessage {
	return linebot.NewTextMessage(fmt.Sprintf("%s\n%s", title, body)).
		WithSender(&linebot.Sender{Name: "Campus Assistant"})
}

// PushText delivers one notification to a single registered token.
func (c *LineBotClient) PushText(to string, title, body string) error {
	_, err := c.client.PushMessage(to, textMessage(title, body)).Do()
	return err
}

// MulticastText delivers one notification to every token in to, batched to
// the API's recipient limit per call.
func (c *LineBotClient) MulticastText(to []string, title, body string) error {
	for len(to) > 0 {
		batch := to
		if len(batch) > multicastLimit {
			batch = to[:multicastLimit]
		}
		if _, err := c.client.Multicast(batch, textMessage(title, body)).Do(); err != nil {
			return err
		}
		to = to[len(batch):]
	}
	return nil
}

// IsInvalidTarget reports whether a push failure means the token is
// permanently unusable and should be dropped from the registry.
func IsInvalidTarget(err error) bool {
	var apiErr *linebot.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusBadRequest ||
			apiErr.Code == http.StatusNotFound ||
			apiErr.Code == http.StatusGone
	}
	return false
}
