package main

import (
	"campus-assistant/internal/utils"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	logger        *logrus.Entry
	linebotClient utils.LinebotAPI
	tokenRepo     utils.PushTokenRepository
}

type RegisterRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewHandler(logger *logrus.Entry, linebotClient utils.LinebotAPI, tokenRepo utils.PushTokenRepository) (*Handler, error) {
	return &Handler{
		logger:        logger,
		linebotClient: linebotClient,
		tokenRepo:     tokenRepo,
	}, nil
}

// EventHandler registers (or re-registers) a user's push token. The previous
// registration, if any, is overwritten.
func (h *Handler) EventHandler(request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req RegisterRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		h.logger.WithError(err).Error("Failed to parse register request")
		return jsonResponse(400, RegisterResponse{Message: "invalid request body"}), nil
	}

	if req.UserID == "" || req.Token == "" {
		h.logger.Error("Register request missing userId or token")
		return jsonResponse(400, RegisterResponse{Message: "userId and token are required"}), nil
	}

	if err := h.tokenRepo.SaveToken(req.UserID, req.Token); err != nil {
		h.logger.WithError(err).Error("Failed to save push token")
		return jsonResponse(500, RegisterResponse{Message: "internal server error"}), nil
	}

	// Confirm delivery works right away. Registration already succeeded, so a
	// failed confirmation only makes noise in the logs.
	if err := h.linebotClient.PushText(req.Token, "Notifications enabled", "You will now receive schedule reminders."); err != nil {
		h.logger.WithError(err).Warn("Failed to send registration confirmation")
	}

	h.logger.WithField("userId", req.UserID).Info("Successfully registered push token")
	return jsonResponse(200, RegisterResponse{Success: true}), nil
}

func jsonResponse(status int, body RegisterResponse) events.APIGatewayProxyResponse {
	payload, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: string(payload),
	}
}
