package main

import (
	"campus-assistant/internal/models"
	"campus-assistant/internal/utils"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Error kinds surfaced to synchronous callers.
const (
	ErrKindInvalidArgument = "invalid-argument"
	ErrKindInternal        = "internal"
)

// HandlerError is a caller-visible failure with a machine-readable kind.
type HandlerError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

type DispatchResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	logger        *logrus.Entry
	linebotClient utils.LinebotAPI
	tokenRepo     utils.PushTokenRepository
}

func NewHandler(logger *logrus.Entry, linebotClient utils.LinebotAPI, tokenRepo utils.PushTokenRepository) (*Handler, error) {
	return &Handler{
		logger:        logger,
		linebotClient: linebotClient,
		tokenRepo:     tokenRepo,
	}, nil
}

// HandleDispatch serves both queue deliveries and ad-hoc direct invokes:
// one payload in, one broadcast to every registered token out. Per-token
// outcomes are not individually surfaced; only the aggregate count is.
func (h *Handler) HandleDispatch(ctx context.Context, payload models.NotificationPayload) (DispatchResponse, error) {
	if payload.Title == "" || payload.Body == "" {
		h.logger.Error("Dispatch payload missing title or body")
		return DispatchResponse{}, &HandlerError{
			Kind:    ErrKindInvalidArgument,
			Message: "title and body are required",
		}
	}

	tokens, err := h.tokenRepo.GetAllTokens()
	if err != nil {
		h.logger.WithError(err).Error("Failed to load push tokens")
		return DispatchResponse{}, &HandlerError{
			Kind:    ErrKindInternal,
			Message: "failed to load push tokens",
		}
	}

	if len(tokens) == 0 {
		// A no-op outcome, not an error.
		h.logger.Info("No push tokens registered, nothing to send")
		return DispatchResponse{
			Success: false,
			Message: "no push tokens registered",
		}, nil
	}

	targets := make([]string, 0, len(tokens))
	for _, token := range tokens {
		targets = append(targets, token.Token)
	}

	if err := h.linebotClient.MulticastText(targets, payload.Title, payload.Body); err != nil {
		h.logger.WithError(err).Error("Failed to multicast notification")
		return DispatchResponse{}, &HandlerError{
			Kind:    ErrKindInternal,
			Message: "failed to send notification",
		}
	}

	h.logger.WithFields(logrus.Fields{
		"title": payload.Title,
		"count": len(targets),
	}).Info("Successfully sent notification to all registered tokens")

	return DispatchResponse{
		Success: true,
		Count:   len(targets),
	}, nil
}
