package main

import (
	"campus-assistant/internal/models"
	"campus-assistant/internal/schedule"
	"campus-assistant/internal/utils"
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

const digestTitle = "Today's Schedule"

type Handler struct {
	logger        *logrus.Entry
	linebotClient utils.LinebotAPI
	scheduleRepo  utils.ScheduleRepository
	tokenRepo     utils.PushTokenRepository
}

func NewHandler(logger *logrus.Entry, linebotClient utils.LinebotAPI, scheduleRepo utils.ScheduleRepository, tokenRepo utils.PushTokenRepository) (*Handler, error) {
	return &Handler{
		logger:        logger,
		linebotClient: linebotClient,
		scheduleRepo:  scheduleRepo,
		tokenRepo:     tokenRepo,
	}, nil
}

// EventHandler is fired by the daily EventBridge rule.
func (h *Handler) EventHandler(ctx context.Context, event events.CloudWatchEvent) error {
	h.runDigest(time.Now())
	// A timer trigger has no caller to report to; failures end in the logs.
	return nil
}

func (h *Handler) runDigest(now time.Time) {
	day := now.Weekday().String()
	h.logger.Info("Running daily digest for ", day)

	entries, err := h.scheduleRepo.GetEntriesByDay(day)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load today's schedule entries")
		return
	}

	if len(entries) == 0 {
		h.logger.Info("No schedule entries for today")
		return
	}

	for _, entry := range entries {
		h.notifyEntry(now, entry)
	}
}

// notifyEntry sends one same-day reminder. Every failure is contained here so
// the remaining entries still get theirs.
func (h *Handler) notifyEntry(now time.Time, entry models.ScheduleEntry) {
	startsAt, err := schedule.TodayAt(now, entry.StartTime)
	if err != nil {
		h.logger.WithError(err).WithField("entryId", entry.ID).Error("Skipping entry with invalid start time")
		return
	}

	// Compare on the minute: an entry starting this minute still counts.
	if startsAt.Before(now.Truncate(time.Minute)) {
		h.logger.WithField("entryId", entry.ID).Info("Entry already started today, skipping")
		return
	}

	token, err := h.tokenRepo.GetTokenByUser(entry.UserID)
	if err != nil {
		h.logger.WithError(err).WithField("entryId", entry.ID).Error("Failed to look up push token")
		return
	}
	if token == nil {
		h.logger.WithFields(logrus.Fields{
			"entryId": entry.ID,
			"userId":  entry.UserID,
		}).Info("User has no push token registered, skipping")
		return
	}

	body := schedule.RenderDailyDigest(entry.Title, entry.StartTime, entry.Location)
	if err := h.linebotClient.PushText(token.Token, digestTitle, body); err != nil {
		h.logger.WithError(err).WithField("entryId", entry.ID).Error("Failed to send digest notification")
		if utils.IsInvalidTarget(err) {
			// The platform says this target is gone; drop the registration.
			if delErr := h.tokenRepo.DeleteToken(entry.UserID); delErr != nil {
				h.logger.WithError(delErr).WithField("userId", entry.UserID).Error("Failed to prune invalid push token")
			}
		}
		return
	}

	h.logger.WithFields(logrus.Fields{
		"entryId": entry.ID,
		"userId":  entry.UserID,
	}).Info("Successfully sent digest notification")
}
