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

type Handler struct {
	logger *logrus.Entry
	queue  utils.TaskQueue
}

func NewHandler(logger *logrus.Entry, queue utils.TaskQueue) (*Handler, error) {
	return &Handler{
		logger: logger,
		queue:  queue,
	}, nil
}

// EventHandler consumes the schedule table's change stream. Only INSERT
// records arm reminders; MODIFY and REMOVE records are ignored, so a deleted
// entry's already-queued tasks still fire.
func (h *Handler) EventHandler(ctx context.Context, event events.DynamoDBEvent) error {
	for _, record := range event.Records {
		if record.EventName != "INSERT" {
			continue
		}
		h.handleNewEntry(entryFromStreamImage(record.Change.NewImage))
	}
	// A stream trigger has no caller to report to; failures end in the logs.
	return nil
}

func (h *Handler) handleNewEntry(entry models.ScheduleEntry) {
	if entry.Title == "" || entry.Day == "" || entry.StartTime == "" {
		h.logger.WithField("entryId", entry.ID).Warn("Schedule entry missing title, day or startTime, skipping")
		return
	}

	if entry.Type == "" {
		entry.Type = models.EntryTypeOther
	}

	occurrence, err := schedule.NextOccurrence(time.Now(), entry.Day, entry.StartTime)
	if err != nil {
		h.logger.WithError(err).WithField("entryId", entry.ID).Error("Failed to compute next occurrence")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"entryId":    entry.ID,
		"title":      entry.Title,
		"occurrence": occurrence.Format(time.RFC3339),
	}).Info("Arming reminders for new schedule entry")

	// One enqueue failing must not block or roll back the other.
	for _, task := range schedule.PlanReminders(entry, occurrence) {
		if err := h.queue.EnqueueTask(task); err != nil {
			h.logger.WithError(err).WithField("entryId", entry.ID).Error("Failed to enqueue reminder task")
		}
	}
}

// entryFromStreamImage maps a stream record image onto a ScheduleEntry.
// Missing attributes stay zero-valued; validation happens in handleNewEntry.
func entryFromStreamImage(image map[string]events.DynamoDBAttributeValue) models.ScheduleEntry {
	stringAttr := func(name string) string {
		if attr, ok := image[name]; ok && attr.DataType() == events.DataTypeString {
			return attr.String()
		}
		return ""
	}

	entry := models.ScheduleEntry{
		ID:        stringAttr("id"),
		UserID:    stringAttr("userId"),
		CourseID:  stringAttr("courseId"),
		Title:     stringAttr("title"),
		Type:      stringAttr("type"),
		Day:       stringAttr("day"),
		StartTime: stringAttr("startTime"),
		EndTime:   stringAttr("endTime"),
		Location:  stringAttr("location"),
		CreatedAt: stringAttr("createdAt"),
	}

	if attr, ok := image["recurring"]; ok && attr.DataType() == events.DataTypeBoolean {
		entry.Recurring = attr.Boolean()
	}

	return entry
}
