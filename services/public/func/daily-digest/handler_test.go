package main

import (
	"campus-assistant/internal/models"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"
	"github.com/sirupsen/logrus"
)

type fakeScheduleRepo struct {
	entries []models.ScheduleEntry
	err     error
}

func (r *fakeScheduleRepo) GetEntriesByDay(day string) ([]models.ScheduleEntry, error) {
	return r.entries, r.err
}

type fakeTokenRepo struct {
	tokens  map[string]string // userID -> token
	deleted []string
}

func (r *fakeTokenRepo) GetAllTokens() ([]models.PushToken, error) { return nil, nil }

func (r *fakeTokenRepo) GetTokenByUser(userID string) (*models.PushToken, error) {
	token, ok := r.tokens[userID]
	if !ok {
		return nil, nil
	}
	return &models.PushToken{Token: token, UserID: userID}, nil
}

func (r *fakeTokenRepo) SaveToken(userID, token string) error { return nil }

func (r *fakeTokenRepo) DeleteToken(userID string) error {
	r.deleted = append(r.deleted, userID)
	return nil
}

type fakeLinebot struct {
	pushedTo []string
	bodies   []string
	errFor   map[string]error // token -> push error
}

func (b *fakeLinebot) PushText(to string, title, body string) error {
	if err, ok := b.errFor[to]; ok {
		return err
	}
	b.pushedTo = append(b.pushedTo, to)
	b.bodies = append(b.bodies, body)
	return nil
}

func (b *fakeLinebot) MulticastText(to []string, title, body string) error { return nil }

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func entryFor(id, userID, startTime string) models.ScheduleEntry {
	return models.ScheduleEntry{
		ID:        id,
		UserID:    userID,
		Title:     "Entry " + id,
		Type:      models.EntryTypeClass,
		Day:       "Wednesday",
		StartTime: startTime,
	}
}

func TestRunDigest(t *testing.T) {
	// Wednesday 2025-03-12 10:30 local.
	now := time.Date(2025, time.March, 12, 10, 30, 0, 0, time.UTC)

	t.Run("Past entries are skipped, future ones notified", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{entries: []models.ScheduleEntry{
			entryFor("past", "user-a", "08:00"),
			entryFor("future", "user-b", "14:00"),
		}}
		tokenRepo := &fakeTokenRepo{tokens: map[string]string{
			"user-a": "tok-a",
			"user-b": "tok-b",
		}}
		bot := &fakeLinebot{}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, tokenRepo)

		handler.runDigest(now)

		if len(bot.pushedTo) != 1 {
			t.Fatalf("expected exactly 1 push, got %d", len(bot.pushedTo))
		}
		if bot.pushedTo[0] != "tok-b" {
			t.Errorf("expected push to tok-b, got %s", bot.pushedTo[0])
		}
		if bot.bodies[0] != "Today: Entry future at 14:00 (Location: N/A)" {
			t.Errorf("unexpected body: %s", bot.bodies[0])
		}
	})

	t.Run("Entry starting this minute still counts", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{entries: []models.ScheduleEntry{
			entryFor("now", "user-a", "10:30"),
		}}
		tokenRepo := &fakeTokenRepo{tokens: map[string]string{"user-a": "tok-a"}}
		bot := &fakeLinebot{}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, tokenRepo)

		handler.runDigest(now.Add(45 * time.Second))

		if len(bot.pushedTo) != 1 {
			t.Errorf("expected 1 push for an entry starting this minute, got %d", len(bot.pushedTo))
		}
	})

	t.Run("Missing token skips that record only", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{entries: []models.ScheduleEntry{
			entryFor("no-token", "user-a", "14:00"),
			entryFor("with-token", "user-b", "15:00"),
		}}
		tokenRepo := &fakeTokenRepo{tokens: map[string]string{"user-b": "tok-b"}}
		bot := &fakeLinebot{}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, tokenRepo)

		handler.runDigest(now)

		if len(bot.pushedTo) != 1 || bot.pushedTo[0] != "tok-b" {
			t.Errorf("expected a single push to tok-b, got %v", bot.pushedTo)
		}
	})

	t.Run("Delivery failure does not halt the batch", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{entries: []models.ScheduleEntry{
			entryFor("failing", "user-a", "14:00"),
			entryFor("healthy", "user-b", "15:00"),
		}}
		tokenRepo := &fakeTokenRepo{tokens: map[string]string{
			"user-a": "tok-a",
			"user-b": "tok-b",
		}}
		bot := &fakeLinebot{errFor: map[string]error{"tok-a": errors.New("connection reset")}}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, tokenRepo)

		handler.runDigest(now)

		if len(bot.pushedTo) != 1 || bot.pushedTo[0] != "tok-b" {
			t.Errorf("expected the healthy record to still be notified, got %v", bot.pushedTo)
		}
		if len(tokenRepo.deleted) != 0 {
			t.Errorf("transient failure must not prune tokens, deleted %v", tokenRepo.deleted)
		}
	})

	t.Run("Invalid delivery target is pruned", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{entries: []models.ScheduleEntry{
			entryFor("gone", "user-a", "14:00"),
		}}
		tokenRepo := &fakeTokenRepo{tokens: map[string]string{"user-a": "tok-a"}}
		bot := &fakeLinebot{errFor: map[string]error{"tok-a": &linebot.APIError{Code: 404}}}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, tokenRepo)

		handler.runDigest(now)

		if len(tokenRepo.deleted) != 1 || tokenRepo.deleted[0] != "user-a" {
			t.Errorf("expected user-a's token pruned, got %v", tokenRepo.deleted)
		}
	})

	t.Run("Store failure sends nothing", func(t *testing.T) {
		scheduleRepo := &fakeScheduleRepo{err: errors.New("dynamodb unavailable")}
		bot := &fakeLinebot{}
		handler, _ := NewHandler(testLogger(), bot, scheduleRepo, &fakeTokenRepo{})

		handler.runDigest(now)

		if len(bot.pushedTo) != 0 {
			t.Errorf("expected no pushes, got %v", bot.pushedTo)
		}
	})
}
