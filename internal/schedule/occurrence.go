package schedule

import (
	"fmt"
	"strings"
	"time"

	"campus-assistant/internal/models"
)

// WeekdayIndex maps a weekday name to its time.Weekday index (Sunday = 0).
func WeekdayIndex(day string) (int, bool) {
	for i := 0; i < 7; i++ {
		if strings.EqualFold(day, time.Weekday(i).String()) {
			return i, true
		}
	}
	return 0, false
}

// NextOccurrence returns the next calendar date whose weekday matches day, at
// startTime ("HH:MM") with seconds zeroed. The offset from now is always in
// [0, 6] days: an entry on today's weekday resolves to today even when its
// start time has already passed. Only the daily digest compares against the
// clock.
func NextOccurrence(now time.Time, day, startTime string) (time.Time, error) {
	idx, ok := WeekdayIndex(day)
	if !ok {
		return time.Time{}, fmt.Errorf("unknown weekday: %q", day)
	}
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}

	daysDiff := idx - int(now.Weekday())
	if daysDiff < 0 {
		daysDiff += 7
	}

	occurrence := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return occurrence.AddDate(0, 0, daysDiff), nil
}

// TodayAt returns today's date at startTime in now's location.
func TodayAt(now time.Time, startTime string) (time.Time, error) {
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}

// PlanReminders builds the two delayed tasks for one entry: 24 hours and 1
// hour before occurrence. Enqueueing is the caller's job, so the decision
// logic stays testable without a queue.
func PlanReminders(entry models.ScheduleEntry, occurrence time.Time) []models.DelayedTask {
	return []models.DelayedTask{
		{
			EntryID: entry.ID,
			Payload: models.NotificationPayload{
				Title:  ReminderTitle,
				Body:   RenderDayBefore(entry.Type, entry.Title),
				UserID: entry.UserID,
			},
			ScheduleTime: occurrence.Add(-24 * time.Hour),
		},
		{
			EntryID: entry.ID,
			Payload: models.NotificationPayload{
				Title:  ReminderTitle,
				Body:   RenderHourBefore(entry.Type, entry.Title),
				UserID: entry.UserID,
			},
			ScheduleTime: occurrence.Add(-time.Hour),
		},
	}
}
