package models

import "time"

// Entry types a user can create from the planner UI.
const (
	EntryTypeClass      = "Class"
	EntryTypeAssignment = "Assignment"
	EntryTypeExam       = "Exam"
	EntryTypeOther      = "Other"
)

type ScheduleEntry struct {
	ID        string `json:"id" dynamodbav:"id"`
	UserID    string `json:"userId" dynamodbav:"userId"`
	CourseID  string `json:"courseId,omitempty" dynamodbav:"courseId,omitempty"`
	Title     string `json:"title" dynamodbav:"title"`
	Type      string `json:"type" dynamodbav:"type"`
	Day       string `json:"day" dynamodbav:"day"`             // weekday name, e.g. "Monday"
	StartTime string `json:"startTime" dynamodbav:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime" dynamodbav:"endTime"`     // "HH:MM"
	Location  string `json:"location,omitempty" dynamodbav:"location,omitempty"`
	Recurring bool   `json:"recurring" dynamodbav:"recurring"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"` // ISO timestamp
}

// NotificationPayload is the dispatcher's input, both when delivered by the
// task queue and when invoked directly.
type NotificationPayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID string `json:"userId,omitempty"`
}

// DelayedTask is one unit of work for the task queue: deliver Payload to the
// dispatcher at ScheduleTime. Two are produced per schedule entry.
type DelayedTask struct {
	EntryID      string              `json:"entryId"`
	Payload      NotificationPayload `json:"payload"`
	ScheduleTime time.Time           `json:"scheduleTime"`
}
