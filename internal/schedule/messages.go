package schedule

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed templates/messages.yaml
var messagesYAML []byte

// ReminderTitle is the push title carried by queued reminder tasks.
const ReminderTitle = "Upcoming Schedule"

type messageTemplates struct {
	DayBefore   string `yaml:"day_before"`
	HourBefore  string `yaml:"hour_before"`
	DailyDigest string `yaml:"daily_digest"`
}

var templates = loadTemplates()

func loadTemplates() messageTemplates {
	var t messageTemplates
	if err := yaml.Unmarshal(messagesYAML, &t); err != nil {
		panic(fmt.Sprintf("error parsing message templates yaml: %v", err))
	}
	return t
}

func RenderDayBefore(entryType, title string) string {
	return fmt.Sprintf(templates.DayBefore, entryType, title)
}

func RenderHourBefore(entryType, title string) string {
	return fmt.Sprintf(templates.HourBefore, entryType, title)
}

// RenderDailyDigest names the entry's title, start time and location; the
// location falls back to "N/A" when the entry has none.
func RenderDailyDigest(title, startTime, location string) string {
	if location == "" {
		location = "N/A"
	}
	return fmt.Sprintf(templates.DailyDigest, title, startTime, location)
}
