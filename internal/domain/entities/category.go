package entities

import "strings"

// EmailCategory is the label the chat model assigns to an email.
type EmailCategory string

// Email categories. CategoryNone is used whenever the model's answer is not
// one of the others.
const (
	CategoryInterested    EmailCategory = "Interested"
	CategoryMeetingBooked EmailCategory = "Meeting Booked"
	CategoryNotInterested EmailCategory = "Not Interested"
	CategorySpam          EmailCategory = "Spam"
	CategoryOutOfOffice   EmailCategory = "Out of Office"
	CategoryNone          EmailCategory = "None"
)

// EmailCategories lists every category in prompt order.
var EmailCategories = []EmailCategory{
	CategoryInterested,
	CategoryMeetingBooked,
	CategoryNotInterested,
	CategorySpam,
	CategoryOutOfOffice,
	CategoryNone,
}

// ParseEmailCategory matches a model answer against the known categories,
// ignoring case, surrounding whitespace, quotes and a trailing period.
func ParseEmailCategory(answer string) EmailCategory {
	answer = strings.TrimSpace(answer)
	answer = strings.Trim(answer, "\"'`*")
	answer = strings.TrimSuffix(strings.TrimSpace(answer), ".")
	for _, c := range EmailCategories {
		if strings.EqualFold(answer, string(c)) {
			return c
		}
	}
	return CategoryNone
}
