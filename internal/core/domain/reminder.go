package domain

import "time"

// ReminderStatus is the state of a monthly reminder.
type ReminderStatus string

const ReminderCreated ReminderStatus = "created"

// PeriodKeyLayout formats a calendar month as used in reminder keys.
const PeriodKeyLayout = "2006-01"

// PeriodKey returns the year-month key of t in UTC.
func PeriodKey(t time.Time) string {
	return t.UTC().Format(PeriodKeyLayout)
}

// MonthlyReminder records that a member was reminded for a period.
// (GroupID, MemberID, PeriodKey) is unique.
type MonthlyReminder struct {
	GroupID                   string         `json:"groupID"`
	MemberID                  string         `json:"memberID"`
	PeriodKey                 string         `json:"periodKey"`
	PrincipalOutstandingPaisa int64          `json:"principalOutstandingPaisa"`
	RateBps                   int            `json:"rateBps"`
	InterestPaisa             int64          `json:"interestPaisa"`
	TotalDuePaisa             int64          `json:"totalDuePaisa"`
	Status                    ReminderStatus `json:"status"`
	CreatedAt                 time.Time      `json:"createdAt"`
	CreatedBy                 string         `json:"createdBy"`
}

// ReminderRunResult summarizes a GenerateMonthlyReminders run.
type ReminderRunResult struct {
	GroupID   string `json:"groupID"`
	PeriodKey string `json:"periodKey"`
	Created   int    `json:"created"`
	Skipped   int    `json:"skipped"`
}
