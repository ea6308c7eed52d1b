package events

import "time"

const AttendanceLoggedTopic = "hr.attendance.logged.v1"

const (
	EventTypeAttendanceCheckedIn  = "attendance.checked_in"
	EventTypeAttendanceCheckedOut = "attendance.checked_out"
)

type AttendanceLoggedEvent struct {
	EventType   string    `json:"event_type"`
	RecordID    string    `json:"record_id"`
	UserID      string    `json:"user_id"`
	DisplayDate string    `json:"display_date"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}
