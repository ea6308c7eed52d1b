package events

import "time"

// DiscordAbsenceTopic membawa notifikasi absen dari kanal Discord; record yang
// dibuat dari event ini berstatus "discord-absent".
const DiscordAbsenceTopic = "hr.attendance.discord_absence.v1"

type DiscordAbsenceEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"` // YYYY-MM-DD
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
