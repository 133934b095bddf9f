package models

import "time"

// Notification is the storage shape of a notification.
// RecipientIDs and Data hold JSON documents; Data may be nil.
type Notification struct {
	NotificationID string     `db:"notification_id"`
	GroupID        string     `db:"group_id"`
	Title          string     `db:"title"`
	Message        string     `db:"message"`
	RecipientIDs   []byte     `db:"recipient_ids"`
	Data           []byte     `db:"data"`
	Status         string     `db:"status"`
	SentCount      int        `db:"sent_count"`
	CreatedAt      time.Time  `db:"created_at"`
	CreatedBy      string     `db:"created_by"`
	SentAt         *time.Time `db:"sent_at"`
}
