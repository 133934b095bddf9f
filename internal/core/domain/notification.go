package domain

import "time"

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
	// NotificationStored marks inbox-only notifications that are never pushed.
	NotificationStored NotificationStatus = "stored"
)

// DefaultNotificationTitle is used when a send request carries no title.
const DefaultNotificationTitle = "Kewat Ledger"

// Notification is a message addressed to a group or to a subset of its members.
// An empty RecipientIDs means the whole group.
type Notification struct {
	NotificationID string             `json:"notificationID"`
	GroupID        string             `json:"groupID"`
	Title          string             `json:"title"`
	Message        string             `json:"message"`
	RecipientIDs   []string           `json:"recipientIDs"`
	Data           map[string]any     `json:"data,omitempty"`
	Status         NotificationStatus `json:"status"`
	SentCount      int                `json:"sentCount"`
	CreatedAt      time.Time          `json:"createdAt"`
	CreatedBy      string             `json:"createdBy"`
	SentAt         *time.Time         `json:"sentAt,omitempty"`
}

// IsBroadcast reports whether the notification targets every member of the group.
func (n Notification) IsBroadcast() bool {
	return len(n.RecipientIDs) == 0
}

// PushMessage is one delivery handed to the push transport.
type PushMessage struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// DispatchResult aggregates the outcome of a fan-out.
type DispatchResult struct {
	NotificationID  string   `json:"notificationID"`
	SentCount       int      `json:"sentCount"`
	TotalRecipients int      `json:"totalRecipients"`
	Errors          []string `json:"errors"`
}

// DefaultAnnouncementTitle is used when an announcement is posted without a title.
const DefaultAnnouncementTitle = "Announcement"

// Announcement is a notice pinned to the group board. It is never pushed.
type Announcement struct {
	AnnouncementID string    `json:"announcementID"`
	GroupID        string    `json:"groupID"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}
