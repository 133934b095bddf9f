package dto

// --- Notification DTOs ---

// SendNotificationRequest defines a message to fan out. Empty recipientIDs means the whole group.
type SendNotificationRequest struct {
	Title        string         `json:"title" binding:"omitempty,max=200"`
	Message      string         `json:"message" binding:"required,max=2000"`
	RecipientIDs []string       `json:"recipientIDs" binding:"omitempty,max=1000,dive,required,max=128"`
	Data         map[string]any `json:"data"`
}

// RegisterPushTokenRequest registers the caller's device for push delivery.
type RegisterPushTokenRequest struct {
	Token string `json:"token" binding:"required,min=10,max=4096"`
}

// CreateAnnouncementRequest posts a notice to the group board.
type CreateAnnouncementRequest struct {
	Title   string `json:"title" binding:"omitempty,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}
