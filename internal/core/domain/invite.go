package domain

import "time"

// InviteCode is a short single-use token that lets someone join a group.
type InviteCode struct {
	Code      string     `json:"code"`
	GroupID   string     `json:"groupID"`
	CreatedBy string     `json:"createdBy"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Used      bool       `json:"used"`
	UsedBy    *string    `json:"usedBy,omitempty"`
	UsedAt    *time.Time `json:"usedAt,omitempty"`
}

// IsExpired checks if the code is past its validity window at now.
func (c *InviteCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// InviteValidation is what a valid code reveals to an unauthenticated caller.
type InviteValidation struct {
	GroupID   string    `json:"groupID"`
	ExpiresAt time.Time `json:"expiresAt"`
}
