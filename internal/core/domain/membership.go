package domain

import "time"

// Membership places a user in a lending circle and caches the balance the accrual engine maintains.
// The balance follows every non-rejected ledger entry plus accrued interest. It is signed:
// a negative value is credit from over-repayment and never accrues interest.
type Membership struct {
	GroupID           string    `json:"groupID"`
	UserID            string    `json:"userID"`
	Role              Role      `json:"role"`
	DisplayName       string    `json:"displayName"`
	BalanceMinorUnits int64     `json:"balanceMinorUnits"`
	JoinedAt          time.Time `json:"joinedAt"`
	LastUpdatedAt     time.Time `json:"lastUpdatedAt"`
}

// BalanceUpdate is a compare-and-set of one membership balance.
type BalanceUpdate struct {
	UserID     string
	OldBalance int64
	NewBalance int64
}

// PushToken is the device token a member registered for push delivery.
type PushToken struct {
	UserID    string    `json:"userID"`
	Token     string    `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
