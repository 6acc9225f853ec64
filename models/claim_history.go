package models

import "time"

// ClaimHistory = a user claimed points (random 1-10 award).
// Append-only: rows are never updated or deleted.
type ClaimHistory struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"index;not null" json:"userId"`
	PointsAwarded int64     `gorm:"not null" json:"pointsAwarded"`
	ClaimedAt     time.Time `gorm:"autoCreateTime;index" json:"claimedAt"`
}

// ClaimHistoryEntry is a claim joined with its owning user, as served by
// the activity feed.
type ClaimHistoryEntry struct {
	ClaimHistory
	User User `json:"user"`
}
