package models

import "time"

// User is a leaderboard participant. Points only ever go up: claims add,
// nothing subtracts.
type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Avatar    *string   `json:"avatar,omitempty"`
	Points    int64     `gorm:"not null" json:"points"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
