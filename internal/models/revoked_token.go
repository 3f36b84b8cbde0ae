package models

import "time"

// RevokedToken records a session token invalidated by logout. A token present
// here must never authenticate a request again, even before its expiry.
// ExpiresAt mirrors the token's own expiry so housekeeping can prune rows
// that no longer matter.
type RevokedToken struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null" json:"token"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}
