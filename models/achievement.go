// models/achievement.go
package models

import "time"

// Unlock methods
const (
	UnlockMethodGPS = "gps"
	UnlockMethodQR  = "qr"
)

// Achievement is an append-only ledger entry recording that a user
// unlocked a zone. Zone data is denormalized at creation time so the
// record survives later zone edits. Rows are never updated or deleted;
// the (user_id, zone_id) unique index is the source of truth for
// duplicate suppression.
type Achievement struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"not null;index;uniqueIndex:idx_achievements_user_zone" json:"user_id"`
	ZoneID     string  `gorm:"not null;index;size:80;uniqueIndex:idx_achievements_user_zone" json:"zone_id"`
	ZoneNameES string  `gorm:"not null;size:150" json:"zone_name_es"`
	ZoneNameEN string  `gorm:"not null;size:150" json:"zone_name_en"`
	Longitude  float64 `gorm:"not null" json:"longitude"`
	Latitude   float64 `gorm:"not null" json:"latitude"`
	RadiusM    float64 `gorm:"not null;default:150" json:"radius_m"`

	UnlockMethod string     `gorm:"not null;size:10" json:"unlock_method"`
	UnlockAt     time.Time  `gorm:"not null;index" json:"unlock_at"`
	SyncAt       *time.Time `json:"sync_at"`

	Reward RewardContent `gorm:"embedded;embeddedPrefix:content_" json:"content_unlocked"`

	User *User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
