package models

import (
	"time"
)

// Favorite is a flat per-user bookmark of a video, independent of playlist
// membership and of the per-music favorite flag. (user_id, video_id) is unique.
type Favorite struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"size:255;not null;uniqueIndex:idx_favorites_user_video,priority:1;index" json:"user_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	ChannelTitle string    `gorm:"size:255" json:"channel_title"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	VideoID      string    `gorm:"size:64;not null;uniqueIndex:idx_favorites_user_video,priority:2;index" json:"video_id"`
	SourceURL    string    `gorm:"type:text" json:"source_url"`
	CreatedAt    time.Time `json:"created_at"`
}
