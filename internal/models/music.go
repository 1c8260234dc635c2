package models

import (
	"time"
)

// Music represents one (video, owning user) pairing the user has encountered,
// either by saving a search result or by adding the video to a playlist. The
// same video gets an independent row per user; (user_id, video_id) is unique.
//
// UserID holds the identity provider's subject id. There is deliberately no
// foreign key into users: identity is external, and ownership is enforced by
// value comparison at the authorization boundary.
type Music struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	VideoID      string    `gorm:"size:64;not null;uniqueIndex:idx_musics_user_video,priority:2;index" json:"video_id"`
	UserID       string    `gorm:"size:255;not null;uniqueIndex:idx_musics_user_video,priority:1;index" json:"user_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	ChannelTitle string    `gorm:"size:255" json:"channel_title"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	SourceURL    string    `gorm:"type:text" json:"source_url"`
	IsFav        bool      `gorm:"not null;default:false" json:"is_fav"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
