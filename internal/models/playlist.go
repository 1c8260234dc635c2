package models

import (
	"time"
)

// Playlist is a named, ordered collection of catalog entries owned by one user.
type Playlist struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:255;not null;index" json:"user_id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsPublic    bool      `gorm:"not null;default:false;index" json:"is_public"`
	IsFav       bool      `gorm:"not null;default:false" json:"is_fav"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Tracks []PlaylistTrack `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE" json:"tracks,omitempty"`
}

// PlaylistTrack is the junction row linking a playlist to a catalog entry.
// (playlist_id, music_id) is unique: a track appears at most once per
// playlist, and the index doubles as the guard against concurrent adds
// racing each other.
type PlaylistTrack struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PlaylistID uint      `gorm:"not null;uniqueIndex:idx_playlist_tracks_playlist_music,priority:1;index" json:"playlist_id"`
	MusicID    uint      `gorm:"not null;uniqueIndex:idx_playlist_tracks_playlist_music,priority:2;index" json:"music_id"`
	Position   int       `gorm:"not null;default:0" json:"position"`
	AddedAt    time.Time `gorm:"not null" json:"added_at"`

	// Relations
	Music *Music `gorm:"foreignKey:MusicID" json:"music,omitempty"`
}
