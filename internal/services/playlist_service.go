package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/models"
	"github.com/tunedeck/backend/pkg/authz"
	"github.com/tunedeck/backend/pkg/validation"
	"gorm.io/gorm"
)

type PlaylistService struct {
	db    *gorm.DB
	music *MusicService
}

func NewPlaylistService(db *gorm.DB, music *MusicService) *PlaylistService {
	return &PlaylistService{db: db, music: music}
}

// withTracks preloads the ordered track list and its catalog rows.
func withTracks(db *gorm.DB) *gorm.DB {
	return db.Preload("Tracks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, added_at ASC")
	}).Preload("Tracks.Music")
}

// Create creates an empty playlist for ownerID.
func (s *PlaylistService) Create(ownerID, name, description string, isPublic, isFav bool) (*models.Playlist, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("user_id is required: %w", apperr.ErrValidation)
	}
	if !validation.ValidatePlaylistName(name) {
		return nil, fmt.Errorf("name is required: %w", apperr.ErrValidation)
	}

	playlist := &models.Playlist{
		UserID:      ownerID,
		Name:        validation.SanitizeString(name),
		Description: validation.SanitizeString(description),
		IsPublic:    isPublic,
		IsFav:       isFav,
	}
	if err := s.db.Create(playlist).Error; err != nil {
		return nil, err
	}
	playlist.Tracks = []models.PlaylistTrack{}
	return playlist, nil
}

// ListForUser returns all playlists owned by ownerID with their tracks.
func (s *PlaylistService) ListForUser(ownerID string) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	if err := withTracks(s.db).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// ListFavoritesForUser returns the subset of the owner's playlists with the
// favorite flag set.
func (s *PlaylistService) ListFavoritesForUser(ownerID string) ([]*models.Playlist, error) {
	var playlists []*models.Playlist
	if err := withTracks(s.db).Where("user_id = ? AND is_fav = ?", ownerID, true).Order("created_at DESC").Find(&playlists).Error; err != nil {
		return nil, err
	}
	return playlists, nil
}

// GetWithTracks loads one playlist with its ordered track list.
func (s *PlaylistService) GetWithTracks(playlistID uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := withTracks(s.db).First(&playlist, playlistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("playlist not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &playlist, nil
}

// GetReadable loads a playlist for reading: the owner always may, everyone
// else only when the playlist is public.
func (s *PlaylistService) GetReadable(playlistID uint, callerID string) (*models.Playlist, error) {
	playlist, err := s.GetWithTracks(playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.UserID != callerID && !playlist.IsPublic {
		return nil, fmt.Errorf("playlist is private: %w", apperr.ErrForbidden)
	}
	return playlist, nil
}

// AddTrack resolves or creates the owner's catalog row for the video and
// appends it to the playlist at the next order position. Adding a video that
// is already in the playlist is a conflict. The membership check and the
// append run in one transaction; the composite unique index on the junction
// catches racing adds that slip past the check.
func (s *PlaylistService) AddTrack(playlistID uint, callerID string, in VideoInput) (*models.Playlist, error) {
	playlist, err := s.load(playlistID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(callerID, playlist.UserID); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		music, err := s.music.upsert(tx, playlist.UserID, in)
		if err != nil {
			return err
		}

		var existing models.PlaylistTrack
		err = tx.Where("playlist_id = ? AND music_id = ?", playlist.ID, music.ID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("track is already in this playlist: %w", apperr.ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var next int64
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ?", playlist.ID).
			Select("COALESCE(MAX(position)+1, 0)").
			Scan(&next).Error; err != nil {
			return err
		}

		track := models.PlaylistTrack{
			PlaylistID: playlist.ID,
			MusicID:    music.ID,
			Position:   int(next),
			AddedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&track).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("track is already in this playlist: %w", apperr.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetWithTracks(playlist.ID)
}

// RemoveTrack deletes the junction row for the owner's catalog entry of
// videoID. The catalog row itself stays; it doubles as search history.
func (s *PlaylistService) RemoveTrack(playlistID uint, callerID, videoID string) (*models.Playlist, error) {
	if videoID == "" {
		return nil, fmt.Errorf("videoId is required: %w", apperr.ErrValidation)
	}

	playlist, err := s.load(playlistID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(callerID, playlist.UserID); err != nil {
		return nil, err
	}

	var music models.Music
	if err := s.db.Where("user_id = ? AND video_id = ?", playlist.UserID, videoID).First(&music).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("music not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}

	result := s.db.Where("playlist_id = ? AND music_id = ?", playlist.ID, music.ID).Delete(&models.PlaylistTrack{})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("track is not in this playlist: %w", apperr.ErrNotFound)
	}

	return s.GetWithTracks(playlist.ID)
}

// ToggleFavorite flips the playlist's favorite flag.
func (s *PlaylistService) ToggleFavorite(playlistID uint, callerID string) (*models.Playlist, error) {
	playlist, err := s.load(playlistID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(callerID, playlist.UserID); err != nil {
		return nil, err
	}

	if err := s.db.Model(playlist).Update("is_fav", !playlist.IsFav).Error; err != nil {
		return nil, err
	}

	return s.GetWithTracks(playlist.ID)
}

// Delete hard-deletes the playlist and its junction rows. Catalog rows shared
// with other playlists (or the search history) are untouched.
func (s *PlaylistService) Delete(playlistID uint, callerID string) error {
	playlist, err := s.load(playlistID)
	if err != nil {
		return err
	}
	if err := authz.Authorize(callerID, playlist.UserID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Playlist{}, playlist.ID).Error
	})
}

func (s *PlaylistService) load(playlistID uint) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := s.db.First(&playlist, playlistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("playlist not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &playlist, nil
}
