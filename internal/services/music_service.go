package services

import (
	"errors"
	"fmt"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/models"
	"github.com/tunedeck/backend/pkg/validation"
	"gorm.io/gorm"
)

// VideoInput carries the metadata of a search result being persisted.
type VideoInput struct {
	VideoID      string
	Title        string
	ChannelTitle string
	ThumbnailURL string
	SourceURL    string
}

type MusicService struct {
	db *gorm.DB
}

func NewMusicService(db *gorm.DB) *MusicService {
	return &MusicService{db: db}
}

// UpsertForUser resolves or creates the Music row for (ownerID, videoID).
// An existing row has its mutable metadata refreshed; the favorite flag and
// the row id are stable across calls.
func (s *MusicService) UpsertForUser(ownerID string, in VideoInput) (*models.Music, error) {
	return s.upsert(s.db, ownerID, in)
}

// upsert is the transaction-aware variant used by the playlist add path.
func (s *MusicService) upsert(tx *gorm.DB, ownerID string, in VideoInput) (*models.Music, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required: %w", apperr.ErrValidation)
	}
	if !validation.ValidateVideoID(in.VideoID) {
		return nil, fmt.Errorf("video id is required: %w", apperr.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}

	var music models.Music
	err := tx.Where("user_id = ? AND video_id = ?", ownerID, in.VideoID).First(&music).Error
	if err == nil {
		updates := map[string]interface{}{
			"title":         validation.SanitizeString(in.Title),
			"channel_title": validation.SanitizeString(in.ChannelTitle),
			"thumbnail_url": in.ThumbnailURL,
			"source_url":    in.SourceURL,
		}
		if err := tx.Model(&music).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &music, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	music = models.Music{
		VideoID:      in.VideoID,
		UserID:       ownerID,
		Title:        validation.SanitizeString(in.Title),
		ChannelTitle: validation.SanitizeString(in.ChannelTitle),
		ThumbnailURL: in.ThumbnailURL,
		SourceURL:    in.SourceURL,
	}
	if err := tx.Create(&music).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a create race; the row exists now.
			if err := tx.Where("user_id = ? AND video_id = ?", ownerID, in.VideoID).First(&music).Error; err != nil {
				return nil, err
			}
			return &music, nil
		}
		return nil, err
	}
	return &music, nil
}

// ToggleFavorite flips the favorite flag of the owner's row for videoID and
// returns the updated row.
func (s *MusicService) ToggleFavorite(ownerID, videoID string) (*models.Music, error) {
	var music models.Music
	if err := s.db.Where("user_id = ? AND video_id = ?", ownerID, videoID).First(&music).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("music not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}

	newState := !music.IsFav
	if err := s.db.Model(&music).Update("is_fav", newState).Error; err != nil {
		return nil, err
	}
	music.IsFav = newState
	return &music, nil
}

// ListSearchHistory returns the owner's most recently saved videos,
// newest first.
func (s *MusicService) ListSearchHistory(ownerID string, limit int) ([]*models.Music, error) {
	if limit <= 0 {
		limit = 5
	}
	var musics []*models.Music
	if err := s.db.Where("user_id = ?", ownerID).Order("created_at DESC").Limit(limit).Find(&musics).Error; err != nil {
		return nil, err
	}
	return musics, nil
}

// ListFavorites returns the owner's favorited catalog rows, newest first.
func (s *MusicService) ListFavorites(ownerID string) ([]*models.Music, error) {
	var musics []*models.Music
	if err := s.db.Where("user_id = ? AND is_fav = ?", ownerID, true).Order("created_at DESC").Find(&musics).Error; err != nil {
		return nil, err
	}
	return musics, nil
}
