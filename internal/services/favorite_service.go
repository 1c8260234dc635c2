package services

import (
	"errors"
	"fmt"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/models"
	"github.com/tunedeck/backend/pkg/authz"
	"github.com/tunedeck/backend/pkg/validation"
	"gorm.io/gorm"
)

type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add bookmarks a video for ownerID. Bookmarking the same video twice is a
// conflict.
func (s *FavoriteService) Add(ownerID string, in VideoInput) (*models.Favorite, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("user_id is required: %w", apperr.ErrValidation)
	}
	if !validation.ValidateVideoID(in.VideoID) {
		return nil, fmt.Errorf("video id is required: %w", apperr.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", apperr.ErrValidation)
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND video_id = ?", ownerID, in.VideoID).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("video is already in favorites: %w", apperr.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := &models.Favorite{
		UserID:       ownerID,
		Title:        validation.SanitizeString(in.Title),
		ChannelTitle: validation.SanitizeString(in.ChannelTitle),
		ThumbnailURL: in.ThumbnailURL,
		VideoID:      in.VideoID,
		SourceURL:    in.SourceURL,
	}
	if err := s.db.Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("video is already in favorites: %w", apperr.ErrConflict)
		}
		return nil, err
	}
	return favorite, nil
}

// ListForUser returns ownerID's favorites, newest first. Favorites are
// private; a different caller is rejected.
func (s *FavoriteService) ListForUser(callerID, ownerID string) ([]*models.Favorite, error) {
	if err := authz.Authorize(callerID, ownerID); err != nil {
		return nil, err
	}

	var favorites []*models.Favorite
	if err := s.db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// Remove deletes a favorite by id after an ownership check.
func (s *FavoriteService) Remove(favoriteID uint, callerID string) error {
	var favorite models.Favorite
	if err := s.db.First(&favorite, favoriteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("favorite not found: %w", apperr.ErrNotFound)
		}
		return err
	}

	if err := authz.Authorize(callerID, favorite.UserID); err != nil {
		return err
	}

	return s.db.Delete(&favorite).Error
}
