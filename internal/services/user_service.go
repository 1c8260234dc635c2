package services

import (
	"errors"
	"fmt"

	"github.com/tunedeck/backend/internal/apperr"
	"github.com/tunedeck/backend/internal/models"
	"github.com/tunedeck/backend/pkg/oidc"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Ensure mirrors the identity-provider account locally, creating the row on
// the caller's first authenticated request.
func (s *UserService) Ensure(claims *oidc.Claims) (*models.User, error) {
	if claims == nil || claims.Subject == "" {
		return nil, fmt.Errorf("subject is required: %w", apperr.ErrValidation)
	}

	var user models.User
	err := s.db.Where(models.User{SubjectID: claims.Subject}).
		Attrs(models.User{Username: claims.PreferredUsername, Email: claims.Email}).
		FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetBySubject retrieves the local mirror of an identity-provider account.
func (s *UserService) GetBySubject(subject string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("subject_id = ?", subject).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
