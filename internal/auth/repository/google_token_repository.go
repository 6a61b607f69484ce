package repository

import (
	"errors"
	"time"

	authdomain "calsync-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// googleTokenRepository implements GoogleTokenRepository interface
type googleTokenRepository struct {
	db *gorm.DB
}

// NewGoogleTokenRepository creates a new instance of googleTokenRepository
func NewGoogleTokenRepository(db *gorm.DB) GoogleTokenRepository {
	return &googleTokenRepository{
		db: db,
	}
}

func (r *googleTokenRepository) FindByUserID(userID string) (*authdomain.GoogleToken, error) {
	var token authdomain.GoogleToken
	err := r.db.Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

// Upsert writes the credential for token.UserID, creating the row on first
// authorization and overwriting it in place on re-authorization or refresh.
// An empty RefreshToken on the incoming value keeps the stored one, since
// Google only returns a refresh token on the initial consent.
func (r *googleTokenRepository) Upsert(token *authdomain.GoogleToken) error {
	var existing authdomain.GoogleToken
	err := r.db.Where("user_id = ?", token.UserID).First(&existing).Error

	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		token.ID = uuid.New().String()
		token.CreatedAt = now
		token.UpdatedAt = now
		return r.db.Create(token).Error
	} else if err != nil {
		return err
	}

	existing.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		existing.RefreshToken = token.RefreshToken
	}
	existing.TokenType = token.TokenType
	existing.ExpiresAt = token.ExpiresAt
	if token.Scope != "" {
		existing.Scope = token.Scope
	}
	existing.UpdatedAt = now
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*token = existing
	return nil
}

func (r *googleTokenRepository) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.GoogleToken{}).Error
}
