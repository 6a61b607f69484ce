package repository

import (
	"errors"
	"time"

	authdomain "calsync-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of profileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) FindByUserID(userID string) (*authdomain.UserProfile, error) {
	var profile authdomain.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindByGoogleID(googleID string) (*authdomain.UserProfile, error) {
	var profile authdomain.UserProfile
	err := r.db.Where("google_id = ?", googleID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(profile *authdomain.UserProfile) error {
	now := time.Now()
	if profile.ID == "" {
		profile.ID = uuid.New().String()
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return r.db.Save(profile).Error
}
