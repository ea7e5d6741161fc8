package repository

import (
	"context"
	"errors"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type InstallRepository interface {
	Get(ctx context.Context, userID string) (*models.InstallState, error)
	Save(ctx context.Context, state *models.InstallState) error
}

type installRepository struct {
	db *gorm.DB
}

func NewInstallRepository(db *gorm.DB) InstallRepository {
	return &installRepository{db: db}
}

// Get returns the persisted state, or a zero-value state for first load
// (absence is not an error).
func (r *installRepository) Get(ctx context.Context, userID string) (*models.InstallState, error) {
	var state models.InstallState
	err := r.db.WithContext(ctx).First(&state, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.InstallState{UserID: userID, Platform: models.PlatformUnknown}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get install state: %w", err)
	}
	return &state, nil
}

// Save upserts the state keyed by user id.
func (r *installRepository) Save(ctx context.Context, state *models.InstallState) error {
	if err := r.db.WithContext(ctx).Save(state).Error; err != nil {
		return fmt.Errorf("save install state: %w", err)
	}
	return nil
}
