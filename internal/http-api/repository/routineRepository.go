package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type RoutineRepository interface {
	Create(ctx context.Context, routine *models.RoutineConfig) error
	FindByID(ctx context.Context, id string) (*models.RoutineConfig, error)
	Save(ctx context.Context, routine *models.RoutineConfig) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]models.RoutineConfig, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type routineRepository struct {
	db *gorm.DB
}

func NewRoutineRepository(db *gorm.DB) RoutineRepository {
	return &routineRepository{db: db}
}

func (r *routineRepository) Create(ctx context.Context, routine *models.RoutineConfig) error {
	if err := r.db.WithContext(ctx).Create(routine).Error; err != nil {
		return fmt.Errorf("create routine config: %w", err)
	}
	return nil
}

func (r *routineRepository) FindByID(ctx context.Context, id string) (*models.RoutineConfig, error) {
	var routine models.RoutineConfig
	if err := r.db.WithContext(ctx).First(&routine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &routine, nil
}

// Save writes the whole record back; needed for the serialized task slices
// which map-based Updates cannot merge.
func (r *routineRepository) Save(ctx context.Context, routine *models.RoutineConfig) error {
	if err := r.db.WithContext(ctx).Save(routine).Error; err != nil {
		return fmt.Errorf("save routine config: %w", err)
	}
	return nil
}

func (r *routineRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.RoutineConfig{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update routine config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routineRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.RoutineConfig{})
	if result.Error != nil {
		return fmt.Errorf("delete routine config: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *routineRepository) ListByUser(ctx context.Context, userID string) ([]models.RoutineConfig, error) {
	var routines []models.RoutineConfig
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&routines).Error; err != nil {
		return nil, fmt.Errorf("list routine configs: %w", err)
	}
	return routines, nil
}

func (r *routineRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoutineConfig{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count routine configs: %w", err)
	}
	return count, nil
}
