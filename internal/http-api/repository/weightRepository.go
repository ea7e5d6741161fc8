package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type WeightRepository interface {
	Create(ctx context.Context, entry *models.WeightEntry) error
	FindByID(ctx context.Context, id string) (*models.WeightEntry, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.WeightEntry, error)
}

type weightRepository struct {
	db *gorm.DB
}

func NewWeightRepository(db *gorm.DB) WeightRepository {
	return &weightRepository{db: db}
}

func (r *weightRepository) Create(ctx context.Context, entry *models.WeightEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create weight entry: %w", err)
	}
	return nil
}

func (r *weightRepository) FindByID(ctx context.Context, id string) (*models.WeightEntry, error) {
	var entry models.WeightEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *weightRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.WeightEntry{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update weight entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *weightRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WeightEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete weight entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *weightRepository) ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	} else if from != "" && to != "" {
		q = q.Where("date BETWEEN ? AND ?", from, to)
	}
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	return entries, nil
}
