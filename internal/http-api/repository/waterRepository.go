package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type WaterRepository interface {
	Create(ctx context.Context, entry *models.WaterEntry) error
	FindByID(ctx context.Context, id string) (*models.WaterEntry, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.WaterEntry, error)
	TotalForDate(ctx context.Context, userID string, date string) (int, error)
}

type waterRepository struct {
	db *gorm.DB
}

func NewWaterRepository(db *gorm.DB) WaterRepository {
	return &waterRepository{db: db}
}

func (r *waterRepository) Create(ctx context.Context, entry *models.WaterEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create water entry: %w", err)
	}
	return nil
}

func (r *waterRepository) FindByID(ctx context.Context, id string) (*models.WaterEntry, error) {
	var entry models.WaterEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *waterRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.WaterEntry{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update water entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *waterRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WaterEntry{})
	if result.Error != nil {
		return fmt.Errorf("delete water entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *waterRepository) ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.WaterEntry, error) {
	var entries []models.WaterEntry
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	} else if from != "" && to != "" {
		q = q.Where("date BETWEEN ? AND ?", from, to)
	}
	if err := q.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list water entries: %w", err)
	}
	return entries, nil
}

// TotalForDate sums a day's intake for the hydration progress ring.
func (r *waterRepository) TotalForDate(ctx context.Context, userID string, date string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.WaterEntry{}).
		Where("user_id = ? AND date = ?", userID, date).
		Select("COALESCE(SUM(amount_ml), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("total water for date: %w", err)
	}
	return int(total), nil
}
