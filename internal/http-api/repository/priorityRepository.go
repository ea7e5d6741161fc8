package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type PriorityRepository interface {
	Create(ctx context.Context, priority *models.Priority) error
	FindByID(ctx context.Context, id string) (*models.Priority, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.Priority, error)
}

type priorityRepository struct {
	db *gorm.DB
}

func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &priorityRepository{db: db}
}

func (r *priorityRepository) Create(ctx context.Context, priority *models.Priority) error {
	if err := r.db.WithContext(ctx).Create(priority).Error; err != nil {
		return fmt.Errorf("create priority: %w", err)
	}
	return nil
}

func (r *priorityRepository) FindByID(ctx context.Context, id string) (*models.Priority, error) {
	var priority models.Priority
	if err := r.db.WithContext(ctx).First(&priority, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &priority, nil
}

func (r *priorityRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Priority{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update priority: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *priorityRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Priority{})
	if result.Error != nil {
		return fmt.Errorf("delete priority: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *priorityRepository) ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.Priority, error) {
	var priorities []models.Priority
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	} else if from != "" && to != "" {
		q = q.Where("date BETWEEN ? AND ?", from, to)
	}
	if err := q.Order("rank ASC").Find(&priorities).Error; err != nil {
		return nil, fmt.Errorf("list priorities: %w", err)
	}
	return priorities, nil
}
