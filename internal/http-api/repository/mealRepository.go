package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	FindByID(ctx context.Context, id string) (*models.Meal, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.Meal, error)
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

func (r *mealRepository) FindByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mealRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Meal{})
	if result.Error != nil {
		return fmt.Errorf("delete meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mealRepository) ListByUser(ctx context.Context, userID string, date, from, to string) ([]models.Meal, error) {
	var meals []models.Meal
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		q = q.Where("date = ?", date)
	} else if from != "" && to != "" {
		q = q.Where("date BETWEEN ? AND ?", from, to)
	}
	if err := q.Order("created_at ASC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}
