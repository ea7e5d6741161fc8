package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
}

type MealService interface {
	Create(ctx context.Context, meal *models.Meal) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, date, from, to string) ([]models.Meal, error)
}

type mealService struct {
	repo repository.MealRepository
}

func NewMealService(repo repository.MealRepository) MealService {
	return &mealService{repo: repo}
}

func (s *mealService) Create(ctx context.Context, meal *models.Meal) error {
	if meal.Name == "" || meal.Date == "" || !validMealTypes[meal.MealType] {
		return ErrValidation
	}
	return s.repo.Create(ctx, meal)
}

func (s *mealService) ownedMeal(ctx context.Context, userID, id string) (*models.Meal, error) {
	meal, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if meal.UserID != userID {
		return nil, ErrForbidden
	}
	return meal, nil
}

func (s *mealService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedMeal(ctx, userID, id); err != nil {
		return err
	}
	if mealType, ok := fields["meal_type"].(string); ok && !validMealTypes[mealType] {
		return ErrValidation
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *mealService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedMeal(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *mealService) List(ctx context.Context, userID string, date, from, to string) ([]models.Meal, error) {
	return s.repo.ListByUser(ctx, userID, date, from, to)
}
