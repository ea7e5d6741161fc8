package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

type PriorityService interface {
	Create(ctx context.Context, priority *models.Priority) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, date, from, to string) ([]models.Priority, error)
	Toggle(ctx context.Context, userID, id string) (*models.Priority, error)
}

type priorityService struct {
	repo repository.PriorityRepository
}

func NewPriorityService(repo repository.PriorityRepository) PriorityService {
	return &priorityService{repo: repo}
}

func (s *priorityService) Create(ctx context.Context, priority *models.Priority) error {
	if priority.Title == "" || priority.Date == "" {
		return ErrValidation
	}
	return s.repo.Create(ctx, priority)
}

func (s *priorityService) ownedPriority(ctx context.Context, userID, id string) (*models.Priority, error) {
	priority, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if priority.UserID != userID {
		return nil, ErrForbidden
	}
	return priority, nil
}

func (s *priorityService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedPriority(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *priorityService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedPriority(ctx, userID, id); err != nil {
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

func (s *priorityService) List(ctx context.Context, userID string, date, from, to string) ([]models.Priority, error) {
	return s.repo.ListByUser(ctx, userID, date, from, to)
}

func (s *priorityService) Toggle(ctx context.Context, userID, id string) (*models.Priority, error) {
	priority, err := s.ownedPriority(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"completed": !priority.Completed}); err != nil {
		return nil, err
	}
	priority.Completed = !priority.Completed
	return priority, nil
}
