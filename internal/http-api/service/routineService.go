package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

type RoutineService interface {
	Create(ctx context.Context, routine *models.RoutineConfig) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]models.RoutineConfig, error)
	CompleteTask(ctx context.Context, userID, id, date, task string) (*models.RoutineConfig, error)
}

type routineService struct {
	repo          repository.RoutineRepository
	notifications NotificationService
}

func NewRoutineService(repo repository.RoutineRepository, notifications NotificationService) RoutineService {
	return &routineService{repo: repo, notifications: notifications}
}

// Create persists the config; the user's first config also seeds the default
// daily reminders.
func (s *routineService) Create(ctx context.Context, routine *models.RoutineConfig) error {
	if routine.Name == "" || len(routine.Tasks) == 0 {
		return ErrValidation
	}

	existing, err := s.repo.CountByUser(ctx, routine.UserID)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, routine); err != nil {
		return err
	}

	if existing == 0 {
		if err := s.notifications.SeedForRoutine(ctx, routine); err != nil {
			return fmt.Errorf("seed default reminders: %w", err)
		}
	}
	return nil
}

func (s *routineService) ownedRoutine(ctx context.Context, userID, id string) (*models.RoutineConfig, error) {
	routine, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if routine.UserID != userID {
		return nil, ErrForbidden
	}
	return routine, nil
}

func (s *routineService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedRoutine(ctx, userID, id); err != nil {
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

// Delete removes the config and any reminders it seeded.
func (s *routineService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedRoutine(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.notifications.RemoveForRoutine(ctx, id)
}

func (s *routineService) List(ctx context.Context, userID string) ([]models.RoutineConfig, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CompleteTask records one routine task as done for the given date.
// Completion keys are "date:task" so each day starts fresh.
func (s *routineService) CompleteTask(ctx context.Context, userID, id, date, task string) (*models.RoutineConfig, error) {
	routine, err := s.ownedRoutine(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if date == "" || task == "" {
		return nil, ErrValidation
	}

	found := false
	for _, t := range routine.Tasks {
		if t == task {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	key := date + ":" + task
	for _, done := range routine.TasksDone {
		if done == key {
			return routine, nil // already completed, idempotent
		}
	}
	routine.TasksDone = append(routine.TasksDone, key)

	if err := s.repo.Save(ctx, routine); err != nil {
		return nil, err
	}
	return routine, nil
}
