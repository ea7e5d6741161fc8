package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

type WeightService interface {
	Create(ctx context.Context, entry *models.WeightEntry) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, date, from, to string) ([]models.WeightEntry, error)
}

type weightService struct {
	repo repository.WeightRepository
}

func NewWeightService(repo repository.WeightRepository) WeightService {
	return &weightService{repo: repo}
}

func (s *weightService) Create(ctx context.Context, entry *models.WeightEntry) error {
	if entry.Date == "" || entry.WeightKg <= 0 {
		return ErrValidation
	}
	return s.repo.Create(ctx, entry)
}

func (s *weightService) ownedEntry(ctx context.Context, userID, id string) (*models.WeightEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrForbidden
	}
	return entry, nil
}

func (s *weightService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedEntry(ctx, userID, id); err != nil {
		return err
	}
	if weight, ok := fields["weight_kg"].(float64); ok && weight <= 0 {
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

func (s *weightService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedEntry(ctx, userID, id); err != nil {
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

func (s *weightService) List(ctx context.Context, userID string, date, from, to string) ([]models.WeightEntry, error) {
	return s.repo.ListByUser(ctx, userID, date, from, to)
}
