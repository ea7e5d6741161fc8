package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

type WaterService interface {
	Create(ctx context.Context, entry *models.WaterEntry) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, date, from, to string) ([]models.WaterEntry, error)
	TotalForDate(ctx context.Context, userID string, date string) (int, error)
}

type waterService struct {
	repo repository.WaterRepository
}

func NewWaterService(repo repository.WaterRepository) WaterService {
	return &waterService{repo: repo}
}

func (s *waterService) Create(ctx context.Context, entry *models.WaterEntry) error {
	if entry.Date == "" || entry.AmountML <= 0 {
		return ErrValidation
	}
	return s.repo.Create(ctx, entry)
}

func (s *waterService) ownedEntry(ctx context.Context, userID, id string) (*models.WaterEntry, error) {
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

func (s *waterService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedEntry(ctx, userID, id); err != nil {
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

func (s *waterService) Delete(ctx context.Context, userID, id string) error {
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

func (s *waterService) List(ctx context.Context, userID string, date, from, to string) ([]models.WaterEntry, error) {
	return s.repo.ListByUser(ctx, userID, date, from, to)
}

func (s *waterService) TotalForDate(ctx context.Context, userID string, date string) (int, error) {
	return s.repo.TotalForDate(ctx, userID, date)
}
