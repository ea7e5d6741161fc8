package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

type TodoService interface {
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string, date, from, to string) ([]models.Todo, error)
	Toggle(ctx context.Context, userID, id string) (*models.Todo, error)
}

type todoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) Create(ctx context.Context, todo *models.Todo) error {
	if todo.Title == "" || todo.Date == "" {
		return ErrValidation
	}
	return s.repo.Create(ctx, todo)
}

// ownedTodo loads the record and enforces ownership.
func (s *todoService) ownedTodo(ctx context.Context, userID, id string) (*models.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, ErrForbidden
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) error {
	if _, err := s.ownedTodo(ctx, userID, id); err != nil {
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

func (s *todoService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.ownedTodo(ctx, userID, id); err != nil {
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

func (s *todoService) List(ctx context.Context, userID string, date, from, to string) ([]models.Todo, error) {
	return s.repo.ListByUser(ctx, userID, date, from, to)
}

func (s *todoService) Toggle(ctx context.Context, userID, id string) (*models.Todo, error) {
	todo, err := s.ownedTodo(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"completed": !todo.Completed}); err != nil {
		return nil, err
	}
	todo.Completed = !todo.Completed
	return todo, nil
}
