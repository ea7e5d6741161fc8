package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/service"
)

// --- MOCK ROUTINE REPOSITORY ---

type MockRoutineRepo struct {
	mock.Mock
}

func (m *MockRoutineRepo) Create(ctx context.Context, routine *models.RoutineConfig) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *MockRoutineRepo) FindByID(ctx context.Context, id string) (*models.RoutineConfig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoutineConfig), args.Error(1)
}

func (m *MockRoutineRepo) Save(ctx context.Context, routine *models.RoutineConfig) error {
	args := m.Called(ctx, routine)
	return args.Error(0)
}

func (m *MockRoutineRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockRoutineRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoutineRepo) ListByUser(ctx context.Context, userID string) ([]models.RoutineConfig, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.RoutineConfig), args.Error(1)
}

func (m *MockRoutineRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// --- MOCK NOTIFICATION SERVICE (seeding collaborator) ---

type MockNotifications struct {
	mock.Mock
}

func (m *MockNotifications) Create(ctx context.Context, n *models.ScheduledNotification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotifications) Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*models.ScheduledNotification, error) {
	args := m.Called(ctx, userID, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledNotification), args.Error(1)
}

func (m *MockNotifications) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotifications) List(ctx context.Context, userID string) ([]models.ScheduledNotification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.ScheduledNotification), args.Error(1)
}

func (m *MockNotifications) Toggle(ctx context.Context, userID, id string) (*models.ScheduledNotification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ScheduledNotification), args.Error(1)
}

func (m *MockNotifications) Snooze(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockNotifications) SeedForRoutine(ctx context.Context, routine *models.RoutineConfig) error {
	return m.Called(ctx, routine).Error(0)
}

func (m *MockNotifications) RemoveForRoutine(ctx context.Context, routineID string) error {
	return m.Called(ctx, routineID).Error(0)
}

// --- HELPERS ---

func sampleRoutine() *models.RoutineConfig {
	return &models.RoutineConfig{
		ID:     "r1",
		UserID: "user-1",
		Name:   "Morning",
		Tasks:  []string{"weigh-in", "stretch", "water"},
		Active: true,
	}
}

// --- TESTS ---

func TestRoutineCreate(t *testing.T) {
	t.Run("FirstConfigSeedsReminders", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		notifications := new(MockNotifications)
		svc := service.NewRoutineService(repo, notifications)

		routine := sampleRoutine()
		repo.On("CountByUser", mock.Anything, "user-1").Return(int64(0), nil)
		repo.On("Create", mock.Anything, routine).Return(nil)
		notifications.On("SeedForRoutine", mock.Anything, routine).Return(nil)

		require.NoError(t, svc.Create(context.Background(), routine))
		notifications.AssertCalled(t, "SeedForRoutine", mock.Anything, routine)
	})

	t.Run("SecondConfigDoesNotReseed", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		notifications := new(MockNotifications)
		svc := service.NewRoutineService(repo, notifications)

		routine := sampleRoutine()
		repo.On("CountByUser", mock.Anything, "user-1").Return(int64(1), nil)
		repo.On("Create", mock.Anything, routine).Return(nil)

		require.NoError(t, svc.Create(context.Background(), routine))
		notifications.AssertNotCalled(t, "SeedForRoutine", mock.Anything, mock.Anything)
	})

	t.Run("RejectsEmptyTasks", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		routine := sampleRoutine()
		routine.Tasks = nil
		err := svc.Create(context.Background(), routine)
		assert.ErrorIs(t, err, service.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRoutineDelete(t *testing.T) {
	t.Run("RemovesSeededReminders", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		notifications := new(MockNotifications)
		svc := service.NewRoutineService(repo, notifications)

		repo.On("FindByID", mock.Anything, "r1").Return(sampleRoutine(), nil)
		repo.On("Delete", mock.Anything, "r1").Return(nil)
		notifications.On("RemoveForRoutine", mock.Anything, "r1").Return(nil)

		require.NoError(t, svc.Delete(context.Background(), "user-1", "r1"))
		notifications.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		repo.On("FindByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(context.Background(), "user-1", "ghost")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestCompleteTask(t *testing.T) {
	t.Run("RecordsDateScopedCompletion", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		repo.On("FindByID", mock.Anything, "r1").Return(sampleRoutine(), nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*models.RoutineConfig")).Return(nil)

		routine, err := svc.CompleteTask(context.Background(), "user-1", "r1", "2024-03-15", "weigh-in")
		require.NoError(t, err)
		assert.Contains(t, routine.TasksDone, "2024-03-15:weigh-in")
	})

	t.Run("IdempotentForSameDay", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		routine := sampleRoutine()
		routine.TasksDone = []string{"2024-03-15:weigh-in"}
		repo.On("FindByID", mock.Anything, "r1").Return(routine, nil)

		got, err := svc.CompleteTask(context.Background(), "user-1", "r1", "2024-03-15", "weigh-in")
		require.NoError(t, err)
		assert.Len(t, got.TasksDone, 1)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("SameTaskNextDayStartsFresh", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		routine := sampleRoutine()
		routine.TasksDone = []string{"2024-03-15:weigh-in"}
		repo.On("FindByID", mock.Anything, "r1").Return(routine, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		got, err := svc.CompleteTask(context.Background(), "user-1", "r1", "2024-03-16", "weigh-in")
		require.NoError(t, err)
		assert.Len(t, got.TasksDone, 2)
	})

	t.Run("UnknownTask", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		repo.On("FindByID", mock.Anything, "r1").Return(sampleRoutine(), nil)

		_, err := svc.CompleteTask(context.Background(), "user-1", "r1", "2024-03-15", "juggling")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("ForbidsOtherUsersRoutine", func(t *testing.T) {
		repo := new(MockRoutineRepo)
		svc := service.NewRoutineService(repo, new(MockNotifications))

		repo.On("FindByID", mock.Anything, "r1").Return(sampleRoutine(), nil)

		_, err := svc.CompleteTask(context.Background(), "intruder", "r1", "2024-03-15", "weigh-in")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}
