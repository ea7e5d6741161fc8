package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
	"myka/internal/scheduler"
)

var ErrSnoozeDisabled = errors.New("snooze is not enabled for this notification")

// TimerScheduler is the slice of the scheduler the store drives on mutation.
type TimerScheduler interface {
	Arm(n models.ScheduledNotification) error
	Snooze(n models.ScheduledNotification)
	Cancel(id string)
}

type NotificationService interface {
	Create(ctx context.Context, n *models.ScheduledNotification) error
	Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*models.ScheduledNotification, error)
	Delete(ctx context.Context, userID, id string) error
	List(ctx context.Context, userID string) ([]models.ScheduledNotification, error)
	Toggle(ctx context.Context, userID, id string) (*models.ScheduledNotification, error)
	Snooze(ctx context.Context, userID, id string) error
	SeedForRoutine(ctx context.Context, routine *models.RoutineConfig) error
	RemoveForRoutine(ctx context.Context, routineID string) error
}

type notificationService struct {
	repo          repository.NotificationRepository
	cache         *repository.NotificationCache
	timers        TimerScheduler
	snoozeDefault int
	log           *zap.Logger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	cache *repository.NotificationCache,
	timers TimerScheduler,
	snoozeDefault int,
	log *zap.Logger,
) NotificationService {
	if snoozeDefault <= 0 {
		snoozeDefault = 10
	}
	return &notificationService{repo: repo, cache: cache, timers: timers, snoozeDefault: snoozeDefault, log: log}
}

func (s *notificationService) Create(ctx context.Context, n *models.ScheduledNotification) error {
	if n.Time == "" || n.Title == "" || n.Body == "" || n.Type == "" {
		return ErrValidation
	}
	if _, _, err := scheduler.ParseTimeOfDay(n.Time); err != nil {
		return ErrValidation
	}
	if n.SnoozeDuration <= 0 {
		n.SnoozeDuration = s.snoozeDefault
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if err := s.timers.Arm(*n); err != nil {
		s.log.Error("arm after create failed", zap.Error(err), zap.String("notification_id", n.ID))
	}
	s.refreshSnapshot(ctx, n.UserID)
	return nil
}

func (s *notificationService) owned(ctx context.Context, userID, id string) (*models.ScheduledNotification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrForbidden
	}
	return n, nil
}

// Update merges fields into the record, then supersedes any pending timer so
// a stale fire time can never go off.
func (s *notificationService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*models.ScheduledNotification, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, err
	}
	if t, ok := fields["time"].(string); ok {
		if _, _, err := scheduler.ParseTimeOfDay(t); err != nil {
			return nil, ErrValidation
		}
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.timers.Cancel(id)
	if err := s.timers.Arm(*updated); err != nil {
		s.log.Error("re-arm after update failed", zap.Error(err), zap.String("notification_id", id))
	}
	s.refreshSnapshot(ctx, userID)
	return updated, nil
}

// Delete is a no-op when the notification is already absent.
func (s *notificationService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.timers.Cancel(id)
		return nil
	}
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.timers.Cancel(id)
	s.refreshSnapshot(ctx, userID)
	return nil
}

func (s *notificationService) List(ctx context.Context, userID string) ([]models.ScheduledNotification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.refreshSnapshot(ctx, userID)
	return notifications, nil
}

func (s *notificationService) Toggle(ctx context.Context, userID, id string) (*models.ScheduledNotification, error) {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, map[string]interface{}{"enabled": !n.Enabled}); err != nil {
		return nil, err
	}
	n.Enabled = !n.Enabled

	if n.Enabled {
		if err := s.timers.Arm(*n); err != nil {
			s.log.Error("arm after toggle failed", zap.Error(err), zap.String("notification_id", id))
		}
	} else {
		s.timers.Cancel(id)
	}
	s.refreshSnapshot(ctx, userID)
	return n, nil
}

func (s *notificationService) Snooze(ctx context.Context, userID, id string) error {
	n, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if !n.SnoozeEnabled {
		return ErrSnoozeDisabled
	}
	s.timers.Snooze(*n)
	return nil
}

// SeedForRoutine creates the default daily reminders when a user sets up
// their first routine config.
func (s *notificationService) SeedForRoutine(ctx context.Context, routine *models.RoutineConfig) error {
	defaults := []models.ScheduledNotification{
		{
			UserID:    routine.UserID,
			RoutineID: &routine.ID,
			Time:      "07:00",
			Title:     "Good Morning",
			Body:      "Step on the scale before breakfast.",
			Type:      models.NotificationTypeWeight,
			Actions: []models.NotificationAction{
				{ID: "log-weight", Label: "Log weight", Icon: "scale"},
				{ID: "snooze", Label: "Snooze", Icon: "clock"},
			},
			Enabled:        true,
			Recurring:      true,
			SnoozeEnabled:  true,
			SnoozeDuration: s.snoozeDefault,
		},
		{
			UserID:    routine.UserID,
			RoutineID: &routine.ID,
			Time:      "10:00",
			Title:     "Stay hydrated",
			Body:      "Time for a glass of water.",
			Type:      models.NotificationTypeHydration,
			Actions: []models.NotificationAction{
				{ID: "drink-water", Label: "Log water", Icon: "droplet"},
			},
			Enabled:        true,
			Recurring:      true,
			SnoozeEnabled:  false,
			SnoozeDuration: s.snoozeDefault,
		},
		{
			UserID:    routine.UserID,
			RoutineID: &routine.ID,
			Time:      "14:00",
			Title:     "Stay hydrated",
			Body:      "Time for a glass of water.",
			Type:      models.NotificationTypeHydration,
			Actions: []models.NotificationAction{
				{ID: "drink-water", Label: "Log water", Icon: "droplet"},
			},
			Enabled:        true,
			Recurring:      true,
			SnoozeEnabled:  false,
			SnoozeDuration: s.snoozeDefault,
		},
		{
			UserID:    routine.UserID,
			RoutineID: &routine.ID,
			Time:      "17:00",
			Title:     "Stay hydrated",
			Body:      "One more glass before the evening.",
			Type:      models.NotificationTypeHydration,
			Actions: []models.NotificationAction{
				{ID: "drink-water", Label: "Log water", Icon: "droplet"},
			},
			Enabled:        true,
			Recurring:      true,
			SnoozeEnabled:  false,
			SnoozeDuration: s.snoozeDefault,
		},
	}

	for i := range defaults {
		if err := s.repo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
		if err := s.timers.Arm(defaults[i]); err != nil {
			s.log.Error("arm seeded notification failed", zap.Error(err),
				zap.String("notification_id", defaults[i].ID))
		}
	}
	s.refreshSnapshot(ctx, routine.UserID)
	return nil
}

// RemoveForRoutine deletes the reminders a routine config seeded and cancels
// their timers.
func (s *notificationService) RemoveForRoutine(ctx context.Context, routineID string) error {
	removed, err := s.repo.DeleteByRoutine(ctx, routineID)
	if err != nil {
		return err
	}
	for _, n := range removed {
		s.timers.Cancel(n.ID)
	}
	if len(removed) > 0 {
		s.refreshSnapshot(ctx, removed[0].UserID)
	}
	return nil
}

// refreshSnapshot rewrites the user's Redis mirror; cache trouble is logged,
// never surfaced, since Postgres stays authoritative.
func (s *notificationService) refreshSnapshot(ctx context.Context, userID string) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Warn("snapshot reload failed", zap.Error(err), zap.String("user_id", userID))
		return
	}
	if err := s.cache.SaveSnapshot(ctx, userID, notifications); err != nil {
		s.log.Warn("snapshot write failed", zap.Error(err), zap.String("user_id", userID))
	}
}
