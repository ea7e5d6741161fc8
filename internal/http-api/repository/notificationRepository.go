package repository

import (
	"context"
	"fmt"

	"myka/internal/http-api/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.ScheduledNotification) error
	FindByID(ctx context.Context, id string) (*models.ScheduledNotification, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	DeleteByRoutine(ctx context.Context, routineID string) ([]models.ScheduledNotification, error)
	ListByUser(ctx context.Context, userID string) ([]models.ScheduledNotification, error)
	ListEnabled(ctx context.Context) ([]models.ScheduledNotification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.ScheduledNotification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create scheduled notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*models.ScheduledNotification, error) {
	var notification models.ScheduledNotification
	if err := r.db.WithContext(ctx).First(&notification, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.ScheduledNotification{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update scheduled notification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete is idempotent: removing an already-absent notification is not an error.
func (r *notificationRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ScheduledNotification{}).Error; err != nil {
		return fmt.Errorf("delete scheduled notification: %w", err)
	}
	return nil
}

// DeleteByRoutine removes all notifications seeded by a routine config and
// returns them so the caller can cancel their timers.
func (r *notificationRepository) DeleteByRoutine(ctx context.Context, routineID string) ([]models.ScheduledNotification, error) {
	var notifications []models.ScheduledNotification
	if err := r.db.WithContext(ctx).
		Where("routine_id = ?", routineID).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("find notifications for routine: %w", err)
	}
	if err := r.db.WithContext(ctx).
		Where("routine_id = ?", routineID).
		Delete(&models.ScheduledNotification{}).Error; err != nil {
		return nil, fmt.Errorf("delete notifications for routine: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]models.ScheduledNotification, error) {
	var notifications []models.ScheduledNotification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list scheduled notifications: %w", err)
	}
	return notifications, nil
}

// ListEnabled returns every enabled notification across users, for the
// startup re-arm sweep.
func (r *notificationRepository) ListEnabled(ctx context.Context) ([]models.ScheduledNotification, error) {
	var notifications []models.ScheduledNotification
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list enabled notifications: %w", err)
	}
	return notifications, nil
}
