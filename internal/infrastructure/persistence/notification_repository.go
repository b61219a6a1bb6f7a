package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/society/backend/internal/domain/notification"
	"github.com/society/backend/internal/domain/shared"
	"github.com/society/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements notification.Repository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

var _ notification.Repository = (*GormNotificationRepository)(nil)

// Create inserts a notification row
func (r *GormNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListByResident returns the newest notifications for a resident, capped at limit
func (r *GormNotificationRepository) ListByResident(ctx context.Context, residentID uuid.UUID, limit int) ([]*notification.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("resident_id = ?", residentID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var notificationModels []models.NotificationModel
	if err := query.Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = notificationModels[i].ToDomain()
	}
	return notifications, nil
}

// CountUnread counts the resident's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, residentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("resident_id = ? AND read = ?", residentID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks one of the resident's notifications as read
func (r *GormNotificationRepository) MarkRead(ctx context.Context, id, residentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ? AND resident_id = ?", id, residentID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the resident as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, residentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("resident_id = ? AND read = ?", residentID, false).
		Update("read", true).Error
}

// Delete removes one of the resident's notifications
func (r *GormNotificationRepository) Delete(ctx context.Context, id, residentID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.NotificationModel{}, "id = ? AND resident_id = ?", id, residentID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteRead removes every read notification of the resident and returns
// the number deleted
func (r *GormNotificationRepository) DeleteRead(ctx context.Context, residentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.NotificationModel{}, "resident_id = ? AND read = ?", residentID, true)
	return result.RowsAffected, result.Error
}
