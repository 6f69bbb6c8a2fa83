package notificationrepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormNotificationRepository(db *gorm.DB, tracker aggregateTracker) *GormNotificationRepository {
	return &GormNotificationRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(n.ID(), n)
	}
	return nil
}

// ListForRecipient returns the newest notifications first.
func (r *GormNotificationRepository) ListForRecipient(
	ctx context.Context,
	recipientID kernel.UUID,
	limit int,
) ([]*notification.Notification, error) {
	if err := recipientID.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = notification.DefaultListLimit
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID.Bytes()).
		Order("created_at DESC").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *GormNotificationRepository) MarkRead(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.markRead(r.db.WithContext(ctx).Where("id = ?", id.Bytes()), id)
}

func (r *GormNotificationRepository) MarkReadForRecipient(ctx context.Context, id, recipientID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := recipientID.Validate(); err != nil {
		return err
	}
	query := r.db.WithContext(ctx).Where("id = ? AND recipient_id = ?", id.Bytes(), recipientID.Bytes())
	return r.markRead(query, id)
}

func (r *GormNotificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID kernel.UUID) (int64, error) {
	if err := recipientID.Validate(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID.Bytes()).Delete(&NotificationDTO{})
	return result.RowsAffected, result.Error
}

// markRead is idempotent: an already read notification still counts as found.
func (r *GormNotificationRepository) markRead(query *gorm.DB, id kernel.UUID) error {
	var count int64
	if err := query.Session(&gorm.Session{}).Model(&NotificationDTO{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}
	return query.Session(&gorm.Session{}).Model(&NotificationDTO{}).Update("is_read", true).Error
}
