// Package notificationrepo persists per-recipient notifications with GORM.
package notificationrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index:idx_notifications_recipient_created,priority:1"`
	SenderID    *uuid.UUID `gorm:"type:uuid"`
	Type        string     `gorm:"type:varchar(32);not null"`
	Message     string     `gorm:"type:text;not null"`
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
	IsRead      bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"not null;index:idx_notifications_recipient_created,priority:2,sort:desc"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.Recipient().Bytes(),
		SenderID:    rawID(n.Sender()),
		Type:        n.Type().String(),
		Message:     n.Message(),
		RelatedID:   rawID(n.RelatedID()),
		IsRead:      n.IsRead(),
		CreatedAt:   n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	senderID, err := domainID(dto.SenderID)
	if err != nil {
		return nil, err
	}
	relatedID, err := domainID(dto.RelatedID)
	if err != nil {
		return nil, err
	}
	kind, err := notification.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, recipientID, senderID, kind, dto.Message, relatedID, dto.IsRead, dto.CreatedAt)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
