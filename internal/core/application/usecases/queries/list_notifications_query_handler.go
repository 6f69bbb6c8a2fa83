package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) (ListNotificationsResponse, error) {
	if err := query.Validate(); err != nil {
		return ListNotificationsResponse{}, err
	}

	recipient := query.RecipientID().Bytes()
	db := h.db.WithContext(ctx)

	rows, err := db.Raw(`
		SELECT
			id,
			sender_id,
			type,
			message,
			related_id,
			is_read,
			created_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, recipient, query.Limit()).Rows()
	if err != nil {
		return ListNotificationsResponse{}, err
	}
	defer rows.Close()

	resp := ListNotificationsResponse{Items: make([]NotificationResponse, 0)}
	for rows.Next() {
		var (
			item                NotificationResponse
			id                  uuid.UUID
			senderID, relatedID uuid.NullUUID
			kind                string
		)
		if err = rows.Scan(&id, &senderID, &kind, &item.Message, &relatedID, &item.IsRead, &item.CreatedAt); err != nil {
			return ListNotificationsResponse{}, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return ListNotificationsResponse{}, err
		}
		if item.SenderID, err = nullableID(senderID); err != nil {
			return ListNotificationsResponse{}, err
		}
		if item.RelatedID, err = nullableID(relatedID); err != nil {
			return ListNotificationsResponse{}, err
		}
		if item.Type, err = notification.ParseType(kind); err != nil {
			return ListNotificationsResponse{}, err
		}
		resp.Items = append(resp.Items, item)
	}
	if err = rows.Err(); err != nil {
		return ListNotificationsResponse{}, err
	}

	err = db.Raw(
		`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND NOT is_read`, recipient,
	).Scan(&resp.UnreadCount).Error
	if err != nil {
		return ListNotificationsResponse{}, err
	}

	return resp, nil
}
