package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

const (
	msgNotificationRead   = "Notification marquée comme lue"
	msgNotificationsClear = "Toutes les notifications ont été supprimées"
)

// ListNotifications handles GET /api/notifications?limit=.
func (s *Server) ListNotifications(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return s.fail(c, err)
	}
	p, _ := principalOf(c)

	query, err := queries.NewListNotificationsQuery(p.UserID, limit)
	if err != nil {
		return s.fail(c, err)
	}
	resp, err := s.handlers.ListNotifications.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{
		"notifications": toNotificationsJSON(resp.Items),
		"unreadCount":   resp.UnreadCount,
	})
}

// MarkNotificationRead handles PUT /api/notifications/:id/read.
func (s *Server) MarkNotificationRead(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.fail(c, err)
	}
	p, _ := principalOf(c)

	cmd, err := commands.NewMarkNotificationReadCommand(id, p.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	if err = s.handlers.MarkNotificationRead.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, msgNotificationRead, nil)
}

// ClearNotifications handles DELETE /api/notifications.
func (s *Server) ClearNotifications(c echo.Context) error {
	p, _ := principalOf(c)
	cmd, err := commands.NewClearNotificationsCommand(p.UserID)
	if err != nil {
		return s.fail(c, err)
	}
	deleted, err := s.handlers.ClearNotifications.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return respond(c, http.StatusOK, msgNotificationsClear, envelope{"deleted": deleted})
}
