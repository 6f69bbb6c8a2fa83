package http

import (
	"net/http"
	"time"

	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
)

const (
	// pongWait must outlast the sweep interval, whose pings refresh it.
	pongWait       = 75 * time.Second
	maxMessageSize = 4096
)

// LiveRegistry is the hub that websocket sessions join.
type LiveRegistry interface {
	Register(conn realtime.Conn, principal auth.Principal) (unregister func())
}

// ServeWS handles GET /ws?token=. The session joins the channels of the
// token's principal; frames sent by the client are read and dropped.
func (s *Server) ServeWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		token = bearerToken(c.Request())
	}
	p, err := s.tokens.ParseToken(token)
	if err != nil {
		return respond(c, http.StatusUnauthorized, msgUnauthorized, nil)
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already answered
		s.logger.WarnContext(c.Request().Context(), "websocket upgrade failed", "error", err)
		return nil
	}

	unregister := s.live.Register(conn, p)
	defer func() {
		unregister()
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			return nil
		}
	}
}
