package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/auth"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const principalKey = "principal"

// authenticate verifies the bearer token. When required is false a request
// without a token passes anonymously, but a bad token is still rejected.
func (s *Server) authenticate(required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				if required {
					return respond(c, http.StatusUnauthorized, msgUnauthorized, nil)
				}
				return next(c)
			}

			p, err := s.tokens.ParseToken(token)
			if err != nil {
				return respond(c, http.StatusUnauthorized, msgUnauthorized, nil)
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// requireRole must run after authenticate(true).
func requireRole(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := principalOf(c)
			if !ok {
				return respond(c, http.StatusUnauthorized, msgUnauthorized, nil)
			}
			if !slices.Contains(roles, p.Role) {
				return respond(c, http.StatusForbidden, msgForbidden, nil)
			}
			return next(c)
		}
	}
}

func principalOf(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(principalKey).(auth.Principal)
	return p, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// RequestLogger writes one slog record per request. The query string is left
// out because /ws carries the bearer token there.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http")
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				logger.LogAttrs(c.Request().Context(), slog.LevelWarn, "request", attrs...)
				return nil
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}
