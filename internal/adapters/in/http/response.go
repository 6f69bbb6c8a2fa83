package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgUnauthorized = "Non autorisé"
	msgForbidden    = "Accès refusé"
	msgServerError  = "Erreur serveur"
)

// envelope is the body of every API response.
type envelope map[string]any

func respond(c echo.Context, status int, message string, payload envelope) error {
	body := envelope{"success": status < http.StatusBadRequest}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail renders err with the status of its class. Client errors carry their
// message; server errors are logged and reported generically.
func (s *Server) fail(c echo.Context, err error) error {
	status := statusOf(err)

	message := err.Error()
	switch status {
	case http.StatusUnauthorized:
		message = msgUnauthorized
	case http.StatusInternalServerError:
		message = msgServerError
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	var payload envelope
	if s.options.ExposeErrorDetails {
		payload = envelope{"error": err.Error()}
	}
	return respond(c, status, message, payload)
}

func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.As(err, &httpErr):
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// errorHandler renders errors returned outside the route handlers, such as
// unknown routes and malformed bodies, in the same envelope.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		_ = respond(c, httpErr.Code, message, nil)
		return
	}
	_ = s.fail(c, err)
}
