package http

import (
	"errors"
	"net/http"

	"github.com/daniel06264831/menuia/internal/core/application/usecases/queries"
	"github.com/daniel06264831/menuia/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func httpStatusFor(err error) int {
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, queries.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUpstream):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage keeps internal details out of 5xx bodies.
func errorMessage(status int, err error) string {
	var (
		httpErr  *echo.HTTPError
		conflict *errs.ConflictError
	)

	switch {
	case errors.As(err, &conflict):
		return conflict.Reason
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return msg
		}
		return http.StatusText(status)
	case status == http.StatusServiceUnavailable:
		return "Service temporarily unavailable"
	case status >= http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	status := httpStatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: errorMessage(status, err),
	})
}
