package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moodlens_http_errors_total",
		Help: "Total HTTP errors by type and status code",
	},
	[]string{"type", "status"},
)

// Middleware returns an echo middleware that converts errors into structured
// JSON responses, logs them at a severity matching their type, and records
// them in metrics.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			structured := AsStructuredError(err)
			status := structured.HTTPStatus()

			logError(c, structured, status)
			httpErrorsTotal.WithLabelValues(string(structured.Type), http.StatusText(status)).Inc()

			if c.Response().Committed {
				return nil
			}
			return c.JSON(status, structured.ToResponse())
		}
	}
}

func logError(c echo.Context, err *Error, status int) {
	attrs := []any{
		"type", string(err.Type),
		"status", status,
		"method", c.Request().Method,
		"path", c.Path(),
	}
	if err.Cause != nil {
		attrs = append(attrs, "cause", err.Cause.Error())
	}
	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case TypeValidation, TypeNotFound:
		slog.Info(err.Message, attrs...)
	default:
		slog.Error(err.Message, attrs...)
	}
}
