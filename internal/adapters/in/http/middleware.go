package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"fleetdispatch/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Key headers.
const (
	AdminKeyHeader   = "X-Admin-Key"
	PartnerKeyHeader = "X-Api-Key"
)

var errInvalidKey = errors.New("invalid key")

// requireKey rejects requests without the expected header value: a missing
// key yields 401 and a wrong one 403.
func requireKey(header, expected string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup: "header:" + header,
		Validator: func(key string, _ echo.Context) (bool, error) {
			if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
				return false, errInvalidKey
			}
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			if errors.Is(err, errInvalidKey) {
				return c.JSON(http.StatusForbidden, errorResponse{Error: "Access Denied: Invalid API Key."})
			}
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: header + " header is required for this operation"})
		},
	})
}

// rateLimit limits requests per client IP with a token bucket refilled at
// perSecond and holding up to burst tokens.
func rateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "Unable to identify client"})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "Too Many Requests"})
		},
	})
}

// requestLogger logs every request through slog.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

// requestMetrics records method, route pattern and status of every request.
func requestMetrics(collector *metrics.Collector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			started := time.Now()
			err := next(c)

			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}
			collector.HTTPRequest(c.Request().Method, c.Path(), status, time.Since(started))
			return err
		}
	}
}
