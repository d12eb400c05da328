package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cmlichen-UTT/UA-api/internal/auth"
	"github.com/cmlichen-UTT/UA-api/internal/config"
	"github.com/cmlichen-UTT/UA-api/internal/domain"
)

// LoggingMiddleware adds structured request logging.
func LoggingMiddleware(logger *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			latency := time.Since(start)
			status := c.Response().Status

			entry := logger.WithFields(logrus.Fields{
				"method":     c.Request().Method,
				"uri":        c.Request().URL.Path,
				"status":     status,
				"latency":    latency,
				"user_agent": c.Request().UserAgent(),
				"ip":         c.RealIP(),
			})

			if err != nil {
				entry = entry.WithField("error", err.Error())
			}

			if status >= 500 {
				entry.Error("Server error")
			} else if status >= 400 {
				entry.Warn("Client error")
			} else {
				entry.Info("Request processed")
			}

			return err
		}
	}
}

// AuthMiddleware verifies the bearer token and loads the authenticated user
// into the request context.
func AuthMiddleware(cfg config.Config, userRepo domain.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return unauthenticated(c)
			}

			userID, err := auth.ParseToken(cfg, tokenString)
			if err != nil {
				return unauthenticated(c)
			}

			// A token for a deleted account is stale, not an infrastructure
			// failure; only the former answers 401.
			user, err := userRepo.GetByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return unauthenticated(c)
				}
				return respondError(c, err)
			}

			c.Set(contextUserKey, user)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	httpErr, _ := domain.ToHTTPError(domain.ErrUnauthenticated)
	return c.JSON(http.StatusUnauthorized, domain.ErrorResponse{Error: httpErr})
}
