package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// BaseHandler carries the logger shared by the endpoint handlers.
type BaseHandler struct {
	logger *logrus.Logger
}

func NewBaseHandler(logger *logrus.Logger) *BaseHandler {
	return &BaseHandler{logger: logger}
}

// logRequest tags an entry with the operation and path. Method, status,
// latency and client fields are emitted once per request by
// LoggingMiddleware, not repeated here.
func (h *BaseHandler) logRequest(c echo.Context, operation string) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"operation": operation,
		"path":      c.Request().URL.Path,
	})
}
