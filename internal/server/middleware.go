package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

// Middleware returns the request-id, access-log and recover chain.
func Middleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:    true,
			LogURI:       true,
			LogStatus:    true,
			LogLatency:   true,
			LogRequestID: true,
			LogError:     true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				entry := log.WithFields(log.Fields{
					"request_id": v.RequestID,
					"method":     v.Method,
					"uri":        v.URI,
					"status":     v.Status,
					"latency":    v.Latency,
				})
				if v.Error != nil {
					entry.WithError(v.Error).Error("Request failed")
					return nil
				}
				entry.Info("Request handled")
				return nil
			},
		}),
		middleware.Recover(),
	}
}
