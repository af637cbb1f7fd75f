package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/greeting-service/internal/handler"
)

// RegisterRoutes registers the health endpoints.  /healthz only reports that
// the process is up; /readyz also pings storage.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
}

// RegisterAPI registers the greeting endpoints under /api.  The given
// middleware (rate limiting, response caching) applies to the whole group.
func RegisterAPI(e *echo.Echo, h *handler.GreetingHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/api", mw...)
	g.POST("/greet", h.Greet)
	g.GET("/times-of-day", h.TimesOfDay)
	g.GET("/languages", h.Languages)
}
