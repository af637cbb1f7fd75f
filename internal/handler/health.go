package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
)

// Health is a liveness endpoint used by load balancers and monitoring
// systems.  It returns a plain text "ok" with 200 and never touches storage.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Pinger is implemented by *database.Store.
type Pinger interface {
    Ping(ctx context.Context) error
}

// Ready returns a readiness handler that pings storage.  It answers 503
// while the database connection is unusable.
func Ready(db Pinger) echo.HandlerFunc {
    return func(c echo.Context) error {
        ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
        defer cancel()
        if err := db.Ping(ctx); err != nil {
            return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
        }
        return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
    }
}
