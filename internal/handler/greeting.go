// Package handler exposes the HTTP handlers of the greeting API.  Handlers
// only translate between JSON and the service layer; every error the service
// returns maps onto exactly one status code.
package handler

import (
    "context"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/greeting-service/internal/service"
)

// GreetingService is implemented by *service.GreetingService.
type GreetingService interface {
    Greet(ctx context.Context, req service.GreetRequest) (string, error)
    ListTimesOfDay(ctx context.Context) ([]string, error)
    ListLanguages(ctx context.Context) ([]string, error)
}

// GreetingHandler serves the /api endpoints.
type GreetingHandler struct {
    Svc GreetingService
}

func NewGreetingHandler(svc GreetingService) *GreetingHandler {
    return &GreetingHandler{Svc: svc}
}

// ----- DTOs -----

type greetReq struct {
    TimeOfDay string `json:"timeOfDay"`
    Language  string `json:"language"`
    Tone      string `json:"tone"`
}

type greetResp struct {
    GreetingMessage string `json:"greetingMessage"`
}

type timesOfDayResp struct {
    TimesOfDay []string `json:"timesOfDay"`
}

type languagesResp struct {
    Languages []string `json:"languages"`
}

// Greet: POST /api/greet
func (h *GreetingHandler) Greet(c echo.Context) error {
    var req greetReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    msg, err := h.Svc.Greet(c.Request().Context(), service.GreetRequest{
        TimeOfDay: req.TimeOfDay,
        Language:  req.Language,
        Tone:      req.Tone,
    })
    if err != nil {
        return errorJSON(c, err)
    }
    return c.JSON(http.StatusOK, greetResp{GreetingMessage: msg})
}

// TimesOfDay: GET /api/times-of-day
func (h *GreetingHandler) TimesOfDay(c echo.Context) error {
    out, err := h.Svc.ListTimesOfDay(c.Request().Context())
    if err != nil {
        return errorJSON(c, err)
    }
    return c.JSON(http.StatusOK, timesOfDayResp{TimesOfDay: out})
}

// Languages: GET /api/languages
func (h *GreetingHandler) Languages(c echo.Context) error {
    out, err := h.Svc.ListLanguages(c.Request().Context())
    if err != nil {
        return errorJSON(c, err)
    }
    return c.JSON(http.StatusOK, languagesResp{Languages: out})
}

// errorJSON writes the {"error": ...} body for a service error.  Storage
// failures expose their message to the client.
func errorJSON(c echo.Context, err error) error {
    switch {
    case errors.Is(err, service.ErrValidation):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "timeOfDay, language, and tone are required"})
    case errors.Is(err, service.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "Greeting not found for the specified criteria"})
    default:
        c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
    }
}
