package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/greeting-service/internal/service"
)

type stubService struct {
	greet func(service.GreetRequest) (string, error)
	times []string
	langs []string
	err   error
}

func (s *stubService) Greet(_ context.Context, req service.GreetRequest) (string, error) {
	return s.greet(req)
}

func (s *stubService) ListTimesOfDay(context.Context) ([]string, error) { return s.times, s.err }

func (s *stubService) ListLanguages(context.Context) ([]string, error) { return s.langs, s.err }

func newEcho(svc GreetingService) *echo.Echo {
	e := echo.New()
	h := NewGreetingHandler(svc)
	e.POST("/api/greet", h.Greet)
	e.GET("/api/times-of-day", h.TimesOfDay)
	e.GET("/api/languages", h.Languages)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestGreet(t *testing.T) {
	svc := &stubService{greet: func(req service.GreetRequest) (string, error) {
		switch {
		case req.TimeOfDay == "" || req.Language == "" || req.Tone == "":
			return "", service.ErrValidation
		case req == (service.GreetRequest{TimeOfDay: "Evening", Language: "Spanish", Tone: "Casual"}):
			return "Hola por la noche!", nil
		case req.Language == "Broken":
			return "", &service.InternalError{Err: errors.New("SQLITE_BUSY: database is locked")}
		}
		return "", service.ErrNotFound
	}}
	e := newEcho(svc)

	tests := []struct {
		name   string
		body   string
		status int
		key    string
		want   string
	}{
		{"found", `{"timeOfDay":"Evening","language":"Spanish","tone":"Casual"}`, http.StatusOK, "greetingMessage", "Hola por la noche!"},
		{"not found", `{"timeOfDay":"Night","language":"Klingon","tone":"Formal"}`, http.StatusNotFound, "error", "Greeting not found for the specified criteria"},
		{"missing tone", `{"timeOfDay":"Evening","language":"Spanish"}`, http.StatusBadRequest, "error", "timeOfDay, language, and tone are required"},
		{"empty object", `{}`, http.StatusBadRequest, "error", "timeOfDay, language, and tone are required"},
		{"malformed json", `{"timeOfDay":`, http.StatusBadRequest, "error", "invalid body"},
		{"wrong type", `{"timeOfDay":1,"language":"English","tone":"Formal"}`, http.StatusBadRequest, "error", "invalid body"},
		{"storage failure", `{"timeOfDay":"Morning","language":"Broken","tone":"Formal"}`, http.StatusInternalServerError, "error", "SQLITE_BUSY: database is locked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, e, http.MethodPost, "/api/greet", tt.body)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.want, out[tt.key])
		})
	}
}

func TestLists(t *testing.T) {
	e := newEcho(&stubService{times: []string{"Morning", "Evening"}, langs: []string{"English"}})

	status, out := do(t, e, http.MethodGet, "/api/times-of-day", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"Morning", "Evening"}, out["timesOfDay"])

	status, out = do(t, e, http.MethodGet, "/api/languages", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"English"}, out["languages"])
}

func TestLists_EmptyIsArray(t *testing.T) {
	e := newEcho(&stubService{times: []string{}, langs: []string{}})

	_, out := do(t, e, http.MethodGet, "/api/languages", "")
	assert.Equal(t, []any{}, out["languages"])
}

func TestLists_InternalError(t *testing.T) {
	e := newEcho(&stubService{err: &service.InternalError{Err: errors.New("no such table: greetings")}})

	for _, path := range []string{"/api/times-of-day", "/api/languages"} {
		status, out := do(t, e, http.MethodGet, path, "")
		assert.Equal(t, http.StatusInternalServerError, status, path)
		assert.Equal(t, "no such table: greetings", out["error"], path)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthAndReady(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health)
	e.GET("/ready-ok", Ready(stubPinger{}))
	e.GET("/ready-down", Ready(stubPinger{err: errors.New("sql: database is closed")}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	status, out := do(t, e, http.MethodGet, "/ready-ok", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])

	status, out = do(t, e, http.MethodGet, "/ready-down", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unavailable", out["status"])
	assert.Equal(t, "sql: database is closed", out["error"])
}
