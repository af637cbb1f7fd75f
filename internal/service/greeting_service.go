// Package service implements the greeting lookups served by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/greeting-service/internal/queue"
	"github.com/iliyamo/greeting-service/internal/repository"
)

// GreetingStore is the read side of repository.GreetingRepo.
type GreetingStore interface {
	FindMessage(ctx context.Context, timeOfDay, language, tone string) (string, error)
	DistinctTimesOfDay(ctx context.Context) ([]string, error)
	DistinctLanguages(ctx context.Context) ([]string, error)
}

// EventPublisher receives a notification for every greeting served.
type EventPublisher interface {
	PublishGreetingServed(ctx context.Context, ev queue.GreetingServedEvent) error
}

// GreetRequest carries the three lookup keys.  All are required.
type GreetRequest struct {
	TimeOfDay string
	Language  string
	Tone      string
}

const publishTimeout = 5 * time.Second

// GreetingService answers greet and list requests.  Calls are independent of
// one another; every Greet re-queries storage.
type GreetingService struct {
	repo    GreetingStore
	events  EventPublisher
	logger  *log.Logger
	pending sync.WaitGroup
}

// NewGreetingService builds the service.  events may be nil, in which case
// nothing is published.
func NewGreetingService(repo GreetingStore, events EventPublisher, logger *log.Logger) *GreetingService {
	if logger == nil {
		logger = log.New("service")
	}
	return &GreetingService{repo: repo, events: events, logger: logger}
}

// Greet returns the message stored for the exact, case-sensitive
// combination in req.  When several rows match, the first one returned by
// the storage engine wins.
func (s *GreetingService) Greet(ctx context.Context, req GreetRequest) (string, error) {
	if req.TimeOfDay == "" || req.Language == "" || req.Tone == "" {
		return "", ErrValidation
	}
	msg, err := s.repo.FindMessage(ctx, req.TimeOfDay, req.Language, req.Tone)
	if err != nil {
		if errors.Is(err, repository.ErrGreetingNotFound) {
			return "", ErrNotFound
		}
		return "", &InternalError{Err: err}
	}
	s.publishServed(ctx, req, msg)
	return msg, nil
}

// ListTimesOfDay returns the distinct times of day in storage order.
func (s *GreetingService) ListTimesOfDay(ctx context.Context) ([]string, error) {
	out, err := s.repo.DistinctTimesOfDay(ctx)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	return nonNil(out), nil
}

// ListLanguages returns the distinct languages in storage order.
func (s *GreetingService) ListLanguages(ctx context.Context) ([]string, error) {
	out, err := s.repo.DistinctLanguages(ctx)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	return nonNil(out), nil
}

// Wait blocks until in-flight event publishes have finished.
func (s *GreetingService) Wait() {
	s.pending.Wait()
}

// publishServed hands the event to the publisher without holding up the
// response.  Failures are only logged.
func (s *GreetingService) publishServed(ctx context.Context, req GreetRequest, msg string) {
	if s.events == nil {
		return
	}
	ev := queue.GreetingServedEvent{
		EventID:         uuid.NewString(),
		TimeOfDay:       req.TimeOfDay,
		Language:        req.Language,
		Tone:            req.Tone,
		GreetingMessage: msg,
		ServedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := s.events.PublishGreetingServed(pctx, ev); err != nil {
			s.logger.Warnf("publish greeting.served %s: %v", ev.EventID, err)
		}
	}()
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
