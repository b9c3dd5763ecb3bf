package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwrk-planet/activities/internal/domain"
	"github.com/cwrk-planet/activities/internal/metrics"
	"github.com/cwrk-planet/activities/internal/store"
)

const unknownActivity = "unknown"

// RosterNotifier is told about every successful roster change. It is called
// after the roster lock is released, so concurrent changes to one activity can
// arrive out of order; a.Version orders them. Implementations must not block.
type RosterNotifier interface {
	ParticipantJoined(a domain.Activity, email string)
	ParticipantLeft(a domain.Activity, email string)
}

type ActivityService struct {
	store    store.ActivityStore
	notifier RosterNotifier
	metrics  metrics.Recorder
	log      *slog.Logger
}

func NewActivityService(st store.ActivityStore, notifier RosterNotifier, rec metrics.Recorder, log *slog.Logger) *ActivityService {
	if rec == nil {
		rec = metrics.Nop
	}
	if log == nil {
		log = slog.Default()
	}
	return &ActivityService{
		store:    st,
		notifier: notifier,
		metrics:  rec,
		log:      log.With(slog.String("component", "activity_service")),
	}
}

// Init publishes the seeded roster sizes.
func (s *ActivityService) Init(ctx context.Context) error {
	list, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("store.List: %w", err)
	}
	for _, a := range list {
		s.metrics.Participants(a.Name, len(a.Participants))
	}
	return nil
}

// ListActivities returns every activity in seed order.
func (s *ActivityService) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	return s.store.List(ctx)
}

// GetActivity returns one activity by name.
func (s *ActivityService) GetActivity(ctx context.Context, name string) (domain.Activity, error) {
	return s.store.Get(ctx, name)
}

// SignUp adds email to the named activity. One signup per email per activity.
// Surrounding whitespace is not part of the email.
func (s *ActivityService) SignUp(ctx context.Context, name, email string) (*domain.RosterChange, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrEmailRequired
	}

	a, err := s.store.AddParticipant(ctx, name, email)
	if err != nil {
		s.metrics.Signup(metricLabel(name, err), outcome(err))
		s.log.InfoContext(ctx, "signup rejected",
			slog.String("activity", name), slog.String("email", email), slog.Any("err", err))
		return nil, err
	}

	s.metrics.Signup(a.Name, metrics.OutcomeOK)
	s.metrics.Participants(a.Name, len(a.Participants))
	if s.notifier != nil {
		s.notifier.ParticipantJoined(a, email)
	}
	s.log.InfoContext(ctx, "signed up",
		slog.String("activity", a.Name), slog.String("email", email), slog.Int("participants", len(a.Participants)))
	return &domain.RosterChange{Activity: a, Email: email}, nil
}

// RemoveParticipant removes email from the named activity.
func (s *ActivityService) RemoveParticipant(ctx context.Context, name, email string) (*domain.RosterChange, error) {
	a, err := s.store.RemoveParticipant(ctx, name, email)
	if err != nil {
		s.metrics.Removal(metricLabel(name, err), outcome(err))
		s.log.InfoContext(ctx, "removal rejected",
			slog.String("activity", name), slog.String("email", email), slog.Any("err", err))
		return nil, err
	}

	s.metrics.Removal(a.Name, metrics.OutcomeOK)
	s.metrics.Participants(a.Name, len(a.Participants))
	if s.notifier != nil {
		s.notifier.ParticipantLeft(a, email)
	}
	s.log.InfoContext(ctx, "removed participant",
		slog.String("activity", a.Name), slog.String("email", email), slog.Int("participants", len(a.Participants)))
	return &domain.RosterChange{Activity: a, Email: email}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrAlreadySignedUp):
		return metrics.OutcomeDuplicate
	case errors.Is(err, domain.ErrParticipantNotFound):
		return metrics.OutcomeMissing
	default:
		return metrics.OutcomeError
	}
}

// metricLabel keeps caller-supplied names that match no activity out of label values.
func metricLabel(name string, err error) string {
	if errors.Is(err, domain.ErrActivityNotFound) {
		return unknownActivity
	}
	return name
}
