package attendees

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"iftar/internal/notifications"
	"iftar/internal/shared/metrics"
	"iftar/internal/shared/middleware"
	"iftar/pkg/logger"

	"github.com/samber/lo"
)

// DefaultViewer is greeted when the confirmation page has no name parameter
const DefaultViewer = "Guest"

// DefaultNotifyWait bounds how long a registration waits on the publisher
const DefaultNotifyWait = 2 * time.Second

type Service interface {
	// Register normalizes and validates req, then sends it to the attendance
	// service. The normalized request is returned even on error.
	Register(ctx context.Context, req RegistrationRequest) (RegistrationRequest, error)
	// List returns the attendee list as the attendance service sent it
	List(ctx context.Context) ([]Attendee, error)
	// Roster builds the confirmation view for viewer; fetch errors are
	// logged and yield an empty roster.
	Roster(ctx context.Context, viewer string) Roster
	// NotificationsEnabled reports whether a publisher is attached
	NotificationsEnabled() bool
}

type service struct {
	client     Client
	publisher  notifications.Publisher
	eventTitle string
	notifyWait time.Duration
}

func NewService(client Client) Service {
	return &service{client: client}
}

// NewServiceWithPublisher creates a service that announces accepted registrations
func NewServiceWithPublisher(client Client, publisher notifications.Publisher, eventTitle string) Service {
	return &service{
		client:     client,
		publisher:  publisher,
		eventTitle: eventTitle,
		notifyWait: DefaultNotifyWait,
	}
}

func (s *service) log(ctx context.Context) *logger.Logger {
	return logger.GetDefault().WithRequestID(middleware.RequestIDFromContext(ctx))
}

func (s *service) Register(ctx context.Context, req RegistrationRequest) (RegistrationRequest, error) {
	req = Normalize(req)

	if err := Validate(req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return req, err
	}

	if fields := markupFields(req); len(fields) > 0 {
		s.log(ctx).WarnContext(ctx, "Registration contains markup",
			slog.String("name", req.Name),
			slog.Any("fields", fields),
		)
	}

	if err := s.client.Register(ctx, req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		s.log(ctx).LogRegistrationFailed(ctx, req.Name, err)
		return req, err
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	s.log(ctx).LogRegistrationSubmitted(ctx, req.Name, req.Message != "")
	s.notify(ctx, req)
	return req, nil
}

// notify never fails the registration. Publication runs detached from the
// request; the redirect waits at most notifyWait for it and errors are only
// logged.
func (s *service) notify(ctx context.Context, req RegistrationRequest) {
	if s.publisher == nil {
		return
	}

	n := notifications.NewRegistrationNotification(req.Name, req.Address, req.Message, s.eventTitle)
	n.RequestID = middleware.RequestIDFromContext(ctx)

	publishCtx := context.WithoutCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := s.publisher.PublishRegistration(publishCtx, n); err != nil {
			s.log(publishCtx).ErrorWithContext(publishCtx, "Registration notification failed", err, map[string]interface{}{
				"name": req.Name,
			})
		}
	}()

	timer := time.NewTimer(s.notifyWait)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		s.log(ctx).InfoWithContext(ctx, "Registration notification still in flight", map[string]interface{}{
			"name": req.Name,
			"wait": s.notifyWait.String(),
		})
	}
}

// NotificationsEnabled reports whether accepted registrations are published
func (s *service) NotificationsEnabled() bool {
	return s.publisher != nil
}

func (s *service) List(ctx context.Context) ([]Attendee, error) {
	attendees, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []Attendee{}
	}
	return attendees, nil
}

func (s *service) Roster(ctx context.Context, viewer string) Roster {
	if viewer == "" {
		viewer = DefaultViewer
	}

	attendees, err := s.client.List(ctx)
	if err != nil {
		s.log(ctx).LogRosterFetchFailed(ctx, err)
		attendees = nil
	}

	return BuildRoster(viewer, attendees)
}

// BuildRoster turns attendees into cards in service order. Only the first
// attendee whose name equals viewer exactly is marked as the viewer.
func BuildRoster(viewer string, attendees []Attendee) Roster {
	cards := lo.Map(attendees, func(a Attendee, _ int) Card {
		return Card{
			ID:         string(a.ID),
			Name:       a.Name,
			Address:    a.Address,
			Message:    a.Message,
			Initials:   Initials(a.Name),
			HasMessage: a.HasMessage(),
		}
	})

	_, idx, found := lo.FindIndexOf(cards, func(c Card) bool {
		return c.Name == viewer
	})
	if found {
		cards[idx].IsViewer = true
	}

	return Roster{
		Viewer: viewer,
		Cards:  cards,
	}
}

// IsValidationError reports whether err came from the length rules
func IsValidationError(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
