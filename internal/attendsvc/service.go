package attendsvc

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	Attend(ctx context.Context, req AttendRequest) (*AttendeeResponse, error)
	List(ctx context.Context) ([]AttendeeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Attend(ctx context.Context, req AttendRequest) (*AttendeeResponse, error) {
	attendee := &Attendee{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Message: strings.TrimSpace(req.Message),
	}

	if err := s.repo.Create(ctx, attendee); err != nil {
		return nil, fmt.Errorf("failed to store attendee: %w", err)
	}

	resp := attendee.ToResponse()
	return &resp, nil
}

func (s *service) List(ctx context.Context) ([]AttendeeResponse, error) {
	attendees, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendees: %w", err)
	}

	out := make([]AttendeeResponse, 0, len(attendees))
	for i := range attendees {
		out = append(out, attendees[i].ToResponse())
	}
	return out, nil
}
