package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"iftar/internal/attendees"
	"iftar/internal/shared/config"

	"github.com/joho/godotenv"
)

// sampleAttendees are registered by the seeder against a fresh attendance service
var sampleAttendees = []attendees.RegistrationRequest{
	{Name: "Ahmed Khan", Address: "123 Main St, City", Message: "Looking forward to the event!"},
	{Name: "Fatima Ali", Address: "456 Oak Ave, Town", Message: "I'm vegetarian, please accommodate."},
	{Name: "Mohammed Rahman", Address: "789 Pine Rd, Village"},
	{Name: "Aisha Patel", Address: "101 Elm St, County", Message: "I'll bring some dessert to share."},
	{Name: "Yusuf Omar", Address: "202 Maple Dr, District", Message: "Can I bring my family?"},
}

type Seeder struct {
	client attendees.Client
	out    io.Writer
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Attendance.BaseURL == "" {
		log.Fatalf("ATTENDANCE_API_URL must be set to seed attendees")
	}

	fmt.Printf("Seeding attendees into %s\n", cfg.Attendance.BaseURL)

	seeder := &Seeder{
		client: attendees.NewClient(cfg.Attendance.BaseURL, cfg.Attendance.Timeout),
		out:    os.Stdout,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := seeder.SeedAll(ctx, sampleAttendees); err != nil {
		log.Fatalf("Failed to seed attendees: %v", err)
	}

	fmt.Println("Seeding completed")
}

// SeedAll registers every attendee in order and stops at the first failure
func (s *Seeder) SeedAll(ctx context.Context, list []attendees.RegistrationRequest) error {
	for i, req := range list {
		req = attendees.Normalize(req)
		if err := attendees.Validate(req); err != nil {
			return fmt.Errorf("attendee %d (%s): %w", i+1, req.Name, err)
		}
		if err := s.client.Register(ctx, req); err != nil {
			return fmt.Errorf("attendee %d (%s): %w", i+1, req.Name, err)
		}
		fmt.Fprintf(s.out, "  registered %s\n", req.Name)
	}
	return nil
}
