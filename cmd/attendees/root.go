package main

import (
	"fmt"
	"time"

	"iftar/internal/attendees"
	"iftar/internal/shared/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "attendees",
		Short: "Inspect and submit iftar registrations",
		Long: `Talk to the attendance service the registration site uses.

The service URL defaults to ATTENDANCE_API_URL (a .env file is honoured).

Examples:
  # Show every registered attendee
  attendees list

  # Register someone from the command line
  attendees register --name "Ahmed Khan" --address "123 Main St, City"`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "url", "", "Attendance service base URL (overrides ATTENDANCE_API_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (overrides ATTENDANCE_TIMEOUT)")

	cmd.AddCommand(newListCmd(opts), newRegisterCmd(opts))
	return cmd
}

// client resolves the attendance client from flags, falling back to the environment
func (o *rootOptions) client() (attendees.Client, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Attendance.BaseURL
	if o.baseURL != "" {
		baseURL = o.baseURL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("no attendance service URL: pass --url or set ATTENDANCE_API_URL")
	}

	timeout := cfg.Attendance.Timeout
	if o.timeout > 0 {
		timeout = o.timeout
	}

	return attendees.NewClient(baseURL, timeout), nil
}
