package main

import (
	"fmt"

	"iftar/internal/attendees"

	"github.com/spf13/cobra"
)

func newRegisterCmd(opts *rootOptions) *cobra.Command {
	var req attendees.RegistrationRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Submit one registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req = attendees.Normalize(req)
			if err := attendees.Validate(req); err != nil {
				return err
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			if err := client.Register(cmd.Context(), req); err != nil {
				return fmt.Errorf("register %s: %w", req.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", req.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Attendee name (at least 2 characters)")
	cmd.Flags().StringVar(&req.Address, "address", "", "Attendee address (at least 5 characters)")
	cmd.Flags().StringVar(&req.Message, "message", "", "Optional message")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
