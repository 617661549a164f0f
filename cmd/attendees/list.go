package main

import (
	"fmt"
	"io"

	"iftar/internal/attendees"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered attendees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			list, err := client.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list attendees: %w", err)
			}

			renderAttendees(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

// renderAttendees writes list as a borderless table followed by a count line
func renderAttendees(w io.Writer, list []attendees.Attendee) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Name", "Address", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, a := range list {
		message := a.Message
		if !a.HasMessage() {
			message = "-"
		}
		table.Append([]string{string(a.ID), a.Name, a.Address, message})
	}
	table.Render()

	fmt.Fprintf(w, "\n%d attendee(s)\n", len(list))
}
